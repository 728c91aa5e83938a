// Package encoding guarda a codificação categórica ajustada na curadoria e a
// reproduz na hora de servir, para que treino e inferência vejam o mesmo esquema.
package encoding

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"slices"
	"sort"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/sales-forecast-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SchemaVersion muda sempre que o layout das features mudar
const SchemaVersion = 1

var (
	ErrSchemaMismatch  = errors.New("linha de features incompatível com o esquema do modelo")
	ErrUnknownCategory = fmt.Errorf("%w: categoria desconhecida", ErrSchemaMismatch)
)

// OneHotColumn gera uma coluna indicadora por categoria. Com DropFirst, a primeira
// categoria (ordem alfabética) é a referência e não tem coluna própria.
type OneHotColumn struct {
	Name       string   `json:"name"`
	Categories []string `json:"categories"`
}

// LabelColumn mapeia cada classe para sua posição na lista ordenada
type LabelColumn struct {
	Name    string   `json:"name"`
	Classes []string `json:"classes"`
}

// Encoder é o artefato versionado de codificação
type Encoder struct {
	Version     int            `json:"version"`
	Fingerprint string         `json:"fingerprint"`
	DropFirst   bool           `json:"drop_first"`
	OneHot      []OneHotColumn `json:"one_hot"`
	Label       LabelColumn    `json:"label"`
	Columns     []string       `json:"columns"`
}

// FeatureRow é uma linha pronta para o modelo, na ordem de Columns
type FeatureRow struct {
	Period  domain.YearMonth
	Columns []string
	Values  []float64
}

// Fit ajusta a codificação sobre os registros retidos pela curadoria
func Fit(records []domain.CuratedRecord) *Encoder {
	categories := map[string]map[string]struct{}{
		ColumnBusinessUnit: {},
		ColumnRegion:       {},
		ColumnChannel:      {},
	}
	brands := make(map[string]struct{})

	for _, r := range records {
		categories[ColumnBusinessUnit][r.Key.BusinessUnit] = struct{}{}
		categories[ColumnRegion][r.Key.Region] = struct{}{}
		categories[ColumnChannel][r.Key.Channel] = struct{}{}
		brands[r.Key.BrandLine] = struct{}{}
	}

	enc := &Encoder{
		Version:   SchemaVersion,
		DropFirst: true,
		Label:     LabelColumn{Name: ColumnBrandLine, Classes: sortedKeys(brands)},
	}
	for _, name := range OneHotColumns {
		enc.OneHot = append(enc.OneHot, OneHotColumn{Name: name, Categories: sortedKeys(categories[name])})
	}

	enc.Columns = enc.expectedColumns()
	enc.Fingerprint = enc.fingerprint()

	return enc
}

// expectedColumns segue o layout da tabela curada: período, marca codificada,
// código de produto e então as indicadoras
func (e *Encoder) expectedColumns() []string {
	columns := []string{ColumnYear, ColumnMonth, e.Label.Name, ColumnProductCode}
	for _, oh := range e.OneHot {
		categories := oh.Categories
		if e.DropFirst && len(categories) > 0 {
			categories = categories[1:]
		}
		for _, c := range categories {
			columns = append(columns, oh.Name+"_"+c)
		}
	}
	return columns
}

func (e *Encoder) fingerprint() string {
	payload, _ := json.Marshal(struct {
		Version   int            `json:"version"`
		DropFirst bool           `json:"drop_first"`
		OneHot    []OneHotColumn `json:"one_hot"`
		Label     LabelColumn    `json:"label"`
		Columns   []string       `json:"columns"`
	}{e.Version, e.DropFirst, e.OneHot, e.Label, e.Columns})

	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:8])
}

// Validate confere versão, layout das colunas e impressão digital
func (e *Encoder) Validate() error {
	if e.Version != SchemaVersion {
		return fmt.Errorf("%w: versão do artefato %d, esperada %d", ErrSchemaMismatch, e.Version, SchemaVersion)
	}
	if !slices.Equal(e.Columns, e.expectedColumns()) {
		return fmt.Errorf("%w: colunas do artefato não correspondem às categorias", ErrSchemaMismatch)
	}
	if e.Fingerprint != e.fingerprint() {
		return fmt.Errorf("%w: impressão digital %s não confere", ErrSchemaMismatch, e.Fingerprint)
	}
	return nil
}

// Row monta a linha de features para uma combinação em um mês
func (e *Encoder) Row(key domain.CombinationKey, period domain.YearMonth) (FeatureRow, error) {
	code, ok := domain.NormalizeProductCode(key.ProductCode)
	if !ok {
		return FeatureRow{}, fmt.Errorf("%w: código de produto %q", ErrSchemaMismatch, key.ProductCode)
	}
	codeValue, err := strconv.ParseFloat(code, 64)
	if err != nil {
		return FeatureRow{}, fmt.Errorf("%w: código de produto %q", ErrSchemaMismatch, key.ProductCode)
	}

	brand := slices.Index(e.Label.Classes, key.BrandLine)
	if brand < 0 {
		return FeatureRow{}, fmt.Errorf("%w: %s=%q", ErrUnknownCategory, e.Label.Name, key.BrandLine)
	}

	values := make([]float64, 0, len(e.Columns))
	values = append(values, float64(period.Year), float64(period.Month), float64(brand), codeValue)

	categoryOf := map[string]string{
		ColumnBusinessUnit: key.BusinessUnit,
		ColumnRegion:       key.Region,
		ColumnChannel:      key.Channel,
	}
	for _, oh := range e.OneHot {
		value, known := categoryOf[oh.Name]
		if !known {
			return FeatureRow{}, fmt.Errorf("%w: coluna %q sem valor na combinação", ErrSchemaMismatch, oh.Name)
		}
		pos := slices.Index(oh.Categories, value)
		if pos < 0 {
			return FeatureRow{}, fmt.Errorf("%w: %s=%q", ErrUnknownCategory, oh.Name, value)
		}

		start := 0
		if e.DropFirst {
			start = 1
		}
		for i := start; i < len(oh.Categories); i++ {
			if i == pos {
				values = append(values, 1)
			} else {
				values = append(values, 0)
			}
		}
	}

	if len(values) != len(e.Columns) {
		return FeatureRow{}, fmt.Errorf("%w: %d valores para %d colunas", ErrSchemaMismatch, len(values), len(e.Columns))
	}

	return FeatureRow{Period: period, Columns: e.Columns, Values: values}, nil
}

// Save grava o artefato em JSON indentado
func (e *Encoder) Save(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(e)
}

// Load lê e valida um artefato gravado por Save
func Load(r io.Reader) (*Encoder, error) {
	var enc Encoder
	if err := json.NewDecoder(r).Decode(&enc); err != nil {
		return nil, fmt.Errorf("erro ao decodificar artefato de codificação: %w", err)
	}
	if err := enc.Validate(); err != nil {
		return nil, err
	}
	return &enc, nil
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
