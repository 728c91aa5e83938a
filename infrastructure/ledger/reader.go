// Package ledger lê o razão de vendas bruto e grava os artefatos da curadoria em disco.
package ledger

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/vfg2006/sales-forecast-api/internal/domain"
	"github.com/vfg2006/sales-forecast-api/internal/encoding"
	"github.com/vfg2006/sales-forecast-api/pkg/log"
)

const utf8BOM = "\ufeff"

var ErrMissingColumn = errors.New("coluna obrigatória ausente no razão")

// ReadResult traz as linhas lidas e quantas foram descartadas por formato
type ReadResult struct {
	Records  []domain.SalesRecord
	BadLines int
}

// ReadLedgerFile abre e lê o razão no caminho informado
func ReadLedgerFile(path string) (*ReadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao abrir razão %s", path)
	}
	defer f.Close()

	return ReadLedger(f)
}

// ReadLedger lê o razão delimitado por ';' ou ','. O delimitador é detectado no
// cabeçalho; linhas com número de campos diferente do cabeçalho são puladas e contadas.
func ReadLedger(r io.Reader) (*ReadResult, error) {
	br := bufio.NewReader(r)

	header, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "erro ao ler cabeçalho do razão")
	}
	if strings.TrimSpace(header) == "" {
		return nil, errors.New("razão vazio")
	}
	header = strings.TrimPrefix(header, utf8BOM)

	reader := csv.NewReader(io.MultiReader(strings.NewReader(header), br))
	reader.Comma = detectDelimiter(header)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	names, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao interpretar cabeçalho do razão")
	}

	positions, err := mapColumns(names)
	if err != nil {
		return nil, err
	}

	result := &ReadResult{}
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}

		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			result.BadLines++
			log.L.WithFields(log.Fields{
				"curation_line":  parseErr.Line,
				"curation_error": parseErr.Err.Error(),
			}).Debug("curation: linha malformada ignorada")
			continue
		}
		if err != nil {
			return nil, errors.Wrap(err, "erro ao ler razão")
		}

		line, _ := reader.FieldPos(0)

		if len(fields) != len(names) {
			if len(fields) == 1 && strings.TrimSpace(fields[0]) == "" {
				continue
			}
			result.BadLines++
			log.L.WithFields(log.Fields{
				"curation_line":     line,
				"curation_fields":   len(fields),
				"curation_expected": len(names),
			}).Debug("curation: linha com número de campos inválido ignorada")
			continue
		}

		result.Records = append(result.Records, toRecord(line, fields, positions))
	}

	return result, nil
}

func detectDelimiter(header string) rune {
	if strings.Count(header, ";") >= strings.Count(header, ",") && strings.Contains(header, ";") {
		return ';'
	}
	return ','
}

func mapColumns(names []string) (map[string]int, error) {
	positions := make(map[string]int, len(names))
	for i, name := range names {
		name = strings.TrimSpace(strings.TrimPrefix(name, utf8BOM))
		if _, dup := positions[name]; !dup {
			positions[name] = i
		}
	}

	var missing []string
	for _, required := range encoding.LedgerColumns {
		if _, ok := positions[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, errors.Wrapf(ErrMissingColumn, "%s", strings.Join(missing, ", "))
	}

	return positions, nil
}

func toRecord(line int, fields []string, positions map[string]int) domain.SalesRecord {
	get := func(column string) string {
		return fields[positions[column]]
	}

	return domain.SalesRecord{
		Line:         line,
		Year:         get(encoding.ColumnYear),
		Month:        get(encoding.ColumnMonth),
		BusinessUnit: get(encoding.ColumnBusinessUnit),
		Region:       get(encoding.ColumnRegion),
		Channel:      get(encoding.ColumnChannel),
		BrandLine:    get(encoding.ColumnBrandLine),
		ProductCode:  get(encoding.ColumnProductCode),
		ProductName:  get(encoding.ColumnProductName),
		Gallons:      get(encoding.ColumnGallons),
		Revenue:      get(encoding.ColumnRevenue),
		GrossProfit:  get(encoding.ColumnGrossProfit),
		Cost:         get(encoding.ColumnCost),
		Margin:       get(encoding.ColumnMargin),
	}
}
