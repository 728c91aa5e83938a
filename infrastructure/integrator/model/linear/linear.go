// Package linear serve localmente um modelo de regressão linear exportado em JSON.
package linear

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/sales-forecast-api/internal/encoding"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var ErrInvalidModel = errors.New("artefato de modelo inválido")

// Model guarda coeficientes na ordem de FeatureColumns. Fingerprint é a da
// codificação usada no treino.
type Model struct {
	FeatureColumns []string  `json:"columns"`
	Coefficients   []float64 `json:"coefficients"`
	Intercept      float64   `json:"intercept"`
	Fingerprint    string    `json:"schema_fingerprint"`
}

func Load(r io.Reader) (*Model, error) {
	var m Model
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("erro ao decodificar modelo: %w", err)
	}
	if len(m.FeatureColumns) == 0 || len(m.FeatureColumns) != len(m.Coefficients) {
		return nil, fmt.Errorf("%w: %d colunas e %d coeficientes", ErrInvalidModel, len(m.FeatureColumns), len(m.Coefficients))
	}
	return &m, nil
}

func LoadFile(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir modelo %s: %w", path, err)
	}
	defer f.Close()

	return Load(f)
}

// Columns devolve o layout de features com que o modelo foi treinado
func (m *Model) Columns() []string {
	return m.FeatureColumns
}

func (m *Model) SchemaFingerprint() string {
	return m.Fingerprint
}

func (m *Model) Predict(ctx context.Context, row encoding.FeatureRow) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if !slices.Equal(row.Columns, m.FeatureColumns) {
		return 0, fmt.Errorf("%w: colunas da linha diferem das do modelo", encoding.ErrSchemaMismatch)
	}

	prediction := m.Intercept
	for i, v := range row.Values {
		prediction += m.Coefficients[i] * v
	}
	return prediction, nil
}
