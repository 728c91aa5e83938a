package encoding

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-forecast-api/internal/domain"
)

func record(unit, region, channel, brand, code string) domain.CuratedRecord {
	return domain.CuratedRecord{
		Key: domain.CombinationKey{
			BusinessUnit: unit,
			Region:       region,
			Channel:      channel,
			BrandLine:    brand,
			ProductCode:  code,
			ProductName:  "PRODUTO " + code,
		},
		Period: domain.YearMonth{Year: 2023, Month: 1},
	}
}

func fitted() *Encoder {
	return Fit([]domain.CuratedRecord{
		record("PINTURAS", "ANTIOQUIA", "DISTRIBUIDORES", "VINILTEX", "10"),
		record("PINTURAS", "CENTRO", "FERRETERIAS", "KORAZA", "11"),
		record("RECUBRIMIENTOS", "CENTRO", "DISTRIBUIDORES", "INTERVINIL", "12"),
	})
}

func TestFit_ColumnsAndCategories(t *testing.T) {
	enc := fitted()

	assert.Equal(t, SchemaVersion, enc.Version)
	assert.True(t, enc.DropFirst)
	assert.Equal(t, []string{"INTERVINIL", "KORAZA", "VINILTEX"}, enc.Label.Classes)
	assert.Equal(t, []string{
		ColumnYear, ColumnMonth, ColumnBrandLine, ColumnProductCode,
		"Uen_RECUBRIMIENTOS",
		"Regional_CENTRO",
		"Canal Comercial_FERRETERIAS",
	}, enc.Columns)
	assert.NotEmpty(t, enc.Fingerprint)
	require.NoError(t, enc.Validate())
}

func TestFit_IsDeterministic(t *testing.T) {
	assert.Equal(t, fitted(), fitted())
}

func TestRow(t *testing.T) {
	enc := fitted()

	row, err := enc.Row(domain.CombinationKey{
		BusinessUnit: "RECUBRIMIENTOS",
		Region:       "ANTIOQUIA",
		Channel:      "FERRETERIAS",
		BrandLine:    "KORAZA",
		ProductCode:  "0011",
		ProductName:  "qualquer",
	}, domain.YearMonth{Year: 2024, Month: 2})
	require.NoError(t, err)

	assert.Equal(t, enc.Columns, row.Columns)
	assert.Equal(t, []float64{2024, 2, 1, 11, 1, 0, 1}, row.Values)
	assert.Equal(t, domain.YearMonth{Year: 2024, Month: 2}, row.Period)
}

func TestRow_BaselineCategoryIsAllZeros(t *testing.T) {
	enc := fitted()

	row, err := enc.Row(domain.CombinationKey{
		BusinessUnit: "PINTURAS",
		Region:       "ANTIOQUIA",
		Channel:      "DISTRIBUIDORES",
		BrandLine:    "INTERVINIL",
		ProductCode:  "12",
	}, domain.YearMonth{Year: 2023, Month: 12})
	require.NoError(t, err)

	assert.Equal(t, []float64{2023, 12, 0, 12, 0, 0, 0}, row.Values)
}

func TestRow_UnknownCategoryIsSchemaMismatch(t *testing.T) {
	enc := fitted()

	tests := []struct {
		name string
		key  domain.CombinationKey
	}{
		{
			name: "Marca não vista no treino",
			key:  domain.CombinationKey{BusinessUnit: "PINTURAS", Region: "CENTRO", Channel: "FERRETERIAS", BrandLine: "NOVA", ProductCode: "10"},
		},
		{
			name: "Regional não vista no treino",
			key:  domain.CombinationKey{BusinessUnit: "PINTURAS", Region: "COSTA", Channel: "FERRETERIAS", BrandLine: "KORAZA", ProductCode: "10"},
		},
		{
			name: "Código de produto não numérico",
			key:  domain.CombinationKey{BusinessUnit: "PINTURAS", Region: "CENTRO", Channel: "FERRETERIAS", BrandLine: "KORAZA", ProductCode: "X1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := enc.Row(tt.key, domain.YearMonth{Year: 2024, Month: 1})
			assert.ErrorIs(t, err, ErrSchemaMismatch)
		})
	}
}

func TestSaveLoad(t *testing.T) {
	enc := fitted()

	var buf bytes.Buffer
	require.NoError(t, enc.Save(&buf))

	loaded, err := Load(&buf)
	require.NoError(t, err)
	assert.Equal(t, enc, loaded)
}

func TestLoad_RejectsTamperedArtifact(t *testing.T) {
	enc := fitted()

	var buf bytes.Buffer
	require.NoError(t, enc.Save(&buf))
	tampered := strings.Replace(buf.String(), "KORAZA", "KORAZA PLUS", 1)

	_, err := Load(strings.NewReader(tampered))
	assert.ErrorIs(t, err, ErrSchemaMismatch)
}
