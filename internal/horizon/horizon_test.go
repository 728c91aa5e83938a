package horizon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-forecast-api/internal/domain"
)

func TestExpand(t *testing.T) {
	tests := []struct {
		name     string
		start    domain.YearMonth
		count    int
		expected []domain.YearMonth
	}{
		{
			name:     "Um único mês",
			start:    domain.YearMonth{Year: 2023, Month: 5},
			count:    1,
			expected: []domain.YearMonth{{Year: 2023, Month: 5}},
		},
		{
			name:  "Virada de ano",
			start: domain.YearMonth{Year: 2023, Month: 11},
			count: 3,
			expected: []domain.YearMonth{
				{Year: 2023, Month: 11},
				{Year: 2023, Month: 12},
				{Year: 2024, Month: 1},
			},
		},
		{
			name:  "Começando em janeiro",
			start: domain.YearMonth{Year: 2022, Month: 1},
			count: 2,
			expected: []domain.YearMonth{
				{Year: 2022, Month: 1},
				{Year: 2022, Month: 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Expand(tt.start, tt.count)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// Um passo fixo de 30 dias a partir de 31/01 pularia fevereiro ou repetiria março;
// a expansão precisa cobrir cada mês exatamente uma vez.
func TestExpand_LongHorizonHasNoGapsOrDuplicates(t *testing.T) {
	start := domain.YearMonth{Year: 2022, Month: 1}

	result, err := Expand(start, 60)
	require.NoError(t, err)
	require.Len(t, result, 60)

	seen := make(map[domain.YearMonth]bool)
	for i, point := range result {
		assert.True(t, point.Valid(), "mês inválido em %d: %+v", i, point)
		assert.False(t, seen[point], "mês duplicado: %+v", point)
		seen[point] = true

		if i > 0 {
			prev := result[i-1]
			assert.True(t, prev.Before(point))
			assert.Equal(t, point, prev.AddMonths(1))
		}
	}
	assert.Equal(t, domain.YearMonth{Year: 2026, Month: 12}, result[59])
}

func TestExpand_IsDeterministic(t *testing.T) {
	start := domain.YearMonth{Year: 2024, Month: 7}

	first, err := Expand(start, 18)
	require.NoError(t, err)
	second, err := Expand(start, 18)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExpand_Errors(t *testing.T) {
	_, err := Expand(domain.YearMonth{Year: 2024, Month: 1}, 0)
	assert.ErrorIs(t, err, ErrInvalidHorizon)

	_, err = Expand(domain.YearMonth{Year: 2024, Month: 1}, -3)
	assert.ErrorIs(t, err, ErrInvalidHorizon)

	_, err = Expand(domain.YearMonth{Year: 2024, Month: 13}, 2)
	assert.ErrorIs(t, err, ErrInvalidStart)
}
