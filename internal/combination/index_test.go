package combination

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-forecast-api/internal/domain"
	"github.com/vfg2006/sales-forecast-api/pkg/log"
)

func testKey(code string) domain.CombinationKey {
	return domain.CombinationKey{
		BusinessUnit: "PINTURAS",
		Region:       "ANTIOQUIA",
		Channel:      "DISTRIBUIDORES",
		BrandLine:    "VINILTEX",
		ProductCode:  code,
		ProductName:  "VINILTEX BLANCO 1GL",
	}
}

func TestIndex_Lookup(t *testing.T) {
	log.SetupTestLogger()

	idx := NewIndex([]domain.CombinationStart{
		{Key: testKey("1001"), Start: domain.YearMonth{Year: 2022, Month: 3}},
		{Key: testKey("1002"), Start: domain.YearMonth{Year: 2023, Month: 11}},
	})
	require.Equal(t, 2, idx.Len())

	tests := []struct {
		name     string
		key      domain.CombinationKey
		expected domain.YearMonth
		notFound bool
	}{
		{
			name:     "Combinação existente",
			key:      testKey("1001"),
			expected: domain.YearMonth{Year: 2022, Month: 3},
		},
		{
			name:     "Código com zeros à esquerda e espaços",
			key:      testKey(" 01002 "),
			expected: domain.YearMonth{Year: 2023, Month: 11},
		},
		{
			name:     "Código lido como float",
			key:      testKey("1001.0"),
			expected: domain.YearMonth{Year: 2022, Month: 3},
		},
		{
			name:     "Código inexistente",
			key:      testKey("9999"),
			notFound: true,
		},
		{
			name:     "Código não numérico",
			key:      testKey("ABC"),
			notFound: true,
		},
		{
			name: "Um campo diferente basta para não encontrar",
			key: func() domain.CombinationKey {
				k := testKey("1001")
				k.Region = "CUNDINAMARCA"
				return k
			}(),
			notFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, err := idx.Lookup(tt.key)
			if tt.notFound {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrCombinationNotFound)

				var notFound *NotFoundError
				require.True(t, errors.As(err, &notFound))
				assert.Equal(t, tt.key, notFound.Key)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, start)
		})
	}
}

func TestIndex_DuplicateKeepsFirst(t *testing.T) {
	log.SetupTestLogger()

	idx := NewIndex([]domain.CombinationStart{
		{Key: testKey("1001"), Start: domain.YearMonth{Year: 2022, Month: 6}},
		{Key: testKey("1001.0"), Start: domain.YearMonth{Year: 2022, Month: 1}},
	})

	assert.Equal(t, 1, idx.Len())
	start, err := idx.Lookup(testKey("1001"))
	require.NoError(t, err)
	assert.Equal(t, domain.YearMonth{Year: 2022, Month: 6}, start)
}

func TestIndex_ConcurrentReads(t *testing.T) {
	idx := NewIndex([]domain.CombinationStart{
		{Key: testKey("1001"), Start: domain.YearMonth{Year: 2022, Month: 3}},
	})

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			start, err := idx.Lookup(testKey("1001"))
			assert.NoError(t, err)
			assert.Equal(t, 3, start.Month)
		}()
	}
	wg.Wait()
}
