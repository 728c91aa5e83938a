package forecasting

import (
	"context"

	"github.com/vfg2006/sales-forecast-api/internal/domain"
	"github.com/vfg2006/sales-forecast-api/internal/encoding"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

// Predictor pontua uma linha de features. Implementações precisam ser seguras
// para chamadas concorrentes.
type Predictor interface {
	Predict(ctx context.Context, row encoding.FeatureRow) (float64, error)
}

// SchemaAware é implementado por modelos que conhecem as colunas com que foram treinados
type SchemaAware interface {
	Columns() []string
}

// FingerprintAware é implementado por modelos que guardam a impressão digital da
// codificação usada no treino. Ela cobre também as classes de cada categórica.
type FingerprintAware interface {
	SchemaFingerprint() string
}

// StartResolver resolve a data inicial de histórico de uma combinação
type StartResolver interface {
	Lookup(key domain.CombinationKey) (domain.YearMonth, error)
}

// Forecaster é o caso de uso exposto à API
type Forecaster interface {
	// Forecast prevê as vendas dos count meses a partir do primeiro mês com histórico
	Forecast(ctx context.Context, key domain.CombinationKey, count int) (*domain.ForecastResult, error)

	// GetForecast devolve uma execução anterior guardada no histórico
	GetForecast(ctx context.Context, id string) (*domain.ForecastResult, error)

	// LookupStart devolve o primeiro mês com vendas da combinação
	LookupStart(key domain.CombinationKey) (domain.YearMonth, error)
}
