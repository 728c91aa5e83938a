package forecasting

import (
	"errors"
	"fmt"

	"github.com/vfg2006/sales-forecast-api/internal/combination"
	"github.com/vfg2006/sales-forecast-api/internal/domain"
	"github.com/vfg2006/sales-forecast-api/internal/encoding"
	"github.com/vfg2006/sales-forecast-api/internal/horizon"
)

// Erros do caso de uso de previsão. Busca, horizonte e esquema reaproveitam os
// erros dos pacotes de origem, então errors.Is funciona em qualquer camada.
var (
	ErrCombinationNotFound = combination.ErrCombinationNotFound
	ErrInvalidHorizon      = horizon.ErrInvalidHorizon
	ErrSchemaMismatch      = encoding.ErrSchemaMismatch

	ErrEmptyForecast     = errors.New("nenhum mês do horizonte pôde ser previsto")
	ErrForecastNotFound  = errors.New("previsão não encontrada")
	ErrHistoryDisabled   = errors.New("histórico de previsões desabilitado")
	ErrModelTimeout      = errors.New("tempo limite do modelo excedido")
	ErrInvalidPrediction = errors.New("modelo devolveu valor não finito")
	ErrModelPanic        = errors.New("modelo falhou inesperadamente")
)

// PointError é a falha de um mês do horizonte
type PointError struct {
	Period domain.YearMonth
	Err    error
}

func (e *PointError) Error() string {
	return fmt.Sprintf("previsão de %s: %s", e.Period, e.Err.Error())
}

func (e *PointError) Unwrap() error {
	return e.Err
}

// IsRequestError indica erros causados pela requisição e não pelo serviço
func IsRequestError(err error) bool {
	return errors.Is(err, ErrCombinationNotFound) ||
		errors.Is(err, ErrInvalidHorizon) ||
		errors.Is(err, horizon.ErrInvalidStart) ||
		errors.Is(err, ErrSchemaMismatch)
}
