// Package forecasting orquestra a previsão de vendas de uma combinação ao longo de um horizonte de meses.
package forecasting

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/vfg2006/sales-forecast-api/infrastructure/cache"
	"github.com/vfg2006/sales-forecast-api/infrastructure/repository"
	"github.com/vfg2006/sales-forecast-api/internal/domain"
	"github.com/vfg2006/sales-forecast-api/internal/encoding"
	"github.com/vfg2006/sales-forecast-api/internal/horizon"
	"github.com/vfg2006/sales-forecast-api/pkg/log"
	"github.com/vfg2006/sales-forecast-api/pkg/utils"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultMaxWorkers   = 4
	DefaultModelTimeout = 5 * time.Second
)

type Options struct {
	MaxWorkers   int
	MaxHorizon   int // zero desliga o limite
	ModelTimeout time.Duration
}

// Service depende só de estado imutável depois de construído; chamadas
// concorrentes de Forecast não compartilham nada mutável.
type Service struct {
	index     StartResolver
	encoder   *encoding.Encoder
	predictor Predictor
	opts      Options

	history repository.ForecastRunRepository
	cache   cache.ForecastCache
	now     func() time.Time
}

// NewService valida que o modelo e a codificação carregados concordam nas colunas
func NewService(index StartResolver, encoder *encoding.Encoder, predictor Predictor, opts Options) (*Service, error) {
	if opts.MaxWorkers < 1 {
		opts.MaxWorkers = DefaultMaxWorkers
	}
	if opts.ModelTimeout <= 0 {
		opts.ModelTimeout = DefaultModelTimeout
	}

	if aware, ok := predictor.(SchemaAware); ok {
		if !slices.Equal(aware.Columns(), encoder.Columns) {
			return nil, fmt.Errorf("%w: colunas do modelo %v, codificação %v", ErrSchemaMismatch, aware.Columns(), encoder.Columns)
		}
	}

	if aware, ok := predictor.(FingerprintAware); ok {
		switch fingerprint := aware.SchemaFingerprint(); fingerprint {
		case encoder.Fingerprint:
		case "":
			return nil, fmt.Errorf("%w: modelo sem impressão digital da codificação", ErrSchemaMismatch)
		default:
			return nil, fmt.Errorf("%w: modelo treinado com a codificação %s, carregada %s", ErrSchemaMismatch, fingerprint, encoder.Fingerprint)
		}
	}

	return &Service{
		index:     index,
		encoder:   encoder,
		predictor: predictor,
		opts:      opts,
		now:       time.Now,
	}, nil
}

// WithHistory habilita a gravação das execuções
func (s *Service) WithHistory(history repository.ForecastRunRepository) *Service {
	s.history = history
	return s
}

// WithCache habilita o cache de resultados completos
func (s *Service) WithCache(forecastCache cache.ForecastCache) *Service {
	s.cache = forecastCache
	return s
}

func (s *Service) LookupStart(key domain.CombinationKey) (domain.YearMonth, error) {
	return s.index.Lookup(key)
}

func (s *Service) Forecast(ctx context.Context, key domain.CombinationKey, count int) (*domain.ForecastResult, error) {
	logger := log.ForContext(ctx).WithFields(log.Fields{
		"forecast_combination": key.String(),
		"forecast_horizon":     count,
	})

	start, err := s.index.Lookup(key)
	if err != nil {
		return nil, err
	}

	if s.opts.MaxHorizon > 0 && count > s.opts.MaxHorizon {
		return nil, fmt.Errorf("%w: máximo de %d meses, recebido %d", ErrInvalidHorizon, s.opts.MaxHorizon, count)
	}

	months, err := horizon.Expand(start, count)
	if err != nil {
		return nil, err
	}

	rows := make([]encoding.FeatureRow, 0, len(months))
	for _, month := range months {
		row, err := s.encoder.Row(key, month)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	cacheKey := s.cacheKey(key, count)
	if cached := s.fromCache(ctx, cacheKey); cached != nil {
		logger.Debug("forecast: resultado servido do cache")
		return cached, nil
	}

	outcomes := s.predictAll(ctx, rows)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &domain.ForecastResult{
		Key:       key,
		Start:     start,
		Requested: count,
		Points:    make([]domain.ForecastPoint, 0, count),
		Failures:  make([]domain.PointFailure, 0),
		CreatedAt: s.now(),
	}

	for i, outcome := range outcomes {
		month := months[i]
		if outcome.err != nil {
			logger.WithError(outcome.err).WithFields(log.Fields{
				"forecast_point": month.String(),
			}).Error("forecast: previsão do mês falhou, ponto descartado")

			result.Failures = append(result.Failures, domain.PointFailure{
				Year:  month.Year,
				Month: month.Month,
				Error: outcome.err.Error(),
			})
			continue
		}

		result.Points = append(result.Points, domain.ForecastPoint{
			Year:           month.Year,
			Month:          month.Month,
			PredictedSales: outcome.value,
		})
	}

	if len(result.Points) == 0 {
		logger.Error("forecast: todos os meses do horizonte falharam")
		return result, ErrEmptyForecast
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar id da previsão: %w", err)
	}
	result.ID = id

	s.record(ctx, result, cacheKey)

	logger.WithFields(log.Fields{
		"forecast_id":       result.ID,
		"forecast_points":   len(result.Points),
		"forecast_failures": len(result.Failures),
	}).Info("forecast: previsão concluída")

	return result, nil
}

func (s *Service) GetForecast(ctx context.Context, id string) (*domain.ForecastResult, error) {
	if s.history == nil {
		return nil, ErrHistoryDisabled
	}

	result, err := s.history.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, fmt.Errorf("%w: %s", ErrForecastNotFound, id)
	}
	return result, nil
}

type outcome struct {
	value float64
	err   error
}

// predictAll pontua cada linha de forma independente. Uma falha nunca cancela as demais;
// o índice do resultado é o da linha, então a ordem não depende de quem termina primeiro.
func (s *Service) predictAll(ctx context.Context, rows []encoding.FeatureRow) []outcome {
	outcomes := make([]outcome, len(rows))

	var g errgroup.Group
	g.SetLimit(s.opts.MaxWorkers)

	for i, row := range rows {
		g.Go(func() error {
			value, err := s.predictOne(ctx, row)
			outcomes[i] = outcome{value: value, err: err}
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

func (s *Service) predictOne(ctx context.Context, row encoding.FeatureRow) (float64, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.opts.ModelTimeout)
	defer cancel()

	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("%w: %v", ErrModelPanic, r)}
			}
		}()
		value, err := s.predictor.Predict(callCtx, row)
		done <- outcome{value: value, err: err}
	}()

	select {
	case <-callCtx.Done():
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return 0, &PointError{Period: row.Period, Err: ErrModelTimeout}
		}
		return 0, &PointError{Period: row.Period, Err: callCtx.Err()}
	case o := <-done:
		if o.err != nil {
			if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
				return 0, &PointError{Period: row.Period, Err: ErrModelTimeout}
			}
			return 0, &PointError{Period: row.Period, Err: o.err}
		}
		if math.IsNaN(o.value) || math.IsInf(o.value, 0) {
			return 0, &PointError{Period: row.Period, Err: ErrInvalidPrediction}
		}
		return o.value, nil
	}
}

func (s *Service) cacheKey(key domain.CombinationKey, count int) string {
	normalized, _ := key.Normalized()
	return fmt.Sprintf("%s|%s|%d", s.encoder.Fingerprint, normalized.String(), count)
}

func (s *Service) fromCache(ctx context.Context, cacheKey string) *domain.ForecastResult {
	if s.cache == nil {
		return nil
	}

	cached, err := s.cache.Get(ctx, cacheKey)
	if err != nil {
		log.ForContext(ctx).WithError(err).Warn("forecast: erro ao consultar cache, seguindo sem cache")
		return nil
	}
	return cached
}

// record grava histórico e cache. Falhas aqui não invalidam a previsão já calculada.
func (s *Service) record(ctx context.Context, result *domain.ForecastResult, cacheKey string) {
	if s.history != nil {
		if err := s.history.Save(ctx, result); err != nil {
			log.ForContext(ctx).WithError(err).WithField("forecast_id", result.ID).
				Error("forecast: erro ao gravar histórico da previsão")
		}
	}

	if s.cache != nil && result.Complete() {
		if err := s.cache.Set(ctx, cacheKey, result); err != nil {
			log.ForContext(ctx).WithError(err).Warn("forecast: erro ao gravar previsão no cache")
		}
	}
}
