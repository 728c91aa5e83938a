package forecasting_test

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cachemocks "github.com/vfg2006/sales-forecast-api/infrastructure/cache/mocks"
	"github.com/vfg2006/sales-forecast-api/infrastructure/integrator/model/linear"
	repomocks "github.com/vfg2006/sales-forecast-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-forecast-api/internal/combination"
	"github.com/vfg2006/sales-forecast-api/internal/domain"
	"github.com/vfg2006/sales-forecast-api/internal/encoding"
	"github.com/vfg2006/sales-forecast-api/internal/usecases/forecasting"
	"github.com/vfg2006/sales-forecast-api/internal/usecases/forecasting/mocks"
	"github.com/vfg2006/sales-forecast-api/pkg/log"
	"go.uber.org/mock/gomock"
)

type predictorFunc func(ctx context.Context, row encoding.FeatureRow) (float64, error)

func (f predictorFunc) Predict(ctx context.Context, row encoding.FeatureRow) (float64, error) {
	return f(ctx, row)
}

var (
	keyK = domain.CombinationKey{
		BusinessUnit: "UEN1", Region: "Norte", Channel: "Retail",
		BrandLine: "Viniltex", ProductCode: "100", ProductName: "Pintura A",
	}
	keyLateYear = domain.CombinationKey{
		BusinessUnit: "UEN2", Region: "Sur", Channel: "Mayorista",
		BrandLine: "Koraza", ProductCode: "200", ProductName: "Esmalte B",
	}
	keyUnknownBrand = domain.CombinationKey{
		BusinessUnit: "UEN1", Region: "Norte", Channel: "Retail",
		BrandLine: "Nova", ProductCode: "300", ProductName: "Laca C",
	}
)

func fixture() (*combination.Index, *encoding.Encoder) {
	records := []domain.CuratedRecord{
		{Key: keyK, Period: domain.YearMonth{Year: 2023, Month: 1}},
		{Key: keyLateYear, Period: domain.YearMonth{Year: 2023, Month: 11}},
	}

	index := combination.NewIndex([]domain.CombinationStart{
		{Key: keyK, Start: domain.YearMonth{Year: 2023, Month: 1}},
		{Key: keyLateYear, Start: domain.YearMonth{Year: 2023, Month: 11}},
		{Key: keyUnknownBrand, Start: domain.YearMonth{Year: 2023, Month: 5}},
	})

	return index, encoding.Fit(records)
}

func newService(t *testing.T, predictor forecasting.Predictor, opts forecasting.Options) *forecasting.Service {
	t.Helper()
	index, enc := fixture()
	service, err := forecasting.NewService(index, enc, predictor, opts)
	require.NoError(t, err)
	return service
}

func byMonth(ctx context.Context, row encoding.FeatureRow) (float64, error) {
	return float64(row.Period.Year*100 + row.Period.Month), nil
}

func TestService_Forecast(t *testing.T) {
	log.SetupTestLogger()

	tests := []struct {
		name      string
		key       domain.CombinationKey
		count     int
		predictor predictorFunc
		opts      forecasting.Options
		wantErr   error
		validate  func(t *testing.T, result *domain.ForecastResult)
	}{
		{
			name:      "Horizonte completo a partir da data mínima",
			key:       keyK,
			count:     3,
			predictor: byMonth,
			validate: func(t *testing.T, result *domain.ForecastResult) {
				assert.Equal(t, []domain.ForecastPoint{
					{Year: 2023, Month: 1, PredictedSales: 202301},
					{Year: 2023, Month: 2, PredictedSales: 202302},
					{Year: 2023, Month: 3, PredictedSales: 202303},
				}, result.Points)
				assert.Empty(t, result.Failures)
				assert.True(t, result.Complete())
				assert.NotEmpty(t, result.ID)
			},
		},
		{
			name:      "Virada de ano",
			key:       keyLateYear,
			count:     3,
			predictor: byMonth,
			validate: func(t *testing.T, result *domain.ForecastResult) {
				require.Len(t, result.Points, 3)
				assert.Equal(t, 2023, result.Points[0].Year)
				assert.Equal(t, 11, result.Points[0].Month)
				assert.Equal(t, 12, result.Points[1].Month)
				assert.Equal(t, 2024, result.Points[2].Year)
				assert.Equal(t, 1, result.Points[2].Month)
			},
		},
		{
			name:  "Falha em um mês interior é registrada e o ponto é descartado",
			key:   keyK,
			count: 5,
			predictor: func(ctx context.Context, row encoding.FeatureRow) (float64, error) {
				if row.Period.Month == 3 {
					return 0, errors.New("modelo indisponível")
				}
				return byMonth(ctx, row)
			},
			validate: func(t *testing.T, result *domain.ForecastResult) {
				require.Len(t, result.Points, 4)
				months := []int{}
				for _, p := range result.Points {
					months = append(months, p.Month)
				}
				assert.Equal(t, []int{1, 2, 4, 5}, months)

				require.Len(t, result.Failures, 1)
				assert.Equal(t, 3, result.Failures[0].Month)
				assert.Contains(t, result.Failures[0].Error, "modelo indisponível")
				assert.False(t, result.Complete())
				assert.Equal(t, 5, result.Requested)
			},
		},
		{
			name:  "Previsão não finita vira falha do ponto",
			key:   keyK,
			count: 2,
			predictor: func(ctx context.Context, row encoding.FeatureRow) (float64, error) {
				if row.Period.Month == 2 {
					return math.NaN(), nil
				}
				return 1, nil
			},
			validate: func(t *testing.T, result *domain.ForecastResult) {
				require.Len(t, result.Points, 1)
				require.Len(t, result.Failures, 1)
				assert.Equal(t, 2, result.Failures[0].Month)
			},
		},
		{
			name:  "Panic do modelo vira falha do ponto",
			key:   keyK,
			count: 2,
			predictor: func(ctx context.Context, row encoding.FeatureRow) (float64, error) {
				if row.Period.Month == 1 {
					panic("índice fora do intervalo")
				}
				return 1, nil
			},
			validate: func(t *testing.T, result *domain.ForecastResult) {
				require.Len(t, result.Points, 1)
				assert.Equal(t, 2, result.Points[0].Month)
			},
		},
		{
			name:  "Tempo limite do modelo exclui só o mês lento",
			key:   keyK,
			count: 3,
			opts:  forecasting.Options{ModelTimeout: 30 * time.Millisecond},
			predictor: func(ctx context.Context, row encoding.FeatureRow) (float64, error) {
				if row.Period.Month == 2 {
					<-ctx.Done()
					return 0, ctx.Err()
				}
				return 1, nil
			},
			validate: func(t *testing.T, result *domain.ForecastResult) {
				require.Len(t, result.Points, 2)
				require.Len(t, result.Failures, 1)
				assert.Equal(t, 2, result.Failures[0].Month)
				assert.Contains(t, result.Failures[0].Error, forecasting.ErrModelTimeout.Error())
			},
		},
		{
			name:  "Todos os meses falham",
			key:   keyK,
			count: 3,
			predictor: func(ctx context.Context, row encoding.FeatureRow) (float64, error) {
				return 0, errors.New("sem resposta")
			},
			wantErr: forecasting.ErrEmptyForecast,
			validate: func(t *testing.T, result *domain.ForecastResult) {
				require.NotNil(t, result)
				assert.Empty(t, result.Points)
				assert.Len(t, result.Failures, 3)
			},
		},
		{
			name:      "Horizonte zero",
			key:       keyK,
			count:     0,
			predictor: byMonth,
			wantErr:   forecasting.ErrInvalidHorizon,
		},
		{
			name:      "Horizonte acima do máximo",
			key:       keyK,
			count:     13,
			opts:      forecasting.Options{MaxHorizon: 12},
			predictor: byMonth,
			wantErr:   forecasting.ErrInvalidHorizon,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newService(t, tt.predictor, tt.opts)

			result, err := service.Forecast(context.Background(), tt.key, tt.count)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			if tt.validate != nil {
				tt.validate(t, result)
			}
		})
	}
}

func TestService_Forecast_LogsFailedMonth(t *testing.T) {
	log.SetupTestLogger()
	hook := logrustest.NewGlobal()
	t.Cleanup(func() { logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks)) })

	service := newService(t, predictorFunc(func(ctx context.Context, row encoding.FeatureRow) (float64, error) {
		if row.Period.Month == 3 {
			return 0, errors.New("modelo indisponível")
		}
		return byMonth(ctx, row)
	}), forecasting.Options{})

	_, err := service.Forecast(context.Background(), keyK, 5)
	require.NoError(t, err)

	var failed []*logrus.Entry
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.ErrorLevel {
			failed = append(failed, entry)
		}
	}

	require.Len(t, failed, 1)
	assert.Equal(t, "03-2023", failed[0].Data["forecast_point"])
	assert.Equal(t, keyK.String(), failed[0].Data["forecast_combination"])
	assert.ErrorContains(t, failed[0].Data[logrus.ErrorKey].(error), "modelo indisponível")
}

func TestService_Forecast_RejectsBeforeModelCall(t *testing.T) {
	log.SetupTestLogger()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// nenhuma chamada esperada ao modelo
	predictor := mocks.NewMockPredictor(ctrl)
	service := newService(t, predictor, forecasting.Options{})

	t.Run("Combinação inexistente", func(t *testing.T) {
		missing := keyK
		missing.Channel = "Online"

		result, err := service.Forecast(context.Background(), missing, 3)
		assert.ErrorIs(t, err, forecasting.ErrCombinationNotFound)
		assert.Nil(t, result)

		var notFound *combination.NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, missing, notFound.Key)
	})

	t.Run("Categoria desconhecida pela codificação", func(t *testing.T) {
		result, err := service.Forecast(context.Background(), keyUnknownBrand, 3)
		assert.ErrorIs(t, err, forecasting.ErrSchemaMismatch)
		assert.Nil(t, result)
	})
}

func TestService_Forecast_ChronologicalUnderConcurrency(t *testing.T) {
	log.SetupTestLogger()

	predictor := predictorFunc(func(ctx context.Context, row encoding.FeatureRow) (float64, error) {
		time.Sleep(time.Duration(rand.Intn(5)) * time.Millisecond)
		return byMonth(ctx, row)
	})
	service := newService(t, predictor, forecasting.Options{MaxWorkers: 8})

	result, err := service.Forecast(context.Background(), keyK, 24)
	require.NoError(t, err)
	require.Len(t, result.Points, 24)

	for i := 1; i < len(result.Points); i++ {
		prev := domain.YearMonth{Year: result.Points[i-1].Year, Month: result.Points[i-1].Month}
		curr := domain.YearMonth{Year: result.Points[i].Year, Month: result.Points[i].Month}
		assert.Equal(t, prev.AddMonths(1), curr)
	}
}

func TestService_Forecast_Deterministic(t *testing.T) {
	log.SetupTestLogger()

	service := newService(t, predictorFunc(byMonth), forecasting.Options{})

	first, err := service.Forecast(context.Background(), keyK, 6)
	require.NoError(t, err)
	second, err := service.Forecast(context.Background(), keyK, 6)
	require.NoError(t, err)

	assert.Equal(t, first.Points, second.Points)
}

func TestService_Forecast_ProductCodeNormalized(t *testing.T) {
	log.SetupTestLogger()

	service := newService(t, predictorFunc(byMonth), forecasting.Options{})

	key := keyK
	key.ProductCode = "100.0"

	result, err := service.Forecast(context.Background(), key, 1)
	require.NoError(t, err)
	assert.Len(t, result.Points, 1)
}

func TestNewService_SchemaParity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	index, enc := fixture()

	type schemaPredictor struct {
		*mocks.MockPredictor
		*mocks.MockSchemaAware
	}

	t.Run("Colunas do modelo iguais às da codificação", func(t *testing.T) {
		aware := mocks.NewMockSchemaAware(ctrl)
		aware.EXPECT().Columns().Return(enc.Columns).AnyTimes()

		_, err := forecasting.NewService(index, enc, schemaPredictor{mocks.NewMockPredictor(ctrl), aware}, forecasting.Options{})
		assert.NoError(t, err)
	})

	t.Run("Colunas divergentes impedem a construção", func(t *testing.T) {
		aware := mocks.NewMockSchemaAware(ctrl)
		aware.EXPECT().Columns().Return([]string{"Año", "Mes"}).AnyTimes()

		_, err := forecasting.NewService(index, enc, schemaPredictor{mocks.NewMockPredictor(ctrl), aware}, forecasting.Options{})
		assert.ErrorIs(t, err, forecasting.ErrSchemaMismatch)
	})

	type fingerprintPredictor struct {
		*mocks.MockPredictor
		*mocks.MockFingerprintAware
	}

	tests := []struct {
		name        string
		fingerprint string
		wantErr     error
	}{
		{name: "Impressão digital igual à da codificação", fingerprint: enc.Fingerprint},
		{name: "Impressão digital divergente", fingerprint: "0000000000000000", wantErr: forecasting.ErrSchemaMismatch},
		{name: "Modelo sem impressão digital", fingerprint: "", wantErr: forecasting.ErrSchemaMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			aware := mocks.NewMockFingerprintAware(ctrl)
			aware.EXPECT().SchemaFingerprint().Return(tt.fingerprint).AnyTimes()

			_, err := forecasting.NewService(index, enc, fingerprintPredictor{mocks.NewMockPredictor(ctrl), aware}, forecasting.Options{})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

// Uma marca nova que ordena antes das demais desloca os rótulos de Marquilla
// sem mudar o nome de nenhuma coluna.
func TestNewService_RefitLabelEncodingRejected(t *testing.T) {
	brandRecord := func(brand string) domain.CuratedRecord {
		key := keyK
		key.BrandLine = brand
		return domain.CuratedRecord{Key: key, Period: domain.YearMonth{Year: 2023, Month: 1}}
	}

	trained := encoding.Fit([]domain.CuratedRecord{brandRecord("INTERVINIL"), brandRecord("KORAZA")})
	served := encoding.Fit([]domain.CuratedRecord{brandRecord("ACRILTEX"), brandRecord("INTERVINIL"), brandRecord("KORAZA")})

	require.Equal(t, trained.Columns, served.Columns)
	require.NotEqual(t, trained.Fingerprint, served.Fingerprint)

	model := &linear.Model{
		FeatureColumns: trained.Columns,
		Coefficients:   make([]float64, len(trained.Columns)),
		Fingerprint:    trained.Fingerprint,
	}

	index := combination.NewIndex([]domain.CombinationStart{
		{Key: brandRecord("KORAZA").Key, Start: domain.YearMonth{Year: 2023, Month: 1}},
	})

	_, err := forecasting.NewService(index, served, model, forecasting.Options{})
	assert.ErrorIs(t, err, forecasting.ErrSchemaMismatch)

	_, err = forecasting.NewService(index, trained, model, forecasting.Options{})
	assert.NoError(t, err)
}

func TestService_HistoryAndCache(t *testing.T) {
	log.SetupTestLogger()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	history := repomocks.NewMockForecastRunRepository(ctrl)
	forecastCache := cachemocks.NewMockForecastCache(ctrl)

	t.Run("Previsão completa é gravada no histórico e no cache", func(t *testing.T) {
		service := newService(t, predictorFunc(byMonth), forecasting.Options{}).
			WithHistory(history).
			WithCache(forecastCache)

		forecastCache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, nil)
		history.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
		forecastCache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		result, err := service.Forecast(context.Background(), keyK, 2)
		require.NoError(t, err)
		assert.Len(t, result.Points, 2)
	})

	t.Run("Resultado do cache dispensa o modelo", func(t *testing.T) {
		predictor := mocks.NewMockPredictor(ctrl)
		service := newService(t, predictor, forecasting.Options{}).WithCache(forecastCache)

		cached := &domain.ForecastResult{ID: "cached", Key: keyK, Requested: 2}
		forecastCache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cached, nil)

		result, err := service.Forecast(context.Background(), keyK, 2)
		require.NoError(t, err)
		assert.Equal(t, "cached", result.ID)
	})

	t.Run("Erro no cache e no histórico não derruba a previsão", func(t *testing.T) {
		service := newService(t, predictorFunc(byMonth), forecasting.Options{}).
			WithHistory(history).
			WithCache(forecastCache)

		forecastCache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, errors.New("redis fora"))
		history.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("banco fora"))
		forecastCache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis fora"))

		result, err := service.Forecast(context.Background(), keyK, 2)
		require.NoError(t, err)
		assert.Len(t, result.Points, 2)
	})

	t.Run("Previsão parcial não vai para o cache", func(t *testing.T) {
		failing := predictorFunc(func(ctx context.Context, row encoding.FeatureRow) (float64, error) {
			if row.Period.Month == 2 {
				return 0, errors.New("falhou")
			}
			return 1, nil
		})
		service := newService(t, failing, forecasting.Options{}).
			WithHistory(history).
			WithCache(forecastCache)

		forecastCache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, nil)
		history.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

		result, err := service.Forecast(context.Background(), keyK, 2)
		require.NoError(t, err)
		assert.Len(t, result.Failures, 1)
	})
}

func TestService_GetForecast(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	history := repomocks.NewMockForecastRunRepository(ctrl)

	t.Run("Histórico desabilitado", func(t *testing.T) {
		service := newService(t, predictorFunc(byMonth), forecasting.Options{})
		_, err := service.GetForecast(context.Background(), "abc")
		assert.ErrorIs(t, err, forecasting.ErrHistoryDisabled)
	})

	t.Run("Execução inexistente", func(t *testing.T) {
		service := newService(t, predictorFunc(byMonth), forecasting.Options{}).WithHistory(history)
		history.EXPECT().GetByID(gomock.Any(), "abc").Return(nil, nil)

		_, err := service.GetForecast(context.Background(), "abc")
		assert.ErrorIs(t, err, forecasting.ErrForecastNotFound)
	})

	t.Run("Execução encontrada", func(t *testing.T) {
		service := newService(t, predictorFunc(byMonth), forecasting.Options{}).WithHistory(history)
		stored := &domain.ForecastResult{ID: "abc", Key: keyK}
		history.EXPECT().GetByID(gomock.Any(), "abc").Return(stored, nil)

		result, err := service.GetForecast(context.Background(), "abc")
		require.NoError(t, err)
		assert.Equal(t, stored, result)
	})
}
