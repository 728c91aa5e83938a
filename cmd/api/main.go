package main

import (
	"context"
	"os"

	"github.com/vfg2006/sales-forecast-api/infrastructure/cache"
	"github.com/vfg2006/sales-forecast-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-forecast-api/infrastructure/integrator/model"
	"github.com/vfg2006/sales-forecast-api/infrastructure/integrator/model/linear"
	"github.com/vfg2006/sales-forecast-api/infrastructure/integrator/model/modelclient"
	"github.com/vfg2006/sales-forecast-api/infrastructure/ledger"
	"github.com/vfg2006/sales-forecast-api/infrastructure/repository"
	"github.com/vfg2006/sales-forecast-api/internal/api"
	"github.com/vfg2006/sales-forecast-api/internal/combination"
	"github.com/vfg2006/sales-forecast-api/internal/config"
	"github.com/vfg2006/sales-forecast-api/internal/domain"
	"github.com/vfg2006/sales-forecast-api/internal/scheduler"
	"github.com/vfg2006/sales-forecast-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-forecast-api/internal/usecases/curating"
	"github.com/vfg2006/sales-forecast-api/internal/usecases/forecasting"
	"github.com/vfg2006/sales-forecast-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.L.Fatal(err)
	}

	log.Configure(cfg.App.LogLevel)
	log.L.WithField("app_version", cfg.App.Version).Info("Configuração carregada")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var pgConn *postgres.Connection
	if cfg.Database.Enabled {
		pgConn = pgconn(ctx, cfg.Database)
		defer pgConn.Close()
	}

	encoder, err := ledger.LoadEncoder(cfg.Artifacts.Dir)
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao carregar a codificação de features")
	}

	snapshot, err := loadSnapshot(ctx, cfg, pgConn)
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao carregar o snapshot de datas iniciais")
	}
	index := combination.NewIndex(snapshot)

	predictor, err := newPredictor(ctx, cfg.Model)
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao inicializar o modelo")
	}

	forecastService, err := forecasting.NewService(index, encoder, predictor, forecasting.Options{
		MaxWorkers:   cfg.Forecast.MaxWorkers,
		MaxHorizon:   cfg.Forecast.MaxHorizon,
		ModelTimeout: cfg.Model.Timeout,
	})
	if err != nil {
		log.L.WithError(err).Fatal("Modelo e codificação incompatíveis")
	}

	if pgConn != nil {
		forecastService.WithHistory(repository.NewForecastRunRepository(pgConn))
	}

	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.L.WithError(err).Warn("Redis indisponível, seguindo sem cache de previsões")
		} else {
			defer redisClient.Close()
			forecastService.WithCache(cache.NewRedisForecastCache(redisClient, cfg.Redis.TTL))
		}
	}

	var authenticator authenticating.Authenticator
	if cfg.Auth.Enabled {
		authenticator, err = authenticating.NewService(cfg.Auth)
		if err != nil {
			log.L.WithError(err).Fatal("Erro ao carregar clientes da API")
		}
	}

	curationJob := curating.NewJob(
		ledger.NewFileSource(cfg.Artifacts.LedgerPath),
		curating.NewPipeline(
			curating.WithParetoThreshold(cfg.CurationSync.ParetoThreshold),
			curating.WithKitMarker(cfg.CurationSync.KitMarker),
		),
		ledger.NewArtifactStore(cfg.Artifacts.Dir),
	)
	if pgConn != nil {
		curationJob.WithPublisher(repository.NewCombinationStartRepository(pgConn))
	}

	curationSyncService := scheduler.NewCurationSyncService(curationJob, cfg.CurationSync)
	if err := curationSyncService.Start(ctx); err != nil {
		log.L.WithError(err).Error("Erro ao iniciar o agendador de curadoria")
	} else {
		log.L.Info("Agendador de curadoria iniciado com sucesso")
	}

	server, err := api.New(cfg, api.Dependencies{
		Forecaster:    forecastService,
		Authenticator: authenticator,
		CurationSync:  curationSyncService,
		Combinations:  index.Len(),
	})
	if err != nil {
		log.L.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		log.L.Error(err)
		os.Exit(1)
	}
}

// pgconn aplica as migrações e abre a conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	if err := postgres.RunMigrations(dbConfig); err != nil {
		log.L.WithError(err).Fatal("Erro ao aplicar migrações do PostgreSQL")
	}

	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	log.L.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}

// loadSnapshot lê o snapshot do arquivo da curadoria ou da tabela publicada no banco
func loadSnapshot(ctx context.Context, cfg *config.Config, pgConn *postgres.Connection) ([]domain.CombinationStart, error) {
	if cfg.Artifacts.SnapshotSource == "postgres" {
		return repository.NewCombinationStartRepository(pgConn).ListAll(ctx)
	}
	return ledger.LoadSnapshot(cfg.Artifacts.Dir)
}

func newPredictor(ctx context.Context, cfg config.Model) (forecasting.Predictor, error) {
	if cfg.Kind == "remote" {
		predictor := model.NewRemotePredictor(modelclient.NewClient(cfg))
		if err := predictor.CheckConnection(ctx); err != nil {
			log.L.WithError(err).WithField("model_url", cfg.URL).Warn("Servidor do modelo não respondeu ao ping")
		}
		if cfg.SchemaFingerprint != "" {
			return predictor.Pinned(cfg.SchemaFingerprint), nil
		}
		log.L.Warn("MODEL_SCHEMA_FINGERPRINT não definido, codificação do modelo remoto não será verificada")
		return predictor, nil
	}

	return linear.LoadFile(cfg.Path)
}
