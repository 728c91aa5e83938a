// Command curate executa a curadoria uma vez sobre um arquivo do razão e grava
// os artefatos consumidos pela API.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/vfg2006/sales-forecast-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-forecast-api/infrastructure/ledger"
	"github.com/vfg2006/sales-forecast-api/infrastructure/repository"
	"github.com/vfg2006/sales-forecast-api/internal/config"
	"github.com/vfg2006/sales-forecast-api/internal/usecases/curating"
	"github.com/vfg2006/sales-forecast-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.L.Fatal(err)
	}

	ledgerPath := flag.String("ledger", cfg.Artifacts.LedgerPath, "arquivo CSV do razão de vendas")
	outDir := flag.String("out", cfg.Artifacts.Dir, "diretório de saída dos artefatos")
	threshold := flag.Float64("pareto", cfg.CurationSync.ParetoThreshold, "participação acumulada máxima na receita")
	kitMarker := flag.String("kit-marker", cfg.CurationSync.KitMarker, "marcador de kits no nome do produto")
	publish := flag.Bool("publish", false, "substitui o snapshot no PostgreSQL (exige DATABASE_ENABLED)")
	logLevel := flag.String("log-level", cfg.App.LogLevel, "nível de log")
	flag.Parse()

	log.Configure(*logLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	job := curating.NewJob(
		ledger.NewFileSource(*ledgerPath),
		curating.NewPipeline(
			curating.WithParetoThreshold(*threshold),
			curating.WithKitMarker(*kitMarker),
		),
		ledger.NewArtifactStore(*outDir),
	)

	if *publish {
		if !cfg.Database.Enabled {
			log.L.Fatal("-publish exige DATABASE_ENABLED=true")
		}
		if err := postgres.RunMigrations(cfg.Database); err != nil {
			log.L.WithError(err).Fatal("Erro ao aplicar migrações do PostgreSQL")
		}
		conn, err := postgres.NewConnection(ctx, cfg.Database)
		if err != nil {
			log.L.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
		}
		defer conn.Close()
		job.WithPublisher(repository.NewCombinationStartRepository(conn))
	}

	report, err := job.Run(ctx)
	if err != nil {
		log.L.WithError(err).Error("Curadoria falhou")
		os.Exit(1)
	}

	log.L.WithFields(log.Fields{
		"curation_input":        report.InputRows,
		"curation_bad_lines":    report.BadLines,
		"curation_dropped":      report.TotalDropped(),
		"curation_output":       report.OutputRows,
		"curation_combinations": report.Combinations,
		"curation_out_dir":      *outDir,
	}).Info("curation: artefatos gravados")
}
