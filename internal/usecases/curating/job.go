package curating

import (
	"context"
	"fmt"
	"time"

	"github.com/vfg2006/sales-forecast-api/internal/domain"
	"github.com/vfg2006/sales-forecast-api/pkg/log"
)

//go:generate mockgen -source=job.go -destination=mocks/mock_job.go -package=mocks

// LedgerSource entrega as linhas brutas do razão e quantas foram descartadas na leitura
type LedgerSource interface {
	Load(ctx context.Context) ([]domain.SalesRecord, int, error)
}

// ArtifactSink persiste os artefatos de uma execução
type ArtifactSink interface {
	Save(result *Result) error
}

// SnapshotPublisher substitui o snapshot de datas mínimas em um armazenamento compartilhado
type SnapshotPublisher interface {
	ReplaceAll(ctx context.Context, snapshot []domain.CombinationStart) error
}

// Runner executa uma curadoria completa
type Runner interface {
	Run(ctx context.Context) (*Report, error)
}

// Job liga a fonte do razão, a pipeline e os destinos dos artefatos
type Job struct {
	source    LedgerSource
	pipeline  *Pipeline
	sink      ArtifactSink
	publisher SnapshotPublisher
}

func NewJob(source LedgerSource, pipeline *Pipeline, sink ArtifactSink) *Job {
	return &Job{
		source:   source,
		pipeline: pipeline,
		sink:     sink,
	}
}

// WithPublisher publica o snapshot também no banco depois de gravar os arquivos
func (j *Job) WithPublisher(publisher SnapshotPublisher) *Job {
	j.publisher = publisher
	return j
}

func (j *Job) Run(ctx context.Context) (*Report, error) {
	started := time.Now()

	records, badLines, err := j.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar razão: %w", err)
	}

	result, err := j.pipeline.Run(ctx, records)
	if err != nil {
		return nil, err
	}
	result.Report.WithBadLines(badLines)

	if err := j.sink.Save(result); err != nil {
		return nil, fmt.Errorf("erro ao gravar artefatos: %w", err)
	}

	if j.publisher != nil {
		if err := j.publisher.ReplaceAll(ctx, result.Snapshot); err != nil {
			return nil, fmt.Errorf("erro ao publicar snapshot: %w", err)
		}
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"curation_bad_lines":   badLines,
		"curation_output":      result.Report.OutputRows,
		"curation_duration_ms": time.Since(started).Milliseconds(),
	}).Info("curation: execução concluída")

	return &result.Report, nil
}
