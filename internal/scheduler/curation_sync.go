package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/vfg2006/sales-forecast-api/internal/config"
	"github.com/vfg2006/sales-forecast-api/internal/usecases/curating"
	"github.com/vfg2006/sales-forecast-api/pkg/log"
)

// CurationSyncService reexecuta a curadoria do razão no agendamento configurado
type CurationSyncService struct {
	scheduler *gocron.Scheduler
	config    config.CurationSync
	runner    curating.Runner

	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastReport          *curating.Report
	lastError           string
}

func NewCurationSyncService(runner curating.Runner, cfg config.CurationSync) *CurationSyncService {
	log.L.WithFields(log.Fields{
		"cron_schedule": cfg.CronSchedule,
		"cron_enabled":  cfg.Enabled,
	}).Info("Configuração do agendador de curadoria carregada")

	return &CurationSyncService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    cfg,
		runner:    runner,
	}
}

// Start agenda a curadoria e para o agendador quando o contexto for cancelado
func (s *CurationSyncService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		log.L.Info("Curadoria agendada desabilitada por configuração")
		return nil
	}

	log.L.WithField("cron_schedule", s.config.CronSchedule).Info("Iniciando agendador de curadoria")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.sync(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar curadoria: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		log.L.Info("Parando agendador de curadoria")
		s.scheduler.Stop()
	}()

	return nil
}

// sync roda uma curadoria por vez; chamadas concorrentes são ignoradas
func (s *CurationSyncService) sync(ctx context.Context) {
	if !s.claim() {
		log.L.Info("Curadoria já em andamento, ignorando")
		return
	}
	s.run(ctx)
}

// claim marca a curadoria como em andamento, se nenhuma estiver
func (s *CurationSyncService) claim() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		return false
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	return true
}

// run executa a curadoria já reservada por claim e libera a reserva ao terminar
func (s *CurationSyncService) run(ctx context.Context) {
	startTime := time.Now()
	report, err := s.runner.Run(ctx)

	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()

	if err != nil {
		s.lastError = err.Error()
		log.L.WithError(err).Error("Erro ao executar curadoria agendada")
		return
	}

	s.lastError = ""
	s.lastReport = report
	log.L.WithFields(log.Fields{
		"cron_duration_ms": time.Since(startTime).Milliseconds(),
		"cron_output_rows": report.OutputRows,
	}).Info("Curadoria agendada concluída")
}

// TriggerManualSync inicia a curadoria fora do agendamento, em segundo plano.
// Retorna false quando já existe uma execução em andamento.
func (s *CurationSyncService) TriggerManualSync(ctx context.Context) bool {
	if !s.claim() {
		log.L.Info("Curadoria já em andamento, ignorando solicitação manual")
		return false
	}

	log.L.Info("Iniciando curadoria manual")
	go s.run(context.WithoutCancel(ctx))
	return true
}

// GetStatus retorna o status atual da curadoria
func (s *CurationSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := map[string]any{
		"sync_running":           s.syncRunning,
		"sync_cron":              s.config.CronSchedule,
		"sync_enabled":           s.config.Enabled,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
	if s.lastError != "" {
		status["last_error"] = s.lastError
	}
	if s.lastReport != nil {
		status["last_report"] = s.lastReport
	}
	return status
}
