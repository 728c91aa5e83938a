package handler

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/sales-forecast-api/pkg/apiErrors"
	"github.com/vfg2006/sales-forecast-api/pkg/log"
)

// Tipos de cron job que podem ser executados manualmente
const (
	CronJobTypeCuration = "curation"
	CronJobTypeAll      = "all"
)

// CurationSyncer é implementado por scheduler.CurationSyncService
type CurationSyncer interface {
	TriggerManualSync(ctx context.Context) bool
	GetStatus() map[string]any
}

// CronJobServices contém os serviços de cron que podem ser executados manualmente
type CronJobServices struct {
	CurationSyncService CurationSyncer
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		log.ForContext(r.Context()).WithField("cron_type", cronType).Info("Execução manual de cron job solicitada")

		switch cronType {
		case CronJobTypeCuration, CronJobTypeAll:
			if services.CurationSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrServiceDisabled, "Serviço de curadoria não disponível", nil)
				return
			}
			if !services.CurationSyncService.TriggerManualSync(r.Context()) {
				writeJSON(w, http.StatusConflict, map[string]any{
					"message": "Curadoria já em andamento",
					"type":    cronType,
				})
				return
			}
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: curation, all", nil)
			return
		}

		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		if services.CurationSyncService != nil {
			status[CronJobTypeCuration] = services.CurationSyncService.GetStatus()
		}

		writeJSON(w, http.StatusOK, status)
	}
}
