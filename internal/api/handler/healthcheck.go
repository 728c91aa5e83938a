package handler

import (
	"net/http"
	"time"

	"github.com/vfg2006/sales-forecast-api/pkg/log"
)

type HealthcheckResponse struct {
	Status       string    `json:"status"`
	Version      string    `json:"version"`
	Combinations int       `json:"combinations"`
	Time         time.Time `json:"time"`
}

// HealthcheckHandler responde à verificação de vida com a versão em execução
// e o número de combinações carregadas no índice
func HealthcheckHandler(version string, combinations int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		err := json.NewEncoder(w).Encode(HealthcheckResponse{
			Status:       "ok",
			Version:      version,
			Combinations: combinations,
			Time:         time.Now(),
		})
		if err != nil {
			log.L.WithError(err).Warn("error responding to healthcheck")
		}
	})
}
