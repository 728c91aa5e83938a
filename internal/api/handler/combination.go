package handler

import (
	"errors"
	"net/http"

	"github.com/vfg2006/sales-forecast-api/internal/domain"
	"github.com/vfg2006/sales-forecast-api/internal/usecases/forecasting"
	"github.com/vfg2006/sales-forecast-api/pkg/apiErrors"
)

type CombinationStartResponse struct {
	Combination domain.CombinationKey `json:"combination"`
	Start       domain.YearMonth      `json:"start"`
	Period      string                `json:"period"`
}

// GetCombinationStart devolve o primeiro mês com vendas de uma combinação.
// Os seis campos da chave vêm na query string.
func GetCombinationStart(service forecasting.Forecaster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		key := ForecastRequest{
			BusinessUnit: query.Get("businessUnit"),
			Region:       query.Get("region"),
			Channel:      query.Get("channel"),
			BrandLine:    query.Get("brandLine"),
			ProductCode:  ProductCode(query.Get("productCode")),
			ProductName:  query.Get("productName"),
		}.key()

		if missing := key.Missing(); len(missing) > 0 {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Parâmetros obrigatórios ausentes", map[string]any{
				"fields": missing,
			})
			return
		}

		start, err := service.LookupStart(key)
		if err != nil {
			if errors.Is(err, forecasting.ErrCombinationNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrCombinationNotFound, err.Error(), nil)
				return
			}
			writeForecastError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, CombinationStartResponse{
			Combination: key,
			Start:       start,
			Period:      start.String(),
		})
	}
}
