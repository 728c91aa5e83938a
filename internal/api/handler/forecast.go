package handler

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/sales-forecast-api/internal/domain"
	"github.com/vfg2006/sales-forecast-api/internal/usecases/forecasting"
	"github.com/vfg2006/sales-forecast-api/pkg/apiErrors"
	"github.com/vfg2006/sales-forecast-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ProductCode aceita o código como texto ou número no corpo da requisição
type ProductCode string

func (c *ProductCode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = ProductCode(s)
		return nil
	}
	if _, err := strconv.ParseFloat(string(data), 64); err != nil {
		return errors.New("productCode deve ser texto ou número")
	}
	*c = ProductCode(data)
	return nil
}

type ForecastRequest struct {
	HorizonMonths *int        `json:"horizonMonths"`
	BusinessUnit  string      `json:"businessUnit"`
	Region        string      `json:"region"`
	Channel       string      `json:"channel"`
	BrandLine     string      `json:"brandLine"`
	ProductCode   ProductCode `json:"productCode"`
	ProductName   string      `json:"productName"`
}

func (r ForecastRequest) key() domain.CombinationKey {
	return domain.CombinationKey{
		BusinessUnit: strings.TrimSpace(r.BusinessUnit),
		Region:       strings.TrimSpace(r.Region),
		Channel:      strings.TrimSpace(r.Channel),
		BrandLine:    strings.TrimSpace(r.BrandLine),
		ProductCode:  strings.TrimSpace(string(r.ProductCode)),
		ProductName:  strings.TrimSpace(r.ProductName),
	}
}

type ForecastResponse struct {
	ID       string                 `json:"id"`
	Start    domain.YearMonth       `json:"start"`
	Result   []domain.ForecastPoint `json:"result"`
	Failures []domain.PointFailure  `json:"failures"`
	Complete bool                   `json:"complete"`
}

func newForecastResponse(result *domain.ForecastResult) ForecastResponse {
	return ForecastResponse{
		ID:       result.ID,
		Start:    result.Start,
		Result:   result.Points,
		Failures: result.Failures,
		Complete: result.Complete(),
	}
}

// CreateForecast prevê as vendas de uma combinação para os próximos meses
func CreateForecast(service forecasting.Forecaster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var req ForecastRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", err.Error())
			return
		}

		key := req.key()
		missing := key.Missing()
		if req.HorizonMonths == nil {
			missing = append(missing, "horizonMonths")
		}
		if len(missing) > 0 {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Campos obrigatórios ausentes", map[string]any{
				"fields": missing,
			})
			return
		}

		result, err := service.Forecast(r.Context(), key, *req.HorizonMonths)
		if err != nil {
			if errors.Is(err, forecasting.ErrEmptyForecast) && result != nil {
				logger.WithError(err).Error("Nenhum mês do horizonte foi previsto")
				apiErrors.WriteError(w, apiErrors.ErrEmptyForecast, "Nenhum mês do horizonte pôde ser previsto", map[string]any{
					"failures": result.Failures,
				})
				return
			}
			writeForecastError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, newForecastResponse(result))
	}
}

// GetForecast devolve uma execução de previsão guardada no histórico
func GetForecast(service forecasting.Forecaster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if strings.TrimSpace(id) == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da previsão não informado", nil)
			return
		}

		result, err := service.GetForecast(r.Context(), id)
		if err != nil {
			writeForecastError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, newForecastResponse(result))
	}
}

// writeForecastError traduz os erros do caso de uso para os códigos da API
func writeForecastError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, forecasting.ErrCombinationNotFound):
		apiErrors.WriteError(w, apiErrors.ErrCombinationNotFound, err.Error(), nil)
	case errors.Is(err, forecasting.ErrInvalidHorizon):
		apiErrors.WriteError(w, apiErrors.ErrInvalidHorizon, err.Error(), nil)
	case errors.Is(err, forecasting.ErrSchemaMismatch):
		apiErrors.WriteError(w, apiErrors.ErrSchemaMismatch, err.Error(), nil)
	case errors.Is(err, forecasting.ErrForecastNotFound):
		apiErrors.WriteError(w, apiErrors.ErrForecastNotFound, "Previsão não encontrada", nil)
	case errors.Is(err, forecasting.ErrHistoryDisabled):
		apiErrors.WriteError(w, apiErrors.ErrServiceDisabled, "Histórico de previsões desabilitado", nil)
	case forecasting.IsRequestError(err):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
	default:
		log.ForContext(r.Context()).WithError(err).Error("Erro ao processar previsão")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao processar previsão", nil)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.L.WithError(err).Error("Erro ao enviar resposta")
	}
}
