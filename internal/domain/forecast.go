package domain

import "time"

// ForecastPoint é a previsão de um mês do horizonte
type ForecastPoint struct {
	Year           int     `json:"year"`
	Month          int     `json:"month"`
	PredictedSales float64 `json:"predictedSales"`
}

// PointFailure registra um mês cuja previsão falhou e foi excluído do resultado
type PointFailure struct {
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Error string `json:"error"`
}

// ForecastResult é o resultado de uma previsão. O tamanho de Points é o que vale:
// meses cuja previsão falhou aparecem em Failures e não em Points.
type ForecastResult struct {
	ID        string          `json:"id,omitempty"`
	Key       CombinationKey  `json:"combination"`
	Start     YearMonth       `json:"start"`
	Requested int             `json:"requested"`
	Points    []ForecastPoint `json:"result"`
	Failures  []PointFailure  `json:"failures"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Complete indica que todos os meses solicitados foram previstos
func (r *ForecastResult) Complete() bool {
	return len(r.Failures) == 0 && len(r.Points) == r.Requested
}
