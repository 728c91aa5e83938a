package domain

// DataframeSplit é o formato orientado a colunas aceito pelo endpoint /invocations
type DataframeSplit struct {
	Columns []string    `json:"columns"`
	Data    [][]float64 `json:"data"`
}

type InvocationRequest struct {
	DataframeSplit DataframeSplit `json:"dataframe_split"`
}

// InvocationResponse cobre as duas formas de resposta do servidor de modelos:
// {"predictions": [...]} e a lista pura
type InvocationResponse struct {
	Predictions []float64 `json:"predictions"`
}
