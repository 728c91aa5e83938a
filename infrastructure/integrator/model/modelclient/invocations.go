package modelclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"

	jsoniter "github.com/json-iterator/go"
	modeldomain "github.com/vfg2006/sales-forecast-api/infrastructure/integrator/model/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func (c *MLflowClient) Invoke(ctx context.Context, payload modeldomain.InvocationRequest) ([]float64, error) {
	endpoint, err := c.endpoint("/invocations")
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar requisição: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler a resposta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("requisição falhou com status: %s: %s", resp.Status, truncate(raw, 200))
	}

	predictions, err := decodePredictions(raw)
	if err != nil {
		return nil, err
	}

	if len(predictions) != len(payload.DataframeSplit.Data) {
		return nil, fmt.Errorf("servidor devolveu %d previsões para %d linhas", len(predictions), len(payload.DataframeSplit.Data))
	}

	return predictions, nil
}

// Ping consulta o /ping do servidor de modelos
func (c *MLflowClient) Ping(ctx context.Context) error {
	endpoint, err := c.endpoint("/ping")
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("requisição falhou com status: %s", resp.Status)
	}
	return nil
}

func (c *MLflowClient) endpoint(route string) (string, error) {
	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("erro ao analisar a URL base: %w", err)
	}
	endpoint.Path = path.Join(endpoint.Path, route)
	return endpoint.String(), nil
}

func decodePredictions(raw []byte) ([]float64, error) {
	trimmed := bytes.TrimSpace(raw)

	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []float64
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("erro ao decodificar a resposta: %w", err)
		}
		return list, nil
	}

	var response modeldomain.InvocationResponse
	if err := json.Unmarshal(trimmed, &response); err != nil {
		return nil, fmt.Errorf("erro ao decodificar a resposta: %w", err)
	}
	if response.Predictions == nil {
		return nil, fmt.Errorf("resposta sem o campo predictions")
	}
	return response.Predictions, nil
}

func truncate(raw []byte, n int) string {
	if len(raw) <= n {
		return string(raw)
	}
	return string(raw[:n]) + "..."
}
