package modelclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	modeldomain "github.com/vfg2006/sales-forecast-api/infrastructure/integrator/model/domain"
	"github.com/vfg2006/sales-forecast-api/internal/config"
)

func request() modeldomain.InvocationRequest {
	return modeldomain.InvocationRequest{
		DataframeSplit: modeldomain.DataframeSplit{
			Columns: []string{"Año", "Mes"},
			Data:    [][]float64{{2024, 1}},
		},
	}
}

func TestMLflowClient_Invoke(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected []float64
		wantErr  bool
	}{
		{
			name:     "Resposta com campo predictions",
			status:   http.StatusOK,
			body:     `{"predictions": [123.5]}`,
			expected: []float64{123.5},
		},
		{
			name:     "Resposta como lista pura",
			status:   http.StatusOK,
			body:     `[42]`,
			expected: []float64{42},
		},
		{
			name:    "Status de erro do servidor",
			status:  http.StatusInternalServerError,
			body:    `{"error_code": "INTERNAL_ERROR"}`,
			wantErr: true,
		},
		{
			name:    "Quantidade de previsões diferente das linhas",
			status:  http.StatusOK,
			body:    `{"predictions": [1, 2]}`,
			wantErr: true,
		},
		{
			name:    "Resposta sem predictions",
			status:  http.StatusOK,
			body:    `{"outra": 1}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/invocations", r.URL.Path)
				assert.Equal(t, http.MethodPost, r.Method)

				body, _ := io.ReadAll(r.Body)
				assert.JSONEq(t, `{"dataframe_split":{"columns":["Año","Mes"],"data":[[2024,1]]}}`, string(body))

				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(config.Model{URL: server.URL, Timeout: time.Second})
			predictions, err := client.Invoke(context.Background(), request())

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, predictions)
		})
	}
}

func TestMLflowClient_Invoke_ContextTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := NewClient(config.Model{URL: server.URL, Timeout: 5 * time.Second})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Invoke(ctx, request())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMLflowClient_Ping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ping" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(config.Model{URL: server.URL})
	assert.NoError(t, client.Ping(context.Background()))
}
