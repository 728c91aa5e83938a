package modelclient

import (
	"context"
	"net/http"
	"time"

	modeldomain "github.com/vfg2006/sales-forecast-api/infrastructure/integrator/model/domain"
	"github.com/vfg2006/sales-forecast-api/internal/config"
)

//go:generate mockgen -source=client.go -destination=../mocks/mock_client.go -package=mocks

type Client interface {
	Invoke(ctx context.Context, req modeldomain.InvocationRequest) ([]float64, error)
	Ping(ctx context.Context) error
}

type MLflowClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient cria o cliente do servidor de modelos. O timeout do http.Client é só
// um teto; o limite por previsão vem do contexto.
func NewClient(cfg config.Model) Client {
	timeout := cfg.Timeout * 2
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &MLflowClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: cfg.URL,
	}
}
