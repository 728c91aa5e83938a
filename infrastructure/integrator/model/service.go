// Package model integra o modelo de regressão treinado fora deste serviço.
package model

import (
	"context"
	"fmt"

	modeldomain "github.com/vfg2006/sales-forecast-api/infrastructure/integrator/model/domain"
	"github.com/vfg2006/sales-forecast-api/infrastructure/integrator/model/modelclient"
	"github.com/vfg2006/sales-forecast-api/internal/encoding"
)

// RemotePredictor pontua uma linha de features por vez no servidor de modelos
type RemotePredictor struct {
	Client modelclient.Client
}

func NewRemotePredictor(client modelclient.Client) *RemotePredictor {
	return &RemotePredictor{Client: client}
}

func (p *RemotePredictor) Predict(ctx context.Context, row encoding.FeatureRow) (float64, error) {
	req := modeldomain.InvocationRequest{
		DataframeSplit: modeldomain.DataframeSplit{
			Columns: row.Columns,
			Data:    [][]float64{row.Values},
		},
	}

	predictions, err := p.Client.Invoke(ctx, req)
	if err != nil {
		return 0, fmt.Errorf("erro ao consultar modelo para %s: %w", row.Period, err)
	}

	return predictions[0], nil
}

// PinnedPredictor declara a impressão digital da codificação com que o modelo
// remoto foi treinado, já que /invocations não expõe esse metadado
type PinnedPredictor struct {
	*RemotePredictor
	Fingerprint string
}

func (p *RemotePredictor) Pinned(fingerprint string) *PinnedPredictor {
	return &PinnedPredictor{RemotePredictor: p, Fingerprint: fingerprint}
}

func (p *PinnedPredictor) SchemaFingerprint() string {
	return p.Fingerprint
}

func (p *RemotePredictor) CheckConnection(ctx context.Context) error {
	return p.Client.Ping(ctx)
}
