package handler

import (
	"net/http"

	"github.com/vfg2006/sales-forecast-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-forecast-api/pkg/apiErrors"
	"github.com/vfg2006/sales-forecast-api/pkg/log"
)

type LoginRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

func Login(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		token, err := service.Login(req.ClientID, req.ClientSecret)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).WithField("client_id", req.ClientID).Warn("Falha no login")
			handleLoginError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{
			"token": token,
		})
	}
}

// handleLoginError responde cliente inexistente e segredo incorreto da mesma forma
func handleLoginError(w http.ResponseWriter, err error) {
	code := authenticating.APICode(err)

	message := "Erro interno ao realizar login"
	switch {
	case authenticating.IsCredentialsError(err):
		message = "Credenciais inválidas"
	case code != apiErrors.ErrInternalServer:
		message = err.Error()
	}

	apiErrors.WriteError(w, code, message, nil)
}
