package authenticating

import (
	"errors"
	"fmt"

	"github.com/vfg2006/sales-forecast-api/pkg/apiErrors"
)

var (
	ErrInvalidCredentials  = errors.New("credenciais inválidas")
	ErrClientNotFound      = errors.New("cliente não encontrado")
	ErrInvalidToken        = errors.New("token inválido")
	ErrExpiredToken        = errors.New("token expirado")
	ErrMissingRequiredData = errors.New("dados obrigatórios ausentes")

	// ErrInvalidClientEntry indica uma entrada de AUTH_CLIENTS fora do formato id:papel:hash
	ErrInvalidClientEntry = errors.New("cadastro de cliente inválido")
)

// AuthError carrega o código da API e, quando houver, o cliente envolvido
type AuthError struct {
	Err      error
	Code     string
	ClientID string
	Details  string
}

func (e *AuthError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// IsCredentialsError cobre cliente inexistente e segredo incorreto, que a API não distingue
func IsCredentialsError(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrClientNotFound)
}

func IsTokenError(err error) bool {
	return errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrExpiredToken)
}

// APICode devolve o código da API para o erro, SRV_001 quando não há um específico
func APICode(err error) string {
	var authErr *AuthError
	if errors.As(err, &authErr) && authErr.Code != "" {
		return authErr.Code
	}

	switch {
	case IsCredentialsError(err):
		return apiErrors.ErrInvalidCredentials
	case errors.Is(err, ErrExpiredToken):
		return apiErrors.ErrExpiredToken
	case errors.Is(err, ErrInvalidToken):
		return apiErrors.ErrInvalidToken
	case errors.Is(err, ErrMissingRequiredData):
		return apiErrors.ErrMissingRequiredData
	default:
		return apiErrors.ErrInternalServer
	}
}

func NewAuthError(baseErr error, code string, details string) *AuthError {
	return &AuthError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}

func NewClientAuthError(baseErr error, code string, clientID string, details string) *AuthError {
	return &AuthError{
		Err:      baseErr,
		Code:     code,
		ClientID: clientID,
		Details:  details,
	}
}
