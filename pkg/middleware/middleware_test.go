package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/justinas/alice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-forecast-api/internal/config"
	"github.com/vfg2006/sales-forecast-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-forecast-api/pkg/log"
	"golang.org/x/crypto/bcrypt"
)

func authService(t *testing.T) *authenticating.Service {
	t.Helper()
	analyst, err := bcrypt.GenerateFromPassword([]byte("s3nha"), bcrypt.MinCost)
	require.NoError(t, err)
	admin, err := bcrypt.GenerateFromPassword([]byte("adm1n"), bcrypt.MinCost)
	require.NoError(t, err)

	service, err := authenticating.NewService(config.Auth{
		Secret:   "segredo",
		TokenTTL: time.Hour,
		Clients:  []string{"dashboard:2:" + string(analyst), "ops:1:" + string(admin)},
	})
	require.NoError(t, err)
	return service
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestAuthAndRoleMiddleware(t *testing.T) {
	log.SetupTestLogger()

	service := authService(t)
	analystToken, err := service.Login("dashboard", "s3nha")
	require.NoError(t, err)
	adminToken, err := service.Login("ops", "adm1n")
	require.NoError(t, err)

	protected := alice.New(AuthMiddleware(service), AdminOnly()).Then(okHandler)

	tests := []struct {
		name   string
		path   string
		header string
		status int
	}{
		{name: "Rota pública sem token", path: "/healthcheck", status: http.StatusOK},
		{name: "Sem cabeçalho", path: "/v1/cron/status", status: http.StatusUnauthorized},
		{name: "Sem prefixo Bearer", path: "/v1/cron/status", header: adminToken, status: http.StatusUnauthorized},
		{name: "Token inválido", path: "/v1/cron/status", header: "Bearer abc", status: http.StatusUnauthorized},
		{name: "Analista em rota de administrador", path: "/v1/cron/status", header: "Bearer " + analystToken, status: http.StatusForbidden},
		{name: "Administrador autorizado", path: "/v1/cron/status", header: "Bearer " + adminToken, status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler := protected
			if tt.path == "/healthcheck" {
				handler = AuthMiddleware(service)(okHandler)
			}
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestCors(t *testing.T) {
	handler := Cors([]string{"http://localhost:8050"})(okHandler)

	t.Run("Origem permitida recebe cabeçalhos", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/forecast", nil)
		req.Header.Set("Origin", "http://localhost:8050")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "http://localhost:8050", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Origem desconhecida não recebe cabeçalhos", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/forecast", nil)
		req.Header.Set("Origin", "http://evil.example")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Preflight responde sem chamar o handler", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/v1/forecast", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestLoggingAndPanic(t *testing.T) {
	log.SetupTestLogger()

	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("falha")
	})
	handler := alice.New(LoggingMiddleware(), LogPanicMiddleware()).Then(panicking)

	req := httptest.NewRequest(http.MethodGet, "/v1/forecast", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(CorrelationHeader))
	assert.Contains(t, rec.Body.String(), "SRV_001")
}
