package handler

import (
	"net/http"

	"github.com/vfg2006/sales-forecast-api/internal/api/handler/router"
	"github.com/vfg2006/sales-forecast-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-forecast-api/internal/usecases/forecasting"
	"github.com/vfg2006/sales-forecast-api/pkg/middleware"
)

// Access define os middlewares de papel das rotas. Com a autenticação desligada
// nenhuma rota é restrita.
type Access struct {
	Enabled bool
}

func (a Access) adminOnly() []func(http.Handler) http.Handler {
	if !a.Enabled {
		return nil
	}
	return []func(http.Handler) http.Handler{middleware.AdminOnly()}
}

func (a Access) allRoles() []func(http.Handler) http.Handler {
	if !a.Enabled {
		return nil
	}
	return []func(http.Handler) http.Handler{middleware.AllRoles()}
}

func Healthcheck(version string, combinations int) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(version, combinations),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
	}
}

func Forecasts(service forecasting.Forecaster, access Access) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/forecast",
			Method:      http.MethodPost,
			Handler:     CreateForecast(service),
			Middlewares: access.allRoles(),
		},
		{
			Path:        "/v1/forecasts/:id",
			Method:      http.MethodGet,
			Handler:     GetForecast(service),
			Middlewares: access.allRoles(),
		},
		{
			Path:        "/v1/combinations/start",
			Method:      http.MethodGet,
			Handler:     GetCombinationStart(service),
			Middlewares: access.allRoles(),
		},
	}
}

func CronJobs(services CronJobServices, access Access) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: access.adminOnly(),
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: access.adminOnly(),
		},
	}
}
