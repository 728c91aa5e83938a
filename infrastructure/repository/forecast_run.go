package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/sales-forecast-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-forecast-api/internal/domain"
)

const (
	forecastRunsTable = "forecast_runs fr"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

//go:generate mockgen -source=forecast_run.go -destination=mocks/mock_forecast_run.go -package=mocks

type ForecastRunRepository interface {
	Save(ctx context.Context, result *domain.ForecastResult) error
	// GetByID devolve nil, nil quando a execução não existe
	GetByID(ctx context.Context, id string) (*domain.ForecastResult, error)
}

type forecastRunRepository struct {
	conn postgres.Conn
}

func NewForecastRunRepository(conn postgres.Conn) ForecastRunRepository {
	return &forecastRunRepository{
		conn: conn,
	}
}

func (r *forecastRunRepository) Save(ctx context.Context, result *domain.ForecastResult) error {
	query, args, err := buildInsertRun(result)
	if err != nil {
		return err
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao gravar previsão: %w", err)
	}
	return nil
}

func (r *forecastRunRepository) GetByID(ctx context.Context, id string) (*domain.ForecastResult, error) {
	query, args, err := squirrel.
		Select(
			"fr.id",
			"fr.business_unit",
			"fr.region",
			"fr.channel",
			"fr.brand_line",
			"fr.product_code",
			"fr.product_name",
			"fr.start_year",
			"fr.start_month",
			"fr.requested",
			"fr.points",
			"fr.failures",
			"fr.created_at",
		).
		From(forecastRunsTable).
		Where(squirrel.Eq{"fr.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var (
		result   domain.ForecastResult
		points   []byte
		failures []byte
	)

	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&result.ID,
		&result.Key.BusinessUnit,
		&result.Key.Region,
		&result.Key.Channel,
		&result.Key.BrandLine,
		&result.Key.ProductCode,
		&result.Key.ProductName,
		&result.Start.Year,
		&result.Start.Month,
		&result.Requested,
		&points,
		&failures,
		&result.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}

	if err := json.Unmarshal(points, &result.Points); err != nil {
		return nil, fmt.Errorf("erro ao decodificar pontos da previsão: %w", err)
	}
	if err := json.Unmarshal(failures, &result.Failures); err != nil {
		return nil, fmt.Errorf("erro ao decodificar falhas da previsão: %w", err)
	}

	return &result, nil
}

func buildInsertRun(result *domain.ForecastResult) (string, []any, error) {
	points, err := json.Marshal(result.Points)
	if err != nil {
		return "", nil, fmt.Errorf("erro ao serializar pontos: %w", err)
	}

	failures := result.Failures
	if failures == nil {
		failures = []domain.PointFailure{}
	}
	failuresJSON, err := json.Marshal(failures)
	if err != nil {
		return "", nil, fmt.Errorf("erro ao serializar falhas: %w", err)
	}

	query, args, err := squirrel.
		Insert("forecast_runs").
		Columns(
			"id",
			"business_unit",
			"region",
			"channel",
			"brand_line",
			"product_code",
			"product_name",
			"start_year",
			"start_month",
			"requested",
			"points",
			"failures",
			"created_at",
		).
		Values(
			result.ID,
			result.Key.BusinessUnit,
			result.Key.Region,
			result.Key.Channel,
			result.Key.BrandLine,
			result.Key.ProductCode,
			result.Key.ProductName,
			result.Start.Year,
			result.Start.Month,
			result.Requested,
			string(points),
			string(failuresJSON),
			result.CreatedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return query, args, nil
}
