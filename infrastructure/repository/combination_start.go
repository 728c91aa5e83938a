package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/sales-forecast-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-forecast-api/internal/domain"
)

const (
	combinationStartsTable = "combination_starts"
	insertChunkSize        = 500
)

var combinationStartColumns = []string{
	"business_unit",
	"region",
	"channel",
	"brand_line",
	"product_code",
	"product_name",
	"start_year",
	"start_month",
}

//go:generate mockgen -source=combination_start.go -destination=mocks/mock_combination_start.go -package=mocks

type CombinationStartRepository interface {
	ReplaceAll(ctx context.Context, snapshot []domain.CombinationStart) error
	ListAll(ctx context.Context) ([]domain.CombinationStart, error)
}

type combinationStartRepository struct {
	conn postgres.Conn
}

func NewCombinationStartRepository(conn postgres.Conn) CombinationStartRepository {
	return &combinationStartRepository{
		conn: conn,
	}
}

// ReplaceAll troca o snapshot inteiro em uma única transação
func (r *combinationStartRepository) ReplaceAll(ctx context.Context, snapshot []domain.CombinationStart) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+combinationStartsTable); err != nil {
			return fmt.Errorf("erro ao limpar snapshot: %w", err)
		}

		for from := 0; from < len(snapshot); from += insertChunkSize {
			to := min(from+insertChunkSize, len(snapshot))

			query, args, err := buildInsertStarts(snapshot[from:to])
			if err != nil {
				return fmt.Errorf("erro ao construir a query: %w", err)
			}

			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("erro ao inserir snapshot: %w", err)
			}
		}

		return nil
	})
}

func (r *combinationStartRepository) ListAll(ctx context.Context) ([]domain.CombinationStart, error) {
	query, args, err := squirrel.
		Select(combinationStartColumns...).
		From(combinationStartsTable).
		OrderBy("id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	snapshot := make([]domain.CombinationStart, 0)
	for rows.Next() {
		var s domain.CombinationStart
		err := rows.Scan(
			&s.Key.BusinessUnit,
			&s.Key.Region,
			&s.Key.Channel,
			&s.Key.BrandLine,
			&s.Key.ProductCode,
			&s.Key.ProductName,
			&s.Start.Year,
			&s.Start.Month,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler linha do snapshot: %w", err)
		}
		snapshot = append(snapshot, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar snapshot: %w", err)
	}

	return snapshot, nil
}

func buildInsertStarts(chunk []domain.CombinationStart) (string, []any, error) {
	builder := squirrel.
		Insert(combinationStartsTable).
		Columns(combinationStartColumns...).
		PlaceholderFormat(squirrel.Dollar)

	for _, s := range chunk {
		builder = builder.Values(
			s.Key.BusinessUnit,
			s.Key.Region,
			s.Key.Channel,
			s.Key.BrandLine,
			s.Key.ProductCode,
			s.Key.ProductName,
			s.Start.Year,
			s.Start.Month,
		)
	}

	return builder.ToSql()
}
