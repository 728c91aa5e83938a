// Package horizon expande um mês inicial em uma sequência de meses de calendário.
package horizon

import (
	"errors"
	"fmt"

	"github.com/vfg2006/sales-forecast-api/internal/domain"
)

var (
	ErrInvalidHorizon = errors.New("horizonte deve ser maior que zero")
	ErrInvalidStart   = errors.New("mês inicial inválido")
)

// Expand devolve exatamente count meses consecutivos a partir de start, inclusive.
// A aritmética é de calendário: dezembro é seguido por janeiro do ano seguinte.
func Expand(start domain.YearMonth, count int) ([]domain.YearMonth, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidHorizon, count)
	}
	if !start.Valid() {
		return nil, fmt.Errorf("%w: %d-%d", ErrInvalidStart, start.Year, start.Month)
	}

	points := make([]domain.YearMonth, count)
	for i := range points {
		points[i] = start.AddMonths(i)
	}

	return points, nil
}
