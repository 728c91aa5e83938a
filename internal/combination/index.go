// Package combination resolve a data inicial de histórico de cada combinação de venda.
package combination

import (
	"errors"
	"fmt"

	"github.com/vfg2006/sales-forecast-api/internal/domain"
	"github.com/vfg2006/sales-forecast-api/pkg/log"
)

var ErrCombinationNotFound = errors.New("combinação de variáveis não encontrada")

// NotFoundError carrega a combinação exata que não teve correspondência
type NotFoundError struct {
	Key domain.CombinationKey
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCombinationNotFound.Error(), e.Key.String())
}

func (e *NotFoundError) Unwrap() error {
	return ErrCombinationNotFound
}

// Index é construído uma vez a partir do snapshot e depois só é lido.
// Leituras concorrentes não precisam de trava.
type Index struct {
	starts map[domain.CombinationKey]domain.YearMonth
}

// NewIndex constrói o índice. Linhas com código de produto inválido são ignoradas;
// se uma chave aparecer mais de uma vez, vale a primeira e um aviso é registrado.
func NewIndex(rows []domain.CombinationStart) *Index {
	starts := make(map[domain.CombinationKey]domain.YearMonth, len(rows))

	for i, row := range rows {
		key, ok := row.Key.Normalized()
		if !ok {
			log.L.WithFields(log.Fields{
				"combination_row":  i,
				"combination_code": row.Key.ProductCode,
			}).Warn("combination: código de produto inválido no snapshot, linha ignorada")
			continue
		}

		if existing, dup := starts[key]; dup {
			log.L.WithFields(log.Fields{
				"combination_key":       key.String(),
				"combination_kept":      existing.String(),
				"combination_discarded": row.Start.String(),
			}).Warn("combination: chave duplicada no snapshot, mantendo a primeira ocorrência")
			continue
		}

		starts[key] = row.Start
	}

	return &Index{starts: starts}
}

// Lookup devolve o primeiro mês com vendas registradas para a combinação.
// A comparação é exata nos seis campos, com o código de produto normalizado.
func (idx *Index) Lookup(key domain.CombinationKey) (domain.YearMonth, error) {
	normalized, ok := key.Normalized()
	if !ok {
		return domain.YearMonth{}, &NotFoundError{Key: key}
	}

	start, found := idx.starts[normalized]
	if !found {
		return domain.YearMonth{}, &NotFoundError{Key: key}
	}

	return start, nil
}

// Len devolve o número de combinações indexadas
func (idx *Index) Len() int {
	return len(idx.starts)
}
