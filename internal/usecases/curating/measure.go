package curating

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// DivByZeroSentinel é o valor que a planilha de origem grava em divisões por zero
const DivByZeroSentinel = "#DIV/0!"

// MissingReason explica por que um valor ficou ausente
type MissingReason int

const (
	NotMissing MissingReason = iota
	MissingEmpty
	MissingSentinel
	MissingUnparseable
)

func (r MissingReason) String() string {
	switch r {
	case NotMissing:
		return "ok"
	case MissingEmpty:
		return "vazio"
	case MissingSentinel:
		return "sentinela"
	case MissingUnparseable:
		return "ilegível"
	default:
		return "desconhecido"
	}
}

// Measure é um valor numérico opcional: Valid falso significa ausente, com o motivo
type Measure struct {
	Value  float64
	Valid  bool
	Reason MissingReason
}

// ParseMeasure interpreta um número com vírgula decimal ("1234,56").
// Dados ruins viram ausência, nunca erro.
func ParseMeasure(raw string) Measure {
	s := strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	if s == "" {
		return Measure{Reason: MissingEmpty}
	}
	if s == DivByZeroSentinel {
		return Measure{Reason: MissingSentinel}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return Measure{Reason: MissingUnparseable}
	}

	value, _ := d.Float64()
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return Measure{Reason: MissingUnparseable}
	}

	return Measure{Value: value, Valid: true}
}

// parseCalendar lê ano ou mês, aceitando a forma float ("2023.0") que a exportação às vezes gera
func parseCalendar(raw string) (int, bool) {
	m := ParseMeasure(raw)
	if !m.Valid || m.Value != math.Trunc(m.Value) {
		return 0, false
	}
	return int(m.Value), true
}
