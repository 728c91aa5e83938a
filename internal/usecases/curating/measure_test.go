package curating

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMeasure(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected Measure
	}{
		{name: "Vírgula decimal", raw: "1234,56", expected: Measure{Value: 1234.56, Valid: true}},
		{name: "Espaços ao redor", raw: "  12,5 ", expected: Measure{Value: 12.5, Valid: true}},
		{name: "Ponto decimal", raw: "7.25", expected: Measure{Value: 7.25, Valid: true}},
		{name: "Inteiro negativo", raw: "-3", expected: Measure{Value: -3, Valid: true}},
		{name: "Zero", raw: "0", expected: Measure{Value: 0, Valid: true}},
		{name: "Vazio", raw: "", expected: Measure{Reason: MissingEmpty}},
		{name: "Só espaços", raw: "   ", expected: Measure{Reason: MissingEmpty}},
		{name: "Divisão por zero", raw: "#DIV/0!", expected: Measure{Reason: MissingSentinel}},
		{name: "Texto", raw: "abc", expected: Measure{Reason: MissingUnparseable}},
		{name: "Separador de milhar vira ilegível", raw: "1.234,56", expected: Measure{Reason: MissingUnparseable}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseMeasure(tt.raw))
		})
	}
}

func TestParseCalendar(t *testing.T) {
	v, ok := parseCalendar("2023")
	assert.True(t, ok)
	assert.Equal(t, 2023, v)

	v, ok = parseCalendar("11,0")
	assert.True(t, ok)
	assert.Equal(t, 11, v)

	_, ok = parseCalendar("11,5")
	assert.False(t, ok)

	_, ok = parseCalendar("")
	assert.False(t, ok)
}
