package domain

import "fmt"

// YearMonth é um mês de calendário
type YearMonth struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func (ym YearMonth) Valid() bool {
	return ym.Month >= 1 && ym.Month <= 12
}

// Before compara cronologicamente
func (ym YearMonth) Before(other YearMonth) bool {
	if ym.Year != other.Year {
		return ym.Year < other.Year
	}
	return ym.Month < other.Month
}

// AddMonths desloca n meses de calendário, atravessando viradas de ano
func (ym YearMonth) AddMonths(n int) YearMonth {
	total := ym.Year*12 + (ym.Month - 1) + n
	year := total / 12
	month := total % 12
	if month < 0 {
		month += 12
		year--
	}
	return YearMonth{Year: year, Month: month + 1}
}

// String no formato mm-yyyy, o mesmo usado nos períodos da API
func (ym YearMonth) String() string {
	return fmt.Sprintf("%02d-%04d", ym.Month, ym.Year)
}
