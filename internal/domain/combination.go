package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// CombinationKey identifica uma série de vendas prevista de forma independente
type CombinationKey struct {
	BusinessUnit string `json:"businessUnit"`
	Region       string `json:"region"`
	Channel      string `json:"channel"`
	BrandLine    string `json:"brandLine"`
	ProductCode  string `json:"productCode"`
	ProductName  string `json:"productName"`
}

// Normalized devolve a chave com o código de produto na forma canônica.
// O booleano é falso quando o código não representa um inteiro.
func (k CombinationKey) Normalized() (CombinationKey, bool) {
	code, ok := NormalizeProductCode(k.ProductCode)
	if !ok {
		return k, false
	}
	k.ProductCode = code
	return k, true
}

// Missing lista os campos obrigatórios vazios
func (k CombinationKey) Missing() []string {
	var missing []string
	fields := []struct {
		name  string
		value string
	}{
		{"businessUnit", k.BusinessUnit},
		{"region", k.Region},
		{"channel", k.Channel},
		{"brandLine", k.BrandLine},
		{"productCode", k.ProductCode},
		{"productName", k.ProductName},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

func (k CombinationKey) String() string {
	return fmt.Sprintf("%s|%s|%s|%s|%s|%s",
		k.BusinessUnit, k.Region, k.Channel, k.BrandLine, k.ProductCode, k.ProductName)
}

// NormalizeProductCode converte o código de produto para texto inteiro canônico.
// Aceita "42", " 042 " e "42.0" (código lido como float).
func NormalizeProductCode(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return strconv.FormatInt(n, 10), true
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return "", false
	}
	if f > math.MaxInt64 || f < math.MinInt64 {
		return "", false
	}

	return strconv.FormatInt(int64(f), 10), true
}

// CombinationStart é uma linha do snapshot de datas mínimas
type CombinationStart struct {
	Key   CombinationKey `json:"combination"`
	Start YearMonth      `json:"start"`
}
