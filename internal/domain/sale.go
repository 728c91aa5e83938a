package domain

// SalesRecord é uma linha bruta do razão de vendas, com os valores ainda como texto
type SalesRecord struct {
	Line         int
	Year         string
	Month        string
	BusinessUnit string
	Region       string
	Channel      string
	BrandLine    string
	ProductCode  string
	ProductName  string
	Gallons      string
	Revenue      string
	GrossProfit  string
	Cost         string
	Margin       string
}

// Fields devolve todos os valores da linha, usado na busca por sentinelas
func (r SalesRecord) Fields() []string {
	return []string{
		r.Year, r.Month, r.BusinessUnit, r.Region, r.Channel, r.BrandLine,
		r.ProductCode, r.ProductName, r.Gallons, r.Revenue, r.GrossProfit, r.Cost, r.Margin,
	}
}

// CuratedRecord é uma venda que passou por toda a curadoria, ainda sem codificação
type CuratedRecord struct {
	Key         CombinationKey
	Period      YearMonth
	Gallons     float64
	Revenue     float64 // rótulo do modelo (Ventas)
	GrossProfit float64
	Cost        float64
	Margin      float64
}
