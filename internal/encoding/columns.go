package encoding

// Nomes de coluna do razão de vendas e da tabela curada
const (
	ColumnYear         = "Año"
	ColumnMonth        = "Mes"
	ColumnBusinessUnit = "Uen"
	ColumnRegion       = "Regional"
	ColumnChannel      = "Canal Comercial"
	ColumnBrandLine    = "Marquilla"
	ColumnProductCode  = "Código Producto"
	ColumnProductName  = "Producto"
	ColumnGallons      = "Ventas Galones"
	ColumnRevenue      = "Ventas"
	ColumnGrossProfit  = "Utilidad Bruta"
	ColumnCost         = "Costos"
	ColumnMargin       = "Margen"

	// Colunas do snapshot de datas mínimas
	ColumnMinYear  = "min_Anio"
	ColumnMinMonth = "min_Mes"
)

// LedgerColumns são as colunas obrigatórias do razão bruto
var LedgerColumns = []string{
	ColumnYear,
	ColumnMonth,
	ColumnBusinessUnit,
	ColumnRegion,
	ColumnChannel,
	ColumnBrandLine,
	ColumnProductCode,
	ColumnProductName,
	ColumnGallons,
	ColumnRevenue,
	ColumnGrossProfit,
	ColumnCost,
	ColumnMargin,
}

// OneHotColumns são as categóricas de baixa cardinalidade, na ordem em que
// as colunas indicadoras são geradas
var OneHotColumns = []string{ColumnBusinessUnit, ColumnRegion, ColumnChannel}

// MeasureColumns seguem as features na tabela curada, sem serem features
var MeasureColumns = []string{ColumnGallons, ColumnGrossProfit, ColumnCost, ColumnMargin}
