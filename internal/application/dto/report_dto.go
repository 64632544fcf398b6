package dto

import "github.com/shopspring/decimal"

// SalesSummaryDTO respuesta de GET /api/reports/sales-summary.
// KPIs del día y del mes en curso, más el Top-5 de productos del mes.
type SalesSummaryDTO struct {
	// Métricas del día actual (00:00 – 23:59)
	TodaySales  decimal.Decimal `json:"today_sales"`  // ingresos brutos de hoy
	TodayMargin decimal.Decimal `json:"today_margin"` // margen bruto de hoy (revenue - COGS)

	// Métricas del mes en curso (día 1 – hoy)
	MonthlySales  decimal.Decimal `json:"monthly_sales"`
	MonthlyMargin decimal.Decimal `json:"monthly_margin"`

	// Top 5 productos por ingreso del mes (ordenados de mayor a menor revenue)
	TopProducts []TopProductDTO `json:"top_products"`

	// Metadatos del período
	DateLabel string `json:"date_label"` // ej: "Agosto 2026"
}

// TopProductDTO resumen de un producto para el widget del resumen.
type TopProductDTO struct {
	ProductID        string          `json:"product_id"`
	SKU              string          `json:"sku"`
	ProductName      string          `json:"product_name"`
	QuantitySold     decimal.Decimal `json:"quantity_sold"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	MarginPercentage decimal.Decimal `json:"margin_percentage"` // (revenue - cogs) / revenue * 100
}
