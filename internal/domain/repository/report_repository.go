package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// StockReportRow fila cruda del reporte de existencias: una por asociación
// producto-caja, con la ruta completa de la jerarquía.
type StockReportRow struct {
	LocationName      string
	StorageTypeName   string
	StorageObjectCode string
	ProductType       string
	ProductCode       string // SKU de la joya o código de la materia prima
	ProductName       string
	Quantity          decimal.Decimal
	UnitCost          decimal.Decimal
	TotalCost         decimal.Decimal
}

// TopProductResult producto con mayor ingreso del período.
type TopProductResult struct {
	ProductID   string
	SKU         string
	ProductName string
	UnitsSold   decimal.Decimal
	Revenue     decimal.Decimal
	MarginPct   decimal.Decimal
}

// ReportRepository define las consultas de lectura para reportes.
// Las implementaciones son read-only (no modifican datos).
type ReportRepository interface {
	// GetStockRows devuelve el inventario actual desplegado por
	// ubicación/estante/caja; locationID vacío = todas las tiendas.
	GetStockRows(ctx context.Context, locationID string) ([]StockReportRow, error)

	// GetSalesMetrics devuelve los ingresos brutos y el COGS total de las
	// facturas PAID del rango de fechas. Usa COALESCE para devolver cero
	// si no hay facturas en el período.
	GetSalesMetrics(ctx context.Context, startDate, endDate time.Time) (revenue, cost decimal.Decimal, err error)

	// GetTopProducts devuelve los `limit` productos con mayor ingreso en el
	// período, incluyendo cantidad vendida y porcentaje de margen bruto.
	GetTopProducts(ctx context.Context, startDate, endDate time.Time, limit int) ([]TopProductResult, error)
}
