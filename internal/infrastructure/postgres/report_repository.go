package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/joyeria-pos/internal/domain/entity"
	"github.com/jhoicas/joyeria-pos/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para reportes de ventas y existencias.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// GetStockRows devuelve el inventario actual con la ruta completa
// tienda → estante → caja. Las joyas resuelven contra products y las materias
// primas contra materials; locationID vacío = todas las tiendas.
func (r *ReportRepo) GetStockRows(ctx context.Context, locationID string) ([]repository.StockReportRow, error) {
	const query = `
	SELECT
	    l.name                                        AS location_name,
	    st.name                                       AS storage_type_name,
	    so.code                                       AS storage_object_code,
	    pl.product_type,
	    COALESCE(p.sku,  m.code, '')                  AS product_code,
	    COALESCE(p.name, m.name, '')                  AS product_name,
	    pl.quantity,
	    COALESCE(p.cost, m.cost, 0)                   AS unit_cost,
	    pl.quantity * COALESCE(p.cost, m.cost, 0)     AS total_cost
	FROM product_locations pl
	JOIN storage_objects so ON so.id = pl.storage_object_id
	JOIN storage_types   st ON st.id = so.storage_type_id
	JOIN locations       l  ON l.id  = so.location_id
	LEFT JOIN products   p  ON pl.product_type = 'jewel'    AND p.id = pl.product_id
	LEFT JOIN materials  m  ON pl.product_type = 'material' AND m.id = pl.product_id
	WHERE $1 = '' OR so.location_id = NULLIF($1, '')::uuid
	ORDER BY l.name, st.position, st.name, so.code, product_code`

	rows, err := r.pool.Query(ctx, query, locationID)
	if err != nil {
		return nil, fmt.Errorf("reports.GetStockRows: %w", err)
	}
	defer rows.Close()

	var results []repository.StockReportRow
	for rows.Next() {
		var row repository.StockReportRow
		if err := rows.Scan(
			&row.LocationName,
			&row.StorageTypeName,
			&row.StorageObjectCode,
			&row.ProductType,
			&row.ProductCode,
			&row.ProductName,
			&row.Quantity,
			&row.UnitCost,
			&row.TotalCost,
		); err != nil {
			return nil, fmt.Errorf("reports.GetStockRows scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetSalesMetrics devuelve ingresos brutos y COGS total de las facturas PAID del período.
// Usa COALESCE para devolver cero si no hay filas (período sin ventas).
func (r *ReportRepo) GetSalesMetrics(
	ctx context.Context,
	startDate, endDate time.Time,
) (revenue, cost decimal.Decimal, err error) {
	const query = `
	SELECT
	    COALESCE(SUM(d.subtotal),          0) AS revenue,
	    COALESCE(SUM(d.quantity * p.cost), 0) AS cost
	FROM invoices i
	JOIN invoice_details d ON d.invoice_id = i.id
	JOIN products        p ON p.id         = d.product_id
	WHERE i.date BETWEEN $1 AND $2
	  AND i.status = $3`

	err = r.pool.QueryRow(ctx, query, startDate, endDate, entity.InvoiceStatusPaid).
		Scan(&revenue, &cost)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("reports.GetSalesMetrics: %w", err)
	}
	return revenue, cost, nil
}

// GetTopProducts devuelve los `limit` productos con mayor ingreso en el período.
// El margen se calcula como (revenue - cogs) / revenue * 100, protegido contra división por cero.
func (r *ReportRepo) GetTopProducts(
	ctx context.Context,
	startDate, endDate time.Time,
	limit int,
) ([]repository.TopProductResult, error) {
	const query = `
	SELECT
	    p.id                                        AS product_id,
	    p.sku,
	    p.name                                      AS product_name,
	    SUM(d.quantity)                             AS units_sold,
	    SUM(d.subtotal)                             AS revenue,
	    CASE
	        WHEN SUM(d.subtotal) > 0
	        THEN ROUND(
	            (SUM(d.subtotal) - SUM(d.quantity * p.cost))
	            / SUM(d.subtotal) * 100, 2)
	        ELSE 0
	    END                                         AS margin_pct
	FROM invoice_details d
	JOIN invoices i ON i.id = d.invoice_id
	JOIN products p ON p.id = d.product_id
	WHERE i.date BETWEEN $1 AND $2
	  AND i.status = $3
	GROUP BY p.id, p.sku, p.name
	ORDER BY revenue DESC
	LIMIT $4`

	rows, err := r.pool.Query(ctx, query, startDate, endDate, entity.InvoiceStatusPaid, limit)
	if err != nil {
		return nil, fmt.Errorf("reports.GetTopProducts: %w", err)
	}
	defer rows.Close()

	var results []repository.TopProductResult
	for rows.Next() {
		var row repository.TopProductResult
		if err := rows.Scan(
			&row.ProductID,
			&row.SKU,
			&row.ProductName,
			&row.UnitsSold,
			&row.Revenue,
			&row.MarginPct,
		); err != nil {
			return nil, fmt.Errorf("reports.GetTopProducts scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
