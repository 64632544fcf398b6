// Package reports contiene los casos de uso de reportes de negocio: el resumen
// de ventas del mostrador y el reporte de existencias descargable en Excel.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/joyeria-pos/internal/application/dto"
	"github.com/jhoicas/joyeria-pos/internal/domain/repository"
)

const summaryTopProducts = 5 // número de productos en el widget del resumen

// StockReportBuilder serializa las filas del reporte de existencias como un
// libro de Excel listo para descargar.
type StockReportBuilder interface {
	BuildStockReport(rows []repository.StockReportRow) ([]byte, error)
}

// ReportsUseCase genera el resumen financiero y el reporte de existencias.
//
// Fuente de datos: ReportRepository (consultas read-only).
// No accede directamente a las tablas de facturas o existencias; delega todo
// en el repositorio.
type ReportsUseCase struct {
	reportRepo repository.ReportRepository
	excel      StockReportBuilder
}

// NewReportsUseCase construye el caso de uso.
func NewReportsUseCase(reportRepo repository.ReportRepository, excel StockReportBuilder) *ReportsUseCase {
	return &ReportsUseCase{reportRepo: reportRepo, excel: excel}
}

// SalesSummary construye el SalesSummaryDTO con KPIs del día y del mes.
//
// Tres llamadas en paralelo:
//  1. GetSalesMetrics(hoy)        → TodaySales + TodayMargin
//  2. GetSalesMetrics(mes)        → MonthlySales + MonthlyMargin
//  3. GetTopProducts(mes, top 5)  → TopProducts
func (uc *ReportsUseCase) SalesSummary(ctx context.Context) (*dto.SalesSummaryDTO, error) {
	now := time.Now()

	// Hoy: 00:00:00.000 – 23:59:59.999
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)

	// Mes en curso: día 1 a las 00:00 – hoy a las 23:59:59
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := todayEnd

	type metricsResult struct {
		revenue decimal.Decimal
		cost    decimal.Decimal
		err     error
	}
	type topResult struct {
		products []repository.TopProductResult
		err      error
	}

	todayCh := make(chan metricsResult, 1)
	monthCh := make(chan metricsResult, 1)
	topCh := make(chan topResult, 1)

	go func() {
		rev, cost, err := uc.reportRepo.GetSalesMetrics(ctx, todayStart, todayEnd)
		todayCh <- metricsResult{rev, cost, err}
	}()
	go func() {
		rev, cost, err := uc.reportRepo.GetSalesMetrics(ctx, monthStart, monthEnd)
		monthCh <- metricsResult{rev, cost, err}
	}()
	go func() {
		products, err := uc.reportRepo.GetTopProducts(ctx, monthStart, monthEnd, summaryTopProducts)
		topCh <- topResult{products, err}
	}()

	today := <-todayCh
	month := <-monthCh
	top := <-topCh

	if today.err != nil {
		return nil, fmt.Errorf("resumen: métricas de hoy: %w", today.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("resumen: métricas del mes: %w", month.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("resumen: top productos: %w", top.err)
	}

	topProducts := make([]dto.TopProductDTO, 0, len(top.products))
	for _, p := range top.products {
		topProducts = append(topProducts, dto.TopProductDTO{
			ProductID:        p.ProductID,
			SKU:              p.SKU,
			ProductName:      p.ProductName,
			QuantitySold:     p.UnitsSold,
			TotalRevenue:     p.Revenue.Round(2),
			MarginPercentage: p.MarginPct.Round(2),
		})
	}

	return &dto.SalesSummaryDTO{
		TodaySales:    today.revenue.Round(2),
		TodayMargin:   today.revenue.Sub(today.cost).Round(2),
		MonthlySales:  month.revenue.Round(2),
		MonthlyMargin: month.revenue.Sub(month.cost).Round(2),
		TopProducts:   topProducts,
		DateLabel:     monthLabel(now),
	}, nil
}

// StockReportXLSX genera el Excel de existencias por ubicación/estante/caja.
// locationID vacío cubre todas las tiendas.
func (uc *ReportsUseCase) StockReportXLSX(ctx context.Context, locationID string) (xlsxBytes []byte, filename string, err error) {
	rows, err := uc.reportRepo.GetStockRows(ctx, locationID)
	if err != nil {
		return nil, "", fmt.Errorf("reporte de existencias: %w", err)
	}
	xlsxBytes, err = uc.excel.BuildStockReport(rows)
	if err != nil {
		return nil, "", fmt.Errorf("generar Excel de existencias: %w", err)
	}
	filename = fmt.Sprintf("existencias_%s.xlsx", time.Now().Format("2006-01-02"))
	return xlsxBytes, filename, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Agosto 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
