// Package excel serializa reportes como libros XLSX descargables.
package excel

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/joyeria-pos/internal/application/reports"
	"github.com/jhoicas/joyeria-pos/internal/domain/repository"
)

var _ reports.StockReportBuilder = (*StockReportBuilder)(nil)

const stockSheetName = "Existencias"

// StockReportBuilder genera el Excel de existencias por tienda/estante/caja.
type StockReportBuilder struct{}

// NewStockReportBuilder construye el builder.
func NewStockReportBuilder() *StockReportBuilder {
	return &StockReportBuilder{}
}

// BuildStockReport arma el libro: cabecera en negrita, una fila por
// asociación producto-caja y la fila final con el valor total del inventario.
func (b *StockReportBuilder) BuildStockReport(rows []repository.StockReportRow) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	defaultSheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetName(defaultSheet, stockSheetName); err != nil {
		return nil, fmt.Errorf("excel: renombrar hoja: %w", err)
	}

	// Cabecera
	header := []interface{}{
		"Tienda", "Estante", "Caja", "Tipo", "Código", "Producto",
		"Cantidad", "Costo unitario", "Costo total",
	}
	if err := f.SetSheetRow(stockSheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("excel: escribir cabecera: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = f.SetCellStyle(stockSheetName, "A1", "I1", headerStyle)
	}

	// Anchos de columna legibles
	_ = f.SetColWidth(stockSheetName, "A", "C", 16)
	_ = f.SetColWidth(stockSheetName, "D", "E", 12)
	_ = f.SetColWidth(stockSheetName, "F", "F", 32)
	_ = f.SetColWidth(stockSheetName, "G", "I", 14)

	// Datos
	totalValue := decimal.Zero
	rowNum := 2
	for _, r := range rows {
		tipo := "Joya"
		if r.ProductType == "material" {
			tipo = "Materia prima"
		}
		excelRow := []interface{}{
			r.LocationName,
			r.StorageTypeName,
			r.StorageObjectCode,
			tipo,
			r.ProductCode,
			r.ProductName,
			r.Quantity.InexactFloat64(),
			r.UnitCost.InexactFloat64(),
			r.TotalCost.InexactFloat64(),
		}
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return nil, fmt.Errorf("excel: celda fila %d: %w", rowNum, err)
		}
		if err := f.SetSheetRow(stockSheetName, cell, &excelRow); err != nil {
			return nil, fmt.Errorf("excel: escribir fila %d: %w", rowNum, err)
		}
		totalValue = totalValue.Add(r.TotalCost)
		rowNum++
	}

	// Fila de total
	totalRow := []interface{}{
		"", "", "", "", "", "TOTAL", "", "", totalValue.InexactFloat64(),
	}
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return nil, fmt.Errorf("excel: celda de total: %w", err)
	}
	if err := f.SetSheetRow(stockSheetName, cell, &totalRow); err != nil {
		return nil, fmt.Errorf("excel: escribir total: %w", err)
	}
	if totalStyle, sErr := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); sErr == nil {
		fCell, _ := excelize.CoordinatesToCellName(6, rowNum)
		iCell, _ := excelize.CoordinatesToCellName(9, rowNum)
		_ = f.SetCellStyle(stockSheetName, fCell, iCell, totalStyle)
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("excel: serializar libro: %w", err)
	}
	return buf.Bytes(), nil
}
