package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/joyeria-pos/internal/application/dto"
	"github.com/jhoicas/joyeria-pos/internal/application/reports"
)

// ReportHandler expone los reportes del negocio (protegido).
type ReportHandler struct {
	uc *reports.ReportsUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.ReportsUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// SalesSummary godoc
// @Summary      Resumen de ventas
// @Description  KPIs del día y del mes en curso más el Top-5 de productos por ingreso.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SalesSummaryDTO
// @Router       /api/reports/sales-summary [get]
func (h *ReportHandler) SalesSummary(c *fiber.Ctx) error {
	out, err := h.uc.SalesSummary(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// StockXLSX descarga el reporte de existencias en Excel, opcionalmente
// filtrado por tienda.
// GET /api/reports/stock.xlsx?location_id=
func (h *ReportHandler) StockXLSX(c *fiber.Ctx) error {
	xlsxBytes, filename, err := h.uc.StockReportXLSX(c.Context(), c.Query("location_id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(xlsxBytes)
}
