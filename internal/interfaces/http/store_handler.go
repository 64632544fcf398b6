package http

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/joyeria-pos/internal/application/dto"
	"github.com/jhoicas/joyeria-pos/internal/application/locator"
)

// StoreHandler expone el localizador público de tiendas (sin auth).
type StoreHandler struct {
	uc *locator.StoreLocatorUseCase
}

// NewStoreHandler construye el handler.
func NewStoreHandler(uc *locator.StoreLocatorUseCase) *StoreHandler {
	return &StoreHandler{uc: uc}
}

// List godoc
// @Summary      Localizador público de tiendas
// @Description  Lista tiendas activas; ?city= filtra por ciudad y ?near=lat,lon ordena por distancia con distance_km.
// @Tags         stores
// @Produce      json
// @Param        city  query  string  false  "Filtrar por ciudad"
// @Param        near  query  string  false  "Coordenadas lat,lon del visitante"
// @Success      200   {object}  dto.StoreListResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stores [get]
func (h *StoreHandler) List(c *fiber.Ctx) error {
	var lat, lon *float64
	if near := c.Query("near"); near != "" {
		parts := strings.SplitN(near, ",", 2)
		if len(parts) != 2 {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "near debe ser lat,lon"})
		}
		la, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		lo, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err1 != nil || err2 != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "near debe ser lat,lon"})
		}
		lat, lon = &la, &lo
	}
	out, err := h.uc.ListStores(c.Query("city"), lat, lon)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
