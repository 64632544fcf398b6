package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/joyeria-pos/internal/application/dto"
	"github.com/jhoicas/joyeria-pos/internal/application/inventory"
)

// InventoryHandler maneja las peticiones HTTP de movimientos de inventario
// (protegido).
type InventoryHandler struct {
	uc      *inventory.RegisterMovementUseCase
	history *inventory.MovementHistoryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.RegisterMovementUseCase, history *inventory.MovementHistoryUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc, history: history}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario
// @Description  IN y ADJUSTMENT positivo exigen unit_cost para joyas; TRANSFER usa from/to_storage_object_id.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "Referencia, caja, tipo y cantidad"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.RegisterMovementFromRequest(c.Context(), userID, in)
	if err != nil {
		return mapMovementError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovements godoc
// @Summary      Historial de movimientos
// @Description  Filtra por referencia (product_type + product_id) o por caja (storage_object_id), con rango de fechas opcional.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_type       query  string  false  "Tipo de referencia"  Enums(jewel, material)
// @Param        product_id         query  string  false  "ID de la referencia"
// @Param        storage_object_id  query  string  false  "ID de la caja"
// @Param        from               query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to                 query  string  false  "Hasta (YYYY-MM-DD, inclusive)"
// @Param        limit              query  int     false  "Límite"  default(20)
// @Param        offset             query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	from, to, err := parseDateRange(c.Query("from"), c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	page := pageFromQuery(c)

	if storageObjectID := c.Query("storage_object_id"); storageObjectID != "" {
		out, err := h.history.ListByStorageObject(storageObjectID, from, to, page)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		return c.JSON(out)
	}

	productType := c.Query("product_type")
	productID := c.Query("product_id")
	if productType == "" || productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "se requiere storage_object_id o product_type y product_id"})
	}
	out, err := h.history.ListByProduct(productType, productID, from, to, page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// parseDateRange convierte los filtros from/to (YYYY-MM-DD) en punteros de
// tiempo; to es inclusive hasta el final del día. Vacío = sin filtro.
func parseDateRange(fromStr, toStr string) (from, to *time.Time, err error) {
	loc := time.Now().Location()
	if fromStr != "" {
		t, err := time.ParseInLocation("2006-01-02", fromStr, loc)
		if err != nil {
			return nil, nil, errors.New("from inválido, use YYYY-MM-DD")
		}
		from = &t
	}
	if toStr != "" {
		t, err := time.ParseInLocation("2006-01-02", toStr, loc)
		if err != nil {
			return nil, nil, errors.New("to inválido, use YYYY-MM-DD")
		}
		t = t.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
		to = &t
	}
	return from, to, nil
}
