package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/joyeria-pos/internal/application/dto"
	"github.com/jhoicas/joyeria-pos/internal/application/storage"
	"github.com/jhoicas/joyeria-pos/internal/domain"
)

// ContentsHandler maneja el contenido de las cajas: guardar referencias,
// listarlas, trasladar cantidades y responder "¿dónde está?" (protegido).
type ContentsHandler struct {
	uc *storage.ContentsUseCase
}

// NewContentsHandler construye el handler.
func NewContentsHandler(uc *storage.ContentsUseCase) *ContentsHandler {
	return &ContentsHandler{uc: uc}
}

// PutProduct godoc
// @Summary      Guardar referencia en una caja
// @Description  Registra un movimiento IN; si la referencia ya está en la caja la cantidad se acumula. Para joyas unit_cost es requerido.
// @Tags         storage
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la caja"
// @Param        body  body  dto.PutProductInBoxRequest  true  "Referencia y cantidad"
// @Success      201   {object}  dto.ProductLocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/storage-objects/{id}/contents [post]
func (h *ContentsHandler) PutProduct(c *fiber.Ctx) error {
	storageObjectID := c.Params("id")
	if storageObjectID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.PutProductInBoxRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductType == "" || in.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_type y product_id son requeridos"})
	}
	out, err := h.uc.PutProduct(c.Context(), userID, storageObjectID, in)
	if err != nil {
		return mapMovementError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListContents godoc
// @Summary      Listar contenido de una caja
// @Tags         storage
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID de la caja"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.ProductLocationListResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/storage-objects/{id}/contents [get]
func (h *ContentsHandler) ListContents(c *fiber.Ctx) error {
	storageObjectID := c.Params("id")
	if storageObjectID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.ListContents(storageObjectID, pageFromQuery(c))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "caja no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Transfer godoc
// @Summary      Trasladar cantidad a otra caja
// @Description  Registra un movimiento TRANSFER; quantity vacía traslada toda la existencia de la asociación.
// @Tags         storage
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID de la asociación producto-caja"
// @Param        body  body  dto.TransferRequest  true  "Caja destino y cantidad"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/product-locations/{id}/transfer [post]
func (h *ContentsHandler) Transfer(c *fiber.Ctx) error {
	productLocationID := c.Params("id")
	if productLocationID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ToStorageObjectID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to_storage_object_id es requerido"})
	}
	if err := h.uc.Transfer(c.Context(), userID, productLocationID, in); err != nil {
		return mapMovementError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// WhereIs godoc
// @Summary      Localizar una referencia
// @Description  Devuelve todas las cajas que contienen la referencia con su ruta tienda -> estante -> caja y el total.
// @Tags         storage
// @Security     Bearer
// @Produce      json
// @Param        type  path  string  true  "Tipo de referencia"  Enums(jewel, material)
// @Param        id    path  string  true  "ID de la referencia"
// @Success      200   {object}  dto.WhereIsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{type}/{id}/locations [get]
func (h *ContentsHandler) WhereIs(c *fiber.Ctx) error {
	productType := c.Params("type")
	productID := c.Params("id")
	if productType == "" || productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "type e id son requeridos"})
	}
	out, err := h.uc.WhereIs(productType, productID)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "type debe ser jewel o material"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "referencia no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// mapMovementError traduce los sentinelas del motor de movimientos. Lo
// comparten los endpoints de contenido y el de movimientos de inventario.
func mapMovementError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos del movimiento inválidos"})
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "referencia o caja no encontrada"})
	case domain.ErrInsufficientStock:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente en la caja"})
	case domain.ErrCapacityExceeded:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CAPACITY_EXCEEDED", Message: "capacidad de la caja excedida"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
