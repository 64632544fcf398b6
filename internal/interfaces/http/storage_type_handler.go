package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/joyeria-pos/internal/application/dto"
	"github.com/jhoicas/joyeria-pos/internal/application/storage"
	"github.com/jhoicas/joyeria-pos/internal/domain"
)

// StorageTypeHandler maneja las peticiones HTTP de estantes (protegido).
type StorageTypeHandler struct {
	uc *storage.StorageTypeUseCase
}

// NewStorageTypeHandler construye el handler.
func NewStorageTypeHandler(uc *storage.StorageTypeUseCase) *StorageTypeHandler {
	return &StorageTypeHandler{uc: uc}
}

// Create godoc
// @Summary      Crear estante en una tienda
// @Description  Con code vacío el servidor genera el siguiente SHELF_n de la tienda.
// @Tags         storage
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la tienda"
// @Param        body  body  dto.CreateStorageTypeRequest  true  "Datos del estante"
// @Success      201   {object}  dto.StorageTypeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/locations/{id}/storage-types [post]
func (h *StorageTypeHandler) Create(c *fiber.Ctx) error {
	locationID := c.Params("id")
	if locationID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.CreateStorageTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
	}
	out, err := h.uc.Create(locationID, in)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tienda no encontrada"})
		}
		if err == domain.ErrDuplicateCode {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_CODE", Message: "el código ya existe en esta tienda"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar estantes de una tienda
// @Tags         storage
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID de la tienda"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.StorageTypeListResponse
// @Router       /api/locations/{id}/storage-types [get]
func (h *StorageTypeHandler) List(c *fiber.Ctx) error {
	locationID := c.Params("id")
	if locationID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.List(locationID, pageFromQuery(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// UpdatePositions godoc
// @Summary      Reordenar estantes de una tienda
// @Description  Aplica el lote completo de pares id-posición; un id ajeno a la tienda rechaza todo.
// @Tags         storage
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID de la tienda"
// @Param        body  body  dto.UpdatePositionsRequest  true  "Pares id-posición"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/locations/{id}/storage-types/positions [put]
func (h *StorageTypeHandler) UpdatePositions(c *fiber.Ctx) error {
	locationID := c.Params("id")
	if locationID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdatePositionsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Positions) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "positions no puede estar vacío"})
	}
	if err := h.uc.UpdatePositions(locationID, in); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "algún estante no pertenece a esta tienda"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID godoc
// @Summary      Obtener estante por ID
// @Tags         storage
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del estante"
// @Success      200  {object}  dto.StorageTypeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/storage-types/{id} [get]
func (h *StorageTypeHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "estante no encontrado"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar estante
// @Tags         storage
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del estante"
// @Param        body  body  dto.UpdateStorageTypeRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.StorageTypeResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/storage-types/{id} [put]
func (h *StorageTypeHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateStorageTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(id, in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "estante no encontrado"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar estante
// @Description  Rechaza si el estante aún tiene cajas.
// @Tags         storage
// @Security     Bearer
// @Param        id  path  string  true  "ID del estante"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/storage-types/{id} [delete]
func (h *StorageTypeHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Delete(id); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "estante no encontrado"})
		}
		if err == domain.ErrConflict {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "el estante aún tiene cajas"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
