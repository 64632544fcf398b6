package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/joyeria-pos/internal/application/dto"
	"github.com/jhoicas/joyeria-pos/internal/application/storage"
	"github.com/jhoicas/joyeria-pos/internal/domain"
)

// StorageObjectHandler maneja las peticiones HTTP de cajas (protegido).
type StorageObjectHandler struct {
	uc *storage.StorageObjectUseCase
}

// NewStorageObjectHandler construye el handler.
func NewStorageObjectHandler(uc *storage.StorageObjectUseCase) *StorageObjectHandler {
	return &StorageObjectHandler{uc: uc}
}

// Create godoc
// @Summary      Crear caja en un estante
// @Description  Con code vacío el servidor genera el siguiente BOX_n de la tienda.
// @Tags         storage
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del estante"
// @Param        body  body  dto.CreateStorageObjectRequest  true  "Datos de la caja"
// @Success      201   {object}  dto.StorageObjectResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/storage-types/{id}/storage-objects [post]
func (h *StorageObjectHandler) Create(c *fiber.Ctx) error {
	storageTypeID := c.Params("id")
	if storageTypeID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.CreateStorageObjectRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), storageTypeID, in)
	if err != nil {
		return h.mapStorageError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// BulkCreate godoc
// @Summary      Crear lote de cajas en un estante
// @Description  Atómico: genera códigos BOX_n para las entradas vacías y rechaza el lote completo ante cualquier colisión.
// @Tags         storage
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del estante"
// @Param        body  body  dto.BulkCreateStorageObjectsRequest  true  "Lote de cajas (máx. 100)"
// @Success      201   {object}  dto.StorageObjectListResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.BulkCreateErrorResponse
// @Router       /api/storage-types/{id}/storage-objects/bulk [post]
func (h *StorageObjectHandler) BulkCreate(c *fiber.Ctx) error {
	storageTypeID := c.Params("id")
	if storageTypeID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.BulkCreateStorageObjectsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Items) == 0 || len(in.Items) > 100 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "items debe tener entre 1 y 100 entradas"})
	}
	out, err := h.uc.BulkCreate(c.Context(), storageTypeID, in)
	if err != nil {
		var batchErr *storage.BatchValidationError
		if errors.As(err, &batchErr) {
			entries := make([]dto.BatchEntryError, 0, len(batchErr.Entries))
			for _, e := range batchErr.Entries {
				entries = append(entries, dto.BatchEntryError{Index: e.Index, Code: e.Code, Reason: e.Reason})
			}
			return c.Status(fiber.StatusConflict).JSON(dto.BulkCreateErrorResponse{
				Code:    "DUPLICATE_CODES",
				Message: "códigos duplicados o vacíos en el lote",
				Entries: entries,
			})
		}
		return h.mapStorageError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"items": out})
}

// NextCode godoc
// @Summary      Sugerir códigos BOX_n para alta masiva
// @Tags         storage
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID del estante"
// @Param        count  query  int     false  "Cantidad de códigos"  default(1)
// @Success      200    {object}  dto.NextCodeResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/storage-types/{id}/next-code [get]
func (h *StorageObjectHandler) NextCode(c *fiber.Ctx) error {
	storageTypeID := c.Params("id")
	if storageTypeID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.SuggestCodes(storageTypeID, c.QueryInt("count", 1))
	if err != nil {
		return h.mapStorageError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar cajas de un estante
// @Tags         storage
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del estante"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.StorageObjectListResponse
// @Router       /api/storage-types/{id}/storage-objects [get]
func (h *StorageObjectHandler) List(c *fiber.Ctx) error {
	storageTypeID := c.Params("id")
	if storageTypeID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.List(storageTypeID, pageFromQuery(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener caja por ID
// @Tags         storage
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la caja"
// @Success      200  {object}  dto.StorageObjectResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/storage-objects/{id} [get]
func (h *StorageObjectHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "caja no encontrada"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar etiqueta o capacidad de una caja
// @Tags         storage
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la caja"
// @Param        body  body  dto.UpdateStorageObjectRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.StorageObjectResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/storage-objects/{id} [put]
func (h *StorageObjectHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateStorageObjectRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(id, in)
	if err != nil {
		if err == domain.ErrConflict {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "la capacidad no puede ser menor que el contenido actual"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "caja no encontrada"})
	}
	return c.JSON(out)
}

// Move godoc
// @Summary      Mover caja a otro estante
// @Description  Re-asigna la caja con todo su contenido; no genera movimientos de inventario.
// @Tags         storage
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la caja"
// @Param        body  body  dto.MoveStorageObjectRequest  true  "Estante destino"
// @Success      200   {object}  dto.StorageObjectResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/storage-objects/{id}/move [post]
func (h *StorageObjectHandler) Move(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.MoveStorageObjectRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ToStorageTypeID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to_storage_type_id es requerido"})
	}
	out, err := h.uc.Move(c.Context(), id, in)
	if err != nil {
		return h.mapStorageError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar caja
// @Description  Rechaza si la caja aún contiene referencias.
// @Tags         storage
// @Security     Bearer
// @Param        id  path  string  true  "ID de la caja"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/storage-objects/{id} [delete]
func (h *StorageObjectHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Delete(id); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "caja no encontrada"})
		}
		if err == domain.ErrConflict {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "la caja aún contiene referencias"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// mapStorageError traduce los sentinelas del dominio compartidos por las
// operaciones de cajas a sus códigos HTTP.
func (h *StorageObjectHandler) mapStorageError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "estante o caja no encontrada"})
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case domain.ErrDuplicateCode:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_CODE", Message: "el código ya existe en esta tienda"})
	case domain.ErrCapacityExceeded:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CAPACITY_EXCEEDED", Message: "capacidad del estante excedida"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
