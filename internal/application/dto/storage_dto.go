package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Locations ────────────────────────────────────────────────────────────────

// CreateLocationRequest body para POST /api/locations.
type CreateLocationRequest struct {
	Code      string  `json:"code" validate:"required,min=1,max=50"`
	Name      string  `json:"name" validate:"required,min=1,max=200"`
	Address   string  `json:"address"`
	City      string  `json:"city"`
	Phone     string  `json:"phone"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// UpdateLocationRequest body para PUT /api/locations/:id.
type UpdateLocationRequest struct {
	Name      *string  `json:"name" validate:"omitempty,min=1,max=200"`
	Address   *string  `json:"address"`
	City      *string  `json:"city"`
	Phone     *string  `json:"phone"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Status    *string  `json:"status" validate:"omitempty,oneof=active inactive"`
}

// LocationResponse salida de una tienda.
type LocationResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	Phone     string    `json:"phone"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LocationListResponse lista paginada de tiendas.
type LocationListResponse struct {
	Items []LocationResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ── Storage types (estantes) ─────────────────────────────────────────────────

// CreateStorageTypeRequest body para POST /api/locations/:id/storage-types.
// Code vacío = el servidor genera el siguiente SHELF_<n>.
type CreateStorageTypeRequest struct {
	Code     string `json:"code" validate:"omitempty,max=50"`
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Capacity int    `json:"capacity" validate:"min=0"`
	Position int    `json:"position" validate:"min=0"`
}

// UpdateStorageTypeRequest body para PUT /api/storage-types/:id.
type UpdateStorageTypeRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	Capacity *int    `json:"capacity" validate:"omitempty,min=0"`
	Position *int    `json:"position" validate:"omitempty,min=0"`
}

// StorageTypeResponse salida de un estante.
type StorageTypeResponse struct {
	ID         string    `json:"id"`
	LocationID string    `json:"location_id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	Capacity   int       `json:"capacity"`
	Position   int       `json:"position"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// StorageTypeListResponse lista paginada de estantes.
type StorageTypeListResponse struct {
	Items []StorageTypeResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// PositionUpdate par id-posición del reordenamiento masivo de estantes.
type PositionUpdate struct {
	ID       string `json:"id" validate:"required,uuid"`
	Position int    `json:"position" validate:"min=0"`
}

// UpdatePositionsRequest body para PUT /api/locations/:id/storage-types/positions.
type UpdatePositionsRequest struct {
	Positions []PositionUpdate `json:"positions" validate:"required,min=1,dive"`
}

// ── Storage objects (cajas) ──────────────────────────────────────────────────

// CreateStorageObjectRequest body para POST /api/storage-types/:id/storage-objects.
// Code vacío = el servidor genera el siguiente BOX_<n>.
type CreateStorageObjectRequest struct {
	Code     string `json:"code" validate:"omitempty,max=50"`
	Label    string `json:"label" validate:"max=200"`
	Capacity int    `json:"capacity" validate:"min=0"`
}

// UpdateStorageObjectRequest body para PUT /api/storage-objects/:id.
type UpdateStorageObjectRequest struct {
	Label    *string `json:"label" validate:"omitempty,max=200"`
	Capacity *int    `json:"capacity" validate:"omitempty,min=0"`
}

// StorageObjectResponse salida de una caja.
type StorageObjectResponse struct {
	ID            string    `json:"id"`
	StorageTypeID string    `json:"storage_type_id"`
	Code          string    `json:"code"`
	Label         string    `json:"label"`
	Capacity      int       `json:"capacity"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// StorageObjectListResponse lista paginada de cajas.
type StorageObjectListResponse struct {
	Items []StorageObjectResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// BulkCreateStorageObjectsRequest body para POST /api/storage-types/:id/storage-objects/bulk.
type BulkCreateStorageObjectsRequest struct {
	Items []CreateStorageObjectRequest `json:"items" validate:"required,min=1,max=100,dive"`
}

// BatchEntryError error de una entrada del lote (índice 0-based).
type BatchEntryError struct {
	Index  int    `json:"index"`
	Code   string `json:"code"`
	Reason string `json:"reason"` // empty | already_exists | duplicate_in_batch
}

// BulkCreateErrorResponse cuerpo 409 del bulk-create: el lote completo se rechaza.
type BulkCreateErrorResponse struct {
	Code    string            `json:"code"` // DUPLICATE_CODES
	Message string            `json:"message"`
	Entries []BatchEntryError `json:"entries"`
}

// NextCodeResponse sugerencias de códigos para pre-poblar el formulario masivo.
type NextCodeResponse struct {
	Codes []string `json:"codes"`
}

// MoveStorageObjectRequest body para POST /api/storage-objects/:id/move.
type MoveStorageObjectRequest struct {
	ToStorageTypeID string `json:"to_storage_type_id" validate:"required,uuid"`
}

// ── Product locations (contenido de cajas) ───────────────────────────────────

// PutProductInBoxRequest body para POST /api/storage-objects/:id/contents.
type PutProductInBoxRequest struct {
	ProductType string           `json:"product_type" validate:"required,oneof=jewel material"`
	ProductID   string           `json:"product_id" validate:"required,uuid"`
	Quantity    decimal.Decimal  `json:"quantity"`
	UnitCost    *decimal.Decimal `json:"unit_cost,omitempty"` // requerido para joyas (actualiza costo promedio)
}

// ProductLocationResponse asociación producto-caja con cantidad.
type ProductLocationResponse struct {
	ID              string          `json:"id"`
	StorageObjectID string          `json:"storage_object_id"`
	ProductType     string          `json:"product_type"`
	ProductID       string          `json:"product_id"`
	ProductName     string          `json:"product_name,omitempty"`
	Quantity        decimal.Decimal `json:"quantity"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ProductLocationListResponse lista paginada de contenidos de una caja.
type ProductLocationListResponse struct {
	Items []ProductLocationResponse `json:"items"`
	Page  PageResponse              `json:"page"`
}

// TransferRequest body para POST /api/product-locations/:id/transfer.
// Quantity vacía o igual al total = se traslada toda la existencia.
type TransferRequest struct {
	ToStorageObjectID string           `json:"to_storage_object_id" validate:"required,uuid"`
	Quantity          *decimal.Decimal `json:"quantity,omitempty"`
}

// WhereIsResponse responde "¿dónde está esta referencia?" con la ruta completa.
type WhereIsResponse struct {
	ProductType string          `json:"product_type"`
	ProductID   string          `json:"product_id"`
	Total       decimal.Decimal `json:"total"`
	Places      []WhereIsPlace  `json:"places"`
}

// WhereIsPlace una caja que contiene la referencia.
type WhereIsPlace struct {
	LocationID        string          `json:"location_id"`
	LocationName      string          `json:"location_name"`
	StorageTypeID     string          `json:"storage_type_id"`
	StorageTypeName   string          `json:"storage_type_name"`
	StorageObjectID   string          `json:"storage_object_id"`
	StorageObjectCode string          `json:"storage_object_code"`
	Quantity          decimal.Decimal `json:"quantity"`
}
