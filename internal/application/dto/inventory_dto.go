package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventory/movements.
// IN/OUT/ADJUSTMENT usan StorageObjectID; TRANSFER usa From/To.
type RegisterMovementRequest struct {
	ProductType         string           `json:"product_type" validate:"required,oneof=jewel material"`
	ProductID           string           `json:"product_id" validate:"required,uuid"`
	StorageObjectID     string           `json:"storage_object_id,omitempty"`
	FromStorageObjectID string           `json:"from_storage_object_id,omitempty"`
	ToStorageObjectID   string           `json:"to_storage_object_id,omitempty"`
	Type                string           `json:"type" validate:"required,oneof=IN OUT ADJUSTMENT TRANSFER"`
	Quantity            decimal.Decimal  `json:"quantity"`
	UnitCost            *decimal.Decimal `json:"unit_cost,omitempty"`
	Reference           string           `json:"reference,omitempty"`
}

// MovementResponse movimiento registrado.
type MovementResponse struct {
	ID              string          `json:"id"`
	TransactionID   string          `json:"transaction_id"`
	ProductType     string          `json:"product_type"`
	ProductID       string          `json:"product_id"`
	StorageObjectID string          `json:"storage_object_id"`
	Type            string          `json:"type"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	TotalCost       decimal.Decimal `json:"total_cost"`
	Reference       string          `json:"reference,omitempty"`
	Date            time.Time       `json:"date"`
	CreatedBy       string          `json:"created_by,omitempty"`
}

// MovementListResponse historial paginado de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
