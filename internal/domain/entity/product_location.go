package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de referencia almacenable en una caja.
const (
	ProductRefJewel    = "jewel"    // producto terminado del catálogo
	ProductRefMaterial = "material" // materia prima
)

// ProductLocation asocia una referencia (joya o materia prima) a una caja con su cantidad.
// Única por (storage_object_id, product_type, product_id). La cantidad siempre es
// positiva: al llegar a cero la fila se elimina (el historial queda en los movimientos).
type ProductLocation struct {
	ID              string
	StorageObjectID string
	ProductType     string // jewel, material
	ProductID       string
	Quantity        decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
