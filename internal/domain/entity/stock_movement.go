package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIN         = "IN"         // entrada
	MovementTypeOUT        = "OUT"        // salida
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste
	MovementTypeTRANSFER   = "TRANSFER"   // traslado entre cajas
)

// StockMovement representa un movimiento de inventario sobre una caja.
// Un TRANSFER genera dos filas (salida y entrada) con el mismo TransactionID.
type StockMovement struct {
	ID              string
	TransactionID   string
	ProductType     string // jewel, material
	ProductID       string
	StorageObjectID string
	Type            string
	Quantity        decimal.Decimal // positivo entrada/ajuste+, negativo salida
	UnitCost        decimal.Decimal
	TotalCost       decimal.Decimal
	Reference       string // factura, orden, nota de ajuste, etc.
	Date            time.Time
	CreatedAt       time.Time
	CreatedBy       string
}
