package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart representa el carrito abierto de un usuario (uno por usuario).
type Cart struct {
	ID        string
	UserID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartItem representa una línea del carrito.
// UnitPrice es el precio aplicado; puede diferir del catálogo (descuento manual).
type CartItem struct {
	ID        string
	CartID    string
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
