package dto

import "github.com/shopspring/decimal"

// AddCartItemRequest body para POST /api/cart/items.
// UnitPrice opcional: vacío = precio de catálogo vigente.
type AddCartItemRequest struct {
	ProductID string           `json:"product_id" validate:"required,uuid"`
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// UpdateCartItemRequest body para PUT /api/cart/items/:id.
type UpdateCartItemRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// CartItemResponse línea del carrito con datos del producto.
type CartItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductSKU  string          `json:"product_sku"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// CartResponse carrito completo con totales calculados.
type CartResponse struct {
	ID         string             `json:"id"`
	Items      []CartItemResponse `json:"items"`
	NetTotal   decimal.Decimal    `json:"net_total"`
	TaxTotal   decimal.Decimal    `json:"tax_total"`
	GrandTotal decimal.Decimal    `json:"grand_total"`
}

// CheckoutRequest body para POST /api/cart/checkout: convierte el carrito en factura.
type CheckoutRequest struct {
	CustomerID    string `json:"customer_id" validate:"required,uuid"`
	LocationID    string `json:"location_id" validate:"required,uuid"`
	PaymentMethod string `json:"payment_method" validate:"required"`
}
