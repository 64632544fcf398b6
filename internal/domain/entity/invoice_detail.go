package entity

import "github.com/shopspring/decimal"

// InvoiceDetail representa una línea de detalle de una factura.
// StorageObjectID vacío = la salida de stock se reparte FIFO entre las cajas de la ubicación.
type InvoiceDetail struct {
	ID              string
	InvoiceID       string
	ProductID       string
	StorageObjectID string
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	TaxRate         decimal.Decimal
	Subtotal        decimal.Decimal
}
