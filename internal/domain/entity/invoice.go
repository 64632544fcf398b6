package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura.
const (
	InvoiceStatusPaid = "PAID" // pagada y con stock descontado
	InvoiceStatusVoid = "VOID" // anulada, stock reingresado
)

// Invoice representa la cabecera de una factura de venta.
type Invoice struct {
	ID            string
	CustomerID    string
	LocationID    string
	Prefix        string
	Number        string
	Date          time.Time
	PaymentMethod string // código del medio de pago (10 efectivo, 48 tarjeta, ...)
	NetTotal      decimal.Decimal
	TaxTotal      decimal.Decimal
	GrandTotal    decimal.Decimal
	Status        string
	QRData        string // payload de verificación impreso como QR en el PDF
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
