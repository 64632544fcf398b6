package dto

import "github.com/shopspring/decimal"

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=200"`
	TaxID string `json:"tax_id" validate:"required"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
	Phone string `json:"phone,omitempty"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	TaxID string `json:"tax_id"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// CustomerListResponse lista paginada de clientes.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// CreateInvoiceRequest body para POST /api/invoices.
// LocationID: tienda de la cual se descuenta el inventario (FIFO entre sus cajas).
type CreateInvoiceRequest struct {
	CustomerID    string               `json:"customer_id" validate:"required,uuid"`
	LocationID    string               `json:"location_id" validate:"required,uuid"`
	PaymentMethod string               `json:"payment_method" validate:"required"`
	Items         []InvoiceItemRequest `json:"items" validate:"required,min=1,dive"`
}

// InvoiceItemRequest línea de factura. UnitPrice vacío = precio de catálogo.
// StorageObjectID fija la caja de salida; vacío = FIFO entre las cajas de la tienda.
type InvoiceItemRequest struct {
	ProductID       string           `json:"product_id" validate:"required,uuid"`
	StorageObjectID string           `json:"storage_object_id,omitempty" validate:"omitempty,uuid"`
	Quantity        decimal.Decimal  `json:"quantity"`
	UnitPrice       *decimal.Decimal `json:"unit_price,omitempty"`
}

// InvoiceResponse factura con detalle para GET /api/invoices/:id.
type InvoiceResponse struct {
	ID            string                  `json:"id"`
	CustomerID    string                  `json:"customer_id"`
	CustomerName  string                  `json:"customer_name,omitempty"`
	LocationID    string                  `json:"location_id"`
	Prefix        string                  `json:"prefix"`
	Number        string                  `json:"number"`
	Date          string                  `json:"date"`
	PaymentMethod string                  `json:"payment_method"`
	NetTotal      decimal.Decimal         `json:"net_total"`
	TaxTotal      decimal.Decimal         `json:"tax_total"`
	GrandTotal    decimal.Decimal         `json:"grand_total"`
	Status        string                  `json:"status"`
	QRData        string                  `json:"qr_data,omitempty"`
	Details       []InvoiceDetailResponse `json:"details"`
}

// InvoiceDetailResponse línea de detalle en la respuesta.
type InvoiceDetailResponse struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	StorageObjectID string          `json:"storage_object_id,omitempty"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
	Subtotal        decimal.Decimal `json:"subtotal"`
}

// InvoiceListResponse lista paginada de facturas (sin detalle).
type InvoiceListResponse struct {
	Items []InvoiceResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
