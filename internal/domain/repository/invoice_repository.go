package repository

import "github.com/jhoicas/joyeria-pos/internal/domain/entity"

// InvoiceRepository define el puerto de persistencia para Invoice y detalles.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	CreateDetail(detail *entity.InvoiceDetail) error
	GetByID(id string) (*entity.Invoice, error)
	GetDetailsByInvoiceID(invoiceID string) ([]*entity.InvoiceDetail, error)
	List(limit, offset int) ([]*entity.Invoice, error)
	UpdateStatus(id, status string) error
	// NextNumber incrementa y devuelve el consecutivo del prefijo.
	// Debe llamarse dentro de la transacción que crea la factura.
	NextNumber(prefix string) (int64, error)
}
