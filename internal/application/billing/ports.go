package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/joyeria-pos/internal/domain/entity"
	"github.com/jhoicas/joyeria-pos/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de una transacción que incluye los
// repos de inventario y facturación: la factura y sus salidas de stock se
// confirman o se revierten juntas.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		plRepo repository.ProductLocationRepository,
		objectRepo repository.StorageObjectRepository,
		invoiceRepo repository.InvoiceRepository,
	) error) error
}

// InventoryUseCase integra facturación con inventario usando los repositorios
// del caller (misma transacción). Si retorna error (ej: ErrInsufficientStock)
// el caller debe hacer rollback.
type InventoryUseCase interface {
	// RegisterOUTInTx descuenta stock de la tienda: de la caja fijada, o FIFO
	// entre las cajas de la ubicación si storageObjectID viene vacío.
	RegisterOUTInTx(
		movRepo repository.StockMovementRepository,
		plRepo repository.ProductLocationRepository,
		product *entity.Product,
		locationID, storageObjectID, userID, reference string,
		quantity decimal.Decimal,
		movementDate time.Time,
		transactionID string,
	) error
	// RegisterINInTx reingresa stock a una caja concreta (anulación de factura).
	RegisterINInTx(
		movRepo repository.StockMovementRepository,
		plRepo repository.ProductLocationRepository,
		product *entity.Product,
		box *entity.StorageObject,
		userID, reference string,
		quantity decimal.Decimal,
		movementDate time.Time,
		transactionID string,
	) error
}

// InvoiceDetailForPDF detalle enriquecido con el nombre del producto para la
// representación gráfica.
type InvoiceDetailForPDF struct {
	entity.InvoiceDetail
	ProductName string
}

// InvoicePDFGenerator genera la representación gráfica (PDF) de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(
		ctx context.Context,
		inv *entity.Invoice,
		customer *entity.Customer,
		location *entity.Location,
		details []InvoiceDetailForPDF,
	) ([]byte, error)
}

// InvoiceXMLExporter serializa una factura como XML UBL para archivo o
// integración contable.
type InvoiceXMLExporter interface {
	ExportInvoiceXML(
		inv *entity.Invoice,
		customer *entity.Customer,
		location *entity.Location,
		details []InvoiceDetailForPDF,
	) ([]byte, error)
}
