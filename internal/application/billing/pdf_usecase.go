package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/joyeria-pos/internal/domain"
	"github.com/jhoicas/joyeria-pos/internal/domain/repository"
)

// PDFUseCase genera la representación gráfica (PDF) de una factura.
type PDFUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	locationRepo repository.LocationRepository
	productRepo  repository.ProductRepository
	generator    InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	locationRepo repository.LocationRepository,
	productRepo repository.ProductRepository,
	generator InvoicePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		locationRepo: locationRepo,
		productRepo:  productRepo,
		generator:    generator,
	}
}

// DownloadInvoicePDF recupera todos los datos de la factura y genera el PDF
// con el detalle, los totales y el QR de verificación. Las facturas anuladas
// también se pueden descargar (salen con la marca de anulada).
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la factura no existe.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, invoiceID string) (pdfBytes []byte, filename string, err error) {
	// ── 1. Cargar factura ─────────────────────────────────────────────────────
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}

	// ── 2. Cargar cliente y tienda ────────────────────────────────────────────
	customer, err := uc.customerRepo.GetByID(inv.CustomerID)
	if err != nil || customer == nil {
		return nil, "", fmt.Errorf("pdf: obtener cliente: %w", err)
	}
	location, err := uc.locationRepo.GetByID(inv.LocationID)
	if err != nil || location == nil {
		return nil, "", fmt.Errorf("pdf: obtener tienda: %w", err)
	}

	// ── 3. Cargar detalles + enriquecer con nombre de producto ────────────────
	details, err := uc.loadDetailsForPrint(invoiceID)
	if err != nil {
		return nil, "", err
	}

	// ── 4. Generar PDF ────────────────────────────────────────────────────────
	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, inv, customer, location, details)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("factura_%s-%s.pdf", inv.Prefix, inv.Number)
	return pdfBytes, filename, nil
}

func (uc *PDFUseCase) loadDetailsForPrint(invoiceID string) ([]InvoiceDetailForPDF, error) {
	rawDetails, err := uc.invoiceRepo.GetDetailsByInvoiceID(invoiceID)
	if err != nil {
		return nil, fmt.Errorf("pdf: obtener detalles: %w", err)
	}
	enriched := make([]InvoiceDetailForPDF, 0, len(rawDetails))
	for _, d := range rawDetails {
		name := "Producto " + d.ProductID // fallback
		if product, pErr := uc.productRepo.GetByID(d.ProductID); pErr == nil && product != nil {
			name = product.Name
		}
		enriched = append(enriched, InvoiceDetailForPDF{
			InvoiceDetail: *d,
			ProductName:   name,
		})
	}
	return enriched, nil
}
