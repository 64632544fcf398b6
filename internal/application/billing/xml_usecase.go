package billing

import (
	"fmt"

	"github.com/jhoicas/joyeria-pos/internal/domain"
	"github.com/jhoicas/joyeria-pos/internal/domain/repository"
)

// XMLUseCase exporta una factura como XML UBL para archivo o integración
// contable. Reusa el mismo detalle enriquecido que la representación gráfica.
type XMLUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	locationRepo repository.LocationRepository
	pdfUC        *PDFUseCase
	exporter     InvoiceXMLExporter
}

// NewXMLUseCase construye el caso de uso.
func NewXMLUseCase(
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	locationRepo repository.LocationRepository,
	pdfUC *PDFUseCase,
	exporter InvoiceXMLExporter,
) *XMLUseCase {
	return &XMLUseCase{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		locationRepo: locationRepo,
		pdfUC:        pdfUC,
		exporter:     exporter,
	}
}

// ExportInvoiceXML serializa la factura con cliente, tienda y detalle.
func (uc *XMLUseCase) ExportInvoiceXML(invoiceID string) (xmlBytes []byte, filename string, err error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("xml: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}

	customer, err := uc.customerRepo.GetByID(inv.CustomerID)
	if err != nil || customer == nil {
		return nil, "", fmt.Errorf("xml: obtener cliente: %w", err)
	}
	location, err := uc.locationRepo.GetByID(inv.LocationID)
	if err != nil || location == nil {
		return nil, "", fmt.Errorf("xml: obtener tienda: %w", err)
	}

	details, err := uc.pdfUC.loadDetailsForPrint(invoiceID)
	if err != nil {
		return nil, "", err
	}

	xmlBytes, err = uc.exporter.ExportInvoiceXML(inv, customer, location, details)
	if err != nil {
		return nil, "", fmt.Errorf("xml: exportación fallida: %w", err)
	}
	filename = fmt.Sprintf("factura_%s-%s.xml", inv.Prefix, inv.Number)
	return xmlBytes, filename, nil
}
