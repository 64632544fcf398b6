// Package ubl serializa facturas como documentos Invoice con sabor UBL 2.1,
// para archivo del cliente o integración con sistemas contables. Es una
// exportación informativa: no lleva firma digital ni extensiones fiscales.
package ubl

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	appbilling "github.com/jhoicas/joyeria-pos/internal/application/billing"
	"github.com/jhoicas/joyeria-pos/internal/domain/entity"
	"github.com/jhoicas/joyeria-pos/pkg/config"
)

// Namespaces UBL 2.1.
const (
	nsInvoice = "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
	nsCac     = "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
	nsCbc     = "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"

	currencyCOP = "COP"
)

var _ appbilling.InvoiceXMLExporter = (*InvoiceExporter)(nil)

// InvoiceExporter implementa billing.InvoiceXMLExporter usando etree.
// La identidad del emisor viene de configuración (sistema mono-empresa).
type InvoiceExporter struct {
	business config.BusinessConfig
}

// NewInvoiceExporter construye el exportador con la identidad del emisor.
func NewInvoiceExporter(business config.BusinessConfig) *InvoiceExporter {
	return &InvoiceExporter{business: business}
}

// ExportInvoiceXML genera el documento Invoice indentado, con declaración XML.
func (e *InvoiceExporter) ExportInvoiceXML(
	inv *entity.Invoice,
	customer *entity.Customer,
	location *entity.Location,
	details []appbilling.InvoiceDetailForPDF,
) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("Invoice")
	root.CreateAttr("xmlns", nsInvoice)
	root.CreateAttr("xmlns:cac", nsCac)
	root.CreateAttr("xmlns:cbc", nsCbc)

	// Cabecera cbc
	cbc(root, "UBLVersionID", "2.1")
	cbc(root, "CustomizationID", "POS")
	cbc(root, "ID", inv.Prefix+"-"+inv.Number)
	cbc(root, "IssueDate", inv.Date.Format("2006-01-02"))
	cbc(root, "IssueTime", inv.Date.Format("15:04:05-07:00"))
	cbc(root, "DocumentCurrencyCode", currencyCOP)
	cbc(root, "LineCountNumeric", strconv.Itoa(len(details)))
	if inv.Status == entity.InvoiceStatusVoid {
		cbc(root, "Note", "ANULADA")
	}

	// Emisor y tienda
	supplier := root.CreateElement("cac:AccountingSupplierParty")
	party := supplier.CreateElement("cac:Party")
	partyName := party.CreateElement("cac:PartyName")
	cbc(partyName, "Name", e.business.Name)
	if e.business.TaxID != "" {
		taxScheme := party.CreateElement("cac:PartyTaxScheme")
		cbc(taxScheme, "CompanyID", e.business.TaxID)
	}
	address := party.CreateElement("cac:PostalAddress")
	cbc(address, "StreetName", location.Address)
	cbc(address, "CityName", location.City)

	// Cliente
	buyer := root.CreateElement("cac:AccountingCustomerParty")
	buyerParty := buyer.CreateElement("cac:Party")
	buyerName := buyerParty.CreateElement("cac:PartyName")
	cbc(buyerName, "Name", customer.Name)
	buyerTax := buyerParty.CreateElement("cac:PartyTaxScheme")
	cbc(buyerTax, "CompanyID", customer.TaxID)

	// Medio de pago
	paymentMeans := root.CreateElement("cac:PaymentMeans")
	cbc(paymentMeans, "PaymentMeansCode", inv.PaymentMethod)

	// Impuestos y totales
	taxTotal := root.CreateElement("cac:TaxTotal")
	cbcAmount(taxTotal, "TaxAmount", inv.TaxTotal.StringFixed(2))

	monetary := root.CreateElement("cac:LegalMonetaryTotal")
	cbcAmount(monetary, "LineExtensionAmount", inv.NetTotal.StringFixed(2))
	cbcAmount(monetary, "TaxExclusiveAmount", inv.NetTotal.StringFixed(2))
	cbcAmount(monetary, "TaxInclusiveAmount", inv.GrandTotal.StringFixed(2))
	cbcAmount(monetary, "PayableAmount", inv.GrandTotal.StringFixed(2))

	// Una cac:InvoiceLine por detalle
	for i, d := range details {
		line := root.CreateElement("cac:InvoiceLine")
		cbc(line, "ID", strconv.Itoa(i+1))
		qty := cbc(line, "InvoicedQuantity", d.Quantity.String())
		qty.CreateAttr("unitCode", "94")
		cbcAmount(line, "LineExtensionAmount", d.Subtotal.StringFixed(2))

		item := line.CreateElement("cac:Item")
		cbc(item, "Description", d.ProductName)
		sellerID := item.CreateElement("cac:SellersItemIdentification")
		cbc(sellerID, "ID", d.ProductID)

		price := line.CreateElement("cac:Price")
		cbcAmount(price, "PriceAmount", d.UnitPrice.StringFixed(2))
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("ubl: serializar factura: %w", err)
	}
	return out, nil
}

// cbc agrega un hijo cbc:local con el texto dado y lo devuelve.
func cbc(parent *etree.Element, local, value string) *etree.Element {
	el := parent.CreateElement("cbc:" + local)
	el.SetText(value)
	return el
}

// cbcAmount agrega un hijo cbc:local con currencyID COP.
func cbcAmount(parent *etree.Element, local, value string) *etree.Element {
	el := cbc(parent, local, value)
	el.CreateAttr("currencyID", currencyCOP)
	return el
}
