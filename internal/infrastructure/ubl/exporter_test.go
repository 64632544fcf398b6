package ubl_test

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbilling "github.com/jhoicas/joyeria-pos/internal/application/billing"
	"github.com/jhoicas/joyeria-pos/internal/domain/entity"
	"github.com/jhoicas/joyeria-pos/internal/infrastructure/ubl"
	"github.com/jhoicas/joyeria-pos/pkg/config"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del exportador UBL. El XML es la interfaz con el sistema contable del
// cliente: si alguien mueve un elemento, renombra un tag o pierde el atributo
// de moneda, el import del lado contable se rompe en silencio. Los tests
// parsean el documento generado con etree y verifican la estructura exacta.
// ──────────────────────────────────────────────────────────────────────────────

const (
	testBusinessName = "Joyería La Esmeralda S.A.S."
	testBusinessNIT  = "901234567"
	testCustomerNIT  = "1098765432"
)

func TestExportInvoiceXML_EstructuraBasica(t *testing.T) {
	doc := exportAndParse(t, buildTestInvoice())

	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, "Invoice", root.Tag)
	assert.Equal(t, "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2",
		root.SelectAttrValue("xmlns", ""))

	assert.Equal(t, "2.1", root.SelectElement("cbc:UBLVersionID").Text())
	assert.Equal(t, "FV-1042", root.SelectElement("cbc:ID").Text(),
		"El ID debe ser prefijo-número")
	assert.Equal(t, "2025-11-29", root.SelectElement("cbc:IssueDate").Text())
	assert.Equal(t, "14:30:05-05:00", root.SelectElement("cbc:IssueTime").Text())
	assert.Equal(t, "COP", root.SelectElement("cbc:DocumentCurrencyCode").Text())
	assert.Equal(t, "2", root.SelectElement("cbc:LineCountNumeric").Text())
}

func TestExportInvoiceXML_EmisorYCliente(t *testing.T) {
	doc := exportAndParse(t, buildTestInvoice())
	root := doc.Root()

	supplier := root.SelectElement("cac:AccountingSupplierParty")
	require.NotNil(t, supplier)
	party := supplier.SelectElement("cac:Party")
	require.NotNil(t, party)
	assert.Equal(t, testBusinessName,
		party.SelectElement("cac:PartyName").SelectElement("cbc:Name").Text())
	assert.Equal(t, testBusinessNIT,
		party.SelectElement("cac:PartyTaxScheme").SelectElement("cbc:CompanyID").Text())
	address := party.SelectElement("cac:PostalAddress")
	require.NotNil(t, address)
	assert.Equal(t, "Bucaramanga", address.SelectElement("cbc:CityName").Text(),
		"La dirección es la de la tienda que factura, no la del emisor")

	buyer := root.SelectElement("cac:AccountingCustomerParty")
	require.NotNil(t, buyer)
	buyerParty := buyer.SelectElement("cac:Party")
	require.NotNil(t, buyerParty)
	assert.Equal(t, "Carolina Pérez",
		buyerParty.SelectElement("cac:PartyName").SelectElement("cbc:Name").Text())
	assert.Equal(t, testCustomerNIT,
		buyerParty.SelectElement("cac:PartyTaxScheme").SelectElement("cbc:CompanyID").Text())
}

func TestExportInvoiceXML_TotalesConMoneda(t *testing.T) {
	doc := exportAndParse(t, buildTestInvoice())
	root := doc.Root()

	tax := root.SelectElement("cac:TaxTotal").SelectElement("cbc:TaxAmount")
	require.NotNil(t, tax)
	assert.Equal(t, "190000.00", tax.Text())
	assert.Equal(t, "COP", tax.SelectAttrValue("currencyID", ""),
		"Todo monto debe llevar currencyID")

	monetary := root.SelectElement("cac:LegalMonetaryTotal")
	require.NotNil(t, monetary)
	assert.Equal(t, "1000000.00", monetary.SelectElement("cbc:LineExtensionAmount").Text())
	assert.Equal(t, "1190000.00", monetary.SelectElement("cbc:PayableAmount").Text())
	assert.Equal(t, "COP",
		monetary.SelectElement("cbc:PayableAmount").SelectAttrValue("currencyID", ""))
}

func TestExportInvoiceXML_LineasPorDetalle(t *testing.T) {
	doc := exportAndParse(t, buildTestInvoice())

	lines := doc.Root().SelectElements("cac:InvoiceLine")
	require.Len(t, lines, 2, "Debe haber una cac:InvoiceLine por detalle")

	// Las líneas se numeran 1..N en el orden de los detalles.
	assert.Equal(t, "1", lines[0].SelectElement("cbc:ID").Text())
	assert.Equal(t, "2", lines[1].SelectElement("cbc:ID").Text())

	qty := lines[0].SelectElement("cbc:InvoicedQuantity")
	require.NotNil(t, qty)
	assert.Equal(t, "2", qty.Text())
	assert.Equal(t, "94", qty.SelectAttrValue("unitCode", ""))

	item := lines[0].SelectElement("cac:Item")
	require.NotNil(t, item)
	assert.Equal(t, "Anillo corazón oro 18k", item.SelectElement("cbc:Description").Text())
	assert.Equal(t, "prod-anillo",
		item.SelectElement("cac:SellersItemIdentification").SelectElement("cbc:ID").Text())

	price := lines[0].SelectElement("cac:Price").SelectElement("cbc:PriceAmount")
	require.NotNil(t, price)
	assert.Equal(t, "450000.00", price.Text())
}

func TestExportInvoiceXML_FacturaAnuladaLlevaNota(t *testing.T) {
	fix := buildTestInvoice()
	fix.invoice.Status = entity.InvoiceStatusVoid

	doc := exportAndParse(t, fix)
	note := doc.Root().SelectElement("cbc:Note")
	require.NotNil(t, note, "Una factura anulada debe llevar cbc:Note")
	assert.Equal(t, "ANULADA", note.Text())
}

func TestExportInvoiceXML_FacturaPagadaSinNota(t *testing.T) {
	doc := exportAndParse(t, buildTestInvoice())
	assert.Nil(t, doc.Root().SelectElement("cbc:Note"),
		"Una factura pagada no lleva nota de anulación")
}

// TestExportInvoiceXML_Determinista verifica que el mismo input produce
// exactamente los mismos bytes (el contable compara archivos por checksum).
func TestExportInvoiceXML_Determinista(t *testing.T) {
	exporter := ubl.NewInvoiceExporter(buildTestBusiness())
	fix := buildTestInvoice()

	out1, err1 := exporter.ExportInvoiceXML(fix.invoice, fix.customer, fix.location, fix.details)
	out2, err2 := exporter.ExportInvoiceXML(fix.invoice, fix.customer, fix.location, fix.details)

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, out1, out2)
}

func TestExportInvoiceXML_EmisorSinNIT_OmiteTaxScheme(t *testing.T) {
	business := buildTestBusiness()
	business.TaxID = ""
	exporter := ubl.NewInvoiceExporter(business)
	fix := buildTestInvoice()

	out, err := exporter.ExportInvoiceXML(fix.invoice, fix.customer, fix.location, fix.details)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))
	party := doc.Root().SelectElement("cac:AccountingSupplierParty").SelectElement("cac:Party")
	assert.Nil(t, party.SelectElement("cac:PartyTaxScheme"),
		"Sin NIT configurado no se emite cac:PartyTaxScheme del emisor")
}

// ── fixtures ──────────────────────────────────────────────────────────────────

type invoiceFixture struct {
	invoice  *entity.Invoice
	customer *entity.Customer
	location *entity.Location
	details  []appbilling.InvoiceDetailForPDF
}

func buildTestBusiness() config.BusinessConfig {
	return config.BusinessConfig{
		Name:    testBusinessName,
		TaxID:   testBusinessNIT,
		Address: "Cra 15 # 34-20",
		City:    "Bucaramanga",
		Phone:   "6076421234",
		Email:   "ventas@laesmeralda.co",
	}
}

func buildTestInvoice() invoiceFixture {
	bogota := time.FixedZone("-05", -5*3600)
	return invoiceFixture{
		invoice: &entity.Invoice{
			ID:            "inv-1",
			CustomerID:    "cust-1",
			LocationID:    "loc-1",
			Prefix:        "FV",
			Number:        "1042",
			Date:          time.Date(2025, 11, 29, 14, 30, 5, 0, bogota),
			PaymentMethod: "10",
			NetTotal:      decimal.NewFromInt(1_000_000),
			TaxTotal:      decimal.NewFromInt(190_000),
			GrandTotal:    decimal.NewFromInt(1_190_000),
			Status:        entity.InvoiceStatusPaid,
		},
		customer: &entity.Customer{
			ID:    "cust-1",
			Name:  "Carolina Pérez",
			TaxID: testCustomerNIT,
		},
		location: &entity.Location{
			ID:      "loc-1",
			Code:    "TIENDA_CENTRO",
			Name:    "Tienda Centro",
			Address: "Cra 15 # 34-20",
			City:    "Bucaramanga",
		},
		details: []appbilling.InvoiceDetailForPDF{
			{
				InvoiceDetail: entity.InvoiceDetail{
					ID:        "det-1",
					InvoiceID: "inv-1",
					ProductID: "prod-anillo",
					Quantity:  decimal.NewFromInt(2),
					UnitPrice: decimal.NewFromInt(450_000),
					TaxRate:   decimal.NewFromInt(19),
					Subtotal:  decimal.NewFromInt(900_000),
				},
				ProductName: "Anillo corazón oro 18k",
			},
			{
				InvoiceDetail: entity.InvoiceDetail{
					ID:        "det-2",
					InvoiceID: "inv-1",
					ProductID: "prod-cadena",
					Quantity:  decimal.NewFromInt(1),
					UnitPrice: decimal.NewFromInt(100_000),
					TaxRate:   decimal.NewFromInt(19),
					Subtotal:  decimal.NewFromInt(100_000),
				},
				ProductName: "Cadena plata 925",
			},
		},
	}
}

// exportAndParse genera el XML de la factura y lo reparsea con etree.
func exportAndParse(t *testing.T, fix invoiceFixture) *etree.Document {
	t.Helper()
	exporter := ubl.NewInvoiceExporter(buildTestBusiness())
	out, err := exporter.ExportInvoiceXML(fix.invoice, fix.customer, fix.location, fix.details)
	require.NoError(t, err, "ExportInvoiceXML no debe fallar con una factura válida")

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out), "El XML generado debe ser parseable")
	return doc
}
