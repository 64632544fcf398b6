package billing_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/joyeria-pos/internal/application/billing"
	"github.com/jhoicas/joyeria-pos/internal/application/dto"
	"github.com/jhoicas/joyeria-pos/internal/domain"
	"github.com/jhoicas/joyeria-pos/internal/domain/entity"
	"github.com/jhoicas/joyeria-pos/internal/domain/repository"
	"github.com/jhoicas/joyeria-pos/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests de facturación: consecutivo por prefijo, totales con IVA, salidas de
// inventario una por línea (FIFO o caja fijada) y anulación con reingreso.
// El motor de inventario se reemplaza por un doble que registra las llamadas.
// ──────────────────────────────────────────────────────────────────────────────

type outCall struct {
	productID  string
	locationID string
	boxID      string
	reference  string
	qty        decimal.Decimal
	txID       string
}

type inCall struct {
	productID string
	boxID     string
	reference string
	qty       decimal.Decimal
	txID      string
}

type fakeEngine struct {
	outs        []outCall
	ins         []inCall
	failProduct string // simula stock insuficiente para este producto
}

func (f *fakeEngine) RegisterOUTInTx(
	_ repository.StockMovementRepository,
	_ repository.ProductLocationRepository,
	product *entity.Product,
	locationID, storageObjectID, _, reference string,
	quantity decimal.Decimal,
	_ time.Time,
	transactionID string,
) error {
	if product.ID == f.failProduct {
		return domain.ErrInsufficientStock
	}
	f.outs = append(f.outs, outCall{
		productID:  product.ID,
		locationID: locationID,
		boxID:      storageObjectID,
		reference:  reference,
		qty:        quantity,
		txID:       transactionID,
	})
	return nil
}

func (f *fakeEngine) RegisterINInTx(
	_ repository.StockMovementRepository,
	_ repository.ProductLocationRepository,
	product *entity.Product,
	box *entity.StorageObject,
	_, reference string,
	quantity decimal.Decimal,
	_ time.Time,
	transactionID string,
) error {
	f.ins = append(f.ins, inCall{
		productID: product.ID,
		boxID:     box.ID,
		reference: reference,
		qty:       quantity,
		txID:      transactionID,
	})
	return nil
}

type fakeInvoiceRepo struct {
	invoices map[string]*entity.Invoice
	details  []*entity.InvoiceDetail
	seq      map[string]int64
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: map[string]*entity.Invoice{}, seq: map[string]int64{}}
}

func (f *fakeInvoiceRepo) Create(inv *entity.Invoice) error { f.invoices[inv.ID] = inv; return nil }
func (f *fakeInvoiceRepo) CreateDetail(d *entity.InvoiceDetail) error {
	f.details = append(f.details, d)
	return nil
}
func (f *fakeInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	return f.invoices[id], nil
}
func (f *fakeInvoiceRepo) GetDetailsByInvoiceID(invoiceID string) ([]*entity.InvoiceDetail, error) {
	var out []*entity.InvoiceDetail
	for _, d := range f.details {
		if d.InvoiceID == invoiceID {
			out = append(out, d)
		}
	}
	return out, nil
}
func (f *fakeInvoiceRepo) List(int, int) ([]*entity.Invoice, error) { return nil, nil }
func (f *fakeInvoiceRepo) UpdateStatus(id, status string) error {
	f.invoices[id].Status = status
	return nil
}
func (f *fakeInvoiceRepo) NextNumber(prefix string) (int64, error) {
	f.seq[prefix]++
	return f.seq[prefix], nil
}

type fakeCustomerRepo struct {
	customers map[string]*entity.Customer
}

func (f *fakeCustomerRepo) Create(c *entity.Customer) error { f.customers[c.ID] = c; return nil }
func (f *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return f.customers[id], nil
}
func (f *fakeCustomerRepo) GetByTaxID(taxID string) (*entity.Customer, error) {
	for _, c := range f.customers {
		if c.TaxID == taxID {
			return c, nil
		}
	}
	return nil, nil
}
func (f *fakeCustomerRepo) List(int, int) ([]*entity.Customer, error) { return nil, nil }
func (f *fakeCustomerRepo) Update(c *entity.Customer) error           { f.customers[c.ID] = c; return nil }
func (f *fakeCustomerRepo) Delete(id string) error                    { delete(f.customers, id); return nil }

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (f *fakeProductRepo) Create(p *entity.Product) error { f.products[p.ID] = p; return nil }
func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return f.products[id], nil
}
func (f *fakeProductRepo) GetBySKU(string) (*entity.Product, error)           { return nil, nil }
func (f *fakeProductRepo) Update(*entity.Product) error                       { return nil }
func (f *fakeProductRepo) UpdateCost(string, decimal.Decimal) error           { return nil }
func (f *fakeProductRepo) List(int, int) ([]*entity.Product, error)           { return nil, nil }
func (f *fakeProductRepo) Search(string, int, int) ([]*entity.Product, error) { return nil, nil }
func (f *fakeProductRepo) Delete(string) error                                { return nil }

type fakeLocationRepo struct {
	locations map[string]*entity.Location
}

func (f *fakeLocationRepo) Create(l *entity.Location) error { f.locations[l.ID] = l; return nil }
func (f *fakeLocationRepo) GetByID(id string) (*entity.Location, error) {
	return f.locations[id], nil
}
func (f *fakeLocationRepo) GetByCode(string) (*entity.Location, error)    { return nil, nil }
func (f *fakeLocationRepo) Update(*entity.Location) error                 { return nil }
func (f *fakeLocationRepo) List(int, int) ([]*entity.Location, error)     { return nil, nil }
func (f *fakeLocationRepo) ListActive(string) ([]*entity.Location, error) { return nil, nil }
func (f *fakeLocationRepo) Delete(string) error                           { return nil }

type fakeTypeRepo struct {
	shelves map[string]*entity.StorageType
}

func (f *fakeTypeRepo) Create(st *entity.StorageType) error { f.shelves[st.ID] = st; return nil }
func (f *fakeTypeRepo) GetByID(id string) (*entity.StorageType, error) {
	return f.shelves[id], nil
}
func (f *fakeTypeRepo) GetByLocationAndCode(string, string) (*entity.StorageType, error) {
	return nil, nil
}
func (f *fakeTypeRepo) Update(*entity.StorageType) error       { return nil }
func (f *fakeTypeRepo) UpdatePosition(string, int) error       { return nil }
func (f *fakeTypeRepo) ListByLocation(string, int, int) ([]*entity.StorageType, error) {
	return nil, nil
}
func (f *fakeTypeRepo) CodeFields(string) ([]string, []string, error) { return nil, nil, nil }
func (f *fakeTypeRepo) CountByLocation(string) (int, error)           { return 0, nil }
func (f *fakeTypeRepo) Delete(string) error                           { return nil }

type fakeObjectRepo struct {
	boxes   map[string]*entity.StorageObject
	shelves *fakeTypeRepo
}

func (f *fakeObjectRepo) Create(o *entity.StorageObject) error { f.boxes[o.ID] = o; return nil }
func (f *fakeObjectRepo) GetByID(id string) (*entity.StorageObject, error) {
	return f.boxes[id], nil
}
func (f *fakeObjectRepo) Update(*entity.StorageObject) error      { return nil }
func (f *fakeObjectRepo) UpdateParent(string, string) error       { return nil }
func (f *fakeObjectRepo) ListByStorageType(string, int, int) ([]*entity.StorageObject, error) {
	return nil, nil
}
func (f *fakeObjectRepo) CodeFieldsByLocation(string) ([]string, []string, error) {
	return nil, nil, nil
}
func (f *fakeObjectRepo) FirstByLocation(locationID string) (*entity.StorageObject, error) {
	var oldest *entity.StorageObject
	for _, o := range f.boxes {
		shelf := f.shelves.shelves[o.StorageTypeID]
		if shelf == nil || shelf.LocationID != locationID {
			continue
		}
		if oldest == nil || o.CreatedAt.Before(oldest.CreatedAt) {
			oldest = o
		}
	}
	return oldest, nil
}
func (f *fakeObjectRepo) CountByStorageType(string) (int, error) { return 0, nil }
func (f *fakeObjectRepo) LockCodeScope(string) error             { return nil }
func (f *fakeObjectRepo) Delete(string) error                    { return nil }

// fakeBillingTx entrega los mismos fakes dentro de la "transacción".
type fakeBillingTx struct {
	invoiceRepo *fakeInvoiceRepo
	objectRepo  *fakeObjectRepo
}

func (f *fakeBillingTx) RunBilling(_ context.Context, fn func(
	repository.StockMovementRepository,
	repository.ProductLocationRepository,
	repository.StorageObjectRepository,
	repository.InvoiceRepository,
) error) error {
	return fn(nil, nil, f.objectRepo, f.invoiceRepo)
}

// ── fixture ──────────────────────────────────────────────────────────────────

type billingFixture struct {
	uc        *billing.InvoiceUseCase
	engine    *fakeEngine
	invoices  *fakeInvoiceRepo
	customers *fakeCustomerRepo
	products  *fakeProductRepo
	locations *fakeLocationRepo
	shelves   *fakeTypeRepo
	boxes     *fakeObjectRepo
}

func newBillingFixture(t *testing.T) *billingFixture {
	t.Helper()

	f := &billingFixture{
		engine:    &fakeEngine{},
		invoices:  newFakeInvoiceRepo(),
		customers: &fakeCustomerRepo{customers: map[string]*entity.Customer{}},
		products:  &fakeProductRepo{products: map[string]*entity.Product{}},
		locations: &fakeLocationRepo{locations: map[string]*entity.Location{}},
		shelves:   &fakeTypeRepo{shelves: map[string]*entity.StorageType{}},
	}
	f.boxes = &fakeObjectRepo{boxes: map[string]*entity.StorageObject{}, shelves: f.shelves}

	f.customers.customers["cust-1"] = &entity.Customer{ID: "cust-1", Name: "Ana Gómez", TaxID: "900123456"}
	f.locations.locations["loc-1"] = &entity.Location{ID: "loc-1", Name: "Tienda Centro", Status: "active"}

	log := logger.New(logger.Config{Env: "production", Level: "error"})
	f.uc = billing.NewInvoiceUseCase(
		&fakeBillingTx{invoiceRepo: f.invoices, objectRepo: f.boxes},
		f.engine,
		f.customers,
		f.products,
		f.locations,
		f.shelves,
		f.boxes,
		f.invoices,
		billing.Config{Prefix: "FV", VerifyBaseURL: "https://joyeria.example/verify/"},
		log,
	)
	return f
}

func (f *billingFixture) addJewel(id string, price, taxRate string) {
	f.products.products[id] = &entity.Product{
		ID:      id,
		SKU:     "SKU-" + id,
		Name:    "Joya " + id,
		Price:   decimal.RequireFromString(price),
		Cost:    decimal.RequireFromString(price).Div(decimal.NewFromInt(2)),
		TaxRate: decimal.RequireFromString(taxRate),
	}
}

func (f *billingFixture) addBox(id, shelfID, locationID string, createdAt time.Time) {
	f.shelves.shelves[shelfID] = &entity.StorageType{ID: shelfID, LocationID: locationID}
	f.boxes.boxes[id] = &entity.StorageObject{ID: id, StorageTypeID: shelfID, Code: "BOX_" + id, CreatedAt: createdAt}
}

// ── creación ─────────────────────────────────────────────────────────────────

func TestCreateInvoice_ConsecutivoTotalesYSalidas(t *testing.T) {
	f := newBillingFixture(t)
	f.addJewel("p1", "100000", "0.19")
	f.addJewel("p2", "50000", "0.05")

	inv, err := f.uc.CreateInvoice(context.Background(), "user-1", dto.CreateInvoiceRequest{
		CustomerID:    "cust-1",
		LocationID:    "loc-1",
		PaymentMethod: "10",
		Items: []dto.InvoiceItemRequest{
			{ProductID: "p1", Quantity: decimal.NewFromInt(1)},
			{ProductID: "p2", Quantity: decimal.NewFromInt(2)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "FV", inv.Prefix)
	assert.Equal(t, "1", inv.Number)
	assert.Equal(t, entity.InvoiceStatusPaid, inv.Status)
	assert.Equal(t, "Ana Gómez", inv.CustomerName)

	// neto 100000 + 100000; IVA 19000 + 5000
	assert.Equal(t, "200000", inv.NetTotal.String())
	assert.Equal(t, "24000", inv.TaxTotal.String())
	assert.Equal(t, "224000", inv.GrandTotal.String())

	// una salida por línea, todas referenciando la factura
	require.Len(t, f.engine.outs, 2)
	assert.Equal(t, inv.ID, f.engine.outs[0].txID)
	assert.Equal(t, inv.ID, f.engine.outs[1].txID)
	assert.Equal(t, "loc-1", f.engine.outs[0].locationID)
	assert.Empty(t, f.engine.outs[0].boxID, "sin caja fijada la salida es FIFO")
	assert.Contains(t, f.engine.outs[0].reference, "FV-1")

	// QR: NumFac|FecFac|ValFac|CodImp|ValImp|Id|Url
	parts := strings.Split(inv.QRData, "|")
	require.Len(t, parts, 7)
	assert.Equal(t, "FV-1", parts[0])
	assert.Equal(t, "224000.00", parts[2])
	assert.Equal(t, "01", parts[3])
	assert.Equal(t, inv.ID, parts[5])
	assert.True(t, strings.HasPrefix(parts[6], "https://joyeria.example/verify/"))

	// el consecutivo avanza con la siguiente factura
	inv2, err := f.uc.CreateInvoice(context.Background(), "user-1", dto.CreateInvoiceRequest{
		CustomerID:    "cust-1",
		LocationID:    "loc-1",
		PaymentMethod: "10",
		Items:         []dto.InvoiceItemRequest{{ProductID: "p1", Quantity: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)
	assert.Equal(t, "2", inv2.Number)
}

func TestCreateInvoice_PrecioManualSobreCatalogo(t *testing.T) {
	f := newBillingFixture(t)
	f.addJewel("p1", "100000", "0")

	manual := decimal.NewFromInt(80000)
	inv, err := f.uc.CreateInvoice(context.Background(), "user-1", dto.CreateInvoiceRequest{
		CustomerID:    "cust-1",
		LocationID:    "loc-1",
		PaymentMethod: "10",
		Items:         []dto.InvoiceItemRequest{{ProductID: "p1", Quantity: decimal.NewFromInt(1), UnitPrice: &manual}},
	})
	require.NoError(t, err)
	require.Len(t, inv.Details, 1)
	assert.Equal(t, "80000", inv.Details[0].UnitPrice.String())
	assert.Equal(t, "80000", inv.NetTotal.String())
}

func TestCreateInvoice_SinStock_NoGuardaFactura(t *testing.T) {
	f := newBillingFixture(t)
	f.addJewel("p1", "100000", "0.19")
	f.addJewel("p2", "50000", "0.19")
	f.engine.failProduct = "p2"

	_, err := f.uc.CreateInvoice(context.Background(), "user-1", dto.CreateInvoiceRequest{
		CustomerID:    "cust-1",
		LocationID:    "loc-1",
		PaymentMethod: "10",
		Items: []dto.InvoiceItemRequest{
			{ProductID: "p1", Quantity: decimal.NewFromInt(1)},
			{ProductID: "p2", Quantity: decimal.NewFromInt(1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, f.invoices.invoices, "la cabecera nunca llega a guardarse")
	assert.Empty(t, f.invoices.details)
}

func TestCreateInvoice_CajaFijadaDeOtraTienda_Invalida(t *testing.T) {
	f := newBillingFixture(t)
	f.addJewel("p1", "100000", "0.19")
	f.addBox("box-ajena", "shelf-ajena", "loc-otra", time.Now())

	_, err := f.uc.CreateInvoice(context.Background(), "user-1", dto.CreateInvoiceRequest{
		CustomerID:    "cust-1",
		LocationID:    "loc-1",
		PaymentMethod: "10",
		Items: []dto.InvoiceItemRequest{
			{ProductID: "p1", StorageObjectID: "box-ajena", Quantity: decimal.NewFromInt(1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateInvoice_MedioDePagoInvalido(t *testing.T) {
	f := newBillingFixture(t)
	f.addJewel("p1", "100000", "0.19")

	_, err := f.uc.CreateInvoice(context.Background(), "user-1", dto.CreateInvoiceRequest{
		CustomerID:    "cust-1",
		LocationID:    "loc-1",
		PaymentMethod: "99",
		Items:         []dto.InvoiceItemRequest{{ProductID: "p1", Quantity: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateInvoice_ClienteInexistente(t *testing.T) {
	f := newBillingFixture(t)
	f.addJewel("p1", "100000", "0.19")

	_, err := f.uc.CreateInvoice(context.Background(), "user-1", dto.CreateInvoiceRequest{
		CustomerID:    "cust-nope",
		LocationID:    "loc-1",
		PaymentMethod: "10",
		Items:         []dto.InvoiceItemRequest{{ProductID: "p1", Quantity: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── anulación ────────────────────────────────────────────────────────────────

func TestVoidInvoice_ReingresaYMarcaVoid(t *testing.T) {
	f := newBillingFixture(t)
	f.addJewel("p1", "100000", "0.19")
	f.addBox("box-1", "shelf-1", "loc-1", time.Now())

	inv, err := f.uc.CreateInvoice(context.Background(), "user-1", dto.CreateInvoiceRequest{
		CustomerID:    "cust-1",
		LocationID:    "loc-1",
		PaymentMethod: "10",
		Items: []dto.InvoiceItemRequest{
			{ProductID: "p1", StorageObjectID: "box-1", Quantity: decimal.NewFromInt(2)},
		},
	})
	require.NoError(t, err)

	voided, err := f.uc.VoidInvoice(context.Background(), "user-2", inv.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusVoid, voided.Status)
	assert.Equal(t, entity.InvoiceStatusVoid, f.invoices.invoices[inv.ID].Status)

	// el stock vuelve a la caja original de la línea
	require.Len(t, f.engine.ins, 1)
	assert.Equal(t, "box-1", f.engine.ins[0].boxID)
	assert.Equal(t, "2", f.engine.ins[0].qty.String())
	assert.Equal(t, inv.ID, f.engine.ins[0].txID)
	assert.Contains(t, f.engine.ins[0].reference, "anulación FV-1")
}

func TestVoidInvoice_SinCajaFijada_EntraALaMasAntigua(t *testing.T) {
	f := newBillingFixture(t)
	f.addJewel("p1", "100000", "0.19")
	f.addBox("box-nueva", "shelf-1", "loc-1", time.Now())
	f.addBox("box-vieja", "shelf-2", "loc-1", time.Now().Add(-24*time.Hour))

	inv, err := f.uc.CreateInvoice(context.Background(), "user-1", dto.CreateInvoiceRequest{
		CustomerID:    "cust-1",
		LocationID:    "loc-1",
		PaymentMethod: "10",
		Items:         []dto.InvoiceItemRequest{{ProductID: "p1", Quantity: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)

	_, err = f.uc.VoidInvoice(context.Background(), "user-1", inv.ID)
	require.NoError(t, err)
	require.Len(t, f.engine.ins, 1)
	assert.Equal(t, "box-vieja", f.engine.ins[0].boxID)
}

func TestVoidInvoice_SoloPagadasSeAnulan(t *testing.T) {
	f := newBillingFixture(t)
	f.addJewel("p1", "100000", "0.19")
	f.addBox("box-1", "shelf-1", "loc-1", time.Now())

	inv, err := f.uc.CreateInvoice(context.Background(), "user-1", dto.CreateInvoiceRequest{
		CustomerID:    "cust-1",
		LocationID:    "loc-1",
		PaymentMethod: "10",
		Items:         []dto.InvoiceItemRequest{{ProductID: "p1", Quantity: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)

	_, err = f.uc.VoidInvoice(context.Background(), "user-1", inv.ID)
	require.NoError(t, err)

	_, err = f.uc.VoidInvoice(context.Background(), "user-1", inv.ID)
	assert.ErrorIs(t, err, domain.ErrConflict, "una factura anulada no se anula dos veces")
}

func TestVoidInvoice_SinCajasEnLaTienda_Conflict(t *testing.T) {
	f := newBillingFixture(t)
	f.addJewel("p1", "100000", "0.19")

	inv, err := f.uc.CreateInvoice(context.Background(), "user-1", dto.CreateInvoiceRequest{
		CustomerID:    "cust-1",
		LocationID:    "loc-1",
		PaymentMethod: "10",
		Items:         []dto.InvoiceItemRequest{{ProductID: "p1", Quantity: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)

	_, err = f.uc.VoidInvoice(context.Background(), "user-1", inv.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}
