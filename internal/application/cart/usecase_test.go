package cart_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/joyeria-pos/internal/application/cart"
	"github.com/jhoicas/joyeria-pos/internal/application/dto"
	"github.com/jhoicas/joyeria-pos/internal/domain"
	"github.com/jhoicas/joyeria-pos/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del carrito: un carrito por usuario, acumulación de líneas, totales con
// IVA y checkout que factura y vacía el carrito solo si la factura se creó.
// ──────────────────────────────────────────────────────────────────────────────

type fakeCartRepo struct {
	carts map[string]*entity.Cart // por userID
	items map[string]*entity.CartItem
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: map[string]*entity.Cart{}, items: map[string]*entity.CartItem{}}
}

func (f *fakeCartRepo) Create(c *entity.Cart) error { f.carts[c.UserID] = c; return nil }
func (f *fakeCartRepo) GetByUser(userID string) (*entity.Cart, error) {
	return f.carts[userID], nil
}
func (f *fakeCartRepo) AddItem(item *entity.CartItem) error { f.items[item.ID] = item; return nil }
func (f *fakeCartRepo) GetItem(id string) (*entity.CartItem, error) {
	return f.items[id], nil
}
func (f *fakeCartRepo) GetItemByProduct(cartID, productID string) (*entity.CartItem, error) {
	for _, it := range f.items {
		if it.CartID == cartID && it.ProductID == productID {
			return it, nil
		}
	}
	return nil, nil
}
func (f *fakeCartRepo) UpdateItem(item *entity.CartItem) error { f.items[item.ID] = item; return nil }
func (f *fakeCartRepo) DeleteItem(id string) error             { delete(f.items, id); return nil }
func (f *fakeCartRepo) ListItems(cartID string) ([]*entity.CartItem, error) {
	var out []*entity.CartItem
	for _, it := range f.items {
		if it.CartID == cartID {
			out = append(out, it)
		}
	}
	return out, nil
}
func (f *fakeCartRepo) ClearItems(cartID string) error {
	for id, it := range f.items {
		if it.CartID == cartID {
			delete(f.items, id)
		}
	}
	return nil
}

type fakeCatalog struct {
	products map[string]*entity.Product
}

func (f *fakeCatalog) Create(p *entity.Product) error { f.products[p.ID] = p; return nil }
func (f *fakeCatalog) GetByID(id string) (*entity.Product, error) {
	return f.products[id], nil
}
func (f *fakeCatalog) GetBySKU(string) (*entity.Product, error)       { return nil, nil }
func (f *fakeCatalog) Update(*entity.Product) error                   { return nil }
func (f *fakeCatalog) UpdateCost(string, decimal.Decimal) error       { return nil }
func (f *fakeCatalog) List(int, int) ([]*entity.Product, error)       { return nil, nil }
func (f *fakeCatalog) Search(string, int, int) ([]*entity.Product, error) { return nil, nil }
func (f *fakeCatalog) Delete(string) error                            { return nil }

// fakeInvoiceCreator captura el request y responde con una factura fija o un error.
type fakeInvoiceCreator struct {
	lastReq *dto.CreateInvoiceRequest
	resp    *dto.InvoiceResponse
	err     error
}

func (f *fakeInvoiceCreator) CreateInvoice(_ context.Context, _ string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	f.lastReq = &in
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type cartFixture struct {
	uc       *cart.CartUseCase
	repo     *fakeCartRepo
	catalog  *fakeCatalog
	invoices *fakeInvoiceCreator
}

func newCartFixture(t *testing.T) *cartFixture {
	t.Helper()
	repo := newFakeCartRepo()
	catalog := &fakeCatalog{products: map[string]*entity.Product{}}
	invoices := &fakeInvoiceCreator{resp: &dto.InvoiceResponse{ID: "inv-1", Number: "1"}}
	return &cartFixture{
		uc:       cart.NewCartUseCase(repo, catalog, invoices),
		repo:     repo,
		catalog:  catalog,
		invoices: invoices,
	}
}

func (f *cartFixture) addJewel(id, sku string, price, taxRate string) {
	f.catalog.products[id] = &entity.Product{
		ID:      id,
		SKU:     sku,
		Name:    "Joya " + sku,
		Price:   decimal.RequireFromString(price),
		TaxRate: decimal.RequireFromString(taxRate),
	}
}

func TestGet_CreaCarritoVacioAlPrimerUso(t *testing.T) {
	f := newCartFixture(t)

	resp, err := f.uc.Get("user-1")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Empty(t, resp.Items)
	assert.True(t, resp.GrandTotal.IsZero())

	again, err := f.uc.Get("user-1")
	require.NoError(t, err)
	assert.Equal(t, resp.ID, again.ID, "el carrito es el mismo en usos posteriores")
}

func TestAddItem_PrecioDeCatalogoPorDefecto(t *testing.T) {
	f := newCartFixture(t)
	f.addJewel("p1", "AN-001", "250000", "0.19")

	resp, err := f.uc.AddItem("user-1", dto.AddCartItemRequest{
		ProductID: "p1",
		Quantity:  decimal.NewFromInt(2),
	})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "250000", resp.Items[0].UnitPrice.String())
	assert.Equal(t, "500000", resp.Items[0].Subtotal.String())
}

func TestAddItem_PrecioManualManda(t *testing.T) {
	f := newCartFixture(t)
	f.addJewel("p1", "AN-001", "250000", "0.19")

	manual := decimal.NewFromInt(200000)
	resp, err := f.uc.AddItem("user-1", dto.AddCartItemRequest{
		ProductID: "p1",
		Quantity:  decimal.NewFromInt(1),
		UnitPrice: &manual,
	})
	require.NoError(t, err)
	assert.Equal(t, "200000", resp.Items[0].UnitPrice.String())
}

func TestAddItem_AcumulaCantidadDelMismoProducto(t *testing.T) {
	f := newCartFixture(t)
	f.addJewel("p1", "AN-001", "100000", "0.19")

	_, err := f.uc.AddItem("user-1", dto.AddCartItemRequest{ProductID: "p1", Quantity: decimal.NewFromInt(1)})
	require.NoError(t, err)
	resp, err := f.uc.AddItem("user-1", dto.AddCartItemRequest{ProductID: "p1", Quantity: decimal.NewFromInt(2)})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1, "misma referencia no duplica líneas")
	assert.Equal(t, "3", resp.Items[0].Quantity.String())
}

func TestAddItem_ProductoInexistente(t *testing.T) {
	f := newCartFixture(t)

	_, err := f.uc.AddItem("user-1", dto.AddCartItemRequest{ProductID: "nope", Quantity: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGet_CalculaTotalesConIVA(t *testing.T) {
	f := newCartFixture(t)
	f.addJewel("p1", "AN-001", "100000", "0.19")
	f.addJewel("p2", "CA-002", "50000", "0.05")

	_, err := f.uc.AddItem("user-1", dto.AddCartItemRequest{ProductID: "p1", Quantity: decimal.NewFromInt(1)})
	require.NoError(t, err)
	resp, err := f.uc.AddItem("user-1", dto.AddCartItemRequest{ProductID: "p2", Quantity: decimal.NewFromInt(2)})
	require.NoError(t, err)

	// neto 100000 + 100000; IVA 19000 + 5000
	assert.Equal(t, "200000", resp.NetTotal.String())
	assert.Equal(t, "24000", resp.TaxTotal.String())
	assert.Equal(t, "224000", resp.GrandTotal.String())
}

func TestUpdateItem_DeOtroUsuario_NotFound(t *testing.T) {
	f := newCartFixture(t)
	f.addJewel("p1", "AN-001", "100000", "0.19")

	resp, err := f.uc.AddItem("user-1", dto.AddCartItemRequest{ProductID: "p1", Quantity: decimal.NewFromInt(1)})
	require.NoError(t, err)

	_, err = f.uc.UpdateItem("user-2", resp.Items[0].ID, dto.UpdateCartItemRequest{Quantity: decimal.NewFromInt(5)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemoveItem_QuitaLaLinea(t *testing.T) {
	f := newCartFixture(t)
	f.addJewel("p1", "AN-001", "100000", "0.19")

	resp, err := f.uc.AddItem("user-1", dto.AddCartItemRequest{ProductID: "p1", Quantity: decimal.NewFromInt(1)})
	require.NoError(t, err)

	resp, err = f.uc.RemoveItem("user-1", resp.Items[0].ID)
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
}

func TestCheckout_FacturaYVaciaElCarrito(t *testing.T) {
	f := newCartFixture(t)
	f.addJewel("p1", "AN-001", "100000", "0.19")

	manual := decimal.NewFromInt(90000)
	_, err := f.uc.AddItem("user-1", dto.AddCartItemRequest{ProductID: "p1", Quantity: decimal.NewFromInt(2), UnitPrice: &manual})
	require.NoError(t, err)

	inv, err := f.uc.Checkout(context.Background(), "user-1", dto.CheckoutRequest{
		CustomerID:    "cust-1",
		LocationID:    "loc-1",
		PaymentMethod: "10",
	})
	require.NoError(t, err)
	assert.Equal(t, "inv-1", inv.ID)

	// la factura recibe el precio del carrito, no el de catálogo
	require.NotNil(t, f.invoices.lastReq)
	require.Len(t, f.invoices.lastReq.Items, 1)
	assert.Equal(t, "90000", f.invoices.lastReq.Items[0].UnitPrice.String())
	assert.Equal(t, "loc-1", f.invoices.lastReq.LocationID)

	resp, err := f.uc.Get("user-1")
	require.NoError(t, err)
	assert.Empty(t, resp.Items, "el carrito queda vacío tras facturar")
}

func TestCheckout_CarritoVacio_Invalido(t *testing.T) {
	f := newCartFixture(t)

	_, err := f.uc.Checkout(context.Background(), "user-1", dto.CheckoutRequest{
		CustomerID: "cust-1", LocationID: "loc-1", PaymentMethod: "10",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCheckout_FacturaFalla_ConservaElCarrito(t *testing.T) {
	f := newCartFixture(t)
	f.addJewel("p1", "AN-001", "100000", "0.19")
	f.invoices.err = errors.New("sin stock")

	_, err := f.uc.AddItem("user-1", dto.AddCartItemRequest{ProductID: "p1", Quantity: decimal.NewFromInt(1)})
	require.NoError(t, err)

	_, err = f.uc.Checkout(context.Background(), "user-1", dto.CheckoutRequest{
		CustomerID: "cust-1", LocationID: "loc-1", PaymentMethod: "10",
	})
	require.Error(t, err)

	resp, err := f.uc.Get("user-1")
	require.NoError(t, err)
	assert.Len(t, resp.Items, 1, "el carrito no se toca si la factura falla")
}
