package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/jhoicas/joyeria-pos/internal/application/inventory"
	"github.com/jhoicas/joyeria-pos/internal/domain"
	"github.com/jhoicas/joyeria-pos/internal/domain/entity"
	"github.com/jhoicas/joyeria-pos/internal/domain/repository"
	"github.com/jhoicas/joyeria-pos/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del motor de movimientos con repositorios en memoria.
//
// Cubren las cuatro operaciones (IN, OUT, ADJUSTMENT, TRANSFER), el recálculo
// de costo promedio ponderado, el control de capacidad por caja y el descuento
// FIFO que usa facturación cuando el vendedor no fija caja.
// ──────────────────────────────────────────────────────────────────────────────

// ── fakes ────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (f *fakeProductRepo) Create(p *entity.Product) error { f.products[p.ID] = p; return nil }
func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return f.products[id], nil
}
func (f *fakeProductRepo) GetBySKU(string) (*entity.Product, error) { return nil, nil }
func (f *fakeProductRepo) Update(p *entity.Product) error           { f.products[p.ID] = p; return nil }
func (f *fakeProductRepo) UpdateCost(id string, cost decimal.Decimal) error {
	f.products[id].Cost = cost
	return nil
}
func (f *fakeProductRepo) List(int, int) ([]*entity.Product, error)           { return nil, nil }
func (f *fakeProductRepo) Search(string, int, int) ([]*entity.Product, error) { return nil, nil }
func (f *fakeProductRepo) Delete(string) error                                { return nil }

type fakeMaterialRepo struct {
	materials map[string]*entity.Material
}

func (f *fakeMaterialRepo) Create(m *entity.Material) error { f.materials[m.ID] = m; return nil }
func (f *fakeMaterialRepo) GetByID(id string) (*entity.Material, error) {
	return f.materials[id], nil
}
func (f *fakeMaterialRepo) GetByCode(string) (*entity.Material, error) { return nil, nil }
func (f *fakeMaterialRepo) Update(m *entity.Material) error            { f.materials[m.ID] = m; return nil }
func (f *fakeMaterialRepo) List(int, int) ([]*entity.Material, error)  { return nil, nil }
func (f *fakeMaterialRepo) Delete(string) error                        { return nil }

type fakeObjectRepo struct {
	boxes map[string]*entity.StorageObject
}

func (f *fakeObjectRepo) Create(o *entity.StorageObject) error { f.boxes[o.ID] = o; return nil }
func (f *fakeObjectRepo) GetByID(id string) (*entity.StorageObject, error) {
	return f.boxes[id], nil
}
func (f *fakeObjectRepo) Update(o *entity.StorageObject) error { f.boxes[o.ID] = o; return nil }
func (f *fakeObjectRepo) UpdateParent(id, typeID string) error {
	f.boxes[id].StorageTypeID = typeID
	return nil
}
func (f *fakeObjectRepo) ListByStorageType(string, int, int) ([]*entity.StorageObject, error) {
	return nil, nil
}
func (f *fakeObjectRepo) CodeFieldsByLocation(string) ([]string, []string, error) {
	return nil, nil, nil
}
func (f *fakeObjectRepo) FirstByLocation(string) (*entity.StorageObject, error) { return nil, nil }
func (f *fakeObjectRepo) CountByStorageType(string) (int, error)                { return 0, nil }
func (f *fakeObjectRepo) LockCodeScope(string) error                            { return nil }
func (f *fakeObjectRepo) Delete(string) error                                   { return nil }

// fakePLRepo guarda asociaciones producto-caja. boxLocation mapea caja a
// ubicación para simular el recorrido FIFO por orden de inserción.
type fakePLRepo struct {
	rows        []*entity.ProductLocation
	boxLocation map[string]string
}

func (f *fakePLRepo) Create(pl *entity.ProductLocation) error {
	f.rows = append(f.rows, pl)
	return nil
}
func (f *fakePLRepo) GetByID(id string) (*entity.ProductLocation, error) {
	for _, r := range f.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}
func (f *fakePLRepo) GetForUpdate(id string) (*entity.ProductLocation, error) {
	return f.GetByID(id)
}
func (f *fakePLRepo) GetByObjectAndProduct(boxID, pt, pid string) (*entity.ProductLocation, error) {
	for _, r := range f.rows {
		if r.StorageObjectID == boxID && r.ProductType == pt && r.ProductID == pid {
			return r, nil
		}
	}
	return nil, nil
}
func (f *fakePLRepo) GetByObjectAndProductForUpdate(boxID, pt, pid string) (*entity.ProductLocation, error) {
	return f.GetByObjectAndProduct(boxID, pt, pid)
}
func (f *fakePLRepo) UpdateQuantity(id string, q decimal.Decimal) error {
	for _, r := range f.rows {
		if r.ID == id {
			r.Quantity = q
			return nil
		}
	}
	return domain.ErrNotFound
}
func (f *fakePLRepo) ListByStorageObject(boxID string, _, _ int) ([]*entity.ProductLocation, error) {
	var out []*entity.ProductLocation
	for _, r := range f.rows {
		if r.StorageObjectID == boxID {
			out = append(out, r)
		}
	}
	return out, nil
}
func (f *fakePLRepo) ListByProduct(pt, pid string) ([]*entity.ProductLocation, error) {
	var out []*entity.ProductLocation
	for _, r := range f.rows {
		if r.ProductType == pt && r.ProductID == pid {
			out = append(out, r)
		}
	}
	return out, nil
}
func (f *fakePLRepo) TotalQuantity(pt, pid string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, r := range f.rows {
		if r.ProductType == pt && r.ProductID == pid {
			total = total.Add(r.Quantity)
		}
	}
	return total, nil
}
func (f *fakePLRepo) ListByLocationAndProductForUpdate(locationID, pt, pid string) ([]*entity.ProductLocation, error) {
	var out []*entity.ProductLocation
	for _, r := range f.rows {
		if f.boxLocation[r.StorageObjectID] == locationID && r.ProductType == pt && r.ProductID == pid {
			out = append(out, r)
		}
	}
	return out, nil
}
func (f *fakePLRepo) CountByStorageObject(boxID string) (int, error) {
	n := 0
	for _, r := range f.rows {
		if r.StorageObjectID == boxID {
			n++
		}
	}
	return n, nil
}
func (f *fakePLRepo) Delete(id string) error {
	for i, r := range f.rows {
		if r.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeMovementRepo struct {
	movements []*entity.StockMovement
}

func (f *fakeMovementRepo) Create(m *entity.StockMovement) error {
	f.movements = append(f.movements, m)
	return nil
}
func (f *fakeMovementRepo) GetByID(string) (*entity.StockMovement, error) { return nil, nil }
func (f *fakeMovementRepo) ListByStorageObject(string, *time.Time, *time.Time, int, int) ([]*entity.StockMovement, error) {
	return nil, nil
}
func (f *fakeMovementRepo) ListByProduct(string, string, *time.Time, *time.Time, int, int) ([]*entity.StockMovement, error) {
	return nil, nil
}

type fakeTxRunner struct {
	movRepo     *fakeMovementRepo
	plRepo      *fakePLRepo
	productRepo *fakeProductRepo
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(
	repository.StockMovementRepository,
	repository.ProductLocationRepository,
	repository.ProductRepository,
) error) error {
	return fn(f.movRepo, f.plRepo, f.productRepo)
}

// ── fixture ──────────────────────────────────────────────────────────────────

type engineFixture struct {
	uc        *appinv.RegisterMovementUseCase
	products  *fakeProductRepo
	materials *fakeMaterialRepo
	boxes     *fakeObjectRepo
	pls       *fakePLRepo
	movs      *fakeMovementRepo
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()

	products := &fakeProductRepo{products: map[string]*entity.Product{}}
	materials := &fakeMaterialRepo{materials: map[string]*entity.Material{}}
	boxes := &fakeObjectRepo{boxes: map[string]*entity.StorageObject{}}
	pls := &fakePLRepo{boxLocation: map[string]string{}}
	movs := &fakeMovementRepo{}
	tx := &fakeTxRunner{movRepo: movs, plRepo: pls, productRepo: products}
	log := logger.New(logger.Config{Env: "production", Level: "error"})

	return &engineFixture{
		uc:        appinv.NewRegisterMovementUseCase(products, materials, boxes, tx, log),
		products:  products,
		materials: materials,
		boxes:     boxes,
		pls:       pls,
		movs:      movs,
	}
}

func (f *engineFixture) addBox(id, locationID string, capacity int) *entity.StorageObject {
	box := &entity.StorageObject{ID: id, StorageTypeID: "shelf-1", Code: id, Capacity: capacity}
	f.boxes.boxes[id] = box
	f.pls.boxLocation[id] = locationID
	return box
}

func (f *engineFixture) addJewel(id string, cost string) *entity.Product {
	p := &entity.Product{ID: id, SKU: "SKU-" + id, Name: "Anillo " + id, Cost: d(cost)}
	f.products.products[id] = p
	return p
}

func (f *engineFixture) addStock(boxID, productID, qty string) *entity.ProductLocation {
	pl := &entity.ProductLocation{
		ID:              "pl-" + boxID + "-" + productID,
		StorageObjectID: boxID,
		ProductType:     entity.ProductRefJewel,
		ProductID:       productID,
		Quantity:        d(qty),
	}
	f.pls.rows = append(f.pls.rows, pl)
	return pl
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ── IN ───────────────────────────────────────────────────────────────────────

func TestRegisterMovement_EntradaRecalculaCostoPromedio(t *testing.T) {
	f := newEngineFixture(t)
	f.addBox("box-1", "loc-1", 0)
	f.addJewel("jewel-1", "100")
	f.addStock("box-1", "jewel-1", "10")

	unitCost := d("160")
	mov, err := f.uc.RegisterMovement(context.Background(), "user-1", appinv.MovementInputDTO{
		ProductType:     entity.ProductRefJewel,
		ProductID:       "jewel-1",
		StorageObjectID: "box-1",
		Type:            entity.MovementTypeIN,
		Quantity:        d("5"),
		UnitCost:        &unitCost,
	})
	require.NoError(t, err)

	// (10*100 + 5*160) / 15 = 120
	assert.True(t, f.products.products["jewel-1"].Cost.Equal(d("120")),
		"costo esperado 120, quedó %s", f.products.products["jewel-1"].Cost)

	pl, _ := f.pls.GetByObjectAndProduct("box-1", entity.ProductRefJewel, "jewel-1")
	assert.True(t, pl.Quantity.Equal(d("15")))

	require.Len(t, f.movs.movements, 1)
	assert.Equal(t, entity.MovementTypeIN, mov.Type)
	assert.True(t, mov.Quantity.Equal(d("5")))
	assert.True(t, mov.UnitCost.Equal(d("160")))
	assert.True(t, mov.TotalCost.Equal(d("800")))
}

func TestRegisterMovement_EntradaSinCostoUsaCostoMaestro(t *testing.T) {
	f := newEngineFixture(t)
	f.addBox("box-1", "loc-1", 0)
	f.addJewel("jewel-1", "250")

	mov, err := f.uc.RegisterMovement(context.Background(), "user-1", appinv.MovementInputDTO{
		ProductType:     entity.ProductRefJewel,
		ProductID:       "jewel-1",
		StorageObjectID: "box-1",
		Type:            entity.MovementTypeIN,
		Quantity:        d("3"),
	})
	require.NoError(t, err)

	// Reingreso al costo vigente: el promedio no cambia.
	assert.True(t, f.products.products["jewel-1"].Cost.Equal(d("250")))
	assert.True(t, mov.UnitCost.Equal(d("250")))
}

func TestRegisterMovement_EntradaDeMaterialNoTocaCostoMaestro(t *testing.T) {
	f := newEngineFixture(t)
	f.addBox("box-1", "loc-1", 0)
	f.materials.materials["mat-1"] = &entity.Material{ID: "mat-1", Code: "ORO18K", Name: "Oro 18K", Cost: d("90")}

	unitCost := d("150")
	mov, err := f.uc.RegisterMovement(context.Background(), "user-1", appinv.MovementInputDTO{
		ProductType:     entity.ProductRefMaterial,
		ProductID:       "mat-1",
		StorageObjectID: "box-1",
		Type:            entity.MovementTypeIN,
		Quantity:        d("20"),
		UnitCost:        &unitCost,
	})
	require.NoError(t, err)

	// El costo maestro del material se administra por CRUD, no por movimientos.
	assert.True(t, f.materials.materials["mat-1"].Cost.Equal(d("90")))
	assert.True(t, mov.UnitCost.Equal(d("150")))
}

func TestRegisterMovement_CapacidadDeCajaExcedida(t *testing.T) {
	f := newEngineFixture(t)
	f.addBox("box-1", "loc-1", 1)
	f.addJewel("jewel-1", "100")
	f.addJewel("jewel-2", "200")
	f.addStock("box-1", "jewel-1", "4")

	_, err := f.uc.RegisterMovement(context.Background(), "user-1", appinv.MovementInputDTO{
		ProductType:     entity.ProductRefJewel,
		ProductID:       "jewel-2",
		StorageObjectID: "box-1",
		Type:            entity.MovementTypeIN,
		Quantity:        d("1"),
	})
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
	assert.Empty(t, f.movs.movements)
}

// ── OUT ──────────────────────────────────────────────────────────────────────

func TestRegisterMovement_SalidaDescuentaYDejaFilaNegativa(t *testing.T) {
	f := newEngineFixture(t)
	f.addBox("box-1", "loc-1", 0)
	f.addJewel("jewel-1", "100")
	f.addStock("box-1", "jewel-1", "10")

	mov, err := f.uc.RegisterMovement(context.Background(), "user-1", appinv.MovementInputDTO{
		ProductType:     entity.ProductRefJewel,
		ProductID:       "jewel-1",
		StorageObjectID: "box-1",
		Type:            entity.MovementTypeOUT,
		Quantity:        d("4"),
	})
	require.NoError(t, err)

	pl, _ := f.pls.GetByObjectAndProduct("box-1", entity.ProductRefJewel, "jewel-1")
	assert.True(t, pl.Quantity.Equal(d("6")))
	assert.True(t, mov.Quantity.Equal(d("-4")))
	assert.True(t, mov.UnitCost.Equal(d("100")))
	assert.True(t, mov.TotalCost.Equal(d("400")))
}

func TestRegisterMovement_SalidaInsuficiente_Error(t *testing.T) {
	f := newEngineFixture(t)
	f.addBox("box-1", "loc-1", 0)
	f.addJewel("jewel-1", "100")
	f.addStock("box-1", "jewel-1", "2")

	_, err := f.uc.RegisterMovement(context.Background(), "user-1", appinv.MovementInputDTO{
		ProductType:     entity.ProductRefJewel,
		ProductID:       "jewel-1",
		StorageObjectID: "box-1",
		Type:            entity.MovementTypeOUT,
		Quantity:        d("5"),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	pl, _ := f.pls.GetByObjectAndProduct("box-1", entity.ProductRefJewel, "jewel-1")
	assert.True(t, pl.Quantity.Equal(d("2")), "la cantidad no debe cambiar")
	assert.Empty(t, f.movs.movements)
}

// ── ADJUSTMENT ───────────────────────────────────────────────────────────────

func TestRegisterMovement_AjusteFijaConteoYRegistraDelta(t *testing.T) {
	f := newEngineFixture(t)
	f.addBox("box-1", "loc-1", 0)
	f.addJewel("jewel-1", "100")
	f.addStock("box-1", "jewel-1", "10")

	mov, err := f.uc.RegisterMovement(context.Background(), "user-1", appinv.MovementInputDTO{
		ProductType:     entity.ProductRefJewel,
		ProductID:       "jewel-1",
		StorageObjectID: "box-1",
		Type:            entity.MovementTypeADJUSTMENT,
		Quantity:        d("7"),
	})
	require.NoError(t, err)

	pl, _ := f.pls.GetByObjectAndProduct("box-1", entity.ProductRefJewel, "jewel-1")
	assert.True(t, pl.Quantity.Equal(d("7")))
	assert.True(t, mov.Quantity.Equal(d("-3")), "el delta del conteo 10 a 7 es -3")
}

func TestRegisterMovement_AjusteACeroEliminaAsociacion(t *testing.T) {
	f := newEngineFixture(t)
	f.addBox("box-1", "loc-1", 0)
	f.addJewel("jewel-1", "100")
	f.addStock("box-1", "jewel-1", "4")

	mov, err := f.uc.RegisterMovement(context.Background(), "user-1", appinv.MovementInputDTO{
		ProductType:     entity.ProductRefJewel,
		ProductID:       "jewel-1",
		StorageObjectID: "box-1",
		Type:            entity.MovementTypeADJUSTMENT,
		Quantity:        d("0"),
	})
	require.NoError(t, err)

	pl, _ := f.pls.GetByObjectAndProduct("box-1", entity.ProductRefJewel, "jewel-1")
	assert.Nil(t, pl)
	assert.True(t, mov.Quantity.Equal(d("-4")))
}

func TestRegisterMovement_AjusteSinCambio_Invalido(t *testing.T) {
	f := newEngineFixture(t)
	f.addBox("box-1", "loc-1", 0)
	f.addJewel("jewel-1", "100")
	f.addStock("box-1", "jewel-1", "10")

	_, err := f.uc.RegisterMovement(context.Background(), "user-1", appinv.MovementInputDTO{
		ProductType:     entity.ProductRefJewel,
		ProductID:       "jewel-1",
		StorageObjectID: "box-1",
		Type:            entity.MovementTypeADJUSTMENT,
		Quantity:        d("10"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── TRANSFER ─────────────────────────────────────────────────────────────────

func TestRegisterMovement_TrasladoGeneraDosFilasMismaTransaccion(t *testing.T) {
	f := newEngineFixture(t)
	f.addBox("box-a", "loc-1", 0)
	f.addBox("box-b", "loc-1", 0)
	f.addJewel("jewel-1", "100")
	f.addStock("box-a", "jewel-1", "5")

	mov, err := f.uc.RegisterMovement(context.Background(), "user-1", appinv.MovementInputDTO{
		ProductType:         entity.ProductRefJewel,
		ProductID:           "jewel-1",
		FromStorageObjectID: "box-a",
		ToStorageObjectID:   "box-b",
		Type:                entity.MovementTypeTRANSFER,
		Quantity:            d("3"),
	})
	require.NoError(t, err)

	src, _ := f.pls.GetByObjectAndProduct("box-a", entity.ProductRefJewel, "jewel-1")
	dst, _ := f.pls.GetByObjectAndProduct("box-b", entity.ProductRefJewel, "jewel-1")
	assert.True(t, src.Quantity.Equal(d("2")))
	assert.True(t, dst.Quantity.Equal(d("3")))

	require.Len(t, f.movs.movements, 2)
	out, in := f.movs.movements[0], f.movs.movements[1]
	assert.Equal(t, out.TransactionID, in.TransactionID, "ambas filas comparten transacción")
	assert.True(t, out.Quantity.Equal(d("-3")))
	assert.True(t, in.Quantity.Equal(d("3")))
	assert.Equal(t, "box-b", mov.StorageObjectID, "devuelve la fila de destino")
}

func TestRegisterMovement_TrasladoMismaCaja_Invalido(t *testing.T) {
	f := newEngineFixture(t)
	f.addBox("box-a", "loc-1", 0)
	f.addJewel("jewel-1", "100")

	_, err := f.uc.RegisterMovement(context.Background(), "user-1", appinv.MovementInputDTO{
		ProductType:         entity.ProductRefJewel,
		ProductID:           "jewel-1",
		FromStorageObjectID: "box-a",
		ToStorageObjectID:   "box-a",
		Type:                entity.MovementTypeTRANSFER,
		Quantity:            d("1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterMovement_TrasladoACajaLlena_NoDejaMovimientos(t *testing.T) {
	f := newEngineFixture(t)
	f.addBox("box-a", "loc-1", 0)
	f.addBox("box-b", "loc-1", 1)
	f.addJewel("jewel-1", "100")
	f.addJewel("jewel-2", "50")
	f.addStock("box-a", "jewel-1", "5")
	f.addStock("box-b", "jewel-2", "1")

	_, err := f.uc.RegisterMovement(context.Background(), "user-1", appinv.MovementInputDTO{
		ProductType:         entity.ProductRefJewel,
		ProductID:           "jewel-1",
		FromStorageObjectID: "box-a",
		ToStorageObjectID:   "box-b",
		Type:                entity.MovementTypeTRANSFER,
		Quantity:            d("2"),
	})
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
	assert.Empty(t, f.movs.movements)
}

// ── salida FIFO de facturación ───────────────────────────────────────────────

func TestRegisterOUTInTx_FIFORecorreCajasEnOrden(t *testing.T) {
	f := newEngineFixture(t)
	f.addBox("box-a", "loc-1", 0)
	f.addBox("box-b", "loc-1", 0)
	product := f.addJewel("jewel-1", "100")
	f.addStock("box-a", "jewel-1", "2")
	f.addStock("box-b", "jewel-1", "5")

	err := f.uc.RegisterOUTInTx(f.movs, f.pls, product, "loc-1", "", "user-1", "FAC POS-1", d("4"), time.Now(), "inv-1")
	require.NoError(t, err)

	plA, _ := f.pls.GetByObjectAndProduct("box-a", entity.ProductRefJewel, "jewel-1")
	plB, _ := f.pls.GetByObjectAndProduct("box-b", entity.ProductRefJewel, "jewel-1")
	assert.Nil(t, plA, "la primera caja queda vacía y la asociación se elimina")
	assert.True(t, plB.Quantity.Equal(d("3")))

	require.Len(t, f.movs.movements, 2)
	for _, mov := range f.movs.movements {
		assert.Equal(t, "inv-1", mov.TransactionID)
		assert.Equal(t, entity.MovementTypeOUT, mov.Type)
	}
	assert.True(t, f.movs.movements[0].Quantity.Equal(d("-2")))
	assert.True(t, f.movs.movements[1].Quantity.Equal(d("-2")))
}

func TestRegisterOUTInTx_CajaFijadaPorVendedor(t *testing.T) {
	f := newEngineFixture(t)
	f.addBox("box-a", "loc-1", 0)
	f.addBox("box-b", "loc-1", 0)
	product := f.addJewel("jewel-1", "100")
	f.addStock("box-a", "jewel-1", "2")
	f.addStock("box-b", "jewel-1", "5")

	err := f.uc.RegisterOUTInTx(f.movs, f.pls, product, "loc-1", "box-b", "user-1", "FAC POS-2", d("4"), time.Now(), "inv-2")
	require.NoError(t, err)

	plA, _ := f.pls.GetByObjectAndProduct("box-a", entity.ProductRefJewel, "jewel-1")
	plB, _ := f.pls.GetByObjectAndProduct("box-b", entity.ProductRefJewel, "jewel-1")
	assert.True(t, plA.Quantity.Equal(d("2")), "la caja no fijada no se toca")
	assert.True(t, plB.Quantity.Equal(d("1")))
}

func TestRegisterOUTInTx_TotalInsuficienteEnUbicacion(t *testing.T) {
	f := newEngineFixture(t)
	f.addBox("box-a", "loc-1", 0)
	product := f.addJewel("jewel-1", "100")
	f.addStock("box-a", "jewel-1", "2")

	err := f.uc.RegisterOUTInTx(f.movs, f.pls, product, "loc-1", "", "user-1", "FAC POS-3", d("9"), time.Now(), "inv-3")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

// ── validaciones ─────────────────────────────────────────────────────────────

func TestRegisterMovement_TipoProductoInvalido(t *testing.T) {
	f := newEngineFixture(t)

	_, err := f.uc.RegisterMovement(context.Background(), "user-1", appinv.MovementInputDTO{
		ProductType:     "gema",
		ProductID:       "x",
		StorageObjectID: "box-1",
		Type:            entity.MovementTypeIN,
		Quantity:        d("1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterMovement_CajaInexistente(t *testing.T) {
	f := newEngineFixture(t)
	f.addJewel("jewel-1", "100")

	_, err := f.uc.RegisterMovement(context.Background(), "user-1", appinv.MovementInputDTO{
		ProductType:     entity.ProductRefJewel,
		ProductID:       "jewel-1",
		StorageObjectID: "no-existe",
		Type:            entity.MovementTypeIN,
		Quantity:        d("1"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
