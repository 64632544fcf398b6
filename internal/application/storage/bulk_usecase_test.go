package storage_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/joyeria-pos/internal/application/dto"
	appstorage "github.com/jhoicas/joyeria-pos/internal/application/storage"
	"github.com/jhoicas/joyeria-pos/internal/domain"
	"github.com/jhoicas/joyeria-pos/internal/domain/entity"
	"github.com/jhoicas/joyeria-pos/internal/domain/repository"
	domstorage "github.com/jhoicas/joyeria-pos/internal/domain/storage"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del alta masiva de cajas y del movimiento entre estantes.
//
// El alta masiva completa códigos vacíos con la secuencia BOX_<max+1>, valida
// el lote completo contra lo persistido y contra sí mismo (case-insensitive) y
// rechaza todo el lote ante cualquier conflicto. El movimiento entre estantes
// controla capacidad del destino y, al cruzar de ubicación, la unicidad del
// código de la caja en la ubicación destino.
// ──────────────────────────────────────────────────────────────────────────────

type fakeShelfRepo struct {
	shelves map[string]*entity.StorageType
}

func (f *fakeShelfRepo) Create(st *entity.StorageType) error { f.shelves[st.ID] = st; return nil }
func (f *fakeShelfRepo) GetByID(id string) (*entity.StorageType, error) {
	return f.shelves[id], nil
}
func (f *fakeShelfRepo) GetByLocationAndCode(string, string) (*entity.StorageType, error) {
	return nil, nil
}
func (f *fakeShelfRepo) Update(st *entity.StorageType) error { f.shelves[st.ID] = st; return nil }
func (f *fakeShelfRepo) UpdatePosition(id string, pos int) error {
	f.shelves[id].Position = pos
	return nil
}
func (f *fakeShelfRepo) ListByLocation(string, int, int) ([]*entity.StorageType, error) {
	return nil, nil
}
func (f *fakeShelfRepo) CodeFields(locationID string) ([]string, []string, error) {
	var codes, names []string
	for _, st := range f.shelves {
		if st.LocationID == locationID {
			codes = append(codes, st.Code)
			names = append(names, st.Name)
		}
	}
	return codes, names, nil
}
func (f *fakeShelfRepo) CountByLocation(locationID string) (int, error) {
	n := 0
	for _, st := range f.shelves {
		if st.LocationID == locationID {
			n++
		}
	}
	return n, nil
}
func (f *fakeShelfRepo) Delete(id string) error { delete(f.shelves, id); return nil }

// fakeBoxRepo resuelve la ubicación de cada caja a través del estante padre,
// igual que lo hace el JOIN en la implementación real.
type fakeBoxRepo struct {
	boxes   map[string]*entity.StorageObject
	order   []string // ids en orden de creación
	shelves *fakeShelfRepo
	locked  []string // ubicaciones bloqueadas, para inspección
}

func (f *fakeBoxRepo) Create(o *entity.StorageObject) error {
	f.boxes[o.ID] = o
	f.order = append(f.order, o.ID)
	return nil
}
func (f *fakeBoxRepo) GetByID(id string) (*entity.StorageObject, error) { return f.boxes[id], nil }
func (f *fakeBoxRepo) Update(o *entity.StorageObject) error             { f.boxes[o.ID] = o; return nil }
func (f *fakeBoxRepo) UpdateParent(id, typeID string) error {
	f.boxes[id].StorageTypeID = typeID
	return nil
}
func (f *fakeBoxRepo) ListByStorageType(typeID string, _, _ int) ([]*entity.StorageObject, error) {
	var out []*entity.StorageObject
	for _, id := range f.order {
		if f.boxes[id].StorageTypeID == typeID {
			out = append(out, f.boxes[id])
		}
	}
	return out, nil
}
func (f *fakeBoxRepo) locationOf(boxID string) string {
	shelf := f.shelves.shelves[f.boxes[boxID].StorageTypeID]
	if shelf == nil {
		return ""
	}
	return shelf.LocationID
}
func (f *fakeBoxRepo) CodeFieldsByLocation(locationID string) ([]string, []string, error) {
	var codes, labels []string
	for _, id := range f.order {
		if f.locationOf(id) == locationID {
			codes = append(codes, f.boxes[id].Code)
			labels = append(labels, f.boxes[id].Label)
		}
	}
	return codes, labels, nil
}
func (f *fakeBoxRepo) FirstByLocation(locationID string) (*entity.StorageObject, error) {
	for _, id := range f.order {
		if f.locationOf(id) == locationID {
			return f.boxes[id], nil
		}
	}
	return nil, nil
}
func (f *fakeBoxRepo) CountByStorageType(typeID string) (int, error) {
	n := 0
	for _, o := range f.boxes {
		if o.StorageTypeID == typeID {
			n++
		}
	}
	return n, nil
}
func (f *fakeBoxRepo) LockCodeScope(locationID string) error {
	f.locked = append(f.locked, locationID)
	return nil
}
func (f *fakeBoxRepo) Delete(id string) error { delete(f.boxes, id); return nil }

type fakeStorageTx struct {
	boxRepo *fakeBoxRepo
}

func (f *fakeStorageTx) Run(_ context.Context, fn func(repository.StorageObjectRepository) error) error {
	return fn(f.boxRepo)
}

type fakeContentRepo struct {
	counts map[string]int
}

func (f *fakeContentRepo) Create(*entity.ProductLocation) error { return nil }
func (f *fakeContentRepo) GetByID(string) (*entity.ProductLocation, error) {
	return nil, nil
}
func (f *fakeContentRepo) GetForUpdate(string) (*entity.ProductLocation, error) { return nil, nil }
func (f *fakeContentRepo) GetByObjectAndProduct(string, string, string) (*entity.ProductLocation, error) {
	return nil, nil
}
func (f *fakeContentRepo) GetByObjectAndProductForUpdate(string, string, string) (*entity.ProductLocation, error) {
	return nil, nil
}
func (f *fakeContentRepo) UpdateQuantity(string, decimal.Decimal) error { return nil }
func (f *fakeContentRepo) ListByStorageObject(string, int, int) ([]*entity.ProductLocation, error) {
	return nil, nil
}
func (f *fakeContentRepo) ListByProduct(string, string) ([]*entity.ProductLocation, error) {
	return nil, nil
}
func (f *fakeContentRepo) TotalQuantity(string, string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}
func (f *fakeContentRepo) ListByLocationAndProductForUpdate(string, string, string) ([]*entity.ProductLocation, error) {
	return nil, nil
}
func (f *fakeContentRepo) CountByStorageObject(boxID string) (int, error) {
	return f.counts[boxID], nil
}
func (f *fakeContentRepo) Delete(string) error { return nil }

// ── fixture ──────────────────────────────────────────────────────────────────

type boxFixture struct {
	uc      *appstorage.StorageObjectUseCase
	shelves *fakeShelfRepo
	boxes   *fakeBoxRepo
}

func newBoxFixture(t *testing.T) *boxFixture {
	t.Helper()

	shelves := &fakeShelfRepo{shelves: map[string]*entity.StorageType{}}
	boxes := &fakeBoxRepo{boxes: map[string]*entity.StorageObject{}, shelves: shelves}
	uc := appstorage.NewStorageObjectUseCase(
		shelves,
		boxes,
		&fakeContentRepo{counts: map[string]int{}},
		&fakeStorageTx{boxRepo: boxes},
	)
	return &boxFixture{uc: uc, shelves: shelves, boxes: boxes}
}

func (f *boxFixture) addShelf(id, locationID string, capacity int) *entity.StorageType {
	st := &entity.StorageType{ID: id, LocationID: locationID, Code: "SHELF_" + id, Name: "Estante " + id, Capacity: capacity}
	f.shelves.shelves[id] = st
	return st
}

func (f *boxFixture) addBox(id, shelfID, code, label string) *entity.StorageObject {
	obj := &entity.StorageObject{ID: id, StorageTypeID: shelfID, Code: code, Label: label, CreatedAt: time.Now()}
	f.boxes.boxes[id] = obj
	f.boxes.order = append(f.boxes.order, id)
	return obj
}

// ── alta masiva ──────────────────────────────────────────────────────────────

func TestBulkCreate_GeneraCodigosConsecutivos(t *testing.T) {
	f := newBoxFixture(t)
	f.addShelf("shelf-1", "loc-1", 0)
	// el máximo sale tanto del código BOX_2 como de la etiqueta "Box 7"
	f.addBox("b1", "shelf-1", "BOX_2", "")
	f.addBox("b2", "shelf-1", "CAJA-VIEJA", "Box 7")

	created, err := f.uc.BulkCreate(context.Background(), "shelf-1", dto.BulkCreateStorageObjectsRequest{
		Items: []dto.CreateStorageObjectRequest{
			{Label: "Argollas"},
			{Label: "Dijes"},
		},
	})
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, "BOX_8", created[0].Code)
	assert.Equal(t, "BOX_9", created[1].Code)
	assert.Equal(t, "Argollas", created[0].Label)
}

func TestBulkCreate_ExplicitosYGeneradosNoChocan(t *testing.T) {
	f := newBoxFixture(t)
	f.addShelf("shelf-1", "loc-1", 0)
	f.addBox("b1", "shelf-1", "BOX_3", "")

	created, err := f.uc.BulkCreate(context.Background(), "shelf-1", dto.BulkCreateStorageObjectsRequest{
		Items: []dto.CreateStorageObjectRequest{
			{Code: "BOX_10"},
			{}, // generado: debe saltar por encima del 10 explícito
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "BOX_10", created[0].Code)
	assert.Equal(t, "BOX_11", created[1].Code)
}

func TestBulkCreate_ColisionConExistente_RechazaLote(t *testing.T) {
	f := newBoxFixture(t)
	f.addShelf("shelf-1", "loc-1", 0)
	f.addBox("b1", "shelf-1", "BOX_2", "")

	_, err := f.uc.BulkCreate(context.Background(), "shelf-1", dto.BulkCreateStorageObjectsRequest{
		Items: []dto.CreateStorageObjectRequest{
			{Code: "box_2"}, // misma caja en otra capitalización
			{Label: "Nueva"},
		},
	})

	var batchErr *appstorage.BatchValidationError
	require.True(t, errors.As(err, &batchErr))
	require.Len(t, batchErr.Entries, 1)
	assert.Equal(t, 0, batchErr.Entries[0].Index)
	assert.Equal(t, domstorage.ReasonExists, batchErr.Entries[0].Reason)

	assert.Len(t, f.boxes.order, 1, "no se crea ninguna caja del lote")
}

func TestBulkCreate_DuplicadoDentroDelLote_RechazaLote(t *testing.T) {
	f := newBoxFixture(t)
	f.addShelf("shelf-1", "loc-1", 0)

	_, err := f.uc.BulkCreate(context.Background(), "shelf-1", dto.BulkCreateStorageObjectsRequest{
		Items: []dto.CreateStorageObjectRequest{
			{Code: "BOX_5"},
			{Code: "Box 5"}, // mismo código en el patrón con espacio
		},
	})

	var batchErr *appstorage.BatchValidationError
	require.True(t, errors.As(err, &batchErr))
	require.Len(t, batchErr.Entries, 1)
	assert.Equal(t, 1, batchErr.Entries[0].Index)
	assert.Equal(t, domstorage.ReasonInBatch, batchErr.Entries[0].Reason)
}

func TestBulkCreate_CodigosUnicosPorUbicacionNoPorEstante(t *testing.T) {
	f := newBoxFixture(t)
	f.addShelf("shelf-1", "loc-1", 0)
	f.addShelf("shelf-2", "loc-1", 0)
	f.addBox("b1", "shelf-1", "BOX_4", "")

	// BOX_4 vive en otro estante de la misma ubicación: sigue chocando.
	_, err := f.uc.BulkCreate(context.Background(), "shelf-2", dto.BulkCreateStorageObjectsRequest{
		Items: []dto.CreateStorageObjectRequest{{Code: "BOX_4"}},
	})
	var batchErr *appstorage.BatchValidationError
	require.True(t, errors.As(err, &batchErr))
}

func TestBulkCreate_TomaElLockDeLaUbicacion(t *testing.T) {
	f := newBoxFixture(t)
	f.addShelf("shelf-1", "loc-9", 0)

	_, err := f.uc.BulkCreate(context.Background(), "shelf-1", dto.BulkCreateStorageObjectsRequest{
		Items: []dto.CreateStorageObjectRequest{{Label: "Topos"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"loc-9"}, f.boxes.locked)
}

func TestBulkCreate_CapacidadDelEstante(t *testing.T) {
	f := newBoxFixture(t)
	f.addShelf("shelf-1", "loc-1", 2)
	f.addBox("b1", "shelf-1", "BOX_1", "")

	_, err := f.uc.BulkCreate(context.Background(), "shelf-1", dto.BulkCreateStorageObjectsRequest{
		Items: []dto.CreateStorageObjectRequest{{}, {}},
	})
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
}

func TestBulkCreate_EstanteInexistente(t *testing.T) {
	f := newBoxFixture(t)

	_, err := f.uc.BulkCreate(context.Background(), "no-existe", dto.BulkCreateStorageObjectsRequest{
		Items: []dto.CreateStorageObjectRequest{{}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_UnitarioConColision_ErrDuplicateCode(t *testing.T) {
	f := newBoxFixture(t)
	f.addShelf("shelf-1", "loc-1", 0)
	f.addBox("b1", "shelf-1", "BOX_2", "")

	_, err := f.uc.Create(context.Background(), "shelf-1", dto.CreateStorageObjectRequest{Code: "BOX_2"})
	assert.ErrorIs(t, err, domain.ErrDuplicateCode)
}

// ── sugerencias ──────────────────────────────────────────────────────────────

func TestSuggestCodes_ConsideraCodigosYEtiquetas(t *testing.T) {
	f := newBoxFixture(t)
	f.addShelf("shelf-1", "loc-1", 0)
	f.addBox("b1", "shelf-1", "BOX_2", "Box 12")

	resp, err := f.uc.SuggestCodes("shelf-1", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"BOX_13", "BOX_14", "BOX_15"}, resp.Codes)
}

func TestSuggestCodes_CountFueraDeRango(t *testing.T) {
	f := newBoxFixture(t)
	f.addShelf("shelf-1", "loc-1", 0)

	resp, err := f.uc.SuggestCodes("shelf-1", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"BOX_1"}, resp.Codes)
}

// ── movimiento entre estantes ────────────────────────────────────────────────

func TestMove_MismaUbicacion(t *testing.T) {
	f := newBoxFixture(t)
	f.addShelf("shelf-1", "loc-1", 0)
	f.addShelf("shelf-2", "loc-1", 0)
	f.addBox("b1", "shelf-1", "BOX_1", "")

	resp, err := f.uc.Move(context.Background(), "b1", dto.MoveStorageObjectRequest{ToStorageTypeID: "shelf-2"})
	require.NoError(t, err)
	assert.Equal(t, "shelf-2", resp.StorageTypeID)
	assert.Equal(t, "shelf-2", f.boxes.boxes["b1"].StorageTypeID)
	assert.Empty(t, f.boxes.locked, "dentro de la misma ubicación no hay re-chequeo de código")
}

func TestMove_CruceDeUbicacionConColision(t *testing.T) {
	f := newBoxFixture(t)
	f.addShelf("shelf-1", "loc-1", 0)
	f.addShelf("shelf-2", "loc-2", 0)
	f.addBox("b1", "shelf-1", "BOX_1", "")
	f.addBox("b2", "shelf-2", "box_1", "")

	_, err := f.uc.Move(context.Background(), "b1", dto.MoveStorageObjectRequest{ToStorageTypeID: "shelf-2"})
	assert.ErrorIs(t, err, domain.ErrDuplicateCode)
	assert.Equal(t, "shelf-1", f.boxes.boxes["b1"].StorageTypeID, "la caja no se mueve")
}

func TestMove_DestinoLleno(t *testing.T) {
	f := newBoxFixture(t)
	f.addShelf("shelf-1", "loc-1", 0)
	f.addShelf("shelf-2", "loc-1", 1)
	f.addBox("b1", "shelf-1", "BOX_1", "")
	f.addBox("b2", "shelf-2", "BOX_2", "")

	_, err := f.uc.Move(context.Background(), "b1", dto.MoveStorageObjectRequest{ToStorageTypeID: "shelf-2"})
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
}

func TestMove_MismoEstanteEsNoOp(t *testing.T) {
	f := newBoxFixture(t)
	f.addShelf("shelf-1", "loc-1", 0)
	f.addBox("b1", "shelf-1", "BOX_1", "")

	resp, err := f.uc.Move(context.Background(), "b1", dto.MoveStorageObjectRequest{ToStorageTypeID: "shelf-1"})
	require.NoError(t, err)
	assert.Equal(t, "shelf-1", resp.StorageTypeID)
}
