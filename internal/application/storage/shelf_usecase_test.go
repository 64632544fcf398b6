package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/joyeria-pos/internal/application/dto"
	appstorage "github.com/jhoicas/joyeria-pos/internal/application/storage"
	"github.com/jhoicas/joyeria-pos/internal/domain"
	"github.com/jhoicas/joyeria-pos/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests de estantes: generación del código SHELF_<n> a partir de códigos y
// nombres existentes, y reordenamiento masivo atado a la ubicación.
// ──────────────────────────────────────────────────────────────────────────────

type fakeLocationRepo struct {
	locations map[string]bool
}

func (f *fakeLocationRepo) Create(*entity.Location) error { return nil }
func (f *fakeLocationRepo) GetByID(id string) (*entity.Location, error) {
	if !f.locations[id] {
		return nil, nil
	}
	return &entity.Location{ID: id, Status: "active"}, nil
}
func (f *fakeLocationRepo) GetByCode(string) (*entity.Location, error) { return nil, nil }
func (f *fakeLocationRepo) Update(*entity.Location) error              { return nil }
func (f *fakeLocationRepo) List(int, int) ([]*entity.Location, error)  { return nil, nil }
func (f *fakeLocationRepo) ListActive(string) ([]*entity.Location, error) {
	return nil, nil
}
func (f *fakeLocationRepo) Delete(string) error { return nil }

func newShelfFixture(t *testing.T) (*appstorage.StorageTypeUseCase, *boxFixture) {
	t.Helper()
	f := newBoxFixture(t)
	locs := &fakeLocationRepo{locations: map[string]bool{"loc-1": true}}
	uc := appstorage.NewStorageTypeUseCase(locs, f.shelves, f.boxes)
	return uc, f
}

func TestCreateShelf_GeneraCodigoDesdeNombres(t *testing.T) {
	uc, f := newShelfFixture(t)
	f.addShelf("s1", "loc-1", 0).Code = "SHELF_1"
	f.shelves.shelves["s1"].Name = "Shelf 4" // el nombre también alimenta la secuencia

	resp, err := uc.Create("loc-1", dto.CreateStorageTypeRequest{Name: "Vitrina nueva"})
	require.NoError(t, err)
	assert.Equal(t, "SHELF_5", resp.Code)
}

func TestCreateShelf_CodigoExplicitoDuplicado(t *testing.T) {
	uc, f := newShelfFixture(t)
	f.addShelf("s1", "loc-1", 0).Code = "SHELF_2"

	_, err := uc.Create("loc-1", dto.CreateStorageTypeRequest{Code: "shelf_2", Name: "Otra"})
	assert.ErrorIs(t, err, domain.ErrDuplicateCode)
}

func TestCreateShelf_UbicacionInexistente(t *testing.T) {
	uc, _ := newShelfFixture(t)

	_, err := uc.Create("no-existe", dto.CreateStorageTypeRequest{Name: "Vitrina"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdatePositions_IDAjenoRechazaTodo(t *testing.T) {
	uc, f := newShelfFixture(t)
	f.addShelf("s1", "loc-1", 0)
	f.addShelf("s2", "loc-2", 0) // de otra ubicación
	f.shelves.shelves["s1"].Position = 1

	err := uc.UpdatePositions("loc-1", dto.UpdatePositionsRequest{
		Positions: []dto.PositionUpdate{
			{ID: "s1", Position: 9},
			{ID: "s2", Position: 1},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 1, f.shelves.shelves["s1"].Position, "ninguna posición cambia")
}

func TestUpdatePositions_AplicaTodas(t *testing.T) {
	uc, f := newShelfFixture(t)
	f.addShelf("s1", "loc-1", 0)
	f.addShelf("s2", "loc-1", 0)

	err := uc.UpdatePositions("loc-1", dto.UpdatePositionsRequest{
		Positions: []dto.PositionUpdate{
			{ID: "s1", Position: 2},
			{ID: "s2", Position: 1},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, f.shelves.shelves["s1"].Position)
	assert.Equal(t, 1, f.shelves.shelves["s2"].Position)
}

func TestDeleteShelf_ConCajas_Conflict(t *testing.T) {
	uc, f := newShelfFixture(t)
	f.addShelf("s1", "loc-1", 0)
	f.addBox("b1", "s1", "BOX_1", "")

	err := uc.Delete("s1")
	assert.ErrorIs(t, err, domain.ErrConflict)
}
