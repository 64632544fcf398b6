package storage

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/joyeria-pos/internal/application/dto"
	"github.com/jhoicas/joyeria-pos/internal/domain"
	"github.com/jhoicas/joyeria-pos/internal/domain/entity"
	"github.com/jhoicas/joyeria-pos/internal/domain/repository"
	domstorage "github.com/jhoicas/joyeria-pos/internal/domain/storage"
)

// StorageTypeUseCase casos de uso para estantes: CRUD, generación de código
// SHELF_<n> y reordenamiento masivo de posiciones.
type StorageTypeUseCase struct {
	locationRepo repository.LocationRepository
	typeRepo     repository.StorageTypeRepository
	objectRepo   repository.StorageObjectRepository
}

// NewStorageTypeUseCase construye el caso de uso.
func NewStorageTypeUseCase(
	locationRepo repository.LocationRepository,
	typeRepo repository.StorageTypeRepository,
	objectRepo repository.StorageObjectRepository,
) *StorageTypeUseCase {
	return &StorageTypeUseCase{
		locationRepo: locationRepo,
		typeRepo:     typeRepo,
		objectRepo:   objectRepo,
	}
}

// Create crea un estante en la ubicación. Con código vacío el servidor genera
// el siguiente SHELF_<n> a partir de los códigos y nombres ya usados; con
// código explícito valida que no choque con los existentes (case-insensitive).
// El índice único en BD respalda la validación ante creaciones concurrentes.
func (uc *StorageTypeUseCase) Create(locationID string, in dto.CreateStorageTypeRequest) (*dto.StorageTypeResponse, error) {
	location, err := uc.locationRepo.GetByID(locationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}

	codes, names, err := uc.typeRepo.CodeFields(locationID)
	if err != nil {
		return nil, err
	}

	code := in.Code
	if code == "" {
		code = domstorage.NextCode(domstorage.PrefixShelf, append(codes, names...))
	} else if errs := domstorage.ValidateBatch([]string{code}, codes); len(errs) > 0 {
		return nil, domain.ErrDuplicateCode
	}

	now := time.Now()
	st := &entity.StorageType{
		ID:         uuid.New().String(),
		LocationID: locationID,
		Code:       code,
		Name:       in.Name,
		Capacity:   in.Capacity,
		Position:   in.Position,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.typeRepo.Create(st); err != nil {
		return nil, err
	}
	return toStorageTypeResponse(st), nil
}

// GetByID obtiene un estante por ID.
func (uc *StorageTypeUseCase) GetByID(id string) (*dto.StorageTypeResponse, error) {
	st, err := uc.typeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, nil
	}
	return toStorageTypeResponse(st), nil
}

// Update actualiza nombre, capacidad o posición. El código no se cambia.
func (uc *StorageTypeUseCase) Update(id string, in dto.UpdateStorageTypeRequest) (*dto.StorageTypeResponse, error) {
	st, err := uc.typeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, nil
	}
	if in.Name != nil {
		st.Name = *in.Name
	}
	if in.Capacity != nil {
		st.Capacity = *in.Capacity
	}
	if in.Position != nil {
		st.Position = *in.Position
	}
	st.UpdatedAt = time.Now()
	if err := uc.typeRepo.Update(st); err != nil {
		return nil, err
	}
	return toStorageTypeResponse(st), nil
}

// UpdatePositions aplica el reordenamiento masivo de estantes de una ubicación.
// Cada par id-posición debe referir a un estante de esa ubicación; un id ajeno
// rechaza la operación completa.
func (uc *StorageTypeUseCase) UpdatePositions(locationID string, in dto.UpdatePositionsRequest) error {
	for _, p := range in.Positions {
		st, err := uc.typeRepo.GetByID(p.ID)
		if err != nil {
			return err
		}
		if st == nil || st.LocationID != locationID {
			return domain.ErrNotFound
		}
	}
	for _, p := range in.Positions {
		if err := uc.typeRepo.UpdatePosition(p.ID, p.Position); err != nil {
			return err
		}
	}
	return nil
}

// List lista los estantes de una ubicación ordenados por posición.
func (uc *StorageTypeUseCase) List(locationID string, page dto.PageRequest) (*dto.StorageTypeListResponse, error) {
	page.DefaultPage()
	list, err := uc.typeRepo.ListByLocation(locationID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StorageTypeResponse, 0, len(list))
	for _, st := range list {
		items = append(items, *toStorageTypeResponse(st))
	}
	return &dto.StorageTypeListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina un estante. Rechaza con ErrConflict si aún tiene cajas.
func (uc *StorageTypeUseCase) Delete(id string) error {
	st, err := uc.typeRepo.GetByID(id)
	if err != nil {
		return err
	}
	if st == nil {
		return domain.ErrNotFound
	}
	count, err := uc.objectRepo.CountByStorageType(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrConflict
	}
	return uc.typeRepo.Delete(id)
}

func toStorageTypeResponse(st *entity.StorageType) *dto.StorageTypeResponse {
	if st == nil {
		return nil
	}
	return &dto.StorageTypeResponse{
		ID:         st.ID,
		LocationID: st.LocationID,
		Code:       st.Code,
		Name:       st.Name,
		Capacity:   st.Capacity,
		Position:   st.Position,
		CreatedAt:  st.CreatedAt,
		UpdatedAt:  st.UpdatedAt,
	}
}
