package storage

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/joyeria-pos/internal/application/dto"
	"github.com/jhoicas/joyeria-pos/internal/domain"
	"github.com/jhoicas/joyeria-pos/internal/domain/entity"
	"github.com/jhoicas/joyeria-pos/internal/domain/repository"
)

// StorageObjectUseCase casos de uso para cajas: CRUD, alta masiva con
// generación de códigos BOX_<n>, sugerencias y movimiento entre estantes.
type StorageObjectUseCase struct {
	typeRepo   repository.StorageTypeRepository
	objectRepo repository.StorageObjectRepository
	plRepo     repository.ProductLocationRepository
	txRunner   TxRunner
}

// NewStorageObjectUseCase construye el caso de uso.
func NewStorageObjectUseCase(
	typeRepo repository.StorageTypeRepository,
	objectRepo repository.StorageObjectRepository,
	plRepo repository.ProductLocationRepository,
	txRunner TxRunner,
) *StorageObjectUseCase {
	return &StorageObjectUseCase{
		typeRepo:   typeRepo,
		objectRepo: objectRepo,
		plRepo:     plRepo,
		txRunner:   txRunner,
	}
}

// Create crea una caja en el estante. Es el alta masiva con un solo elemento:
// misma generación de código y misma validación de colisiones.
func (uc *StorageObjectUseCase) Create(ctx context.Context, storageTypeID string, in dto.CreateStorageObjectRequest) (*dto.StorageObjectResponse, error) {
	created, err := uc.BulkCreate(ctx, storageTypeID, dto.BulkCreateStorageObjectsRequest{
		Items: []dto.CreateStorageObjectRequest{in},
	})
	if err != nil {
		var batchErr *BatchValidationError
		if errors.As(err, &batchErr) {
			return nil, domain.ErrDuplicateCode
		}
		return nil, err
	}
	return &created[0], nil
}

// GetByID obtiene una caja por ID.
func (uc *StorageObjectUseCase) GetByID(id string) (*dto.StorageObjectResponse, error) {
	obj, err := uc.objectRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, nil
	}
	return toStorageObjectResponse(obj), nil
}

// Update actualiza etiqueta o capacidad de una caja. La capacidad no puede
// quedar por debajo de las referencias que ya contiene.
func (uc *StorageObjectUseCase) Update(id string, in dto.UpdateStorageObjectRequest) (*dto.StorageObjectResponse, error) {
	obj, err := uc.objectRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, nil
	}
	if in.Label != nil {
		obj.Label = *in.Label
	}
	if in.Capacity != nil {
		if *in.Capacity > 0 {
			count, err := uc.plRepo.CountByStorageObject(id)
			if err != nil {
				return nil, err
			}
			if count > *in.Capacity {
				return nil, domain.ErrConflict
			}
		}
		obj.Capacity = *in.Capacity
	}
	obj.UpdatedAt = time.Now()
	if err := uc.objectRepo.Update(obj); err != nil {
		return nil, err
	}
	return toStorageObjectResponse(obj), nil
}

// List lista las cajas de un estante.
func (uc *StorageObjectUseCase) List(storageTypeID string, page dto.PageRequest) (*dto.StorageObjectListResponse, error) {
	page.DefaultPage()
	list, err := uc.objectRepo.ListByStorageType(storageTypeID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StorageObjectResponse, 0, len(list))
	for _, obj := range list {
		items = append(items, *toStorageObjectResponse(obj))
	}
	return &dto.StorageObjectListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina una caja. Rechaza con ErrConflict si aún contiene referencias.
func (uc *StorageObjectUseCase) Delete(id string) error {
	obj, err := uc.objectRepo.GetByID(id)
	if err != nil {
		return err
	}
	if obj == nil {
		return domain.ErrNotFound
	}
	count, err := uc.plRepo.CountByStorageObject(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrConflict
	}
	return uc.objectRepo.Delete(id)
}

func toStorageObjectResponse(obj *entity.StorageObject) *dto.StorageObjectResponse {
	if obj == nil {
		return nil
	}
	return &dto.StorageObjectResponse{
		ID:            obj.ID,
		StorageTypeID: obj.StorageTypeID,
		Code:          obj.Code,
		Label:         obj.Label,
		Capacity:      obj.Capacity,
		CreatedAt:     obj.CreatedAt,
		UpdatedAt:     obj.UpdatedAt,
	}
}
