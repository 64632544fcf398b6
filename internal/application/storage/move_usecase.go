package storage

import (
	"context"

	"github.com/jhoicas/joyeria-pos/internal/application/dto"
	"github.com/jhoicas/joyeria-pos/internal/domain"
	"github.com/jhoicas/joyeria-pos/internal/domain/repository"
	domstorage "github.com/jhoicas/joyeria-pos/internal/domain/storage"
)

// Move re-asigna una caja a otro estante con todo su contenido. No genera
// movimientos de inventario: las existencias siguen en la misma caja.
//
// Si el estante destino está en otra ubicación, el código de la caja debe ser
// único también allí; el chequeo corre bajo el advisory lock de códigos de la
// ubicación destino.
func (uc *StorageObjectUseCase) Move(ctx context.Context, id string, in dto.MoveStorageObjectRequest) (*dto.StorageObjectResponse, error) {
	obj, err := uc.objectRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, domain.ErrNotFound
	}
	if obj.StorageTypeID == in.ToStorageTypeID {
		return toStorageObjectResponse(obj), nil
	}

	fromShelf, err := uc.typeRepo.GetByID(obj.StorageTypeID)
	if err != nil {
		return nil, err
	}
	toShelf, err := uc.typeRepo.GetByID(in.ToStorageTypeID)
	if err != nil {
		return nil, err
	}
	if fromShelf == nil || toShelf == nil {
		return nil, domain.ErrNotFound
	}

	err = uc.txRunner.Run(ctx, func(objectRepo repository.StorageObjectRepository) error {
		if toShelf.Capacity > 0 {
			count, err := objectRepo.CountByStorageType(toShelf.ID)
			if err != nil {
				return err
			}
			if count >= toShelf.Capacity {
				return domain.ErrCapacityExceeded
			}
		}

		if fromShelf.LocationID != toShelf.LocationID {
			if err := objectRepo.LockCodeScope(toShelf.LocationID); err != nil {
				return err
			}
			codes, _, err := objectRepo.CodeFieldsByLocation(toShelf.LocationID)
			if err != nil {
				return err
			}
			if errs := domstorage.ValidateBatch([]string{obj.Code}, codes); len(errs) > 0 {
				return domain.ErrDuplicateCode
			}
		}

		return objectRepo.UpdateParent(obj.ID, toShelf.ID)
	})
	if err != nil {
		return nil, err
	}

	obj.StorageTypeID = toShelf.ID
	return toStorageObjectResponse(obj), nil
}
