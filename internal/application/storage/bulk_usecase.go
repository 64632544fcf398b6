package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/joyeria-pos/internal/application/dto"
	"github.com/jhoicas/joyeria-pos/internal/domain"
	"github.com/jhoicas/joyeria-pos/internal/domain/entity"
	"github.com/jhoicas/joyeria-pos/internal/domain/repository"
	domstorage "github.com/jhoicas/joyeria-pos/internal/domain/storage"
)

// BulkCreate crea un lote de cajas en un estante de forma atómica.
//
// Dentro de la transacción toma el advisory lock de códigos de la ubicación,
// relee los códigos existentes, completa las entradas sin código con la
// secuencia BOX_<max+1> y valida el lote completo (colisiones con lo
// persistido y duplicados dentro del lote, ambos case-insensitive). Cualquier
// conflicto devuelve BatchValidationError y no se crea nada.
func (uc *StorageObjectUseCase) BulkCreate(ctx context.Context, storageTypeID string, in dto.BulkCreateStorageObjectsRequest) ([]dto.StorageObjectResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	st, err := uc.typeRepo.GetByID(storageTypeID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, domain.ErrNotFound
	}

	var created []*entity.StorageObject
	err = uc.txRunner.Run(ctx, func(objectRepo repository.StorageObjectRepository) error {
		if err := objectRepo.LockCodeScope(st.LocationID); err != nil {
			return err
		}

		if st.Capacity > 0 {
			count, err := objectRepo.CountByStorageType(storageTypeID)
			if err != nil {
				return err
			}
			if count+len(in.Items) > st.Capacity {
				return domain.ErrCapacityExceeded
			}
		}

		codes, labels, err := objectRepo.CodeFieldsByLocation(st.LocationID)
		if err != nil {
			return err
		}

		candidates := fillCodes(in.Items, append(append([]string{}, codes...), labels...))
		if errs := domstorage.ValidateBatch(candidates, codes); len(errs) > 0 {
			return &BatchValidationError{Entries: errs}
		}

		now := time.Now()
		created = make([]*entity.StorageObject, 0, len(in.Items))
		for i, item := range in.Items {
			obj := &entity.StorageObject{
				ID:            uuid.New().String(),
				StorageTypeID: storageTypeID,
				Code:          candidates[i],
				Label:         item.Label,
				Capacity:      item.Capacity,
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			if err := objectRepo.Create(obj); err != nil {
				return err
			}
			created = append(created, obj)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]dto.StorageObjectResponse, 0, len(created))
	for _, obj := range created {
		out = append(out, *toStorageObjectResponse(obj))
	}
	return out, nil
}

// fillCodes devuelve los códigos definitivos del lote: las entradas con código
// explícito lo conservan y las vacías consumen la secuencia BOX_<max+1> en
// orden, considerando también los códigos explícitos del propio lote.
func fillCodes(items []dto.CreateStorageObjectRequest, existingFields []string) []string {
	fields := existingFields
	for _, item := range items {
		if item.Code != "" {
			fields = append(fields, item.Code)
		}
	}

	next := domstorage.MaxSequence(domstorage.PrefixBox, fields) + 1
	candidates := make([]string, len(items))
	for i, item := range items {
		if item.Code != "" {
			candidates[i] = item.Code
			continue
		}
		candidates[i] = domstorage.FormatCode(domstorage.PrefixBox, next)
		next++
	}
	return candidates
}

// SuggestCodes devuelve count códigos BOX_<n> consecutivos para pre-poblar el
// formulario de alta masiva. Es una lectura optimista: la validación del lote
// al enviarlo es la que garantiza unicidad.
func (uc *StorageObjectUseCase) SuggestCodes(storageTypeID string, count int) (*dto.NextCodeResponse, error) {
	if count <= 0 {
		count = 1
	}
	if count > 100 {
		count = 100
	}

	st, err := uc.typeRepo.GetByID(storageTypeID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, domain.ErrNotFound
	}

	codes, labels, err := uc.objectRepo.CodeFieldsByLocation(st.LocationID)
	if err != nil {
		return nil, err
	}
	return &dto.NextCodeResponse{
		Codes: domstorage.SuggestCodes(domstorage.PrefixBox, append(codes, labels...), count),
	}, nil
}
