package storage

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/joyeria-pos/internal/application/dto"
	"github.com/jhoicas/joyeria-pos/internal/application/inventory"
	"github.com/jhoicas/joyeria-pos/internal/domain"
	"github.com/jhoicas/joyeria-pos/internal/domain/entity"
	"github.com/jhoicas/joyeria-pos/internal/domain/repository"
)

// ContentsUseCase consulta y muta el contenido de las cajas. Guardar y
// trasladar delegan en el motor de movimientos para que toda mutación quede
// auditada; aquí solo se resuelven referencias y se arma la respuesta.
type ContentsUseCase struct {
	locationRepo repository.LocationRepository
	typeRepo     repository.StorageTypeRepository
	objectRepo   repository.StorageObjectRepository
	plRepo       repository.ProductLocationRepository
	productRepo  repository.ProductRepository
	materialRepo repository.MaterialRepository
	engine       MovementEngine
}

// NewContentsUseCase construye el caso de uso.
func NewContentsUseCase(
	locationRepo repository.LocationRepository,
	typeRepo repository.StorageTypeRepository,
	objectRepo repository.StorageObjectRepository,
	plRepo repository.ProductLocationRepository,
	productRepo repository.ProductRepository,
	materialRepo repository.MaterialRepository,
	engine MovementEngine,
) *ContentsUseCase {
	return &ContentsUseCase{
		locationRepo: locationRepo,
		typeRepo:     typeRepo,
		objectRepo:   objectRepo,
		plRepo:       plRepo,
		productRepo:  productRepo,
		materialRepo: materialRepo,
		engine:       engine,
	}
}

// PutProduct guarda cantidad de una referencia en la caja (movimiento IN).
// Si la referencia ya está en la caja, la cantidad se acumula.
func (uc *ContentsUseCase) PutProduct(ctx context.Context, userID, storageObjectID string, in dto.PutProductInBoxRequest) (*dto.ProductLocationResponse, error) {
	_, err := uc.engine.RegisterMovement(ctx, userID, inventory.MovementInputDTO{
		ProductType:     in.ProductType,
		ProductID:       in.ProductID,
		StorageObjectID: storageObjectID,
		Type:            entity.MovementTypeIN,
		Quantity:        in.Quantity,
		UnitCost:        in.UnitCost,
		Reference:       "ingreso a caja",
	})
	if err != nil {
		return nil, err
	}

	pl, err := uc.plRepo.GetByObjectAndProduct(storageObjectID, in.ProductType, in.ProductID)
	if err != nil {
		return nil, err
	}
	if pl == nil {
		return nil, domain.ErrNotFound
	}
	resp := uc.toProductLocationResponse(pl)
	return &resp, nil
}

// Transfer traslada cantidad de una asociación producto-caja a otra caja
// (movimiento TRANSFER). Cantidad nula traslada toda la existencia.
func (uc *ContentsUseCase) Transfer(ctx context.Context, userID, productLocationID string, in dto.TransferRequest) error {
	pl, err := uc.plRepo.GetByID(productLocationID)
	if err != nil {
		return err
	}
	if pl == nil {
		return domain.ErrNotFound
	}

	quantity := pl.Quantity
	if in.Quantity != nil {
		quantity = *in.Quantity
	}

	_, err = uc.engine.RegisterMovement(ctx, userID, inventory.MovementInputDTO{
		ProductType:         pl.ProductType,
		ProductID:           pl.ProductID,
		FromStorageObjectID: pl.StorageObjectID,
		ToStorageObjectID:   in.ToStorageObjectID,
		Type:                entity.MovementTypeTRANSFER,
		Quantity:            quantity,
		Reference:           "traslado entre cajas",
	})
	return err
}

// ListContents lista las referencias guardadas en una caja con sus nombres.
func (uc *ContentsUseCase) ListContents(storageObjectID string, page dto.PageRequest) (*dto.ProductLocationListResponse, error) {
	obj, err := uc.objectRepo.GetByID(storageObjectID)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, domain.ErrNotFound
	}

	page.DefaultPage()
	rows, err := uc.plRepo.ListByStorageObject(storageObjectID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductLocationResponse, 0, len(rows))
	for _, pl := range rows {
		items = append(items, uc.toProductLocationResponse(pl))
	}
	return &dto.ProductLocationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// WhereIs responde "¿dónde está esta referencia?": todas las cajas que la
// contienen con su ruta tienda -> estante -> caja y el total acumulado.
func (uc *ContentsUseCase) WhereIs(productType, productID string) (*dto.WhereIsResponse, error) {
	if productType != entity.ProductRefJewel && productType != entity.ProductRefMaterial {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkReference(productType, productID); err != nil {
		return nil, err
	}

	rows, err := uc.plRepo.ListByProduct(productType, productID)
	if err != nil {
		return nil, err
	}

	// caches para no repetir lecturas de la misma rama del árbol
	shelves := map[string]*entity.StorageType{}
	locations := map[string]*entity.Location{}

	total := decimal.Zero
	places := make([]dto.WhereIsPlace, 0, len(rows))
	for _, pl := range rows {
		box, err := uc.objectRepo.GetByID(pl.StorageObjectID)
		if err != nil {
			return nil, err
		}
		if box == nil {
			continue
		}
		shelf := shelves[box.StorageTypeID]
		if shelf == nil {
			if shelf, err = uc.typeRepo.GetByID(box.StorageTypeID); err != nil {
				return nil, err
			}
			shelves[box.StorageTypeID] = shelf
		}
		if shelf == nil {
			continue
		}
		location := locations[shelf.LocationID]
		if location == nil {
			if location, err = uc.locationRepo.GetByID(shelf.LocationID); err != nil {
				return nil, err
			}
			locations[shelf.LocationID] = location
		}
		if location == nil {
			continue
		}

		total = total.Add(pl.Quantity)
		places = append(places, dto.WhereIsPlace{
			LocationID:        location.ID,
			LocationName:      location.Name,
			StorageTypeID:     shelf.ID,
			StorageTypeName:   shelf.Name,
			StorageObjectID:   box.ID,
			StorageObjectCode: box.Code,
			Quantity:          pl.Quantity,
		})
	}

	return &dto.WhereIsResponse{
		ProductType: productType,
		ProductID:   productID,
		Total:       total,
		Places:      places,
	}, nil
}

func (uc *ContentsUseCase) checkReference(productType, productID string) error {
	switch productType {
	case entity.ProductRefJewel:
		product, err := uc.productRepo.GetByID(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
	default:
		material, err := uc.materialRepo.GetByID(productID)
		if err != nil {
			return err
		}
		if material == nil {
			return domain.ErrNotFound
		}
	}
	return nil
}

func (uc *ContentsUseCase) toProductLocationResponse(pl *entity.ProductLocation) dto.ProductLocationResponse {
	name := ""
	switch pl.ProductType {
	case entity.ProductRefJewel:
		if p, err := uc.productRepo.GetByID(pl.ProductID); err == nil && p != nil {
			name = p.Name
		}
	case entity.ProductRefMaterial:
		if m, err := uc.materialRepo.GetByID(pl.ProductID); err == nil && m != nil {
			name = m.Name
		}
	}
	return dto.ProductLocationResponse{
		ID:              pl.ID,
		StorageObjectID: pl.StorageObjectID,
		ProductType:     pl.ProductType,
		ProductID:       pl.ProductID,
		ProductName:     name,
		Quantity:        pl.Quantity,
		CreatedAt:       pl.CreatedAt,
		UpdatedAt:       pl.UpdatedAt,
	}
}
