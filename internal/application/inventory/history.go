package inventory

import (
	"time"

	"github.com/jhoicas/joyeria-pos/internal/application/dto"
	"github.com/jhoicas/joyeria-pos/internal/domain"
	"github.com/jhoicas/joyeria-pos/internal/domain/entity"
	"github.com/jhoicas/joyeria-pos/internal/domain/repository"
)

// MovementHistoryUseCase consulta el historial de movimientos por referencia o por caja.
type MovementHistoryUseCase struct {
	movementRepo repository.StockMovementRepository
}

func NewMovementHistoryUseCase(movementRepo repository.StockMovementRepository) *MovementHistoryUseCase {
	return &MovementHistoryUseCase{movementRepo: movementRepo}
}

// ListByProduct devuelve los movimientos de una referencia, opcionalmente
// acotados por rango de fechas.
func (uc *MovementHistoryUseCase) ListByProduct(productType, productID string, from, to *time.Time, page dto.PageRequest) (*dto.MovementListResponse, error) {
	if productType != entity.ProductRefJewel && productType != entity.ProductRefMaterial {
		return nil, domain.ErrInvalidInput
	}
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}

	page.DefaultPage()
	movements, err := uc.movementRepo.ListByProduct(productType, productID, from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return buildMovementList(movements, page), nil
}

// ListByStorageObject devuelve los movimientos registrados sobre una caja.
func (uc *MovementHistoryUseCase) ListByStorageObject(storageObjectID string, from, to *time.Time, page dto.PageRequest) (*dto.MovementListResponse, error) {
	if storageObjectID == "" {
		return nil, domain.ErrInvalidInput
	}

	page.DefaultPage()
	movements, err := uc.movementRepo.ListByStorageObject(storageObjectID, from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return buildMovementList(movements, page), nil
}

func buildMovementList(movements []*entity.StockMovement, page dto.PageRequest) *dto.MovementListResponse {
	items := make([]dto.MovementResponse, 0, len(movements))
	for _, mov := range movements {
		items = append(items, toMovementResponse(mov))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
}
