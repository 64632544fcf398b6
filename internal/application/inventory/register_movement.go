package inventory

import (
	"context"

	"github.com/jhoicas/joyeria-pos/internal/application/dto"
	"github.com/jhoicas/joyeria-pos/internal/domain/entity"
)

// RegisterMovementFromRequest adapta el request HTTP al motor de movimientos.
// Se usa desde el handler de inventario y desde los endpoints de almacenamiento
// que delegan en el motor (guardar producto en caja, trasladar cantidad).
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	input := MovementInputDTO{
		ProductType:         in.ProductType,
		ProductID:           in.ProductID,
		StorageObjectID:     in.StorageObjectID,
		FromStorageObjectID: in.FromStorageObjectID,
		ToStorageObjectID:   in.ToStorageObjectID,
		Type:                in.Type,
		Quantity:            in.Quantity,
		UnitCost:            in.UnitCost,
		Reference:           in.Reference,
	}

	mov, err := uc.RegisterMovement(ctx, userID, input)
	if err != nil {
		return nil, err
	}
	resp := toMovementResponse(mov)
	return &resp, nil
}

func toMovementResponse(mov *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:              mov.ID,
		TransactionID:   mov.TransactionID,
		ProductType:     mov.ProductType,
		ProductID:       mov.ProductID,
		StorageObjectID: mov.StorageObjectID,
		Type:            mov.Type,
		Quantity:        mov.Quantity,
		UnitCost:        mov.UnitCost,
		TotalCost:       mov.TotalCost,
		Reference:       mov.Reference,
		Date:            mov.Date,
		CreatedBy:       mov.CreatedBy,
	}
}
