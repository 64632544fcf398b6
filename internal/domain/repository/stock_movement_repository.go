package repository

import (
	"time"

	"github.com/jhoicas/joyeria-pos/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para movimientos de inventario (DIP).
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	ListByStorageObject(storageObjectID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	ListByProduct(productType, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
}
