package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/joyeria-pos/internal/domain/entity"
)

// ProductLocationRepository define el puerto de persistencia para las asociaciones
// producto-caja con cantidad. Usado dentro de transacciones para moves y transfers.
type ProductLocationRepository interface {
	Create(pl *entity.ProductLocation) error
	GetByID(id string) (*entity.ProductLocation, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) para transfers y salidas.
	GetForUpdate(id string) (*entity.ProductLocation, error)
	GetByObjectAndProduct(storageObjectID, productType, productID string) (*entity.ProductLocation, error)
	GetByObjectAndProductForUpdate(storageObjectID, productType, productID string) (*entity.ProductLocation, error)
	UpdateQuantity(id string, quantity decimal.Decimal) error
	ListByStorageObject(storageObjectID string, limit, offset int) ([]*entity.ProductLocation, error)
	// ListByProduct responde "¿dónde está esta referencia?" a través de todas las cajas.
	ListByProduct(productType, productID string) ([]*entity.ProductLocation, error)
	// TotalQuantity suma las existencias de una referencia en todas las cajas.
	// Es la base del costo promedio ponderado.
	TotalQuantity(productType, productID string) (decimal.Decimal, error)
	// ListByLocationAndProductForUpdate bloquea las existencias de una referencia en
	// todas las cajas de una ubicación, por orden de llegada (FIFO de facturación).
	ListByLocationAndProductForUpdate(locationID, productType, productID string) ([]*entity.ProductLocation, error)
	CountByStorageObject(storageObjectID string) (int, error)
	Delete(id string) error
}
