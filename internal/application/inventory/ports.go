package inventory

import (
	"context"

	"github.com/jhoicas/joyeria-pos/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el motor de inventario.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		plRepo repository.ProductLocationRepository,
		productRepo repository.ProductRepository,
	) error) error
}
