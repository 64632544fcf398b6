package storage

import (
	"context"

	"github.com/jhoicas/joyeria-pos/internal/application/inventory"
	"github.com/jhoicas/joyeria-pos/internal/domain/entity"
	"github.com/jhoicas/joyeria-pos/internal/domain/repository"
	domstorage "github.com/jhoicas/joyeria-pos/internal/domain/storage"
)

// TxRunner ejecuta una función dentro de una transacción de BD con el
// repositorio de cajas atado a esa tx. Lo usan el alta masiva de cajas
// (generación + validación de códigos bajo advisory lock) y el movimiento de
// cajas entre estantes.
type TxRunner interface {
	Run(ctx context.Context, fn func(objectRepo repository.StorageObjectRepository) error) error
}

// MovementEngine es el motor de movimientos que usan guardar-en-caja y
// trasladar-cantidad. Toda mutación de existencias pasa por él.
type MovementEngine interface {
	RegisterMovement(ctx context.Context, userID string, input inventory.MovementInputDTO) (*entity.StockMovement, error)
}

// BatchValidationError rechaza un lote completo de códigos. Entries detalla
// cada entrada en conflicto con su índice dentro del lote.
type BatchValidationError struct {
	Entries []domstorage.BatchError
}

func (e *BatchValidationError) Error() string {
	return "códigos duplicados o vacíos en el lote"
}
