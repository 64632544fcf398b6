package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/joyeria-pos/internal/domain"
	"github.com/jhoicas/joyeria-pos/internal/domain/entity"
	"github.com/jhoicas/joyeria-pos/internal/domain/inventory"
	"github.com/jhoicas/joyeria-pos/internal/domain/repository"
	"github.com/jhoicas/joyeria-pos/pkg/logger"
	"github.com/jhoicas/joyeria-pos/pkg/metrics"
)

// MovementInputDTO es la entrada normalizada del motor de movimientos.
// Quantity siempre llega positiva; el signo lo decide el tipo de movimiento.
type MovementInputDTO struct {
	ProductType         string
	ProductID           string
	StorageObjectID     string // IN, OUT y ADJUSTMENT
	FromStorageObjectID string // TRANSFER
	ToStorageObjectID   string // TRANSFER
	Type                string
	Quantity            decimal.Decimal
	UnitCost            *decimal.Decimal // opcional en IN; por defecto el costo maestro
	Reference           string
}

// RegisterMovementUseCase es el motor de movimientos de inventario a nivel de caja.
// Toda mutación de existencias pasa por aquí dentro de una transacción.
type RegisterMovementUseCase struct {
	productRepo  repository.ProductRepository
	materialRepo repository.MaterialRepository
	objectRepo   repository.StorageObjectRepository
	txRunner     TxRunner
	logger       *logger.Logger
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	productRepo repository.ProductRepository,
	materialRepo repository.MaterialRepository,
	objectRepo repository.StorageObjectRepository,
	txRunner TxRunner,
	log *logger.Logger,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		productRepo:  productRepo,
		materialRepo: materialRepo,
		objectRepo:   objectRepo,
		txRunner:     txRunner,
		logger:       log,
	}
}

// RegisterMovement valida la entrada, resuelve producto y cajas fuera de la
// transacción y ejecuta la mutación dentro de ella. Devuelve la fila principal
// del movimiento (en TRANSFER, la fila de entrada en la caja destino).
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, userID string, input MovementInputDTO) (*entity.StockMovement, error) {
	if err := uc.validateInput(input); err != nil {
		return nil, err
	}

	masterCost, err := uc.resolveMasterCost(input.ProductType, input.ProductID)
	if err != nil {
		return nil, err
	}

	boxes, err := uc.resolveBoxes(input)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	txID := uuid.New().String()
	var result *entity.StockMovement

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		plRepo repository.ProductLocationRepository,
		productRepo repository.ProductRepository,
	) error {
		var txErr error
		switch input.Type {
		case entity.MovementTypeIN:
			result, txErr = uc.doIN(movRepo, plRepo, productRepo, boxes[0], input, masterCost, userID, now, txID)
		case entity.MovementTypeOUT:
			result, txErr = uc.doOUT(movRepo, plRepo, boxes[0], input, masterCost, userID, now, txID)
		case entity.MovementTypeADJUSTMENT:
			result, txErr = uc.doADJUSTMENT(movRepo, plRepo, boxes[0], input, masterCost, userID, now, txID)
		case entity.MovementTypeTRANSFER:
			result, txErr = uc.doTRANSFER(movRepo, plRepo, boxes[0], boxes[1], input, masterCost, userID, now, txID)
		default:
			txErr = domain.ErrInvalidInput
		}
		return txErr
	})
	if err != nil {
		return nil, err
	}

	metrics.MovementsTotal.WithLabelValues(input.Type).Inc()
	uc.logger.Info().
		Str("movement_type", input.Type).
		Str("product_type", input.ProductType).
		Str("product_id", input.ProductID).
		Str("quantity", input.Quantity.String()).
		Msg("movimiento de inventario registrado")

	return result, nil
}

func (uc *RegisterMovementUseCase) validateInput(input MovementInputDTO) error {
	if input.ProductType != entity.ProductRefJewel && input.ProductType != entity.ProductRefMaterial {
		return domain.ErrInvalidInput
	}
	if input.ProductID == "" {
		return domain.ErrInvalidInput
	}

	switch input.Type {
	case entity.MovementTypeIN, entity.MovementTypeOUT:
		if input.StorageObjectID == "" || !input.Quantity.IsPositive() {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeADJUSTMENT:
		// La cantidad es el conteo físico; cero es un conteo válido.
		if input.StorageObjectID == "" || input.Quantity.IsNegative() {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeTRANSFER:
		if input.FromStorageObjectID == "" || input.ToStorageObjectID == "" || !input.Quantity.IsPositive() {
			return domain.ErrInvalidInput
		}
		if input.FromStorageObjectID == input.ToStorageObjectID {
			return domain.ErrInvalidInput
		}
	default:
		return domain.ErrInvalidInput
	}

	if input.UnitCost != nil && input.UnitCost.IsNegative() {
		return domain.ErrInvalidInput
	}
	return nil
}

// resolveMasterCost verifica que la referencia exista y devuelve su costo maestro.
func (uc *RegisterMovementUseCase) resolveMasterCost(productType, productID string) (decimal.Decimal, error) {
	switch productType {
	case entity.ProductRefJewel:
		product, err := uc.productRepo.GetByID(productID)
		if err != nil {
			return decimal.Zero, fmt.Errorf("consultar joya: %w", err)
		}
		if product == nil {
			return decimal.Zero, domain.ErrNotFound
		}
		return product.Cost, nil
	default:
		material, err := uc.materialRepo.GetByID(productID)
		if err != nil {
			return decimal.Zero, fmt.Errorf("consultar material: %w", err)
		}
		if material == nil {
			return decimal.Zero, domain.ErrNotFound
		}
		return material.Cost, nil
	}
}

// resolveBoxes carga las cajas implicadas. Para TRANSFER devuelve [origen, destino].
func (uc *RegisterMovementUseCase) resolveBoxes(input MovementInputDTO) ([]*entity.StorageObject, error) {
	ids := []string{input.StorageObjectID}
	if input.Type == entity.MovementTypeTRANSFER {
		ids = []string{input.FromStorageObjectID, input.ToStorageObjectID}
	}

	boxes := make([]*entity.StorageObject, 0, len(ids))
	for _, id := range ids {
		box, err := uc.objectRepo.GetByID(id)
		if err != nil {
			return nil, fmt.Errorf("consultar caja: %w", err)
		}
		if box == nil {
			return nil, domain.ErrNotFound
		}
		boxes = append(boxes, box)
	}
	return boxes, nil
}

// addToBox suma cantidad a la asociación producto-caja, creándola si no existe.
// Respeta la capacidad de la caja al crear una asociación nueva.
func (uc *RegisterMovementUseCase) addToBox(
	plRepo repository.ProductLocationRepository,
	box *entity.StorageObject,
	productType, productID string,
	quantity decimal.Decimal,
	now time.Time,
) (*entity.ProductLocation, error) {
	pl, err := plRepo.GetByObjectAndProductForUpdate(box.ID, productType, productID)
	if err != nil {
		return nil, fmt.Errorf("bloquear existencia: %w", err)
	}

	if pl == nil {
		if box.Capacity > 0 {
			count, err := plRepo.CountByStorageObject(box.ID)
			if err != nil {
				return nil, fmt.Errorf("contar referencias en caja: %w", err)
			}
			if count >= box.Capacity {
				return nil, domain.ErrCapacityExceeded
			}
		}
		pl = &entity.ProductLocation{
			ID:              uuid.New().String(),
			StorageObjectID: box.ID,
			ProductType:     productType,
			ProductID:       productID,
			Quantity:        quantity,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := plRepo.Create(pl); err != nil {
			return nil, fmt.Errorf("crear existencia: %w", err)
		}
		return pl, nil
	}

	pl.Quantity = pl.Quantity.Add(quantity)
	if err := plRepo.UpdateQuantity(pl.ID, pl.Quantity); err != nil {
		return nil, fmt.Errorf("actualizar existencia: %w", err)
	}
	return pl, nil
}

// subFromBox descuenta cantidad de la asociación producto-caja bajo bloqueo.
func (uc *RegisterMovementUseCase) subFromBox(
	plRepo repository.ProductLocationRepository,
	boxID, productType, productID string,
	quantity decimal.Decimal,
) (*entity.ProductLocation, error) {
	pl, err := plRepo.GetByObjectAndProductForUpdate(boxID, productType, productID)
	if err != nil {
		return nil, fmt.Errorf("bloquear existencia: %w", err)
	}
	if pl == nil || pl.Quantity.LessThan(quantity) {
		return nil, domain.ErrInsufficientStock
	}

	pl.Quantity = pl.Quantity.Sub(quantity)
	if err := uc.setQuantity(plRepo, pl); err != nil {
		return nil, err
	}
	return pl, nil
}

// setQuantity persiste la cantidad de una asociación; en cero elimina la fila
// (el historial de la caja ya queda en los movimientos).
func (uc *RegisterMovementUseCase) setQuantity(plRepo repository.ProductLocationRepository, pl *entity.ProductLocation) error {
	if pl.Quantity.IsZero() {
		if err := plRepo.Delete(pl.ID); err != nil {
			return fmt.Errorf("eliminar existencia en cero: %w", err)
		}
		return nil
	}
	if err := plRepo.UpdateQuantity(pl.ID, pl.Quantity); err != nil {
		return fmt.Errorf("actualizar existencia: %w", err)
	}
	return nil
}

// doIN registra una entrada: recalcula el costo promedio ponderado de la joya,
// suma existencias en la caja y deja la fila de auditoría.
func (uc *RegisterMovementUseCase) doIN(
	movRepo repository.StockMovementRepository,
	plRepo repository.ProductLocationRepository,
	productRepo repository.ProductRepository,
	box *entity.StorageObject,
	input MovementInputDTO,
	masterCost decimal.Decimal,
	userID string,
	now time.Time,
	txID string,
) (*entity.StockMovement, error) {
	unitCost := masterCost
	if input.UnitCost != nil {
		unitCost = *input.UnitCost
	}

	// El promedio pondera contra el total de la referencia en todas las cajas,
	// no solo contra la caja que recibe.
	if input.ProductType == entity.ProductRefJewel {
		total, err := plRepo.TotalQuantity(input.ProductType, input.ProductID)
		if err != nil {
			return nil, fmt.Errorf("total de existencias: %w", err)
		}
		newCost := inventory.CostCalculator(total, masterCost, input.Quantity, unitCost)
		if !newCost.Equal(masterCost) {
			if err := productRepo.UpdateCost(input.ProductID, newCost); err != nil {
				return nil, fmt.Errorf("actualizar costo: %w", err)
			}
		}
	}

	if _, err := uc.addToBox(plRepo, box, input.ProductType, input.ProductID, input.Quantity, now); err != nil {
		return nil, err
	}

	mov := uc.buildMovement(input.Type, txID, input, box.ID, input.Quantity, unitCost, userID, now)
	if err := movRepo.Create(mov); err != nil {
		return nil, fmt.Errorf("crear movimiento: %w", err)
	}
	return mov, nil
}

// doOUT registra una salida a costo maestro vigente. La cantidad queda negativa
// para que la suma de movimientos refleje el saldo de la caja.
func (uc *RegisterMovementUseCase) doOUT(
	movRepo repository.StockMovementRepository,
	plRepo repository.ProductLocationRepository,
	box *entity.StorageObject,
	input MovementInputDTO,
	masterCost decimal.Decimal,
	userID string,
	now time.Time,
	txID string,
) (*entity.StockMovement, error) {
	if _, err := uc.subFromBox(plRepo, box.ID, input.ProductType, input.ProductID, input.Quantity); err != nil {
		return nil, err
	}

	mov := uc.buildMovement(input.Type, txID, input, box.ID, input.Quantity.Neg(), masterCost, userID, now)
	if err := movRepo.Create(mov); err != nil {
		return nil, fmt.Errorf("crear movimiento: %w", err)
	}
	return mov, nil
}

// doADJUSTMENT fija la cantidad al conteo físico y registra el delta con signo.
func (uc *RegisterMovementUseCase) doADJUSTMENT(
	movRepo repository.StockMovementRepository,
	plRepo repository.ProductLocationRepository,
	box *entity.StorageObject,
	input MovementInputDTO,
	masterCost decimal.Decimal,
	userID string,
	now time.Time,
	txID string,
) (*entity.StockMovement, error) {
	pl, err := plRepo.GetByObjectAndProductForUpdate(box.ID, input.ProductType, input.ProductID)
	if err != nil {
		return nil, fmt.Errorf("bloquear existencia: %w", err)
	}

	current := decimal.Zero
	if pl != nil {
		current = pl.Quantity
	}
	delta := input.Quantity.Sub(current)
	if delta.IsZero() {
		return nil, domain.ErrInvalidInput
	}

	if pl == nil {
		if _, err := uc.addToBox(plRepo, box, input.ProductType, input.ProductID, input.Quantity, now); err != nil {
			return nil, err
		}
	} else {
		pl.Quantity = input.Quantity
		if err := uc.setQuantity(plRepo, pl); err != nil {
			return nil, err
		}
	}

	mov := uc.buildMovement(input.Type, txID, input, box.ID, delta, masterCost, userID, now)
	if err := movRepo.Create(mov); err != nil {
		return nil, fmt.Errorf("crear movimiento: %w", err)
	}
	return mov, nil
}

// doTRANSFER mueve cantidad entre cajas: dos filas con el mismo TransactionID,
// negativa en origen y positiva en destino. Devuelve la fila de destino.
func (uc *RegisterMovementUseCase) doTRANSFER(
	movRepo repository.StockMovementRepository,
	plRepo repository.ProductLocationRepository,
	from, to *entity.StorageObject,
	input MovementInputDTO,
	masterCost decimal.Decimal,
	userID string,
	now time.Time,
	txID string,
) (*entity.StockMovement, error) {
	if _, err := uc.subFromBox(plRepo, from.ID, input.ProductType, input.ProductID, input.Quantity); err != nil {
		return nil, err
	}
	if _, err := uc.addToBox(plRepo, to, input.ProductType, input.ProductID, input.Quantity, now); err != nil {
		return nil, err
	}

	movOut := uc.buildMovement(input.Type, txID, input, from.ID, input.Quantity.Neg(), masterCost, userID, now)
	if err := movRepo.Create(movOut); err != nil {
		return nil, fmt.Errorf("crear movimiento de salida: %w", err)
	}
	movIn := uc.buildMovement(input.Type, txID, input, to.ID, input.Quantity, masterCost, userID, now)
	if err := movRepo.Create(movIn); err != nil {
		return nil, fmt.Errorf("crear movimiento de entrada: %w", err)
	}
	return movIn, nil
}

func (uc *RegisterMovementUseCase) buildMovement(
	movType, txID string,
	input MovementInputDTO,
	boxID string,
	signedQty, unitCost decimal.Decimal,
	userID string,
	now time.Time,
) *entity.StockMovement {
	return &entity.StockMovement{
		ID:              uuid.New().String(),
		TransactionID:   txID,
		ProductType:     input.ProductType,
		ProductID:       input.ProductID,
		StorageObjectID: boxID,
		Type:            movType,
		Quantity:        signedQty,
		UnitCost:        unitCost,
		TotalCost:       unitCost.Mul(signedQty.Abs()),
		Reference:       input.Reference,
		Date:            now,
		CreatedAt:       now,
		CreatedBy:       userID,
	}
}

// RegisterOUTInTx descuenta existencias de joyas dentro de una transacción
// abierta por facturación. Si storageObjectID viene vacío recorre las cajas de
// la ubicación por orden de llegada (FIFO) hasta cubrir la cantidad.
func (uc *RegisterMovementUseCase) RegisterOUTInTx(
	movRepo repository.StockMovementRepository,
	plRepo repository.ProductLocationRepository,
	product *entity.Product,
	locationID, storageObjectID, userID, reference string,
	quantity decimal.Decimal,
	movementDate time.Time,
	transactionID string,
) error {
	if storageObjectID != "" {
		if _, err := uc.subFromBox(plRepo, storageObjectID, entity.ProductRefJewel, product.ID, quantity); err != nil {
			return err
		}
		mov := uc.outMovement(transactionID, product.ID, storageObjectID, quantity, product.Cost, reference, userID, movementDate)
		if err := movRepo.Create(mov); err != nil {
			return fmt.Errorf("crear movimiento: %w", err)
		}
		metrics.MovementsTotal.WithLabelValues(entity.MovementTypeOUT).Inc()
		return nil
	}

	rows, err := plRepo.ListByLocationAndProductForUpdate(locationID, entity.ProductRefJewel, product.ID)
	if err != nil {
		return fmt.Errorf("bloquear existencias de la ubicación: %w", err)
	}

	remaining := quantity
	for _, row := range rows {
		if !remaining.IsPositive() {
			break
		}
		if !row.Quantity.IsPositive() {
			continue
		}
		take := decimal.Min(row.Quantity, remaining)

		row.Quantity = row.Quantity.Sub(take)
		if err := uc.setQuantity(plRepo, row); err != nil {
			return err
		}
		mov := uc.outMovement(transactionID, product.ID, row.StorageObjectID, take, product.Cost, reference, userID, movementDate)
		if err := movRepo.Create(mov); err != nil {
			return fmt.Errorf("crear movimiento: %w", err)
		}
		metrics.MovementsTotal.WithLabelValues(entity.MovementTypeOUT).Inc()
		remaining = remaining.Sub(take)
	}

	if remaining.IsPositive() {
		return domain.ErrInsufficientStock
	}
	return nil
}

// RegisterINInTx devuelve existencias a una caja dentro de una transacción de
// facturación (anulación de factura). Reingresa al costo maestro vigente, así
// el promedio ponderado no cambia.
func (uc *RegisterMovementUseCase) RegisterINInTx(
	movRepo repository.StockMovementRepository,
	plRepo repository.ProductLocationRepository,
	product *entity.Product,
	box *entity.StorageObject,
	userID, reference string,
	quantity decimal.Decimal,
	movementDate time.Time,
	transactionID string,
) error {
	if _, err := uc.addToBox(plRepo, box, entity.ProductRefJewel, product.ID, quantity, movementDate); err != nil {
		return err
	}

	mov := &entity.StockMovement{
		ID:              uuid.New().String(),
		TransactionID:   transactionID,
		ProductType:     entity.ProductRefJewel,
		ProductID:       product.ID,
		StorageObjectID: box.ID,
		Type:            entity.MovementTypeIN,
		Quantity:        quantity,
		UnitCost:        product.Cost,
		TotalCost:       product.Cost.Mul(quantity),
		Reference:       reference,
		Date:            movementDate,
		CreatedAt:       movementDate,
		CreatedBy:       userID,
	}
	if err := movRepo.Create(mov); err != nil {
		return fmt.Errorf("crear movimiento: %w", err)
	}
	metrics.MovementsTotal.WithLabelValues(entity.MovementTypeIN).Inc()
	return nil
}

func (uc *RegisterMovementUseCase) outMovement(
	txID, productID, boxID string,
	quantity, unitCost decimal.Decimal,
	reference, userID string,
	date time.Time,
) *entity.StockMovement {
	return &entity.StockMovement{
		ID:              uuid.New().String(),
		TransactionID:   txID,
		ProductType:     entity.ProductRefJewel,
		ProductID:       productID,
		StorageObjectID: boxID,
		Type:            entity.MovementTypeOUT,
		Quantity:        quantity.Neg(),
		UnitCost:        unitCost,
		TotalCost:       unitCost.Mul(quantity),
		Reference:       reference,
		Date:            date,
		CreatedAt:       date,
		CreatedBy:       userID,
	}
}
