package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/joyeria-pos/internal/application/billing"
	"github.com/jhoicas/joyeria-pos/internal/application/inventory"
	"github.com/jhoicas/joyeria-pos/internal/application/storage"
	"github.com/jhoicas/joyeria-pos/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)
var _ billing.BillingTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con los repos del motor de inventario
// atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	plRepo repository.ProductLocationRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	movRepo := NewStockMovementRepository(tx)
	plRepo := NewProductLocationRepository(tx)
	productRepo := NewProductRepository(tx)

	if err := fn(movRepo, plRepo, productRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunBilling igual que Run pero con los repos que necesita el checkout:
// la factura y sus salidas de stock se confirman o se revierten juntas.
func (r *TxRunner) RunBilling(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	plRepo repository.ProductLocationRepository,
	objectRepo repository.StorageObjectRepository,
	invoiceRepo repository.InvoiceRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin billing transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	movRepo := NewStockMovementRepository(tx)
	plRepo := NewProductLocationRepository(tx)
	objectRepo := NewStorageObjectRepository(tx)
	invoiceRepo := NewInvoiceRepository(tx)

	if err := fn(movRepo, plRepo, objectRepo, invoiceRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit billing transaction: %w", err)
	}
	return nil
}

var _ storage.TxRunner = (*StorageTxRunner)(nil)

// StorageTxRunner ejecuta callbacks de almacenamiento (alta masiva de cajas,
// moves) dentro de una transacción, con el repo de cajas atado a esa tx. El
// advisory lock del generador de códigos vive dentro de la misma transacción.
type StorageTxRunner struct {
	pool *pgxpool.Pool
}

// NewStorageTxRunner construye el runner con el pool.
func NewStorageTxRunner(pool *pgxpool.Pool) *StorageTxRunner {
	return &StorageTxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con el repo de cajas atado a la tx
// y hace Commit o Rollback.
func (r *StorageTxRunner) Run(ctx context.Context, fn func(objectRepo repository.StorageObjectRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin storage transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStorageObjectRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit storage transaction: %w", err)
	}
	return nil
}
