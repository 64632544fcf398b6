package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/joyeria-pos/internal/domain/entity"
	"github.com/jhoicas/joyeria-pos/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const stockMovementColumns = `id, transaction_id, product_type, product_id, storage_object_id, type, quantity, unit_cost, total_cost, reference, date, created_at, created_by`

// StockMovementRepo implementación del puerto StockMovementRepository sobre
// PostgreSQL. Los movimientos son inmutables: solo insert y lectura.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento de inventario.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (` + stockMovementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.TransactionID, movement.ProductType, movement.ProductID,
		movement.StorageObjectID, movement.Type, movement.Quantity,
		movement.UnitCost, movement.TotalCost, movement.Reference,
		movement.Date, movement.CreatedAt, movement.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *StockMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	query := `SELECT ` + stockMovementColumns + ` FROM stock_movements WHERE id = $1`
	var m entity.StockMovement
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.TransactionID, &m.ProductType, &m.ProductID, &m.StorageObjectID,
		&m.Type, &m.Quantity, &m.UnitCost, &m.TotalCost, &m.Reference,
		&m.Date, &m.CreatedAt, &m.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return &m, nil
}

// ListByStorageObject lista el historial de una caja, más reciente primero.
// from y to acotan por fecha de movimiento; nil = sin límite.
func (r *StockMovementRepo) ListByStorageObject(storageObjectID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + stockMovementColumns + `
		FROM stock_movements
		WHERE storage_object_id = $1
		  AND ($2::timestamptz IS NULL OR date >= $2)
		  AND ($3::timestamptz IS NULL OR date <= $3)
		ORDER BY date DESC, created_at DESC
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query, storageObjectID, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements by object: %w", err)
	}
	return r.scanAll(rows)
}

// ListByProduct lista el historial de una referencia en todas las cajas.
func (r *StockMovementRepo) ListByProduct(productType, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + stockMovementColumns + `
		FROM stock_movements
		WHERE product_type = $1 AND product_id = $2
		  AND ($3::timestamptz IS NULL OR date >= $3)
		  AND ($4::timestamptz IS NULL OR date <= $4)
		ORDER BY date DESC, created_at DESC
		LIMIT $5 OFFSET $6`
	rows, err := r.q.Query(context.Background(), query, productType, productID, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements by product: %w", err)
	}
	return r.scanAll(rows)
}

func (r *StockMovementRepo) scanAll(rows pgx.Rows) ([]*entity.StockMovement, error) {
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(
			&m.ID, &m.TransactionID, &m.ProductType, &m.ProductID, &m.StorageObjectID,
			&m.Type, &m.Quantity, &m.UnitCost, &m.TotalCost, &m.Reference,
			&m.Date, &m.CreatedAt, &m.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
