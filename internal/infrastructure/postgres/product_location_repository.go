package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/joyeria-pos/internal/domain"
	"github.com/jhoicas/joyeria-pos/internal/domain/entity"
	"github.com/jhoicas/joyeria-pos/internal/domain/repository"
)

var _ repository.ProductLocationRepository = (*ProductLocationRepo)(nil)

const productLocationColumns = `id, storage_object_id, product_type, product_id, quantity, created_at, updated_at`

// ProductLocationRepo implementación del puerto ProductLocationRepository sobre
// PostgreSQL. El motor de inventario lo usa siempre dentro de una transacción;
// las variantes ForUpdate bloquean la fila hasta el commit.
type ProductLocationRepo struct {
	q Querier
}

// NewProductLocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductLocationRepository(q Querier) *ProductLocationRepo {
	return &ProductLocationRepo{q: q}
}

// Create persiste una nueva asociación producto-caja.
func (r *ProductLocationRepo) Create(pl *entity.ProductLocation) error {
	query := `
		INSERT INTO product_locations (id, storage_object_id, product_type, product_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		pl.ID, pl.StorageObjectID, pl.ProductType, pl.ProductID, pl.Quantity, pl.CreatedAt, pl.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product location: %w", err)
	}
	return nil
}

// GetByID obtiene una asociación por ID.
func (r *ProductLocationRepo) GetByID(id string) (*entity.ProductLocation, error) {
	query := `SELECT ` + productLocationColumns + ` FROM product_locations WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtiene una asociación por ID bloqueando la fila (transfers y salidas).
func (r *ProductLocationRepo) GetForUpdate(id string) (*entity.ProductLocation, error) {
	query := `SELECT ` + productLocationColumns + ` FROM product_locations WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByObjectAndProduct obtiene la asociación de una referencia en una caja.
func (r *ProductLocationRepo) GetByObjectAndProduct(storageObjectID, productType, productID string) (*entity.ProductLocation, error) {
	query := `
		SELECT ` + productLocationColumns + `
		FROM product_locations
		WHERE storage_object_id = $1 AND product_type = $2 AND product_id = $3`
	return r.scanOne(r.q.QueryRow(context.Background(), query, storageObjectID, productType, productID))
}

// GetByObjectAndProductForUpdate igual que GetByObjectAndProduct pero bloqueando la fila.
func (r *ProductLocationRepo) GetByObjectAndProductForUpdate(storageObjectID, productType, productID string) (*entity.ProductLocation, error) {
	query := `
		SELECT ` + productLocationColumns + `
		FROM product_locations
		WHERE storage_object_id = $1 AND product_type = $2 AND product_id = $3
		FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, storageObjectID, productType, productID))
}

// UpdateQuantity fija la cantidad de una asociación.
func (r *ProductLocationRepo) UpdateQuantity(id string, quantity decimal.Decimal) error {
	query := `UPDATE product_locations SET quantity = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, quantity)
	if err != nil {
		return fmt.Errorf("update product location quantity: %w", err)
	}
	return nil
}

// ListByStorageObject lista el contenido de una caja con paginación.
func (r *ProductLocationRepo) ListByStorageObject(storageObjectID string, limit, offset int) ([]*entity.ProductLocation, error) {
	query := `
		SELECT ` + productLocationColumns + `
		FROM product_locations
		WHERE storage_object_id = $1
		ORDER BY created_at
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, storageObjectID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list product locations by object: %w", err)
	}
	return r.scanAll(rows)
}

// ListByProduct responde "¿dónde está esta referencia?" a través de todas las cajas.
func (r *ProductLocationRepo) ListByProduct(productType, productID string) ([]*entity.ProductLocation, error) {
	query := `
		SELECT ` + productLocationColumns + `
		FROM product_locations
		WHERE product_type = $1 AND product_id = $2
		ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, productType, productID)
	if err != nil {
		return nil, fmt.Errorf("list product locations by product: %w", err)
	}
	return r.scanAll(rows)
}

// TotalQuantity suma las existencias de una referencia en todas las cajas.
func (r *ProductLocationRepo) TotalQuantity(productType, productID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM product_locations
		WHERE product_type = $1 AND product_id = $2`
	var total decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, productType, productID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("total quantity: %w", err)
	}
	return total, nil
}

// ListByLocationAndProductForUpdate bloquea las existencias de una referencia en
// todas las cajas de una tienda, ordenadas por antigüedad (FIFO de facturación).
// FOR UPDATE OF pl bloquea solo las filas de product_locations, no las cajas.
func (r *ProductLocationRepo) ListByLocationAndProductForUpdate(locationID, productType, productID string) ([]*entity.ProductLocation, error) {
	query := `
		SELECT pl.id, pl.storage_object_id, pl.product_type, pl.product_id, pl.quantity, pl.created_at, pl.updated_at
		FROM product_locations pl
		JOIN storage_objects so ON so.id = pl.storage_object_id
		WHERE so.location_id = $1 AND pl.product_type = $2 AND pl.product_id = $3
		ORDER BY pl.created_at
		FOR UPDATE OF pl`
	rows, err := r.q.Query(context.Background(), query, locationID, productType, productID)
	if err != nil {
		return nil, fmt.Errorf("list product locations by location for update: %w", err)
	}
	return r.scanAll(rows)
}

// CountByStorageObject cuenta las referencias distintas guardadas en una caja.
func (r *ProductLocationRepo) CountByStorageObject(storageObjectID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM product_locations WHERE storage_object_id = $1`, storageObjectID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count product locations: %w", err)
	}
	return count, nil
}

// Delete elimina una asociación (cuando la cantidad llega a cero).
func (r *ProductLocationRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM product_locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product location: %w", err)
	}
	return nil
}

func (r *ProductLocationRepo) scanOne(row pgx.Row) (*entity.ProductLocation, error) {
	var pl entity.ProductLocation
	err := row.Scan(
		&pl.ID, &pl.StorageObjectID, &pl.ProductType, &pl.ProductID, &pl.Quantity,
		&pl.CreatedAt, &pl.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product location: %w", err)
	}
	return &pl, nil
}

func (r *ProductLocationRepo) scanAll(rows pgx.Rows) ([]*entity.ProductLocation, error) {
	defer rows.Close()
	var list []*entity.ProductLocation
	for rows.Next() {
		var pl entity.ProductLocation
		if err := rows.Scan(
			&pl.ID, &pl.StorageObjectID, &pl.ProductType, &pl.ProductID, &pl.Quantity,
			&pl.CreatedAt, &pl.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product location: %w", err)
		}
		list = append(list, &pl)
	}
	return list, rows.Err()
}
