package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/joyeria-pos/internal/domain"
	"github.com/jhoicas/joyeria-pos/internal/domain/entity"
	"github.com/jhoicas/joyeria-pos/internal/domain/repository"
)

var _ repository.StorageObjectRepository = (*StorageObjectRepo)(nil)

const storageObjectColumns = `id, storage_type_id, code, label, capacity, created_at, updated_at`

// StorageObjectRepo implementación del puerto StorageObjectRepository sobre
// PostgreSQL. La tabla lleva location_id denormalizado desde el estante padre
// (el código de caja es único por tienda): este repo lo mantiene al crear y al
// mover la caja, sin que el dominio lo vea.
type StorageObjectRepo struct {
	q Querier
}

// NewStorageObjectRepository construye el adaptador de persistencia para cajas.
func NewStorageObjectRepository(q Querier) *StorageObjectRepo {
	return &StorageObjectRepo{q: q}
}

// Create persiste una nueva caja, resolviendo la tienda desde el estante.
func (r *StorageObjectRepo) Create(obj *entity.StorageObject) error {
	query := `
		INSERT INTO storage_objects (id, storage_type_id, location_id, code, label, capacity, created_at, updated_at)
		VALUES ($1, $2, (SELECT location_id FROM storage_types WHERE id = $2), $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		obj.ID, obj.StorageTypeID, obj.Code, obj.Label, obj.Capacity, obj.CreatedAt, obj.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCode
		}
		return fmt.Errorf("insert storage object: %w", err)
	}
	return nil
}

// GetByID obtiene una caja por ID.
func (r *StorageObjectRepo) GetByID(id string) (*entity.StorageObject, error) {
	query := `SELECT ` + storageObjectColumns + ` FROM storage_objects WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// Update actualiza etiqueta y capacidad. Código y estante no cambian por aquí.
func (r *StorageObjectRepo) Update(obj *entity.StorageObject) error {
	query := `UPDATE storage_objects SET label = $2, capacity = $3, updated_at = $4 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, obj.ID, obj.Label, obj.Capacity, obj.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update storage object: %w", err)
	}
	return nil
}

// UpdateParent re-asigna la caja a otro estante y refresca la tienda denormalizada.
func (r *StorageObjectRepo) UpdateParent(id, storageTypeID string) error {
	query := `
		UPDATE storage_objects
		SET storage_type_id = $2,
		    location_id = (SELECT location_id FROM storage_types WHERE id = $2),
		    updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, storageTypeID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCode
		}
		return fmt.Errorf("move storage object: %w", err)
	}
	return nil
}

// ListByStorageType lista las cajas de un estante.
func (r *StorageObjectRepo) ListByStorageType(storageTypeID string, limit, offset int) ([]*entity.StorageObject, error) {
	query := `SELECT ` + storageObjectColumns + `
		FROM storage_objects WHERE storage_type_id = $1
		ORDER BY created_at LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, storageTypeID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list storage objects: %w", err)
	}
	defer rows.Close()
	var list []*entity.StorageObject
	for rows.Next() {
		var obj entity.StorageObject
		if err := rows.Scan(&obj.ID, &obj.StorageTypeID, &obj.Code, &obj.Label, &obj.Capacity, &obj.CreatedAt, &obj.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan storage object: %w", err)
		}
		list = append(list, &obj)
	}
	return list, rows.Err()
}

// CodeFieldsByLocation devuelve códigos y etiquetas de todas las cajas de la tienda.
func (r *StorageObjectRepo) CodeFieldsByLocation(locationID string) (codes, labels []string, err error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT code, label FROM storage_objects WHERE location_id = $1`, locationID)
	if err != nil {
		return nil, nil, fmt.Errorf("storage object code fields: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var code, label string
		if err := rows.Scan(&code, &label); err != nil {
			return nil, nil, fmt.Errorf("scan code fields: %w", err)
		}
		codes = append(codes, code)
		labels = append(labels, label)
	}
	return codes, labels, rows.Err()
}

// FirstByLocation devuelve la caja más antigua de la tienda; nil si no hay.
func (r *StorageObjectRepo) FirstByLocation(locationID string) (*entity.StorageObject, error) {
	query := `SELECT ` + storageObjectColumns + `
		FROM storage_objects WHERE location_id = $1
		ORDER BY created_at LIMIT 1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, locationID))
}

// CountByStorageType cuenta las cajas de un estante.
func (r *StorageObjectRepo) CountByStorageType(storageTypeID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM storage_objects WHERE storage_type_id = $1`, storageTypeID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count storage objects: %w", err)
	}
	return count, nil
}

// LockCodeScope serializa generación y validación de códigos de la tienda con
// un advisory lock de alcance transacción: dos altas masivas concurrentes
// sobre la misma tienda se ordenan, sin bloquear tiendas distintas.
func (r *StorageObjectRepo) LockCodeScope(locationID string) error {
	_, err := r.q.Exec(context.Background(),
		`SELECT pg_advisory_xact_lock(hashtext('storage_codes:' || $1))`, locationID)
	if err != nil {
		return fmt.Errorf("lock code scope: %w", err)
	}
	return nil
}

// Delete elimina una caja por ID.
func (r *StorageObjectRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM storage_objects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete storage object: %w", err)
	}
	return nil
}

func (r *StorageObjectRepo) scanOne(row pgx.Row) (*entity.StorageObject, error) {
	var obj entity.StorageObject
	err := row.Scan(&obj.ID, &obj.StorageTypeID, &obj.Code, &obj.Label, &obj.Capacity, &obj.CreatedAt, &obj.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get storage object: %w", err)
	}
	return &obj, nil
}
