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

var _ repository.StorageTypeRepository = (*StorageTypeRepo)(nil)

const storageTypeColumns = `id, location_id, code, name, capacity, position, created_at, updated_at`

// StorageTypeRepo implementación del puerto StorageTypeRepository sobre PostgreSQL.
type StorageTypeRepo struct {
	q Querier
}

// NewStorageTypeRepository construye el adaptador de persistencia para estantes.
func NewStorageTypeRepository(q Querier) *StorageTypeRepo {
	return &StorageTypeRepo{q: q}
}

// Create persiste un nuevo estante.
func (r *StorageTypeRepo) Create(st *entity.StorageType) error {
	query := `
		INSERT INTO storage_types (id, location_id, code, name, capacity, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		st.ID, st.LocationID, st.Code, st.Name, st.Capacity, st.Position, st.CreatedAt, st.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCode
		}
		return fmt.Errorf("insert storage type: %w", err)
	}
	return nil
}

// GetByID obtiene un estante por ID.
func (r *StorageTypeRepo) GetByID(id string) (*entity.StorageType, error) {
	query := `SELECT ` + storageTypeColumns + ` FROM storage_types WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByLocationAndCode busca por código case-insensitive dentro de la ubicación.
func (r *StorageTypeRepo) GetByLocationAndCode(locationID, code string) (*entity.StorageType, error) {
	query := `SELECT ` + storageTypeColumns + `
		FROM storage_types WHERE location_id = $1 AND lower(code) = lower($2)`
	return r.scanOne(r.q.QueryRow(context.Background(), query, locationID, code))
}

// Update actualiza nombre, capacidad y posición. El código no cambia.
func (r *StorageTypeRepo) Update(st *entity.StorageType) error {
	query := `
		UPDATE storage_types SET name = $2, capacity = $3, position = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, st.ID, st.Name, st.Capacity, st.Position, st.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update storage type: %w", err)
	}
	return nil
}

// UpdatePosition cambia solo la coordenada de orden (reordenamiento masivo).
func (r *StorageTypeRepo) UpdatePosition(id string, position int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE storage_types SET position = $2, updated_at = now() WHERE id = $1`,
		id, position,
	)
	if err != nil {
		return fmt.Errorf("update storage type position: %w", err)
	}
	return nil
}

// ListByLocation lista los estantes de una tienda ordenados por posición.
func (r *StorageTypeRepo) ListByLocation(locationID string, limit, offset int) ([]*entity.StorageType, error) {
	query := `SELECT ` + storageTypeColumns + `
		FROM storage_types WHERE location_id = $1
		ORDER BY position, created_at LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, locationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list storage types: %w", err)
	}
	defer rows.Close()
	var list []*entity.StorageType
	for rows.Next() {
		var st entity.StorageType
		if err := rows.Scan(&st.ID, &st.LocationID, &st.Code, &st.Name, &st.Capacity, &st.Position, &st.CreatedAt, &st.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan storage type: %w", err)
		}
		list = append(list, &st)
	}
	return list, rows.Err()
}

// CodeFields devuelve códigos y nombres de los estantes de la ubicación,
// insumo del generador de códigos y de la validación de unicidad.
func (r *StorageTypeRepo) CodeFields(locationID string) (codes, names []string, err error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT code, name FROM storage_types WHERE location_id = $1`, locationID)
	if err != nil {
		return nil, nil, fmt.Errorf("storage type code fields: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var code, name string
		if err := rows.Scan(&code, &name); err != nil {
			return nil, nil, fmt.Errorf("scan code fields: %w", err)
		}
		codes = append(codes, code)
		names = append(names, name)
	}
	return codes, names, rows.Err()
}

// CountByLocation cuenta los estantes de una tienda.
func (r *StorageTypeRepo) CountByLocation(locationID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM storage_types WHERE location_id = $1`, locationID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count storage types: %w", err)
	}
	return count, nil
}

// Delete elimina un estante por ID.
func (r *StorageTypeRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM storage_types WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete storage type: %w", err)
	}
	return nil
}

func (r *StorageTypeRepo) scanOne(row pgx.Row) (*entity.StorageType, error) {
	var st entity.StorageType
	err := row.Scan(&st.ID, &st.LocationID, &st.Code, &st.Name, &st.Capacity, &st.Position, &st.CreatedAt, &st.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get storage type: %w", err)
	}
	return &st, nil
}
