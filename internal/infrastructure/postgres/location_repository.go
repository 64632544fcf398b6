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

var _ repository.LocationRepository = (*LocationRepo)(nil)

const locationColumns = `id, code, name, address, city, phone, latitude, longitude, status, created_at, updated_at`

// LocationRepo implementación del puerto LocationRepository sobre PostgreSQL.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador de persistencia para tiendas.
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

// Create persiste una nueva tienda.
func (r *LocationRepo) Create(location *entity.Location) error {
	query := `
		INSERT INTO locations (id, code, name, address, city, phone, latitude, longitude, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		location.ID, location.Code, location.Name, location.Address, location.City,
		location.Phone, location.Latitude, location.Longitude, location.Status,
		location.CreatedAt, location.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCode
		}
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

// GetByID obtiene una tienda por ID.
func (r *LocationRepo) GetByID(id string) (*entity.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByCode obtiene una tienda por código, sin distinguir mayúsculas.
func (r *LocationRepo) GetByCode(code string) (*entity.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE lower(code) = lower($1)`
	return r.scanOne(r.q.QueryRow(context.Background(), query, code))
}

// Update actualiza una tienda. El código no cambia.
func (r *LocationRepo) Update(location *entity.Location) error {
	query := `
		UPDATE locations SET name = $2, address = $3, city = $4, phone = $5,
			latitude = $6, longitude = $7, status = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		location.ID, location.Name, location.Address, location.City, location.Phone,
		location.Latitude, location.Longitude, location.Status, location.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update location: %w", err)
	}
	return nil
}

// List lista tiendas con paginación.
func (r *LocationRepo) List(limit, offset int) ([]*entity.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	return r.scanMany(rows)
}

// ListActive devuelve las tiendas activas para el localizador público.
func (r *LocationRepo) ListActive(city string) ([]*entity.Location, error) {
	query := `SELECT ` + locationColumns + `
		FROM locations
		WHERE status = 'active' AND ($1 = '' OR lower(city) = lower($1))
		ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, city)
	if err != nil {
		return nil, fmt.Errorf("list active locations: %w", err)
	}
	return r.scanMany(rows)
}

// Delete elimina una tienda por ID.
func (r *LocationRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete location: %w", err)
	}
	return nil
}

func (r *LocationRepo) scanOne(row pgx.Row) (*entity.Location, error) {
	var l entity.Location
	err := row.Scan(
		&l.ID, &l.Code, &l.Name, &l.Address, &l.City, &l.Phone,
		&l.Latitude, &l.Longitude, &l.Status, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &l, nil
}

func (r *LocationRepo) scanMany(rows pgx.Rows) ([]*entity.Location, error) {
	defer rows.Close()
	var list []*entity.Location
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(
			&l.ID, &l.Code, &l.Name, &l.Address, &l.City, &l.Phone,
			&l.Latitude, &l.Longitude, &l.Status, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
