package repository

import "github.com/jhoicas/joyeria-pos/internal/domain/entity"

// LocationRepository define el puerto de persistencia para Location (DIP).
type LocationRepository interface {
	Create(location *entity.Location) error
	GetByID(id string) (*entity.Location, error)
	// GetByCode busca por código case-insensitive.
	GetByCode(code string) (*entity.Location, error)
	Update(location *entity.Location) error
	List(limit, offset int) ([]*entity.Location, error)
	// ListActive devuelve las tiendas activas para el localizador público;
	// city vacío = todas las ciudades.
	ListActive(city string) ([]*entity.Location, error)
	Delete(id string) error
}
