package repository

import "github.com/jhoicas/joyeria-pos/internal/domain/entity"

// StorageTypeRepository define el puerto de persistencia para StorageType/estante (DIP).
type StorageTypeRepository interface {
	Create(st *entity.StorageType) error
	GetByID(id string) (*entity.StorageType, error)
	// GetByLocationAndCode busca por código case-insensitive dentro de la ubicación.
	GetByLocationAndCode(locationID, code string) (*entity.StorageType, error)
	Update(st *entity.StorageType) error
	// UpdatePosition cambia solo la coordenada de orden (usado por el reordenamiento masivo).
	UpdatePosition(id string, position int) error
	ListByLocation(locationID string, limit, offset int) ([]*entity.StorageType, error)
	// CodeFields devuelve códigos y nombres de los estantes de la ubicación,
	// insumo del generador de códigos y de la validación de unicidad.
	CodeFields(locationID string) (codes, names []string, err error)
	CountByLocation(locationID string) (int, error)
	Delete(id string) error
}
