package repository

import "github.com/jhoicas/joyeria-pos/internal/domain/entity"

// StorageObjectRepository define el puerto de persistencia para StorageObject/caja (DIP).
type StorageObjectRepository interface {
	Create(obj *entity.StorageObject) error
	GetByID(id string) (*entity.StorageObject, error)
	Update(obj *entity.StorageObject) error
	// UpdateParent re-asigna la caja a otro estante (endpoint move).
	UpdateParent(id, storageTypeID string) error
	ListByStorageType(storageTypeID string, limit, offset int) ([]*entity.StorageObject, error)
	// CodeFieldsByLocation devuelve códigos y etiquetas de todas las cajas de la
	// ubicación (los códigos de caja son únicos por ubicación, no por estante).
	CodeFieldsByLocation(locationID string) (codes, labels []string, err error)
	// FirstByLocation devuelve la caja más antigua de la ubicación; nil si no hay.
	FirstByLocation(locationID string) (*entity.StorageObject, error)
	CountByStorageType(storageTypeID string) (int, error)
	// LockCodeScope serializa generación y validación de códigos de la ubicación.
	// Solo tiene efecto dentro de una transacción (advisory lock de alcance tx).
	LockCodeScope(locationID string) error
	Delete(id string) error
}
