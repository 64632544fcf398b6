package entity

import "time"

// StorageType representa un estante (shelf) dentro de una Location.
// Position es la coordenada de orden dentro del plano de la tienda.
type StorageType struct {
	ID         string
	LocationID string
	Code       string // único por ubicación (case-insensitive)
	Name       string
	Capacity   int // máximo de cajas; 0 = sin límite
	Position   int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
