package entity

import "time"

// Location representa una tienda o sucursal física de la joyería.
// Es la raíz de la jerarquía de almacenamiento: Location -> StorageType -> StorageObject.
type Location struct {
	ID        string
	Code      string // único global (case-insensitive)
	Name      string
	Address   string
	City      string
	Phone     string
	Latitude  float64
	Longitude float64
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
