package entity

import "time"

// StorageObject representa una caja (box) dentro de un StorageType.
// El código es único por ubicación, no solo por estante: las cajas se mueven entre estantes.
type StorageObject struct {
	ID            string
	StorageTypeID string
	Code          string // único por ubicación (case-insensitive)
	Label         string
	Capacity      int // máximo de referencias distintas; 0 = sin límite
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
