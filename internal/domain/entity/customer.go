package entity

import "time"

// Customer representa un cliente de la joyería (facturación).
type Customer struct {
	ID        string
	Name      string
	TaxID     string // NIT o Cédula (Colombia)
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
