package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Material representa una materia prima (oro en bruto, piedras, cadenas por metro).
// Se almacena en cajas igual que las joyas, con ProductType "material".
type Material struct {
	ID        string
	Code      string // único (case-insensitive)
	Name      string
	Unit      string // GRM, CTM, 94 (unidad)
	Cost      decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
