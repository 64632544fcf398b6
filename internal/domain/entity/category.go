package entity

import "time"

// Category representa una categoría de productos (jerárquica opcional).
type Category struct {
	ID        string
	ParentID  string // vacío si es raíz
	Name      string
	Code      string // código único
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
