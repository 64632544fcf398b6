package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/joyeria-pos/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetBySKU busca por SKU case-insensitive.
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateCost(productID string, cost decimal.Decimal) error
	List(limit, offset int) ([]*entity.Product, error)
	// Search busca por texto normalizado (sin tildes, case-insensitive) en
	// sku, nombre y descripción.
	Search(query string, limit, offset int) ([]*entity.Product, error)
	Delete(id string) error
}
