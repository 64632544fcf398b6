package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Materiales válidos para Product.
const (
	MaterialGold     = "gold"
	MaterialSilver   = "silver"
	MaterialPlatinum = "platinum"
	MaterialSteel    = "steel"
	MaterialMixed    = "mixed"
)

// Product representa una joya del catálogo (SKU único).
// Cost es promedio ponderado calculado desde movimientos; las cantidades viven
// por caja en ProductLocation.
type Product struct {
	ID          string
	SKU         string // código único (case-insensitive)
	Name        string
	Description string
	CategoryID  string
	Material    string          // gold, silver, platinum, steel, mixed
	Purity      string          // 18k, 24k, 925, 950...
	WeightGrams decimal.Decimal
	Price       decimal.Decimal // precio de venta
	Cost        decimal.Decimal // costo promedio ponderado (inicia en 0)
	TaxRate     decimal.Decimal // IVA Colombia: 0, 0.05 (5%), 0.19 (19%)
	UnitMeasure string
	Attributes  json.RawMessage
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
