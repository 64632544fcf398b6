package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear una joya del catálogo.
type CreateProductRequest struct {
	SKU         string          `json:"sku" validate:"required,min=1,max=100"`
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description"`
	CategoryID  string          `json:"category_id" validate:"omitempty,uuid"`
	Material    string          `json:"material" validate:"required,oneof=gold silver platinum steel mixed"`
	Purity      string          `json:"purity"`
	WeightGrams decimal.Decimal `json:"weight_grams"`
	Price       decimal.Decimal `json:"price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	UnitMeasure string          `json:"unit_measure"`
	Attributes  json.RawMessage `json:"attributes"`
}

// UpdateProductRequest entrada para actualizar una joya (sin Cost: lo calculan los movimientos).
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description"`
	CategoryID  *string          `json:"category_id" validate:"omitempty,uuid"`
	Material    *string          `json:"material" validate:"omitempty,oneof=gold silver platinum steel mixed"`
	Purity      *string          `json:"purity"`
	WeightGrams *decimal.Decimal `json:"weight_grams"`
	Price       *decimal.Decimal `json:"price"`
	TaxRate     *decimal.Decimal `json:"tax_rate"`
	UnitMeasure *string          `json:"unit_measure"`
	Attributes  json.RawMessage  `json:"attributes"`
}

// ProductResponse salida de una joya.
type ProductResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	CategoryID  string          `json:"category_id,omitempty"`
	Material    string          `json:"material"`
	Purity      string          `json:"purity,omitempty"`
	WeightGrams decimal.Decimal `json:"weight_grams"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	UnitMeasure string          `json:"unit_measure"`
	Attributes  json.RawMessage `json:"attributes"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de joyas.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ── Categorías ───────────────────────────────────────────────────────────────

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	ParentID string `json:"parent_id" validate:"omitempty,uuid"`
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Code     string `json:"code" validate:"required,min=1,max=50"`
}

// UpdateCategoryRequest entrada para actualizar una categoría.
type UpdateCategoryRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=1,max=200"`
	Status *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID        string    `json:"id"`
	ParentID  string    `json:"parent_id,omitempty"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryListResponse lista paginada de categorías.
type CategoryListResponse struct {
	Items []CategoryResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ── Materias primas ──────────────────────────────────────────────────────────

// CreateMaterialRequest entrada para crear una materia prima.
type CreateMaterialRequest struct {
	Code string          `json:"code" validate:"required,min=1,max=50"`
	Name string          `json:"name" validate:"required,min=1,max=200"`
	Unit string          `json:"unit" validate:"required"`
	Cost decimal.Decimal `json:"cost"`
}

// UpdateMaterialRequest entrada para actualizar una materia prima.
type UpdateMaterialRequest struct {
	Name *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Unit *string          `json:"unit"`
	Cost *decimal.Decimal `json:"cost"`
}

// MaterialResponse salida de una materia prima.
type MaterialResponse struct {
	ID        string          `json:"id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	Cost      decimal.Decimal `json:"cost"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// MaterialListResponse lista paginada de materias primas.
type MaterialListResponse struct {
	Items []MaterialResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
