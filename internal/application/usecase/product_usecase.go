package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/joyeria-pos/internal/application/dto"
	"github.com/jhoicas/joyeria-pos/internal/domain"
	"github.com/jhoicas/joyeria-pos/internal/domain/entity"
	"github.com/jhoicas/joyeria-pos/internal/domain/repository"
	"github.com/jhoicas/joyeria-pos/pkg/pos"
)

// ProductUseCase casos de uso CRUD para joyas del catálogo.
// Cost no se edita aquí: lo calculan los movimientos de inventario.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo}
}

// normalizeTaxRate acepta tarifa como fracción (0.19) o porcentaje (19) y
// devuelve la fracción canónica. IVA Colombia: 0, 5% o 19%.
func normalizeTaxRate(rate decimal.Decimal) (decimal.Decimal, error) {
	if rate.GreaterThan(decimal.NewFromInt(1)) {
		rate = rate.Div(decimal.NewFromInt(100))
	}
	for _, valid := range []decimal.Decimal{
		decimal.Zero,
		decimal.RequireFromString("0.05"),
		decimal.RequireFromString("0.19"),
	} {
		if rate.Equal(valid) {
			return valid, nil
		}
	}
	return decimal.Zero, domain.ErrInvalidInput
}

// Create crea una joya. Cost inicia en 0 y el SKU es único sin distinguir mayúsculas.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	existing, _ := uc.repo.GetBySKU(in.SKU)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	taxRate, err := normalizeTaxRate(in.TaxRate)
	if err != nil {
		return nil, err
	}
	if err := uc.validateCategory(in.CategoryID); err != nil {
		return nil, err
	}
	if in.WeightGrams.IsNegative() || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitMeasure == "" {
		in.UnitMeasure = pos.UnitUnit
	}
	if !pos.ValidMeasurementUnitCodes[in.UnitMeasure] {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		CategoryID:  in.CategoryID,
		Material:    in.Material,
		Purity:      in.Purity,
		WeightGrams: in.WeightGrams,
		Price:       in.Price,
		Cost:        decimal.Zero,
		TaxRate:     taxRate,
		UnitMeasure: in.UnitMeasure,
		Attributes:  in.Attributes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene una joya por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update actualiza una joya. No permite tocar SKU ni Cost.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.CategoryID != nil {
		if err := uc.validateCategory(*in.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = *in.CategoryID
	}
	if in.Material != nil {
		product.Material = *in.Material
	}
	if in.Purity != nil {
		product.Purity = *in.Purity
	}
	if in.WeightGrams != nil {
		if in.WeightGrams.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.WeightGrams = *in.WeightGrams
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.TaxRate != nil {
		taxRate, err := normalizeTaxRate(*in.TaxRate)
		if err != nil {
			return nil, err
		}
		product.TaxRate = taxRate
	}
	if in.UnitMeasure != nil {
		if !pos.ValidMeasurementUnitCodes[*in.UnitMeasure] {
			return nil, domain.ErrInvalidInput
		}
		product.UnitMeasure = *in.UnitMeasure
	}
	if len(in.Attributes) > 0 {
		product.Attributes = in.Attributes
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista joyas con paginación.
func (uc *ProductUseCase) List(page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return buildProductList(list, page), nil
}

// Search busca por texto en sku, nombre y descripción, ignorando tildes y
// mayúsculas. Consulta vacía devuelve ErrInvalidInput.
func (uc *ProductUseCase) Search(query string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	if query == "" {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	list, err := uc.repo.Search(query, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return buildProductList(list, page), nil
}

// Delete elimina una joya por ID.
func (uc *ProductUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func (uc *ProductUseCase) validateCategory(categoryID string) error {
	if categoryID == "" {
		return nil
	}
	category, err := uc.categoryRepo.GetByID(categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	return nil
}

func buildProductList(list []*entity.Product, page dto.PageRequest) *dto.ProductListResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		CategoryID:  p.CategoryID,
		Material:    p.Material,
		Purity:      p.Purity,
		WeightGrams: p.WeightGrams,
		Price:       p.Price,
		Cost:        p.Cost,
		TaxRate:     p.TaxRate,
		UnitMeasure: p.UnitMeasure,
		Attributes:  p.Attributes,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
