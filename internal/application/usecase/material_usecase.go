package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/joyeria-pos/internal/application/dto"
	"github.com/jhoicas/joyeria-pos/internal/domain"
	"github.com/jhoicas/joyeria-pos/internal/domain/entity"
	"github.com/jhoicas/joyeria-pos/internal/domain/repository"
	"github.com/jhoicas/joyeria-pos/pkg/pos"
)

// MaterialUseCase casos de uso CRUD para materias primas (oro en bruto,
// piedras, cadenas por metro). Su costo maestro se administra aquí, no por
// movimientos.
type MaterialUseCase struct {
	repo repository.MaterialRepository
}

// NewMaterialUseCase construye el caso de uso.
func NewMaterialUseCase(repo repository.MaterialRepository) *MaterialUseCase {
	return &MaterialUseCase{repo: repo}
}

// Create crea una materia prima con código único.
func (uc *MaterialUseCase) Create(in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	existing, _ := uc.repo.GetByCode(in.Code)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if !pos.ValidMeasurementUnitCodes[in.Unit] {
		return nil, domain.ErrInvalidInput
	}
	if in.Cost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	material := &entity.Material{
		ID:        uuid.New().String(),
		Code:      in.Code,
		Name:      in.Name,
		Unit:      in.Unit,
		Cost:      in.Cost,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(material); err != nil {
		return nil, err
	}
	return toMaterialResponse(material), nil
}

// GetByID obtiene una materia prima por ID.
func (uc *MaterialUseCase) GetByID(id string) (*dto.MaterialResponse, error) {
	material, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, nil
	}
	return toMaterialResponse(material), nil
}

// Update actualiza una materia prima.
func (uc *MaterialUseCase) Update(id string, in dto.UpdateMaterialRequest) (*dto.MaterialResponse, error) {
	material, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, nil
	}
	if in.Name != nil {
		material.Name = *in.Name
	}
	if in.Unit != nil {
		if !pos.ValidMeasurementUnitCodes[*in.Unit] {
			return nil, domain.ErrInvalidInput
		}
		material.Unit = *in.Unit
	}
	if in.Cost != nil {
		if in.Cost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		material.Cost = *in.Cost
	}
	material.UpdatedAt = time.Now()
	if err := uc.repo.Update(material); err != nil {
		return nil, err
	}
	return toMaterialResponse(material), nil
}

// List lista materias primas con paginación.
func (uc *MaterialUseCase) List(page dto.PageRequest) (*dto.MaterialListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MaterialResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMaterialResponse(m))
	}
	return &dto.MaterialListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina una materia prima por ID.
func (uc *MaterialUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toMaterialResponse(m *entity.Material) *dto.MaterialResponse {
	if m == nil {
		return nil
	}
	return &dto.MaterialResponse{
		ID:        m.ID,
		Code:      m.Code,
		Name:      m.Name,
		Unit:      m.Unit,
		Cost:      m.Cost,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
