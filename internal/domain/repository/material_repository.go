package repository

import "github.com/jhoicas/joyeria-pos/internal/domain/entity"

// MaterialRepository define el puerto de persistencia para Material/materia prima (DIP).
type MaterialRepository interface {
	Create(material *entity.Material) error
	GetByID(id string) (*entity.Material, error)
	GetByCode(code string) (*entity.Material, error)
	Update(material *entity.Material) error
	List(limit, offset int) ([]*entity.Material, error)
	Delete(id string) error
}
