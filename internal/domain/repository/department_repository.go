package repository

import "github.com/jhoicas/Activos-api/internal/domain/entity"

// DepartmentRepository define el puerto para unidades organizacionales.
type DepartmentRepository interface {
	Create(dept *entity.Department) error
	GetByID(id string) (*entity.Department, error)
	List() ([]*entity.Department, error)
}

// LocationRepository define el puerto para ubicaciones físicas.
type LocationRepository interface {
	Create(loc *entity.Location) error
	GetByID(id string) (*entity.Location, error)
	List() ([]*entity.Location, error)
}
