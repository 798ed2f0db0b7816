package usecase

import (
	"github.com/jhoicas/Activos-api/internal/domain"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

// DepartmentUseCase consultas de unidades organizacionales y ubicaciones.
type DepartmentUseCase struct {
	deptRepo repository.DepartmentRepository
	locRepo  repository.LocationRepository
}

// NewDepartmentUseCase construye el caso de uso.
func NewDepartmentUseCase(deptRepo repository.DepartmentRepository, locRepo repository.LocationRepository) *DepartmentUseCase {
	return &DepartmentUseCase{deptRepo: deptRepo, locRepo: locRepo}
}

// GetDepartment obtiene una dependencia por ID.
func (uc *DepartmentUseCase) GetDepartment(id string) (*entity.Department, error) {
	dept, err := uc.deptRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if dept == nil {
		return nil, domain.ErrNotFound
	}
	return dept, nil
}

// ListDepartments lista todas las dependencias.
func (uc *DepartmentUseCase) ListDepartments() ([]*entity.Department, error) {
	return uc.deptRepo.List()
}

// ListLocations lista todas las ubicaciones físicas.
func (uc *DepartmentUseCase) ListLocations() ([]*entity.Location, error) {
	return uc.locRepo.List()
}
