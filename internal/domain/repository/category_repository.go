package repository

import "github.com/jhoicas/Activos-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	GetByCode(code string) (*entity.Category, error)
	ListBroader() ([]*entity.Category, error)
	ListByParent(parentID string) ([]*entity.Category, error)
	// CountItems cuenta ítems de catálogo anclados a la categoría (chequeo referencial
	// del cleanup de rechazo: una categoría con ítems restantes no se borra).
	CountItems(categoryID string) (int, error)
	ListCreatedByCertificate(certificateID string) ([]*entity.Category, error)
	Delete(id string) error
}
