package repository

import "github.com/jhoicas/Activos-api/internal/domain/entity"

// ItemRepository define el puerto de persistencia para el catálogo de ítems (DIP).
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	GetByCode(code string) (*entity.Item, error)
	Update(item *entity.Item) error
	// Search busca por nombre/código normalizado (sin acentos, case-insensitive).
	Search(query string, limit int) ([]*entity.Item, error)
	ListByCategory(categoryID string, limit, offset int) ([]*entity.Item, error)
	List(limit, offset int) ([]*entity.Item, error)
	// ListCreatedByCertificate devuelve los ítems con procedencia de este certificado.
	ListCreatedByCertificate(certificateID string) ([]*entity.Item, error)
	Delete(id string) error
}
