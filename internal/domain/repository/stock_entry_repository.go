package repository

import "github.com/jhoicas/Activos-api/internal/domain/entity"

// StockEntryRepository define el puerto para recibos de stock materializados en la aprobación.
type StockEntryRepository interface {
	Create(entry *entity.StockEntry) error
	ListByItem(itemID string, limit, offset int) ([]*entity.StockEntry, error)
	ListByCertificate(certificateID string) ([]*entity.StockEntry, error)
	// CountByItem cuenta recibos del ítem de catálogo (chequeo referencial del cleanup).
	CountByItem(itemID string) (int, error)
}
