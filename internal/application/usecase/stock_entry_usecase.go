package usecase

import (
	"github.com/jhoicas/Activos-api/internal/domain"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

// StockEntryUseCase consultas de recibos de stock (solo lectura: los recibos se crean
// únicamente al aprobar un certificado, dentro de la transacción del motor de flujo).
type StockEntryUseCase struct {
	stockRepo repository.StockEntryRepository
}

// NewStockEntryUseCase construye el caso de uso.
func NewStockEntryUseCase(stockRepo repository.StockEntryRepository) *StockEntryUseCase {
	return &StockEntryUseCase{stockRepo: stockRepo}
}

// List lista recibos por ítem de catálogo o por certificado de origen.
func (uc *StockEntryUseCase) List(itemID, certificateID string, limit, offset int) ([]*entity.StockEntry, error) {
	switch {
	case itemID != "":
		return uc.stockRepo.ListByItem(itemID, limit, offset)
	case certificateID != "":
		return uc.stockRepo.ListByCertificate(certificateID)
	default:
		return nil, domain.ErrInvalidInput
	}
}
