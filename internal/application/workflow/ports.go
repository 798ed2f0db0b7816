package workflow

import (
	"context"

	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Cada transición de etapa es una unidad atómica: validación, mutación
// de líneas, mutación de etapa y efectos (entradas de stock / cleanup) comparten commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		certRepo repository.CertificateRepository,
		itemRepo repository.InspectionItemRepository,
		catalogRepo repository.ItemRepository,
		categoryRepo repository.CategoryRepository,
		stockRepo repository.StockEntryRepository,
	) error) error
}
