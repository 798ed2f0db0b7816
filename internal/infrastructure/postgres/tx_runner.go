package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Activos-api/internal/application/workflow"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

// Ensure TxRunner implements workflow.TxRunner.
var _ workflow.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. Cada transición del
// motor de flujo corre completa dentro de un Run: commit si todo ok, rollback si algo falla.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	certRepo repository.CertificateRepository,
	itemRepo repository.InspectionItemRepository,
	catalogRepo repository.ItemRepository,
	categoryRepo repository.CategoryRepository,
	stockRepo repository.StockEntryRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	certRepo := NewCertificateRepository(tx)
	itemRepo := NewInspectionItemRepository(tx)
	catalogRepo := NewItemRepository(tx)
	categoryRepo := NewCategoryRepository(tx)
	stockRepo := NewStockEntryRepository(tx)

	if err := fn(certRepo, itemRepo, catalogRepo, categoryRepo, stockRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
