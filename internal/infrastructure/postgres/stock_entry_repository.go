package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

var _ repository.StockEntryRepository = (*StockEntryRepo)(nil)

// StockEntryRepo implementación del puerto StockEntryRepository sobre PostgreSQL.
type StockEntryRepo struct {
	q Querier
}

// NewStockEntryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockEntryRepository(q Querier) *StockEntryRepo {
	return &StockEntryRepo{q: q}
}

const stockEntryColumns = `id, item_id, location_id, source_certificate_id, inspection_item_id,
	quantity, unit_price, created_at, created_by`

// Create persiste un recibo de stock.
func (r *StockEntryRepo) Create(entry *entity.StockEntry) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO stock_entries (`+stockEntryColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		entry.ID, entry.ItemID, entry.LocationID, entry.SourceCertificateID, entry.InspectionItemID,
		entry.Quantity, entry.UnitPrice, entry.CreatedAt, entry.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert stock entry: %w", err)
	}
	return nil
}

// ListByItem lista los recibos de un ítem de catálogo, los más recientes primero.
func (r *StockEntryRepo) ListByItem(itemID string, limit, offset int) ([]*entity.StockEntry, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+stockEntryColumns+` FROM stock_entries
		 WHERE item_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		itemID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list stock entries by item: %w", err)
	}
	return scanStockEntries(rows)
}

// ListByCertificate lista los recibos materializados por un certificado.
func (r *StockEntryRepo) ListByCertificate(certificateID string) ([]*entity.StockEntry, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+stockEntryColumns+` FROM stock_entries
		 WHERE source_certificate_id = $1 ORDER BY created_at`,
		certificateID,
	)
	if err != nil {
		return nil, fmt.Errorf("list stock entries by certificate: %w", err)
	}
	return scanStockEntries(rows)
}

// CountByItem cuenta los recibos de un ítem de catálogo.
func (r *StockEntryRepo) CountByItem(itemID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM stock_entries WHERE item_id = $1`, itemID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count stock entries: %w", err)
	}
	return count, nil
}

func scanStockEntries(rows pgx.Rows) ([]*entity.StockEntry, error) {
	defer rows.Close()
	var out []*entity.StockEntry
	for rows.Next() {
		var e entity.StockEntry
		if err := rows.Scan(
			&e.ID, &e.ItemID, &e.LocationID, &e.SourceCertificateID, &e.InspectionItemID,
			&e.Quantity, &e.UnitPrice, &e.CreatedAt, &e.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan stock entry: %w", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}
