package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Activos-api/internal/domain"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `
	id, category_id, name, code, description, tracking_type, acct_unit,
	default_location_id, created_by_certificate_id, created_at, updated_at`

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de catálogo. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un ítem de catálogo.
func (r *ItemRepo) Create(item *entity.Item) error {
	query := `
		INSERT INTO catalog_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.CategoryID, item.Name, item.Code, item.Description, item.TrackingType,
		item.AcctUnit, nullIfEmpty(item.DefaultLocationID), nullIfEmpty(item.CreatedByCertificateID),
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert catalog item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por ID.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM catalog_items WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get catalog item")
}

// GetByCode obtiene un ítem por código de catálogo.
func (r *ItemRepo) GetByCode(code string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM catalog_items WHERE code = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, code), "get catalog item by code")
}

// Update actualiza un ítem de catálogo.
func (r *ItemRepo) Update(item *entity.Item) error {
	query := `
		UPDATE catalog_items SET name = $2, description = $3, acct_unit = $4,
			default_location_id = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Description, item.AcctUnit,
		nullIfEmpty(item.DefaultLocationID), item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update catalog item: %w", err)
	}
	return nil
}

// Search busca por nombre o código, insensible a mayúsculas y acentos. Usa la columna
// generada name_normalized (unaccent + lower) para poder indexar la búsqueda.
func (r *ItemRepo) Search(query string, limit int) ([]*entity.Item, error) {
	normalized := "%" + normalizeSearch(query) + "%"
	sql := `SELECT ` + itemColumns + `
		FROM catalog_items
		WHERE name_normalized LIKE $1 OR lower(code) LIKE $1
		ORDER BY name LIMIT $2`
	rows, err := r.q.Query(context.Background(), sql, normalized, limit)
	if err != nil {
		return nil, fmt.Errorf("search catalog items: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// ListByCategory lista ítems de una categoría con paginación.
func (r *ItemRepo) ListByCategory(categoryID string, limit, offset int) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + `
		FROM catalog_items WHERE category_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, categoryID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list catalog items by category: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// List lista el catálogo con paginación.
func (r *ItemRepo) List(limit, offset int) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM catalog_items ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list catalog items: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// ListCreatedByCertificate devuelve los ítems con procedencia de este certificado
// (insumo del cleanup de rechazo).
func (r *ItemRepo) ListCreatedByCertificate(certificateID string) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM catalog_items WHERE created_by_certificate_id = $1`
	rows, err := r.q.Query(context.Background(), query, certificateID)
	if err != nil {
		return nil, fmt.Errorf("list catalog items by certificate: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// Delete elimina un ítem de catálogo.
func (r *ItemRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM catalog_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete catalog item: %w", err)
	}
	return nil
}

func (r *ItemRepo) scanOne(row pgx.Row, op string) (*entity.Item, error) {
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return item, nil
}

func (r *ItemRepo) scanAll(rows pgx.Rows) ([]*entity.Item, error) {
	var out []*entity.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan catalog item: %w", err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	var i entity.Item
	var defaultLocationID, createdByCert *string
	err := row.Scan(
		&i.ID, &i.CategoryID, &i.Name, &i.Code, &i.Description, &i.TrackingType, &i.AcctUnit,
		&defaultLocationID, &createdByCert, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if defaultLocationID != nil {
		i.DefaultLocationID = *defaultLocationID
	}
	if createdByCert != nil {
		i.CreatedByCertificateID = *createdByCert
	}
	return &i, nil
}
