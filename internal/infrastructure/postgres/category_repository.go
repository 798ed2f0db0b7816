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

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

const categoryColumns = `
	id, parent_id, name, code, tracking_type, depreciation_rate, depreciation_method,
	created_by_certificate_id, status, created_at, updated_at`

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL (usable con pool o tx).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una categoría (amplia o subcategoría).
func (r *CategoryRepo) Create(category *entity.Category) error {
	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		category.ID, nullIfEmpty(category.ParentID), category.Name, category.Code,
		category.TrackingType, category.DepreciationRate, category.DepreciationMethod,
		nullIfEmpty(category.CreatedByCertificateID), category.Status,
		category.CreatedAt, category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID.
func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get category")
}

// GetByCode obtiene una categoría por código.
func (r *CategoryRepo) GetByCode(code string) (*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE code = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, code), "get category by code")
}

// ListBroader lista categorías amplias (raíz).
func (r *CategoryRepo) ListBroader() ([]*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE parent_id IS NULL ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list broader categories: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// ListByParent lista subcategorías de una categoría amplia.
func (r *CategoryRepo) ListByParent(parentID string) ([]*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE parent_id = $1 ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, parentID)
	if err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// CountItems cuenta ítems de catálogo anclados a la categoría.
func (r *CategoryRepo) CountItems(categoryID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM catalog_items WHERE category_id = $1`, categoryID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count category items: %w", err)
	}
	return n, nil
}

// ListCreatedByCertificate devuelve las categorías con procedencia del certificado.
func (r *CategoryRepo) ListCreatedByCertificate(certificateID string) ([]*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE created_by_certificate_id = $1`
	rows, err := r.q.Query(context.Background(), query, certificateID)
	if err != nil {
		return nil, fmt.Errorf("list categories by certificate: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// Delete elimina una categoría.
func (r *CategoryRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) scanOne(row pgx.Row, op string) (*entity.Category, error) {
	cat, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return cat, nil
}

func (r *CategoryRepo) scanAll(rows pgx.Rows) ([]*entity.Category, error) {
	var out []*entity.Category
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, cat)
	}
	return out, rows.Err()
}

func scanCategory(row pgx.Row) (*entity.Category, error) {
	var c entity.Category
	var parentID, createdByCert *string
	err := row.Scan(
		&c.ID, &parentID, &c.Name, &c.Code, &c.TrackingType,
		&c.DepreciationRate, &c.DepreciationMethod, &createdByCert, &c.Status,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if parentID != nil {
		c.ParentID = *parentID
	}
	if createdByCert != nil {
		c.CreatedByCertificateID = *createdByCert
	}
	return &c, nil
}
