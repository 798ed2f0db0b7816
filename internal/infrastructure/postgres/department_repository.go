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

var _ repository.DepartmentRepository = (*DepartmentRepo)(nil)

// DepartmentRepo implementación del puerto DepartmentRepository sobre PostgreSQL.
type DepartmentRepo struct {
	q Querier
}

// NewDepartmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDepartmentRepository(q Querier) *DepartmentRepo {
	return &DepartmentRepo{q: q}
}

// Create persiste una dependencia.
func (r *DepartmentRepo) Create(dept *entity.Department) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO departments (id, parent_id, name, code, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		dept.ID, nullIfEmpty(dept.ParentID), dept.Name, dept.Code, dept.CreatedAt, dept.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert department: %w", err)
	}
	return nil
}

// GetByID obtiene una dependencia por ID.
func (r *DepartmentRepo) GetByID(id string) (*entity.Department, error) {
	var d entity.Department
	var parentID *string
	err := r.q.QueryRow(context.Background(),
		`SELECT id, parent_id, name, code, created_at, updated_at FROM departments WHERE id = $1`, id,
	).Scan(&d.ID, &parentID, &d.Name, &d.Code, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get department: %w", err)
	}
	if parentID != nil {
		d.ParentID = *parentID
	}
	return &d, nil
}

// List lista todas las dependencias.
func (r *DepartmentRepo) List() ([]*entity.Department, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, parent_id, name, code, created_at, updated_at FROM departments ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	defer rows.Close()

	var out []*entity.Department
	for rows.Next() {
		var d entity.Department
		var parentID *string
		if err := rows.Scan(&d.ID, &parentID, &d.Name, &d.Code, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan department: %w", err)
		}
		if parentID != nil {
			d.ParentID = *parentID
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implementación del puerto LocationRepository sobre PostgreSQL.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

// Create persiste una ubicación.
func (r *LocationRepo) Create(loc *entity.Location) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO locations (id, department_id, name, code, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		loc.ID, loc.DepartmentID, loc.Name, loc.Code, loc.CreatedAt, loc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

// GetByID obtiene una ubicación por ID.
func (r *LocationRepo) GetByID(id string) (*entity.Location, error) {
	var l entity.Location
	err := r.q.QueryRow(context.Background(),
		`SELECT id, department_id, name, code, created_at, updated_at FROM locations WHERE id = $1`, id,
	).Scan(&l.ID, &l.DepartmentID, &l.Name, &l.Code, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &l, nil
}

// List lista todas las ubicaciones.
func (r *LocationRepo) List() ([]*entity.Location, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, department_id, name, code, created_at, updated_at FROM locations ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	var out []*entity.Location
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(&l.ID, &l.DepartmentID, &l.Name, &l.Code, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}
