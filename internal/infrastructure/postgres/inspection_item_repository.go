package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

var _ repository.InspectionItemRepository = (*InspectionItemRepo)(nil)

const inspectionItemColumns = `
	id, certificate_id, item_description, specifications, unit,
	tendered_quantity, delivered_quantity, accepted_quantity, rejected_quantity, unit_price,
	stock_register_no, stock_register_page_no, stock_entry_date,
	is_item_linked, linked_item_id, linked_by, linked_at,
	central_register_no, central_register_page_no,
	batch_number, manufacture_date, expiry_date, manufacturer, brand, model,
	serial_number, warranty_months, minimum_stock_level, reorder_level,
	created_at, updated_at`

// InspectionItemRepo implementación del puerto sobre PostgreSQL (usable con pool o tx).
type InspectionItemRepo struct {
	q Querier
}

// NewInspectionItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInspectionItemRepository(q Querier) *InspectionItemRepo {
	return &InspectionItemRepo{q: q}
}

// Create persiste una línea del certificado.
func (r *InspectionItemRepo) Create(item *entity.InspectionItem) error {
	query := `
		INSERT INTO inspection_items (` + inspectionItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
		        $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.CertificateID, item.ItemDescription, item.Specifications, item.Unit,
		item.TenderedQuantity, item.DeliveredQuantity, item.AcceptedQuantity, item.RejectedQuantity, item.UnitPrice,
		item.StockRegisterNo, item.StockRegisterPageNo, item.StockEntryDate,
		item.IsItemLinked, nullIfEmpty(item.LinkedItemID), item.LinkedBy, item.LinkedAt,
		item.CentralRegisterNo, item.CentralRegisterPageNo,
		item.BatchNumber, item.ManufactureDate, item.ExpiryDate, item.Manufacturer, item.Brand, item.Model,
		item.SerialNumber, item.WarrantyMonths, item.MinimumStockLevel, item.ReorderLevel,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inspection item: %w", err)
	}
	return nil
}

// GetByID obtiene una línea por ID.
func (r *InspectionItemRepo) GetByID(id string) (*entity.InspectionItem, error) {
	query := `SELECT ` + inspectionItemColumns + ` FROM inspection_items WHERE id = $1`
	item, err := scanInspectionItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inspection item: %w", err)
	}
	return item, nil
}

// Update actualiza una línea completa (cantidades, registros, estado de vinculación y atributos).
func (r *InspectionItemRepo) Update(item *entity.InspectionItem) error {
	query := `
		UPDATE inspection_items SET
			delivered_quantity = $2, accepted_quantity = $3, rejected_quantity = $4, unit_price = $5,
			stock_register_no = $6, stock_register_page_no = $7, stock_entry_date = $8,
			is_item_linked = $9, linked_item_id = $10, linked_by = $11, linked_at = $12,
			central_register_no = $13, central_register_page_no = $14,
			batch_number = $15, manufacture_date = $16, expiry_date = $17, manufacturer = $18,
			brand = $19, model = $20, serial_number = $21, warranty_months = $22,
			minimum_stock_level = $23, reorder_level = $24, updated_at = $25
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID,
		item.DeliveredQuantity, item.AcceptedQuantity, item.RejectedQuantity, item.UnitPrice,
		item.StockRegisterNo, item.StockRegisterPageNo, item.StockEntryDate,
		item.IsItemLinked, nullIfEmpty(item.LinkedItemID), item.LinkedBy, item.LinkedAt,
		item.CentralRegisterNo, item.CentralRegisterPageNo,
		item.BatchNumber, item.ManufactureDate, item.ExpiryDate, item.Manufacturer,
		item.Brand, item.Model, item.SerialNumber, item.WarrantyMonths,
		item.MinimumStockLevel, item.ReorderLevel, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update inspection item: %w", err)
	}
	return nil
}

// ListByCertificate lista las líneas del certificado en orden de creación.
func (r *InspectionItemRepo) ListByCertificate(certificateID string) ([]*entity.InspectionItem, error) {
	query := `SELECT ` + inspectionItemColumns + `
		FROM inspection_items WHERE certificate_id = $1 ORDER BY created_at, id`
	return r.list(query, certificateID)
}

// ListByCertificateForUpdate bloquea las líneas (SELECT FOR UPDATE): el resumen de
// vinculación y la puerta de etapa 3 leen un snapshot que no corre contra links en vuelo.
func (r *InspectionItemRepo) ListByCertificateForUpdate(certificateID string) ([]*entity.InspectionItem, error) {
	query := `SELECT ` + inspectionItemColumns + `
		FROM inspection_items WHERE certificate_id = $1 ORDER BY created_at, id FOR UPDATE`
	return r.list(query, certificateID)
}

// CountLinksToItem cuenta líneas de OTROS certificados vinculadas al ítem de catálogo
// (chequeo referencial del cleanup de rechazo).
func (r *InspectionItemRepo) CountLinksToItem(catalogItemID, excludeCertificateID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM inspection_items WHERE linked_item_id = $1 AND certificate_id <> $2`,
		catalogItemID, excludeCertificateID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count links to item: %w", err)
	}
	return n, nil
}

func (r *InspectionItemRepo) list(query, certificateID string) ([]*entity.InspectionItem, error) {
	rows, err := r.q.Query(context.Background(), query, certificateID)
	if err != nil {
		return nil, fmt.Errorf("list inspection items: %w", err)
	}
	defer rows.Close()

	var out []*entity.InspectionItem
	for rows.Next() {
		item, err := scanInspectionItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inspection item: %w", err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func scanInspectionItem(row pgx.Row) (*entity.InspectionItem, error) {
	var i entity.InspectionItem
	var linkedItemID *string
	err := row.Scan(
		&i.ID, &i.CertificateID, &i.ItemDescription, &i.Specifications, &i.Unit,
		&i.TenderedQuantity, &i.DeliveredQuantity, &i.AcceptedQuantity, &i.RejectedQuantity, &i.UnitPrice,
		&i.StockRegisterNo, &i.StockRegisterPageNo, &i.StockEntryDate,
		&i.IsItemLinked, &linkedItemID, &i.LinkedBy, &i.LinkedAt,
		&i.CentralRegisterNo, &i.CentralRegisterPageNo,
		&i.BatchNumber, &i.ManufactureDate, &i.ExpiryDate, &i.Manufacturer, &i.Brand, &i.Model,
		&i.SerialNumber, &i.WarrantyMonths, &i.MinimumStockLevel, &i.ReorderLevel,
		&i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if linkedItemID != nil {
		i.LinkedItemID = *linkedItemID
	}
	return &i, nil
}

// nullIfEmpty convierte "" en NULL para columnas FK nullables.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
