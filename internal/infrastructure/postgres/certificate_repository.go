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

var _ repository.CertificateRepository = (*CertificateRepo)(nil)

const certificateColumns = `
	id, contract_no, contract_date, contractor_name, contractor_address,
	consignee_name, consignee_designation, department_id, indenter, indent_no,
	date_of_delivery, delivery_type, inspected_by, date_of_inspection, finance_check_date,
	remarks, stage, status, workflow_type, rejection_reason, rejected_by,
	created_by, created_at, updated_at`

// CertificateRepo implementación del puerto CertificateRepository sobre PostgreSQL (usable con pool o tx).
type CertificateRepo struct {
	q Querier
}

// NewCertificateRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCertificateRepository(q Querier) *CertificateRepo {
	return &CertificateRepo{q: q}
}

// Create persiste la cabecera del certificado.
func (r *CertificateRepo) Create(cert *entity.InspectionCertificate) error {
	query := `
		INSERT INTO inspection_certificates (` + certificateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)`
	_, err := r.q.Exec(context.Background(), query,
		cert.ID, cert.ContractNo, cert.ContractDate, cert.ContractorName, cert.ContractorAddress,
		cert.ConsigneeName, cert.ConsigneeDesignation, cert.DepartmentID, cert.Indenter, cert.IndentNo,
		cert.DateOfDelivery, cert.DeliveryType, cert.InspectedBy, cert.DateOfInspection, cert.FinanceCheckDate,
		cert.Remarks, cert.Stage, cert.Status, cert.WorkflowType, cert.RejectionReason, cert.RejectedBy,
		cert.CreatedBy, cert.CreatedAt, cert.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert certificate: %w", err)
	}
	return nil
}

// GetByID obtiene un certificado por ID (sin líneas).
func (r *CertificateRepo) GetByID(id string) (*entity.InspectionCertificate, error) {
	query := `SELECT ` + certificateColumns + ` FROM inspection_certificates WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get certificate")
}

// GetByContractNo obtiene un certificado por su clave de negocio.
func (r *CertificateRepo) GetByContractNo(contractNo string) (*entity.InspectionCertificate, error) {
	query := `SELECT ` + certificateColumns + ` FROM inspection_certificates WHERE contract_no = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, contractNo), "get certificate by contract_no")
}

// GetByIDForUpdate bloquea la fila (SELECT FOR UPDATE) para serializar transiciones concurrentes.
func (r *CertificateRepo) GetByIDForUpdate(id string) (*entity.InspectionCertificate, error) {
	query := `SELECT ` + certificateColumns + ` FROM inspection_certificates WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "lock certificate")
}

// Update actualiza la cabecera. No toca stage/status (eso pasa por AdvanceStage/MarkRejected).
func (r *CertificateRepo) Update(cert *entity.InspectionCertificate) error {
	query := `
		UPDATE inspection_certificates SET
			contractor_name = $2, contractor_address = $3, consignee_name = $4,
			consignee_designation = $5, indenter = $6, indent_no = $7,
			date_of_delivery = $8, delivery_type = $9, inspected_by = $10,
			date_of_inspection = $11, finance_check_date = $12, remarks = $13, updated_at = $14
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		cert.ID, cert.ContractorName, cert.ContractorAddress, cert.ConsigneeName,
		cert.ConsigneeDesignation, cert.Indenter, cert.IndentNo,
		cert.DateOfDelivery, cert.DeliveryType, cert.InspectedBy,
		cert.DateOfInspection, cert.FinanceCheckDate, cert.Remarks, cert.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update certificate: %w", err)
	}
	return nil
}

// AdvanceStage aplica el chequeo optimista: UPDATE ... WHERE stage = expectedStage.
// Devuelve false (0 filas) si otro actor ya movió el certificado.
func (r *CertificateRepo) AdvanceStage(id, expectedStage, newStage, newStatus string) (bool, error) {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE inspection_certificates SET stage = $3, status = $4, updated_at = now()
		 WHERE id = $1 AND stage = $2`,
		id, expectedStage, newStage, newStatus,
	)
	if err != nil {
		return false, fmt.Errorf("advance stage: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// MarkRejected registra el salto terminal a REJECTED con motivo y actor (mismo chequeo optimista).
func (r *CertificateRepo) MarkRejected(id, expectedStage, reason, rejectedBy string) (bool, error) {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE inspection_certificates
		 SET stage = $3, status = $4, rejection_reason = $5, rejected_by = $6, updated_at = now()
		 WHERE id = $1 AND stage = $2`,
		id, expectedStage, entity.StageRejected, entity.StatusCancelled, reason, rejectedBy,
	)
	if err != nil {
		return false, fmt.Errorf("mark rejected: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// ListByDepartment lista certificados de una dependencia con paginación.
func (r *CertificateRepo) ListByDepartment(departmentID string, limit, offset int) ([]*entity.InspectionCertificate, error) {
	query := `SELECT ` + certificateColumns + `
		FROM inspection_certificates WHERE department_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, departmentID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list certificates by department: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// List lista todos los certificados con paginación.
func (r *CertificateRepo) List(limit, offset int) ([]*entity.InspectionCertificate, error) {
	query := `SELECT ` + certificateColumns + `
		FROM inspection_certificates ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list certificates: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

func (r *CertificateRepo) scanOne(row pgx.Row, op string) (*entity.InspectionCertificate, error) {
	var c entity.InspectionCertificate
	err := row.Scan(
		&c.ID, &c.ContractNo, &c.ContractDate, &c.ContractorName, &c.ContractorAddress,
		&c.ConsigneeName, &c.ConsigneeDesignation, &c.DepartmentID, &c.Indenter, &c.IndentNo,
		&c.DateOfDelivery, &c.DeliveryType, &c.InspectedBy, &c.DateOfInspection, &c.FinanceCheckDate,
		&c.Remarks, &c.Stage, &c.Status, &c.WorkflowType, &c.RejectionReason, &c.RejectedBy,
		&c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &c, nil
}

func (r *CertificateRepo) scanAll(rows pgx.Rows) ([]*entity.InspectionCertificate, error) {
	var out []*entity.InspectionCertificate
	for rows.Next() {
		var c entity.InspectionCertificate
		err := rows.Scan(
			&c.ID, &c.ContractNo, &c.ContractDate, &c.ContractorName, &c.ContractorAddress,
			&c.ConsigneeName, &c.ConsigneeDesignation, &c.DepartmentID, &c.Indenter, &c.IndentNo,
			&c.DateOfDelivery, &c.DeliveryType, &c.InspectedBy, &c.DateOfInspection, &c.FinanceCheckDate,
			&c.Remarks, &c.Stage, &c.Status, &c.WorkflowType, &c.RejectionReason, &c.RejectedBy,
			&c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan certificate: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}
