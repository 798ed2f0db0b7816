package repository

import "github.com/jhoicas/Activos-api/internal/domain/entity"

// CertificateRepository define el puerto de persistencia para la cabecera del certificado (DIP).
type CertificateRepository interface {
	Create(cert *entity.InspectionCertificate) error
	GetByID(id string) (*entity.InspectionCertificate, error)
	GetByContractNo(contractNo string) (*entity.InspectionCertificate, error)
	// GetByIDForUpdate bloquea la fila del certificado (SELECT FOR UPDATE) para serializar
	// transiciones concurrentes dentro de una transacción.
	GetByIDForUpdate(id string) (*entity.InspectionCertificate, error)
	Update(cert *entity.InspectionCertificate) error
	// AdvanceStage aplica UPDATE ... WHERE stage = expectedStage (chequeo optimista).
	// Devuelve false si la fila ya no estaba en expectedStage (lectura obsoleta).
	AdvanceStage(id, expectedStage, newStage, newStatus string) (bool, error)
	// MarkRejected registra el salto terminal a REJECTED con motivo y actor.
	MarkRejected(id, expectedStage, reason, rejectedBy string) (bool, error)
	ListByDepartment(departmentID string, limit, offset int) ([]*entity.InspectionCertificate, error)
	List(limit, offset int) ([]*entity.InspectionCertificate, error)
}
