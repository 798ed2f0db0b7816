package entity

import "time"

// Etapas del flujo de aprobación de un certificado de inspección.
const (
	StageInitiated       = "INITIATED"
	StageStockDetails    = "STOCK_DETAILS"
	StageCentralRegister = "CENTRAL_REGISTER"
	StageAuditReview     = "AUDIT_REVIEW"
	StageCompleted       = "COMPLETED"
	StageRejected        = "REJECTED"
)

// Estado administrativo del certificado.
const (
	StatusDraft      = "DRAFT"
	StatusInProgress = "IN_PROGRESS"
	StatusConfirmed  = "CONFIRMED"
	StatusCompleted  = "COMPLETED"
	StatusCancelled  = "CANCELLED"
)

// Tipo de flujo: 3 etapas si la dependencia es raíz (se omite STOCK_DETAILS), 4 si no.
// Se calcula una sola vez al crear el certificado y no cambia aunque la jerarquía
// organizacional cambie después.
const (
	WorkflowThreeStage = "THREE_STAGE"
	WorkflowFourStage  = "FOUR_STAGE"
)

// Tipo de entrega declarada en el contrato.
const (
	DeliveryFull = "FULL"
	DeliveryPart = "PART"
)

// InspectionCertificate es la raíz del agregado: documento que acompaña una entrega
// desde la recepción inicial hasta la aprobación (o rechazo). Es dueño de sus ítems
// (composición: se destruyen con el certificado).
type InspectionCertificate struct {
	ID           string
	ContractNo   string // clave de negocio única
	ContractDate time.Time

	ContractorName      string
	ContractorAddress   string
	ConsigneeName       string
	ConsigneeDesignation string
	DepartmentID        string
	Indenter            string
	IndentNo            string
	DateOfDelivery      *time.Time
	DeliveryType        string // FULL | PART
	InspectedBy         string
	DateOfInspection    *time.Time
	FinanceCheckDate    *time.Time
	Remarks             string

	Stage           string
	Status          string
	WorkflowType    string // THREE_STAGE | FOUR_STAGE
	RejectionReason string
	RejectedBy      string

	Items []*InspectionItem

	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal indica si el certificado ya no admite mutaciones.
func (c *InspectionCertificate) IsTerminal() bool {
	return c.Stage == StageCompleted || c.Stage == StageRejected
}
