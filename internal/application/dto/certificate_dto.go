package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCertificateRequest borrador de certificado con sus líneas.
type CreateCertificateRequest struct {
	ContractNo           string     `json:"contract_no"`
	ContractDate         *time.Time `json:"contract_date"`
	ContractorName       string     `json:"contractor_name"`
	ContractorAddress    string     `json:"contractor_address"`
	ConsigneeName        string     `json:"consignee_name"`
	ConsigneeDesignation string     `json:"consignee_designation"`
	DepartmentID         string     `json:"department_id"`
	Indenter             string     `json:"indenter"`
	IndentNo             string     `json:"indent_no"`
	DateOfDelivery       *time.Time `json:"date_of_delivery"`
	DeliveryType         string     `json:"delivery_type"` // FULL | PART
	InspectedBy          string     `json:"inspected_by"`
	DateOfInspection     *time.Time `json:"date_of_inspection"`
	FinanceCheckDate     *time.Time `json:"finance_check_date"`
	Remarks              string     `json:"remarks"`

	Items []CertificateItemRequest `json:"items"`
}

// CertificateItemRequest línea del borrador.
type CertificateItemRequest struct {
	ItemDescription   string           `json:"item_description"`
	Specifications    string           `json:"specifications"`
	Unit              string           `json:"unit"`
	TenderedQuantity  int64            `json:"tendered_quantity"`
	DeliveredQuantity int64            `json:"delivered_quantity"`
	AcceptedQuantity  int64            `json:"accepted_quantity"`
	RejectedQuantity  int64            `json:"rejected_quantity"`
	UnitPrice         *decimal.Decimal `json:"unit_price"`
}

// PatchCertificateRequest actualización parcial de cabecera y líneas (solo etapas no terminales).
// Punteros nil = campo no tocado.
type PatchCertificateRequest struct {
	ContractorName       *string    `json:"contractor_name"`
	ContractorAddress    *string    `json:"contractor_address"`
	ConsigneeName        *string    `json:"consignee_name"`
	ConsigneeDesignation *string    `json:"consignee_designation"`
	Indenter             *string    `json:"indenter"`
	IndentNo             *string    `json:"indent_no"`
	DateOfDelivery       *time.Time `json:"date_of_delivery"`
	DeliveryType         *string    `json:"delivery_type"`
	InspectedBy          *string    `json:"inspected_by"`
	DateOfInspection     *time.Time `json:"date_of_inspection"`
	FinanceCheckDate     *time.Time `json:"finance_check_date"`
	Remarks              *string    `json:"remarks"`

	Items []PatchItemRequest `json:"items"`
}

// PatchItemRequest actualización parcial de una línea existente.
type PatchItemRequest struct {
	ID                string           `json:"id"`
	DeliveredQuantity *int64           `json:"delivered_quantity"`
	AcceptedQuantity  *int64           `json:"accepted_quantity"`
	RejectedQuantity  *int64           `json:"rejected_quantity"`
	UnitPrice         *decimal.Decimal `json:"unit_price"`
}

// StockDetailsRequest datos de registro de almacén por línea (etapa STOCK_DETAILS).
type StockDetailsRequest struct {
	Items []StockDetailsItem `json:"items"`
}

// StockDetailsItem registro de almacén de una línea.
type StockDetailsItem struct {
	ID                  string     `json:"id"`
	StockRegisterNo     string     `json:"stock_register_no"`
	StockRegisterPageNo string     `json:"stock_register_page_no"`
	StockEntryDate      *time.Time `json:"stock_entry_date"`
}

// RejectRequest motivo del rechazo (obligatorio).
type RejectRequest struct {
	Reason string `json:"reason"`
}

// RejectionReport resultado del cleanup de rechazo: qué entidades de catálogo creadas
// para este certificado se eliminaron y qué no pudo eliminarse (con advertencia).
type RejectionReport struct {
	DeletedItems      []string `json:"deleted_items"`      // nombres de ítems de catálogo eliminados
	DeletedCategories []string `json:"deleted_categories"` // nombres de subcategorías eliminadas
	Warnings          []string `json:"warnings"`
}
