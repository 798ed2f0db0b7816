package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InspectionItem es una línea del certificado de inspección. Las cantidades son enteras
// (unidades físicas); el precio unitario es decimal y puede ser nulo.
// Invariante: AcceptedQuantity + RejectedQuantity <= TenderedQuantity.
type InspectionItem struct {
	ID            string
	CertificateID string

	ItemDescription string
	Specifications  string
	Unit            string

	TenderedQuantity  int64
	DeliveredQuantity int64
	AcceptedQuantity  int64
	RejectedQuantity  int64

	UnitPrice *decimal.Decimal

	// Etapa 2: registro de almacén (obligatorios si AcceptedQuantity > 0 al pasar a registro central)
	StockRegisterNo     string
	StockRegisterPageNo string
	StockEntryDate      *time.Time

	// Etapa 3: vinculación y registro central
	IsItemLinked          bool
	LinkedItemID          string // ID del ítem de catálogo; vacío si no vinculado
	LinkedBy              string
	LinkedAt              *time.Time
	CentralRegisterNo     string
	CentralRegisterPageNo string

	// Atributos por tipo de seguimiento del ítem de catálogo vinculado.
	// Solo se pobla el subconjunto que aplica al tracking type (registro a nivel de instancia,
	// no sobre el ítem de catálogo).
	BatchNumber       string
	ManufactureDate   *time.Time
	ExpiryDate        *time.Time
	Manufacturer      string
	Brand             string
	Model             string
	SerialNumber      string
	WarrantyMonths    *int
	MinimumStockLevel *int64
	ReorderLevel      *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// QuantityInvariantOK verifica aceptada + rechazada <= licitada y no-negatividad.
func (i *InspectionItem) QuantityInvariantOK() bool {
	if i.TenderedQuantity < 0 || i.DeliveredQuantity < 0 || i.AcceptedQuantity < 0 || i.RejectedQuantity < 0 {
		return false
	}
	return i.AcceptedQuantity+i.RejectedQuantity <= i.TenderedQuantity
}

// ClearLink limpia el estado de vinculación (usado por unlink; no borra el ítem de catálogo).
func (i *InspectionItem) ClearLink() {
	i.IsItemLinked = false
	i.LinkedItemID = ""
	i.LinkedBy = ""
	i.LinkedAt = nil
}
