package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockEntry es el recibo de stock materializado al aprobar un certificado:
// una entrada por cada ítem de inspección vinculado, en la ubicación resuelta del
// ítem de catálogo. Es el único efecto externo del motor de flujo.
type StockEntry struct {
	ID                  string
	ItemID              string // ítem de catálogo
	LocationID          string
	SourceCertificateID string
	InspectionItemID    string
	Quantity            int64
	UnitPrice           *decimal.Decimal
	CreatedAt           time.Time
	CreatedBy           string
}
