package entity

import "time"

// Tipos de seguimiento de inventario.
const (
	TrackingIndividual = "INDIVIDUAL" // serializado / QR
	TrackingBulk       = "BULK"       // cantidad agregada
	TrackingBatch      = "BATCH"      // lote + vencimiento, FIFO
)

// Category representa una categoría de catálogo. Las categorías amplias (raíz, ParentID vacío)
// solo agrupan; únicamente las subcategorías pueden anclar ítems de catálogo. Las subcategorías
// heredan el TrackingType de su categoría amplia.
type Category struct {
	ID           string
	ParentID     string // vacío si es categoría amplia (raíz)
	Name         string
	Code         string // código único
	TrackingType string // INDIVIDUAL | BULK | BATCH

	// Depreciación: solo aplica cuando el tracking heredado es INDIVIDUAL.
	DepreciationRate   *float64
	DepreciationMethod string

	// Procedencia: si la subcategoría fue creada durante la vinculación de un certificado,
	// guarda su ID para que el rechazo pueda limpiarla (nunca borra categorías preexistentes).
	CreatedByCertificateID string

	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBroader indica si es una categoría amplia (raíz de la jerarquía).
func (c *Category) IsBroader() bool {
	return c.ParentID == ""
}
