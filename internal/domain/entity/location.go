package entity

import "time"

// Location representa una ubicación física de almacenamiento (almacén, bodega, sala).
// Los ítems de catálogo tienen una ubicación por defecto donde se materializan las
// entradas de stock al aprobar un certificado.
type Location struct {
	ID           string
	DepartmentID string
	Name         string
	Code         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
