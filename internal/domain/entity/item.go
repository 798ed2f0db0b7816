package entity

import "time"

// Item representa un ítem del catálogo (anclado siempre a una subcategoría, de la que hereda
// el tipo de seguimiento). Se crea por administración del catálogo o durante la vinculación
// de un certificado en CENTRAL_REGISTER.
type Item struct {
	ID           string
	CategoryID   string
	Name         string
	Code         string // código único de catálogo
	Description  string
	TrackingType string // heredado vía categoría
	AcctUnit     string
	DefaultLocationID string

	// Procedencia: si fue creado específicamente para la vinculación de un certificado,
	// guarda su ID. El rechazo de ese certificado lo elimina solo si nada más lo referencia.
	CreatedByCertificateID string

	CreatedAt time.Time
	UpdatedAt time.Time
}
