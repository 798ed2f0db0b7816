package workflow_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/domain/workflow"
)

// ──────────────────────────────────────────────────────────────────────────────
// Campos obligatorios por tipo de seguimiento
// ──────────────────────────────────────────────────────────────────────────────

func TestRequiredLinkFields_PorTrackingType(t *testing.T) {
	assert.Equal(t,
		[]string{workflow.FieldBatchNumber, workflow.FieldExpiryDate, workflow.FieldManufactureDate, workflow.FieldManufacturer},
		workflow.RequiredLinkFields(entity.TrackingBatch, 5),
		"BATCH exige lote, vencimiento, fabricación y fabricante")

	assert.Equal(t,
		[]string{workflow.FieldBatchNumber, workflow.FieldManufacturer},
		workflow.RequiredLinkFields(entity.TrackingBulk, 5),
		"BULK exige lote y fabricante")

	assert.Equal(t,
		[]string{workflow.FieldBrand, workflow.FieldModel},
		workflow.RequiredLinkFields(entity.TrackingIndividual, 5),
		"INDIVIDUAL exige marca y modelo")
}

func TestRequiredLinkFields_LineaSoloRechazadaNoExigeNada(t *testing.T) {
	assert.Empty(t, workflow.RequiredLinkFields(entity.TrackingBatch, 0),
		"una línea con cantidad aceptada 0 no necesita metadatos de seguimiento")
}

func TestRequiredLinkFields_TrackingDesconocido(t *testing.T) {
	assert.Empty(t, workflow.RequiredLinkFields("RAREZA", 5))
}

// ──────────────────────────────────────────────────────────────────────────────
// Derivación de vencimiento
// ──────────────────────────────────────────────────────────────────────────────

func TestDeriveExpiry(t *testing.T) {
	fab := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
		workflow.DeriveExpiry(fab, 90))
}

func TestLinkAttributes_NormalizeDerivaVencimiento(t *testing.T) {
	fab := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	vida := 30
	attrs := workflow.LinkAttributes{ManufactureDate: &fab, ShelfLifeDays: &vida}

	attrs.Normalize()

	assert.NotNil(t, attrs.ExpiryDate)
	assert.Equal(t, time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), *attrs.ExpiryDate,
		"expiry_date debe derivarse como fabricación + vida útil")
}

func TestLinkAttributes_NormalizeRespetaVencimientoExplicito(t *testing.T) {
	fab := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	explicito := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	vida := 30
	attrs := workflow.LinkAttributes{ManufactureDate: &fab, ShelfLifeDays: &vida, ExpiryDate: &explicito}

	attrs.Normalize()

	assert.Equal(t, explicito, *attrs.ExpiryDate,
		"una fecha explícita del usuario nunca debe sobreescribirse con la derivada")
}

// ──────────────────────────────────────────────────────────────────────────────
// MissingFields: reporta TODOS los faltantes, no solo el primero
// ──────────────────────────────────────────────────────────────────────────────

func TestMissingFields_ReportaTodosLosFaltantes(t *testing.T) {
	attrs := workflow.LinkAttributes{BatchNumber: "L-001"}

	missing := attrs.MissingFields(entity.TrackingBatch, 10)

	assert.Equal(t,
		[]string{workflow.FieldExpiryDate, workflow.FieldManufactureDate, workflow.FieldManufacturer},
		missing, "deben reportarse los 3 campos faltantes en orden canónico")
}

func TestMissingFields_DerivacionSatisfaceVencimiento(t *testing.T) {
	fab := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	vida := 60
	attrs := workflow.LinkAttributes{
		BatchNumber:     "L-002",
		ManufactureDate: &fab,
		ShelfLifeDays:   &vida,
		Manufacturer:    "Laboratorios Andinos",
	}

	assert.Empty(t, attrs.MissingFields(entity.TrackingBatch, 10),
		"la derivación manufacture_date + shelf_life_days debe satisfacer expiry_date")
}

func TestMissingFields_CompletoParaIndividual(t *testing.T) {
	attrs := workflow.LinkAttributes{Brand: "Lenovo", Model: "ThinkPad T14"}
	assert.Empty(t, attrs.MissingFields(entity.TrackingIndividual, 1))
}

// ──────────────────────────────────────────────────────────────────────────────
// ApplyTo: copia del subconjunto poblado sobre la línea
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyTo_CopiaAtributosSobreLinea(t *testing.T) {
	garantia := 24
	attrs := workflow.LinkAttributes{
		Brand:          "Dell",
		Model:          "Latitude 5440",
		SerialNumber:   "SN-9931",
		WarrantyMonths: &garantia,
	}
	item := &entity.InspectionItem{ID: "li-1"}

	attrs.ApplyTo(item)

	assert.Equal(t, "Dell", item.Brand)
	assert.Equal(t, "Latitude 5440", item.Model)
	assert.Equal(t, "SN-9931", item.SerialNumber)
	assert.Equal(t, 24, *item.WarrantyMonths)
	assert.Empty(t, item.BatchNumber, "los campos no poblados quedan vacíos")
}
