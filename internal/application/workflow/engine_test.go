package workflow_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Activos-api/internal/application/dto"
	"github.com/jhoicas/Activos-api/internal/application/workflow"
	"github.com/jhoicas/Activos-api/internal/domain"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers: escenario base con dependencia, ubicación y catálogo poblados
// ──────────────────────────────────────────────────────────────────────────────

const (
	testUserID  = "usr-1"
	testAuditor = "usr-auditor"
)

func seedDepartments(h *harness) (root, child *entity.Department) {
	root = &entity.Department{ID: "dep-root", Name: "Dirección General", Code: "DG"}
	child = &entity.Department{ID: "dep-almacen", ParentID: "dep-root", Name: "Almacén Central", Code: "AC"}
	h.depts.Create(root)
	h.depts.Create(child)
	return root, child
}

func seedCatalog(h *harness) (cat *entity.Category, item *entity.Item) {
	broad := &entity.Category{ID: "cat-equip", Name: "Equipos", Code: "CAT-EQUIP", TrackingType: entity.TrackingIndividual, Status: "active"}
	cat = &entity.Category{ID: "cat-laptops", ParentID: "cat-equip", Name: "Portátiles", Code: "CAT-LAP", TrackingType: entity.TrackingIndividual, Status: "active"}
	h.cats.Create(broad)
	h.cats.Create(cat)
	h.locs.Create(&entity.Location{ID: "loc-1", DepartmentID: "dep-almacen", Name: "Bodega 1", Code: "B1"})
	item = &entity.Item{
		ID: "itm-laptop", CategoryID: cat.ID, Name: "Portátil institucional", Code: "LAP-001",
		TrackingType: entity.TrackingIndividual, DefaultLocationID: "loc-1",
	}
	h.catalog.Create(item)
	return cat, item
}

func completeRequest(deptID string) dto.CreateCertificateRequest {
	date := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	return dto.CreateCertificateRequest{
		ContractNo:           "CT-2026-001",
		ContractDate:         &date,
		ContractorName:       "Suministros del Sur S.A.",
		ConsigneeName:        "Jefatura de Almacén",
		ConsigneeDesignation: "Jefe de Almacén",
		DepartmentID:         deptID,
		Indenter:             "Oficina de Sistemas",
		IndentNo:             "IND-774",
		DeliveryType:         entity.DeliveryFull,
		Items: []dto.CertificateItemRequest{
			{ItemDescription: "Portátil 14 pulgadas", Unit: "und", TenderedQuantity: 10, DeliveredQuantity: 10, AcceptedQuantity: 8, RejectedQuantity: 2},
		},
	}
}

// linkFirstItem vincula la primera línea del certificado al ítem de catálogo dado.
func linkFirstItem(t *testing.T, h *harness, certID, catalogItemID string) {
	t.Helper()
	items, err := h.items.ListByCertificate(certID)
	require.NoError(t, err)
	require.NotEmpty(t, items)
	_, err = h.reconciler.LinkToExistingItem(context.Background(), certID, testUserID, dto.LinkToExistingRequest{
		InspectionItemID: items[0].ID,
		CatalogItemID:    catalogItemID,
		Attributes:       dto.LinkAttributesRequest{Brand: "Lenovo", Model: "ThinkPad T14"},
	})
	require.NoError(t, err, "la vinculación del escenario base no debe fallar")
}

// ──────────────────────────────────────────────────────────────────────────────
// Create: tipo de flujo, duplicados y cantidades
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_DependenciaHijaProduceFlujoCuatroEtapas(t *testing.T) {
	h := newHarness()
	seedDepartments(h)

	cert, err := h.engine.Create(context.Background(), testUserID, completeRequest("dep-almacen"))
	require.NoError(t, err)

	assert.Equal(t, entity.StageInitiated, cert.Stage)
	assert.Equal(t, entity.StatusDraft, cert.Status)
	assert.Equal(t, entity.WorkflowFourStage, cert.WorkflowType)
	assert.Len(t, cert.Items, 1)
}

func TestCreate_DependenciaRaizProduceFlujoTresEtapas(t *testing.T) {
	h := newHarness()
	seedDepartments(h)

	cert, err := h.engine.Create(context.Background(), testUserID, completeRequest("dep-root"))
	require.NoError(t, err)

	assert.Equal(t, entity.WorkflowThreeStage, cert.WorkflowType,
		"certificado de dependencia raíz debe omitir STOCK_DETAILS")
}

func TestCreate_ContratoDuplicado(t *testing.T) {
	h := newHarness()
	seedDepartments(h)

	_, err := h.engine.Create(context.Background(), testUserID, completeRequest("dep-almacen"))
	require.NoError(t, err)

	_, err = h.engine.Create(context.Background(), testUserID, completeRequest("dep-almacen"))
	assert.ErrorIs(t, err, domain.ErrDuplicate, "el número de contrato es clave de negocio única")
}

func TestCreate_InvarianteDeCantidades(t *testing.T) {
	h := newHarness()
	seedDepartments(h)

	in := completeRequest("dep-almacen")
	in.Items[0].AcceptedQuantity = 8
	in.Items[0].RejectedQuantity = 5 // 8 + 5 > 10 licitadas

	_, err := h.engine.Create(context.Background(), testUserID, in)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"items[0].quantities"}, vErr.Fields)
}

func TestCreate_DependenciaInexistente(t *testing.T) {
	h := newHarness()
	_, err := h.engine.Create(context.Background(), testUserID, completeRequest("dep-fantasma"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// SubmitToStockIncharge: validación completa de cabecera y salto de 3 etapas
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmit_ReportaTodosLosCamposFaltantes(t *testing.T) {
	h := newHarness()
	seedDepartments(h)

	in := completeRequest("dep-almacen")
	in.ContractorName = ""
	in.Indenter = ""
	in.IndentNo = ""
	in.ContractNo = "CT-2026-002"
	cert, err := h.engine.Create(context.Background(), testUserID, in)
	require.NoError(t, err)

	err = h.engine.SubmitToStockIncharge(context.Background(), cert.ID)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"contractor_name", "indenter", "indent_no"}, vErr.Fields,
		"deben reportarse TODOS los campos faltantes de una sola vez")
}

func TestSubmit_CuatroEtapasVaAStockDetails(t *testing.T) {
	h := newHarness()
	seedDepartments(h)
	cert, err := h.engine.Create(context.Background(), testUserID, completeRequest("dep-almacen"))
	require.NoError(t, err)

	require.NoError(t, h.engine.SubmitToStockIncharge(context.Background(), cert.ID))

	stored, _ := h.certs.GetByID(cert.ID)
	assert.Equal(t, entity.StageStockDetails, stored.Stage)
	assert.Equal(t, entity.StatusInProgress, stored.Status)
}

func TestSubmit_TresEtapasSaltaACentralRegister(t *testing.T) {
	h := newHarness()
	seedDepartments(h)
	cert, err := h.engine.Create(context.Background(), testUserID, completeRequest("dep-root"))
	require.NoError(t, err)

	require.NoError(t, h.engine.SubmitToStockIncharge(context.Background(), cert.ID))

	stored, _ := h.certs.GetByID(cert.ID)
	assert.Equal(t, entity.StageCentralRegister, stored.Stage,
		"dependencia raíz: INITIATED debe saltar directo a CENTRAL_REGISTER")
}

func TestSubmit_DobleEnvioConcurrentePierdeConConflict(t *testing.T) {
	h := newHarness()
	seedDepartments(h)
	cert, err := h.engine.Create(context.Background(), testUserID, completeRequest("dep-almacen"))
	require.NoError(t, err)

	require.NoError(t, h.engine.SubmitToStockIncharge(context.Background(), cert.ID))
	err = h.engine.SubmitToStockIncharge(context.Background(), cert.ID)

	assert.ErrorIs(t, err, domain.ErrConflict,
		"el segundo envío ve una etapa ya avanzada y debe perder con conflicto")
}

// ──────────────────────────────────────────────────────────────────────────────
// SubmitStockDetails: precondición por línea aceptada
// ──────────────────────────────────────────────────────────────────────────────

func TestStockDetails_FaltanCamposDeAlmacen(t *testing.T) {
	h := newHarness()
	seedDepartments(h)
	cert, _ := h.engine.Create(context.Background(), testUserID, completeRequest("dep-almacen"))
	require.NoError(t, h.engine.SubmitToStockIncharge(context.Background(), cert.ID))

	err := h.engine.SubmitStockDetails(context.Background(), cert.ID, dto.StockDetailsRequest{})

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Fields, 3, "faltan registro, página y fecha de la única línea aceptada")
}

func TestStockDetails_CompletoAvanzaACentralRegister(t *testing.T) {
	h := newHarness()
	seedDepartments(h)
	cert, _ := h.engine.Create(context.Background(), testUserID, completeRequest("dep-almacen"))
	require.NoError(t, h.engine.SubmitToStockIncharge(context.Background(), cert.ID))

	items, _ := h.items.ListByCertificate(cert.ID)
	entrada := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	err := h.engine.SubmitStockDetails(context.Background(), cert.ID, dto.StockDetailsRequest{
		Items: []dto.StockDetailsItem{
			{ID: items[0].ID, StockRegisterNo: "SR-12", StockRegisterPageNo: "45", StockEntryDate: &entrada},
		},
	})
	require.NoError(t, err)

	stored, _ := h.certs.GetByID(cert.ID)
	assert.Equal(t, entity.StageCentralRegister, stored.Stage)
}

func TestStockDetails_RechazadoEnFlujoTresEtapas(t *testing.T) {
	h := newHarness()
	seedDepartments(h)
	cert, _ := h.engine.Create(context.Background(), testUserID, completeRequest("dep-root"))
	require.NoError(t, h.engine.SubmitToStockIncharge(context.Background(), cert.ID))

	err := h.engine.SubmitStockDetails(context.Background(), cert.ID, dto.StockDetailsRequest{})
	assert.ErrorIs(t, err, domain.ErrConflict,
		"STOCK_DETAILS no es alcanzable en el flujo de 3 etapas")
}

// ──────────────────────────────────────────────────────────────────────────────
// SubmitCentralRegister: la puerta de vinculación
// ──────────────────────────────────────────────────────────────────────────────

// avanza un certificado de dependencia raíz hasta CENTRAL_REGISTER
func certAtCentralRegister(t *testing.T, h *harness) *entity.InspectionCertificate {
	t.Helper()
	cert, err := h.engine.Create(context.Background(), testUserID, completeRequest("dep-root"))
	require.NoError(t, err)
	require.NoError(t, h.engine.SubmitToStockIncharge(context.Background(), cert.ID))
	return cert
}

func TestCentralRegister_BloqueaConItemsSinVincular(t *testing.T) {
	h := newHarness()
	seedDepartments(h)
	seedCatalog(h)
	cert := certAtCentralRegister(t, h)

	err := h.engine.SubmitCentralRegister(context.Background(), cert.ID)

	var lErr *domain.LinkingIncompleteError
	require.ErrorAs(t, err, &lErr)
	assert.Equal(t, 1, lErr.UnlinkedCount)
	assert.Equal(t, []string{"Portátil 14 pulgadas"}, lErr.Examples)
	assert.NotEmpty(t, lErr.Hint, "el error debe traer pista de remediación")

	stored, _ := h.certs.GetByID(cert.ID)
	assert.Equal(t, entity.StageCentralRegister, stored.Stage, "la etapa no debe moverse")
}

func TestCentralRegister_CuentaSoloLasLineasPendientes(t *testing.T) {
	h := newHarness()
	seedDepartments(h)
	_, catalogItem := seedCatalog(h)

	in := completeRequest("dep-root")
	in.Items = append(in.Items, dto.CertificateItemRequest{
		ItemDescription: "Base refrigerante", Unit: "und",
		TenderedQuantity: 4, DeliveredQuantity: 4, AcceptedQuantity: 4,
	})
	cert, err := h.engine.Create(context.Background(), testUserID, in)
	require.NoError(t, err)
	require.NoError(t, h.engine.SubmitToStockIncharge(context.Background(), cert.ID))
	linkFirstItem(t, h, cert.ID, catalogItem.ID)

	err = h.engine.SubmitCentralRegister(context.Background(), cert.ID)

	var lErr *domain.LinkingIncompleteError
	require.ErrorAs(t, err, &lErr)
	assert.Equal(t, 1, lErr.UnlinkedCount, "solo la segunda línea sigue pendiente")
	assert.Equal(t, []string{"Base refrigerante"}, lErr.Examples)
}

func TestCentralRegister_AvanzaConTodoVinculado(t *testing.T) {
	h := newHarness()
	seedDepartments(h)
	_, catalogItem := seedCatalog(h)
	cert := certAtCentralRegister(t, h)
	linkFirstItem(t, h, cert.ID, catalogItem.ID)

	require.NoError(t, h.engine.SubmitCentralRegister(context.Background(), cert.ID))

	stored, _ := h.certs.GetByID(cert.ID)
	assert.Equal(t, entity.StageAuditReview, stored.Stage)
	assert.Equal(t, entity.StatusConfirmed, stored.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// SubmitAuditReview: aprobación y materialización de recibos de stock
// ──────────────────────────────────────────────────────────────────────────────

func certAtAuditReview(t *testing.T, h *harness, catalogItemID string) *entity.InspectionCertificate {
	t.Helper()
	cert := certAtCentralRegister(t, h)
	linkFirstItem(t, h, cert.ID, catalogItemID)
	require.NoError(t, h.engine.SubmitCentralRegister(context.Background(), cert.ID))
	return cert
}

func TestAuditReview_ApruebaYMaterializaStock(t *testing.T) {
	h := newHarness()
	seedDepartments(h)
	_, catalogItem := seedCatalog(h)
	cert := certAtAuditReview(t, h, catalogItem.ID)

	require.NoError(t, h.engine.SubmitAuditReview(context.Background(), cert.ID, testAuditor))

	stored, _ := h.certs.GetByID(cert.ID)
	assert.Equal(t, entity.StageCompleted, stored.Stage)
	assert.Equal(t, entity.StatusCompleted, stored.Status)

	entries, _ := h.stock.ListByCertificate(cert.ID)
	require.Len(t, entries, 1, "debe materializarse un recibo por línea aceptada")
	assert.Equal(t, catalogItem.ID, entries[0].ItemID)
	assert.Equal(t, "loc-1", entries[0].LocationID, "la ubicación se resuelve del ítem de catálogo")
	assert.Equal(t, int64(8), entries[0].Quantity, "el recibo lleva la cantidad aceptada, no la licitada")
	assert.Equal(t, testAuditor, entries[0].CreatedBy)
}

func TestAuditReview_FallaSinUbicacionPorDefecto(t *testing.T) {
	h := newHarness()
	seedDepartments(h)
	_, catalogItem := seedCatalog(h)
	catalogItem.DefaultLocationID = ""
	cert := certAtAuditReview(t, h, catalogItem.ID)

	err := h.engine.SubmitAuditReview(context.Background(), cert.ID, testAuditor)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	stored, _ := h.certs.GetByID(cert.ID)
	assert.Equal(t, entity.StageAuditReview, stored.Stage,
		"el certificado no debe quedar COMPLETED a medias")
}

// ──────────────────────────────────────────────────────────────────────────────
// Reject: salto terminal + cleanup por procedencia
// ──────────────────────────────────────────────────────────────────────────────

func TestReject_ExigeMotivo(t *testing.T) {
	h := newHarness()
	seedDepartments(h)
	cert, _ := h.engine.Create(context.Background(), testUserID, completeRequest("dep-almacen"))

	_, err := h.engine.Reject(context.Background(), cert.ID, testUserID, "")

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"reason"}, vErr.Fields)
}

func TestReject_DesdeEtapaIntermedia(t *testing.T) {
	h := newHarness()
	seedDepartments(h)
	cert, _ := h.engine.Create(context.Background(), testUserID, completeRequest("dep-almacen"))
	require.NoError(t, h.engine.SubmitToStockIncharge(context.Background(), cert.ID))

	report, err := h.engine.Reject(context.Background(), cert.ID, testUserID, "entrega incompleta")
	require.NoError(t, err)
	assert.Empty(t, report.DeletedItems)
	assert.Empty(t, report.Warnings)

	stored, _ := h.certs.GetByID(cert.ID)
	assert.Equal(t, entity.StageRejected, stored.Stage)
	assert.Equal(t, entity.StatusCancelled, stored.Status)
	assert.Equal(t, "entrega incompleta", stored.RejectionReason)
	assert.Equal(t, testUserID, stored.RejectedBy)

	// Las líneas del certificado se conservan como rastro de auditoría
	items, _ := h.items.ListByCertificate(cert.ID)
	assert.NotEmpty(t, items)
}

func TestReject_DobleRechazoBloqueado(t *testing.T) {
	h := newHarness()
	seedDepartments(h)
	cert, _ := h.engine.Create(context.Background(), testUserID, completeRequest("dep-almacen"))
	_, err := h.engine.Reject(context.Background(), cert.ID, testUserID, "motivo")
	require.NoError(t, err)

	_, err = h.engine.Reject(context.Background(), cert.ID, testUserID, "otra vez")

	var tErr *domain.TerminalStateError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, entity.StageRejected, tErr.Stage)
}

func TestReject_EliminaCatalogoConProcedenciaSinUso(t *testing.T) {
	h := newHarness()
	seedDepartments(h)
	seedCatalog(h)
	cert := certAtCentralRegister(t, h)

	// Crear ítem de catálogo al vuelo y vincularlo (queda con procedencia del certificado)
	items, _ := h.items.ListByCertificate(cert.ID)
	_, err := h.reconciler.CreateAndLinkItem(context.Background(), cert.ID, testUserID, dto.CreateAndLinkRequest{
		InspectionItemID: items[0].ID,
		Item: dto.NewItemDraft{
			CategoryID: "cat-laptops", Name: "Portátil nuevo modelo", Code: "LAP-099", DefaultLocationID: "loc-1",
		},
		Attributes: dto.LinkAttributesRequest{Brand: "HP", Model: "EliteBook 840"},
	})
	require.NoError(t, err)

	report, err := h.engine.Reject(context.Background(), cert.ID, testUserID, "lote defectuoso")
	require.NoError(t, err)

	assert.Equal(t, []string{"Portátil nuevo modelo"}, report.DeletedItems,
		"el ítem creado para este certificado debe eliminarse")
	created, _ := h.catalog.GetByCode("LAP-099")
	assert.Nil(t, created, "el ítem no debe quedar en el catálogo")
}

func TestReject_AdviertePeroNoBorraCatalogoEnUso(t *testing.T) {
	h := newHarness()
	seedDepartments(h)
	seedCatalog(h)
	cert := certAtCentralRegister(t, h)

	items, _ := h.items.ListByCertificate(cert.ID)
	_, err := h.reconciler.CreateAndLinkItem(context.Background(), cert.ID, testUserID, dto.CreateAndLinkRequest{
		InspectionItemID: items[0].ID,
		Item: dto.NewItemDraft{
			CategoryID: "cat-laptops", Name: "Portátil compartido", Code: "LAP-100", DefaultLocationID: "loc-1",
		},
		Attributes: dto.LinkAttributesRequest{Brand: "HP", Model: "EliteBook 840"},
	})
	require.NoError(t, err)

	// Otro certificado vincula el mismo ítem de catálogo
	compartido, _ := h.catalog.GetByCode("LAP-100")
	h.items.Create(&entity.InspectionItem{
		ID: "li-ajena", CertificateID: "cert-ajeno", AcceptedQuantity: 1,
		IsItemLinked: true, LinkedItemID: compartido.ID,
	})

	report, err := h.engine.Reject(context.Background(), cert.ID, testUserID, "lote defectuoso")
	require.NoError(t, err)

	assert.Empty(t, report.DeletedItems, "un ítem vinculado por otro certificado no se borra")
	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0], "Portátil compartido")
	sigue, _ := h.catalog.GetByCode("LAP-100")
	assert.NotNil(t, sigue)
}

func TestReject_EliminaSubcategoriaVacia(t *testing.T) {
	h := newHarness()
	seedDepartments(h)
	seedCatalog(h)
	cert := certAtCentralRegister(t, h)

	// Subcategoría creada al vuelo que queda sin ítems tras el cleanup
	_, err := h.reconciler.CreateSubCategory(context.Background(), cert.ID, dto.CreateSubCategoryRequest{
		ParentID: "cat-equip", Name: "Tabletas", Code: "CAT-TAB",
	})
	require.NoError(t, err)

	report, err := h.engine.Reject(context.Background(), cert.ID, testUserID, "pedido cancelado")
	require.NoError(t, err)

	assert.Equal(t, []string{"Tabletas"}, report.DeletedCategories)
	borrada, _ := h.cats.GetByCode("CAT-TAB")
	assert.Nil(t, borrada)
}

// ──────────────────────────────────────────────────────────────────────────────
// Patch: mutaciones bloqueadas en estados terminales
// ──────────────────────────────────────────────────────────────────────────────

func TestPatch_BloqueadoEnTerminal(t *testing.T) {
	h := newHarness()
	seedDepartments(h)
	cert, _ := h.engine.Create(context.Background(), testUserID, completeRequest("dep-almacen"))
	_, err := h.engine.Reject(context.Background(), cert.ID, testUserID, "motivo")
	require.NoError(t, err)

	nuevo := "Otro Contratista"
	_, err = h.engine.Patch(context.Background(), cert.ID, dto.PatchCertificateRequest{ContractorName: &nuevo})

	var tErr *domain.TerminalStateError
	assert.ErrorAs(t, err, &tErr)
}

func TestPatch_ActualizaCabeceraYLineas(t *testing.T) {
	h := newHarness()
	seedDepartments(h)
	cert, _ := h.engine.Create(context.Background(), testUserID, completeRequest("dep-almacen"))
	items, _ := h.items.ListByCertificate(cert.ID)

	nuevo := "Proveedora Andina Ltda."
	aceptada := int64(6)
	out, err := h.engine.Patch(context.Background(), cert.ID, dto.PatchCertificateRequest{
		ContractorName: &nuevo,
		Items:          []dto.PatchItemRequest{{ID: items[0].ID, AcceptedQuantity: &aceptada}},
	})
	require.NoError(t, err)

	assert.Equal(t, "Proveedora Andina Ltda.", out.ContractorName)
	assert.Equal(t, int64(6), out.Items[0].AcceptedQuantity)
}

func TestPatch_RechazaCantidadesInvalidas(t *testing.T) {
	h := newHarness()
	seedDepartments(h)
	cert, _ := h.engine.Create(context.Background(), testUserID, completeRequest("dep-almacen"))
	items, _ := h.items.ListByCertificate(cert.ID)

	aceptada := int64(20) // 20 + 2 > 10 licitadas
	_, err := h.engine.Patch(context.Background(), cert.ID, dto.PatchCertificateRequest{
		Items: []dto.PatchItemRequest{{ID: items[0].ID, AcceptedQuantity: &aceptada}},
	})

	var vErr *domain.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

// ──────────────────────────────────────────────────────────────────────────────
// Summarize
// ──────────────────────────────────────────────────────────────────────────────

func TestSummarize_IgnoraLineasSoloRechazadas(t *testing.T) {
	items := []*entity.InspectionItem{
		{ItemDescription: "aceptada y vinculada", AcceptedQuantity: 5, IsItemLinked: true},
		{ItemDescription: "aceptada sin vincular", AcceptedQuantity: 3},
		{ItemDescription: "solo rechazada", AcceptedQuantity: 0, RejectedQuantity: 4},
	}

	summary, examples := workflow.Summarize(items)

	assert.Equal(t, 2, summary.TotalItems, "la línea solo-rechazada no cuenta")
	assert.Equal(t, 1, summary.LinkedCount)
	assert.Equal(t, 1, summary.UnlinkedCount)
	assert.False(t, summary.AllLinked)
	assert.Equal(t, []string{"aceptada sin vincular"}, examples)
}

func TestSummarize_MaximoTresEjemplos(t *testing.T) {
	var items []*entity.InspectionItem
	for i := 0; i < 5; i++ {
		items = append(items, &entity.InspectionItem{ItemDescription: "sin vincular", AcceptedQuantity: 1})
	}

	summary, examples := workflow.Summarize(items)

	assert.Equal(t, 5, summary.UnlinkedCount)
	assert.Len(t, examples, 3, "los ejemplos se truncan a 3")
}
