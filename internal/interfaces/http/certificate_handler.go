package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Activos-api/internal/application/dto"
	"github.com/jhoicas/Activos-api/internal/application/workflow"
)

// CertificateHandler maneja el ciclo de vida del certificado de inspección:
// creación, edición, transiciones de etapa, rechazo y descarga del PDF.
type CertificateHandler struct {
	engine *workflow.Engine
	pdfUC  *workflow.PDFUseCase
}

// NewCertificateHandler construye el handler.
func NewCertificateHandler(engine *workflow.Engine, pdfUC *workflow.PDFUseCase) *CertificateHandler {
	return &CertificateHandler{engine: engine, pdfUC: pdfUC}
}

// Create crea un certificado en INITIATED con sus líneas.
// POST /api/certificates
func (h *CertificateHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateCertificateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cert, err := h.engine.Create(c.Context(), userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cert)
}

// GetByID obtiene un certificado con sus líneas.
// GET /api/certificates/:id
func (h *CertificateHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	cert, err := h.engine.Get(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cert)
}

// List lista certificados, opcionalmente filtrados por dependencia.
// GET /api/certificates?department_id=&limit=&offset=
func (h *CertificateHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	certs, err := h.engine.List(c.Context(), c.Query("department_id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(certs)
}

// Patch actualiza parcialmente cabecera y líneas (rechazado en estados terminales).
// PATCH /api/certificates/:id
func (h *CertificateHandler) Patch(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.PatchCertificateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cert, err := h.engine.Patch(c.Context(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cert)
}

// Submit envía el certificado desde INITIATED a la siguiente etapa de su flujo.
// POST /api/certificates/:id/submit
func (h *CertificateHandler) Submit(c *fiber.Ctx) error {
	if err := h.engine.SubmitToStockIncharge(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SubmitStockDetails registra los datos de almacén y avanza a CENTRAL_REGISTER.
// POST /api/certificates/:id/stock-details
func (h *CertificateHandler) SubmitStockDetails(c *fiber.Ctx) error {
	var in dto.StockDetailsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.engine.SubmitStockDetails(c.Context(), c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SubmitCentralRegister avanza a AUDIT_REVIEW si toda línea aceptada está vinculada.
// POST /api/certificates/:id/central-register/submit
func (h *CertificateHandler) SubmitCentralRegister(c *fiber.Ctx) error {
	if err := h.engine.SubmitCentralRegister(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SubmitAuditReview aprueba el certificado y materializa los recibos de stock.
// POST /api/certificates/:id/audit/approve
func (h *CertificateHandler) SubmitAuditReview(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.engine.SubmitAuditReview(c.Context(), c.Params("id"), userID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Reject rechaza el certificado desde cualquier etapa no terminal y limpia las
// entidades de catálogo creadas para él. Devuelve el reporte del cleanup.
// POST /api/certificates/:id/reject
func (h *CertificateHandler) Reject(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RejectRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	report, err := h.engine.Reject(c.Context(), c.Params("id"), userID, in.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// DownloadPDF genera y descarga la hoja imprimible (solo certificados COMPLETED).
// GET /api/certificates/:id/pdf
func (h *CertificateHandler) DownloadPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.pdfUC.DownloadCertificatePDF(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
