package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Activos-api/internal/application/auth"
	"github.com/jhoicas/Activos-api/internal/application/usecase"
	"github.com/jhoicas/Activos-api/internal/application/workflow"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Engine       *workflow.Engine
	Reconciler   *workflow.Reconciler
	PDFUC        *workflow.PDFUseCase
	CatalogUC    *usecase.CatalogUseCase
	DepartmentUC *usecase.DepartmentUseCase
	DashboardUC  *usecase.DashboardUseCase
	StockEntryUC *usecase.StockEntryUseCase
	AuthUC       *auth.AuthUseCase
	JWTSecret    string
}

// Router registra las rutas de la API. Cada transición del flujo se monta detrás de la
// capacidad que exige; las lecturas solo requieren token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Dependencias y ubicaciones (lectura)
	deptHandler := NewDepartmentHandler(deps.DepartmentUC)
	protected.Get("/departments", deptHandler.List)
	protected.Get("/departments/:id", deptHandler.GetByID)
	protected.Get("/locations", deptHandler.ListLocations)

	// Catálogo: lectura con token, escritura con CAN_MANAGE_CATALOG
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	catalog := protected.Group("/catalog")
	catalog.Get("/items/search", catalogHandler.SearchItems)
	catalog.Get("/items/:id", catalogHandler.GetItem)
	catalog.Get("/items", catalogHandler.ListItems)
	catalog.Get("/categories", catalogHandler.ListCategories)
	catalog.Post("/items", RequireCapability(auth.CapManageCatalog), catalogHandler.CreateItem)
	catalog.Post("/categories", RequireCapability(auth.CapManageCatalog), catalogHandler.CreateCategory)

	// Certificados: ciclo de vida y transiciones
	certHandler := NewCertificateHandler(deps.Engine, deps.PDFUC)
	certs := protected.Group("/certificates")
	certs.Get("/", certHandler.List)
	certs.Get("/:id", certHandler.GetByID)
	certs.Get("/:id/pdf", certHandler.DownloadPDF)
	certs.Post("/", RequireCapability(auth.CapSubmitCertificate), certHandler.Create)
	certs.Patch("/:id", RequireCapability(auth.CapSubmitCertificate), certHandler.Patch)
	certs.Post("/:id/submit", RequireCapability(auth.CapSubmitCertificate), certHandler.Submit)
	certs.Post("/:id/stock-details", RequireCapability(auth.CapFillStockDetails), certHandler.SubmitStockDetails)
	certs.Post("/:id/central-register/submit", RequireCapability(auth.CapLinkItems), certHandler.SubmitCentralRegister)
	certs.Post("/:id/audit/approve", RequireCapability(auth.CapAuditApprove), certHandler.SubmitAuditReview)
	certs.Post("/:id/reject", RequireCapability(auth.CapReject), certHandler.Reject)

	// Vinculación (etapa CENTRAL_REGISTER)
	linkingHandler := NewLinkingHandler(deps.Reconciler)
	linking := certs.Group("/:id/linking", RequireCapability(auth.CapLinkItems))
	linking.Get("/unlinked", linkingHandler.GetUnlinked)
	linking.Post("/link", linkingHandler.LinkToExisting)
	linking.Post("/create-and-link", linkingHandler.CreateAndLink)
	linking.Post("/unlink", linkingHandler.Unlink)
	linking.Post("/subcategories", linkingHandler.CreateSubCategory)
	certs.Put("/:id/central-register", RequireCapability(auth.CapLinkItems), linkingHandler.CentralRegisterDetails)

	// Tablero y recibos de stock (lectura)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", dashboardHandler.Summary)

	stockHandler := NewStockEntryHandler(deps.StockEntryUC)
	protected.Get("/stock-entries", stockHandler.List)
}
