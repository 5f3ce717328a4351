package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restaurant-analytics/internal/application/analytics"
	"github.com/jhoicas/restaurant-analytics/internal/application/auth"
	"github.com/jhoicas/restaurant-analytics/internal/application/inventory"
	"github.com/jhoicas/restaurant-analytics/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	Ledger       *inventory.LedgerUseCase
	Query        *inventory.QueryUseCase
	Import       *inventory.PurchaseImportUseCase
	Transactions *inventory.TransactionUseCase
	Categories   *inventory.CategoryUseCase
	Reports      *analytics.ReportUseCase
	JWTSecret    string
}

// Router registra las rutas de la API. El gerente tiene acceso a todas las rutas por rol.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	manager := RequireRole(entity.RoleManager)
	purchase := RequireRole(entity.RolePurchase, entity.RoleManager)
	kitchen := RequireRole(entity.RoleKitchen, entity.RoleManager)

	protected.Post("/users", manager, authHandler.CreateUser)

	// Inventario
	inv := NewInventoryHandler(deps.Ledger, deps.Query, deps.Import)
	invGroup := protected.Group("/inventory")
	invGroup.Get("/", inv.Overview)
	invGroup.Get("/items", inv.Items)
	invGroup.Get("/low-stock", inv.LowStock)
	invGroup.Post("/purchase", purchase, inv.Purchase)
	invGroup.Post("/purchase/preview", purchase, inv.PurchasePreview)
	invGroup.Post("/purchase/upload", purchase, inv.PurchaseUpload)
	invGroup.Get("/purchase/template", purchase, inv.PurchaseTemplate)
	invGroup.Post("/kitchen", kitchen, inv.Issue)

	// Gerente
	mgr := NewManagerHandler(deps.Ledger)
	mgrGroup := protected.Group("/manager", manager)
	mgrGroup.Post("/items", mgr.Add)
	mgrGroup.Put("/items", mgr.Update)
	mgrGroup.Delete("/items", mgr.Delete)

	// Transacciones
	txh := NewTransactionHandler(deps.Transactions)
	protected.Get("/transactions", txh.List)
	protected.Get("/transactions/export", txh.Export)

	// Categorías
	cat := NewCategoryHandler(deps.Categories)
	protected.Get("/categories", cat.List)
	protected.Post("/categories", manager, cat.Create)
	protected.Put("/categories/:id", manager, cat.Update)
	protected.Delete("/categories/:id", manager, cat.Delete)

	// Analítica
	an := NewAnalyticsHandler(deps.Reports)
	anGroup := protected.Group("/analytics", manager)
	loaded := RequireDataset(deps.Reports)
	anGroup.Get("/summary", loaded, an.Summary)
	anGroup.Get("/leakage", loaded, an.Leakage)
	anGroup.Get("/variance", loaded, an.Variance)
	anGroup.Get("/price-trends", loaded, an.PriceTrends)
	anGroup.Get("/menu-engineering", loaded, an.MenuEngineering)
	anGroup.Get("/consumption", loaded, an.Consumption)
	anGroup.Get("/daily-sales", loaded, an.DailySales)
	anGroup.Get("/report", loaded, an.Report)
	anGroup.Get("/report.pdf", loaded, an.ReportPDF)
	anGroup.Get("/dataset", an.Dataset)
	anGroup.Post("/upload", an.Upload)

	// Alertas
	alerts := NewAlertHandler(deps.Query)
	protected.Post("/alerts/low-stock", manager, alerts.SendLowStock)
}
