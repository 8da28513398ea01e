package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/stock-control/internal/application/analytics"
	"github.com/jhoicas/stock-control/internal/application/auth"
	"github.com/jhoicas/stock-control/internal/application/inventory"
	"github.com/jhoicas/stock-control/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	ProductUC        *usecase.ProductUseCase
	UserUC           *usecase.UserUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	History          *inventory.HistoryUseCase
	LowStock         *inventory.LowStockUseCase
	ReportUC         *appanalytics.ReportUseCase
	Cookie           SessionCookie
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Cookie)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)

	requireAuth := AuthMiddleware(deps.AuthUC, deps.Cookie.Name)
	authGroup.Get("/me", requireAuth, authHandler.Me)

	// Rutas protegidas (cookie de sesión o Bearer Token)
	protected := api.Group("/", requireAuth)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.History, deps.LowStock)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", RequireAdmin(), productHandler.Update)
	products.Post("/:id/inbound", inventoryHandler.Inbound)
	products.Post("/:id/outbound", inventoryHandler.Outbound)

	// Inventory
	invGroup := protected.Group("/inventory")
	invGroup.Get("/movements", inventoryHandler.Movements)
	invGroup.Get("/low-stock", inventoryHandler.LowStock)

	// Reports
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/summary", reportHandler.Summary)
	reports.Get("/stock.pdf", reportHandler.PDF)
	reports.Get("/stock.xml", reportHandler.XML)

	// Users (administrador)
	users := protected.Group("/users", RequireAdmin())
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Delete("/:id", userHandler.Deactivate)
}
