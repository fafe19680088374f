package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Swasthya-api/internal/application/auth"
	"github.com/jhoicas/Swasthya-api/internal/application/clinic"
	"github.com/jhoicas/Swasthya-api/internal/application/documents"
	"github.com/jhoicas/Swasthya-api/internal/application/reports"
	"github.com/jhoicas/Swasthya-api/internal/application/usecase"
	"github.com/jhoicas/Swasthya-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	UserUC       *usecase.UserUseCase
	StoreUC      *usecase.StoreUseCase
	ItemUC       *usecase.ItemUseCase
	CalculatorUC *usecase.CalculatorUseCase
	Documents    *documents.Registry
	Reports      *reports.UseCase
	Clinic       *clinic.UseCase // nil si MongoDB no está configurado
	JWTSecret    string
}

var (
	adminRoles = []string{entity.RoleAdmin, entity.RoleSuperAdmin}
	storeRoles = []string{entity.RoleStorekeeper, entity.RoleAdmin, entity.RoleSuperAdmin}
)

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth: login público; alta de usuarios solo para administradores
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)
	api.Post("/auth/register", AuthMiddleware(deps.JWTSecret), RequireRole(adminRoles...), authHandler.Register)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Users
	userHandler := NewUserHandler(deps.UserUC)
	protected.Get("/users/me", userHandler.Me)
	users := protected.Group("/users", RequireRole(adminRoles...))
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)

	// Stores
	stores := protected.Group("/stores")
	storeHandler := NewStoreHandler(deps.StoreUC)
	stores.Get("/", storeHandler.List)
	stores.Get("/:id", storeHandler.GetByID)
	stores.Post("/", RequireRole(storeRoles...), storeHandler.Create)
	stores.Put("/:id", RequireRole(storeRoles...), storeHandler.Update)

	// Items
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Get("/", itemHandler.List)
	items.Get("/expiring", itemHandler.Expiring)
	items.Get("/:id", itemHandler.GetByID)
	items.Get("/:id/movements", itemHandler.Movements)
	items.Post("/", RequireRole(storeRoles...), itemHandler.Create)
	items.Put("/:id", RequireRole(storeRoles...), itemHandler.Update)

	// Documentos: los roles de cada acción los decide el flujo de aprobación
	d := deps.Documents
	NewDocumentHandler(d.DemandForms, deps.Reports).Mount(protected.Group("/demand-forms"))
	NewDocumentHandler(d.PurchaseOrders, deps.Reports).Mount(protected.Group("/purchase-orders"))
	NewDocumentHandler(d.IssueReports, deps.Reports).Mount(protected.Group("/issue-reports"))
	NewDocumentHandler(d.StockEntries, deps.Reports).Mount(protected.Group("/stock-entries"))
	NewDocumentHandler(d.Dakhila, deps.Reports).Mount(protected.Group("/dakhila"))
	NewDocumentHandler(d.Returns, deps.Reports).Mount(protected.Group("/returns"))
	NewDocumentHandler(d.Maintenance, deps.Reports).Mount(protected.Group("/maintenance"))
	NewDocumentHandler(d.Disposals, deps.Reports).Mount(protected.Group("/disposals"))

	// Calculadora de formularios
	protected.Post("/calculator/lines", NewCalculatorHandler(deps.CalculatorUC).Lines)

	// Libros
	ledger := protected.Group("/ledger")
	ledgerHandler := NewLedgerHandler(deps.Reports)
	ledger.Get("/jinshi", ledgerHandler.Jinshi)
	ledger.Get("/jinshi/xlsx", ledgerHandler.JinshiXLSX)
	ledger.Get("/jinshi/pdf", ledgerHandler.JinshiPDF)
	ledger.Get("/sahayak", ledgerHandler.Sahayak)
	ledger.Get("/sahayak/xlsx", ledgerHandler.SahayakXLSX)
	ledger.Get("/sahayak/pdf", ledgerHandler.SahayakPDF)

	// Clínica antirrábica (MongoDB)
	rabies := protected.Group("/rabies", RequireModule("rabies", deps.Clinic != nil))
	rabiesHandler := NewRabiesHandler(deps.Clinic)
	rabies.Post("/patients", rabiesHandler.Register)
	rabies.Get("/patients", rabiesHandler.List)
	rabies.Get("/patients/:id", rabiesHandler.Get)
	rabies.Post("/patients/:id/doses", rabiesHandler.RecordDose)
	rabies.Get("/due", rabiesHandler.Due)
}
