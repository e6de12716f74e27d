package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Costeo-api/internal/application/auth"
	"github.com/jhoicas/Costeo-api/internal/application/inventory"
	"github.com/jhoicas/Costeo-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	WareUC          *usecase.WareUseCase
	Movements       *inventory.MovementUseCase
	ValuationReport *inventory.ValuationReportUseCase
	AuthUC          *auth.AuthUseCase
	JWTSecret       string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Wares (protegido)
	wares := protected.Group("/wares")
	wareHandler := NewWareHandler(deps.WareUC)
	wares.Post("/", wareHandler.Create)
	wares.Get("/", wareHandler.List)
	wares.Get("/:id", wareHandler.GetByID)

	// Inventario: movimientos y valorización (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Movements, deps.ValuationReport)
	invGroup.Post("/input", inventoryHandler.RegisterInput)
	invGroup.Post("/output", inventoryHandler.RegisterOutput)
	invGroup.Get("/valuation", inventoryHandler.GetValuation)
	invGroup.Get("/valuation/pdf", inventoryHandler.GetValuationPDF)
	invGroup.Get("/factors", inventoryHandler.ListFactors)
}
