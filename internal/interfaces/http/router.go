package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/salvaclients/stock-ledger-api/internal/application/stock"
	"github.com/salvaclients/stock-ledger-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC      *usecase.ProductUseCase
	RecordMovement *stock.RecordMovementUseCase
	MovementQuery  *stock.MovementQueryUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", ActorMiddleware(deps.JWTSecret))

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.ListLowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	stockHandler := NewStockHandler(deps.RecordMovement, deps.MovementQuery)
	products.Get("/:id/movements", stockHandler.ListProductMovements)
	products.Get("/:id/reconcile", stockHandler.ReconcileProduct)

	movements := api.Group("/stock-movements")
	movements.Post("/", stockHandler.RecordMovement)
	movements.Get("/", stockHandler.ListMovements)
}
