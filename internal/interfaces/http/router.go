package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dcardona/fermentos-api/internal/application/ledger"
	"github.com/dcardona/fermentos-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Engine     *ledger.Engine
	ItemUC     *usecase.ItemUseCase
	SupplierUC *usecase.SupplierUseCase
	RecipeUC   *usecase.RecipeUseCase
	Health     *HealthHandler
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Health != nil {
		app.Get("/health", deps.Health.Health)
	}

	api := app.Group("/api")

	// Inventario
	items := api.Group("/inventory")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/low-stock", itemHandler.ListLowStock)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)

	// Libro de movimientos y operaciones del motor
	ledgerHandler := NewLedgerHandler(deps.Engine)
	items.Get("/:id/movements", ledgerHandler.MovementsByItem)
	api.Post("/purchases", ledgerHandler.Purchase)
	api.Post("/adjustments", ledgerHandler.Adjust)

	// Lotes de producción
	batches := api.Group("/batches")
	batches.Post("/", ledgerHandler.CreateBatch)
	batches.Get("/", ledgerHandler.ActiveBatches)
	batches.Get("/history", ledgerHandler.ProductionHistory)
	batches.Get("/:id", ledgerHandler.BatchByID)
	batches.Get("/:id/ingredients", ledgerHandler.BatchIngredients)
	batches.Post("/:id/complete", ledgerHandler.CompleteBatch)
	batches.Post("/:id/fail", ledgerHandler.FailBatch)

	// Proveedores
	suppliers := api.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)

	// Recetas
	recipes := api.Group("/recipes")
	recipeHandler := NewRecipeHandler(deps.RecipeUC)
	recipes.Post("/", recipeHandler.Create)
	recipes.Get("/", recipeHandler.List)
	recipes.Get("/:id", recipeHandler.GetByID)
	recipes.Put("/:id", recipeHandler.Update)
	recipes.Delete("/:id", recipeHandler.Delete)
}
