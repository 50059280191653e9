package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pizzeria-api/internal/application/cart"
	"github.com/jhoicas/pizzeria-api/internal/application/catalog"
	"github.com/jhoicas/pizzeria-api/internal/application/inventory"
	"github.com/jhoicas/pizzeria-api/internal/application/order"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC  *catalog.UseCase
	CartUC     *cart.UseCase
	CheckoutUC *order.CheckoutUseCase
	StockUC    *inventory.StockUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Menú
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.CatalogUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	// Antes de /:slug para que "search" no se tome como slug.
	products.Get("/search", productHandler.Search)
	products.Get("/:slug", productHandler.Get)
	products.Put("/:slug", productHandler.Update)

	// Carrito (clave de sesión en X-Session-Key)
	cartGroup := api.Group("/cart")
	cartHandler := NewCartHandler(deps.CartUC)
	cartGroup.Get("/", cartHandler.Get)
	cartGroup.Delete("/", cartHandler.Clear)
	cartGroup.Post("/items", cartHandler.AddItem)
	cartGroup.Put("/items/:id", cartHandler.UpdateItem)
	cartGroup.Delete("/items/:id", cartHandler.RemoveItem)

	// Órdenes
	orders := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.CheckoutUC)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:number", orderHandler.Get)
	orders.Put("/:number/status", orderHandler.UpdateStatus)
	orders.Get("/:number/receipt", orderHandler.Receipt)

	// Inventario
	invGroup := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.StockUC)
	invGroup.Post("/receipts", inventoryHandler.Receive)
	invGroup.Post("/adjustments", inventoryHandler.Adjust)
	invGroup.Post("/returns", inventoryHandler.Return)
	invGroup.Get("/stock/:productID", inventoryHandler.Stock)
	invGroup.Get("/movements/:productID", inventoryHandler.Movements)
	invGroup.Get("/audit/:productID", inventoryHandler.Audit)
	invGroup.Get("/low-stock", inventoryHandler.LowStock)
	invGroup.Get("/out-of-stock", inventoryHandler.OutOfStock)
	invGroup.Get("/alerts", inventoryHandler.Alerts)
}
