package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Catalogo-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ServiceName   string
	ProductUC     *usecase.ProductUseCase
	CategoryUC    *usecase.CategoryUseCase
	SubcategoryUC *usecase.SubcategoryUseCase
	PriceListUC   *usecase.PriceListUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})

	api := app.Group("/api")

	// Products (clave: codigo). Las rutas fijas van antes de /:codigo.
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.PriceListUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/price-list.pdf", productHandler.PriceList)
	products.Post("/update-prices", productHandler.UpdatePrices)
	products.Post("/update-state", productHandler.UpdateState)
	products.Get("/:codigo", productHandler.GetByCodigo)
	products.Put("/:codigo", productHandler.Update)
	products.Patch("/:codigo", productHandler.ToggleEstado)

	// Categories
	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Patch("/:id", categoryHandler.ToggleEstado)

	// Subcategories
	subcategories := api.Group("/subcategories")
	subcategoryHandler := NewSubcategoryHandler(deps.SubcategoryUC)
	subcategories.Get("/", subcategoryHandler.List)
	subcategories.Post("/", subcategoryHandler.Create)
	subcategories.Get("/:id", subcategoryHandler.GetByID)
	subcategories.Put("/:id", subcategoryHandler.Update)
	subcategories.Patch("/:id", subcategoryHandler.ToggleEstado)
}
