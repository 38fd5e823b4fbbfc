package http

import (
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lot-pos/lot-api/internal/application/alerts"
	"github.com/lot-pos/lot-api/internal/application/auth"
	"github.com/lot-pos/lot-api/internal/application/reports"
	"github.com/lot-pos/lot-api/internal/application/sales"
	"github.com/lot-pos/lot-api/internal/application/usecase"
	"github.com/lot-pos/lot-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthSvc     *auth.Service
	ProductUC   *usecase.ProductUseCase
	CategoryUC  *usecase.CategoryUseCase
	UnitUC      *usecase.UnitUseCase
	TagUC       *usecase.TagUseCase
	BranchUC    *usecase.BranchUseCase
	ComboUC     *usecase.ComboUseCase
	InventoryUC *usecase.InventoryUseCase
	SaleSvc     *sales.Service
	ReportSvc   *reports.Service
	AlertSvc    *alerts.Service
	JWTSecret   string
	SwaggerPath string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	if deps.SwaggerPath != "" {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: deps.SwaggerPath,
			Path:     "docs",
			Title:    "Lot POS API",
		}))
	}

	api := app.Group("/api/v1", MetricsMiddleware())

	// Autenticación (público)
	authHandler := NewAuthHandler(deps.AuthSvc)
	authentication := api.Group("/authentication")
	authentication.Post("/sign-up", authHandler.SignUp)
	authentication.Post("/sign-in", authHandler.SignIn)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Usuarios (protegido; cambio de rol solo para administradores)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.AuthSvc)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id/role", RequireRole(entity.RoleAdministrator), userHandler.ChangeRole)

	// Categorías (protegido)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Unidades (protegido)
	units := protected.Group("/units")
	unitHandler := NewUnitHandler(deps.UnitUC)
	units.Post("/", unitHandler.Create)
	units.Get("/", unitHandler.List)
	units.Get("/:id", unitHandler.GetByID)
	units.Put("/:id", unitHandler.Update)
	units.Delete("/:id", unitHandler.Delete)

	// Etiquetas (protegido)
	tags := protected.Group("/tags")
	tagHandler := NewTagHandler(deps.TagUC)
	tags.Post("/", tagHandler.Create)
	tags.Get("/", tagHandler.List)
	tags.Get("/:id", tagHandler.GetByID)
	tags.Delete("/:id", tagHandler.Delete)

	// Sucursales (protegido)
	branches := protected.Group("/branches")
	branchHandler := NewBranchHandler(deps.BranchUC)
	branches.Post("/", branchHandler.Create)
	branches.Get("/", branchHandler.List)
	branches.Get("/:id", branchHandler.GetByID)
	branches.Put("/:id", branchHandler.Update)
	branches.Delete("/:id", branchHandler.Delete)

	// Productos (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/price-range", productHandler.ListByPriceRange)
	products.Get("/category/:categoryId", productHandler.ListByCategory)
	products.Get("/tag/:tagId", productHandler.ListByTag)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Post("/:id/tags/:tagId", productHandler.AddTag)
	products.Delete("/:id/tags/:tagId", productHandler.RemoveTag)

	// Combos (protegido)
	combos := protected.Group("/combos")
	comboHandler := NewComboHandler(deps.ComboUC)
	combos.Post("/", comboHandler.Create)
	combos.Get("/", comboHandler.List)
	combos.Get("/:id", comboHandler.GetByID)
	combos.Put("/:id", comboHandler.Rename)
	combos.Delete("/:id", comboHandler.Delete)
	combos.Post("/:id/items", comboHandler.AddItem)
	combos.Delete("/:id/items/:productId", comboHandler.RemoveItem)

	// Inventario (protegido)
	inventory := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	inventory.Post("/products", inventoryHandler.CreateByProduct)
	inventory.Get("/products", inventoryHandler.List)
	inventory.Get("/products/by-product/:productId", inventoryHandler.GetByProduct)
	inventory.Get("/products/:id", inventoryHandler.GetByID)
	inventory.Patch("/products/:id", inventoryHandler.Update)
	inventory.Post("/products/:id/increase", inventoryHandler.IncreaseStock)
	inventory.Delete("/products/:id", inventoryHandler.Delete)
	inventory.Post("/batches", inventoryHandler.CreateBatch)
	inventory.Get("/batches", inventoryHandler.ListBatches)
	inventory.Get("/batches/:id", inventoryHandler.GetBatch)
	inventory.Delete("/batches/:id", inventoryHandler.DeleteBatch)

	// Ventas (protegido, roles Administrator y Employee)
	salesGroup := protected.Group("/sales", RequireRole(entity.RoleAdministrator, entity.RoleEmployee))
	saleHandler := NewSaleHandler(deps.SaleSvc)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/check-stock/:productId", saleHandler.CheckStock)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Delete("/:id", saleHandler.Delete)

	// Reportes (protegido, roles Administrator y Employee)
	reportsGroup := protected.Group("/reports", RequireRole(entity.RoleAdministrator, entity.RoleEmployee))
	reportHandler := NewReportHandler(deps.ReportSvc)
	reportsGroup.Post("/categories/:categoryId", reportHandler.GenerateCategoryReport)
	reportsGroup.Get("/categories", reportHandler.ListCategoryReports)
	reportsGroup.Get("/categories/:id", reportHandler.GetCategoryReport)
	reportsGroup.Get("/categories/:id/pdf", reportHandler.ExportCategoryReportPDF)
	reportsGroup.Post("/stock-averages/:categoryId", reportHandler.GenerateStockAverageReport)
	reportsGroup.Get("/stock-averages", reportHandler.ListStockAverageReports)
	reportsGroup.Get("/stock-averages/:id", reportHandler.GetStockAverageReport)

	// Alertas de stock (protegido, roles Administrator y Employee)
	alertsGroup := protected.Group("/alerts", RequireRole(entity.RoleAdministrator, entity.RoleEmployee))
	alertHandler := NewAlertHandler(deps.AlertSvc)
	alertsGroup.Get("/", alertHandler.List)
	alertsGroup.Get("/by-category", alertHandler.ListByCategory)
	alertsGroup.Get("/summary", alertHandler.Summary)
}
