package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/joyeria-pos/internal/application/auth"
	"github.com/jhoicas/joyeria-pos/internal/application/billing"
	"github.com/jhoicas/joyeria-pos/internal/application/cart"
	"github.com/jhoicas/joyeria-pos/internal/application/inventory"
	"github.com/jhoicas/joyeria-pos/internal/application/locator"
	"github.com/jhoicas/joyeria-pos/internal/application/reports"
	"github.com/jhoicas/joyeria-pos/internal/application/storage"
	"github.com/jhoicas/joyeria-pos/internal/application/usecase"
	"github.com/jhoicas/joyeria-pos/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	LocationUC       *usecase.LocationUseCase
	StorageTypeUC    *storage.StorageTypeUseCase
	StorageObjectUC  *storage.StorageObjectUseCase
	ContentsUC       *storage.ContentsUseCase
	ProductUC        *usecase.ProductUseCase
	CategoryUC       *usecase.CategoryUseCase
	MaterialUC       *usecase.MaterialUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	MovementHistory  *inventory.MovementHistoryUseCase
	CartUC           *cart.CartUseCase
	CustomerUC       *billing.CustomerUseCase
	InvoiceUC        *billing.InvoiceUseCase
	PDFUC            *billing.PDFUseCase
	XMLUC            *billing.XMLUseCase
	UserUC           *usecase.UserUseCase
	LocatorUC        *locator.StoreLocatorUseCase
	ReportsUC        *reports.ReportsUseCase
	JWTSecret        string
}

// Router registra las rutas de la API. Las lecturas requieren cualquier token
// válido; las escrituras se agrupan por rol: la jerarquía de almacenamiento y
// los movimientos son de admin/bodeguero, el flujo de venta de admin/vendedor,
// el catálogo y los usuarios solo de admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Localizador de tiendas (público)
	storeHandler := NewStoreHandler(deps.LocatorUC)
	api.Get("/stores", storeHandler.List)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Get("/auth/me", authHandler.Me)
	protected.Get("/permissions", authHandler.Permissions)

	storageWrite := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	sellerWrite := RequireRole(entity.RoleAdmin, entity.RoleVendedor)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Tiendas (escrituras admin/bodeguero)
	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", storageWrite, locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Put("/:id", storageWrite, locationHandler.Update)
	locations.Delete("/:id", storageWrite, locationHandler.Delete)

	// Estantes, colgados de su tienda
	storageTypeHandler := NewStorageTypeHandler(deps.StorageTypeUC)
	locations.Post("/:id/storage-types", storageWrite, storageTypeHandler.Create)
	locations.Get("/:id/storage-types", storageTypeHandler.List)
	locations.Put("/:id/storage-types/positions", storageWrite, storageTypeHandler.UpdatePositions)

	storageTypes := protected.Group("/storage-types")
	storageTypes.Get("/:id", storageTypeHandler.GetByID)
	storageTypes.Put("/:id", storageWrite, storageTypeHandler.Update)
	storageTypes.Delete("/:id", storageWrite, storageTypeHandler.Delete)

	// Cajas, colgadas de su estante
	storageObjectHandler := NewStorageObjectHandler(deps.StorageObjectUC)
	storageTypes.Post("/:id/storage-objects", storageWrite, storageObjectHandler.Create)
	storageTypes.Get("/:id/storage-objects", storageObjectHandler.List)
	storageTypes.Post("/:id/storage-objects/bulk", storageWrite, storageObjectHandler.BulkCreate)
	storageTypes.Get("/:id/next-code", storageObjectHandler.NextCode)

	storageObjects := protected.Group("/storage-objects")
	storageObjects.Get("/:id", storageObjectHandler.GetByID)
	storageObjects.Put("/:id", storageWrite, storageObjectHandler.Update)
	storageObjects.Delete("/:id", storageWrite, storageObjectHandler.Delete)
	storageObjects.Post("/:id/move", storageWrite, storageObjectHandler.Move)

	// Contenido de cajas y localización de referencias
	contentsHandler := NewContentsHandler(deps.ContentsUC)
	storageObjects.Post("/:id/contents", storageWrite, contentsHandler.PutProduct)
	storageObjects.Get("/:id/contents", contentsHandler.ListContents)
	protected.Post("/product-locations/:id/transfer", storageWrite, contentsHandler.Transfer)

	// Catálogo (escrituras solo admin)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", adminOnly, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/search", productHandler.Search)
	products.Get("/:type/:id/locations", contentsHandler.WhereIs)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", adminOnly, categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", adminOnly, categoryHandler.Update)
	categories.Delete("/:id", adminOnly, categoryHandler.Delete)

	materials := protected.Group("/materials")
	materialHandler := NewMaterialHandler(deps.MaterialUC)
	materials.Post("/", adminOnly, materialHandler.Create)
	materials.Get("/", materialHandler.List)
	materials.Get("/:id", materialHandler.GetByID)
	materials.Put("/:id", adminOnly, materialHandler.Update)
	materials.Delete("/:id", adminOnly, materialHandler.Delete)

	// Movimientos de inventario (admin/bodeguero, historial incluido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.MovementHistory)
	invGroup.Post("/movements", storageWrite, inventoryHandler.RegisterMovement)
	invGroup.Get("/movements", storageWrite, inventoryHandler.ListMovements)

	// Carrito del vendedor
	cartGroup := protected.Group("/cart", sellerWrite)
	cartHandler := NewCartHandler(deps.CartUC)
	cartGroup.Get("/", cartHandler.Get)
	cartGroup.Delete("/", cartHandler.Clear)
	cartGroup.Post("/items", cartHandler.AddItem)
	cartGroup.Put("/items/:id", cartHandler.UpdateItem)
	cartGroup.Delete("/items/:id", cartHandler.RemoveItem)
	cartGroup.Post("/checkout", cartHandler.Checkout)

	// Clientes (escrituras admin/vendedor)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", sellerWrite, customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", sellerWrite, customerHandler.Update)

	// Facturas: crear admin/vendedor, anular solo admin, lecturas con token
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.PDFUC, deps.XMLUC)
	invoices.Post("/", sellerWrite, invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
	invoices.Get("/:id/xml", invoiceHandler.ExportXML)
	invoices.Post("/:id/void", adminOnly, invoiceHandler.Void)

	// Usuarios (solo admin)
	users := protected.Group("/users", adminOnly)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Deactivate)

	// Reportes (admin/bodeguero)
	reportsGroup := protected.Group("/reports", storageWrite)
	reportHandler := NewReportHandler(deps.ReportsUC)
	reportsGroup.Get("/sales-summary", reportHandler.SalesSummary)
	reportsGroup.Get("/stock.xlsx", reportHandler.StockXLSX)
}
