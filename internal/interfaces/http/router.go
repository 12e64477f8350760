package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/novasalud/clinic-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      AuthService
	ClientUC    ClientService
	ProductUC   ProductService
	CategoryUC  CategoryService
	UserUC      UserService
	DashboardUC DashboardService
	Sales       SaleService
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/verify", authHandler.Verify)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("", AuthMiddleware(deps.JWTSecret))

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.GetSummary)

	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Get("/", clientHandler.List)
	clients.Post("/", clientHandler.Create)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Get("/all", categoryHandler.All)
	categories.Post("/", categoryHandler.Create)
	categories.Delete("/:id", categoryHandler.Delete)

	// Ventas: /form-data antes de /:id
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.Sales)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/form-data", saleHandler.FormData)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Put("/:id", saleHandler.Update)
	salesGroup.Delete("/:id", saleHandler.Delete)
	salesGroup.Get("/:id/details", saleHandler.Details)
	salesGroup.Get("/:id/receipt", saleHandler.Receipt)

	// Usuarios (solo admin)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
}
