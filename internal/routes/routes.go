package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/tapiocaria/internal/config"
	"github.com/example/tapiocaria/internal/handlers"
	"github.com/example/tapiocaria/internal/middleware"
	"github.com/example/tapiocaria/internal/models"
	"github.com/example/tapiocaria/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	notifier := services.NewNotifier()

	authHandler := handlers.NewAuthHandler(db, cfg)
	menuHandler := handlers.NewMenuHandler(db)
	deliveryHandler := handlers.NewDeliveryHandler(db)
	lunchHandler := handlers.NewLunchHandler(db, cfg)
	settingsHandler := handlers.NewSettingsHandler(db)
	orderHandler := handlers.NewOrderHandler(db, cfg, notifier)
	adminHandler := handlers.NewAdminHandler(db)

	authRequired := middleware.AuthMiddleware(cfg)
	staffOnly := middleware.RequireRole(db, models.RoleStaff, models.RoleAdmin)
	adminOnly := middleware.RequireRole(db, models.RoleAdmin)

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Public reads feeding the ordering UI
	api.Get("/categories", menuHandler.ListCategories)
	api.Get("/menu", menuHandler.ListMenu)
	api.Get("/menu/:id", menuHandler.GetMenuItem)
	api.Get("/extras", menuHandler.ListExtras)
	api.Get("/delivery-zones", deliveryHandler.ListZones)
	api.Get("/lunch", lunchHandler.GetConfiguration)
	api.Get("/settings/public", settingsHandler.GetPublicSettings)

	// Order submission is open to anonymous customers; a bearer token, if
	// present, attaches the order to the account.
	api.Post("/orders", middleware.OptionalAuth(cfg), orderHandler.CreateOrder)

	// Kitchen board (staff and admin). Middleware goes on each route, not on
	// the group, because these paths share the /api prefix with public reads.
	api.Get("/orders", authRequired, staffOnly, orderHandler.GetOrders)
	api.Patch("/orders", authRequired, staffOnly, orderHandler.UpdateStatus)
	api.Delete("/orders", authRequired, staffOnly, orderHandler.CancelOrder)
	api.Post("/orders-update", authRequired, staffOnly, orderHandler.UpdateOrder)

	// Customer profile
	profile := api.Group("/profile", authRequired)
	profile.Get("/", authHandler.GetProfile)
	profile.Put("/", authHandler.UpdateProfile)
	profile.Get("/orders", authHandler.MyOrders)

	// Back-office (admin)
	api.Get("/settings", authRequired, adminOnly, settingsHandler.GetSettings)
	api.Post("/settings", authRequired, adminOnly, settingsHandler.UpdateSettings)

	api.Post("/categories", authRequired, adminOnly, menuHandler.CreateCategory)
	api.Put("/categories/:id", authRequired, adminOnly, menuHandler.UpdateCategory)
	api.Delete("/categories/:id", authRequired, adminOnly, menuHandler.DeleteCategory)

	api.Post("/menu", authRequired, adminOnly, menuHandler.CreateMenuItem)
	api.Put("/menu/:id", authRequired, adminOnly, menuHandler.UpdateMenuItem)
	api.Delete("/menu/:id", authRequired, adminOnly, menuHandler.DeleteMenuItem)

	api.Post("/extras", authRequired, adminOnly, menuHandler.CreateExtra)
	api.Put("/extras/:id", authRequired, adminOnly, menuHandler.UpdateExtra)
	api.Delete("/extras/:id", authRequired, adminOnly, menuHandler.DeleteExtra)

	api.Post("/delivery-zones", authRequired, adminOnly, deliveryHandler.CreateZone)
	api.Put("/delivery-zones/:id", authRequired, adminOnly, deliveryHandler.UpdateZone)
	api.Delete("/delivery-zones/:id", authRequired, adminOnly, deliveryHandler.DeleteZone)

	lunch := api.Group("/lunch", authRequired, adminOnly)
	lunch.Post("/bases", lunchHandler.CreateBase)
	lunch.Put("/bases/:id", lunchHandler.UpdateBase)
	lunch.Delete("/bases/:id", lunchHandler.DeleteBase)
	lunch.Post("/meats", lunchHandler.CreateMeat)
	lunch.Delete("/meats/:id", lunchHandler.DeleteMeat)
	lunch.Post("/extra-meats", lunchHandler.CreateExtraMeat)
	lunch.Delete("/extra-meats/:id", lunchHandler.DeleteExtraMeat)
	lunch.Post("/sides", lunchHandler.CreateSide)
	lunch.Delete("/sides/:id", lunchHandler.DeleteSide)

	admin := api.Group("/admin", authRequired, adminOnly)
	admin.Get("/stats", adminHandler.DashboardStats)
	admin.Get("/users", adminHandler.ListUsers)
	admin.Post("/users", adminHandler.CreateUser)
	admin.Put("/users/:id", adminHandler.UpdateUser)
	admin.Delete("/users/:id", adminHandler.DeleteUser)
}
