package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/turbocafe/turbocafe-api/internal/application/auth"
	"github.com/turbocafe/turbocafe-api/internal/application/usecase"
	"github.com/turbocafe/turbocafe-api/internal/domain/entity"
)

// RouterDeps carries everything the route table needs.
type RouterDeps struct {
	AuthUC  *auth.AuthUseCase
	MenuUC  *usecase.MenuUseCase
	OrderUC *usecase.OrderUseCase

	JWTSecret string

	// Token-bucket parameters for the credential endpoints.
	AuthRatePerSecond float64
	AuthRateBurst     int
}

// Router mounts the API route table. Static segments are registered before
// the parameterized ones so /stats is never captured as an :id.
func Router(app *fiber.App, deps RouterDeps) {
	authHandler := NewAuthHandler(deps.AuthUC)
	menuHandler := NewMenuHandler(deps.MenuUC)
	orderHandler := NewOrderHandler(deps.OrderUC)

	authRequired := AuthMiddleware(deps.JWTSecret)
	credentialLimit := RateLimitMiddleware(deps.AuthRatePerSecond, deps.AuthRateBurst)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", credentialLimit, authHandler.Register)
	authGroup.Post("/login", credentialLimit, authHandler.Login)
	authGroup.Get("/profile", authRequired, authHandler.Profile)
	authGroup.Patch("/profile", authRequired, authHandler.UpdateProfile)

	menu := api.Group("/menu", authRequired)
	menu.Get("/", menuHandler.List)
	menu.Get("/search", menuHandler.Search)
	menu.Get("/stats", menuHandler.Stats)
	menu.Get("/vendor/my-menus", RequireRole(entity.RoleVendor), menuHandler.VendorList)
	menu.Post("/", RequireRole(entity.RoleVendor), menuHandler.Create)
	menu.Get("/:id", menuHandler.GetByID)
	menu.Put("/:id", RequireRole(entity.RoleVendor), menuHandler.Update)
	menu.Patch("/:id", RequireRole(entity.RoleVendor), menuHandler.Update)
	menu.Delete("/:id", RequireRole(entity.RoleVendor), menuHandler.Delete)
	menu.Patch("/:id/toggle-availability", RequireRole(entity.RoleVendor), menuHandler.ToggleAvailability)

	orders := api.Group("/orders", authRequired)
	orders.Get("/", orderHandler.List)
	orders.Post("/", orderHandler.Create)
	orders.Get("/search", orderHandler.Search)
	orders.Get("/stats", orderHandler.Stats)
	orders.Get("/recent", orderHandler.Recent)
	orders.Get("/student/my-orders", orderHandler.StudentOrders)
	orders.Get("/vendor/my-orders", orderHandler.VendorOrders)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Patch("/:id/update-status", orderHandler.UpdateStatus)
	orders.Patch("/:id/cancel", orderHandler.Cancel)
	orders.Get("/:id/receipt", orderHandler.Receipt)
}
