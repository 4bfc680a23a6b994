// Package routes wires repositories, services and handlers onto the fiber
// app. Route groups mirror the two roles: /api/merchant and /api/admin, with
// a small public surface for login, signup and browsing.
package routes

import (
	"roost/internal/handlers"
	"roost/internal/middleware"
	"roost/internal/models"
	"roost/internal/repositories"
	"roost/internal/repositories/cache"
	"roost/internal/services/approval"
	"roost/internal/services/auth"
	"roost/internal/services/dashboard"
	"roost/internal/services/notification"
	"roost/internal/services/occupancy"
	"roost/internal/services/payment"

	"github.com/gofiber/fiber/v2"
)

// Deps carries the swappable backends: the entity store, the cache (nil in
// demo mode) and the notifier/gateway implementations.
type Deps struct {
	Store    repositories.Store
	Cache    *cache.CacheService
	Notifier notification.Service
	Gateway  payment.Gateway
}

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, deps Deps) {
	authService := auth.NewService(deps.Store.Users())
	occupancyService := occupancy.NewService(deps.Store, deps.Cache)
	approvalService := approval.NewService(deps.Store, deps.Notifier, deps.Cache)
	paymentService := payment.NewService(deps.Store, deps.Gateway, deps.Cache)
	dashboardService := dashboard.NewService(deps.Store, deps.Cache)

	authHandler := handlers.NewAuthHandler(authService)
	propertyHandler := handlers.NewPropertyHandler(occupancyService, deps.Store)
	roomHandler := handlers.NewRoomHandler(occupancyService)
	memberHandler := handlers.NewMemberHandler(occupancyService, paymentService, deps.Store)
	bookingHandler := handlers.NewBookingHandler(occupancyService)
	kycHandler := handlers.NewKYCHandler(approvalService, deps.Store)
	adminHandler := handlers.NewAdminHandler(approvalService, deps.Store)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	api := app.Group("/api")
	api.Get("/health", handlers.HealthCheck)
	api.Post("/login", authHandler.Login)
	api.Post("/register", authHandler.Register)
	api.Post("/refresh", authHandler.Refresh)

	// Authenticated, any role.
	authed := api.Group("", authMiddleware.Handler)
	authed.Post("/logout", authHandler.Logout)
	authed.Get("/properties", middleware.HasPermission(models.PermissionPropertyRead), propertyHandler.Browse)
	authed.Get("/properties/:id", middleware.HasPermission(models.PermissionPropertyRead), propertyHandler.Get)

	// Merchant surface.
	merchant := authed.Group("/merchant", middleware.RequireRole(models.RoleMerchant))
	merchant.Get("/dashboard", dashboardHandler.Merchant)
	merchant.Get("/properties", propertyHandler.ListMine)
	merchant.Post("/properties", middleware.HasPermission(models.PermissionPropertyWrite), propertyHandler.Create)
	merchant.Patch("/properties/:id/visibility", middleware.HasPermission(models.PermissionPropertyWrite), propertyHandler.SetVisibility)
	merchant.Post("/rooms", middleware.HasPermission(models.PermissionRoomWrite), roomHandler.Create)
	merchant.Delete("/rooms/:id", middleware.HasPermission(models.PermissionRoomWrite), roomHandler.Delete)
	merchant.Get("/members", memberHandler.List)
	merchant.Post("/members", middleware.HasPermission(models.PermissionMemberWrite), memberHandler.Create)
	merchant.Post("/members/:id/assign", middleware.HasPermission(models.PermissionMemberWrite), memberHandler.Assign)
	merchant.Post("/members/:id/unassign", middleware.HasPermission(models.PermissionMemberWrite), memberHandler.Unassign)
	merchant.Post("/members/:id/reassign", middleware.HasPermission(models.PermissionMemberWrite), memberHandler.Reassign)
	merchant.Delete("/members/:id", middleware.HasPermission(models.PermissionMemberWrite), memberHandler.Deactivate)
	merchant.Post("/members/:id/payments", middleware.HasPermission(models.PermissionPaymentWrite), memberHandler.RecordPayment)
	merchant.Get("/members/:id/payments", memberHandler.PaymentHistory)
	merchant.Get("/bookings", middleware.HasPermission(models.PermissionBookingRead), bookingHandler.List)
	merchant.Post("/kyc", middleware.HasPermission(models.PermissionKYCSubmit), kycHandler.Submit)
	merchant.Get("/kyc/status", kycHandler.Status)

	// Admin surface.
	admin := authed.Group("/admin", middleware.RequireRole(models.RoleAdmin))
	admin.Get("/dashboard", dashboardHandler.Admin)
	admin.Get("/properties", adminHandler.ListProperties)
	admin.Post("/properties/:id/approve", adminHandler.ApproveProperty)
	admin.Post("/properties/:id/reject", adminHandler.RejectProperty)
	admin.Post("/properties/:id/request-changes", adminHandler.RequestPropertyChanges)
	admin.Get("/kyc", adminHandler.ListKYC)
	admin.Post("/kyc/:id/approve", adminHandler.ApproveKYC)
	admin.Post("/kyc/:id/reject", adminHandler.RejectKYC)
	admin.Post("/kyc/:id/request-documents", adminHandler.RequestMoreDocuments)
	admin.Get("/users", adminHandler.ListUsers)
	admin.Get("/bookings", bookingHandler.List)
}
