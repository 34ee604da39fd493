package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/brokerage-crm/internal/api/http/handlers"
	"github.com/spec-kit/brokerage-crm/internal/auth"
	"github.com/spec-kit/brokerage-crm/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Leads          *handlers.LeadsHandler
	Appointments   *handlers.AppointmentsHandler
	Inventory      *handlers.InventoryHandler
	Notifications  *handlers.NotificationsHandler
	Scoring        *handlers.ScoringHandler
	Staff          *handlers.StaffHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)

	api := app.Group("/api/v1", cfg.AuthMiddleware.Handle, auth.RequireRole())

	api.Get("/auth/me", cfg.Auth.Me)
	api.Post("/auth/password", cfg.Auth.ChangePassword)

	api.Post("/leads", cfg.Leads.CreateLead)
	api.Get("/leads", cfg.Leads.ListLeads)
	api.Get("/leads/:id", cfg.Leads.GetLead)
	api.Patch("/leads/:id", cfg.Leads.UpdateLead)
	api.Post("/leads/:id/stage", cfg.Leads.ChangeStage)
	api.Post("/leads/:id/owner", cfg.Leads.ChangeOwner)
	api.Post("/leads/:id/notes", cfg.Leads.AddNote)
	api.Get("/leads/:id/notes", cfg.Leads.ListNotes)
	api.Post("/leads/:id/qualify", cfg.Scoring.QualifyLead)

	api.Post("/appointments", cfg.Appointments.Schedule)
	api.Get("/appointments", cfg.Appointments.List)
	api.Patch("/appointments/:id", cfg.Appointments.Update)
	api.Post("/appointments/:id/cancel", cfg.Appointments.Cancel)

	api.Post("/inventory", cfg.Inventory.CreateVehicle)
	api.Get("/inventory", cfg.Inventory.ListVehicles)
	api.Get("/inventory/:id", cfg.Inventory.GetVehicle)
	api.Patch("/inventory/:id", cfg.Inventory.UpdateVehicle)

	api.Get("/notifications", cfg.Notifications.List)
	api.Get("/notifications/unread", cfg.Notifications.UnreadCount)
	api.Post("/notifications/:id/read", cfg.Notifications.MarkRead)

	api.Post("/scoring/applications", cfg.Scoring.ScoreApplication)

	staffGroup := api.Group("/staff")
	staffGroup.Get("/", cfg.Staff.ListStaff)
	staffGroup.Get("/:id", cfg.Staff.GetStaff)

	adminGroup := staffGroup.Group("", auth.RequireRole(domain.StaffRoleAdmin))
	adminGroup.Post("/", cfg.Staff.CreateStaff)
	adminGroup.Patch("/:id", cfg.Staff.UpdateStaff)
}
