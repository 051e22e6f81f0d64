package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gurukrpa/gurukrpa-backend/internal/handlers"
	"github.com/gurukrpa/gurukrpa-backend/internal/middleware"
	"github.com/gurukrpa/gurukrpa-backend/internal/services"
)

func Setup(
	app *fiber.App,
	identity services.IdentityStore,
	policy middleware.AuthorizationPolicy,
	authHandler *handlers.AuthHandler,
	adminHandler *handlers.AdminHandler,
	paymentHandler *handlers.PaymentHandler,
	whatsappHandler *handlers.WhatsAppHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth - public, with a stricter 10 req/min limit
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/signup", authHandler.Signup)
	auth.Post("/login", authHandler.Login)

	// Payment - order creation needs an authenticated caller, the gateway callback
	// verification does not.
	api.Post("/payment/create-order", middleware.AuthRequired(identity), paymentHandler.CreateOrder)
	api.Post("/payment/verify-payment", paymentHandler.VerifyPayment)

	api.Post("/whatsapp/send-message", whatsappHandler.SendMessage)

	// Admin dashboard surface
	admin := api.Group("/admin", middleware.AuthRequired(identity), middleware.AdminRequired(policy))
	admin.Get("/users", adminHandler.ListUsers)
	admin.Get("/stats", adminHandler.Stats)
	admin.Get("/bookings", adminHandler.ListBookings)
	admin.Delete("/users/:id", adminHandler.DeleteUser)
	admin.Get("/users/:id/export", adminHandler.ExportJSON)
	admin.Get("/users/:id/export.pdf", adminHandler.ExportPDF)
}
