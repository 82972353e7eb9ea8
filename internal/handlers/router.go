package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"eventbroker/internal/middleware"
	"eventbroker/internal/services"
)

// RouterConfig carries the services and middleware the router wires up.
type RouterConfig struct {
	Auth         *services.AuthService
	Events       *services.EventService
	Bookings     *services.BookingService
	Payments     *services.PaymentService
	Gateway      services.PaymentGateway
	Verification *services.VerificationService
	Sessions     *middleware.AuthMiddleware
}

// NewRouter assembles the HTTP routes.
func NewRouter(cfg RouterConfig) http.Handler {
	healthHandler := NewHealthHandler()
	authHandler := NewAuthHandler(cfg.Auth, cfg.Sessions)
	eventHandler := NewEventHandler(cfg.Events)
	bookingHandler := NewBookingHandler(cfg.Bookings)
	paymentHandler := NewPaymentHandler(cfg.Payments, cfg.Gateway)
	verificationHandler := NewVerificationHandler(cfg.Verification)
	adminHandler := NewAdminEventHandler(cfg.Events)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(cfg.Sessions.LoadUser)

	r.Get("/health", healthHandler.Health)
	r.Get("/test", healthHandler.Test)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/logout", authHandler.Logout)
		r.Get("/auth/me", authHandler.Me)

		r.Get("/events", eventHandler.List)
		r.Get("/events/{id}", eventHandler.Get)

		r.Post("/verify-ticket", verificationHandler.Verify)

		// The payment callbacks carry no session; the signature check is
		// the authentication.
		r.Post("/create-order", paymentHandler.CreateOrder)
		r.Post("/verify-payment", paymentHandler.VerifyPayment)

		r.Group(func(r chi.Router) {
			r.Use(cfg.Sessions.RequireAuth)

			r.Post("/events/{id}/bookings", bookingHandler.Create)
			r.Get("/bookings/{id}", bookingHandler.Get)
			r.Get("/my/bookings", bookingHandler.ListMine)
			r.Post("/rpc/create-razorpay-order", paymentHandler.CreateRawOrder)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(cfg.Sessions.RequireAdmin)

			r.Post("/events", adminHandler.Create)
			r.Put("/events/{id}", adminHandler.Update)
			r.Delete("/events/{id}", adminHandler.Delete)
			r.Post("/events/{id}/media", adminHandler.UploadMedia)
		})
	})

	return r
}
