package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/pratik-mahalle/paddock/internal/api/handlers"
	"github.com/pratik-mahalle/paddock/internal/api/middleware"
	"github.com/pratik-mahalle/paddock/internal/config"
	"github.com/pratik-mahalle/paddock/internal/domain/user"
	"github.com/pratik-mahalle/paddock/internal/pkg/logger"
	"github.com/pratik-mahalle/paddock/internal/pkg/metrics"
)

type Handlers struct {
	Health     *handlers.HealthHandler
	Auth       *handlers.AuthHandler
	Team       *handlers.TeamHandler
	Motorcycle *handlers.MotorcycleHandler
	Session    *handlers.SessionHandler
	Billing    *handlers.BillingHandler
	Webhook    *handlers.WebhookHandler
	Admin      *handlers.AdminHandler
}

func New(cfg *config.Config, log *logger.Logger, userService user.Service, h *Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.DefaultCORS(cfg.Server.FrontendURL))
	r.Use(middleware.RateLimit(100, 200)) // 100 req/sec, burst of 200
	r.Use(metrics.Middleware)

	// Public routes
	r.Group(func(r chi.Router) {
		// Swagger documentation
		r.Get("/swagger/*", httpSwagger.WrapHandler)

		// Health checks
		r.Get("/health", h.Health.Healthz)
		r.Get("/healthz", h.Health.Healthz)
		r.Get("/readyz", h.Health.Readyz)

		// Prometheus scrape endpoint
		r.Handle("/metrics", metrics.Handler())

		// Auth endpoints
		r.Post("/api/v1/auth/register", h.Auth.Register)
		r.Post("/api/v1/auth/login", h.Auth.Login)
		r.Post("/api/v1/auth/refresh", h.Auth.Refresh)
		r.Post("/api/v1/auth/logout", h.Auth.Logout)

		// Plans are browsable without an account
		r.Get("/api/v1/plans", h.Billing.ListPlans)

		// Invitation preview for the signup flow
		r.Get("/api/v1/invitations/validate", h.Team.ValidateInvitation)

		// Payment provider callbacks
		r.Post("/api/v1/webhooks/stripe", h.Webhook.HandleStripe)
	})

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(cfg.Auth.JWTSecret))

		// Auth
		r.Get("/api/v1/auth/me", h.Auth.Me)

		// Subscription state
		r.Get("/api/v1/subscription/status", h.Billing.SubscriptionStatus)

		// Teams
		r.Route("/api/v1/teams", func(r chi.Router) {
			r.Get("/", h.Team.List)
			r.Post("/", h.Team.Create)
			r.Get("/{teamID}", h.Team.Get)
			r.Get("/{teamID}/members", h.Team.Members)
			r.Delete("/{teamID}/members/{userID}", h.Team.RemoveMember)
			r.Post("/{teamID}/invitations", h.Team.Invite)
			r.Get("/{teamID}/invitations", h.Team.Invitations)
			r.Delete("/{teamID}/invitations/{invitationID}", h.Team.CancelInvitation)
		})

		// Invitation acceptance
		r.Post("/api/v1/invitations/accept", h.Team.AcceptInvitation)

		// Motorcycles
		r.Route("/api/v1/motorcycles", func(r chi.Router) {
			r.Get("/", h.Motorcycle.List)
			r.Post("/", h.Motorcycle.Create)
			r.Get("/{motorcycleID}", h.Motorcycle.Get)
			r.Put("/{motorcycleID}", h.Motorcycle.Update)
			r.Delete("/{motorcycleID}", h.Motorcycle.Delete)
			r.Get("/{motorcycleID}/sessions", h.Session.ListByMotorcycle)
		})

		// Sessions
		r.Route("/api/v1/sessions", func(r chi.Router) {
			r.Get("/", h.Session.List)
			r.Post("/", h.Session.Save)
			r.Get("/{sessionID}", h.Session.Get)
			r.Put("/{sessionID}", h.Session.Update)
			r.Delete("/{sessionID}", h.Session.Delete)
		})

		// Billing
		r.Route("/api/v1/billing", func(r chi.Router) {
			r.Post("/checkout", h.Billing.Checkout)
			r.Post("/cancel", h.Billing.CancelSubscription)
		})

		// Admin
		r.Route("/api/v1/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin(userService))
			r.Get("/users", h.Admin.ListUsers)
			r.Post("/switch-user", h.Admin.SwitchUser)
		})
	})

	return r
}
