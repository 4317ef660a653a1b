// Package handler exposes the CRM intake and admin endpoints over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"clienthub/internal/crm/models"
	"clienthub/internal/crm/service"
	"clienthub/internal/crm/store/registration"
	"clienthub/internal/platform/metrics"
	"clienthub/internal/platform/middleware"
	id "clienthub/pkg/domain"
)

// Service is the CRM surface the handler consumes.
type Service interface {
	Subscribe(ctx context.Context, in models.ContactFields) (*models.Client, error)
	RegisterForEvent(ctx context.Context, in service.RegisterInput) (*service.RegistrationResult, error)
	AdminCreateClient(ctx context.Context, in models.ContactFields) (*models.Client, error)
	AdminEditClient(ctx context.Context, clientID id.ClientID, in models.ContactFields) (*models.Client, error)
	ListClients(ctx context.Context) ([]*models.Client, error)
	ListRegistrations(ctx context.Context, f registration.Filter) ([]*models.Registration, error)
}

// AuthService issues and validates admin session tokens.
type AuthService interface {
	middleware.TokenValidator
	Login(username, password string) (string, error)
}

// Handler wires the CRM routes.
type Handler struct {
	logger    *slog.Logger
	svc       Service
	auth      AuthService
	metrics   *metrics.Metrics
	rateLimit func(scope string) func(http.Handler) http.Handler
}

// Option configures a Handler.
type Option func(*Handler)

// WithRateLimit applies per-scope rate limiting to the public endpoints.
func WithRateLimit(limit func(scope string) func(http.Handler) http.Handler) Option {
	return func(h *Handler) {
		h.rateLimit = limit
	}
}

// New creates a CRM Handler.
func New(svc Service, auth AuthService, logger *slog.Logger, m *metrics.Metrics, opts ...Option) *Handler {
	h := &Handler{
		logger:  logger,
		svc:     svc,
		auth:    auth,
		metrics: m,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register registers the CRM routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	router := chi.NewRouter()
	router.Use(middleware.Recovery(h.logger))
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(h.logger))
	router.Use(middleware.Timeout(30 * time.Second))
	router.Use(middleware.ContentTypeJSON)
	router.Use(middleware.Latency(h.metrics))

	router.Group(func(public chi.Router) {
		if h.rateLimit != nil {
			public.With(h.rateLimit("subscribe")).Post("/subscribe", h.handleSubscribe)
			public.With(h.rateLimit("event-registration")).Post("/event-registration", h.handleRegister)
		} else {
			public.Post("/subscribe", h.handleSubscribe)
			public.Post("/event-registration", h.handleRegister)
		}
	})

	router.Post("/admin/login", h.handleAdminLogin)

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireAdmin(h.auth, h.logger))
		admin.Get("/event-registration", h.handleListRegistrations)
		admin.Get("/admin/clients", h.handleListClients)
		admin.Post("/admin/clients", h.handleAdminCreateClient)
		admin.Put("/admin/clients/{id}", h.handleAdminEditClient)
	})

	r.Mount("/", router)
}
