// Package httptransport is the thin HTTP layer. Handlers decode requests,
// delegate to domain services, and encode responses; business rules stay in
// the services.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"assent/internal/identity"
	"assent/internal/platform/middleware"
)

const (
	requestTimeout = 30 * time.Second
	maxBodyBytes   = 64 * 1024
)

// Handler bundles the domain services the HTTP layer delegates to.
type Handler struct {
	wordings WordingService
	consents ConsentService
	profiles ProfileService
	tokens   TokenIssuer
	logger   *slog.Logger
}

// NewHandler constructs the HTTP handler.
func NewHandler(wordings WordingService, consents ConsentService, profiles ProfileService, tokens TokenIssuer, logger *slog.Logger) *Handler {
	return &Handler{
		wordings: wordings,
		consents: consents,
		profiles: profiles,
		tokens:   tokens,
		logger:   logger,
	}
}

// RouterConfig carries boundary settings the router needs.
type RouterConfig struct {
	JWTSigningKey []byte
}

// NewRouter wires all endpoints with the middleware stack. The mounts
// callback lets the caller attach infrastructure endpoints (health, metrics)
// outside the authenticated surface.
func NewRouter(h *Handler, cfg RouterConfig, logger *slog.Logger, mounts ...func(chi.Router)) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.BodyLimit(maxBodyBytes))

	for _, mount := range mounts {
		mount(r)
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)

		// Public endpoints.
		r.Post("/auth/signup", h.handleSignup)
		r.Post("/auth/login", h.handleLogin)
		r.Get("/consents/required", h.handleConsentRequired)
		r.Get("/consents/wordings/current", h.handleCurrentWording)

		// Authenticated endpoints.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(cfg.JWTSigningKey, logger))

			r.Get("/consents/wordings/{version}", h.handleGetWording)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRoles(identity.RoleLegal, identity.RoleAdmin))
				r.Post("/consents/wordings", h.handleAddWording)
				r.Put("/consents/wordings/{version}", h.handleUpdateWording)
				r.Delete("/consents/wordings/{version}", h.handleDeleteWording)
				r.Get("/consents/last/{userName}", h.handleLastConsent)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRoles(identity.RoleConsumer))
				r.Post("/consents", h.handleGiveConsent)
				r.Post("/consents/withdrawal", h.handleWithdrawConsent)
			})

			r.Get("/consumers/{id}", h.handleGetProfile)
			r.Put("/consumers/{id}", h.handleUpdateProfile)
			r.Delete("/consumers/{id}", h.handleDeleteProfile)
		})
	})

	return r
}
