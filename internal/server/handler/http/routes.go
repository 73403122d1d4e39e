package http

import (
	"net/http"

	"github.com/atinyakov/exhibition/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// Handlers groups the endpoint handlers mounted by NewRouter.
type Handlers struct {
	Admin      *AdminHandler
	Messages   *MessageHandler
	Exhibition *ExhibitionHandler
	Health     *HealthHandler
}

// NewRouter constructs the site's HTTP handler.
//
// Routes:
//
//	GET   /teaser                        → Exhibition.Teaser
//	GET   /admin                         → Admin.Root
//	GET   /admin/login                   → Admin.LoginPage
//	POST  /admin/login                   → Admin.Login (form)
//	POST  /admin/logout                  → Admin.Logout
//	GET   /api/health                    → Health.Health
//	GET   /api/exhibition                → Exhibition.Status
//	GET   /api/messages                  → Messages.List
//	POST  /api/messages                  → Messages.Create (JSON)
//	PATCH /api/messages/{id}             → Messages.Update (JSON)
//	POST  /api/messages/{id}/verify      → Messages.Verify (JSON)
//	GET   /api/designers/{id}/messages   → Messages.ListByDesigner (page 0-indexed, limit = pageSize)
//
// Middleware chain (applied in order):
//  1. RequestID            assigns or propagates X-Request-Id
//  2. WithRequestLogging   logs every request
//  3. Recovery             turns panics into 500
//  4. RealIP               trusts X-Forwarded-For / X-Real-IP
//  5. Gate                 resolves the session and applies redirects
func NewRouter(h Handlers, gate *middleware.Gate, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(chiMiddleware.RealIP)
	r.Use(gate.Handler)

	r.Get(middleware.TeaserPath, h.Exhibition.Teaser)

	r.Route(middleware.AdminPath, func(r chi.Router) {
		r.Get("/", h.Admin.Root)
		r.Get("/login", h.Admin.LoginPage)
		r.Post("/login", h.Admin.Login)
		r.Post("/logout", h.Admin.Logout)
	})

	r.Route(middleware.APIPath, func(r chi.Router) {
		r.Get("/health", h.Health.Health)
		r.Get("/exhibition", h.Exhibition.Status)
		r.Get("/messages", h.Messages.List)
		r.Get("/designers/{id}/messages", h.Messages.ListByDesigner)

		// Write endpoints only accept JSON bodies
		r.Group(func(r chi.Router) {
			r.Use(chiMiddleware.AllowContentType("application/json"))
			r.Post("/messages", h.Messages.Create)
			r.Patch("/messages/{id}", h.Messages.Update)
			r.Post("/messages/{id}/verify", h.Messages.Verify)
		})
	})

	return r
}
