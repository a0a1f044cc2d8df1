// Package router arma el árbol de rutas del servicio.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ug-competencias/backend/internal/guard"
	adminctrl "github.com/ug-competencias/backend/internal/http/controllers/admin"
	authctrl "github.com/ug-competencias/backend/internal/http/controllers/auth"
	healthctrl "github.com/ug-competencias/backend/internal/http/controllers/health"
	httperrors "github.com/ug-competencias/backend/internal/http/errors"
	mw "github.com/ug-competencias/backend/internal/http/middlewares"
	"github.com/ug-competencias/backend/internal/metrics"
	"github.com/ug-competencias/backend/internal/store/core"
)

// Deps agrupa todo lo que el router necesita para registrar rutas.
type Deps struct {
	Guard *guard.Guard

	Auth   *authctrl.Controllers
	Admin  *adminctrl.UsersController
	Health *healthctrl.HealthController

	// MetricsHandler, si está presente, se monta en /metrics.
	MetricsHandler http.Handler

	// CORSOrigins son los orígenes permitidos ("*" permite todos).
	CORSOrigins []string
}

// New construye el router con toda la cadena de middlewares.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.WithRequestID())
	r.Use(mw.WithLogging())
	r.Use(mw.WithRecover())
	r.Use(metrics.WithMetrics)
	r.Use(mw.WithCORS(deps.CORSOrigins))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
	})

	r.Get("/", deps.Health.Healthz)
	r.Get("/healthz", deps.Health.Healthz)
	r.Get("/readyz", deps.Health.Readyz)
	if deps.MetricsHandler != nil {
		r.Handle("/metrics", deps.MetricsHandler)
	}

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", deps.Auth.Register.Register)
		r.Post("/login", deps.Auth.Login.Login)

		r.Group(func(r chi.Router) {
			r.Use(mw.RequireAuth(deps.Guard))
			r.Get("/me", deps.Auth.Me.Me)
		})
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(mw.RequireAuth(deps.Guard))
		r.Use(mw.RequireRole(core.RoleAdmin))

		r.Get("/users", deps.Admin.List)
		r.Put("/users/{id}/role", deps.Admin.ChangeRole)
		r.Delete("/users/{id}", deps.Admin.Delete)
	})

	return r
}
