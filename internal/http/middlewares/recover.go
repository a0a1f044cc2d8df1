package middlewares

import (
	"net/http"

	"github.com/ug-competencias/backend/internal/http/errors"
	"github.com/ug-competencias/backend/internal/observability/logger"
	"go.uber.org/zap"
)

// WithRecover atrapa panics del handler, los loguea con stacktrace y
// responde 500 sin filtrar el detalle al cliente.
func WithRecover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.From(r.Context()).Error("panic recovered",
						zap.Any("panic", rec),
						zap.Stack("stack"),
						logger.Path(r.URL.Path),
					)
					errors.WriteError(w, errors.ErrInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
