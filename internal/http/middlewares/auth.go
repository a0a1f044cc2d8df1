package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ug-competencias/backend/internal/guard"
	httperrors "github.com/ug-competencias/backend/internal/http/errors"
	"github.com/ug-competencias/backend/internal/store/core"
)

// bearerToken extrae el token de "Authorization: Bearer <token>".
func bearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequireAuth valida el bearer token y cuelga el usuario autenticado en el contexto.
func RequireAuth(g *guard.Guard) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
				httperrors.WriteError(w, httperrors.ErrTokenMissing)
				return
			}

			u, err := g.Authenticate(r.Context(), raw)
			if err != nil {
				w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
				httperrors.WriteError(w, httperrors.ErrTokenInvalid)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), u)))
		})
	}
}

// RequireRole exige que el usuario autenticado tenga alguno de los roles dados.
// Debe encadenarse después de RequireAuth.
func RequireRole(roles ...core.Role) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u := GetPrincipal(r.Context())
			if err := guard.Authorize(u, roles...); err != nil {
				if errors.Is(err, guard.ErrUnauthenticated) {
					w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
					httperrors.WriteError(w, httperrors.ErrTokenMissing)
					return
				}
				httperrors.WriteError(w, httperrors.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
