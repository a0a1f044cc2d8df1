package middlewares

import (
	"context"

	"github.com/ug-competencias/backend/internal/store/core"
)

type ctxKey string

const (
	ctxPrincipalKey ctxKey = "principal"
	ctxRequestIDKey ctxKey = "request_id"
)

// WithPrincipal inyecta el usuario autenticado en el contexto.
func WithPrincipal(ctx context.Context, u *core.User) context.Context {
	return context.WithValue(ctx, ctxPrincipalKey, u)
}

// GetPrincipal obtiene el usuario autenticado del contexto.
// Retorna nil si el middleware de auth no corrió o falló.
func GetPrincipal(ctx context.Context) *core.User {
	if v := ctx.Value(ctxPrincipalKey); v != nil {
		if u, ok := v.(*core.User); ok {
			return u
		}
	}
	return nil
}

func setRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxRequestIDKey, requestID)
}

// GetRequestID obtiene el request ID del contexto.
func GetRequestID(ctx context.Context) string {
	if v := ctx.Value(ctxRequestIDKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
