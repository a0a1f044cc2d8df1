// Package guard resuelve el principal autenticado desde un bearer token y
// aplica los checks de rol de cada operación. No guarda estado por request:
// Authenticate y Authorize son lecturas puras sobre el issuer y el directorio
// de usuarios, seguras para uso concurrente.
package guard

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/ug-competencias/backend/internal/cache"
	jwtx "github.com/ug-competencias/backend/internal/jwt"
	"github.com/ug-competencias/backend/internal/observability/logger"
	"github.com/ug-competencias/backend/internal/store/core"
)

var (
	// ErrUnauthenticated cubre token ausente/inválido/vencido y también el
	// caso de token vigente cuyo subject ya no existe en el directorio
	// (usuario borrado después de emitir el token).
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden indica principal válido con rol insuficiente.
	ErrForbidden = errors.New("forbidden")
)

// cacheTTL acota la ventana en la que un lookup de usuario puede servirse
// desde cache. Las operaciones que mutan usuarios invalidan la entrada.
const cacheTTL = 30 * time.Second

// Guard compone TokenService + UserDirectory.
type Guard struct {
	tokens *jwtx.Issuer
	users  core.UserRepository
	cache  cache.Cache // opcional; nil desactiva el cache
}

func New(tokens *jwtx.Issuer, users core.UserRepository, c cache.Cache) *Guard {
	return &Guard{tokens: tokens, users: users, cache: c}
}

// Authenticate valida el token y resuelve el principal en el directorio.
// La autenticación siempre precede a la autorización: un request sin
// principal nunca llega a evaluación de roles.
func (g *Guard) Authenticate(ctx context.Context, rawToken string) (*core.User, error) {
	if rawToken == "" {
		return nil, ErrUnauthenticated
	}

	sub, err := g.tokens.Parse(rawToken)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	if u, ok := g.cachedUser(id); ok {
		return u, nil
	}

	u, err := g.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			// Token aún vigente pero el usuario fue borrado: el token
			// sigue sin revocarse (stateless), el directorio manda.
			return nil, ErrUnauthenticated
		}
		logger.From(ctx).Error("guard: user lookup failed", logger.Err(err))
		return nil, ErrUnauthenticated
	}

	g.storeUser(u)
	return u, nil
}

// Authorize verifica membresía del rol del principal en el set permitido.
// Retorna nil dejando el principal utilizable por el caller (ej: checks de
// self-action en admin).
func Authorize(u *core.User, allowed ...core.Role) error {
	if u == nil {
		return ErrUnauthenticated
	}
	for _, r := range allowed {
		if u.Role == r {
			return nil
		}
	}
	return ErrForbidden
}

func (g *Guard) Authorize(u *core.User, allowed ...core.Role) error {
	return Authorize(u, allowed...)
}

// Require compone Authenticate + Authorize con un set explícito de roles.
func (g *Guard) Require(ctx context.Context, rawToken string, allowed ...core.Role) (*core.User, error) {
	u, err := g.Authenticate(ctx, rawToken)
	if err != nil {
		return nil, err
	}
	if err := g.Authorize(u, allowed...); err != nil {
		return nil, err
	}
	return u, nil
}

// RequireAtLeast compone Authenticate + el orden parcial de roles:
// exigir docente admite docente y admin; exigir admin admite solo admin.
func (g *Guard) RequireAtLeast(ctx context.Context, rawToken string, required core.Role) (*core.User, error) {
	u, err := g.Authenticate(ctx, rawToken)
	if err != nil {
		return nil, err
	}
	if !u.Role.Allows(required) {
		return nil, ErrForbidden
	}
	return u, nil
}

// Invalidate borra la entrada de cache de un usuario; debe llamarse al
// mutar o borrar el registro para no servir un principal desactualizado
// más allá del TTL.
func (g *Guard) Invalidate(id int64) {
	if g.cache != nil {
		g.cache.Delete(userKey(id))
	}
}

func userKey(id int64) string { return "user:" + strconv.FormatInt(id, 10) }

func (g *Guard) cachedUser(id int64) (*core.User, bool) {
	if g.cache == nil {
		return nil, false
	}
	b, ok := g.cache.Get(userKey(id))
	if !ok {
		return nil, false
	}
	var u core.User
	if err := json.Unmarshal(b, &u); err != nil {
		g.cache.Delete(userKey(id))
		return nil, false
	}
	// PasswordHash lleva json:"-": nunca entra al cache.
	return &u, true
}

func (g *Guard) storeUser(u *core.User) {
	if g.cache == nil || u == nil {
		return
	}
	if b, err := json.Marshal(u); err == nil {
		g.cache.Set(userKey(u.ID), b, cacheTTL)
	}
}
