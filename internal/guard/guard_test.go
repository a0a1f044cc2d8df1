package guard_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ug-competencias/backend/internal/cache/memory"
	"github.com/ug-competencias/backend/internal/guard"
	jwtx "github.com/ug-competencias/backend/internal/jwt"
	memstore "github.com/ug-competencias/backend/internal/store/adapters/memory"
	"github.com/ug-competencias/backend/internal/store/core"
)

func newFixture(t *testing.T) (*guard.Guard, *jwtx.Issuer, *memstore.Store) {
	t.Helper()
	issuer, err := jwtx.NewIssuer("competencias-api", []byte("guard-test-secret-0123456789"))
	if err != nil {
		t.Fatal(err)
	}
	store := memstore.New()
	return guard.New(issuer, store, nil), issuer, store
}

func seedUser(t *testing.T, store *memstore.Store, correo string, role core.Role) *core.User {
	t.Helper()
	u := &core.User{Nombre: "Test", Correo: correo, PasswordHash: "x", Role: role}
	if err := store.Create(context.Background(), u); err != nil {
		t.Fatal(err)
	}
	return u
}

func tokenFor(t *testing.T, issuer *jwtx.Issuer, sub string) string {
	t.Helper()
	tok, _, err := issuer.IssueAccessTTL(sub, time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	return tok
}

func TestAuthenticateOK(t *testing.T) {
	g, issuer, store := newFixture(t)
	u := seedUser(t, store, "a@ug.edu.ec", core.RoleEstudiante)

	got, err := g.Authenticate(context.Background(), tokenFor(t, issuer, "1"))
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if got.ID != u.ID || got.Correo != u.Correo || got.Role != core.RoleEstudiante {
		t.Errorf("unexpected principal: %+v", got)
	}
}

func TestAuthenticateRejects(t *testing.T) {
	g, issuer, store := newFixture(t)
	seedUser(t, store, "a@ug.edu.ec", core.RoleEstudiante)

	cases := map[string]string{
		"empty token":     "",
		"garbage token":   "not-a-jwt",
		"non-numeric sub": tokenFor(t, issuer, "abc"),
		"unknown subject": tokenFor(t, issuer, "999"),
	}
	for name, raw := range cases {
		if _, err := g.Authenticate(context.Background(), raw); !errors.Is(err, guard.ErrUnauthenticated) {
			t.Errorf("%s: want ErrUnauthenticated, got %v", name, err)
		}
	}
}

// Un token vigente de un usuario borrado no se revoca (stateless); la
// resolución contra el directorio es la que lo rechaza.
func TestAuthenticateStaleTokenAfterDelete(t *testing.T) {
	g, issuer, store := newFixture(t)
	seedUser(t, store, "a@ug.edu.ec", core.RoleEstudiante)
	tok := tokenFor(t, issuer, "1")

	// El token funciona antes del borrado.
	if _, err := g.Authenticate(context.Background(), tok); err != nil {
		t.Fatalf("pre-delete Authenticate: %v", err)
	}

	if err := store.Delete(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	g.Invalidate(1)

	if _, err := g.Authenticate(context.Background(), tok); !errors.Is(err, guard.ErrUnauthenticated) {
		t.Errorf("stale token must yield ErrUnauthenticated, got %v", err)
	}
}

func TestAuthorizeMembership(t *testing.T) {
	g, _, _ := newFixture(t)
	est := &core.User{ID: 1, Role: core.RoleEstudiante}

	if err := g.Authorize(est, core.RoleAdmin); !errors.Is(err, guard.ErrForbidden) {
		t.Errorf("estudiante vs {admin}: want ErrForbidden, got %v", err)
	}
	if err := g.Authorize(est, core.RoleEstudiante, core.RoleAdmin); err != nil {
		t.Errorf("estudiante vs {estudiante,admin}: want nil, got %v", err)
	}
	if err := g.Authorize(nil, core.RoleAdmin); !errors.Is(err, guard.ErrUnauthenticated) {
		t.Errorf("nil principal: want ErrUnauthenticated, got %v", err)
	}
}

func TestRequireAtLeastPartialOrder(t *testing.T) {
	g, issuer, store := newFixture(t)
	seedUser(t, store, "admin@ug.edu.ec", core.RoleAdmin)
	seedUser(t, store, "est@ug.edu.ec", core.RoleEstudiante)
	ctx := context.Background()

	// admin satisface el requisito docente
	if _, err := g.RequireAtLeast(ctx, tokenFor(t, issuer, "1"), core.RoleDocente); err != nil {
		t.Errorf("admin must satisfy docente requirement, got %v", err)
	}
	// estudiante no
	if _, err := g.RequireAtLeast(ctx, tokenFor(t, issuer, "2"), core.RoleDocente); !errors.Is(err, guard.ErrForbidden) {
		t.Errorf("estudiante vs docente requirement: want ErrForbidden, got %v", err)
	}
}

func TestCacheInvalidationOnRoleChange(t *testing.T) {
	issuer, err := jwtx.NewIssuer("competencias-api", []byte("guard-test-secret-0123456789"))
	if err != nil {
		t.Fatal(err)
	}
	store := memstore.New()
	g := guard.New(issuer, store, memory.New(time.Minute))
	ctx := context.Background()

	seedUser(t, store, "a@ug.edu.ec", core.RoleEstudiante)
	tok := tokenFor(t, issuer, "1")

	if _, err := g.Authenticate(ctx, tok); err != nil {
		t.Fatal(err)
	}

	if _, err := store.UpdateRole(ctx, 1, core.RoleDocente); err != nil {
		t.Fatal(err)
	}
	g.Invalidate(1)

	u, err := g.Authenticate(ctx, tok)
	if err != nil {
		t.Fatal(err)
	}
	if u.Role != core.RoleDocente {
		t.Errorf("after invalidation role = %q, want docente", u.Role)
	}
}
