package bootstrap_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ug-competencias/backend/internal/bootstrap"
	"github.com/ug-competencias/backend/internal/security/password"
	memstore "github.com/ug-competencias/backend/internal/store/adapters/memory"
	"github.com/ug-competencias/backend/internal/store/core"
)

var testHash = &password.Params{Memory: 8 * 1024, Time: 1, Parallelism: 1, KeyLen: 32}

func testSeed() bootstrap.AdminSeed {
	return bootstrap.AdminSeed{
		Nombre:     "Administrador",
		Correo:     "admin@ug.edu.ec",
		Password:   "Admin1234",
		HashParams: testHash,
	}
}

func TestEnsureAdminCreates(t *testing.T) {
	ctx := context.Background()
	users := memstore.New()

	require.NoError(t, bootstrap.EnsureAdmin(ctx, users, testSeed()))

	u, err := users.GetByEmail(ctx, "admin@ug.edu.ec")
	require.NoError(t, err)
	assert.Equal(t, core.RoleAdmin, u.Role)
	assert.Equal(t, "Administrador", u.Nombre)
	assert.True(t, password.Verify("Admin1234", u.PasswordHash))
}

func TestEnsureAdminIdempotent(t *testing.T) {
	ctx := context.Background()
	users := memstore.New()

	require.NoError(t, bootstrap.EnsureAdmin(ctx, users, testSeed()))
	first, err := users.GetByEmail(ctx, "admin@ug.edu.ec")
	require.NoError(t, err)

	require.NoError(t, bootstrap.EnsureAdmin(ctx, users, testSeed()))
	second, err := users.GetByEmail(ctx, "admin@ug.edu.ec")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.PasswordHash, second.PasswordHash)

	all, err := users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestEnsureAdminRestoresRole(t *testing.T) {
	ctx := context.Background()
	users := memstore.New()

	hash, err := password.Hash(*testHash, "Admin1234")
	require.NoError(t, err)
	u := &core.User{Nombre: "Administrador", Correo: "admin@ug.edu.ec", PasswordHash: hash, Role: core.RoleEstudiante}
	require.NoError(t, users.Create(ctx, u))

	require.NoError(t, bootstrap.EnsureAdmin(ctx, users, testSeed()))

	got, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, core.RoleAdmin, got.Role)
}

func TestEnsureAdminRepairsOldInstall(t *testing.T) {
	ctx := context.Background()
	users := memstore.New()

	hash, err := password.Hash(*testHash, "vieja-password")
	require.NoError(t, err)
	old := &core.User{Nombre: "Administrador", Correo: "admin@viejo.edu.ec", PasswordHash: hash, Role: core.RoleAdmin}
	require.NoError(t, users.Create(ctx, old))

	require.NoError(t, bootstrap.EnsureAdmin(ctx, users, testSeed()))

	got, err := users.GetByEmail(ctx, "admin@ug.edu.ec")
	require.NoError(t, err)
	assert.Equal(t, old.ID, got.ID)
	assert.True(t, password.Verify("Admin1234", got.PasswordHash))

	_, err = users.GetByEmail(ctx, "admin@viejo.edu.ec")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestEnsureAdminRejectsIncompleteSeed(t *testing.T) {
	ctx := context.Background()
	users := memstore.New()

	seed := testSeed()
	seed.Password = ""
	require.Error(t, bootstrap.EnsureAdmin(ctx, users, seed))
}
