package admin_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	svc "github.com/ug-competencias/backend/internal/http/services/admin"
	memstore "github.com/ug-competencias/backend/internal/store/adapters/memory"
	"github.com/ug-competencias/backend/internal/store/core"
)

func seedUsers(t *testing.T, users core.UserRepository) (admin, est *core.User) {
	t.Helper()
	ctx := context.Background()

	admin = &core.User{Nombre: "Administrador", Correo: "admin@ug.edu.ec", PasswordHash: "x", Role: core.RoleAdmin}
	require.NoError(t, users.Create(ctx, admin))

	est = &core.User{Nombre: "Maria Soto", Correo: "maria.soto@ug.edu.ec", PasswordHash: "x", Role: core.RoleEstudiante}
	require.NoError(t, users.Create(ctx, est))
	return admin, est
}

func TestListNewestFirst(t *testing.T) {
	users := memstore.New()
	admin, est := seedUsers(t, users)
	s := svc.NewUsersService(svc.UsersDeps{Users: users})

	got, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, est.ID, got[0].ID)
	assert.Equal(t, admin.ID, got[1].ID)
}

func TestChangeRole(t *testing.T) {
	users := memstore.New()
	_, est := seedUsers(t, users)
	s := svc.NewUsersService(svc.UsersDeps{Users: users})
	ctx := context.Background()

	u, err := s.ChangeRole(ctx, est.ID, "docente")
	require.NoError(t, err)
	assert.Equal(t, core.RoleDocente, u.Role)

	// Se aceptan variantes con mayúsculas o espacios.
	u, err = s.ChangeRole(ctx, est.ID, "  ADMIN ")
	require.NoError(t, err)
	assert.Equal(t, core.RoleAdmin, u.Role)
}

func TestChangeRoleInvalid(t *testing.T) {
	users := memstore.New()
	_, est := seedUsers(t, users)
	s := svc.NewUsersService(svc.UsersDeps{Users: users})

	_, err := s.ChangeRole(context.Background(), est.ID, "superuser")
	assert.ErrorIs(t, err, svc.ErrInvalidRole)
}

func TestChangeRoleUnknownUser(t *testing.T) {
	users := memstore.New()
	seedUsers(t, users)
	s := svc.NewUsersService(svc.UsersDeps{Users: users})

	_, err := s.ChangeRole(context.Background(), 9999, "docente")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestDelete(t *testing.T) {
	users := memstore.New()
	admin, est := seedUsers(t, users)
	s := svc.NewUsersService(svc.UsersDeps{Users: users})
	ctx := context.Background()

	require.NoError(t, s.Delete(ctx, admin, est.ID))

	_, err := users.GetByID(ctx, est.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestDeleteSelf(t *testing.T) {
	users := memstore.New()
	admin, _ := seedUsers(t, users)
	s := svc.NewUsersService(svc.UsersDeps{Users: users})

	err := s.Delete(context.Background(), admin, admin.ID)
	assert.ErrorIs(t, err, svc.ErrSelfDelete)

	// La cuenta sigue existiendo.
	_, getErr := users.GetByID(context.Background(), admin.ID)
	assert.NoError(t, getErr)
}

func TestDeleteUnknownUser(t *testing.T) {
	users := memstore.New()
	admin, _ := seedUsers(t, users)
	s := svc.NewUsersService(svc.UsersDeps{Users: users})

	// Id inexistente responde not found aunque coincida el check de self.
	err := s.Delete(context.Background(), admin, 9999)
	assert.ErrorIs(t, err, core.ErrNotFound)
}
