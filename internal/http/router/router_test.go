package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ug-competencias/backend/internal/bootstrap"
	"github.com/ug-competencias/backend/internal/guard"
	adminctrl "github.com/ug-competencias/backend/internal/http/controllers/admin"
	authctrl "github.com/ug-competencias/backend/internal/http/controllers/auth"
	healthctrl "github.com/ug-competencias/backend/internal/http/controllers/health"
	"github.com/ug-competencias/backend/internal/http/router"
	adminsvc "github.com/ug-competencias/backend/internal/http/services/admin"
	authsvc "github.com/ug-competencias/backend/internal/http/services/auth"
	jwtx "github.com/ug-competencias/backend/internal/jwt"
	"github.com/ug-competencias/backend/internal/security/password"
	memstore "github.com/ug-competencias/backend/internal/store/adapters/memory"
	"github.com/ug-competencias/backend/internal/store/core"
)

var testHash = password.Params{Memory: 8 * 1024, Time: 1, Parallelism: 1, KeyLen: 32}

type testAPI struct {
	handler http.Handler
	users   core.UserRepository
}

func newAPI(t *testing.T) *testAPI {
	t.Helper()

	users := memstore.New()
	issuer, err := jwtx.NewIssuer("test", []byte("router-test-secret"))
	require.NoError(t, err)
	g := guard.New(issuer, users, nil)

	seed := bootstrap.AdminSeed{
		Nombre:     "Administrador",
		Correo:     "admin@ug.edu.ec",
		Password:   "Admin1234",
		HashParams: &testHash,
	}
	require.NoError(t, bootstrap.EnsureAdmin(context.Background(), users, seed))

	login := authsvc.NewLoginService(authsvc.LoginDeps{Users: users, Issuer: issuer})
	register := authsvc.NewRegisterService(authsvc.RegisterDeps{
		Users:         users,
		AllowedDomain: "ug.edu.ec",
		HashParams:    testHash,
	})
	usersSvc := adminsvc.NewUsersService(adminsvc.UsersDeps{Users: users, Guard: g})

	h := router.New(router.Deps{
		Guard:       g,
		Auth:        authctrl.NewControllers(login, register),
		Admin:       adminctrl.NewUsersController(usersSvc),
		Health:      healthctrl.NewHealthController(users, "test"),
		CORSOrigins: []string{"*"},
	})
	return &testAPI{handler: h, users: users}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) login(t *testing.T, correo, pw string) string {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/auth/login", "", map[string]string{"correo": correo, "password": pw})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Equal(t, "bearer", out.TokenType)
	require.NotEmpty(t, out.AccessToken)
	return out.AccessToken
}

func TestHealthz(t *testing.T) {
	api := newAPI(t)
	rec := api.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestRegisterLoginMe(t *testing.T) {
	api := newAPI(t)

	rec := api.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"nombre":   "Eva Rivas",
		"correo":   "eva.rivas@ug.edu.ec",
		"password": "clave1234",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	token := api.login(t, "eva.rivas@ug.edu.ec", "clave1234")

	rec = api.do(t, http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var me struct {
		Nombre string `json:"nombre"`
		Correo string `json:"correo"`
		Role   string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, "Eva Rivas", me.Nombre)
	assert.Equal(t, "eva.rivas@ug.edu.ec", me.Correo)
	assert.Equal(t, "estudiante", me.Role)

	// La respuesta nunca expone el hash.
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestRegisterRejections(t *testing.T) {
	api := newAPI(t)

	rec := api.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"nombre":   "Juan Gomez",
		"correo":   "juan@gmail.com",
		"password": "clave1234",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := map[string]string{
		"nombre":   "Juan Gomez",
		"correo":   "juan.gomez@ug.edu.ec",
		"password": "clave1234",
	}
	rec = api.do(t, http.MethodPost, "/auth/register", "", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = api.do(t, http.MethodPost, "/auth/register", "", body)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoginInvalidCredentials(t *testing.T) {
	api := newAPI(t)

	rec := api.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"correo":   "admin@ug.edu.ec",
		"password": "incorrecta",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMeRequiresToken(t *testing.T) {
	api := newAPI(t)

	rec := api.do(t, http.MethodGet, "/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("WWW-Authenticate"))

	rec = api.do(t, http.MethodGet, "/auth/me", "token-basura", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRequiresAdminRole(t *testing.T) {
	api := newAPI(t)

	rec := api.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"nombre":   "Sin Permisos",
		"correo":   "sin.permisos@ug.edu.ec",
		"password": "clave1234",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	token := api.login(t, "sin.permisos@ug.edu.ec", "clave1234")

	rec = api.do(t, http.MethodGet, "/admin/users", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(t, http.MethodGet, "/admin/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminUserManagement(t *testing.T) {
	api := newAPI(t)
	adminToken := api.login(t, "admin@ug.edu.ec", "Admin1234")

	rec := api.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"nombre":   "Rosa Parra",
		"correo":   "rosa.parra@ug.edu.ec",
		"password": "clave1234",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	// Listado: el más reciente primero.
	rec = api.do(t, http.MethodGet, "/admin/users", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []struct {
		ID   int64  `json:"id"`
		Role string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, created.ID, list[0].ID)

	// Promoción a docente.
	rec = api.do(t, http.MethodPut, fmt.Sprintf("/admin/users/%d/role", created.ID), adminToken, map[string]string{"role": "docente"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"docente"`)

	// Rol inválido.
	rec = api.do(t, http.MethodPut, fmt.Sprintf("/admin/users/%d/role", created.ID), adminToken, map[string]string{"role": "superuser"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Usuario inexistente.
	rec = api.do(t, http.MethodPut, "/admin/users/99999/role", adminToken, map[string]string{"role": "docente"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Borrado.
	rec = api.do(t, http.MethodDelete, fmt.Sprintf("/admin/users/%d", created.ID), adminToken, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(t, http.MethodDelete, fmt.Sprintf("/admin/users/%d", created.ID), adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminCannotDeleteSelf(t *testing.T) {
	api := newAPI(t)
	adminToken := api.login(t, "admin@ug.edu.ec", "Admin1234")

	admin, err := api.users.GetByEmail(context.Background(), "admin@ug.edu.ec")
	require.NoError(t, err)

	rec := api.do(t, http.MethodDelete, fmt.Sprintf("/admin/users/%d", admin.ID), adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeletedUserTokenStopsWorking(t *testing.T) {
	api := newAPI(t)
	adminToken := api.login(t, "admin@ug.edu.ec", "Admin1234")

	rec := api.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"nombre":   "Temporal",
		"correo":   "temporal@ug.edu.ec",
		"password": "clave1234",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	token := api.login(t, "temporal@ug.edu.ec", "clave1234")

	rec = api.do(t, http.MethodDelete, fmt.Sprintf("/admin/users/%d", created.ID), adminToken, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	// El token firmado sigue siendo válido pero el sujeto ya no existe.
	rec = api.do(t, http.MethodGet, "/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestInvalidJSONBody(t *testing.T) {
	api := newAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString("{no es json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	api.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnknownRouteIs404(t *testing.T) {
	api := newAPI(t)
	rec := api.do(t, http.MethodGet, "/no-existe", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	api := newAPI(t)

	req := httptest.NewRequest(http.MethodOptions, "/auth/login", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	api.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
