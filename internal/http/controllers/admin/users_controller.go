// Package admin contiene los controllers de administración de usuarios.
package admin

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	authdto "github.com/ug-competencias/backend/internal/http/dto/admin"
	dto "github.com/ug-competencias/backend/internal/http/dto/auth"
	httperrors "github.com/ug-competencias/backend/internal/http/errors"
	"github.com/ug-competencias/backend/internal/http/middlewares"
	svc "github.com/ug-competencias/backend/internal/http/services/admin"
	"github.com/ug-competencias/backend/internal/observability/logger"
	"github.com/ug-competencias/backend/internal/store/core"
	"go.uber.org/zap"
)

// UsersController maneja los endpoints /admin/users.
type UsersController struct {
	service svc.UsersService
}

func NewUsersController(service svc.UsersService) *UsersController {
	return &UsersController{service: service}
}

// List devuelve todos los usuarios, del más reciente al más antiguo.
// GET /admin/users
func (c *UsersController) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("UsersController.List"))

	users, err := c.service.List(ctx)
	if err != nil {
		log.Error("list failed", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}

	out := make([]dto.UserOut, 0, len(users))
	for _, u := range users {
		out = append(out, dto.UserOut{ID: u.ID, Nombre: u.Nombre, Correo: u.Correo, Role: string(u.Role)})
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(out)
}

// ChangeRole actualiza el rol de un usuario.
// PUT /admin/users/{id}/role
func (c *UsersController) ChangeRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("UsersController.ChangeRole"))

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req authdto.ChangeRoleRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	u, err := c.service.ChangeRole(ctx, id, req.Role)
	if err != nil {
		c.handleError(w, err, log)
		return
	}

	out := dto.UserOut{ID: u.ID, Nombre: u.Nombre, Correo: u.Correo, Role: string(u.Role)}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(out)
}

// Delete elimina un usuario. Un admin no puede borrarse a sí mismo.
// DELETE /admin/users/{id}
func (c *UsersController) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("UsersController.Delete"))

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	actor := middlewares.GetPrincipal(ctx)
	if err := c.service.Delete(ctx, actor, id); err != nil {
		c.handleError(w, err, log)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *UsersController) handleError(w http.ResponseWriter, err error, log *zap.Logger) {
	switch err {
	case svc.ErrInvalidRole:
		httperrors.WriteError(w, httperrors.ErrInvalidRole)
	case svc.ErrSelfDelete:
		httperrors.WriteError(w, httperrors.ErrSelfDelete)
	case core.ErrNotFound:
		httperrors.WriteError(w, httperrors.ErrUserNotFound)
	default:
		log.Error("unexpected admin error", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
	}
}

// pathID parsea el {id} de la ruta; responde 404 si no es numérico.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		httperrors.WriteError(w, httperrors.ErrUserNotFound)
		return 0, false
	}
	return id, true
}
