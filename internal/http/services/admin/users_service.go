// Package admin implementa las operaciones administrativas sobre usuarios.
package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/ug-competencias/backend/internal/guard"
	"github.com/ug-competencias/backend/internal/observability/logger"
	"github.com/ug-competencias/backend/internal/store/core"
)

// Errores de negocio del paquete.
var (
	ErrInvalidRole = fmt.Errorf("invalid role")
	ErrSelfDelete  = fmt.Errorf("cannot delete own account")
)

// UsersService expone el CRUD admin sobre usuarios.
type UsersService interface {
	List(ctx context.Context) ([]core.User, error)
	ChangeRole(ctx context.Context, id int64, role string) (*core.User, error)
	// Delete elimina al usuario id; actor es el admin autenticado, para el
	// check de self-action.
	Delete(ctx context.Context, actor *core.User, id int64) error
}

// UsersDeps contiene las dependencias del service.
type UsersDeps struct {
	Users core.UserRepository
	Guard *guard.Guard // para invalidar el cache del principal al mutar
}

type usersService struct {
	deps UsersDeps
}

// NewUsersService crea el service admin de usuarios.
func NewUsersService(deps UsersDeps) UsersService {
	return &usersService{deps: deps}
}

func (s *usersService) List(ctx context.Context) ([]core.User, error) {
	return s.deps.Users.List(ctx)
}

func (s *usersService) ChangeRole(ctx context.Context, id int64, role string) (*core.User, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Component("admin.users"), logger.Op("ChangeRole"))

	parsed, err := core.ParseRole(role)
	if err != nil {
		return nil, ErrInvalidRole
	}

	u, err := s.deps.Users.UpdateRole(ctx, id, parsed)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.ErrNotFound
		}
		log.Error("update role failed", logger.Err(err), logger.UserID(id))
		return nil, err
	}
	s.invalidate(id)

	log.Info("role changed", logger.UserID(id), logger.Role(string(parsed)))
	return u, nil
}

func (s *usersService) Delete(ctx context.Context, actor *core.User, id int64) error {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Component("admin.users"), logger.Op("Delete"))

	// El borrado exige conocer al usuario antes de aplicar el check de
	// self-action: un id inexistente responde 404, no 400.
	if _, err := s.deps.Users.GetByID(ctx, id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return core.ErrNotFound
		}
		return err
	}

	if actor != nil && actor.ID == id {
		return ErrSelfDelete
	}

	if err := s.deps.Users.Delete(ctx, id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return core.ErrNotFound
		}
		log.Error("delete failed", logger.Err(err), logger.UserID(id))
		return err
	}
	s.invalidate(id)

	log.Info("user deleted", logger.UserID(id))
	return nil
}

func (s *usersService) invalidate(id int64) {
	if s.deps.Guard != nil {
		s.deps.Guard.Invalidate(id)
	}
}
