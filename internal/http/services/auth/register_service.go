package auth

import (
	"context"
	"errors"
	"strings"

	dto "github.com/ug-competencias/backend/internal/http/dto/auth"
	"github.com/ug-competencias/backend/internal/observability/logger"
	"github.com/ug-competencias/backend/internal/security/password"
	"github.com/ug-competencias/backend/internal/store/core"
	"github.com/ug-competencias/backend/internal/validation"
)

// RegisterDeps contiene las dependencias del register service.
type RegisterDeps struct {
	Users core.UserRepository

	// AllowedDomain restringe el registro a correos institucionales
	// (ej: "@ug.edu.ec"). Vacío desactiva la restricción.
	AllowedDomain string

	// HashParams permite bajar el costo en tests.
	HashParams password.Params
}

type registerService struct {
	deps RegisterDeps
}

// NewRegisterService crea un nuevo servicio de registro.
func NewRegisterService(deps RegisterDeps) RegisterService {
	if deps.HashParams == (password.Params{}) {
		deps.HashParams = password.Default
	}
	return &registerService{deps: deps}
}

func (s *registerService) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserOut, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.register"),
		logger.Op("Register"),
	)

	in.Nombre = strings.TrimSpace(in.Nombre)
	in.Correo = validation.NormalizeEmail(in.Correo)

	switch {
	case in.Nombre == "" || in.Correo == "" || in.Password == "":
		return nil, ErrMissingFields
	case !validation.ValidNombre(in.Nombre):
		return nil, ErrInvalidNombre
	case !validation.ValidEmail(in.Correo):
		return nil, ErrInvalidEmail
	case !validation.HasDomain(in.Correo, s.deps.AllowedDomain):
		return nil, ErrEmailDomain
	case !validation.ValidPassword(in.Password):
		return nil, ErrWeakPassword
	}

	phc, err := password.Hash(s.deps.HashParams, in.Password)
	if err != nil {
		log.Error("hash failed", logger.Err(err))
		return nil, ErrHashFailed
	}

	// Por seguridad el alta pública siempre es estudiante; la promoción de
	// rol es una operación admin aparte.
	u := &core.User{
		Nombre:       in.Nombre,
		Correo:       in.Correo,
		PasswordHash: phc,
		Role:         core.RoleEstudiante,
	}

	if err := s.deps.Users.Create(ctx, u); err != nil {
		if errors.Is(err, core.ErrConflict) {
			log.Debug("correo already registered", logger.Correo(in.Correo))
			return nil, ErrEmailTaken
		}
		log.Error("create failed", logger.Err(err))
		return nil, err
	}

	log.Info("user registered", logger.UserID(u.ID))
	return &dto.UserOut{
		ID:     u.ID,
		Nombre: u.Nombre,
		Correo: u.Correo,
		Role:   string(u.Role),
	}, nil
}
