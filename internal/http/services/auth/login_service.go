package auth

import (
	"context"
	"errors"
	"strconv"

	dto "github.com/ug-competencias/backend/internal/http/dto/auth"
	jwtx "github.com/ug-competencias/backend/internal/jwt"
	"github.com/ug-competencias/backend/internal/metrics"
	"github.com/ug-competencias/backend/internal/observability/logger"
	"github.com/ug-competencias/backend/internal/security/password"
	"github.com/ug-competencias/backend/internal/store/core"
	"github.com/ug-competencias/backend/internal/validation"
)

// LoginDeps contiene las dependencias del login service.
type LoginDeps struct {
	Users  core.UserRepository
	Issuer *jwtx.Issuer
}

type loginService struct {
	deps LoginDeps
}

// NewLoginService crea un nuevo servicio de login.
func NewLoginService(deps LoginDeps) LoginService {
	return &loginService{deps: deps}
}

func (s *loginService) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.login"),
		logger.Op("Login"),
	)

	in.Correo = validation.NormalizeEmail(in.Correo)
	if in.Correo == "" || in.Password == "" {
		return nil, ErrMissingFields
	}

	u, err := s.deps.Users.GetByEmail(ctx, in.Correo)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			// Usuario inexistente y password incorrecto responden igual:
			// no se distingue cuál de los dos falló.
			log.Debug("user not found")
			metrics.ObserveLogin("invalid")
			return nil, ErrInvalidCredentials
		}
		log.Error("user lookup failed", logger.Err(err))
		metrics.ObserveLogin("error")
		return nil, err
	}

	if !password.Verify(in.Password, u.PasswordHash) {
		log.Debug("password check failed", logger.UserID(u.ID))
		metrics.ObserveLogin("invalid")
		return nil, ErrInvalidCredentials
	}

	token, _, err := s.deps.Issuer.IssueAccess(strconv.FormatInt(u.ID, 10))
	if err != nil {
		log.Error("token issue failed", logger.Err(err), logger.UserID(u.ID))
		return nil, ErrTokenIssueFailed
	}

	log.Info("login ok", logger.UserID(u.ID), logger.Role(string(u.Role)))
	metrics.ObserveLogin("ok")
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.deps.Issuer.AccessTTL().Seconds()),
	}, nil
}
