// Package auth implementa la lógica de negocio de registro y login.
package auth

import (
	"context"
	"fmt"

	dto "github.com/ug-competencias/backend/internal/http/dto/auth"
)

// LoginService valida credenciales y emite el access token.
type LoginService interface {
	Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error)
}

// RegisterService da de alta usuarios nuevos (siempre estudiante).
type RegisterService interface {
	Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserOut, error)
}

// Errores de negocio del paquete. El controller los mapea a HTTP.
var (
	ErrMissingFields      = fmt.Errorf("missing required fields")
	ErrInvalidEmail       = fmt.Errorf("invalid email")
	ErrEmailDomain        = fmt.Errorf("email outside allowed domain")
	ErrInvalidNombre      = fmt.Errorf("invalid nombre")
	ErrWeakPassword       = fmt.Errorf("password below minimum length")
	ErrEmailTaken         = fmt.Errorf("email already registered")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrHashFailed         = fmt.Errorf("failed to hash password")
	ErrTokenIssueFailed   = fmt.Errorf("failed to issue token")
)
