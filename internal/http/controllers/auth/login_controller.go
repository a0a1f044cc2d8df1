package auth

import (
	"encoding/json"
	"net/http"

	dto "github.com/ug-competencias/backend/internal/http/dto/auth"
	httperrors "github.com/ug-competencias/backend/internal/http/errors"
	svc "github.com/ug-competencias/backend/internal/http/services/auth"
	"github.com/ug-competencias/backend/internal/observability/logger"
	"go.uber.org/zap"
)

// LoginController maneja POST /auth/login.
type LoginController struct {
	service svc.LoginService
}

func NewLoginController(service svc.LoginService) *LoginController {
	return &LoginController{service: service}
}

// Login valida credenciales y emite el access token.
// POST /auth/login
func (c *LoginController) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("LoginController.Login"))

	var req dto.LoginRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	out, err := c.service.Login(ctx, req)
	if err != nil {
		c.handleError(w, err, log)
		return
	}

	// Tokens nunca se cachean
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(out)
}

func (c *LoginController) handleError(w http.ResponseWriter, err error, log *zap.Logger) {
	switch err {
	case svc.ErrMissingFields:
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("correo y password son obligatorios"))
	case svc.ErrInvalidCredentials:
		httperrors.WriteError(w, httperrors.ErrInvalidCredentials)
	default:
		log.Error("unexpected login error", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
	}
}
