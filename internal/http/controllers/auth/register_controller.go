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

// RegisterController maneja POST /auth/register.
type RegisterController struct {
	service svc.RegisterService
}

func NewRegisterController(service svc.RegisterService) *RegisterController {
	return &RegisterController{service: service}
}

// Register da de alta un usuario nuevo. Siempre como estudiante.
// POST /auth/register
func (c *RegisterController) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("RegisterController.Register"))

	var req dto.RegisterRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	out, err := c.service.Register(ctx, req)
	if err != nil {
		c.handleError(w, err, log)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(out)

	log.Info("user registered", logger.UserID(out.ID))
}

func (c *RegisterController) handleError(w http.ResponseWriter, err error, log *zap.Logger) {
	switch err {
	case svc.ErrMissingFields:
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("nombre, correo y password son obligatorios"))
	case svc.ErrInvalidNombre:
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("nombre inválido"))
	case svc.ErrInvalidEmail:
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("correo inválido"))
	case svc.ErrEmailDomain:
		httperrors.WriteError(w, httperrors.ErrEmailDomain)
	case svc.ErrWeakPassword:
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("password demasiado corto"))
	case svc.ErrEmailTaken:
		httperrors.WriteError(w, httperrors.ErrEmailTaken)
	default:
		log.Error("unexpected register error", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
	}
}
