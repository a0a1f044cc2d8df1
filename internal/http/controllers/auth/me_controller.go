package auth

import (
	"encoding/json"
	"net/http"

	dto "github.com/ug-competencias/backend/internal/http/dto/auth"
	httperrors "github.com/ug-competencias/backend/internal/http/errors"
	"github.com/ug-competencias/backend/internal/http/middlewares"
)

// MeController maneja GET /auth/me.
type MeController struct{}

func NewMeController() *MeController {
	return &MeController{}
}

// Me devuelve el perfil del usuario autenticado. El principal ya viene
// resuelto por el middleware de auth.
// GET /auth/me
func (c *MeController) Me(w http.ResponseWriter, r *http.Request) {
	u := middlewares.GetPrincipal(r.Context())
	if u == nil {
		w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
		httperrors.WriteError(w, httperrors.ErrTokenMissing)
		return
	}

	out := dto.UserOut{
		ID:     u.ID,
		Nombre: u.Nombre,
		Correo: u.Correo,
		Role:   string(u.Role),
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(out)
}
