// Package auth contiene los controllers de autenticación.
package auth

import svc "github.com/ug-competencias/backend/internal/http/services/auth"

// Controllers agrupa los controllers del dominio auth.
type Controllers struct {
	Register *RegisterController
	Login    *LoginController
	Me       *MeController
}

// NewControllers crea el agregador de controllers auth.
func NewControllers(login svc.LoginService, register svc.RegisterService) *Controllers {
	return &Controllers{
		Register: NewRegisterController(register),
		Login:    NewLoginController(login),
		Me:       NewMeController(),
	}
}
