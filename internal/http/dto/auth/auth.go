// Package auth contiene los DTOs de los endpoints /auth.
package auth

// RegisterRequest es el body de POST /auth/register.
type RegisterRequest struct {
	Nombre   string `json:"nombre"`
	Correo   string `json:"correo"`
	Password string `json:"password"`
}

// LoginRequest es el body de POST /auth/login.
type LoginRequest struct {
	Correo   string `json:"correo"`
	Password string `json:"password"`
}

// LoginResponse es la respuesta de POST /auth/login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// UserOut es la proyección pública de un usuario (sin hash).
type UserOut struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
	Correo string `json:"correo"`
	Role   string `json:"role"`
}
