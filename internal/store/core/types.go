package core

import "time"

// User es el registro persistido en la tabla users.
// PasswordHash guarda el digest PHC; el plaintext nunca se persiste ni se loguea.
type User struct {
	ID           int64     `json:"id"`
	Nombre       string    `json:"nombre"`
	Correo       string    `json:"correo"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
