package core

import "context"

// UserRepository es el directorio de usuarios. Los adapters (pg, mysql,
// memory) implementan esta interfaz; el resto del sistema solo depende de ella
// para mantenerse testeable sin base de datos real.
type UserRepository interface {
	Ping(ctx context.Context) error

	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, correo string) (*User, error)

	// List retorna todos los usuarios ordenados por id descendente.
	List(ctx context.Context) ([]User, error)

	// Create inserta y completa ID/CreatedAt. Correo duplicado => ErrConflict.
	Create(ctx context.Context, u *User) error

	// UpdateRole cambia el rol de un usuario existente. Id desconocido => ErrNotFound.
	UpdateRole(ctx context.Context, id int64, role Role) (*User, error)

	// UpdateCredentials reemplaza correo y hash de password de un usuario
	// (lo usa el seed para corregir la cuenta admin). Id desconocido => ErrNotFound.
	UpdateCredentials(ctx context.Context, id int64, correo, passwordHash string) error

	// Delete elimina el registro. Id desconocido => ErrNotFound.
	Delete(ctx context.Context, id int64) error
}
