package core

import "strings"

// Role es el nivel de permisos de un usuario. Conjunto cerrado:
// estudiante < docente < admin. Se modela como enum tipado (no strings
// sueltos) para evitar bugs por typo en los checks de membresía.
type Role string

const (
	RoleEstudiante Role = "estudiante"
	RoleDocente    Role = "docente"
	RoleAdmin      Role = "admin"
)

// ParseRole normaliza y valida un rol recibido por la API.
// Retorna ErrInvalid si no pertenece al conjunto cerrado.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleEstudiante:
		return RoleEstudiante, nil
	case RoleDocente:
		return RoleDocente, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", ErrInvalid
	}
}

// Valid reporta si el rol pertenece al conjunto cerrado.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// rank define el orden parcial: admin ⊇ docente ⊇ estudiante.
func (r Role) rank() int {
	switch r {
	case RoleAdmin:
		return 3
	case RoleDocente:
		return 2
	case RoleEstudiante:
		return 1
	default:
		return 0
	}
}

// Allows reporta si un usuario con rol r satisface un requisito de rol
// required. Un admin satisface cualquier requisito; un docente satisface
// docente y estudiante.
func (r Role) Allows(required Role) bool {
	if !r.Valid() || !required.Valid() {
		return false
	}
	return r.rank() >= required.rank()
}
