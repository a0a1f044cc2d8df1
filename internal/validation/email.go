package validation

import (
	"regexp"
	"strings"
)

// Email rules:
// - Shape local@dominio.tld, sin espacios ni ';'.
// - Lowercase-insensitive (se normaliza antes de validar).
// - Longitud total 3..150 (largo de la columna correo).
//
// No intenta cubrir RFC 5322 completo; el check fuerte es el dominio
// institucional que se valida aparte con HasDomain.
var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// NormalizeEmail recorta espacios y pasa a minúsculas.
func NormalizeEmail(correo string) string {
	return strings.ToLower(strings.TrimSpace(correo))
}

// ValidEmail retorna true si el correo normalizado tiene forma de email.
func ValidEmail(correo string) bool {
	correo = NormalizeEmail(correo)
	if len(correo) < 3 || len(correo) > 150 {
		return false
	}
	return emailRe.MatchString(correo)
}

// HasDomain verifica que el correo termine en el dominio dado (ej: "@ug.edu.ec").
// Un domain vacío desactiva la restricción.
func HasDomain(correo, domain string) bool {
	if domain == "" {
		return true
	}
	if !strings.HasPrefix(domain, "@") {
		domain = "@" + domain
	}
	return strings.HasSuffix(NormalizeEmail(correo), strings.ToLower(domain))
}

// ValidNombre exige un nombre de al menos 2 caracteres visibles (máx 100,
// largo de la columna).
func ValidNombre(nombre string) bool {
	n := len(strings.TrimSpace(nombre))
	return n >= 2 && n <= 100
}

// ValidPassword aplica la política mínima del registro (>= 4 caracteres).
func ValidPassword(pw string) bool {
	return len(pw) >= 4
}
