package errors

import (
	"fmt"
	"net/http"
)

// AppError define la estructura estándar para errores de la aplicación.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Detail     string `json:"detail,omitempty"`
	HTTPStatus int    `json:"-"` // No se serializa, usado para el header
	Err        error  `json:"-"` // Causa original, útil para logs, no se expone al cliente
}

// Error implementa la interfaz error.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap permite acceder al error original.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New crea un nuevo AppError.
func New(status int, code, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: status,
	}
}

// FromError intenta convertir un error genérico en un AppError.
// Si no es un AppError, devuelve un error interno genérico conservando la causa.
func FromError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return ErrInternalServerError.WithCause(err)
}

// WithDetail agrega detalle al error. Devuelve una COPIA para no mutar las
// variables globales base.
func (e *AppError) WithDetail(detail string) *AppError {
	newErr := *e
	newErr.Detail = detail
	return &newErr
}

// WithCause agrega la causa. Devuelve una COPIA.
func (e *AppError) WithCause(err error) *AppError {
	newErr := *e
	newErr.Err = err
	return &newErr
}

// Catálogo de errores predefinidos.

var (
	// 400
	ErrBadRequest = &AppError{
		Code:       "BAD_REQUEST",
		Message:    "La solicitud contiene sintaxis inválida o parámetros faltantes.",
		HTTPStatus: http.StatusBadRequest,
	}
	ErrInvalidJSON = &AppError{
		Code:       "INVALID_JSON",
		Message:    "El cuerpo de la solicitud no es un JSON válido.",
		HTTPStatus: http.StatusBadRequest,
	}
	ErrInvalidRole = &AppError{
		Code:       "INVALID_ROLE",
		Message:    "Rol inválido.",
		HTTPStatus: http.StatusBadRequest,
	}
	ErrEmailDomain = &AppError{
		Code:       "EMAIL_DOMAIN",
		Message:    "El correo no pertenece al dominio institucional.",
		HTTPStatus: http.StatusBadRequest,
	}
	ErrSelfDelete = &AppError{
		Code:       "SELF_DELETE",
		Message:    "No puedes eliminarte a ti mismo.",
		HTTPStatus: http.StatusBadRequest,
	}

	// 401
	ErrUnauthorized = &AppError{
		Code:       "UNAUTHORIZED",
		Message:    "No autorizado. Se requiere autenticación.",
		HTTPStatus: http.StatusUnauthorized,
	}
	ErrInvalidCredentials = &AppError{
		Code:       "INVALID_CREDENTIALS",
		Message:    "Credenciales incorrectas.",
		HTTPStatus: http.StatusUnauthorized,
	}
	ErrTokenInvalid = &AppError{
		Code:       "TOKEN_INVALID",
		Message:    "Token inválido o expirado.",
		HTTPStatus: http.StatusUnauthorized,
	}
	ErrTokenMissing = &AppError{
		Code:       "TOKEN_MISSING",
		Message:    "Falta el bearer token.",
		HTTPStatus: http.StatusUnauthorized,
	}

	// 403
	ErrForbidden = &AppError{
		Code:       "FORBIDDEN",
		Message:    "Acceso denegado.",
		HTTPStatus: http.StatusForbidden,
	}

	// 404
	ErrNotFound = &AppError{
		Code:       "NOT_FOUND",
		Message:    "Recurso no encontrado.",
		HTTPStatus: http.StatusNotFound,
	}
	ErrUserNotFound = &AppError{
		Code:       "USER_NOT_FOUND",
		Message:    "Usuario no encontrado.",
		HTTPStatus: http.StatusNotFound,
	}

	// 405
	ErrMethodNotAllowed = &AppError{
		Code:       "METHOD_NOT_ALLOWED",
		Message:    "Método HTTP no permitido para este recurso.",
		HTTPStatus: http.StatusMethodNotAllowed,
	}

	// 409
	ErrEmailTaken = &AppError{
		Code:       "EMAIL_TAKEN",
		Message:    "El correo ya está registrado.",
		HTTPStatus: http.StatusConflict,
	}

	// 500 / 503
	ErrInternalServerError = &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "Error interno del servidor.",
		HTTPStatus: http.StatusInternalServerError,
	}
	ErrServiceUnavailable = &AppError{
		Code:       "SERVICE_UNAVAILABLE",
		Message:    "Servicio no disponible.",
		HTTPStatus: http.StatusServiceUnavailable,
	}
)
