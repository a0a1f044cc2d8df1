package logger

import (
	"time"

	"go.uber.org/zap"
)

// Campos estándar HTTP

func RequestID(v string) zap.Field { return zap.String("request_id", v) }
func Method(v string) zap.Field    { return zap.String("method", v) }
func Path(v string) zap.Field      { return zap.String("path", v) }
func Status(v int) zap.Field       { return zap.Int("status", v) }
func Bytes(v int) zap.Field        { return zap.Int("bytes", v) }
func ClientIP(v string) zap.Field  { return zap.String("client_ip", v) }
func UserAgent(v string) zap.Field { return zap.String("user_agent", v) }

func Duration(v time.Duration) zap.Field { return zap.Duration("duration", v) }
func DurationMs(v int64) zap.Field       { return zap.Int64("duration_ms", v) }

// Campos estándar de negocio

func UserID(v int64) zap.Field  { return zap.Int64("user_id", v) }
func Correo(v string) zap.Field { return zap.String("correo", v) }
func Role(v string) zap.Field   { return zap.String("role", v) }

// Campos de arquitectura

// Layer identifica la capa: "controller", "service", "store".
func Layer(v string) zap.Field { return zap.String("layer", v) }

// Component identifica el componente dentro de la capa.
func Component(v string) zap.Field { return zap.String("component", v) }

// Op identifica la operación, ej: "LoginService.Login".
func Op(v string) zap.Field { return zap.String("op", v) }

// Err crea un campo de error estándar.
func Err(err error) zap.Field { return zap.Error(err) }

// Passthroughs genéricos para campos ad-hoc.

func String(key, v string) zap.Field { return zap.String(key, v) }
func Int(key string, v int) zap.Field { return zap.Int(key, v) }
func Int64(key string, v int64) zap.Field { return zap.Int64(key, v) }
