// Package cache define la interfaz de cache byte-oriented del servicio.
// El guard la usa para amortiguar lookups de usuario por id.
package cache

import "time"

type Cache interface {
	Get(key string) (value []byte, ok bool)
	Set(key string, value []byte, ttl time.Duration)
	Delete(key string)
}
