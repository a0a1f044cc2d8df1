// Package cachefactory abre el backend de cache configurado.
package cachefactory

import (
	"strings"
	"time"

	"github.com/ug-competencias/backend/internal/cache"
	cmem "github.com/ug-competencias/backend/internal/cache/memory"
	credis "github.com/ug-competencias/backend/internal/cache/redis"
)

type Config struct {
	// memory | redis | off
	Kind  string
	Redis struct {
		Addr     string
		Password string
		DB       int
		Prefix   string
	}
	Memory struct{ DefaultTTL string }
}

// Open devuelve el cache y su closer. Kind "off" retorna nil: el guard opera
// sin cache yendo siempre al repositorio.
func Open(cfg Config) (cache.Cache, func() error, error) {
	switch strings.ToLower(cfg.Kind) {
	case "off":
		return nil, func() error { return nil }, nil
	case "redis":
		c := credis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.Prefix)
		return c, c.Close, nil
	default:
		d, _ := time.ParseDuration(cfg.Memory.DefaultTTL)
		if d == 0 {
			d = 2 * time.Minute
		}
		return cmem.New(d), func() error { return nil }, nil
	}
}
