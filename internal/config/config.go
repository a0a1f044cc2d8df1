// Package config carga la configuración del servicio desde YAML con
// overrides por variables de entorno.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		// dev | staging | prod
		Env     string `yaml:"env"`
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	Server struct {
		Addr               string   `yaml:"addr"`
		CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
		ReadTimeout        string   `yaml:"read_timeout"`
		WriteTimeout       string   `yaml:"write_timeout"`
		ShutdownTimeout    string   `yaml:"shutdown_timeout"`
	} `yaml:"server"`

	Storage struct {
		// postgres | mysql | memory
		Driver      string `yaml:"driver"`
		DSN         string `yaml:"dsn"`
		AutoMigrate bool   `yaml:"auto_migrate"`
		Postgres    struct {
			MaxConns        int    `yaml:"max_conns"`
			MinConns        int    `yaml:"min_conns"`
			ConnMaxLifetime string `yaml:"conn_max_lifetime"`
		} `yaml:"postgres"`
		MySQL struct {
			MaxOpenConns    int    `yaml:"max_open_conns"`
			MaxIdleConns    int    `yaml:"max_idle_conns"`
			ConnMaxLifetime string `yaml:"conn_max_lifetime"`
		} `yaml:"mysql"`
	} `yaml:"storage"`

	Cache struct {
		// memory | redis | off
		Kind  string `yaml:"kind"`
		Redis struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
		Memory struct {
			DefaultTTL string `yaml:"default_ttl"`
		} `yaml:"memory"`
	} `yaml:"cache"`

	JWT struct {
		Issuer    string `yaml:"issuer"`
		Secret    string `yaml:"secret"`
		AccessTTL string `yaml:"access_ttl"`
	} `yaml:"jwt"`

	Register struct {
		// Dominio de correo permitido para el alta. Vacío deshabilita el check.
		AllowedEmailDomain string `yaml:"allowed_email_domain"`
	} `yaml:"register"`

	Seed struct {
		Enabled       bool   `yaml:"enabled"`
		AdminNombre   string `yaml:"admin_nombre"`
		AdminCorreo   string `yaml:"admin_correo"`
		AdminPassword string `yaml:"admin_password"`
	} `yaml:"seed"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`

	Metrics struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"metrics"`
}

// Load lee el YAML, aplica overrides de entorno, defaults y validación.
func Load(path string) (*Config, error) {
	var c Config

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		// Expandir ${VAR} antes de parsear permite DSNs y secretos por entorno.
		expanded := os.Expand(string(b), os.Getenv)
		if err := yaml.Unmarshal([]byte(expanded), &c); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	c.applyEnvOverrides()
	c.applyDefaults()

	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.App.Name == "" {
		c.App.Name = "competencias-backend"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if len(c.Server.CORSAllowedOrigins) == 0 {
		c.Server.CORSAllowedOrigins = []string{"*"}
	}
	if c.Server.ReadTimeout == "" {
		c.Server.ReadTimeout = "10s"
	}
	if c.Server.WriteTimeout == "" {
		c.Server.WriteTimeout = "15s"
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = "10s"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "memory"
	}
	if c.Cache.Kind == "" {
		c.Cache.Kind = "memory"
	}
	if c.Cache.Memory.DefaultTTL == "" {
		c.Cache.Memory.DefaultTTL = "2m"
	}
	if c.Cache.Redis.Prefix == "" {
		c.Cache.Redis.Prefix = "competencias"
	}
	if c.JWT.Issuer == "" {
		c.JWT.Issuer = "competencias-backend"
	}
	if c.JWT.AccessTTL == "" {
		c.JWT.AccessTTL = "8h"
	}
	if c.Register.AllowedEmailDomain == "" {
		c.Register.AllowedEmailDomain = "ug.edu.ec"
	}
	if c.Seed.AdminNombre == "" {
		c.Seed.AdminNombre = "Administrador"
	}
	if c.Seed.AdminCorreo == "" {
		c.Seed.AdminCorreo = "admin@ug.edu.ec"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.JWT.Secret) == "" {
		return fmt.Errorf("config: jwt.secret es obligatorio (JWT_SECRET)")
	}
	switch c.Storage.Driver {
	case "postgres", "mysql", "memory":
	default:
		return fmt.Errorf("config: storage.driver desconocido: %q", c.Storage.Driver)
	}
	switch c.Cache.Kind {
	case "memory", "redis", "off":
	default:
		return fmt.Errorf("config: cache.kind desconocido: %q", c.Cache.Kind)
	}
	if c.Storage.Driver != "memory" && strings.TrimSpace(c.Storage.DSN) == "" {
		return fmt.Errorf("config: storage.dsn es obligatorio para driver %q", c.Storage.Driver)
	}
	return nil
}

// AccessTTL parsea jwt.access_ttl; cero si es inválido.
func (c *Config) AccessTTL() time.Duration {
	d, _ := time.ParseDuration(c.JWT.AccessTTL)
	return d
}

// ReadTimeout / WriteTimeout / ShutdownTimeout con fallback.

func (c *Config) ReadTimeout() time.Duration     { return parseDur(c.Server.ReadTimeout, 10*time.Second) }
func (c *Config) WriteTimeout() time.Duration    { return parseDur(c.Server.WriteTimeout, 15*time.Second) }
func (c *Config) ShutdownTimeout() time.Duration { return parseDur(c.Server.ShutdownTimeout, 10*time.Second) }

func parseDur(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(strings.TrimSpace(s)); err == nil && d > 0 {
		return d
	}
	return fallback
}

// ---- Helpers env ----

func getEnvStr(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}

func getEnvInt(key string) (int, bool) {
	if s, ok := getEnvStr(key); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return i, true
		}
	}
	return 0, false
}

func getEnvBool(key string) (bool, bool) {
	if s, ok := getEnvStr(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
			return b, true
		}
	}
	return false, false
}

func getEnvCSV(key string) ([]string, bool) {
	if s, ok := getEnvStr(key); ok {
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out, true
	}
	return nil, false
}

// applyEnvOverrides pisa el YAML con variables de entorno.
func (c *Config) applyEnvOverrides() {
	if v, ok := getEnvStr("APP_ENV"); ok {
		c.App.Env = strings.ToLower(v)
	}
	if v, ok := getEnvStr("APP_VERSION"); ok {
		c.App.Version = v
	}

	if v, ok := getEnvStr("SERVER_ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := getEnvCSV("SERVER_CORS_ALLOWED_ORIGINS"); ok {
		c.Server.CORSAllowedOrigins = v
	}

	if v, ok := getEnvStr("STORAGE_DRIVER"); ok {
		c.Storage.Driver = v
	}
	if v, ok := getEnvStr("STORAGE_DSN"); ok {
		c.Storage.DSN = v
	}
	if v, ok := getEnvBool("STORAGE_AUTO_MIGRATE"); ok {
		c.Storage.AutoMigrate = v
	}

	if v, ok := getEnvStr("CACHE_KIND"); ok {
		c.Cache.Kind = v
	}
	if v, ok := getEnvStr("CACHE_REDIS_ADDR"); ok {
		c.Cache.Redis.Addr = v
	}
	if v, ok := getEnvStr("CACHE_REDIS_PASSWORD"); ok {
		c.Cache.Redis.Password = v
	}
	if v, ok := getEnvInt("CACHE_REDIS_DB"); ok {
		c.Cache.Redis.DB = v
	}

	if v, ok := getEnvStr("JWT_ISSUER"); ok {
		c.JWT.Issuer = v
	}
	if v, ok := getEnvStr("JWT_SECRET"); ok {
		c.JWT.Secret = v
	}
	if v, ok := getEnvStr("JWT_ACCESS_TTL"); ok {
		c.JWT.AccessTTL = v
	}

	if v, ok := getEnvStr("REGISTER_ALLOWED_EMAIL_DOMAIN"); ok {
		c.Register.AllowedEmailDomain = v
	}

	if v, ok := getEnvBool("SEED_ENABLED"); ok {
		c.Seed.Enabled = v
	}
	if v, ok := getEnvStr("SEED_ADMIN_NOMBRE"); ok {
		c.Seed.AdminNombre = v
	}
	if v, ok := getEnvStr("SEED_ADMIN_CORREO"); ok {
		c.Seed.AdminCorreo = v
	}
	if v, ok := getEnvStr("SEED_ADMIN_PASSWORD"); ok {
		c.Seed.AdminPassword = v
	}

	if v, ok := getEnvStr("LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := getEnvBool("METRICS_ENABLED"); ok {
		c.Metrics.Enabled = v
	}
}
