// Package store abre el repositorio de usuarios según el driver configurado.
package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ug-competencias/backend/internal/config"
	"github.com/ug-competencias/backend/internal/store/adapters/memory"
	"github.com/ug-competencias/backend/internal/store/adapters/mysql"
	"github.com/ug-competencias/backend/internal/store/adapters/pg"
	"github.com/ug-competencias/backend/internal/store/core"
)

// Stores agrupa el repositorio abierto y sus hooks de ciclo de vida.
type Stores struct {
	Users core.UserRepository

	// Migrate aplica el schema del driver; no-op en memory.
	Migrate func(ctx context.Context) (int, error)

	// PgPool expone el pool pgx si el driver es postgres (metrics). Nil si no.
	PgPool func() *pgxpool.Pool

	Close func() error
}

// Open abre el storage según cfg.Storage.Driver.
func Open(ctx context.Context, cfg *config.Config) (*Stores, error) {
	switch strings.ToLower(cfg.Storage.Driver) {
	case "postgres", "pg", "postgresql":
		tuning := pg.Tuning{
			MaxConns: int32(cfg.Storage.Postgres.MaxConns),
			MinConns: int32(cfg.Storage.Postgres.MinConns),
		}
		if d, err := time.ParseDuration(cfg.Storage.Postgres.ConnMaxLifetime); err == nil {
			tuning.ConnMaxLifetime = d
		}
		st, err := pg.New(ctx, cfg.Storage.DSN, tuning)
		if err != nil {
			return nil, err
		}
		return &Stores{
			Users:   st,
			Migrate: st.Migrate,
			PgPool:  st.Pool,
			Close:   func() error { st.Close(); return nil },
		}, nil

	case "mysql":
		tuning := mysql.Tuning{
			MaxOpenConns: cfg.Storage.MySQL.MaxOpenConns,
			MaxIdleConns: cfg.Storage.MySQL.MaxIdleConns,
		}
		if d, err := time.ParseDuration(cfg.Storage.MySQL.ConnMaxLifetime); err == nil {
			tuning.ConnMaxLifetime = d
		}
		st, err := mysql.New(ctx, cfg.Storage.DSN, tuning)
		if err != nil {
			return nil, err
		}
		return &Stores{
			Users:   st,
			Migrate: st.Migrate,
			Close:   st.Close,
		}, nil

	case "memory":
		st := memory.New()
		return &Stores{
			Users:   st,
			Migrate: func(context.Context) (int, error) { return 0, nil },
			Close:   func() error { return nil },
		}, nil

	default:
		return nil, fmt.Errorf("store: unsupported driver: %s", cfg.Storage.Driver)
	}
}
