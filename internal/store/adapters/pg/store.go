// Package pg implementa el repositorio de usuarios sobre PostgreSQL (pgx).
package pg

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ug-competencias/backend/internal/observability/logger"
)

// Tuning agrupa los knobs opcionales del pool.
type Tuning struct {
	MaxConns        int32
	MinConns        int32
	ConnMaxLifetime time.Duration
}

type Store struct{ pool *pgxpool.Pool }

// New abre el pool contra el DSN dado. El ping de arranque es no bloqueante:
// la app puede levantar con la base temporalmente caída.
func New(ctx context.Context, dsn string, tuning Tuning) (*Store, error) {
	pcfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	if tuning.MaxConns > 0 {
		pcfg.MaxConns = tuning.MaxConns
	}
	if tuning.MinConns > 0 {
		pcfg.MinConns = tuning.MinConns
	}
	if tuning.ConnMaxLifetime > 0 {
		pcfg.MaxConnLifetime = tuning.ConnMaxLifetime
		pcfg.MaxConnIdleTime = tuning.ConnMaxLifetime
	}
	if pcfg.MaxConns == 0 {
		pcfg.MaxConns = 8
	}

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, err
	}

	log := logger.Named("store.pg")
	if err := pool.Ping(ctx); err != nil {
		log.Warn("startup ping failed", logger.Err(err))
	} else {
		log.Info("pool ready", logger.Int("max_conns", int(pcfg.MaxConns)))
	}

	return &Store{pool: pool}, nil
}

// Pool expone el pool interno (metrics, migraciones).
func (s *Store) Pool() *pgxpool.Pool {
	if s == nil {
		return nil
	}
	return s.pool
}

// Close cierra el pool subyacente (idempotente).
func (s *Store) Close() {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
}

// isUniqueViolation detecta el código 23505 de Postgres.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
