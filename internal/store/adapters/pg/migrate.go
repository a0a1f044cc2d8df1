package pg

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/ug-competencias/backend/internal/observability/logger"
	pgmigrations "github.com/ug-competencias/backend/migrations/postgres"
)

// migrationLockID deriva un id estable para pg_advisory_lock.
func migrationLockID() int64 {
	h := sha256.Sum256([]byte("competencias_migration"))
	return int64(binary.BigEndian.Uint64(h[:8]))
}

// Migrate aplica los *_up.sql embebidos, en orden lexicográfico, bajo un
// advisory lock para que varias réplicas no corran el schema a la vez.
func (s *Store) Migrate(ctx context.Context) (int, error) {
	log := logger.Named("store.pg").With(logger.Component("migrate"))
	lockID := migrationLockID()

	lockCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var acquired bool
	if err := s.pool.QueryRow(lockCtx, "SELECT pg_try_advisory_lock($1)", lockID).Scan(&acquired); err != nil {
		return 0, fmt.Errorf("pg: acquire migration lock: %w", err)
	}
	if !acquired {
		log.Info("migration lock held elsewhere, waiting")
		if _, err := s.pool.Exec(lockCtx, "SELECT pg_advisory_lock($1)", lockID); err != nil {
			return 0, fmt.Errorf("pg: wait for migration lock: %w", err)
		}
	}
	defer func() {
		if _, err := s.pool.Exec(context.Background(), "SELECT pg_advisory_unlock($1)", lockID); err != nil {
			log.Warn("release migration lock failed", logger.Err(err))
		}
	}()

	files, err := upFiles(pgmigrations.FS)
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, f := range files {
		b, err := fs.ReadFile(pgmigrations.FS, f)
		if err != nil {
			return applied, err
		}
		if _, err := s.pool.Exec(ctx, string(b)); err != nil {
			return applied, fmt.Errorf("pg: exec %s: %w", f, err)
		}
		applied++
	}

	log.Info("migrations applied", logger.Int("count", applied))
	return applied, nil
}

func upFiles(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.Type().IsRegular() && strings.HasSuffix(strings.ToLower(e.Name()), "_up.sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}
