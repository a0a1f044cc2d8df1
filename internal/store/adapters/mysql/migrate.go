package mysql

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/ug-competencias/backend/internal/observability/logger"
	mysqlmigrations "github.com/ug-competencias/backend/migrations/mysql"
)

const migrationLockName = "competencias_migration"

// Migrate aplica los *_up.sql embebidos en orden lexicográfico, bajo
// GET_LOCK para serializar réplicas concurrentes.
func (s *Store) Migrate(ctx context.Context) (int, error) {
	log := logger.Named("store.mysql").With(logger.Component("migrate"))

	var got int
	if err := s.db.QueryRowContext(ctx, "SELECT GET_LOCK(?, 30)", migrationLockName).Scan(&got); err != nil {
		return 0, fmt.Errorf("mysql: acquire migration lock: %w", err)
	}
	if got != 1 {
		return 0, fmt.Errorf("mysql: migration lock timeout")
	}
	defer func() {
		if _, err := s.db.ExecContext(context.Background(), "SELECT RELEASE_LOCK(?)", migrationLockName); err != nil {
			log.Warn("release migration lock failed", logger.Err(err))
		}
	}()

	entries, err := fs.ReadDir(mysqlmigrations.FS, ".")
	if err != nil {
		return 0, err
	}
	var files []string
	for _, e := range entries {
		if e.Type().IsRegular() && strings.HasSuffix(strings.ToLower(e.Name()), "_up.sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	applied := 0
	for _, f := range files {
		b, err := fs.ReadFile(mysqlmigrations.FS, f)
		if err != nil {
			return applied, err
		}
		if _, err := s.db.ExecContext(ctx, string(b)); err != nil {
			return applied, fmt.Errorf("mysql: exec %s: %w", f, err)
		}
		applied++
	}

	log.Info("migrations applied", logger.Int("count", applied))
	return applied, nil
}
