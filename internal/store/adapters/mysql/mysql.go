// Package mysql implementa el repositorio de usuarios sobre MySQL/MariaDB.
package mysql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/ug-competencias/backend/internal/observability/logger"
	"github.com/ug-competencias/backend/internal/store/core"
)

// Tuning agrupa los knobs opcionales del pool database/sql.
type Tuning struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type Store struct{ db *sql.DB }

var _ core.UserRepository = (*Store)(nil)

// New abre la conexión contra el DSN dado. Requiere parseTime=true en el DSN
// para escanear created_at como time.Time; se fuerza vía config si falta.
func New(ctx context.Context, dsn string, tuning Tuning) (*Store, error) {
	cfg, err := gomysql.ParseDSN(dsn)
	if err != nil {
		return nil, err
	}
	cfg.ParseTime = true

	db, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, err
	}

	if tuning.MaxOpenConns > 0 {
		db.SetMaxOpenConns(tuning.MaxOpenConns)
	}
	if tuning.MaxIdleConns > 0 {
		db.SetMaxIdleConns(tuning.MaxIdleConns)
	}
	if tuning.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(tuning.ConnMaxLifetime)
	}

	log := logger.Named("store.mysql")
	if err := db.PingContext(ctx); err != nil {
		log.Warn("startup ping failed", logger.Err(err))
	} else {
		log.Info("pool ready")
	}

	return &Store{db: db}, nil
}

// DB expone el handle interno (migraciones).
func (s *Store) DB() *sql.DB {
	if s == nil {
		return nil
	}
	return s.db
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) GetByID(ctx context.Context, id int64) (*core.User, error) {
	return scanOne(s.db.QueryRowContext(ctx, `
		SELECT id, nombre, correo, password_hash, role, created_at
		  FROM users WHERE id = ?`, id))
}

func (s *Store) GetByEmail(ctx context.Context, correo string) (*core.User, error) {
	return scanOne(s.db.QueryRowContext(ctx, `
		SELECT id, nombre, correo, password_hash, role, created_at
		  FROM users WHERE correo = ?`, correo))
}

func (s *Store) List(ctx context.Context) ([]core.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, nombre, correo, password_hash, role, created_at
		  FROM users ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]core.User, 0)
	for rows.Next() {
		var u core.User
		var role string
		if err := rows.Scan(&u.ID, &u.Nombre, &u.Correo, &u.PasswordHash, &role, &u.CreatedAt); err != nil {
			return nil, err
		}
		u.Role = core.Role(role)
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *Store) Create(ctx context.Context, u *core.User) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO users (nombre, correo, password_hash, role)
		VALUES (?, ?, ?, ?)`,
		u.Nombre, u.Correo, u.PasswordHash, string(u.Role))
	if err != nil {
		if isDuplicateEntry(err) {
			return core.ErrConflict
		}
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = id

	// MySQL no tiene RETURNING; releemos created_at.
	return s.db.QueryRowContext(ctx, `SELECT created_at FROM users WHERE id = ?`, id).Scan(&u.CreatedAt)
}

func (s *Store) UpdateRole(ctx context.Context, id int64, role core.Role) (*core.User, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE users SET role = ? WHERE id = ?`, string(role), id)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		// Rol idéntico también reporta 0 filas; distinguimos con un lookup.
		if _, err := s.GetByID(ctx, id); err != nil {
			return nil, err
		}
	}
	return s.GetByID(ctx, id)
}

func (s *Store) UpdateCredentials(ctx context.Context, id int64, correo, passwordHash string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE users SET correo = ?, password_hash = ? WHERE id = ?`,
		correo, passwordHash, id)
	if err != nil {
		if isDuplicateEntry(err) {
			return core.ErrConflict
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := s.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

// isDuplicateEntry detecta el error 1062 de MySQL (duplicate entry).
func isDuplicateEntry(err error) bool {
	var myErr *gomysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == 1062
}

func scanOne(row *sql.Row) (*core.User, error) {
	var u core.User
	var role string
	if err := row.Scan(&u.ID, &u.Nombre, &u.Correo, &u.PasswordHash, &role, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, err
	}
	u.Role = core.Role(role)
	return &u, nil
}
