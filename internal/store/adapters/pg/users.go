package pg

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/ug-competencias/backend/internal/store/core"
)

var _ core.UserRepository = (*Store)(nil)

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) GetByID(ctx context.Context, id int64) (*core.User, error) {
	return s.scanOne(s.pool.QueryRow(ctx, `
		SELECT id, nombre, correo, password_hash, role, created_at
		  FROM users WHERE id = $1`, id))
}

func (s *Store) GetByEmail(ctx context.Context, correo string) (*core.User, error) {
	return s.scanOne(s.pool.QueryRow(ctx, `
		SELECT id, nombre, correo, password_hash, role, created_at
		  FROM users WHERE correo = $1`, correo))
}

func (s *Store) List(ctx context.Context) ([]core.User, error) {
	rows, err := s.pool.Query(ctx, `
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
	err := s.pool.QueryRow(ctx, `
		INSERT INTO users (nombre, correo, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		u.Nombre, u.Correo, u.PasswordHash, string(u.Role),
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return core.ErrConflict
		}
		return err
	}
	return nil
}

func (s *Store) UpdateRole(ctx context.Context, id int64, role core.Role) (*core.User, error) {
	return s.scanOne(s.pool.QueryRow(ctx, `
		UPDATE users SET role = $1 WHERE id = $2
		RETURNING id, nombre, correo, password_hash, role, created_at`,
		string(role), id))
}

func (s *Store) UpdateCredentials(ctx context.Context, id int64, correo, passwordHash string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE users SET correo = $1, password_hash = $2 WHERE id = $3`,
		correo, passwordHash, id)
	if err != nil {
		if isUniqueViolation(err) {
			return core.ErrConflict
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (s *Store) scanOne(row pgx.Row) (*core.User, error) {
	var u core.User
	var role string
	if err := row.Scan(&u.ID, &u.Nombre, &u.Correo, &u.PasswordHash, &role, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, err
	}
	u.Role = core.Role(role)
	return &u, nil
}
