// Package memory implementa core.UserRepository en memoria.
// Se usa en tests y en modo dev sin base de datos; respeta la misma
// semántica de errores que los adapters SQL (ErrNotFound / ErrConflict).
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ug-competencias/backend/internal/store/core"
)

type Store struct {
	mu     sync.RWMutex
	nextID int64
	users  map[int64]core.User
}

func New() *Store {
	return &Store{nextID: 1, users: make(map[int64]core.User)}
}

func (s *Store) Ping(ctx context.Context) error { return nil }

func (s *Store) GetByID(ctx context.Context, id int64) (*core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return &u, nil
}

func (s *Store) GetByEmail(ctx context.Context, correo string) (*core.User, error) {
	correo = strings.ToLower(strings.TrimSpace(correo))
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Correo, correo) {
			u := u
			return &u, nil
		}
	}
	return nil, core.ErrNotFound
}

func (s *Store) List(ctx context.Context) ([]core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	// Mismo orden que los adapters SQL: id descendente.
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *Store) Create(ctx context.Context, u *core.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ex := range s.users {
		if strings.EqualFold(ex.Correo, u.Correo) {
			return core.ErrConflict
		}
	}
	u.ID = s.nextID
	s.nextID++
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	s.users[u.ID] = *u
	return nil
}

func (s *Store) UpdateRole(ctx context.Context, id int64, role core.Role) (*core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	u.Role = role
	s.users[id] = u
	return &u, nil
}

func (s *Store) UpdateCredentials(ctx context.Context, id int64, correo, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return core.ErrNotFound
	}
	for otherID, ex := range s.users {
		if otherID != id && strings.EqualFold(ex.Correo, correo) {
			return core.ErrConflict
		}
	}
	u.Correo = correo
	u.PasswordHash = passwordHash
	s.users[id] = u
	return nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return core.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

var _ core.UserRepository = (*Store)(nil)
