// Package bootstrap contiene rutinas de arranque: seed de la cuenta admin.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/ug-competencias/backend/internal/observability/logger"
	"github.com/ug-competencias/backend/internal/security/password"
	"github.com/ug-competencias/backend/internal/store/core"
	"github.com/ug-competencias/backend/internal/validation"
)

// AdminSeed describe la cuenta admin a garantizar en el arranque.
type AdminSeed struct {
	Nombre   string
	Correo   string
	Password string

	// HashParams permite abaratar el hash en tests.
	HashParams *password.Params
}

// EnsureAdmin garantiza que exista la cuenta admin. Idempotente:
//   - si el correo ya existe, solo corrige el rol si hiciera falta;
//   - si existe un usuario con el nombre del seed pero otro correo
//     (instalación vieja), se le corrigen correo y password;
//   - si no existe, se crea.
func EnsureAdmin(ctx context.Context, users core.UserRepository, seed AdminSeed) error {
	log := logger.Named("bootstrap").With(logger.Component("admin_seed"))

	seed.Correo = validation.NormalizeEmail(seed.Correo)
	if seed.Correo == "" || seed.Nombre == "" {
		return fmt.Errorf("bootstrap: seed admin incompleto")
	}
	if seed.Password == "" {
		return fmt.Errorf("bootstrap: seed admin sin password")
	}
	params := password.Default
	if seed.HashParams != nil {
		params = *seed.HashParams
	}

	// Caso 1: la cuenta ya existe por correo.
	if u, err := users.GetByEmail(ctx, seed.Correo); err == nil {
		if u.Role != core.RoleAdmin {
			if _, err := users.UpdateRole(ctx, u.ID, core.RoleAdmin); err != nil {
				return err
			}
			log.Info("admin role restored", logger.UserID(u.ID))
		}
		log.Debug("admin already present", logger.UserID(u.ID))
		return nil
	} else if !errors.Is(err, core.ErrNotFound) {
		return err
	}

	// Caso 2: instalación vieja, el admin quedó con otro correo.
	all, err := users.List(ctx)
	if err != nil {
		return err
	}
	for i := range all {
		if all[i].Nombre != seed.Nombre {
			continue
		}
		hash, err := password.Hash(params, seed.Password)
		if err != nil {
			return err
		}
		if err := users.UpdateCredentials(ctx, all[i].ID, seed.Correo, hash); err != nil {
			return err
		}
		if all[i].Role != core.RoleAdmin {
			if _, err := users.UpdateRole(ctx, all[i].ID, core.RoleAdmin); err != nil {
				return err
			}
		}
		log.Info("admin account repaired", logger.UserID(all[i].ID))
		return nil
	}

	// Caso 3: alta inicial.
	hash, err := password.Hash(params, seed.Password)
	if err != nil {
		return err
	}
	u := &core.User{
		Nombre:       seed.Nombre,
		Correo:       seed.Correo,
		PasswordHash: hash,
		Role:         core.RoleAdmin,
	}
	if err := users.Create(ctx, u); err != nil {
		return err
	}
	log.Info("admin account created", logger.UserID(u.ID))
	return nil
}
