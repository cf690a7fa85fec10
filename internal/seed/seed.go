// Package seed creates the bootstrap superuser and the demo staff accounts.
package seed

import (
	"errors"

	"store-pos/internal/model"
	"store-pos/internal/repository"
	"store-pos/internal/service"
	"store-pos/pkg/e"
	"store-pos/pkg/logger"
)

type Account struct {
	Username   string
	Password   string
	FullName   string
	Email      string
	Role       model.Role
	Department string
}

// DemoAccounts are the accounts created by cmd/seed-users.
var DemoAccounts = []Account{
	{Username: "seller1", Password: "seller123", FullName: "Demo Seller", Email: "seller1@example.com", Role: model.RoleSeller, Department: "Sales"},
	{Username: "manager1", Password: "manager123", FullName: "Demo Manager", Email: "manager1@example.com", Role: model.RoleManager, Department: "Operations"},
	{Username: "admin1", Password: "admin123", FullName: "Demo Administrator", Email: "admin1@example.com", Role: model.RoleAdministrator, Department: "Administration"},
}

type Seeder struct {
	users    repository.UserRepository
	accounts service.UserService
	log      logger.Logger
}

func New(users repository.UserRepository, accounts service.UserService, log logger.Logger) *Seeder {
	return &Seeder{users: users, accounts: accounts, log: log}
}

// EnsureSuperuser creates the superuser when no account with that username exists.
// An empty password skips seeding.
func (s *Seeder) EnsureSuperuser(username, password string) error {
	if password == "" {
		s.log.Warnf("seed: ADMIN_PASSWORD not set, superuser %q not created", username)
		return nil
	}
	created, err := s.ensure(Account{
		Username: username,
		Password: password,
		FullName: "Administrator",
		Role:     model.RoleAdministrator,
	}, true)
	if err != nil {
		return err
	}
	if created {
		s.log.Infof("seed: superuser %q created", username)
	}
	return nil
}

// SeedAccounts creates every missing account and reports how many were new.
func (s *Seeder) SeedAccounts(accounts []Account) (int, error) {
	n := 0
	for _, a := range accounts {
		created, err := s.ensure(a, false)
		if err != nil {
			return n, e.Wrap(a.Username, err)
		}
		if created {
			s.log.Infof("seed: created %s (%s)", a.Username, a.Role)
			n++
		} else {
			s.log.Infof("seed: %s already exists", a.Username)
		}
	}
	return n, nil
}

func (s *Seeder) ensure(a Account, superuser bool) (bool, error) {
	_, err := s.users.FindByUsername(a.Username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, e.ErrNotFound) {
		return false, err
	}

	_, err = s.accounts.CreateUser(nil, service.CreateUserRequest{
		Username:    a.Username,
		Email:       a.Email,
		Password:    a.Password,
		FullName:    a.FullName,
		IsSuperuser: superuser,
		Role:        string(a.Role),
		Department:  a.Department,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
