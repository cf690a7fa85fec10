package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"store-pos/internal/model"
	"store-pos/internal/repository"
	"store-pos/internal/service"
	"store-pos/internal/testdb"
	"store-pos/pkg/logger"
)

func newSeeder(t *testing.T) (*Seeder, repository.UserRepository) {
	db := testdb.New(t)
	users := repository.NewUserRepo(db)
	accounts := service.NewUserService(users, repository.NewClientRepo(db), db, nil)
	return New(users, accounts, logger.Discard()), users
}

func TestSeedAccountsIsIdempotent(t *testing.T) {
	s, users := newSeeder(t)

	n, err := s.SeedAccounts(DemoAccounts)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = s.SeedAccounts(DemoAccounts)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	manager, err := users.FindByUsername("manager1")
	require.NoError(t, err)
	require.NotNil(t, manager.Profile)
	assert.Equal(t, model.RoleManager, manager.Profile.Role)
	assert.True(t, manager.CheckPassword("manager123"))
	assert.False(t, manager.IsSuperuser)
}

func TestEnsureSuperuser(t *testing.T) {
	s, users := newSeeder(t)

	require.NoError(t, s.EnsureSuperuser("admin", ""))
	_, err := users.FindByUsername("admin")
	assert.Error(t, err)

	require.NoError(t, s.EnsureSuperuser("admin", "changeme"))
	admin, err := users.FindByUsername("admin")
	require.NoError(t, err)
	assert.True(t, admin.IsSuperuser)
	assert.True(t, admin.IsActive)
}
