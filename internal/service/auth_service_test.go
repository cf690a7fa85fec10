package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"store-pos/internal/model"
	"store-pos/internal/repository"
	"store-pos/internal/testdb"
	"store-pos/pkg/e"
	"store-pos/pkg/jwt"
)

func TestLoginAndAuthenticate(t *testing.T) {
	db := testdb.New(t)
	now := time.Now()
	svc := NewAuthService(repository.NewUserRepo(db), jwt.NewManager("test-secret", time.Hour), func() time.Time { return now })
	user := testdb.User(t, db, "seller1", model.RoleSeller)

	_, err := svc.Login("seller1", "wrong")
	assert.True(t, errors.Is(err, e.ErrInvalidCredentials))
	_, err = svc.Login("nobody", "secret123")
	assert.True(t, errors.Is(err, e.ErrInvalidCredentials))

	res, err := svc.Login("seller1", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "seller1", res.User.Username)

	p, err := svc.Authenticate(res.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, p.UserID)
	assert.Equal(t, model.RoleSeller, p.Role())

	// a second login replaces the first session
	second, err := svc.Login("seller1", "secret123")
	require.NoError(t, err)
	_, err = svc.Authenticate(res.Token)
	assert.True(t, errors.Is(err, e.ErrSessionExpired))

	require.NoError(t, svc.Logout(user.ID))
	_, err = svc.Authenticate(second.Token)
	assert.True(t, errors.Is(err, e.ErrSessionExpired))

	_, err = svc.Authenticate("garbage")
	assert.True(t, errors.Is(err, jwt.ErrInvalidToken))
}

func TestLoginRejectsInactiveUser(t *testing.T) {
	db := testdb.New(t)
	svc := NewAuthService(repository.NewUserRepo(db), jwt.NewManager("test-secret", time.Hour), nil)
	user := testdb.User(t, db, "seller1", model.RoleSeller)
	require.NoError(t, db.Model(&model.User{}).Where("id = ?", user.ID).Update("is_active", false).Error)

	_, err := svc.Login("seller1", "secret123")
	assert.True(t, errors.Is(err, e.ErrUserInactive))
}
