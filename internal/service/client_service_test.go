package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"store-pos/internal/access"
	"store-pos/internal/model"
	"store-pos/internal/repository"
	"store-pos/internal/testdb"
	"store-pos/pkg/e"
	"store-pos/pkg/validator"
)

func TestClientCreateAndUpdate(t *testing.T) {
	db := testdb.New(t)
	svc := NewClientService(repository.NewClientRepo(db))

	_, err := svc.Create(nil, ClientInput{FirstName: "Ana", Email: "nope"})
	var verr *validator.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "last_name")
	assert.Contains(t, verr.Fields, "email")

	c, err := svc.Create(nil, ClientInput{FirstName: "Ana", LastName: "Lopez", Email: "ana@example.com"})
	require.NoError(t, err)
	_, err = svc.Create(nil, ClientInput{FirstName: "Luis", LastName: "Benitez"})
	require.NoError(t, err)

	all, err := svc.List("")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Benitez", all[0].LastName)

	updated, err := svc.Update(nil, c.ID, ClientInput{FirstName: "Ana", LastName: "Lopez Ruiz", Phone: "555-0100"})
	require.NoError(t, err)
	assert.Equal(t, "Lopez Ruiz", updated.LastName)

	found, err := svc.List("ruiz")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "555-0100", found[0].Phone)

	_, err = svc.Update(nil, uuid.New(), ClientInput{FirstName: "X", LastName: "Y"})
	assert.True(t, errors.Is(err, e.ErrNotFound))
}

func TestClientDeleteReleasesAccountAndKeepsSales(t *testing.T) {
	db := testdb.New(t)
	svc := NewClientService(repository.NewClientRepo(db))
	admin := access.NewPrincipal(testdb.User(t, db, "admin1", model.RoleAdministrator))

	cat := testdb.Category(t, db, "Drinks")
	water := testdb.Product(t, db, cat, "Water", "1.25", 50)
	seller := testdb.User(t, db, "manager1", model.RoleManager)
	ana := testdb.Client(t, db, "Ana", "Lopez")
	account := testdb.User(t, db, "ana", model.RoleClient)
	require.NoError(t, db.Model(&model.Client{}).Where("id = ?", ana.ID).Update("user_id", account.ID).Error)
	sale := testdb.Sale(t, db, seller, ana, water, 2, time.Now())

	require.NoError(t, svc.Delete(admin, ana.ID))

	_, err := svc.Get(ana.ID)
	assert.True(t, errors.Is(err, e.ErrNotFound))

	var gone model.Client
	require.NoError(t, db.Unscoped().First(&gone, "id = ?", ana.ID).Error)
	assert.True(t, gone.DeletedAt.Valid)
	assert.Equal(t, "admin1", gone.DeletedBy)
	assert.Nil(t, gone.UserID)

	var kept model.Sale
	require.NoError(t, db.First(&kept, "id = ?", sale.ID).Error)
	require.NotNil(t, kept.ClientID)
	assert.Equal(t, ana.ID, *kept.ClientID)

	assert.True(t, errors.Is(svc.Delete(admin, ana.ID), e.ErrNotFound))
}
