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
)

func TestPortalOnlyShowsOwnSales(t *testing.T) {
	db := testdb.New(t)
	svc := NewPortalService(repository.NewClientRepo(db), repository.NewSaleRepo(db))

	cat := testdb.Category(t, db, "Drinks")
	water := testdb.Product(t, db, cat, "Water", "1.25", 50)
	seller := testdb.User(t, db, "manager1", model.RoleManager)
	ana := testdb.Client(t, db, "Ana", "Lopez")
	luis := testdb.Client(t, db, "Luis", "Perez")

	own := testdb.Sale(t, db, seller, ana, water, 2, time.Now())
	other := testdb.Sale(t, db, seller, luis, water, 4, time.Now())

	dash, err := svc.Dashboard(&ana.ID)
	require.NoError(t, err)
	require.Len(t, dash.Sales, 1)
	assert.Equal(t, own.ID, dash.Sales[0].ID)
	assert.Equal(t, "2.5", dash.TotalSpent.String())

	sale, err := svc.SaleDetail(&ana.ID, own.ID)
	require.NoError(t, err)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, "Water", sale.Items[0].Product.Name)

	_, err = svc.SaleDetail(&ana.ID, other.ID)
	assert.True(t, errors.Is(err, e.ErrNotFound))

	_, err = svc.Dashboard(nil)
	assert.True(t, errors.Is(err, ErrNoClientAccount))
}
