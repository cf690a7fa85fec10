// Package testdb opens isolated in-memory SQLite databases with the full schema and small fixture helpers.
package testdb

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"store-pos/internal/model"
	"store-pos/pkg/database"
)

// New returns a migrated database private to t.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, DSN: dsn, LogLevel: "silent"})
	require.NoError(t, err)
	require.NoError(t, model.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func Category(t testing.TB, db *gorm.DB, name string) *model.Category {
	t.Helper()
	c := &model.Category{Name: name}
	require.NoError(t, db.Create(c).Error)
	return c
}

func Product(t testing.TB, db *gorm.DB, category *model.Category, name, price string, stock int) *model.Product {
	t.Helper()
	p := &model.Product{
		Name:       name,
		Price:      decimal.RequireFromString(price),
		Stock:      stock,
		Active:     true,
		CategoryID: category.ID,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func Client(t testing.TB, db *gorm.DB, first, last string) *model.Client {
	t.Helper()
	c := &model.Client{FirstName: first, LastName: last, Email: first + "@example.com"}
	require.NoError(t, db.Create(c).Error)
	return c
}

// User creates an active account with password "secret123". An empty role leaves it without a profile.
func User(t testing.TB, db *gorm.DB, username string, role model.Role) *model.User {
	t.Helper()
	u := &model.User{Username: username, IsActive: true}
	require.NoError(t, u.SetPassword("secret123"))
	require.NoError(t, db.Omit("Profile", "Client").Create(u).Error)
	if role != "" {
		p := &model.UserProfile{UserID: u.ID, Role: role, Active: true, HireDate: time.Now()}
		require.NoError(t, db.Create(p).Error)
		u.Profile = p
	}
	return u
}

// Sale inserts a finished sale directly, bypassing stock checks. SoldAt is stored in UTC like registered sales.
func Sale(t testing.TB, db *gorm.DB, seller *model.User, client *model.Client, product *model.Product, qty int, at time.Time) *model.Sale {
	t.Helper()
	subtotal := product.Price.Mul(decimal.NewFromInt(int64(qty)))
	s := &model.Sale{SoldAt: at.UTC(), Total: subtotal, SoldByID: seller.ID}
	if client != nil {
		id := client.ID
		s.ClientID = &id
	}
	require.NoError(t, db.Omit("Items", "Client", "SoldBy").Create(s).Error)
	item := &model.SaleLineItem{
		SaleID:    s.ID,
		ProductID: product.ID,
		Quantity:  qty,
		UnitPrice: product.Price,
		Subtotal:  subtotal,
	}
	require.NoError(t, db.Omit("Sale", "Product").Create(item).Error)
	s.Items = []model.SaleLineItem{*item}
	return s
}
