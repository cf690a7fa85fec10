package service

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"store-pos/internal/repository"
	"store-pos/internal/testdb"
	"store-pos/pkg/e"
	"store-pos/pkg/validator"
)

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func TestProductCreateValidation(t *testing.T) {
	db := testdb.New(t)
	svc := NewProductService(repository.NewProductRepo(db), repository.NewCategoryRepo(db), nil)
	cat := testdb.Category(t, db, "Drinks")

	cases := []struct {
		name  string
		in    ProductInput
		field string
	}{
		{"missing name", ProductInput{Price: "1.00", Stock: intPtr(1), CategoryID: cat.ID.String()}, "name"},
		{"bad price", ProductInput{Name: "Tea", Price: "1.005", Stock: intPtr(1), CategoryID: cat.ID.String()}, "price"},
		{"negative price", ProductInput{Name: "Tea", Price: "-1", Stock: intPtr(1), CategoryID: cat.ID.String()}, "price"},
		{"negative stock", ProductInput{Name: "Tea", Price: "1.00", Stock: intPtr(-1), CategoryID: cat.ID.String()}, "stock"},
		{"missing stock", ProductInput{Name: "Tea", Price: "1.00", CategoryID: cat.ID.String()}, "stock"},
		{"unknown category", ProductInput{Name: "Tea", Price: "1.00", Stock: intPtr(1), CategoryID: "6f1c1e3a-0000-4000-8000-000000000000"}, "category_id"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(nil, tc.in)
			var verr *validator.ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Contains(t, verr.Fields, tc.field)
		})
	}

	products, err := svc.List("")
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestProductLifecycle(t *testing.T) {
	db := testdb.New(t)
	events := &recordingPublisher{}
	svc := NewProductService(repository.NewProductRepo(db), repository.NewCategoryRepo(db), events)
	cat := testdb.Category(t, db, "Drinks")

	p, err := svc.Create(nil, ProductInput{
		Name:        "Green Tea",
		Description: "Loose leaf",
		Price:       "4.5",
		Stock:       intPtr(12),
		CategoryID:  cat.ID.String(),
	})
	require.NoError(t, err)
	assert.True(t, p.Active)
	assert.True(t, decimal.RequireFromString("4.50").Equal(p.Price))

	updated, err := svc.Update(nil, p.ID, ProductInput{
		Name:       "Green Tea",
		Price:      "5.00",
		Stock:      intPtr(8),
		Active:     boolPtr(false),
		CategoryID: cat.ID.String(),
	})
	require.NoError(t, err)
	assert.False(t, updated.Active)

	fresh, err := svc.Get(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, fresh.Stock)
	assert.False(t, fresh.Active)
	assert.Equal(t, "", fresh.Description)
	require.NotNil(t, fresh.Category)
	assert.Equal(t, "Drinks", fresh.Category.Name)

	found, err := svc.List("LEAF")
	require.NoError(t, err)
	assert.Empty(t, found)
	found, err = svc.List("green")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	require.NoError(t, svc.Delete(nil, p.ID))
	_, err = svc.Get(p.ID)
	assert.True(t, errors.Is(err, e.ErrNotFound))
	assert.True(t, errors.Is(svc.Delete(nil, p.ID), e.ErrNotFound))

	assert.Len(t, events.events, 3)
}

func TestProductUpdateMissing(t *testing.T) {
	db := testdb.New(t)
	svc := NewProductService(repository.NewProductRepo(db), repository.NewCategoryRepo(db), nil)
	cat := testdb.Category(t, db, "Drinks")
	p := testdb.Product(t, db, cat, "Water", "1.00", 1)
	require.NoError(t, db.Delete(p).Error)

	_, err := svc.Update(nil, p.ID, ProductInput{Name: "Water", Price: "1.00", Stock: intPtr(1), CategoryID: cat.ID.String()})
	assert.True(t, errors.Is(err, e.ErrNotFound))
}
