package products

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pawmart/pawmart-backend/pkg/db/models"
)

func seedProduct(t *testing.T, db *gorm.DB, name, category string, price string, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:       uuid.New(),
		Name:     name,
		Category: category,
		Price:    decimal.RequireFromString(price),
		Stock:    stock,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestListFiltersByCategory(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedProduct(t, db, "Premium Dog Food", "Dog Food", "45.99", 50)
	seedProduct(t, db, "Interactive Cat Toy", "Cat Toys", "12.50", 120)

	rows, next, err := repo.List(ctx, ListFilter{Category: "Cat Toys"})
	require.NoError(t, err)
	assert.Empty(t, next)
	require.Len(t, rows, 1)
	assert.Equal(t, "Interactive Cat Toy", rows[0].Name)
}

func TestListSearchIsCaseInsensitiveAcrossFields(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	dogFood := seedProduct(t, db, "Premium Dog Food", "Dog Food", "45.99", 50)
	dogFood.Brand = "TailWaggers"
	dogFood.Description = "Grain-free kibble for adult dogs"
	require.NoError(t, db.Save(dogFood).Error)
	seedProduct(t, db, "Interactive Cat Toy", "Cat Toys", "12.50", 120)

	tests := []struct {
		name   string
		search string
	}{
		{name: "matchesName", search: "premium"},
		{name: "matchesBrand", search: "TAILWAG"},
		{name: "matchesDescription", search: "kibble"},
		{name: "matchesCategory", search: "dog food"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, _, err := repo.List(ctx, ListFilter{Search: tt.search})
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.Equal(t, dogFood.ID, rows[0].ID)
		})
	}
}

func TestListPaginatesWithCursor(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		product := seedProduct(t, db, "Chew Bone", "Dog Treats", "5.00", 10)
		require.NoError(t, db.Model(product).UpdateColumn("created_at", base.Add(time.Duration(i)*time.Minute)).Error)
	}

	first, next, err := repo.List(ctx, ListFilter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, first, 2)
	require.NotEmpty(t, next)

	second, last, err := repo.List(ctx, ListFilter{Limit: 2, Cursor: next})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Empty(t, last)
}

func TestCategoriesReturnsDistinctValues(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedProduct(t, db, "A", "Dog Food", "1.00", 1)
	seedProduct(t, db, "B", "Dog Food", "2.00", 1)
	seedProduct(t, db, "C", "Cat Toys", "3.00", 1)

	categories, err := repo.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cat Toys", "Dog Food"}, categories)
}

func TestDecrementStockGuardsAgainstNegative(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	product := seedProduct(t, db, "Premium Dog Food", "Dog Food", "45.99", 5)

	require.NoError(t, repo.DecrementStock(ctx, product.ID, 3))

	reloaded, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.Stock)

	err = repo.DecrementStock(ctx, product.ID, 3)
	require.ErrorIs(t, err, ErrInsufficientStock)

	reloaded, err = repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.Stock, "failed decrement must not change stock")
}

func TestDeleteRemovesRow(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	product := seedProduct(t, db, "Bird Seed", "Bird Food", "8.25", 30)
	require.NoError(t, repo.Delete(ctx, product.ID))

	_, err := repo.FindByID(ctx, product.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
