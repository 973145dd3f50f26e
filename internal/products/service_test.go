package products

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawmart/pawmart-backend/pkg/db/models"
	pkgerrors "github.com/pawmart/pawmart-backend/pkg/errors"
)

func decimalPtr(value string) *decimal.Decimal {
	d := decimal.RequireFromString(value)
	return &d
}

func TestEffectivePricePrefersDiscount(t *testing.T) {
	discounted := models.Product{
		Price:         decimal.RequireFromString("45.99"),
		DiscountPrice: decimalPtr("39.99"),
	}
	assert.True(t, discounted.EffectivePrice().Equal(decimal.RequireFromString("39.99")))

	full := models.Product{Price: decimal.RequireFromString("12.50")}
	assert.True(t, full.EffectivePrice().Equal(decimal.RequireFromString("12.50")))
}

func TestNormalizeCategories(t *testing.T) {
	raw := []string{
		"Dog Food (dry)",
		"Dog Food",
		"  Cat Toys  ",
		"Bird Supplies (cages & stands)",
		"",
	}
	assert.Equal(t, []string{"Dog Food", "Cat Toys", "Bird Supplies"}, normalizeCategories(raw))
}

func TestValidateCreateRejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		input CreateProductInput
	}{
		{name: "missingName", input: CreateProductInput{Category: "Dog Food", Price: decimal.Zero}},
		{name: "missingCategory", input: CreateProductInput{Name: "Kibble", Price: decimal.Zero}},
		{name: "negativePrice", input: CreateProductInput{Name: "Kibble", Category: "Dog Food", Price: decimal.RequireFromString("-1")}},
		{name: "negativeStock", input: CreateProductInput{Name: "Kibble", Category: "Dog Food", Price: decimal.Zero, Stock: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateCreate(tt.input)
			require.Error(t, err)
			typed := pkgerrors.As(err)
			require.NotNil(t, typed)
			assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
		})
	}
}

func TestApplyUpdateClearsDiscount(t *testing.T) {
	product := &models.Product{
		Name:          "Kibble",
		Category:      "Dog Food",
		Price:         decimal.RequireFromString("45.99"),
		DiscountPrice: decimalPtr("39.99"),
	}

	var cleared *decimal.Decimal
	require.NoError(t, applyUpdate(product, UpdateProductInput{DiscountPrice: &cleared}))
	assert.Nil(t, product.DiscountPrice)
	assert.True(t, product.EffectivePrice().Equal(decimal.RequireFromString("45.99")))
}

func TestServiceCRUDRoundTrip(t *testing.T) {
	db := openTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, CreateProductInput{
		Name:          "Premium Dog Food",
		Brand:         "TailWaggers",
		Category:      "Dog Food",
		Price:         decimal.RequireFromString("45.99"),
		DiscountPrice: decimalPtr("39.99"),
		Stock:         50,
		Tags:          []string{"grain-free", "adult"},
	})
	require.NoError(t, err)
	assert.True(t, created.EffectivePrice.Equal(decimal.RequireFromString("39.99")))

	fetched, err := svc.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Premium Dog Food", fetched.Name)

	newStock := 40
	updated, err := svc.UpdateProduct(ctx, created.ID, UpdateProductInput{Stock: &newStock})
	require.NoError(t, err)
	assert.Equal(t, 40, updated.Stock)

	require.NoError(t, svc.DeleteProduct(ctx, created.ID))

	_, err = svc.GetProduct(ctx, created.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestGetProductRejectsNilID(t *testing.T) {
	svc := &service{repo: NewRepository(openTestDB(t))}
	_, err := svc.GetProduct(context.Background(), uuid.Nil)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestListProductsRejectsMalformedCursor(t *testing.T) {
	svc := &service{repo: NewRepository(openTestDB(t))}

	_, err := svc.ListProducts(context.Background(), ListFilter{Cursor: "not-base64!!"})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}
