package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCartDerivedTotals(t *testing.T) {
	c := NewCart()
	assert.True(t, c.IsEmpty())
	assert.True(t, c.Total().IsZero())
	assert.Equal(t, 0, c.ItemCount())

	// A discounted 45.99 item at 39.99 plus two 12.50 items.
	c.Upsert(Item{ProductID: uuid.New(), Name: "Premium Dog Food", UnitPrice: decimal.RequireFromString("39.99"), Qty: 1})
	c.Upsert(Item{ProductID: uuid.New(), Name: "Catnip Mice", UnitPrice: decimal.RequireFromString("12.50"), Qty: 2})

	assert.True(t, c.Total().Equal(decimal.RequireFromString("64.99")), "got %s", c.Total())
	assert.Equal(t, 3, c.ItemCount())
}

func TestCartUpsertReplacesLine(t *testing.T) {
	productID := uuid.New()
	c := NewCart()
	c.Upsert(Item{ProductID: productID, UnitPrice: decimal.RequireFromString("10.00"), Qty: 1})
	c.Upsert(Item{ProductID: productID, UnitPrice: decimal.RequireFromString("8.00"), Qty: 3})

	assert.Len(t, c.Items, 1)
	assert.Equal(t, 3, c.ItemCount())
	assert.True(t, c.Total().Equal(decimal.RequireFromString("24.00")))
}

func TestCartRemove(t *testing.T) {
	first := uuid.New()
	second := uuid.New()
	c := NewCart()
	c.Upsert(Item{ProductID: first, UnitPrice: decimal.RequireFromString("5.00"), Qty: 1})
	c.Upsert(Item{ProductID: second, UnitPrice: decimal.RequireFromString("7.00"), Qty: 1})

	c.Remove(first)
	assert.Len(t, c.Items, 1)
	assert.Equal(t, second, c.Items[0].ProductID)

	// Removing an absent line is a no-op.
	c.Remove(first)
	assert.Len(t, c.Items, 1)
}
