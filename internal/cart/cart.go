package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is a cart line holding a product snapshot. The unit price is the
// effective price (discount applied) as of the last mutation that touched
// this line; lines left alone keep their snapshot price, and checkout
// charges whatever the snapshot says.
type Item struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	ImageURL  string          `json:"image_url,omitempty"`
	Qty       int             `json:"qty"`
}

// Subtotal is the line total for this item.
func (i Item) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Qty)))
}

// Cart is the per-user shopping cart. Totals are always derived from the
// lines, never stored.
type Cart struct {
	Items     []Item    `json:"items"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{Items: []Item{}}
}

func (c *Cart) indexOf(productID uuid.UUID) int {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

// Find returns the line for productID, or nil when absent.
func (c *Cart) Find(productID uuid.UUID) *Item {
	if idx := c.indexOf(productID); idx >= 0 {
		return &c.Items[idx]
	}
	return nil
}

// Upsert replaces the line for item.ProductID, appending when new.
func (c *Cart) Upsert(item Item) {
	if idx := c.indexOf(item.ProductID); idx >= 0 {
		c.Items[idx] = item
		return
	}
	c.Items = append(c.Items, item)
}

// Remove drops the line for productID if present.
func (c *Cart) Remove(productID uuid.UUID) {
	idx := c.indexOf(productID)
	if idx < 0 {
		return
	}
	c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
}

// Total sums the line subtotals.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// ItemCount sums the quantities across all lines.
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Qty
	}
	return count
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
