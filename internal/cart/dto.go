package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartDTO is the cart representation returned to clients, with the derived
// totals computed server side.
type CartDTO struct {
	Items     []Item          `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func toCartDTO(c *Cart) CartDTO {
	return CartDTO{
		Items:     c.Items,
		Total:     c.Total(),
		ItemCount: c.ItemCount(),
		UpdatedAt: c.UpdatedAt,
	}
}
