package checkout

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pawmart/pawmart-backend/internal/cart"
	"github.com/pawmart/pawmart-backend/pkg/enums"
	"github.com/pawmart/pawmart-backend/pkg/types"
)

// SessionDTO reports the state of the in-flight checkout attempt together
// with the cart summary it will charge for.
type SessionDTO struct {
	State           State                 `json:"state"`
	ShippingAddress types.ShippingAddress `json:"shipping_address"`
	Items           []cart.Item           `json:"items"`
	Total           decimal.Decimal       `json:"total"`
	ItemCount       int                   `json:"item_count"`
	StartedAt       time.Time             `json:"started_at"`
}

// ConfirmationDTO is returned once an order has been placed.
type ConfirmationDTO struct {
	OrderID     uuid.UUID         `json:"order_id"`
	Status      enums.OrderStatus `json:"status"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
	PaymentRef  string            `json:"payment_ref"`
	PlacedAt    time.Time         `json:"placed_at"`
}

func toSessionDTO(session *Session, c *cart.Cart) SessionDTO {
	return SessionDTO{
		State:           session.State,
		ShippingAddress: session.ShippingAddress,
		Items:           c.Items,
		Total:           c.Total(),
		ItemCount:       c.ItemCount(),
		StartedAt:       session.StartedAt,
	}
}
