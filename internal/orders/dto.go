package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pawmart/pawmart-backend/pkg/db/models"
	"github.com/pawmart/pawmart-backend/pkg/enums"
	"github.com/pawmart/pawmart-backend/pkg/types"
)

// OrderItemDTO is the purchased-product snapshot returned to clients.
type OrderItemDTO struct {
	ProductID *uuid.UUID      `json:"product_id,omitempty"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Qty       int             `json:"qty"`
	ImageURL  string          `json:"image_url,omitempty"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderDTO is the order representation returned to clients.
type OrderDTO struct {
	ID              uuid.UUID             `json:"id"`
	UserID          uuid.UUID             `json:"user_id"`
	CustomerName    string                `json:"customer_name"`
	ShippingAddress types.ShippingAddress `json:"shipping_address"`
	TotalAmount     decimal.Decimal       `json:"total_amount"`
	Status          enums.OrderStatus     `json:"status"`
	PaymentRef      *string               `json:"payment_ref,omitempty"`
	Items           []OrderItemDTO        `json:"items"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// OrderListResult carries one admin page plus the next cursor.
type OrderListResult struct {
	Orders     []OrderDTO `json:"orders"`
	NextCursor string     `json:"next_cursor,omitempty"`
}

func toItemDTO(item models.OrderItem) OrderItemDTO {
	return OrderItemDTO{
		ProductID: item.ProductID,
		Name:      item.Name,
		UnitPrice: item.UnitPrice,
		Qty:       item.Qty,
		ImageURL:  item.ImageURL,
		Subtotal:  item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Qty))),
	}
}

func toDTO(order models.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, toItemDTO(item))
	}
	return OrderDTO{
		ID:              order.ID,
		UserID:          order.UserID,
		CustomerName:    order.CustomerName,
		ShippingAddress: order.ShippingAddress,
		TotalAmount:     order.TotalAmount,
		Status:          order.Status,
		PaymentRef:      order.PaymentRef,
		Items:           items,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}

func toDTOs(rows []models.Order) []OrderDTO {
	out := make([]OrderDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDTO(row))
	}
	return out
}
