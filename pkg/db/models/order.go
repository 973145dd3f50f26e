package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pawmart/pawmart-backend/pkg/enums"
	"github.com/pawmart/pawmart-backend/pkg/types"
)

// Order is created once at checkout completion in the pending state.
type Order struct {
	ID              uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID          uuid.UUID             `gorm:"column:user_id;type:uuid;not null"`
	CustomerName    string                `gorm:"column:customer_name;not null"`
	ShippingAddress types.ShippingAddress `gorm:"column:shipping_address;type:jsonb;serializer:json"`
	TotalAmount     decimal.Decimal       `gorm:"column:total_amount;type:numeric(10,2);not null"`
	Status          enums.OrderStatus     `gorm:"column:status;type:text;not null;default:'pending'"`
	PaymentRef      *string               `gorm:"column:payment_ref"`
	Items           []OrderItem           `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
