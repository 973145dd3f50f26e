package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem is a point-in-time snapshot of a purchased product, decoupled
// from the live product record.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   uuid.UUID       `gorm:"column:order_id;type:uuid;not null"`
	ProductID *uuid.UUID      `gorm:"column:product_id;type:uuid"`
	Name      string          `gorm:"column:name;not null"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(10,2);not null"`
	Qty       int             `gorm:"column:qty;not null"`
	ImageURL  string          `gorm:"column:image_url;not null;default:''"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
}
