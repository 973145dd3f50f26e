package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Product represents a storefront listing.
type Product struct {
	ID            uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name          string           `gorm:"column:name;not null"`
	Brand         string           `gorm:"column:brand;not null;default:''"`
	Category      string           `gorm:"column:category;not null"`
	Description   string           `gorm:"column:description;not null;default:''"`
	Price         decimal.Decimal  `gorm:"column:price;type:numeric(10,2);not null"`
	DiscountPrice *decimal.Decimal `gorm:"column:discount_price;type:numeric(10,2)"`
	ImageURL      string           `gorm:"column:image_url;not null;default:''"`
	Stock         int              `gorm:"column:stock;not null;default:0"`
	Tags          pq.StringArray   `gorm:"column:tags;type:text[]"`
	CreatedAt     time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// EffectivePrice is the discount price when set, else the list price.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}
	return p.Price
}
