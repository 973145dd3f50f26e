package products

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pawmart/pawmart-backend/pkg/db/models"
)

// ProductDTO is the catalog representation returned to clients.
type ProductDTO struct {
	ID             uuid.UUID        `json:"id"`
	Name           string           `json:"name"`
	Brand          string           `json:"brand,omitempty"`
	Category       string           `json:"category"`
	Description    string           `json:"description,omitempty"`
	Price          decimal.Decimal  `json:"price"`
	DiscountPrice  *decimal.Decimal `json:"discount_price,omitempty"`
	EffectivePrice decimal.Decimal  `json:"effective_price"`
	ImageURL       string           `json:"image_url,omitempty"`
	Stock          int              `json:"stock"`
	Tags           []string         `json:"tags,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// ProductListResult carries one catalog page plus the next cursor.
type ProductListResult struct {
	Products   []ProductDTO `json:"products"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

func toDTO(p models.Product) ProductDTO {
	return ProductDTO{
		ID:             p.ID,
		Name:           p.Name,
		Brand:          p.Brand,
		Category:       p.Category,
		Description:    p.Description,
		Price:          p.Price,
		DiscountPrice:  p.DiscountPrice,
		EffectivePrice: p.EffectivePrice(),
		ImageURL:       p.ImageURL,
		Stock:          p.Stock,
		Tags:           p.Tags,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
