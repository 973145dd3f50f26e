package profiles

import (
	"time"

	"github.com/google/uuid"

	"github.com/pawmart/pawmart-backend/pkg/db/models"
	"github.com/pawmart/pawmart-backend/pkg/enums"
)

// ProfileDTO is the account representation returned to clients. The
// address-complete flag lets checkout prefill decisions happen client side.
type ProfileDTO struct {
	ID              uuid.UUID      `json:"id"`
	Email           string         `json:"email"`
	FirstName       string         `json:"first_name"`
	LastName        string         `json:"last_name"`
	Role            enums.UserRole `json:"role"`
	Address         *string        `json:"address,omitempty"`
	City            *string        `json:"city,omitempty"`
	Zip             *string        `json:"zip,omitempty"`
	Country         *string        `json:"country,omitempty"`
	AddressComplete bool           `json:"address_complete"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func toDTO(p models.Profile) ProfileDTO {
	return ProfileDTO{
		ID:              p.ID,
		Email:           p.Email,
		FirstName:       p.FirstName,
		LastName:        p.LastName,
		Role:            p.Role,
		Address:         p.Address,
		City:            p.City,
		Zip:             p.Zip,
		Country:         p.Country,
		AddressComplete: p.AddressComplete(),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
