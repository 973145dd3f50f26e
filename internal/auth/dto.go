package auth

import (
	"github.com/google/uuid"

	"github.com/pawmart/pawmart-backend/pkg/db/models"
	"github.com/pawmart/pawmart-backend/pkg/enums"
)

// AccountDTO is the slimmed-down account view returned from auth endpoints.
type AccountDTO struct {
	ID        uuid.UUID      `json:"id"`
	Email     string         `json:"email"`
	FirstName string         `json:"first_name"`
	LastName  string         `json:"last_name"`
	Role      enums.UserRole `json:"role"`
}

// AuthResponse is the login/registration payload: a bearer token plus the
// account it belongs to.
type AuthResponse struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	ExpiresIn   int64      `json:"expires_in"`
	Account     AccountDTO `json:"account"`
}

func toAccountDTO(profile models.Profile) AccountDTO {
	return AccountDTO{
		ID:        profile.ID,
		Email:     profile.Email,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Role:      profile.Role,
	}
}
