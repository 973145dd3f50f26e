package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/pawmart/pawmart-backend/pkg/enums"
)

// Profile is the application-level user record keyed to the identity row.
type Profile struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	User      *User          `gorm:"foreignKey:ID;references:ID;constraint:OnDelete:CASCADE"`
	Email     string         `gorm:"column:email;type:text;not null"`
	FirstName string         `gorm:"column:first_name;not null"`
	LastName  string         `gorm:"column:last_name;not null"`
	Role      enums.UserRole `gorm:"column:role;type:text;not null;default:'user'"`
	Address   *string        `gorm:"column:address"`
	City      *string        `gorm:"column:city"`
	Zip       *string        `gorm:"column:zip"`
	Country   *string        `gorm:"column:country"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

// AddressComplete reports whether every shipping address field is set. The
// fields are written all-or-none, so a single populated field counts as
// incomplete.
func (p Profile) AddressComplete() bool {
	for _, f := range []*string{p.Address, p.City, p.Zip, p.Country} {
		if f == nil || *f == "" {
			return false
		}
	}
	return true
}
