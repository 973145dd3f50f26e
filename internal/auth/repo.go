package auth

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/pawmart/pawmart-backend/pkg/db/models"
)

// Repository provides identity persistence on top of GORM.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindUserByEmail loads the identity row for a normalized email.
func (r *Repository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		First(&user, "email = ?", strings.ToLower(strings.TrimSpace(email))).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUserWithProfile inserts the identity row and its profile in one
// transaction so a failed profile insert never leaves an orphan login.
func (r *Repository) CreateUserWithProfile(ctx context.Context, user *models.User, profile *models.Profile) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile.ID = user.ID
		return tx.Create(profile).Error
	})
	if err != nil {
		return fmt.Errorf("creating user: %w", err)
	}
	return nil
}
