package useradmin

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pawmart/pawmart-backend/pkg/db/models"
)

// Repository provides the cross-account queries used by the privileged
// user management functions.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListProfiles returns every account, newest first, with the identity row
// attached.
func (r *Repository) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	var rows []models.Profile
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	return rows, nil
}

// FindProfile loads one account with its identity row.
func (r *Repository) FindProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).
		Preload("User").
		First(&profile, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile persists the full profile row.
func (r *Repository) UpdateProfile(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}
	return profile, nil
}

// DeleteUser removes the identity row. The profile goes with it through
// the foreign key cascade.
func (r *Repository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("deleting user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
