package profiles

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/pawmart/pawmart-backend/pkg/errors"
)

// UpdateInput carries optional profile mutations. The four address fields
// travel together: a request that sets any of them must set all of them.
type UpdateInput struct {
	FirstName *string
	LastName  *string
	Address   *string
	City      *string
	Zip       *string
	Country   *string
}

// Service exposes the signed-in user's account data.
type Service interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateInput) (*ProfileDTO, error)
}

type service struct {
	repo *Repository
}

// NewService wires the profile service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, errors.New("profile repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	profile, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
	}
	dto := toDTO(*profile)
	return &dto, nil
}

func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateInput) (*ProfileDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if err := validateUpdate(input); err != nil {
		return nil, err
	}

	profile, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
	}

	if input.FirstName != nil {
		profile.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		profile.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Address != nil {
		profile.Address = trimPtr(input.Address)
		profile.City = trimPtr(input.City)
		profile.Zip = trimPtr(input.Zip)
		profile.Country = trimPtr(input.Country)
	}

	updated, err := s.repo.Update(ctx, profile)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update profile")
	}
	dto := toDTO(*updated)
	return &dto, nil
}

func validateUpdate(input UpdateInput) error {
	addressFields := map[string]*string{
		"address": input.Address,
		"city":    input.City,
		"zip":     input.Zip,
		"country": input.Country,
	}
	var present, missing []string
	for name, value := range addressFields {
		if value != nil && strings.TrimSpace(*value) != "" {
			present = append(present, name)
		} else {
			missing = append(missing, name)
		}
	}
	if len(present) > 0 && len(missing) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "address fields must be provided together").
			WithDetails(map[string]any{"missing": missing})
	}
	if input.FirstName != nil && strings.TrimSpace(*input.FirstName) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "first name cannot be blank")
	}
	if input.LastName != nil && strings.TrimSpace(*input.LastName) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "last name cannot be blank")
	}
	return nil
}

func trimPtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	return &trimmed
}
