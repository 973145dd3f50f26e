package useradmin

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pawmart/pawmart-backend/pkg/db/models"
	"github.com/pawmart/pawmart-backend/pkg/enums"
	pkgerrors "github.com/pawmart/pawmart-backend/pkg/errors"
)

// SelfDeleteMessage is the exact refusal text returned when an admin tries
// to delete their own account. Clients match on it verbatim.
const SelfDeleteMessage = "Forbidden: Cannot delete your own admin account"

// UserAccountDTO is the management view of an account.
type UserAccountDTO struct {
	ID        uuid.UUID      `json:"id"`
	Email     string         `json:"email"`
	FirstName string         `json:"first_name"`
	LastName  string         `json:"last_name"`
	Role      enums.UserRole `json:"role"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// UpdateUserInput carries the fields the management screens may change.
type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	Role      *string
}

// Service implements the privileged user management functions.
type Service interface {
	ListUsers(ctx context.Context) ([]UserAccountDTO, error)
	GetUser(ctx context.Context, id uuid.UUID) (*UserAccountDTO, error)
	UpdateUser(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*UserAccountDTO, error)
	DeleteUser(ctx context.Context, actorID, targetID uuid.UUID) error
}

type service struct {
	repo *Repository
}

// NewService wires the user management service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, errors.New("useradmin repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListUsers(ctx context.Context) ([]UserAccountDTO, error) {
	rows, err := s.repo.ListProfiles(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}
	out := make([]UserAccountDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toAccountDTO(row))
	}
	return out, nil
}

func (s *service) GetUser(ctx context.Context, id uuid.UUID) (*UserAccountDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	profile, err := s.repo.FindProfile(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	dto := toAccountDTO(*profile)
	return &dto, nil
}

func (s *service) UpdateUser(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*UserAccountDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	profile, err := s.repo.FindProfile(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	if input.FirstName != nil {
		trimmed := strings.TrimSpace(*input.FirstName)
		if trimmed == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "first name cannot be blank")
		}
		profile.FirstName = trimmed
	}
	if input.LastName != nil {
		trimmed := strings.TrimSpace(*input.LastName)
		if trimmed == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "last name cannot be blank")
		}
		profile.LastName = trimmed
	}
	if input.Role != nil {
		role, err := enums.ParseUserRole(*input.Role)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown role").
				WithDetails(map[string]any{"role": *input.Role})
		}
		profile.Role = role
	}

	// Save would also upsert the preloaded identity row, drop it first.
	profile.User = nil
	updated, err := s.repo.UpdateProfile(ctx, profile)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user")
	}
	dto := toAccountDTO(*updated)
	return &dto, nil
}

func (s *service) DeleteUser(ctx context.Context, actorID, targetID uuid.UUID) error {
	if targetID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if actorID == targetID {
		return pkgerrors.New(pkgerrors.CodeForbidden, SelfDeleteMessage)
	}
	if err := s.repo.DeleteUser(ctx, targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete user")
	}
	return nil
}

func toAccountDTO(profile models.Profile) UserAccountDTO {
	dto := UserAccountDTO{
		ID:        profile.ID,
		Email:     profile.Email,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Role:      profile.Role,
		CreatedAt: profile.CreatedAt,
		UpdatedAt: profile.UpdatedAt,
	}
	if profile.User != nil {
		dto.CreatedAt = profile.User.CreatedAt
	}
	return dto
}
