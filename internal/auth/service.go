package auth

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgauth "github.com/pawmart/pawmart-backend/pkg/auth"
	"github.com/pawmart/pawmart-backend/pkg/auth/session"
	"github.com/pawmart/pawmart-backend/pkg/config"
	"github.com/pawmart/pawmart-backend/pkg/db"
	"github.com/pawmart/pawmart-backend/pkg/db/models"
	"github.com/pawmart/pawmart-backend/pkg/enums"
	pkgerrors "github.com/pawmart/pawmart-backend/pkg/errors"
	"github.com/pawmart/pawmart-backend/pkg/security"

	"github.com/pawmart/pawmart-backend/internal/profiles"
)

const minPasswordLen = 8

// RegisterInput carries a signup request.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// SessionWriter is the session-store surface the auth flow needs. The
// redis-backed session manager satisfies it.
type SessionWriter interface {
	Create(ctx context.Context, accessID string, userID uuid.UUID) error
	Revoke(ctx context.Context, accessID string) error
}

// Service implements signup, login and logout.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResponse, error)
	Login(ctx context.Context, email, password string) (*AuthResponse, error)
	Logout(ctx context.Context, accessID string) error
}

type service struct {
	repo        *Repository
	profileRepo *profiles.Repository
	sessions    SessionWriter
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
}

// NewService wires the auth service.
func NewService(repo *Repository, profileRepo *profiles.Repository, sessions SessionWriter, jwtCfg config.JWTConfig, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, errors.New("auth repository is required")
	}
	if profileRepo == nil {
		return nil, errors.New("profile repository is required")
	}
	if sessions == nil {
		return nil, errors.New("session writer is required")
	}
	return &service{
		repo:        repo,
		profileRepo: profileRepo,
		sessions:    sessions,
		jwtCfg:      jwtCfg,
		passwordCfg: passwordCfg,
	}, nil
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*AuthResponse, error) {
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if len(input.Password) < minPasswordLen {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 8 characters")
	}
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	if firstName == "" || lastName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "first and last name are required")
	}

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := &models.User{ID: uuid.New(), Email: email, PasswordHash: hash}
	profile := &models.Profile{
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Role:      enums.UserRoleUser,
	}
	if err := s.repo.CreateUserWithProfile(ctx, user, profile); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}

	return s.issueSession(ctx, user.ID, *profile)
}

func (s *service) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.FindUserByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalidCredentials()
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, invalidCredentials()
	}

	profile, err := s.profileRepo.FindByID(ctx, user.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
	}
	return s.issueSession(ctx, user.ID, *profile)
}

func (s *service) Logout(ctx context.Context, accessID string) error {
	if strings.TrimSpace(accessID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "access id required")
	}
	if err := s.sessions.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}

func (s *service) issueSession(ctx context.Context, userID uuid.UUID, profile models.Profile) (*AuthResponse, error) {
	accessID := session.NewAccessID()
	token, err := pkgauth.MintAccessToken(s.jwtCfg, time.Now().UTC(), pkgauth.AccessTokenPayload{
		UserID: userID,
		Role:   profile.Role,
		JTI:    accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}
	if err := s.sessions.Create(ctx, accessID, userID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create session")
	}
	return &AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.jwtCfg.AccessTokenTTL().Seconds()),
		Account:     toAccountDTO(profile),
	}, nil
}

func normalizeEmail(email string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(email))
	if trimmed == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "email required")
	}
	if _, err := mail.ParseAddress(trimmed); err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "invalid email address")
	}
	return trimmed, nil
}

func invalidCredentials() error {
	return pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")
}
