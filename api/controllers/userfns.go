package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pawmart/pawmart-backend/api/validators"
	"github.com/pawmart/pawmart-backend/internal/useradmin"
	pkgauth "github.com/pawmart/pawmart-backend/pkg/auth"
	"github.com/pawmart/pawmart-backend/pkg/config"
	"github.com/pawmart/pawmart-backend/pkg/enums"
	pkgerrors "github.com/pawmart/pawmart-backend/pkg/errors"
	"github.com/pawmart/pawmart-backend/pkg/logger"
)

type userFnRequest struct {
	UserID      string          `json:"userId"`
	UpdatedData *userFnUserData `json:"updatedData,omitempty"`
}

type userFnUserData struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Role      *string `json:"role,omitempty"`
}

// UserFunctions hosts the privileged account management endpoints. They keep
// the wire contract of the hosted functions they replace: bare JSON bodies,
// no response envelope, and a plain {"error": ...} object on failure.
type UserFunctions struct {
	jwtCfg config.JWTConfig
	repo   *useradmin.Repository
	svc    useradmin.Service
	logg   *logger.Logger
}

// NewUserFunctions wires the function endpoints.
func NewUserFunctions(jwtCfg config.JWTConfig, repo *useradmin.Repository, svc useradmin.Service, logg *logger.Logger) (*UserFunctions, error) {
	if repo == nil {
		return nil, errors.New("useradmin repository is required")
	}
	if svc == nil {
		return nil, errors.New("useradmin service is required")
	}
	if logg == nil {
		return nil, errors.New("logger is required")
	}
	return &UserFunctions{jwtCfg: jwtCfg, repo: repo, svc: svc, logg: logg}, nil
}

// ListUsers handles POST /functions/v1/list-users.
func (f *UserFunctions) ListUsers(w http.ResponseWriter, r *http.Request) {
	if _, ok := f.authorize(w, r); !ok {
		return
	}

	users, err := f.svc.ListUsers(r.Context())
	if err != nil {
		f.writeError(w, err)
		return
	}
	writeFnJSON(w, http.StatusOK, map[string]any{"users": users})
}

// GetUser handles POST /functions/v1/get-user.
func (f *UserFunctions) GetUser(w http.ResponseWriter, r *http.Request) {
	if _, ok := f.authorize(w, r); !ok {
		return
	}

	payload, ok := f.decodeBody(w, r)
	if !ok {
		return
	}
	targetID, ok := f.parseUserID(w, payload.UserID)
	if !ok {
		return
	}

	user, err := f.svc.GetUser(r.Context(), targetID)
	if err != nil {
		f.writeError(w, err)
		return
	}
	writeFnJSON(w, http.StatusOK, user)
}

// UpdateUser handles POST /functions/v1/update-user.
func (f *UserFunctions) UpdateUser(w http.ResponseWriter, r *http.Request) {
	if _, ok := f.authorize(w, r); !ok {
		return
	}

	payload, ok := f.decodeBody(w, r)
	if !ok {
		return
	}
	targetID, ok := f.parseUserID(w, payload.UserID)
	if !ok {
		return
	}
	if payload.UpdatedData == nil {
		writeFnError(w, http.StatusBadRequest, "updatedData is required")
		return
	}

	user, err := f.svc.UpdateUser(r.Context(), targetID, useradmin.UpdateUserInput{
		FirstName: payload.UpdatedData.FirstName,
		LastName:  payload.UpdatedData.LastName,
		Role:      payload.UpdatedData.Role,
	})
	if err != nil {
		f.writeError(w, err)
		return
	}
	writeFnJSON(w, http.StatusOK, user)
}

// DeleteUser handles POST /functions/v1/delete-user.
func (f *UserFunctions) DeleteUser(w http.ResponseWriter, r *http.Request) {
	callerID, ok := f.authorize(w, r)
	if !ok {
		return
	}

	payload, ok := f.decodeBody(w, r)
	if !ok {
		return
	}
	targetID, ok := f.parseUserID(w, payload.UserID)
	if !ok {
		return
	}

	if err := f.svc.DeleteUser(r.Context(), callerID, targetID); err != nil {
		f.writeError(w, err)
		return
	}
	writeFnJSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}

// authorize validates the bearer token and confirms, against the live
// profile row, that the caller still holds the admin role.
func (f *UserFunctions) authorize(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	token := validators.BearerToken(r.Header.Get("Authorization"))
	if token == "" {
		writeFnError(w, http.StatusUnauthorized, "Missing authorization header")
		return uuid.Nil, false
	}

	claims, err := pkgauth.ParseAccessToken(f.jwtCfg, token)
	if err != nil {
		writeFnError(w, http.StatusUnauthorized, "Invalid or expired token")
		return uuid.Nil, false
	}
	callerID, err := claims.UserID()
	if err != nil {
		writeFnError(w, http.StatusUnauthorized, "Invalid or expired token")
		return uuid.Nil, false
	}

	profile, err := f.repo.FindProfile(r.Context(), callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeFnError(w, http.StatusForbidden, "Forbidden: Admin access required")
			return uuid.Nil, false
		}
		f.logg.Error(r.Context(), "function role lookup failed", err)
		writeFnError(w, http.StatusInternalServerError, err.Error())
		return uuid.Nil, false
	}
	if profile.Role != enums.UserRoleAdmin {
		writeFnError(w, http.StatusForbidden, "Forbidden: Admin access required")
		return uuid.Nil, false
	}
	return callerID, true
}

func (f *UserFunctions) decodeBody(w http.ResponseWriter, r *http.Request) (*userFnRequest, bool) {
	var payload userFnRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeFnError(w, http.StatusBadRequest, "Invalid JSON body")
		return nil, false
	}
	return &payload, true
}

func (f *UserFunctions) parseUserID(w http.ResponseWriter, raw string) (uuid.UUID, bool) {
	if raw == "" {
		writeFnError(w, http.StatusBadRequest, "userId is required")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		writeFnError(w, http.StatusBadRequest, "userId must be a valid uuid")
		return uuid.Nil, false
	}
	return id, true
}

// writeError translates service errors into the functions' flat error shape.
func (f *UserFunctions) writeError(w http.ResponseWriter, err error) {
	if coded := pkgerrors.As(err); coded != nil {
		switch coded.Code() {
		case pkgerrors.CodeValidation:
			writeFnError(w, http.StatusBadRequest, coded.Message())
			return
		case pkgerrors.CodeUnauthorized:
			writeFnError(w, http.StatusUnauthorized, coded.Message())
			return
		case pkgerrors.CodeForbidden:
			writeFnError(w, http.StatusForbidden, coded.Message())
			return
		case pkgerrors.CodeNotFound:
			writeFnError(w, http.StatusNotFound, coded.Message())
			return
		}
	}
	writeFnError(w, http.StatusInternalServerError, err.Error())
}

func writeFnJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeFnError(w http.ResponseWriter, status int, message string) {
	writeFnJSON(w, status, map[string]string{"error": message})
}
