package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgauth "github.com/pawmart/pawmart-backend/pkg/auth"
	"github.com/pawmart/pawmart-backend/pkg/config"
	"github.com/pawmart/pawmart-backend/pkg/enums"
	"github.com/pawmart/pawmart-backend/pkg/logger"
)

var authTestJWT = config.JWTConfig{
	Secret:            "middleware-test-secret",
	Issuer:            "pawmart-test",
	ExpirationMinutes: 15,
}

type stubSessionChecker struct {
	live map[string]bool
	err  error
}

func (s *stubSessionChecker) HasSession(_ context.Context, accessID string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.live[accessID], nil
}

func authTestLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func mintTestToken(t *testing.T, userID uuid.UUID, role enums.UserRole, jti string) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(authTestJWT, time.Now(), pkgauth.AccessTokenPayload{
		UserID: userID,
		Role:   role,
		JTI:    jti,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestAuthSeedsContext(t *testing.T) {
	userID := uuid.New()
	jti := uuid.NewString()
	token := mintTestToken(t, userID, enums.UserRoleUser, jti)

	var gotUser uuid.UUID
	var gotRole, gotSession string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = UserIDFromContext(r.Context())
		gotRole = RoleFromContext(r.Context())
		gotSession = SessionIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	checker := &stubSessionChecker{live: map[string]bool{jti: true}}
	handler := Auth(authTestJWT, checker, authTestLogger())(next)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if gotUser != userID {
		t.Fatalf("expected user id %s, got %s", userID, gotUser)
	}
	if gotRole != "user" {
		t.Fatalf("expected role user, got %q", gotRole)
	}
	if gotSession != jti {
		t.Fatalf("expected session id %q, got %q", jti, gotSession)
	}
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	handler := Auth(authTestJWT, &stubSessionChecker{}, authTestLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthRejectsGarbageToken(t *testing.T) {
	handler := Auth(authTestJWT, &stubSessionChecker{}, authTestLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthRejectsRevokedSession(t *testing.T) {
	jti := uuid.NewString()
	token := mintTestToken(t, uuid.New(), enums.UserRoleUser, jti)

	checker := &stubSessionChecker{live: map[string]bool{}}
	handler := Auth(authTestJWT, checker, authTestLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for revoked session, got %d", rec.Code)
	}
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireRole("admin", authTestLogger())(next)

	t.Run("admin passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/orders", nil)
		req = req.WithContext(WithRole(req.Context(), "admin"))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("customer is refused", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/orders", nil)
		req = req.WithContext(WithRole(req.Context(), "user"))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})

	t.Run("missing role is refused", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/orders", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})
}
