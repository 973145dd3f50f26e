package responses

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/pawmart/pawmart-backend/pkg/errors"
	"github.com/pawmart/pawmart-backend/pkg/logger"
	"github.com/pawmart/pawmart-backend/pkg/types"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestWriteSuccessEnvelopesData(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccess(rec, map[string]string{"hello": "world"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}

	var payload struct {
		Data map[string]string `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Data["hello"] != "world" {
		t.Fatalf("unexpected data: %+v", payload.Data)
	}
}

func TestWriteSuccessStatusOverridesCode(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccessStatus(rec, http.StatusCreated, map[string]string{"id": "1"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestWriteErrorMapsCodes(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "validation surfaces message",
			err:        pkgerrors.New(pkgerrors.CodeValidation, "qty must be positive"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
			wantMsg:    "qty must be positive",
		},
		{
			name:       "conflict surfaces message",
			err:        pkgerrors.New(pkgerrors.CodeConflict, "payment declined"),
			wantStatus: http.StatusConflict,
			wantCode:   "CONFLICT",
			wantMsg:    "payment declined",
		},
		{
			name:       "state conflict maps to 422",
			err:        pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty"),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "STATE_CONFLICT",
			wantMsg:    "cart is empty",
		},
		{
			name:       "internal hides message",
			err:        pkgerrors.New(pkgerrors.CodeInternal, "secret detail"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
			wantMsg:    "internal server error",
		},
		{
			name:       "untyped errors become internal",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
			wantMsg:    "internal server error",
		},
	}

	logg := testLogger()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(context.Background(), logg, rec, tc.err)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, rec.Code)
			}
			var payload types.ErrorEnvelope
			if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if payload.Error.Code != tc.wantCode {
				t.Fatalf("expected code %q, got %q", tc.wantCode, payload.Error.Code)
			}
			if payload.Error.Message != tc.wantMsg {
				t.Fatalf("expected message %q, got %q", tc.wantMsg, payload.Error.Message)
			}
		})
	}
}

func TestWriteErrorIncludesDetailsWhenAllowed(t *testing.T) {
	err := pkgerrors.New(pkgerrors.CodeConflict, "insufficient stock").
		WithDetails(map[string]any{"available": 2})

	rec := httptest.NewRecorder()
	WriteError(context.Background(), testLogger(), rec, err)

	var payload struct {
		Error struct {
			Details map[string]any `json:"details"`
		} `json:"error"`
	}
	if decodeErr := json.NewDecoder(rec.Body).Decode(&payload); decodeErr != nil {
		t.Fatalf("decode response: %v", decodeErr)
	}
	if payload.Error.Details["available"] != float64(2) {
		t.Fatalf("expected details to carry availability, got %+v", payload.Error.Details)
	}
}

func TestWriteErrorStripsDetailsForInternal(t *testing.T) {
	err := pkgerrors.New(pkgerrors.CodeInternal, "boom").
		WithDetails(map[string]any{"stack": "secret"})

	rec := httptest.NewRecorder()
	WriteError(context.Background(), testLogger(), rec, err)

	var payload struct {
		Error struct {
			Details any `json:"details"`
		} `json:"error"`
	}
	if decodeErr := json.NewDecoder(rec.Body).Decode(&payload); decodeErr != nil {
		t.Fatalf("decode response: %v", decodeErr)
	}
	if payload.Error.Details != nil {
		t.Fatalf("expected no details for internal errors, got %+v", payload.Error.Details)
	}
}
