package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pawmart/pawmart-backend/api/middleware"
	cartsvc "github.com/pawmart/pawmart-backend/internal/cart"
	pkgerrors "github.com/pawmart/pawmart-backend/pkg/errors"
	"github.com/pawmart/pawmart-backend/pkg/logger"
)

type stubCartService struct {
	cart      *cartsvc.CartDTO
	err       error
	addCalls  int
	lastQty   int
	lastPID   uuid.UUID
	cleared   bool
	lastUser  uuid.UUID
	updateQty int
}

func (s *stubCartService) GetCart(_ context.Context, userID uuid.UUID) (*cartsvc.CartDTO, error) {
	s.lastUser = userID
	return s.cart, s.err
}

func (s *stubCartService) AddItem(_ context.Context, userID, productID uuid.UUID, qty int) (*cartsvc.CartDTO, error) {
	s.addCalls++
	s.lastUser = userID
	s.lastPID = productID
	s.lastQty = qty
	return s.cart, s.err
}

func (s *stubCartService) UpdateQuantity(_ context.Context, userID, productID uuid.UUID, qty int) (*cartsvc.CartDTO, error) {
	s.lastUser = userID
	s.lastPID = productID
	s.updateQty = qty
	return s.cart, s.err
}

func (s *stubCartService) RemoveItem(_ context.Context, userID, productID uuid.UUID) (*cartsvc.CartDTO, error) {
	s.lastUser = userID
	s.lastPID = productID
	return s.cart, s.err
}

func (s *stubCartService) ClearCart(_ context.Context, userID uuid.UUID) error {
	s.cleared = true
	s.lastUser = userID
	return s.err
}

func (s *stubCartService) LoadCart(context.Context, uuid.UUID) (*cartsvc.Cart, error) {
	return cartsvc.NewCart(), nil
}

func cartTestLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func authedContext(userID uuid.UUID) context.Context {
	return middleware.WithUserID(context.Background(), userID)
}

func TestCartFetchRequiresAuth(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	CartFetch(&stubCartService{}, cartTestLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestCartAddItemValidatesBody(t *testing.T) {
	userID := uuid.New()
	stub := &stubCartService{cart: &cartsvc.CartDTO{}}
	handler := CartAddItem(stub, cartTestLogger())

	cases := []struct {
		name string
		body string
	}{
		{"missing product", `{"qty": 2}`},
		{"bad uuid", `{"product_id": "pretzel", "qty": 2}`},
		{"zero qty", `{"product_id": "` + uuid.NewString() + `", "qty": 0}`},
		{"garbage json", `{`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", bytes.NewBufferString(tc.body))
			req = req.WithContext(authedContext(userID))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
			}
			if stub.addCalls != 0 {
				t.Fatalf("service should not be called on invalid input")
			}
		})
	}
}

func TestCartAddItemPassesThrough(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()
	stub := &stubCartService{cart: &cartsvc.CartDTO{ItemCount: 2}}

	body, _ := json.Marshal(map[string]any{"product_id": productID.String(), "qty": 2})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", bytes.NewBuffer(body))
	req = req.WithContext(authedContext(userID))
	rec := httptest.NewRecorder()
	CartAddItem(stub, cartTestLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if stub.lastUser != userID || stub.lastPID != productID || stub.lastQty != 2 {
		t.Fatalf("service called with wrong arguments: %+v", stub)
	}
}

func TestCartAddItemSurfacesStockConflict(t *testing.T) {
	stub := &stubCartService{
		err: pkgerrors.New(pkgerrors.CodeConflict, "insufficient stock").
			WithDetails(map[string]any{"available": 1}),
	}

	body, _ := json.Marshal(map[string]any{"product_id": uuid.NewString(), "qty": 5})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", bytes.NewBuffer(body))
	req = req.WithContext(authedContext(uuid.New()))
	rec := httptest.NewRecorder()
	CartAddItem(stub, cartTestLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestCartUpdateItemParsesRouteParam(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()
	stub := &stubCartService{cart: &cartsvc.CartDTO{}}

	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("productId", productID.String())
	ctx := context.WithValue(authedContext(userID), chi.RouteCtxKey, routeCtx)

	body := bytes.NewBufferString(`{"qty": 0}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/cart/items/"+productID.String(), body)
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()
	CartUpdateItem(stub, cartTestLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if stub.lastPID != productID || stub.updateQty != 0 {
		t.Fatalf("expected qty 0 forwarded for product %s, got %+v", productID, stub)
	}
}

func TestCartClearCallsService(t *testing.T) {
	stub := &stubCartService{}
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cart", nil)
	req = req.WithContext(authedContext(uuid.New()))
	rec := httptest.NewRecorder()
	CartClear(stub, cartTestLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !stub.cleared {
		t.Fatalf("expected ClearCart to be invoked")
	}
}
