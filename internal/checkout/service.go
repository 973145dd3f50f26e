package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/pawmart/pawmart-backend/internal/cart"
	"github.com/pawmart/pawmart-backend/internal/orders"
	"github.com/pawmart/pawmart-backend/internal/products"
	"github.com/pawmart/pawmart-backend/internal/profiles"
	"github.com/pawmart/pawmart-backend/pkg/config"
	"github.com/pawmart/pawmart-backend/pkg/db/models"
	"github.com/pawmart/pawmart-backend/pkg/enums"
	pkgerrors "github.com/pawmart/pawmart-backend/pkg/errors"
	"github.com/pawmart/pawmart-backend/pkg/logger"
	"github.com/pawmart/pawmart-backend/pkg/types"
)

// CartAccess is the cart surface the checkout flow needs.
type CartAccess interface {
	LoadCart(ctx context.Context, userID uuid.UUID) (*cart.Cart, error)
	ClearCart(ctx context.Context, userID uuid.UUID) error
}

// Service drives the two-step checkout: capture shipping, then confirm
// payment and place the order.
type Service interface {
	StartCheckout(ctx context.Context, userID uuid.UUID) (*SessionDTO, error)
	SubmitShipping(ctx context.Context, userID uuid.UUID, addr types.ShippingAddress) (*SessionDTO, error)
	GetSession(ctx context.Context, userID uuid.UUID) (*SessionDTO, error)
	Confirm(ctx context.Context, userID uuid.UUID, payment PaymentInput) (*ConfirmationDTO, error)
}

type service struct {
	sessions    SessionStore
	carts       CartAccess
	productRepo *products.Repository
	orderRepo   *orders.Repository
	profileRepo *profiles.Repository
	processor   PaymentProcessor
	logg        *logger.Logger
	sessionTTL  time.Duration
}

// NewService wires the checkout workflow.
func NewService(
	sessions SessionStore,
	carts CartAccess,
	productRepo *products.Repository,
	orderRepo *orders.Repository,
	profileRepo *profiles.Repository,
	processor PaymentProcessor,
	logg *logger.Logger,
	cfg config.CheckoutConfig,
) (Service, error) {
	if sessions == nil {
		return nil, errors.New("session store is required")
	}
	if carts == nil {
		return nil, errors.New("cart access is required")
	}
	if productRepo == nil {
		return nil, errors.New("product repository is required")
	}
	if orderRepo == nil {
		return nil, errors.New("order repository is required")
	}
	if processor == nil {
		return nil, errors.New("payment processor is required")
	}
	return &service{
		sessions:    sessions,
		carts:       carts,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		profileRepo: profileRepo,
		processor:   processor,
		logg:        logg,
		sessionTTL:  cfg.SessionTTL,
	}, nil
}

func (s *service) StartCheckout(ctx context.Context, userID uuid.UUID) (*SessionDTO, error) {
	userCart, err := s.loadNonEmptyCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	session := &Session{
		State:           StateCollectingShipping,
		ShippingAddress: s.prefillAddress(ctx, userID),
		StartedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.sessions.Save(ctx, userID, session, s.sessionTTL); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save checkout session")
	}
	dto := toSessionDTO(session, userCart)
	return &dto, nil
}

func (s *service) SubmitShipping(ctx context.Context, userID uuid.UUID, addr types.ShippingAddress) (*SessionDTO, error) {
	userCart, err := s.loadNonEmptyCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !addr.Complete() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipping address incomplete").
			WithDetails(map[string]any{"missing": addr.MissingFields()})
	}

	now := time.Now().UTC()
	session, err := s.sessions.Load(ctx, userID)
	if err != nil {
		if !errors.Is(err, ErrSessionMissing) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load checkout session")
		}
		// Submitting shipping without an explicit start is allowed.
		session = &Session{StartedAt: now}
	}
	session.State = StateAwaitingPayment
	session.ShippingAddress = addr
	session.UpdatedAt = now

	if err := s.sessions.Save(ctx, userID, session, s.sessionTTL); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save checkout session")
	}
	dto := toSessionDTO(session, userCart)
	return &dto, nil
}

func (s *service) GetSession(ctx context.Context, userID uuid.UUID) (*SessionDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	session, err := s.sessions.Load(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrSessionMissing) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no checkout in progress")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load checkout session")
	}
	userCart, err := s.carts.LoadCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	dto := toSessionDTO(session, userCart)
	return &dto, nil
}

// Confirm charges the cart total and places the order. The order row, its
// item snapshots and the stock decrements are written as separate
// statements rather than one transaction, so a crash mid-sequence can
// leave an order without adjusted stock. Stock rows that cannot cover the
// purchased quantity any more are skipped and logged instead of failing
// the already-charged order.
func (s *service) Confirm(ctx context.Context, userID uuid.UUID, payment PaymentInput) (*ConfirmationDTO, error) {
	session, err := s.sessions.Load(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrSessionMissing) {
			return nil, shippingRequired()
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load checkout session")
	}
	if session.State != StateAwaitingPayment {
		return nil, shippingRequired()
	}

	if strings.TrimSpace(payment.TransactionID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction id required")
	}

	userCart, err := s.loadNonEmptyCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	total := userCart.Total()
	result, err := s.processor.Charge(ctx, userID, total, payment)
	if err != nil {
		if errors.Is(err, ErrPaymentDeclined) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "payment declined")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "charge payment")
	}

	order := &models.Order{
		ID:              uuid.New(),
		UserID:          userID,
		CustomerName:    session.ShippingAddress.Name,
		ShippingAddress: session.ShippingAddress,
		TotalAmount:     total,
		Status:          enums.OrderStatusPending,
		PaymentRef:      &result.Reference,
	}
	if _, err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}

	items := make([]models.OrderItem, 0, len(userCart.Items))
	for _, line := range userCart.Items {
		productID := line.ProductID
		items = append(items, models.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: &productID,
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			Qty:       line.Qty,
			ImageURL:  line.ImageURL,
		})
	}
	if err := s.orderRepo.CreateItems(ctx, items); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order items")
	}

	if err := s.decrementStock(ctx, userCart); err != nil && s.logg != nil {
		s.logg.Warn(ctx, fmt.Sprintf("order %s placed with unadjusted stock: %v", order.ID, err))
	}

	s.cleanup(ctx, userID)

	return &ConfirmationDTO{
		OrderID:     order.ID,
		Status:      order.Status,
		TotalAmount: total,
		PaymentRef:  result.Reference,
		PlacedAt:    result.ChargedAt,
	}, nil
}

func (s *service) decrementStock(ctx context.Context, userCart *cart.Cart) error {
	var merr error
	for _, line := range userCart.Items {
		if err := s.productRepo.DecrementStock(ctx, line.ProductID, line.Qty); err != nil {
			merr = multierr.Append(merr, fmt.Errorf("product %s: %w", line.ProductID, err))
		}
	}
	return merr
}

func (s *service) cleanup(ctx context.Context, userID uuid.UUID) {
	if err := s.carts.ClearCart(ctx, userID); err != nil && s.logg != nil {
		s.logg.Warn(ctx, fmt.Sprintf("clearing cart after checkout for user %s: %v", userID, err))
	}
	if err := s.sessions.Delete(ctx, userID); err != nil && s.logg != nil {
		s.logg.Warn(ctx, fmt.Sprintf("deleting checkout session for user %s: %v", userID, err))
	}
}

func (s *service) loadNonEmptyCart(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	userCart, err := s.carts.LoadCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if userCart.IsEmpty() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
	}
	return userCart, nil
}

// prefillAddress seeds the shipping form from the saved profile address
// when one is on file. Missing profiles just produce a blank form.
func (s *service) prefillAddress(ctx context.Context, userID uuid.UUID) types.ShippingAddress {
	if s.profileRepo == nil {
		return types.ShippingAddress{}
	}
	profile, err := s.profileRepo.FindByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) && s.logg != nil {
			s.logg.Warn(ctx, fmt.Sprintf("loading profile for checkout prefill: %v", err))
		}
		return types.ShippingAddress{}
	}
	if !profile.AddressComplete() {
		return types.ShippingAddress{}
	}
	return types.ShippingAddress{
		Name:    profile.FirstName + " " + profile.LastName,
		Address: *profile.Address,
		City:    *profile.City,
		Zip:     *profile.Zip,
		Country: *profile.Country,
	}
}

func shippingRequired() error {
	return pkgerrors.New(pkgerrors.CodeStateConflict, "shipping details required before payment")
}
