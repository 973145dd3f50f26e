package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pawmart/pawmart-backend/pkg/db/models"
	pkgerrors "github.com/pawmart/pawmart-backend/pkg/errors"
	"github.com/pawmart/pawmart-backend/pkg/logger"
)

// ProductSource resolves catalog rows for cart mutations. The products
// repository satisfies it.
type ProductSource interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Service manages per-user carts. Mutations validate against live stock and
// persist a snapshot after every change.
type Service interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*CartDTO, error)
	AddItem(ctx context.Context, userID, productID uuid.UUID, qty int) (*CartDTO, error)
	UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, qty int) (*CartDTO, error)
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*CartDTO, error)
	ClearCart(ctx context.Context, userID uuid.UUID) error
	LoadCart(ctx context.Context, userID uuid.UUID) (*Cart, error)
}

type service struct {
	store       SnapshotStore
	products    ProductSource
	logg        *logger.Logger
	snapshotTTL time.Duration
}

// NewService wires the cart service.
func NewService(store SnapshotStore, products ProductSource, logg *logger.Logger, snapshotTTL time.Duration) (Service, error) {
	if store == nil {
		return nil, errors.New("snapshot store is required")
	}
	if products == nil {
		return nil, errors.New("product source is required")
	}
	return &service{store: store, products: products, logg: logg, snapshotTTL: snapshotTTL}, nil
}

func (s *service) GetCart(ctx context.Context, userID uuid.UUID) (*CartDTO, error) {
	cart, err := s.LoadCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	dto := toCartDTO(cart)
	return &dto, nil
}

func (s *service) AddItem(ctx context.Context, userID, productID uuid.UUID, qty int) (*CartDTO, error) {
	if qty < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	cart, err := s.LoadCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	proposed := qty
	if existing := cart.Find(productID); existing != nil {
		proposed += existing.Qty
	}
	// An add that would exceed stock is rejected whole, never trimmed.
	if proposed > product.Stock {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "requested quantity exceeds available stock").
			WithDetails(map[string]any{"product_id": productID, "available": product.Stock})
	}

	cart.Upsert(Item{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.EffectivePrice(),
		ImageURL:  product.ImageURL,
		Qty:       proposed,
	})
	return s.commit(ctx, userID, cart)
}

func (s *service) UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, qty int) (*CartDTO, error) {
	cart, err := s.LoadCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	existing := cart.Find(productID)
	if existing == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not in cart")
	}

	if qty <= 0 {
		cart.Remove(productID)
		return s.commit(ctx, userID, cart)
	}

	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	// Unlike adds, explicit quantity updates clamp to what is in stock.
	if qty > product.Stock {
		qty = product.Stock
	}
	if qty == 0 {
		cart.Remove(productID)
		return s.commit(ctx, userID, cart)
	}

	existing.Qty = qty
	existing.UnitPrice = product.EffectivePrice()
	return s.commit(ctx, userID, cart)
}

func (s *service) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*CartDTO, error) {
	cart, err := s.LoadCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart.Remove(productID)
	return s.commit(ctx, userID, cart)
}

func (s *service) ClearCart(ctx context.Context, userID uuid.UUID) error {
	if err := s.store.Delete(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart snapshot")
	}
	return nil
}

// LoadCart restores the persisted cart. Missing or unreadable snapshots
// degrade to an empty cart rather than failing the request.
func (s *service) LoadCart(ctx context.Context, userID uuid.UUID) (*Cart, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	raw, err := s.store.Load(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrSnapshotMissing) {
			return NewCart(), nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart snapshot")
	}

	var cart Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, fmt.Sprintf("discarding corrupt cart snapshot for user %s: %v", userID, err))
		}
		return NewCart(), nil
	}
	if cart.Items == nil {
		cart.Items = []Item{}
	}
	return &cart, nil
}

func (s *service) commit(ctx context.Context, userID uuid.UUID, cart *Cart) (*CartDTO, error) {
	cart.UpdatedAt = time.Now().UTC()
	payload, err := json.Marshal(cart)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart snapshot")
	}
	if err := s.store.Save(ctx, userID, payload, s.snapshotTTL); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart snapshot")
	}
	dto := toCartDTO(cart)
	return &dto, nil
}

func (s *service) findProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}
