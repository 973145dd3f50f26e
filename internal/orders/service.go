package orders

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/pawmart/pawmart-backend/pkg/enums"
	pkgerrors "github.com/pawmart/pawmart-backend/pkg/errors"
	"github.com/pawmart/pawmart-backend/pkg/pagination"
)

// Service exposes order history for customers and order management for
// staff. Order creation itself happens in the checkout workflow.
type Service interface {
	ListOrders(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error)
	GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*OrderDTO, error)
	AdminListOrders(ctx context.Context, filter AdminListFilter) (*OrderListResult, error)
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status string) (*OrderDTO, error)
}

type service struct {
	repo *Repository
}

// NewService wires the order service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, errors.New("order repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListOrders(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return toDTOs(rows), nil
}

func (s *service) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*OrderDTO, error) {
	if userID == uuid.Nil || orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id and order id required")
	}
	// Scoping the lookup to the user makes someone else's order
	// indistinguishable from a missing one.
	order, err := s.repo.FindByIDForUser(ctx, orderID, userID)
	if err != nil {
		if IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	dto := toDTO(*order)
	return &dto, nil
}

func (s *service) AdminListOrders(ctx context.Context, filter AdminListFilter) (*OrderListResult, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status").
			WithDetails(map[string]any{"status": filter.Status})
	}
	if _, err := pagination.ParseCursor(filter.Cursor); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}
	rows, next, err := s.repo.AdminList(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return &OrderListResult{Orders: toDTOs(rows), NextCursor: next}, nil
}

func (s *service) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status string) (*OrderDTO, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	parsed, err := enums.ParseOrderStatus(status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status").
			WithDetails(map[string]any{"status": status})
	}

	order, err := s.repo.UpdateStatus(ctx, orderID, parsed)
	if err != nil {
		if IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	dto := toDTO(*order)
	return &dto, nil
}
