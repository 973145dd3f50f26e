package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawmart/pawmart-backend/pkg/enums"
	pkgerrors "github.com/pawmart/pawmart-backend/pkg/errors"
)

func TestGetOrderHidesForeignOrders(t *testing.T) {
	db := openTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)
	ctx := context.Background()

	owner := uuid.New()
	order := seedOrder(t, db, owner, time.Now().UTC(), "10.00")

	dto, err := svc.GetOrder(ctx, owner, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, dto.ID)
	require.Len(t, dto.Items, 1)
	assert.True(t, dto.Items[0].Subtotal.Equal(dto.TotalAmount))

	_, err = svc.GetOrder(ctx, uuid.New(), order.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestUpdateOrderStatusValidatesEnum(t *testing.T) {
	db := openTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)
	ctx := context.Background()

	order := seedOrder(t, db, uuid.New(), time.Now().UTC(), "10.00")

	dto, err := svc.UpdateOrderStatus(ctx, order.ID, "shipped")
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusShipped, dto.Status)

	// Any valid status is reachable, including moving backwards.
	dto, err = svc.UpdateOrderStatus(ctx, order.ID, "pending")
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusPending, dto.Status)

	_, err = svc.UpdateOrderStatus(ctx, order.ID, "teleported")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestAdminListOrdersRejectsUnknownStatus(t *testing.T) {
	svc, err := NewService(NewRepository(openTestDB(t)))
	require.NoError(t, err)

	_, err = svc.AdminListOrders(context.Background(), AdminListFilter{Status: enums.OrderStatus("teleported")})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestAdminListOrdersRejectsMalformedCursor(t *testing.T) {
	svc, err := NewService(NewRepository(openTestDB(t)))
	require.NoError(t, err)

	_, err = svc.AdminListOrders(context.Background(), AdminListFilter{Cursor: "not-a-cursor"})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}
