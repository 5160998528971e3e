package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"storefront-backend/internal/domains/order/model"
)

type OrderRepository struct {
	mock.Mock
}

func (m *OrderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *OrderRepository) CommitTx(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *OrderRepository) RollbackTx(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *OrderRepository) CreateOrderWithTx(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	return m.Called(ctx, tx, order).Error(0)
}

func (m *OrderRepository) CreateStatusHistoryWithTx(ctx context.Context, tx pgx.Tx, h *model.OrderStatusHistory) error {
	return m.Called(ctx, tx, h).Error(0)
}

func (m *OrderRepository) GetOrderByID(ctx context.Context, orderID uuid.UUID) (*model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(*model.Order)
	return o, args.Error(1)
}

func (m *OrderRepository) GetOrderByIDForUpdateWithTx(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) (*model.Order, error) {
	args := m.Called(ctx, tx, orderID)
	o, _ := args.Get(0).(*model.Order)
	return o, args.Error(1)
}

func (m *OrderRepository) SaveOrderWithTx(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	return m.Called(ctx, tx, order).Error(0)
}

func (m *OrderRepository) GetStatusHistory(ctx context.Context, orderID uuid.UUID) ([]model.OrderStatusHistory, error) {
	args := m.Called(ctx, orderID)
	h, _ := args.Get(0).([]model.OrderStatusHistory)
	return h, args.Error(1)
}

func (m *OrderRepository) ListOrdersByUserID(ctx context.Context, userID uuid.UUID, req model.ListOrdersRequest) ([]model.Order, int, error) {
	args := m.Called(ctx, userID, req)
	list, _ := args.Get(0).([]model.Order)
	return list, args.Int(1), args.Error(2)
}

func (m *OrderRepository) ListAllOrders(ctx context.Context, req model.ListOrdersRequest) ([]model.Order, int, error) {
	args := m.Called(ctx, req)
	list, _ := args.Get(0).([]model.Order)
	return list, args.Int(1), args.Error(2)
}

func (m *OrderRepository) ListOrdersForExport(ctx context.Context, status string, limit int) ([]model.Order, error) {
	args := m.Called(ctx, status, limit)
	list, _ := args.Get(0).([]model.Order)
	return list, args.Error(1)
}

func (m *OrderRepository) ListAutoProcessCandidates(ctx context.Context, createdBefore time.Time, limit int) ([]uuid.UUID, error) {
	args := m.Called(ctx, createdBefore, limit)
	ids, _ := args.Get(0).([]uuid.UUID)
	return ids, args.Error(1)
}

func (m *OrderRepository) DeleteOrder(ctx context.Context, orderID uuid.UUID) error {
	return m.Called(ctx, orderID).Error(0)
}
