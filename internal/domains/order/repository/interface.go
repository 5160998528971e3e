package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"storefront-backend/internal/domains/order/model"
)

// =====================================================
// ORDER REPOSITORY INTERFACE
// =====================================================
type OrderRepository interface {
	// Transaction management
	BeginTx(ctx context.Context) (pgx.Tx, error)
	CommitTx(ctx context.Context, tx pgx.Tx) error
	RollbackTx(ctx context.Context, tx pgx.Tx) error

	// CreateOrderWithTx insert order + items
	CreateOrderWithTx(ctx context.Context, tx pgx.Tx, order *model.Order) error
	CreateStatusHistoryWithTx(ctx context.Context, tx pgx.Tx, history *model.OrderStatusHistory) error

	// GetOrderByID trả về order kèm items
	GetOrderByID(ctx context.Context, orderID uuid.UUID) (*model.Order, error)
	GetOrderByIDForUpdateWithTx(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) (*model.Order, error)

	// SaveOrderWithTx ghi các cột mutable (status, payment, tracking, timestamps)
	// với optimistic locking: WHERE version = order.Version, thành công thì order.Version++.
	// Không khớp version -> model.ErrVersionMismatch
	SaveOrderWithTx(ctx context.Context, tx pgx.Tx, order *model.Order) error

	GetStatusHistory(ctx context.Context, orderID uuid.UUID) ([]model.OrderStatusHistory, error)

	// List operations
	ListOrdersByUserID(ctx context.Context, userID uuid.UUID, req model.ListOrdersRequest) ([]model.Order, int, error)
	ListAllOrders(ctx context.Context, req model.ListOrdersRequest) ([]model.Order, int, error)
	ListOrdersForExport(ctx context.Context, status string, limit int) ([]model.Order, error)

	// ListAutoProcessCandidates: order còn confirmed, đã settle payment, tạo trước createdBefore
	ListAutoProcessCandidates(ctx context.Context, createdBefore time.Time, limit int) ([]uuid.UUID, error)

	// DeleteOrder hard delete (items + history cascade)
	DeleteOrder(ctx context.Context, orderID uuid.UUID) error
}
