package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-backend/internal/domains/order/model"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================
type postgresOrderRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &postgresOrderRepository{
		pool: pool,
	}
}

// querier: pool hoặc tx
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// =====================================================
// TRANSACTION MANAGEMENT
// =====================================================

func (r *postgresOrderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

func (r *postgresOrderRepository) CommitTx(ctx context.Context, tx pgx.Tx) error {
	return tx.Commit(ctx)
}

func (r *postgresOrderRepository) RollbackTx(ctx context.Context, tx pgx.Tx) error {
	err := tx.Rollback(ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return nil
	}
	return err
}

// =====================================================
// CREATE ORDER
// =====================================================

func (r *postgresOrderRepository) CreateOrderWithTx(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (
			id, order_number, user_id, status, payment_method, payment_status, address_id,
			subtotal, delivery_charge, discount_code, discount_amount,
			reward_points_used, reward_discount_amount, total, version
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11,
			$12, $13, $14, $15
		)
		RETURNING created_at, updated_at
	`

	err := tx.QueryRow(ctx, query,
		order.ID,
		order.OrderNumber,
		order.UserID,
		order.Status,
		order.PaymentMethod,
		order.PaymentStatus,
		order.AddressID,
		order.Subtotal,
		order.DeliveryCharge,
		order.DiscountCode,
		order.DiscountAmount,
		order.RewardPointsUsed,
		order.RewardDiscountAmount,
		order.Total,
		order.Version,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create order with tx: %w", err)
	}

	// Items: pgx.Batch, một round-trip cho tất cả dòng
	batch := &pgx.Batch{}
	for i := range order.Items {
		item := &order.Items[i]
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		item.OrderID = order.ID
		batch.Queue(`
			INSERT INTO order_items (id, order_id, product_id, product_name, category, quantity, unit_price, line_total)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, item.ID, item.OrderID, item.ProductID, item.ProductName, item.Category,
			item.Quantity, item.UnitPrice, item.LineTotal)
	}

	results := tx.SendBatch(ctx, batch)
	for range order.Items {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("failed to create order items: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to create order items: %w", err)
	}

	return nil
}

func (r *postgresOrderRepository) CreateStatusHistoryWithTx(ctx context.Context, tx pgx.Tx, history *model.OrderStatusHistory) error {
	query := `
		INSERT INTO order_status_history (order_id, from_status, to_status, changed_by, source, note)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, changed_at
	`
	err := tx.QueryRow(ctx, query,
		history.OrderID,
		history.FromStatus,
		history.ToStatus,
		history.ChangedBy,
		history.Source,
		history.Note,
	).Scan(&history.ID, &history.ChangedAt)
	if err != nil {
		return fmt.Errorf("failed to create order status history: %w", err)
	}
	return nil
}

// =====================================================
// GET ORDER
// =====================================================

const orderColumns = `
	id, order_number, user_id, status, payment_method, payment_status, address_id,
	subtotal, delivery_charge, discount_code, discount_amount,
	reward_points_used, reward_discount_amount, total,
	tracking_number, cancellation_reason, version,
	created_at, updated_at, paid_at, delivered_at, cancelled_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.UserID, &o.Status, &o.PaymentMethod, &o.PaymentStatus, &o.AddressID,
		&o.Subtotal, &o.DeliveryCharge, &o.DiscountCode, &o.DiscountAmount,
		&o.RewardPointsUsed, &o.RewardDiscountAmount, &o.Total,
		&o.TrackingNumber, &o.CancellationReason, &o.Version,
		&o.CreatedAt, &o.UpdatedAt, &o.PaidAt, &o.DeliveredAt, &o.CancelledAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *postgresOrderRepository) GetOrderByID(ctx context.Context, orderID uuid.UUID) (*model.Order, error) {
	return r.getOrder(ctx, r.pool, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, orderID)
}

func (r *postgresOrderRepository) GetOrderByIDForUpdateWithTx(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) (*model.Order, error) {
	return r.getOrder(ctx, tx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, orderID)
}

func (r *postgresOrderRepository) getOrder(ctx context.Context, q querier, query string, orderID uuid.UUID) (*model.Order, error) {
	order, err := scanOrder(q.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	items, err := r.getItems(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

func (r *postgresOrderRepository) getItems(ctx context.Context, q querier, orderID uuid.UUID) ([]model.OrderItem, error) {
	rows, err := q.Query(ctx, `
		SELECT id, order_id, product_id, product_name, category, quantity, unit_price, line_total
		FROM order_items
		WHERE order_id = $1
		ORDER BY product_name
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}
	defer rows.Close()

	items := make([]model.OrderItem, 0)
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Category,
			&it.Quantity, &it.UnitPrice, &it.LineTotal); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// =====================================================
// UPDATE
// =====================================================

func (r *postgresOrderRepository) SaveOrderWithTx(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		UPDATE orders
		SET status = $3,
		    payment_status = $4,
		    tracking_number = $5,
		    cancellation_reason = $6,
		    paid_at = $7,
		    delivered_at = $8,
		    cancelled_at = $9,
		    version = version + 1,
		    updated_at = NOW()
		WHERE id = $1 AND version = $2
		RETURNING version, updated_at
	`

	err := tx.QueryRow(ctx, query,
		order.ID,
		order.Version,
		order.Status,
		order.PaymentStatus,
		order.TrackingNumber,
		order.CancellationReason,
		order.PaidAt,
		order.DeliveredAt,
		order.CancelledAt,
	).Scan(&order.Version, &order.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrVersionMismatch
		}
		return fmt.Errorf("failed to save order: %w", err)
	}
	return nil
}

func (r *postgresOrderRepository) GetStatusHistory(ctx context.Context, orderID uuid.UUID) ([]model.OrderStatusHistory, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, order_id, from_status, to_status, changed_by, source, note, changed_at
		FROM order_status_history
		WHERE order_id = $1
		ORDER BY changed_at ASC
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order status history: %w", err)
	}
	defer rows.Close()

	history := make([]model.OrderStatusHistory, 0)
	for rows.Next() {
		var h model.OrderStatusHistory
		if err := rows.Scan(&h.ID, &h.OrderID, &h.FromStatus, &h.ToStatus, &h.ChangedBy, &h.Source, &h.Note, &h.ChangedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order status history: %w", err)
		}
		history = append(history, h)
	}
	return history, rows.Err()
}

// =====================================================
// LIST
// =====================================================

func (r *postgresOrderRepository) ListOrdersByUserID(ctx context.Context, userID uuid.UUID, req model.ListOrdersRequest) ([]model.Order, int, error) {
	return r.listOrders(ctx, &userID, req)
}

func (r *postgresOrderRepository) ListAllOrders(ctx context.Context, req model.ListOrdersRequest) ([]model.Order, int, error) {
	return r.listOrders(ctx, nil, req)
}

// listOrders: filter user_id / status tuỳ chọn, bỏ qua items cho list view
func (r *postgresOrderRepository) listOrders(ctx context.Context, userID *uuid.UUID, req model.ListOrdersRequest) ([]model.Order, int, error) {
	where := `WHERE ($1::uuid IS NULL OR user_id = $1) AND ($2 = '' OR status = $2)`

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders `+where, userID, req.Status).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders `+where+`
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`, userID, req.Status, req.Limit, req.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders, err := collectOrders(rows)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *postgresOrderRepository) ListOrdersForExport(ctx context.Context, status string, limit int) ([]model.Order, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2
	`, status, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders for export: %w", err)
	}
	defer rows.Close()

	return collectOrders(rows)
}

func collectOrders(rows pgx.Rows) ([]model.Order, error) {
	orders := make([]model.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

func (r *postgresOrderRepository) ListAutoProcessCandidates(ctx context.Context, createdBefore time.Time, limit int) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id
		FROM orders
		WHERE status = $1
		  AND (payment_method = $2 OR payment_status = $3)
		  AND created_at <= $4
		ORDER BY created_at
		LIMIT $5
	`, model.OrderStatusConfirmed, model.PaymentMethodCOD, model.PaymentStatusPaid, createdBefore, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list auto-process candidates: %w", err)
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *postgresOrderRepository) DeleteOrder(ctx context.Context, orderID uuid.UUID) error {
	// Xoá luôn id khỏi users.order_history
	result, err := r.pool.Exec(ctx, `
		WITH deleted AS (
			DELETE FROM orders WHERE id = $1 RETURNING id, user_id
		)
		UPDATE users u
		SET order_history = array_remove(u.order_history, deleted.id)
		FROM deleted
		WHERE u.id = deleted.user_id
	`, orderID)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrOrderNotFound
	}
	return nil
}
