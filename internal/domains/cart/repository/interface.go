package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"storefront-backend/internal/domains/cart/model"
)

type RepositoryInterface interface {
	// GetByUserID trả về cart kèm items, ErrCartNotFound nếu user chưa có cart
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Cart, error)
	GetOrCreateByUserID(ctx context.Context, userID uuid.UUID) (*model.Cart, error)

	UpsertItem(ctx context.Context, cartID, productID uuid.UUID, quantity int) error
	RemoveItem(ctx context.Context, cartID, productID uuid.UUID) error

	// ========================================
	// TRANSACTIONAL (discount / reward / checkout)
	// ========================================

	// GetByUserIDForUpdateWithTx khoá row cart (FOR UPDATE) rồi load items
	GetByUserIDForUpdateWithTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (*model.Cart, error)
	AttachDiscountWithTx(ctx context.Context, tx pgx.Tx, cartID uuid.UUID, code string, amount decimal.Decimal) error

	// SetRewardWithTx ghi đè số điểm + số tiền giảm từ điểm đang giữ trên cart
	SetRewardWithTx(ctx context.Context, tx pgx.Tx, cartID uuid.UUID, points int, amount decimal.Decimal) error

	// ClearWithTx xoá items và reset discount/reward sau checkout
	ClearWithTx(ctx context.Context, tx pgx.Tx, cartID uuid.UUID) error
}
