package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"storefront-backend/internal/domains/reward/model"
	"storefront-backend/internal/shared/auth"
)

type ServiceInterface interface {
	// Redeem trừ điểm ngay và giữ số tiền giảm trên cart cho tới checkout
	Redeem(ctx context.Context, principal auth.Principal, req model.RedeemRequest) (*model.RedeemResponse, error)
	// Release hoàn lại điểm đang giữ trên cart
	Release(ctx context.Context, principal auth.Principal) (*model.ReleaseResponse, error)
	Balance(ctx context.Context, principal auth.Principal) (*model.BalanceResponse, error)
}

// Ledger dùng bởi order service, chạy chung tx với thay đổi order
type Ledger interface {
	AccrueWithTx(ctx context.Context, tx pgx.Tx, userID, orderID uuid.UUID, total decimal.Decimal) (int, error)
	RefundWithTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID, orderID *uuid.UUID, points int) error
	PointsPerUnit() int
}
