package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"storefront-backend/internal/domains/user/model"
	"storefront-backend/internal/shared"
)

type RepositoryInterface interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// GetBasicInfo: email + tên cho notification, tránh import user domain ở nơi khác
	GetBasicInfo(ctx context.Context, id uuid.UUID) (*shared.UserBasicInfo, error)

	// AppendOrderHistoryWithTx nối order id vào users.order_history trong tx checkout
	AppendOrderHistoryWithTx(ctx context.Context, tx pgx.Tx, userID, orderID uuid.UUID) error
}
