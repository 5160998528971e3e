package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"storefront-backend/internal/domains/discount/model"
)

type RepositoryInterface interface {
	// Transaction management
	BeginTx(ctx context.Context) (pgx.Tx, error)
	CommitTx(ctx context.Context, tx pgx.Tx) error
	RollbackTx(ctx context.Context, tx pgx.Tx) error

	// GetByCode tìm theo code (case-insensitive), không lọc active/window
	GetByCode(ctx context.Context, code string) (*model.Discount, error)
	HasUsed(ctx context.Context, userID uuid.UUID, code string) (bool, error)

	// CreateUsageWithTx dựa vào UNIQUE (user_id, discount_code):
	// unique violation -> model.ErrDiscountAlreadyUsed
	CreateUsageWithTx(ctx context.Context, tx pgx.Tx, usage *model.UsedDiscount) error

	// Admin
	Create(ctx context.Context, discount *model.Discount) error
	List(ctx context.Context, req model.ListDiscountsRequest) ([]model.Discount, int, error)
	Deactivate(ctx context.Context, code string) (*model.Discount, error)
}
