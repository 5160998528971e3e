package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"storefront-backend/internal/domains/reward/model"
)

type RepositoryInterface interface {
	BeginTx(ctx context.Context) (pgx.Tx, error)
	CommitTx(ctx context.Context, tx pgx.Tx) error
	RollbackTx(ctx context.Context, tx pgx.Tx) error

	GetBalance(ctx context.Context, userID uuid.UUID) (int, error)
	ListTransactions(ctx context.Context, userID uuid.UUID, limit int) ([]model.RewardTransaction, error)

	// GetBalanceForUpdateWithTx khoá row user (FOR UPDATE)
	GetBalanceForUpdateWithTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (int, error)

	// AdjustBalanceWithTx cộng delta (có thể âm), trả về balance mới.
	// CHECK (reward_points >= 0) vi phạm -> model.ErrInsufficientPoints
	AdjustBalanceWithTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID, delta int) (int, error)
	CreateTransactionWithTx(ctx context.Context, tx pgx.Tx, t *model.RewardTransaction) error
}
