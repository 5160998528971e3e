package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"storefront-backend/internal/domains/reward/model"
)

type Repository struct {
	mock.Mock
}

func (m *Repository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *Repository) CommitTx(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *Repository) RollbackTx(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *Repository) GetBalance(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *Repository) ListTransactions(ctx context.Context, userID uuid.UUID, limit int) ([]model.RewardTransaction, error) {
	args := m.Called(ctx, userID, limit)
	txs, _ := args.Get(0).([]model.RewardTransaction)
	return txs, args.Error(1)
}

func (m *Repository) GetBalanceForUpdateWithTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, tx, userID)
	return args.Int(0), args.Error(1)
}

func (m *Repository) AdjustBalanceWithTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID, delta int) (int, error) {
	args := m.Called(ctx, tx, userID, delta)
	return args.Int(0), args.Error(1)
}

func (m *Repository) CreateTransactionWithTx(ctx context.Context, tx pgx.Tx, t *model.RewardTransaction) error {
	return m.Called(ctx, tx, t).Error(0)
}
