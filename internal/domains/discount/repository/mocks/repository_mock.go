package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"storefront-backend/internal/domains/discount/model"
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

func (m *Repository) GetByCode(ctx context.Context, code string) (*model.Discount, error) {
	args := m.Called(ctx, code)
	d, _ := args.Get(0).(*model.Discount)
	return d, args.Error(1)
}

func (m *Repository) HasUsed(ctx context.Context, userID uuid.UUID, code string) (bool, error) {
	args := m.Called(ctx, userID, code)
	return args.Bool(0), args.Error(1)
}

func (m *Repository) CreateUsageWithTx(ctx context.Context, tx pgx.Tx, usage *model.UsedDiscount) error {
	return m.Called(ctx, tx, usage).Error(0)
}

func (m *Repository) Create(ctx context.Context, d *model.Discount) error {
	return m.Called(ctx, d).Error(0)
}

func (m *Repository) List(ctx context.Context, req model.ListDiscountsRequest) ([]model.Discount, int, error) {
	args := m.Called(ctx, req)
	list, _ := args.Get(0).([]model.Discount)
	return list, args.Int(1), args.Error(2)
}

func (m *Repository) Deactivate(ctx context.Context, code string) (*model.Discount, error) {
	args := m.Called(ctx, code)
	d, _ := args.Get(0).(*model.Discount)
	return d, args.Error(1)
}
