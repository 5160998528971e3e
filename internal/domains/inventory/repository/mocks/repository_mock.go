package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"storefront-backend/internal/domains/inventory/model"
)

type Repository struct {
	mock.Mock
}

func (m *Repository) Create(ctx context.Context, product *model.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *Repository) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*model.Product)
	return p, args.Error(1)
}

func (m *Repository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]model.Product, error) {
	args := m.Called(ctx, ids)
	products, _ := args.Get(0).(map[uuid.UUID]model.Product)
	return products, args.Error(1)
}

func (m *Repository) List(ctx context.Context, filter model.ListProductsRequest) ([]model.Product, int, error) {
	args := m.Called(ctx, filter)
	products, _ := args.Get(0).([]model.Product)
	return products, args.Int(1), args.Error(2)
}

func (m *Repository) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*model.Product, error) {
	args := m.Called(ctx, id, delta)
	p, _ := args.Get(0).(*model.Product)
	return p, args.Error(1)
}

func (m *Repository) DecrementStockWithTx(ctx context.Context, tx pgx.Tx, lines []model.StockLine) error {
	return m.Called(ctx, tx, lines).Error(0)
}

func (m *Repository) RestockWithTx(ctx context.Context, tx pgx.Tx, lines []model.StockLine) error {
	return m.Called(ctx, tx, lines).Error(0)
}
