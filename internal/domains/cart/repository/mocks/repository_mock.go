// Package mocks chứa testify mocks của cart repository, dùng chung cho tests của các domain.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"storefront-backend/internal/domains/cart/model"
)

type Repository struct {
	mock.Mock
}

func (m *Repository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	args := m.Called(ctx, userID)
	cart, _ := args.Get(0).(*model.Cart)
	return cart, args.Error(1)
}

func (m *Repository) GetOrCreateByUserID(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	args := m.Called(ctx, userID)
	cart, _ := args.Get(0).(*model.Cart)
	return cart, args.Error(1)
}

func (m *Repository) UpsertItem(ctx context.Context, cartID, productID uuid.UUID, quantity int) error {
	return m.Called(ctx, cartID, productID, quantity).Error(0)
}

func (m *Repository) RemoveItem(ctx context.Context, cartID, productID uuid.UUID) error {
	return m.Called(ctx, cartID, productID).Error(0)
}

func (m *Repository) GetByUserIDForUpdateWithTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (*model.Cart, error) {
	args := m.Called(ctx, tx, userID)
	cart, _ := args.Get(0).(*model.Cart)
	return cart, args.Error(1)
}

func (m *Repository) AttachDiscountWithTx(ctx context.Context, tx pgx.Tx, cartID uuid.UUID, code string, amount decimal.Decimal) error {
	return m.Called(ctx, tx, cartID, code, amount).Error(0)
}

func (m *Repository) SetRewardWithTx(ctx context.Context, tx pgx.Tx, cartID uuid.UUID, points int, amount decimal.Decimal) error {
	return m.Called(ctx, tx, cartID, points, amount).Error(0)
}

func (m *Repository) ClearWithTx(ctx context.Context, tx pgx.Tx, cartID uuid.UUID) error {
	return m.Called(ctx, tx, cartID).Error(0)
}
