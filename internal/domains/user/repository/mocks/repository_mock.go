package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"storefront-backend/internal/domains/user/model"
	"storefront-backend/internal/shared"
)

type Repository struct {
	mock.Mock
}

func (m *Repository) Create(ctx context.Context, u *model.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *Repository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *Repository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *Repository) GetBasicInfo(ctx context.Context, id uuid.UUID) (*shared.UserBasicInfo, error) {
	args := m.Called(ctx, id)
	info, _ := args.Get(0).(*shared.UserBasicInfo)
	return info, args.Error(1)
}

func (m *Repository) AppendOrderHistoryWithTx(ctx context.Context, tx pgx.Tx, userID, orderID uuid.UUID) error {
	return m.Called(ctx, tx, userID, orderID).Error(0)
}
