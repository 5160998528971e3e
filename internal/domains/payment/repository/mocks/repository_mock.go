package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"storefront-backend/internal/domains/payment/model"
)

type WebhookRepository struct {
	mock.Mock
}

func (m *WebhookRepository) Create(ctx context.Context, log *model.PaymentWebhookLog) error {
	return m.Called(ctx, log).Error(0)
}

func (m *WebhookRepository) IsReferenceProcessed(ctx context.Context, reference string) (bool, error) {
	args := m.Called(ctx, reference)
	return args.Bool(0), args.Error(1)
}

func (m *WebhookRepository) MarkAsProcessed(ctx context.Context, id uuid.UUID, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *WebhookRepository) MarkProcessingError(ctx context.Context, id uuid.UUID, errorMsg string) error {
	return m.Called(ctx, id, errorMsg).Error(0)
}

func (m *WebhookRepository) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}
