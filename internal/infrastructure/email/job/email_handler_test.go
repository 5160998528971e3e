package job

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-backend/internal/infrastructure/email"
	"storefront-backend/internal/shared"
	"storefront-backend/internal/shared/utils"
)

type recordingEmail struct {
	sent []email.OrderEmailData
	err  error
}

func (r *recordingEmail) record(_ context.Context, d email.OrderEmailData) error {
	r.sent = append(r.sent, d)
	return r.err
}
func (r *recordingEmail) SendOrderConfirmation(ctx context.Context, d email.OrderEmailData) error {
	return r.record(ctx, d)
}
func (r *recordingEmail) SendOrderCancellation(ctx context.Context, d email.OrderEmailData) error {
	return r.record(ctx, d)
}
func (r *recordingEmail) SendOrderShipped(ctx context.Context, d email.OrderEmailData) error {
	return r.record(ctx, d)
}
func (r *recordingEmail) SendPaymentFailed(ctx context.Context, d email.OrderEmailData) error {
	return r.record(ctx, d)
}

func TestOrderEmailHandler(t *testing.T) {
	svc := &recordingEmail{}
	h := NewOrderCancellationHandler(svc)

	task, err := utils.MarshalTask(shared.TypeSendOrderCancellation, email.OrderEmailData{
		OrderNumber: "ORD-9", Email: "c@shop.in", Reason: "changed my mind",
	})
	require.NoError(t, err)

	require.NoError(t, h.ProcessTask(context.Background(), task))
	require.Len(t, svc.sent, 1)
	assert.Equal(t, "changed my mind", svc.sent[0].Reason)
}

func TestOrderEmailHandler_BadPayloadSkipsRetry(t *testing.T) {
	h := NewOrderConfirmationHandler(&recordingEmail{})

	err := h.ProcessTask(context.Background(), asynq.NewTask(shared.TypeSendOrderConfirmation, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestOrderEmailHandler_SendFailureIsRetried(t *testing.T) {
	h := NewPaymentFailedHandler(&recordingEmail{err: errors.New("smtp down")})
	task, err := utils.MarshalTask(shared.TypeSendPaymentFailed, email.OrderEmailData{OrderNumber: "ORD-1", Email: "x@shop.in"})
	require.NoError(t, err)

	err = h.ProcessTask(context.Background(), task)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}
