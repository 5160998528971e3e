package job

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"

	"storefront-backend/internal/shared"
)

type stubCleaner struct {
	deleted int64
	err     error
	calls   int
}

func (s *stubCleaner) CleanupLogs(context.Context) (int64, error) {
	s.calls++
	return s.deleted, s.err
}

func TestCleanupWebhookLogsHandler(t *testing.T) {
	task := asynq.NewTask(shared.TypeCleanupWebhookLogs, nil)

	ok := &stubCleaner{deleted: 4}
	assert.NoError(t, NewCleanupWebhookLogsHandler(ok).ProcessTask(context.Background(), task))
	assert.Equal(t, 1, ok.calls)

	failing := &stubCleaner{err: errors.New("db down")}
	assert.Error(t, NewCleanupWebhookLogsHandler(failing).ProcessTask(context.Background(), task))
}
