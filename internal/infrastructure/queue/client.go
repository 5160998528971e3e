package queue

import (
	"time"

	"github.com/hibiken/asynq"

	"storefront-backend/internal/shared/utils"
	"storefront-backend/pkg/logger"
)

// Enqueuer là phần của *asynq.Client mà services dùng (dễ mock khi test)
type Enqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

func NewClient(redisAddr, password string, db int) *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr, Password: password, DB: db})
}

// EnqueueBestEffort marshal + enqueue, lỗi chỉ được log, không trả về.
// Dùng cho side effects (email, notification) không được phép làm fail thao tác chính.
func EnqueueBestEffort(q Enqueuer, taskType string, payload interface{}, opts ...asynq.Option) {
	if q == nil {
		logger.Warn("Task queue not configured, task dropped", map[string]interface{}{"type": taskType})
		return
	}

	task, err := utils.MarshalTask(taskType, payload)
	if err != nil {
		logger.Error("Failed to marshal task "+taskType, err)
		return
	}

	info, err := q.Enqueue(task, opts...)
	if err != nil {
		logger.Error("Failed to enqueue task "+taskType, err)
		return
	}

	fields := map[string]interface{}{"type": taskType, "task_id": info.ID, "queue": info.Queue}
	if !info.NextProcessAt.IsZero() && info.NextProcessAt.After(time.Now()) {
		fields["execute_at"] = info.NextProcessAt.Format(time.RFC3339)
	}
	logger.Info("Enqueued task", fields)
}
