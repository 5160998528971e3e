package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/hibiken/asynq"
)

// GetEnvVariable lấy env với fallback default value
func GetEnvVariable(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// MarshalTask tạo asynq task với JSON payload
func MarshalTask(taskType string, payload interface{}) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", taskType, err)
	}
	return asynq.NewTask(taskType, b), nil
}

// UnmarshalTask decode payload của task vào dest
func UnmarshalTask(t *asynq.Task, dest interface{}) error {
	if err := json.Unmarshal(t.Payload(), dest); err != nil {
		return fmt.Errorf("unmarshal %s payload: %w", t.Type(), err)
	}
	return nil
}

// NormalizeCode chuẩn hoá discount code: trim + upper
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
