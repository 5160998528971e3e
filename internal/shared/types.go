package shared

// Task types xử lý bởi cmd/worker
const (
	TypeOrderAutoProcess      = "order:auto_process"
	TypeOrderSweepConfirmed   = "order:sweep_confirmed"
	TypeCleanupWebhookLogs    = "payment:cleanup_webhook_logs"
	TypeSendOrderConfirmation = "email:order_confirmation"
	TypeSendOrderCancellation = "email:order_cancellation"
	TypeSendOrderShipped      = "email:order_shipped"
	TypeSendPaymentFailed     = "email:payment_failed"
)

// Queue names và priority (xem cmd/worker/server.go)
const (
	QueueCritical = "critical"
	QueueOrder    = "order"
	QueueEmail    = "email"
)

// UserBasicInfo (để tránh import cycle với user domain)
type UserBasicInfo struct {
	ID       string
	Email    string
	FullName string
}
