package model

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// =====================================================
// WEBHOOK PAYLOAD
// =====================================================

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// WebhookPayload: body gateway gửi tới POST /webhooks/payment
type WebhookPayload struct {
	OrderID   uuid.UUID `json:"order_id"`
	Status    string    `json:"status"`
	Reference string    `json:"reference"`
}

func (p *WebhookPayload) Normalize() {
	p.Status = strings.ToLower(strings.TrimSpace(p.Status))
	p.Reference = strings.TrimSpace(p.Reference)
}

func (p WebhookPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.OrderID, validation.By(func(interface{}) error {
			if p.OrderID == uuid.Nil {
				return validation.NewError("validation_required", "cannot be blank")
			}
			return nil
		})),
		validation.Field(&p.Status, validation.Required, validation.In(StatusSuccess, StatusFailed)),
		validation.Field(&p.Reference, validation.Length(0, 128)),
	)
}

func (p WebhookPayload) Succeeded() bool {
	return p.Status == StatusSuccess
}

// =====================================================
// WEBHOOK LOG (audit + idempotency)
// =====================================================

// PaymentWebhookLog: ghi lại mọi webhook nhận được, kể cả chữ ký sai
type PaymentWebhookLog struct {
	ID              uuid.UUID       `json:"id"`
	OrderID         *uuid.UUID      `json:"order_id,omitempty"`
	Reference       *string         `json:"reference,omitempty"`
	Success         *bool           `json:"success,omitempty"`
	Body            json.RawMessage `json:"body,omitempty"`
	Signature       string          `json:"signature"`
	IsValid         bool            `json:"is_valid"`
	IsProcessed     bool            `json:"is_processed"`
	ProcessingError *string         `json:"processing_error,omitempty"`
	ReceivedAt      time.Time       `json:"received_at"`
	ProcessedAt     *time.Time      `json:"processed_at,omitempty"`
}

// =====================================================
// ERRORS
// =====================================================

var (
	ErrInvalidSignature = errors.New("invalid payment webhook signature")
	ErrMalformedPayload = errors.New("malformed payment webhook payload")
	ErrWebhookNotFound  = errors.New("webhook log not found")
)
