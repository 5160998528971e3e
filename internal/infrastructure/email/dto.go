package email

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EmailRequest là message đã render, sẵn sàng gửi qua SMTP
type EmailRequest struct {
	To      []string
	Subject string
	Body    string
	IsHTML  bool
}

// OrderEmailData là payload chung của các task email liên quan tới order
type OrderEmailData struct {
	OrderID        uuid.UUID       `json:"order_id"`
	OrderNumber    string          `json:"order_number"`
	Email          string          `json:"email"`
	Total          decimal.Decimal `json:"total"`
	PaymentMethod  string          `json:"payment_method,omitempty"`
	Reason         string          `json:"reason,omitempty"`
	TrackingNumber string          `json:"tracking_number,omitempty"`
}
