package email

// internal/infrastructure/email/smtp_service.go
import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"storefront-backend/pkg/logger"
)

type EmailService interface {
	SendOrderConfirmation(ctx context.Context, data OrderEmailData) error
	SendOrderCancellation(ctx context.Context, data OrderEmailData) error
	SendOrderShipped(ctx context.Context, data OrderEmailData) error
	SendPaymentFailed(ctx context.Context, data OrderEmailData) error
}

// SendFunc khớp với chữ ký smtp.SendMail, tách ra để test
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type smtpEmailService struct {
	smtpAddr string
	smtpFrom string
	send     SendFunc
}

func NewSMTPEmailService(smtpHost, smtpPort, from string) EmailService {
	return NewSMTPEmailServiceWithSender(smtpHost, smtpPort, from, smtp.SendMail)
}

func NewSMTPEmailServiceWithSender(smtpHost, smtpPort, from string, send SendFunc) EmailService {
	return &smtpEmailService{
		smtpAddr: smtpHost + ":" + smtpPort,
		smtpFrom: from,
		send:     send,
	}
}

func (s *smtpEmailService) SendOrderConfirmation(ctx context.Context, data OrderEmailData) error {
	return s.deliver(EmailRequest{
		To:      []string{data.Email},
		Subject: fmt.Sprintf("Order %s confirmed", data.OrderNumber),
		Body: fmt.Sprintf(`Hi,

Thanks for shopping with us. Your order %s has been placed.
Amount payable: ₹%s (%s)

We'll let you know when it ships.`, data.OrderNumber, data.Total.StringFixed(2), data.PaymentMethod),
	})
}

func (s *smtpEmailService) SendOrderCancellation(ctx context.Context, data OrderEmailData) error {
	reason := data.Reason
	if reason == "" {
		reason = "no reason given"
	}
	return s.deliver(EmailRequest{
		To:      []string{data.Email},
		Subject: fmt.Sprintf("Order %s cancelled", data.OrderNumber),
		Body: fmt.Sprintf(`Hi,

Your order %s has been cancelled (%s).
Any reward points you redeemed on it are back in your balance.`, data.OrderNumber, reason),
	})
}

func (s *smtpEmailService) SendOrderShipped(ctx context.Context, data OrderEmailData) error {
	tracking := data.TrackingNumber
	if tracking == "" {
		tracking = "will be shared soon"
	}
	return s.deliver(EmailRequest{
		To:      []string{data.Email},
		Subject: fmt.Sprintf("Order %s is on its way", data.OrderNumber),
		Body: fmt.Sprintf(`Hi,

Good news: order %s has shipped.
Tracking number: %s`, data.OrderNumber, tracking),
	})
}

func (s *smtpEmailService) SendPaymentFailed(ctx context.Context, data OrderEmailData) error {
	return s.deliver(EmailRequest{
		To:      []string{data.Email},
		Subject: fmt.Sprintf("Payment for order %s did not go through", data.OrderNumber),
		Body: fmt.Sprintf(`Hi,

We could not confirm your payment of ₹%s for order %s.
Your order is on hold. Please retry the payment from your orders page.`, data.Total.StringFixed(2), data.OrderNumber),
	})
}

func (s *smtpEmailService) deliver(req EmailRequest) error {
	if len(req.To) == 0 || req.To[0] == "" {
		return fmt.Errorf("email has no recipient")
	}

	contentType := "text/plain"
	if req.IsHTML {
		contentType = "text/html"
	}
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: %s; charset=UTF-8\r\n\r\n%s",
		s.smtpFrom, strings.Join(req.To, ", "), req.Subject, contentType, req.Body))

	if err := s.send(s.smtpAddr, nil, s.smtpFrom, req.To, msg); err != nil {
		logger.Info("Failed to send email", map[string]interface{}{
			"error":     err.Error(),
			"to":        req.To,
			"smtp_addr": s.smtpAddr,
		})
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
