package main

import (
	"github.com/hibiken/asynq"

	orderJob "storefront-backend/internal/domains/order/job"
	paymentJob "storefront-backend/internal/domains/payment/job"
	"storefront-backend/internal/infrastructure/email"
	emailjob "storefront-backend/internal/infrastructure/email/job"
	"storefront-backend/internal/shared"
	"storefront-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	// Order lifecycle
	autoProcess    *orderJob.AutoProcessHandler
	sweepConfirmed *orderJob.SweepHandler

	// Maintenance
	cleanupWebhookLogs *paymentJob.CleanupWebhookLogsHandler

	// Email handlers
	orderConfirmation *emailjob.OrderEmailHandler
	orderCancellation *emailjob.OrderEmailHandler
	orderShipped      *emailjob.OrderEmailHandler
	paymentFailed     *emailjob.OrderEmailHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container, cfg *Config) *HandlerRegistry {
	emailSvc := email.NewSMTPEmailService(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From)

	return &HandlerRegistry{
		autoProcess:    orderJob.NewAutoProcessHandler(c.OrderService),
		sweepConfirmed: orderJob.NewSweepHandler(c.OrderService),

		cleanupWebhookLogs: paymentJob.NewCleanupWebhookLogsHandler(c.PaymentService),

		orderConfirmation: emailjob.NewOrderConfirmationHandler(emailSvc),
		orderCancellation: emailjob.NewOrderCancellationHandler(emailSvc),
		orderShipped:      emailjob.NewOrderShippedHandler(emailSvc),
		paymentFailed:     emailjob.NewPaymentFailedHandler(emailSvc),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	// Order tasks
	mux.HandleFunc(shared.TypeOrderAutoProcess, h.autoProcess.ProcessTask)
	mux.HandleFunc(shared.TypeOrderSweepConfirmed, h.sweepConfirmed.ProcessTask)

	// Maintenance tasks
	mux.HandleFunc(shared.TypeCleanupWebhookLogs, h.cleanupWebhookLogs.ProcessTask)

	// Email tasks
	mux.HandleFunc(shared.TypeSendOrderConfirmation, h.orderConfirmation.ProcessTask)
	mux.HandleFunc(shared.TypeSendOrderCancellation, h.orderCancellation.ProcessTask)
	mux.HandleFunc(shared.TypeSendOrderShipped, h.orderShipped.ProcessTask)
	mux.HandleFunc(shared.TypeSendPaymentFailed, h.paymentFailed.ProcessTask)
}
