package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	orderModel "storefront-backend/internal/domains/order/model"
	"storefront-backend/internal/domains/payment/gateway"
	"storefront-backend/internal/domains/payment/model"
	"storefront-backend/internal/domains/payment/service"
	"storefront-backend/internal/shared/response"
	"storefront-backend/pkg/logger"
)

// maxWebhookBody: payload gateway chỉ vài trăm byte
const maxWebhookBody = 64 << 10

type WebhookHandler struct {
	service service.ServiceInterface
}

func NewWebhookHandler(service service.ServiceInterface) *WebhookHandler {
	return &WebhookHandler{service: service}
}

// PaymentWebhook handles POST /webhooks/payment
// Chữ ký tính trên raw body nên không dùng ShouldBindJSON
func (h *WebhookHandler) PaymentWebhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		response.BadRequest(c, "Unable to read request body")
		return
	}

	err = h.service.HandleWebhook(c.Request.Context(), body, c.GetHeader(gateway.SignatureHeader))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Acknowledged", nil)
}

func (h *WebhookHandler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors
	switch {
	case errors.Is(err, model.ErrInvalidSignature):
		response.ErrorResponse(c, http.StatusUnauthorized, "INVALID_SIGNATURE", "Invalid payment signature")
	case errors.Is(err, model.ErrMalformedPayload):
		response.BadRequest(c, "Malformed payment payload")
	case errors.As(err, &vErrs):
		response.ValidationError(c, vErrs)
	case errors.Is(err, orderModel.ErrOrderNotFound):
		response.ErrorResponse(c, http.StatusNotFound, orderModel.ErrCodeOrderNotFound, "Order not found")
	default:
		// 500 để gateway retry
		logger.Error("Payment webhook failed", err)
		response.InternalServerError(c)
	}
}
