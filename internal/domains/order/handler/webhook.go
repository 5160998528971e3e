package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-backend/internal/domains/order/model"
	"storefront-backend/internal/domains/order/service"
	"storefront-backend/internal/shared/response"
	"storefront-backend/pkg/logger"
)

// ShippingWebhookHandler nhận status update từ shipping aggregator.
// Token đã được ShippingWebhookAuth kiểm tra trước khi vào đây.
type ShippingWebhookHandler struct {
	orderService service.OrderService
}

func NewShippingWebhookHandler(orderService service.OrderService) *ShippingWebhookHandler {
	return &ShippingWebhookHandler{orderService: orderService}
}

// Handle: POST /webhooks/shipping
// Luôn ack 200, lỗi chỉ log (aggregator không retry theo ý mình)
func (h *ShippingWebhookHandler) Handle(c *gin.Context) {
	var update model.ShippingUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		logger.Warn("Malformed shipping webhook payload", map[string]interface{}{"error": err.Error()})
		response.Success(c, http.StatusOK, "Ignored", nil)
		return
	}

	if err := h.orderService.HandleShippingUpdate(c.Request.Context(), update); err != nil {
		logger.Error("Shipping webhook failed", err)
		response.Success(c, http.StatusOK, "Ignored", nil)
		return
	}

	response.Success(c, http.StatusOK, "Acknowledged", nil)
}
