package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"storefront-backend/internal/domains/order/model"
	"storefront-backend/internal/domains/order/service"
	"storefront-backend/internal/shared/middleware"
	"storefront-backend/internal/shared/response"
	"storefront-backend/pkg/logger"
)

// =====================================================
// ORDER HANDLER
// =====================================================
type OrderHandler struct {
	orderService service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// =====================================================
// ROUTES REGISTRATION
// =====================================================

// RegisterRoutes: group đã qua AuthMiddleware
func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	userRoutes := router.Group("/order")
	{
		userRoutes.POST("", h.CreateOrder)            // POST /order
		userRoutes.GET("", h.ListOrders)              // GET /order?page=1&limit=20&status=confirmed
		userRoutes.GET("/byId/:id", h.GetOrderDetail) // GET /order/byId/:id
		userRoutes.PATCH("/byId/:id", h.UpdateStatus) // PATCH /order/byId/:id
	}
}

// RegisterAdminRoutes: group đã qua Auth + Admin middleware
func (h *OrderHandler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	adminRoutes := admin.Group("/orders")
	{
		adminRoutes.GET("", h.ListAllOrders)             // GET /admin/orders
		adminRoutes.POST("/export", h.ExportOrders)      // POST /admin/orders/export?status=delivered
		adminRoutes.PATCH("/:id/status", h.UpdateStatus) // PATCH /admin/orders/:id/status
		adminRoutes.DELETE("/:id", h.DeleteOrder)        // DELETE /admin/orders/:id
	}
}

// =====================================================
// CREATE ORDER
// =====================================================

// CreateOrder godoc
// @Summary Checkout the current cart
// @Description Validates stock, applies cart discount and reward points, decrements stock atomically
// @Tags Orders
// @Accept json
// @Produce json
// @Param request body model.CreateOrderRequest true "Create order request"
// @Success 201 {object} response.Response{data=model.CreateOrderResponse}
// @Failure 400 {object} response.Response "Insufficient stock"
// @Router /order [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req model.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.orderService.CreateOrder(c.Request.Context(), principal, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Order created successfully", result)
}

// =====================================================
// QUERIES
// =====================================================

// ListOrders: order của chính user, mới nhất trước
func (h *OrderHandler) ListOrders(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req model.ListOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	req.Normalize()

	orders, total, err := h.orderService.ListOrders(c.Request.Context(), principal, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, orders, &response.Meta{
		Page:  req.Page,
		Limit: req.Limit,
		Total: total,
	})
}

// GetOrderDetail godoc
// @Summary Get order detail with status history
// @Tags Orders
// @Param id path string true "Order ID (UUID)"
// @Success 200 {object} response.Response{data=model.OrderDetailResponse}
// @Failure 404 {object} response.Response
// @Router /order/byId/{id} [get]
func (h *OrderHandler) GetOrderDetail(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	detail, err := h.orderService.GetOrder(c.Request.Context(), principal, orderID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Success", detail)
}

// =====================================================
// UPDATE STATUS
// =====================================================

// UpdateStatus godoc
// @Summary Change order status
// @Description Customers may cancel their own orders; admins follow the transition table
// @Tags Orders
// @Param id path string true "Order ID (UUID)"
// @Param request body model.UpdateStatusRequest true "Update status request"
// @Success 200 {object} response.Response{data=model.Order}
// @Failure 409 {object} response.Response "Version mismatch"
// @Failure 400 {object} response.Response "Invalid status transition"
// @Router /order/byId/{id} [patch]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	var req model.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), principal, orderID, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Order status updated successfully", order)
}

// =====================================================
// ADMIN
// =====================================================

func (h *OrderHandler) ListAllOrders(c *gin.Context) {
	var req model.ListOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	req.Normalize()

	orders, total, err := h.orderService.ListAllOrders(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, orders, &response.Meta{
		Page:  req.Page,
		Limit: req.Limit,
		Total: total,
	})
}

// DeleteOrder: chỉ order cancelled / returned
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	if err := h.orderService.DeleteOrder(c.Request.Context(), orderID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Order deleted", nil)
}

// ExportOrders: build .xlsx, trả presigned URL
func (h *OrderHandler) ExportOrders(c *gin.Context) {
	var req model.ExportOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.orderService.ExportOrders(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Export created", result)
}

// =====================================================
// HELPER METHODS
// =====================================================

func parseOrderID(c *gin.Context) (uuid.UUID, bool) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Order ID must be a valid UUID")
		return uuid.Nil, false
	}
	return orderID, true
}

// handleServiceError maps service layer errors to HTTP responses
func (h *OrderHandler) handleServiceError(c *gin.Context, err error) {
	var vErrs validation.Errors
	if errors.As(err, &vErrs) {
		response.ValidationError(c, vErrs)
		return
	}

	var orderErr *model.OrderError
	if errors.As(err, &orderErr) {
		response.ErrorResponse(c, getHTTPStatusFromErrorCode(orderErr.Code), orderErr.Code, orderErr.Message)
		return
	}

	switch {
	case errors.Is(err, model.ErrOrderNotFound):
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeOrderNotFound, "Order not found")
		return
	case errors.Is(err, model.ErrVersionMismatch):
		response.ErrorResponse(c, http.StatusConflict, model.ErrCodeVersionMismatch,
			"Concurrent modification detected. Please refresh and try again.")
		return
	}

	logger.Error("Order request failed", err)
	response.InternalServerError(c)
}

// getHTTPStatusFromErrorCode maps business error codes to HTTP status codes
func getHTTPStatusFromErrorCode(code string) int {
	statusMap := map[string]int{
		model.ErrCodeOrderNotFound:        http.StatusNotFound,
		model.ErrCodeOrderCannotCancel:    http.StatusBadRequest,
		model.ErrCodeVersionMismatch:      http.StatusConflict,
		model.ErrCodeInsufficientStock:    http.StatusBadRequest,
		model.ErrCodeCartEmpty:            http.StatusBadRequest,
		model.ErrCodeInvalidTransition:    http.StatusBadRequest,
		model.ErrCodeForbidden:            http.StatusForbidden,
		model.ErrCodeInvalidRequest:       http.StatusBadRequest,
		model.ErrCodeInvalidAmount:        http.StatusBadRequest,
		model.ErrCodeOrderNotDeletable:    http.StatusBadRequest,
		model.ErrCodeInvalidPaymentMethod: http.StatusBadRequest,
		model.ErrCodeProductNotFound:      http.StatusNotFound,
	}

	if status, exists := statusMap[code]; exists {
		return status
	}

	return http.StatusInternalServerError
}
