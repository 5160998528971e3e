package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-backend/internal/domains/discount/model"
	"storefront-backend/internal/domains/discount/service"
	"storefront-backend/internal/shared/response"
)

type AdminHandler struct {
	service service.ServiceInterface
}

func NewAdminHandler(service service.ServiceInterface) *AdminHandler {
	return &AdminHandler{service: service}
}

// RegisterRoutes: admin group đã có Auth + Admin middleware
func (h *AdminHandler) RegisterRoutes(admin *gin.RouterGroup) {
	discounts := admin.Group("/discounts")
	{
		discounts.POST("", h.CreateDiscount)
		discounts.GET("", h.ListDiscounts)
		discounts.PATCH("/:code/deactivate", h.DeactivateDiscount)
	}
}

// POST /admin/discounts
func (h *AdminHandler) CreateDiscount(c *gin.Context) {
	var req model.CreateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	discount, err := h.service.CreateDiscount(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Discount created", discount)
}

// GET /admin/discounts?active_only=true&page=1&limit=20
func (h *AdminHandler) ListDiscounts(c *gin.Context) {
	var req model.ListDiscountsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	req.Normalize()

	discounts, total, err := h.service.ListDiscounts(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, discounts, &response.Meta{
		Page:  req.Page,
		Limit: req.Limit,
		Total: total,
	})
}

// PATCH /admin/discounts/:code/deactivate
func (h *AdminHandler) DeactivateDiscount(c *gin.Context) {
	discount, err := h.service.DeactivateDiscount(c.Request.Context(), c.Param("code"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Discount deactivated", discount)
}
