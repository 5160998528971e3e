package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-backend/internal/domains/discount/model"
	"storefront-backend/internal/domains/discount/service"
	"storefront-backend/internal/shared/middleware"
	"storefront-backend/internal/shared/response"
)

type PublicHandler struct {
	service service.ServiceInterface
}

func NewPublicHandler(service service.ServiceInterface) *PublicHandler {
	return &PublicHandler{service: service}
}

// ValidateDiscount godoc
// @Summary Validate a discount code and apply it to the caller's cart
// @Tags Discounts
// @Router /discounts/validate [post]
func (h *PublicHandler) ValidateDiscount(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req model.ValidateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.service.ValidateAndApply(c.Request.Context(), principal, req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Discount applied", result)
}
