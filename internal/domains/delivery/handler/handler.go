package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"storefront-backend/internal/domains/delivery/service"
	"storefront-backend/internal/shared/response"
)

type Handler struct {
	policy *service.Policy
}

func NewHandler(policy *service.Policy) *Handler {
	return &Handler{policy: policy}
}

// GET /delivery/quote?subtotal=1200
func (h *Handler) Quote(c *gin.Context) {
	subtotal, err := decimal.NewFromString(c.Query("subtotal"))
	if err != nil || subtotal.IsNegative() {
		response.BadRequest(c, "subtotal must be a non-negative number")
		return
	}

	response.Success(c, http.StatusOK, "Delivery quote", h.policy.Quote(subtotal))
}
