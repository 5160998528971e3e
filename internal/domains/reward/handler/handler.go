package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"storefront-backend/internal/domains/reward/model"
	"storefront-backend/internal/domains/reward/service"
	"storefront-backend/internal/shared/middleware"
	"storefront-backend/internal/shared/response"
	"storefront-backend/pkg/logger"
)

type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes gắn vào group đã qua AuthMiddleware
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	rewards := r.Group("/rewards")
	{
		rewards.GET("/balance", h.GetBalance)
		rewards.POST("/redeem", h.Redeem)
		rewards.DELETE("/redeem", h.Release)
	}
}

// Redeem godoc
// @Summary Redeem reward points against the current cart
// @Tags Rewards
// @Router /rewards/redeem [post]
func (h *Handler) Redeem(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req model.RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.service.Redeem(c.Request.Context(), principal, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Reward points redeemed", result)
}

func (h *Handler) Release(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	result, err := h.service.Release(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Reward points released", result)
}

func (h *Handler) GetBalance(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	result, err := h.service.Balance(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Success", result)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors
	if errors.As(err, &vErrs) {
		response.ValidationError(c, vErrs)
		return
	}

	if rErr, ok := model.AsRewardError(err); ok {
		response.ErrorResponse(c, rErr.HTTPStatus, string(rErr.Code), rErr.Message)
		return
	}

	logger.Error("Reward request failed", err)
	response.InternalServerError(c)
}
