package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"storefront-backend/internal/domains/cart/model"
	"storefront-backend/internal/domains/cart/service"
	invenModel "storefront-backend/internal/domains/inventory/model"
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

// GET /cart
func (h *Handler) GetCart(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	cart, err := h.service.GetCart(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Cart retrieved", cart)
}

// POST /cart/items
func (h *Handler) AddItem(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req model.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	cart, err := h.service.AddItem(c.Request.Context(), principal, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Item added to cart", cart)
}

// DELETE /cart/items/:product_id
func (h *Handler) RemoveItem(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	cart, err := h.service.RemoveItem(c.Request.Context(), principal, productID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Item removed from cart", cart)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors
	switch {
	case errors.As(err, &vErrs):
		response.ValidationError(c, vErrs)
	case errors.Is(err, invenModel.ErrInsufficientStock):
		response.ErrorResponse(c, http.StatusBadRequest, "INSUFFICIENT_STOCK", err.Error())
	case errors.Is(err, invenModel.ErrProductNotFound):
		response.NotFound(c, "Product not found")
	case errors.Is(err, model.ErrCartNotFound), errors.Is(err, model.ErrItemNotInCart):
		response.NotFound(c, err.Error())
	default:
		logger.Error("Cart request failed", err)
		response.InternalServerError(c)
	}
}
