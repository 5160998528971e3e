package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"storefront-backend/internal/domains/inventory/model"
	"storefront-backend/internal/domains/inventory/service"
	"storefront-backend/internal/shared/response"
	"storefront-backend/pkg/logger"
)

type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// RegisterAdminRoutes: router đã được bọc Auth + Admin middleware
func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	products := admin.Group("/products")
	{
		products.POST("", h.CreateProduct)
		products.GET("", h.ListProducts)
		products.PATCH("/:id/stock", h.AdjustStock)
	}
}

// POST /admin/products
func (h *Handler) CreateProduct(c *gin.Context) {
	var req model.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.service.CreateProduct(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Product created", product)
}

// GET /admin/products?category=&page=&limit=
func (h *Handler) ListProducts(c *gin.Context) {
	var req model.ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	req.Normalize()

	products, total, err := h.service.ListProducts(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, products, &response.Meta{
		Page:  req.Page,
		Limit: req.Limit,
		Total: total,
	})
}

// PATCH /admin/products/:id/stock
func (h *Handler) AdjustStock(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req model.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.service.AdjustStock(c.Request.Context(), productID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Stock adjusted", product)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors
	switch {
	case errors.As(err, &vErrs):
		response.ValidationError(c, vErrs)
	case errors.Is(err, model.ErrProductNotFound):
		response.NotFound(c, "Product not found")
	case errors.Is(err, model.ErrInsufficientStock):
		response.ErrorResponse(c, http.StatusBadRequest, "INSUFFICIENT_STOCK", err.Error())
	default:
		logger.Error("Inventory request failed", err)
		response.InternalServerError(c)
	}
}
