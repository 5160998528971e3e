package service

import (
	"context"

	"github.com/google/uuid"

	"storefront-backend/internal/domains/inventory/model"
)

// ServiceInterface: quản lý sản phẩm + tồn kho (admin)
type ServiceInterface interface {
	CreateProduct(ctx context.Context, req model.CreateProductRequest) (*model.Product, error)
	ListProducts(ctx context.Context, req model.ListProductsRequest) ([]model.Product, int, error)
	AdjustStock(ctx context.Context, productID uuid.UUID, req model.AdjustStockRequest) (*model.Product, error)
}
