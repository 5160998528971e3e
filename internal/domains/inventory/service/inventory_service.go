package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"storefront-backend/internal/domains/inventory/model"
	"storefront-backend/internal/domains/inventory/repository"
	"storefront-backend/pkg/logger"
)

type inventoryService struct {
	repo repository.RepositoryInterface
}

func NewService(repo repository.RepositoryInterface) ServiceInterface {
	return &inventoryService{repo: repo}
}

func (s *inventoryService) CreateProduct(ctx context.Context, req model.CreateProductRequest) (*model.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	product := &model.Product{
		ID:       uuid.New(),
		Name:     strings.TrimSpace(req.Name),
		Category: strings.TrimSpace(req.Category),
		Price:    req.Price.Round(2),
		Stock:    req.Stock,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	logger.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"category":   product.Category,
		"stock":      product.Stock,
	})
	return product, nil
}

func (s *inventoryService) ListProducts(ctx context.Context, req model.ListProductsRequest) ([]model.Product, int, error) {
	req.Normalize()
	return s.repo.List(ctx, req)
}

func (s *inventoryService) AdjustStock(ctx context.Context, productID uuid.UUID, req model.AdjustStockRequest) (*model.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	product, err := s.repo.AdjustStock(ctx, productID, req.Delta)
	if err != nil {
		return nil, err
	}

	logger.Info("Stock adjusted", map[string]interface{}{
		"product_id": productID,
		"delta":      req.Delta,
		"stock":      product.Stock,
	})
	return product, nil
}
