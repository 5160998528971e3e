package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"storefront-backend/internal/domains/cart/model"
	"storefront-backend/internal/domains/cart/repository"
	delivery "storefront-backend/internal/domains/delivery/service"
	invenModel "storefront-backend/internal/domains/inventory/model"
	invenRepo "storefront-backend/internal/domains/inventory/repository"
	"storefront-backend/internal/shared/auth"
)

type ServiceInterface interface {
	GetCart(ctx context.Context, principal auth.Principal) (*model.CartResponse, error)
	AddItem(ctx context.Context, principal auth.Principal, req model.AddItemRequest) (*model.CartResponse, error)
	RemoveItem(ctx context.Context, principal auth.Principal, productID uuid.UUID) (*model.CartResponse, error)
}

type cartService struct {
	repo          repository.RepositoryInterface
	inventoryRepo invenRepo.RepositoryInterface
	delivery      *delivery.Policy
}

func NewCartService(
	repo repository.RepositoryInterface,
	inventoryRepo invenRepo.RepositoryInterface,
	deliveryPolicy *delivery.Policy,
) ServiceInterface {
	return &cartService{
		repo:          repo,
		inventoryRepo: inventoryRepo,
		delivery:      deliveryPolicy,
	}
}

func (s *cartService) GetCart(ctx context.Context, principal auth.Principal) (*model.CartResponse, error) {
	cart, err := s.repo.GetByUserID(ctx, principal.UserID)
	if errors.Is(err, model.ErrCartNotFound) {
		cart = &model.Cart{UserID: principal.UserID, Items: []model.CartItem{}}
	} else if err != nil {
		return nil, err
	}
	return s.buildResponse(cart), nil
}

func (s *cartService) AddItem(ctx context.Context, principal auth.Principal, req model.AddItemRequest) (*model.CartResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Check sớm để báo lỗi ngay, checkout vẫn kiểm tra lại trong tx
	product, err := s.inventoryRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.InStock(req.Quantity) {
		return nil, &invenModel.InsufficientStockError{
			ProductID:   product.ID,
			ProductName: product.Name,
			Requested:   req.Quantity,
			Available:   product.Stock,
		}
	}

	cart, err := s.repo.GetOrCreateByUserID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpsertItem(ctx, cart.ID, req.ProductID, req.Quantity); err != nil {
		return nil, fmt.Errorf("add item: %w", err)
	}

	return s.GetCart(ctx, principal)
}

func (s *cartService) RemoveItem(ctx context.Context, principal auth.Principal, productID uuid.UUID) (*model.CartResponse, error) {
	cart, err := s.repo.GetByUserID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.RemoveItem(ctx, cart.ID, productID); err != nil {
		return nil, err
	}
	return s.GetCart(ctx, principal)
}

// buildResponse: số tiền tạm tính, checkout sẽ tính lại discount và clamp reward
func (s *cartService) buildResponse(cart *model.Cart) *model.CartResponse {
	subtotal := cart.Subtotal()
	quote := s.delivery.Quote(subtotal)

	total := subtotal.Add(quote.DeliveryCharge).Sub(cart.DiscountAmount).Sub(cart.RewardDiscountAmount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return &model.CartResponse{
		Cart:                  cart,
		Subtotal:              subtotal,
		DeliveryCharge:        quote.DeliveryCharge,
		AmountForFreeDelivery: quote.AmountForFreeDelivery,
		DeliveryMessage:       quote.Message,
		Total:                 total,
	}
}
