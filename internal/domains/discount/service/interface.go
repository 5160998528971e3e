package service

import (
	"context"

	"storefront-backend/internal/domains/discount/model"
	"storefront-backend/internal/shared/auth"
)

type ServiceInterface interface {
	// ValidateAndApply kiểm tra code với cart của principal, ghi usage và gắn discount vào cart
	ValidateAndApply(ctx context.Context, principal auth.Principal, req model.ValidateDiscountRequest) (*model.ValidateDiscountResponse, error)

	// Admin
	CreateDiscount(ctx context.Context, req model.CreateDiscountRequest) (*model.Discount, error)
	ListDiscounts(ctx context.Context, req model.ListDiscountsRequest) ([]model.Discount, int, error)
	DeactivateDiscount(ctx context.Context, code string) (*model.Discount, error)
}
