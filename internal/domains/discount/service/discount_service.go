package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	cartModel "storefront-backend/internal/domains/cart/model"
	cart "storefront-backend/internal/domains/cart/repository"
	"storefront-backend/internal/domains/discount/model"
	"storefront-backend/internal/domains/discount/repository"
	"storefront-backend/internal/shared/auth"
	"storefront-backend/internal/shared/utils"
	"storefront-backend/pkg/logger"
)

type discountService struct {
	repo       repository.RepositoryInterface
	cartRepo   cart.RepositoryInterface
	calculator *DiscountCalculator
	now        func() time.Time
}

func NewDiscountService(repo repository.RepositoryInterface, cartRepo cart.RepositoryInterface) ServiceInterface {
	return &discountService{
		repo:       repo,
		cartRepo:   cartRepo,
		calculator: NewDiscountCalculator(),
		now:        time.Now,
	}
}

// LinesFromCart chuyển cart items thành input cho calculator
func LinesFromCart(items []cartModel.CartItem) []model.Line {
	lines := make([]model.Line, 0, len(items))
	for _, item := range items {
		lines = append(lines, model.Line{Category: item.Category, Amount: item.LineTotal()})
	}
	return lines
}

// =====================================================
// VALIDATE + APPLY
// =====================================================
// Thứ tự kiểm tra: đã dùng -> tồn tại + active trong window -> category khớp.
// Usage chỉ được ghi khi mọi check đã qua, cùng tx với việc gắn vào cart.
func (s *discountService) ValidateAndApply(
	ctx context.Context,
	principal auth.Principal,
	req model.ValidateDiscountRequest,
) (*model.ValidateDiscountResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	code := utils.NormalizeCode(req.Code)

	// 1. Đã dùng chưa (fast path, unique index vẫn là chốt chặn cuối)
	used, err := s.repo.HasUsed(ctx, principal.UserID, code)
	if err != nil {
		return nil, err
	}
	if used {
		return nil, model.ErrDiscountAlreadyUsed
	}

	// 2. Code tồn tại và đang active
	discount, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if !discount.IsActiveAt(s.now()) {
		return nil, model.ErrDiscountInactive
	}

	// 3. Transaction: lock cart, tính tiền, ghi usage, gắn vào cart
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.repo.RollbackTx(ctx, tx)

	userCart, err := s.cartRepo.GetByUserIDForUpdateWithTx(ctx, tx, principal.UserID)
	if err != nil {
		if errors.Is(err, cartModel.ErrCartNotFound) {
			return nil, model.ErrCartEmpty
		}
		return nil, err
	}
	if userCart.IsEmpty() {
		return nil, model.ErrCartEmpty
	}
	if userCart.HasDiscount() {
		return nil, model.ErrDiscountAlreadyOnCart
	}

	applicable := s.calculator.ApplicableSubtotal(LinesFromCart(userCart.Items), discount.Category)
	if !applicable.IsPositive() {
		return nil, model.ErrDiscountNotApplicable
	}
	amount := s.calculator.Calculate(discount, applicable)

	usage := &model.UsedDiscount{
		UserID:         principal.UserID,
		DiscountCode:   code,
		DiscountAmount: amount,
	}
	if err := s.repo.CreateUsageWithTx(ctx, tx, usage); err != nil {
		return nil, err
	}

	if err := s.cartRepo.AttachDiscountWithTx(ctx, tx, userCart.ID, code, amount); err != nil {
		return nil, err
	}

	if err := s.repo.CommitTx(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.Info("Discount applied to cart", map[string]interface{}{
		"user_id":    principal.UserID,
		"code":       code,
		"applicable": applicable.String(),
		"amount":     amount.String(),
	})

	return &model.ValidateDiscountResponse{
		Code:               code,
		Type:               discount.Type,
		Category:           discount.Category,
		ApplicableSubtotal: applicable,
		DiscountAmount:     amount,
	}, nil
}

// =====================================================
// ADMIN
// =====================================================

func (s *discountService) CreateDiscount(ctx context.Context, req model.CreateDiscountRequest) (*model.Discount, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	d := &model.Discount{
		Code:     utils.NormalizeCode(req.Code),
		Type:     req.Type,
		Value:    req.Value,
		Category: req.Category,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
		IsActive: true,
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}

	logger.Info("Discount created", map[string]interface{}{"code": d.Code, "category": d.Category})
	return d, nil
}

func (s *discountService) ListDiscounts(ctx context.Context, req model.ListDiscountsRequest) ([]model.Discount, int, error) {
	req.Normalize()
	return s.repo.List(ctx, req)
}

func (s *discountService) DeactivateDiscount(ctx context.Context, code string) (*model.Discount, error) {
	d, err := s.repo.Deactivate(ctx, utils.NormalizeCode(code))
	if err != nil {
		return nil, err
	}
	logger.Info("Discount deactivated", map[string]interface{}{"code": d.Code})
	return d, nil
}
