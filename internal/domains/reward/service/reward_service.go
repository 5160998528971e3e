package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"storefront-backend/internal/config"
	cartModel "storefront-backend/internal/domains/cart/model"
	cart "storefront-backend/internal/domains/cart/repository"
	delivery "storefront-backend/internal/domains/delivery/service"
	"storefront-backend/internal/domains/reward/model"
	"storefront-backend/internal/domains/reward/repository"
	"storefront-backend/internal/shared/auth"
	"storefront-backend/pkg/logger"
)

const recentTransactionsLimit = 20

// RewardService vừa phục vụ HTTP (ServiceInterface) vừa là Ledger cho order
type RewardService struct {
	repo     repository.RepositoryInterface
	cartRepo cart.RepositoryInterface
	delivery *delivery.Policy
	cfg      config.RewardConfig
}

func NewRewardService(
	repo repository.RepositoryInterface,
	cartRepo cart.RepositoryInterface,
	deliveryPolicy *delivery.Policy,
	cfg config.RewardConfig,
) *RewardService {
	return &RewardService{
		repo:     repo,
		cartRepo: cartRepo,
		delivery: deliveryPolicy,
		cfg:      cfg,
	}
}

var (
	_ ServiceInterface = (*RewardService)(nil)
	_ Ledger           = (*RewardService)(nil)
)

func (s *RewardService) PointsPerUnit() int {
	return s.cfg.PointsPerUnit
}

// payable = subtotal + delivery - discount - reward đã giữ, không âm
func (s *RewardService) payable(c *cartModel.Cart) decimal.Decimal {
	subtotal := c.Subtotal()
	p := subtotal.
		Add(s.delivery.Charge(subtotal)).
		Sub(c.DiscountAmount).
		Sub(c.RewardDiscountAmount)
	if p.IsNegative() {
		return decimal.Zero
	}
	return p
}

// =====================================================
// REDEEM
// =====================================================
func (s *RewardService) Redeem(ctx context.Context, principal auth.Principal, req model.RedeemRequest) (*model.RedeemResponse, error) {
	if req.Points <= 0 {
		return nil, model.ErrInvalidPoints
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.repo.RollbackTx(ctx, tx)

	// Lock cart trước rồi mới tới user, cùng thứ tự với checkout
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

	balance, err := s.repo.GetBalanceForUpdateWithTx(ctx, tx, principal.UserID)
	if err != nil {
		return nil, err
	}
	if req.Points > balance {
		return nil, model.ErrInsufficientPoints
	}

	discount, debited := model.ClampRedemption(req.Points, s.payable(userCart), s.cfg.PointsPerUnit)
	if debited == 0 {
		return nil, model.ErrNothingToRedeem
	}

	remaining, err := s.repo.AdjustBalanceWithTx(ctx, tx, principal.UserID, -debited)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateTransactionWithTx(ctx, tx, &model.RewardTransaction{
		UserID: principal.UserID,
		Kind:   model.KindRedeem,
		Points: debited,
	}); err != nil {
		return nil, err
	}

	err = s.cartRepo.SetRewardWithTx(ctx, tx, userCart.ID,
		userCart.RewardPoints+debited,
		userCart.RewardDiscountAmount.Add(discount),
	)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CommitTx(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.Info("Reward points redeemed", map[string]interface{}{
		"user_id":   principal.UserID,
		"points":    debited,
		"discount":  discount.String(),
		"remaining": remaining,
	})

	return &model.RedeemResponse{
		DiscountAmount:   discount,
		PointsRedeemed:   debited,
		RemainingBalance: remaining,
	}, nil
}

// =====================================================
// RELEASE
// =====================================================
func (s *RewardService) Release(ctx context.Context, principal auth.Principal) (*model.ReleaseResponse, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.repo.RollbackTx(ctx, tx)

	userCart, err := s.cartRepo.GetByUserIDForUpdateWithTx(ctx, tx, principal.UserID)
	if err != nil {
		if errors.Is(err, cartModel.ErrCartNotFound) {
			return nil, model.ErrNothingToRelease
		}
		return nil, err
	}
	if userCart.RewardPoints <= 0 {
		return nil, model.ErrNothingToRelease
	}

	points := userCart.RewardPoints
	if err := s.RefundWithTx(ctx, tx, principal.UserID, nil, points); err != nil {
		return nil, err
	}
	if err := s.cartRepo.SetRewardWithTx(ctx, tx, userCart.ID, 0, decimal.Zero); err != nil {
		return nil, err
	}

	balance, err := s.repo.GetBalanceForUpdateWithTx(ctx, tx, principal.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CommitTx(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.Info("Reward points released from cart", map[string]interface{}{
		"user_id": principal.UserID,
		"points":  points,
	})

	return &model.ReleaseResponse{PointsReleased: points, Balance: balance}, nil
}

func (s *RewardService) Balance(ctx context.Context, principal auth.Principal) (*model.BalanceResponse, error) {
	balance, err := s.repo.GetBalance(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	txs, err := s.repo.ListTransactions(ctx, principal.UserID, recentTransactionsLimit)
	if err != nil {
		return nil, err
	}
	return &model.BalanceResponse{Balance: balance, Transactions: txs}, nil
}

// =====================================================
// LEDGER (order service)
// =====================================================

// AccrueWithTx cộng floor(total / AccrualUnit) điểm khi order delivered
func (s *RewardService) AccrueWithTx(ctx context.Context, tx pgx.Tx, userID, orderID uuid.UUID, total decimal.Decimal) (int, error) {
	points := model.AccrualPoints(total, s.cfg.AccrualUnit)
	if points == 0 {
		return 0, nil
	}

	if _, err := s.repo.AdjustBalanceWithTx(ctx, tx, userID, points); err != nil {
		return 0, err
	}
	if err := s.repo.CreateTransactionWithTx(ctx, tx, &model.RewardTransaction{
		UserID:  userID,
		OrderID: &orderID,
		Kind:    model.KindAccrual,
		Points:  points,
	}); err != nil {
		return 0, err
	}
	return points, nil
}

// RefundWithTx trả điểm về balance (cancel order, release, phần dư khi checkout)
func (s *RewardService) RefundWithTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID, orderID *uuid.UUID, points int) error {
	if points <= 0 {
		return nil
	}

	if _, err := s.repo.AdjustBalanceWithTx(ctx, tx, userID, points); err != nil {
		return err
	}
	return s.repo.CreateTransactionWithTx(ctx, tx, &model.RewardTransaction{
		UserID:  userID,
		OrderID: orderID,
		Kind:    model.KindRefund,
		Points:  points,
	})
}
