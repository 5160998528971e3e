package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront-backend/internal/config"
	cartModel "storefront-backend/internal/domains/cart/model"
	cartMocks "storefront-backend/internal/domains/cart/repository/mocks"
	delivery "storefront-backend/internal/domains/delivery/service"
	"storefront-backend/internal/domains/reward/model"
	"storefront-backend/internal/domains/reward/repository/mocks"
	"storefront-backend/internal/shared/auth"
)

type fixture struct {
	svc       *RewardService
	repo      *mocks.Repository
	cartRepo  *cartMocks.Repository
	principal auth.Principal
	cart      *cartModel.Cart
}

func newFixture() *fixture {
	repo := new(mocks.Repository)
	cartRepo := new(cartMocks.Repository)
	policy := delivery.NewPolicy(decimal.NewFromInt(100), decimal.NewFromInt(1500))
	svc := NewRewardService(repo, cartRepo, policy, config.RewardConfig{PointsPerUnit: 10, AccrualUnit: 100})

	principal := auth.Principal{UserID: uuid.New(), Role: auth.RoleCustomer}
	return &fixture{
		svc:       svc,
		repo:      repo,
		cartRepo:  cartRepo,
		principal: principal,
		cart: &cartModel.Cart{
			ID:     uuid.New(),
			UserID: principal.UserID,
			Items: []cartModel.CartItem{
				{ProductID: uuid.New(), ProductName: "Desk Lamp", Category: "home", UnitPrice: decimal.NewFromInt(1000), Quantity: 1},
			},
		},
	}
}

func (f *fixture) expectTx(commit bool) {
	f.repo.On("BeginTx", mock.Anything).Return(nil, nil)
	f.repo.On("RollbackTx", mock.Anything, mock.Anything).Return(nil)
	if commit {
		f.repo.On("CommitTx", mock.Anything, mock.Anything).Return(nil)
	}
}

func TestRedeem_DebitsPointsAndParksDiscountOnCart(t *testing.T) {
	f := newFixture()
	f.expectTx(true)
	f.cartRepo.On("GetByUserIDForUpdateWithTx", mock.Anything, mock.Anything, f.principal.UserID).Return(f.cart, nil)
	f.repo.On("GetBalanceForUpdateWithTx", mock.Anything, mock.Anything, f.principal.UserID).Return(50, nil)
	f.repo.On("AdjustBalanceWithTx", mock.Anything, mock.Anything, f.principal.UserID, -50).Return(0, nil)
	f.repo.On("CreateTransactionWithTx", mock.Anything, mock.Anything, mock.MatchedBy(func(t *model.RewardTransaction) bool {
		return t.Kind == model.KindRedeem && t.Points == 50
	})).Return(nil)
	f.cartRepo.On("SetRewardWithTx", mock.Anything, mock.Anything, f.cart.ID, 50, mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.NewFromInt(5))
	})).Return(nil)

	resp, err := f.svc.Redeem(context.Background(), f.principal, model.RedeemRequest{Points: 50})

	require.NoError(t, err)
	assert.True(t, resp.DiscountAmount.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, 50, resp.PointsRedeemed)
	assert.Equal(t, 0, resp.RemainingBalance)
	f.repo.AssertExpectations(t)
	f.cartRepo.AssertExpectations(t)
}

func TestRedeem_RejectsNonPositivePoints(t *testing.T) {
	f := newFixture()

	for _, points := range []int{0, -10} {
		_, err := f.svc.Redeem(context.Background(), f.principal, model.RedeemRequest{Points: points})
		assert.ErrorIs(t, err, model.ErrInvalidPoints)
	}
	f.repo.AssertNotCalled(t, "BeginTx", mock.Anything)
}

func TestRedeem_MoreThanBalance(t *testing.T) {
	f := newFixture()
	f.expectTx(false)
	f.cartRepo.On("GetByUserIDForUpdateWithTx", mock.Anything, mock.Anything, f.principal.UserID).Return(f.cart, nil)
	f.repo.On("GetBalanceForUpdateWithTx", mock.Anything, mock.Anything, f.principal.UserID).Return(40, nil)

	_, err := f.svc.Redeem(context.Background(), f.principal, model.RedeemRequest{Points: 50})

	assert.ErrorIs(t, err, model.ErrInsufficientPoints)
	f.repo.AssertNotCalled(t, "AdjustBalanceWithTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.repo.AssertNotCalled(t, "CommitTx", mock.Anything, mock.Anything)
}

func TestRedeem_ClampsToPayable(t *testing.T) {
	f := newFixture()
	// subtotal 1000 + delivery 100 - discount 100 - reward đã giữ 990 = 10 còn phải trả
	code := "SAVE10"
	f.cart.DiscountCode = &code
	f.cart.DiscountAmount = decimal.NewFromInt(100)
	f.cart.RewardPoints = 9900
	f.cart.RewardDiscountAmount = decimal.NewFromInt(990)

	f.expectTx(true)
	f.cartRepo.On("GetByUserIDForUpdateWithTx", mock.Anything, mock.Anything, f.principal.UserID).Return(f.cart, nil)
	f.repo.On("GetBalanceForUpdateWithTx", mock.Anything, mock.Anything, f.principal.UserID).Return(1000, nil)
	f.repo.On("AdjustBalanceWithTx", mock.Anything, mock.Anything, f.principal.UserID, -100).Return(900, nil)
	f.repo.On("CreateTransactionWithTx", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.cartRepo.On("SetRewardWithTx", mock.Anything, mock.Anything, f.cart.ID, 10000, mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.NewFromInt(1000))
	})).Return(nil)

	resp, err := f.svc.Redeem(context.Background(), f.principal, model.RedeemRequest{Points: 1000})

	require.NoError(t, err)
	assert.True(t, resp.DiscountAmount.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, 100, resp.PointsRedeemed)
	assert.Equal(t, 900, resp.RemainingBalance)
}

func TestRedeem_FullBalanceDebitedWhenNotClamped(t *testing.T) {
	f := newFixture()
	f.expectTx(true)
	f.cartRepo.On("GetByUserIDForUpdateWithTx", mock.Anything, mock.Anything, f.principal.UserID).Return(f.cart, nil)
	f.repo.On("GetBalanceForUpdateWithTx", mock.Anything, mock.Anything, f.principal.UserID).Return(15, nil)
	f.repo.On("AdjustBalanceWithTx", mock.Anything, mock.Anything, f.principal.UserID, -15).Return(0, nil)
	f.repo.On("CreateTransactionWithTx", mock.Anything, mock.Anything, mock.MatchedBy(func(t *model.RewardTransaction) bool {
		return t.Kind == model.KindRedeem && t.Points == 15
	})).Return(nil)
	f.cartRepo.On("SetRewardWithTx", mock.Anything, mock.Anything, f.cart.ID, 15, mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.NewFromInt(1))
	})).Return(nil)

	resp, err := f.svc.Redeem(context.Background(), f.principal, model.RedeemRequest{Points: 15})

	require.NoError(t, err)
	assert.True(t, resp.DiscountAmount.Equal(decimal.NewFromInt(1)))
	assert.Equal(t, 15, resp.PointsRedeemed)
	assert.Equal(t, 0, resp.RemainingBalance)
	f.repo.AssertExpectations(t)
}

func TestRedeem_BelowOneUnitDebitsWithoutDiscount(t *testing.T) {
	f := newFixture()
	f.expectTx(true)
	f.cartRepo.On("GetByUserIDForUpdateWithTx", mock.Anything, mock.Anything, f.principal.UserID).Return(f.cart, nil)
	f.repo.On("GetBalanceForUpdateWithTx", mock.Anything, mock.Anything, f.principal.UserID).Return(50, nil)
	f.repo.On("AdjustBalanceWithTx", mock.Anything, mock.Anything, f.principal.UserID, -9).Return(41, nil)
	f.repo.On("CreateTransactionWithTx", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.cartRepo.On("SetRewardWithTx", mock.Anything, mock.Anything, f.cart.ID, 9, mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.IsZero()
	})).Return(nil)

	resp, err := f.svc.Redeem(context.Background(), f.principal, model.RedeemRequest{Points: 9})

	require.NoError(t, err)
	assert.True(t, resp.DiscountAmount.IsZero())
	assert.Equal(t, 9, resp.PointsRedeemed)
	assert.Equal(t, 41, resp.RemainingBalance)
}

func TestRedeem_NothingLeftToPay(t *testing.T) {
	f := newFixture()
	// 1000 + 100 - 1100 đã giữ = 0
	f.cart.RewardPoints = 11000
	f.cart.RewardDiscountAmount = decimal.NewFromInt(1100)
	f.expectTx(false)
	f.cartRepo.On("GetByUserIDForUpdateWithTx", mock.Anything, mock.Anything, f.principal.UserID).Return(f.cart, nil)
	f.repo.On("GetBalanceForUpdateWithTx", mock.Anything, mock.Anything, f.principal.UserID).Return(50, nil)

	_, err := f.svc.Redeem(context.Background(), f.principal, model.RedeemRequest{Points: 50})

	assert.ErrorIs(t, err, model.ErrNothingToRedeem)
	f.repo.AssertNotCalled(t, "AdjustBalanceWithTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRedeem_EmptyCart(t *testing.T) {
	f := newFixture()
	f.expectTx(false)
	f.cartRepo.On("GetByUserIDForUpdateWithTx", mock.Anything, mock.Anything, f.principal.UserID).
		Return(nil, cartModel.ErrCartNotFound)

	_, err := f.svc.Redeem(context.Background(), f.principal, model.RedeemRequest{Points: 50})

	assert.ErrorIs(t, err, model.ErrCartEmpty)
}

func TestRelease_RefundsParkedPoints(t *testing.T) {
	f := newFixture()
	f.cart.RewardPoints = 50
	f.cart.RewardDiscountAmount = decimal.NewFromInt(5)

	f.expectTx(true)
	f.cartRepo.On("GetByUserIDForUpdateWithTx", mock.Anything, mock.Anything, f.principal.UserID).Return(f.cart, nil)
	f.repo.On("AdjustBalanceWithTx", mock.Anything, mock.Anything, f.principal.UserID, 50).Return(50, nil)
	f.repo.On("CreateTransactionWithTx", mock.Anything, mock.Anything, mock.MatchedBy(func(t *model.RewardTransaction) bool {
		return t.Kind == model.KindRefund && t.Points == 50 && t.OrderID == nil
	})).Return(nil)
	f.cartRepo.On("SetRewardWithTx", mock.Anything, mock.Anything, f.cart.ID, 0, decimal.Zero).Return(nil)
	f.repo.On("GetBalanceForUpdateWithTx", mock.Anything, mock.Anything, f.principal.UserID).Return(50, nil)

	resp, err := f.svc.Release(context.Background(), f.principal)

	require.NoError(t, err)
	assert.Equal(t, 50, resp.PointsReleased)
	assert.Equal(t, 50, resp.Balance)
}

func TestRelease_NothingParked(t *testing.T) {
	f := newFixture()
	f.expectTx(false)
	f.cartRepo.On("GetByUserIDForUpdateWithTx", mock.Anything, mock.Anything, f.principal.UserID).Return(f.cart, nil)

	_, err := f.svc.Release(context.Background(), f.principal)

	assert.ErrorIs(t, err, model.ErrNothingToRelease)
}

func TestAccrueWithTx(t *testing.T) {
	f := newFixture()
	orderID := uuid.New()
	f.repo.On("AdjustBalanceWithTx", mock.Anything, mock.Anything, f.principal.UserID, 11).Return(11, nil)
	f.repo.On("CreateTransactionWithTx", mock.Anything, mock.Anything, mock.MatchedBy(func(t *model.RewardTransaction) bool {
		return t.Kind == model.KindAccrual && t.Points == 11 && *t.OrderID == orderID
	})).Return(nil)

	points, err := f.svc.AccrueWithTx(context.Background(), nil, f.principal.UserID, orderID, decimal.RequireFromString("1195"))

	require.NoError(t, err)
	assert.Equal(t, 11, points)
}

func TestAccrueWithTx_SmallOrderEarnsNothing(t *testing.T) {
	f := newFixture()

	points, err := f.svc.AccrueWithTx(context.Background(), nil, f.principal.UserID, uuid.New(), decimal.NewFromInt(99))

	require.NoError(t, err)
	assert.Zero(t, points)
	f.repo.AssertNotCalled(t, "AdjustBalanceWithTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRefundWithTx_ZeroIsNoop(t *testing.T) {
	f := newFixture()

	require.NoError(t, f.svc.RefundWithTx(context.Background(), nil, f.principal.UserID, nil, 0))
	f.repo.AssertNotCalled(t, "AdjustBalanceWithTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
