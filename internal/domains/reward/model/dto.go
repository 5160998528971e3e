package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

type RedeemRequest struct {
	Points int `json:"points"`
}

// Validate chỉ kiểm tra format; points <= 0 được service trả ErrInvalidPoints
func (r RedeemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Points, validation.Max(10_000_000)),
	)
}

type RedeemResponse struct {
	DiscountAmount   decimal.Decimal `json:"discount_amount"`
	PointsRedeemed   int             `json:"points_redeemed"`
	RemainingBalance int             `json:"remaining_balance"`
}

type ReleaseResponse struct {
	PointsReleased int `json:"points_released"`
	Balance        int `json:"balance"`
}

type BalanceResponse struct {
	Balance      int                 `json:"balance"`
	Transactions []RewardTransaction `json:"transactions"`
}
