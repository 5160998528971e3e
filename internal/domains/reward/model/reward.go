package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionKind string

const (
	KindAccrual TransactionKind = "accrual"
	KindRedeem  TransactionKind = "redeem"
	KindRefund  TransactionKind = "refund"
)

// RewardTransaction: audit cho mọi biến động điểm
type RewardTransaction struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	OrderID   *uuid.UUID      `json:"order_id,omitempty"`
	Kind      TransactionKind `json:"kind"`
	Points    int             `json:"points"`
	CreatedAt time.Time       `json:"created_at"`
}

// ========================================
// LEDGER MATH (thuần, không I/O)
// ========================================

// PointsToDiscount = floor(points / pointsPerUnit)
func PointsToDiscount(points, pointsPerUnit int) decimal.Decimal {
	if points <= 0 || pointsPerUnit <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(points / pointsPerUnit))
}

// ClampRedemption giới hạn số tiền giảm không vượt quá payable (làm tròn xuống đơn vị tiền).
// Không bị cắt: trừ đủ số điểm yêu cầu. Bị cắt: chỉ trừ số điểm ứng với số tiền giảm thực tế.
func ClampRedemption(points int, payable decimal.Decimal, pointsPerUnit int) (discount decimal.Decimal, debited int) {
	if points <= 0 {
		return decimal.Zero, 0
	}
	discount = PointsToDiscount(points, pointsPerUnit)

	maxDiscount := payable.Floor()
	if maxDiscount.IsNegative() {
		maxDiscount = decimal.Zero
	}
	if discount.GreaterThan(maxDiscount) {
		return maxDiscount, int(maxDiscount.IntPart()) * pointsPerUnit
	}

	return discount, points
}

// AccrualPoints = floor(total / accrualUnit)
func AccrualPoints(total decimal.Decimal, accrualUnit int) int {
	if accrualUnit <= 0 || !total.IsPositive() {
		return 0
	}
	return int(total.Div(decimal.NewFromInt(int64(accrualUnit))).Floor().IntPart())
}
