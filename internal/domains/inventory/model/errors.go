package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ===================================
// DOMAIN ERRORS
// ===================================

var (
	ErrProductNotFound = errors.New("product not found")

	// ErrInsufficientStock is matched by errors.Is on *InsufficientStockError
	ErrInsufficientStock = errors.New("insufficient stock")

	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// InsufficientStockError nêu rõ sản phẩm nào thiếu hàng
type InsufficientStockError struct {
	ProductID   uuid.UUID
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	if e.Available <= 0 {
		return fmt.Sprintf("%s is out of stock", e.ProductName)
	}
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d",
		e.ProductName, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// NewProductNotFoundError creates a detailed not found error
func NewProductNotFoundError(id uuid.UUID) error {
	return fmt.Errorf("%w: id=%s", ErrProductNotFound, id)
}
