package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestMergeLines(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	merged := MergeLines([]StockLine{
		{ProductID: a, Quantity: 1},
		{ProductID: b, Quantity: 2},
		{ProductID: a, Quantity: 3},
	})

	assert.Equal(t, []StockLine{
		{ProductID: a, Quantity: 4},
		{ProductID: b, Quantity: 2},
	}, merged)
}

func TestProduct_InStock(t *testing.T) {
	p := Product{Stock: 3}
	assert.True(t, p.InStock(3))
	assert.False(t, p.InStock(4))

	empty := Product{Stock: 0}
	assert.False(t, empty.InStock(0))
}

func TestInsufficientStockError(t *testing.T) {
	err := fmt.Errorf("checkout: %w", &InsufficientStockError{
		ProductName: "Desk Lamp",
		Requested:   3,
		Available:   1,
	})

	assert.True(t, errors.Is(err, ErrInsufficientStock))
	assert.Contains(t, err.Error(), "Desk Lamp")

	var stockErr *InsufficientStockError
	assert.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 1, stockErr.Available)

	out := &InsufficientStockError{ProductName: "Kettle", Requested: 1}
	assert.Equal(t, "Kettle is out of stock", out.Error())
}
