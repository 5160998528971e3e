package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product là một mặt hàng có tồn kho (products.stock CHECK >= 0)
type Product struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// InStock: còn hàng và đủ số lượng yêu cầu
func (p *Product) InStock(quantity int) bool {
	return p.Stock > 0 && p.Stock >= quantity
}

// StockLine là một dòng cần trừ / hoàn kho
type StockLine struct {
	ProductID uuid.UUID
	Quantity  int
}

// MergeLines gộp các dòng trùng product để mỗi row chỉ bị update một lần
func MergeLines(lines []StockLine) []StockLine {
	index := make(map[uuid.UUID]int, len(lines))
	merged := make([]StockLine, 0, len(lines))
	for _, l := range lines {
		if i, ok := index[l.ProductID]; ok {
			merged[i].Quantity += l.Quantity
			continue
		}
		index[l.ProductID] = len(merged)
		merged = append(merged, l)
	}
	return merged
}
