package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"storefront-backend/internal/domains/inventory/model"
)

// RepositoryInterface defines the contract for product stock data access
type RepositoryInterface interface {
	Create(ctx context.Context, product *model.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// GetByIDs trả về map theo id; id không tồn tại thì không có trong map
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]model.Product, error)
	List(ctx context.Context, filter model.ListProductsRequest) ([]model.Product, int, error)

	// AdjustStock cộng delta vào stock, trả ErrInsufficientStock nếu kết quả < 0
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*model.Product, error)

	// ========================================
	// CHECKOUT (chạy trong tx của order)
	// ========================================

	// DecrementStockWithTx khoá tất cả rows (FOR UPDATE, theo thứ tự id),
	// kiểm tra đủ hàng cho mọi dòng rồi mới trừ. Lỗi -> caller rollback, không có trừ kho một phần.
	// Returns *model.InsufficientStockError nêu tên sản phẩm thiếu
	DecrementStockWithTx(ctx context.Context, tx pgx.Tx, lines []model.StockLine) error

	// RestockWithTx hoàn kho khi order bị huỷ
	RestockWithTx(ctx context.Context, tx pgx.Tx, lines []model.StockLine) error
}
