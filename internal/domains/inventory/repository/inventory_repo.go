package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-backend/internal/domains/inventory/model"
	"storefront-backend/internal/infrastructure/database"
)

// postgresRepository implements RepositoryInterface
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{
		pool: pool,
	}
}

const productColumns = `id, name, category, price, stock, created_at, updated_at`

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepository) Create(ctx context.Context, product *model.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}

	query := `
		INSERT INTO products (id, name, category, price, stock)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		product.ID, product.Name, product.Category, product.Price, product.Stock,
	).Scan(&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewProductNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return p, nil
}

func (r *postgresRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]model.Product, error) {
	result := make(map[uuid.UUID]model.Product, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1)`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		result[p.ID] = *p
	}
	return result, rows.Err()
}

func (r *postgresRepository) List(ctx context.Context, filter model.ListProductsRequest) ([]model.Product, int, error) {
	filter.Normalize()
	offset := (filter.Page - 1) * filter.Limit

	var total int
	countQuery := `SELECT COUNT(*) FROM products WHERE ($1 = '' OR category = $1)`
	if err := r.pool.QueryRow(ctx, countQuery, filter.Category).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE ($1 = '' OR category = $1)
		ORDER BY name
		LIMIT $2 OFFSET $3
	`
	rows, err := r.pool.Query(ctx, query, filter.Category, filter.Limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := make([]model.Product, 0, filter.Limit)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}
	return products, total, rows.Err()
}

func (r *postgresRepository) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*model.Product, error) {
	query := `
		UPDATE products
		SET stock = stock + $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + productColumns

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id, delta))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewProductNotFoundError(id)
		}
		// products_stock_check: stock không được âm
		if database.IsCheckViolation(err) {
			return nil, fmt.Errorf("%w: adjustment %d would make stock negative", model.ErrInsufficientStock, delta)
		}
		return nil, fmt.Errorf("failed to adjust stock: %w", err)
	}
	return p, nil
}

// ========================================
// CHECKOUT
// ========================================

func (r *postgresRepository) DecrementStockWithTx(ctx context.Context, tx pgx.Tx, lines []model.StockLine) error {
	lines = model.MergeLines(lines)
	if len(lines) == 0 {
		return nil
	}

	// 1. Lock rows theo thứ tự id để hai checkout đồng thời không deadlock
	locked, err := r.lockProducts(ctx, tx, lines)
	if err != nil {
		return err
	}

	// 2. Kiểm tra TẤT CẢ dòng trước khi trừ dòng nào
	for _, line := range lines {
		if line.Quantity <= 0 {
			return fmt.Errorf("%w: product %s", model.ErrInvalidQuantity, line.ProductID)
		}
		p, ok := locked[line.ProductID]
		if !ok {
			return model.NewProductNotFoundError(line.ProductID)
		}
		if !p.InStock(line.Quantity) {
			return &model.InsufficientStockError{
				ProductID:   p.ID,
				ProductName: p.Name,
				Requested:   line.Quantity,
				Available:   p.Stock,
			}
		}
	}

	// 3. Trừ kho
	for _, line := range lines {
		_, err := tx.Exec(ctx, `
			UPDATE products
			SET stock = stock - $2, updated_at = NOW()
			WHERE id = $1
		`, line.ProductID, line.Quantity)
		if err != nil {
			return fmt.Errorf("failed to decrement stock for %s: %w", line.ProductID, err)
		}
	}

	return nil
}

func (r *postgresRepository) RestockWithTx(ctx context.Context, tx pgx.Tx, lines []model.StockLine) error {
	lines = model.MergeLines(lines)
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].ProductID.String() < lines[j].ProductID.String()
	})

	for _, line := range lines {
		tag, err := tx.Exec(ctx, `
			UPDATE products
			SET stock = stock + $2, updated_at = NOW()
			WHERE id = $1
		`, line.ProductID, line.Quantity)
		if err != nil {
			return fmt.Errorf("failed to restock %s: %w", line.ProductID, err)
		}
		if tag.RowsAffected() == 0 {
			return model.NewProductNotFoundError(line.ProductID)
		}
	}
	return nil
}

func (r *postgresRepository) lockProducts(ctx context.Context, tx pgx.Tx, lines []model.StockLine) (map[uuid.UUID]model.Product, error) {
	ids := make([]uuid.UUID, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ProductID)
	}

	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE
	`
	rows, err := tx.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to lock products: %w", err)
	}
	defer rows.Close()

	locked := make(map[uuid.UUID]model.Product, len(ids))
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked product: %w", err)
		}
		locked[p.ID] = *p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to lock products: %w", err)
	}
	return locked, nil
}
