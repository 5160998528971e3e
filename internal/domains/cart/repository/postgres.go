package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"storefront-backend/internal/domains/cart/model"
	"storefront-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

// querier: pool hoặc tx
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

const cartColumns = `id, user_id, discount_code, discount_amount, reward_points, reward_discount_amount, updated_at`

func (r *postgresRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	return loadCart(ctx, r.pool, `SELECT `+cartColumns+` FROM carts WHERE user_id = $1`, userID)
}

func (r *postgresRepository) GetOrCreateByUserID(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO carts (user_id) VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("create cart: %w", err)
	}
	return r.GetByUserID(ctx, userID)
}

// Item write + touch cart trong cùng một transaction
func (r *postgresRepository) UpsertItem(ctx context.Context, cartID, productID uuid.UUID, quantity int) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO cart_items (cart_id, product_id, quantity)
			VALUES ($1, $2, $3)
			ON CONFLICT (cart_id, product_id) DO UPDATE SET quantity = EXCLUDED.quantity
		`, cartID, productID, quantity)
		if err != nil {
			return fmt.Errorf("upsert cart item: %w", err)
		}
		return touch(ctx, tx, cartID)
	})
}

func (r *postgresRepository) RemoveItem(ctx context.Context, cartID, productID uuid.UUID) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1 AND product_id = $2`, cartID, productID)
		if err != nil {
			return fmt.Errorf("remove cart item: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrItemNotInCart
		}
		return touch(ctx, tx, cartID)
	})
}

func touch(ctx context.Context, tx pgx.Tx, cartID uuid.UUID) error {
	if _, err := tx.Exec(ctx, `UPDATE carts SET updated_at = NOW() WHERE id = $1`, cartID); err != nil {
		return fmt.Errorf("touch cart: %w", err)
	}
	return nil
}

// ========================================
// TRANSACTIONAL
// ========================================

func (r *postgresRepository) GetByUserIDForUpdateWithTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (*model.Cart, error) {
	return loadCart(ctx, tx, `SELECT `+cartColumns+` FROM carts WHERE user_id = $1 FOR UPDATE`, userID)
}

func (r *postgresRepository) AttachDiscountWithTx(ctx context.Context, tx pgx.Tx, cartID uuid.UUID, code string, amount decimal.Decimal) error {
	_, err := tx.Exec(ctx, `
		UPDATE carts
		SET discount_code = $2, discount_amount = $3, updated_at = NOW()
		WHERE id = $1
	`, cartID, code, amount)
	if err != nil {
		return fmt.Errorf("attach discount: %w", err)
	}
	return nil
}

func (r *postgresRepository) SetRewardWithTx(ctx context.Context, tx pgx.Tx, cartID uuid.UUID, points int, amount decimal.Decimal) error {
	_, err := tx.Exec(ctx, `
		UPDATE carts
		SET reward_points = $2, reward_discount_amount = $3, updated_at = NOW()
		WHERE id = $1
	`, cartID, points, amount)
	if err != nil {
		return fmt.Errorf("set cart reward: %w", err)
	}
	return nil
}

func (r *postgresRepository) ClearWithTx(ctx context.Context, tx pgx.Tx, cartID uuid.UUID) error {
	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return fmt.Errorf("clear cart items: %w", err)
	}
	_, err := tx.Exec(ctx, `
		UPDATE carts
		SET discount_code = NULL, discount_amount = 0,
		    reward_points = 0, reward_discount_amount = 0,
		    updated_at = NOW()
		WHERE id = $1
	`, cartID)
	if err != nil {
		return fmt.Errorf("reset cart: %w", err)
	}
	return nil
}

func loadCart(ctx context.Context, q querier, query string, userID uuid.UUID) (*model.Cart, error) {
	var c model.Cart
	err := q.QueryRow(ctx, query, userID).Scan(
		&c.ID, &c.UserID, &c.DiscountCode, &c.DiscountAmount,
		&c.RewardPoints, &c.RewardDiscountAmount, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCartNotFound
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}

	rows, err := q.Query(ctx, `
		SELECT ci.product_id, p.name, p.category, p.price, ci.quantity
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.added_at, ci.product_id
	`, c.ID)
	if err != nil {
		return nil, fmt.Errorf("get cart items: %w", err)
	}
	defer rows.Close()

	c.Items = make([]model.CartItem, 0)
	for rows.Next() {
		var item model.CartItem
		if err := rows.Scan(&item.ProductID, &item.ProductName, &item.Category, &item.UnitPrice, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		c.Items = append(c.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cart items: %w", err)
	}

	return &c, nil
}
