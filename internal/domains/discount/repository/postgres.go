package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-backend/internal/domains/discount/model"
	"storefront-backend/internal/infrastructure/database"
)

const (
	usedDiscountsUniqueKey = "used_discounts_user_code_key"
	discountsCodeKey       = "discounts_code_key"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

func (r *postgresRepository) CommitTx(ctx context.Context, tx pgx.Tx) error {
	return tx.Commit(ctx)
}

func (r *postgresRepository) RollbackTx(ctx context.Context, tx pgx.Tx) error {
	err := tx.Rollback(ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return nil
	}
	return err
}

const discountColumns = `id, code, type, value, category, starts_at, ends_at, is_active, created_at, updated_at`

func scanDiscount(row pgx.Row) (*model.Discount, error) {
	var d model.Discount
	err := row.Scan(&d.ID, &d.Code, &d.Type, &d.Value, &d.Category,
		&d.StartsAt, &d.EndsAt, &d.IsActive, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *postgresRepository) GetByCode(ctx context.Context, code string) (*model.Discount, error) {
	query := `SELECT ` + discountColumns + ` FROM discounts WHERE UPPER(code) = UPPER($1)`

	d, err := scanDiscount(r.pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrDiscountNotFound
		}
		return nil, fmt.Errorf("get discount by code: %w", err)
	}
	return d, nil
}

func (r *postgresRepository) HasUsed(ctx context.Context, userID uuid.UUID, code string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM used_discounts WHERE user_id = $1 AND discount_code = $2
		)
	`, userID, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check discount usage: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) CreateUsageWithTx(ctx context.Context, tx pgx.Tx, usage *model.UsedDiscount) error {
	if usage.ID == uuid.Nil {
		usage.ID = uuid.New()
	}

	err := tx.QueryRow(ctx, `
		INSERT INTO used_discounts (id, user_id, discount_code, discount_amount)
		VALUES ($1, $2, $3, $4)
		RETURNING used_at
	`, usage.ID, usage.UserID, usage.DiscountCode, usage.DiscountAmount).Scan(&usage.UsedAt)
	if err != nil {
		if database.IsUniqueViolation(err, usedDiscountsUniqueKey) {
			return model.ErrDiscountAlreadyUsed
		}
		return fmt.Errorf("create discount usage: %w", err)
	}
	return nil
}

// ========================================
// ADMIN
// ========================================

func (r *postgresRepository) Create(ctx context.Context, d *model.Discount) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}

	err := r.pool.QueryRow(ctx, `
		INSERT INTO discounts (id, code, type, value, category, starts_at, ends_at, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`, d.ID, d.Code, d.Type, d.Value, d.Category, d.StartsAt, d.EndsAt, d.IsActive,
	).Scan(&d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err, discountsCodeKey) {
			return model.ErrDiscountCodeExists
		}
		return fmt.Errorf("create discount: %w", err)
	}
	return nil
}

func (r *postgresRepository) List(ctx context.Context, req model.ListDiscountsRequest) ([]model.Discount, int, error) {
	req.Normalize()
	offset := (req.Page - 1) * req.Limit

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM discounts WHERE ($1 = FALSE OR is_active)`, req.ActiveOnly,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count discounts: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+discountColumns+`
		FROM discounts
		WHERE ($1 = FALSE OR is_active)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, req.ActiveOnly, req.Limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list discounts: %w", err)
	}
	defer rows.Close()

	discounts := make([]model.Discount, 0, req.Limit)
	for rows.Next() {
		d, err := scanDiscount(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan discount: %w", err)
		}
		discounts = append(discounts, *d)
	}
	return discounts, total, rows.Err()
}

func (r *postgresRepository) Deactivate(ctx context.Context, code string) (*model.Discount, error) {
	d, err := scanDiscount(r.pool.QueryRow(ctx, `
		UPDATE discounts
		SET is_active = FALSE, updated_at = NOW()
		WHERE UPPER(code) = UPPER($1)
		RETURNING `+discountColumns, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrDiscountNotFound
		}
		return nil, fmt.Errorf("deactivate discount: %w", err)
	}
	return d, nil
}
