package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-backend/internal/domains/reward/model"
	"storefront-backend/internal/infrastructure/database"
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

func (r *postgresRepository) GetBalance(ctx context.Context, userID uuid.UUID) (int, error) {
	var balance int
	err := r.pool.QueryRow(ctx, `SELECT reward_points FROM users WHERE id = $1`, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, model.ErrUserNotFound
		}
		return 0, fmt.Errorf("get reward balance: %w", err)
	}
	return balance, nil
}

func (r *postgresRepository) ListTransactions(ctx context.Context, userID uuid.UUID, limit int) ([]model.RewardTransaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, order_id, kind, points, created_at
		FROM reward_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list reward transactions: %w", err)
	}
	defer rows.Close()

	txs := make([]model.RewardTransaction, 0)
	for rows.Next() {
		var t model.RewardTransaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.OrderID, &t.Kind, &t.Points, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan reward transaction: %w", err)
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

func (r *postgresRepository) GetBalanceForUpdateWithTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (int, error) {
	var balance int
	err := tx.QueryRow(ctx, `SELECT reward_points FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, model.ErrUserNotFound
		}
		return 0, fmt.Errorf("lock reward balance: %w", err)
	}
	return balance, nil
}

func (r *postgresRepository) AdjustBalanceWithTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID, delta int) (int, error) {
	var balance int
	err := tx.QueryRow(ctx, `
		UPDATE users
		SET reward_points = reward_points + $2, updated_at = NOW()
		WHERE id = $1
		RETURNING reward_points
	`, userID, delta).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, model.ErrUserNotFound
		}
		if database.IsCheckViolation(err) {
			return 0, model.ErrInsufficientPoints
		}
		return 0, fmt.Errorf("adjust reward balance: %w", err)
	}
	return balance, nil
}

func (r *postgresRepository) CreateTransactionWithTx(ctx context.Context, tx pgx.Tx, t *model.RewardTransaction) error {
	err := tx.QueryRow(ctx, `
		INSERT INTO reward_transactions (user_id, order_id, kind, points)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, t.UserID, t.OrderID, t.Kind, t.Points).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert reward transaction: %w", err)
	}
	return nil
}
