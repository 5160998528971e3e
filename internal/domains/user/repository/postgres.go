package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-backend/internal/domains/user/model"
	"storefront-backend/internal/infrastructure/database"
	"storefront-backend/internal/shared"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

const userColumns = `id, email, full_name, password_hash, role, reward_points, order_history, created_at, updated_at`

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.PasswordHash, &u.Role,
		&u.RewardPoints, &u.OrderHistory, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *postgresRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (id, email, full_name, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING reward_points, order_history, created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		user.ID, user.Email, user.FullName, user.PasswordHash, user.Role,
	).Scan(&user.RewardPoints, &user.OrderHistory, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err, "users_email_key") {
			return model.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r *postgresRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

func (r *postgresRepository) GetBasicInfo(ctx context.Context, id uuid.UUID) (*shared.UserBasicInfo, error) {
	var info shared.UserBasicInfo
	err := r.pool.QueryRow(ctx,
		`SELECT id::text, email, full_name FROM users WHERE id = $1`, id,
	).Scan(&info.ID, &info.Email, &info.FullName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user info: %w", err)
	}
	return &info, nil
}

func (r *postgresRepository) AppendOrderHistoryWithTx(ctx context.Context, tx pgx.Tx, userID, orderID uuid.UUID) error {
	tag, err := tx.Exec(ctx, `
		UPDATE users
		SET order_history = array_append(order_history, $2), updated_at = NOW()
		WHERE id = $1
	`, userID, orderID)
	if err != nil {
		return fmt.Errorf("append order history: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}
	return nil
}
