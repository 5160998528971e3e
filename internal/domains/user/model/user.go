package model

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"storefront-backend/internal/shared/auth"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type User struct {
	ID           uuid.UUID   `json:"id"`
	Email        string      `json:"email"`
	FullName     string      `json:"full_name"`
	PasswordHash string      `json:"-"`
	Role         auth.Role   `json:"role"`
	RewardPoints int         `json:"reward_points"`
	OrderHistory []uuid.UUID `json:"order_history"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// UserDTO - không expose password hash
type UserDTO struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	Role         auth.Role `json:"role"`
	RewardPoints int       `json:"reward_points"`
	OrderCount   int       `json:"order_count"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *User) ToDTO() UserDTO {
	return UserDTO{
		ID:           u.ID,
		Email:        u.Email,
		FullName:     u.FullName,
		Role:         u.Role,
		RewardPoints: u.RewardPoints,
		OrderCount:   len(u.OrderHistory),
		CreatedAt:    u.CreatedAt,
	}
}
