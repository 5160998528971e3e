package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"storefront-backend/internal/domains/user/model"
	"storefront-backend/internal/domains/user/repository"
	"storefront-backend/internal/shared/auth"
	"storefront-backend/pkg/logger"
)

// TokenIssuer là phần của jwt.Manager mà user service cần
type TokenIssuer interface {
	GenerateAccessToken(userID, email, role string) (string, error)
}

type ServiceInterface interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.UserDTO, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)
	GetProfile(ctx context.Context, principal auth.Principal) (*model.UserDTO, error)
}

type userService struct {
	repo     repository.RepositoryInterface
	tokens   TokenIssuer
	tokenTTL time.Duration
	hashCost int
}

func NewUserService(repo repository.RepositoryInterface, tokens TokenIssuer, tokenTTL time.Duration) ServiceInterface {
	return &userService{
		repo:     repo,
		tokens:   tokens,
		tokenTTL: tokenTTL,
		hashCost: 12,
	}
}

// ========================================
// AUTHENTICATION
// ========================================

func (s *userService) Register(ctx context.Context, req model.RegisterRequest) (*model.UserDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &model.User{
		ID:           uuid.New(),
		Email:        req.Email,
		FullName:     strings.TrimSpace(req.FullName),
		PasswordHash: string(passwordHash),
		Role:         auth.RoleCustomer,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	logger.Info("User registered", map[string]interface{}{"user_id": u.ID})
	dto := u.ToDTO()
	return &dto, nil
}

func (s *userService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		// không cho attacker biết email có tồn tại hay không
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(u.ID.String(), u.Email, string(u.Role))
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	return &model.LoginResponse{
		AccessToken: token,
		ExpiresAt:   time.Now().Add(s.tokenTTL),
		User:        u.ToDTO(),
	}, nil
}

func (s *userService) GetProfile(ctx context.Context, principal auth.Principal) (*model.UserDTO, error) {
	u, err := s.repo.GetByID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	dto := u.ToDTO()
	return &dto, nil
}
