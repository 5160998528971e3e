package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"storefront-backend/internal/domains/user/model"
	"storefront-backend/internal/domains/user/repository/mocks"
	"storefront-backend/internal/shared/auth"
)

type stubTokens struct{}

func (stubTokens) GenerateAccessToken(userID, email, role string) (string, error) {
	return "token-" + role, nil
}

func newTestService(repo *mocks.Repository) *userService {
	s := NewUserService(repo, stubTokens{}, 15*time.Minute).(*userService)
	s.hashCost = bcrypt.MinCost
	return s
}

func TestRegister(t *testing.T) {
	repo := new(mocks.Repository)
	svc := newTestService(repo)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Email == "ana@example.com" && u.Role == auth.RoleCustomer && u.PasswordHash != "secret123"
	})).Return(nil)

	dto, err := svc.Register(context.Background(), model.RegisterRequest{
		Email:    "  Ana@Example.com ",
		Password: "secret123",
		FullName: "Ana",
	})

	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", dto.Email)
	repo.AssertExpectations(t)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := new(mocks.Repository)
	svc := newTestService(repo)
	repo.On("Create", mock.Anything, mock.Anything).Return(model.ErrEmailAlreadyExists)

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Email: "ana@example.com", Password: "secret123", FullName: "Ana",
	})
	assert.ErrorIs(t, err, model.ErrEmailAlreadyExists)
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.User{ID: uuid.New(), Email: "ana@example.com", PasswordHash: string(hash), Role: auth.RoleAdmin}

	t.Run("success", func(t *testing.T) {
		repo := new(mocks.Repository)
		repo.On("FindByEmail", mock.Anything, "ana@example.com").Return(u, nil)

		resp, err := newTestService(repo).Login(context.Background(), model.LoginRequest{
			Email: "ana@example.com", Password: "secret123",
		})
		require.NoError(t, err)
		assert.Equal(t, "token-admin", resp.AccessToken)
		assert.Equal(t, u.ID, resp.User.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(mocks.Repository)
		repo.On("FindByEmail", mock.Anything, "ana@example.com").Return(u, nil)

		_, err := newTestService(repo).Login(context.Background(), model.LoginRequest{
			Email: "ana@example.com", Password: "nope-nope",
		})
		assert.ErrorIs(t, err, model.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		repo := new(mocks.Repository)
		repo.On("FindByEmail", mock.Anything, "who@example.com").Return(nil, model.ErrUserNotFound)

		_, err := newTestService(repo).Login(context.Background(), model.LoginRequest{
			Email: "who@example.com", Password: "secret123",
		})
		assert.ErrorIs(t, err, model.ErrInvalidCredentials)
	})
}
