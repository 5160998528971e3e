package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront-backend/internal/domains/discount/model"
	"storefront-backend/internal/shared/auth"
)

type mockService struct{ mock.Mock }

func (m *mockService) ValidateAndApply(ctx context.Context, p auth.Principal, req model.ValidateDiscountRequest) (*model.ValidateDiscountResponse, error) {
	args := m.Called(ctx, p, req)
	resp, _ := args.Get(0).(*model.ValidateDiscountResponse)
	return resp, args.Error(1)
}

func (m *mockService) CreateDiscount(ctx context.Context, req model.CreateDiscountRequest) (*model.Discount, error) {
	args := m.Called(ctx, req)
	d, _ := args.Get(0).(*model.Discount)
	return d, args.Error(1)
}

func (m *mockService) ListDiscounts(ctx context.Context, req model.ListDiscountsRequest) ([]model.Discount, int, error) {
	args := m.Called(ctx, req)
	list, _ := args.Get(0).([]model.Discount)
	return list, args.Int(1), args.Error(2)
}

func (m *mockService) DeactivateDiscount(ctx context.Context, code string) (*model.Discount, error) {
	args := m.Called(ctx, code)
	d, _ := args.Get(0).(*model.Discount)
	return d, args.Error(1)
}

func setup(svc *mockService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	principal := auth.Principal{UserID: uuid.New(), Role: auth.RoleCustomer}
	r.Use(func(c *gin.Context) {
		c.Set("principal", principal)
		c.Next()
	})
	r.POST("/discounts/validate", NewPublicHandler(svc).ValidateDiscount)
	NewAdminHandler(svc).RegisterRoutes(r.Group("/admin"))
	return r
}

type envelope struct {
	Success bool `json:"success"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func TestValidateDiscount_ErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{model.ErrDiscountAlreadyUsed, http.StatusBadRequest, "DSC002"},
		{model.ErrDiscountNotApplicable, http.StatusBadRequest, "DSC003"},
		{model.ErrDiscountNotFound, http.StatusNotFound, "DSC001"},
		{assert.AnError, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		svc := new(mockService)
		svc.On("ValidateAndApply", mock.Anything, mock.Anything, model.ValidateDiscountRequest{Code: "SAVE10"}).Return(nil, tt.err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/discounts/validate", strings.NewReader(`{"code":"SAVE10"}`))
		req.Header.Set("Content-Type", "application/json")
		setup(svc).ServeHTTP(w, req)

		assert.Equal(t, tt.status, w.Code)
		var body envelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.False(t, body.Success)
		assert.Equal(t, tt.code, body.Error.Code)
		// lỗi hệ thống không lộ message gốc
		assert.NotContains(t, body.Error.Message, assert.AnError.Error())
	}
}

func TestDeactivateDiscount(t *testing.T) {
	svc := new(mockService)
	svc.On("DeactivateDiscount", mock.Anything, "SAVE10").Return(&model.Discount{Code: "SAVE10"}, nil)

	w := httptest.NewRecorder()
	setup(svc).ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/admin/discounts/SAVE10/deactivate", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}
