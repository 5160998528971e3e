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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	invenModel "storefront-backend/internal/domains/inventory/model"
	"storefront-backend/internal/domains/order/model"
	"storefront-backend/internal/shared/auth"
)

type mockOrderService struct{ mock.Mock }

func (m *mockOrderService) CreateOrder(ctx context.Context, p auth.Principal, req model.CreateOrderRequest) (*model.CreateOrderResponse, error) {
	args := m.Called(ctx, p, req)
	resp, _ := args.Get(0).(*model.CreateOrderResponse)
	return resp, args.Error(1)
}

func (m *mockOrderService) GetOrder(ctx context.Context, p auth.Principal, id uuid.UUID) (*model.OrderDetailResponse, error) {
	args := m.Called(ctx, p, id)
	resp, _ := args.Get(0).(*model.OrderDetailResponse)
	return resp, args.Error(1)
}

func (m *mockOrderService) ListOrders(ctx context.Context, p auth.Principal, req model.ListOrdersRequest) ([]model.Order, int, error) {
	args := m.Called(ctx, p, req)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Int(1), args.Error(2)
}

func (m *mockOrderService) UpdateStatus(ctx context.Context, p auth.Principal, id uuid.UUID, req model.UpdateStatusRequest) (*model.Order, error) {
	args := m.Called(ctx, p, id, req)
	o, _ := args.Get(0).(*model.Order)
	return o, args.Error(1)
}

func (m *mockOrderService) ListAllOrders(ctx context.Context, req model.ListOrdersRequest) ([]model.Order, int, error) {
	args := m.Called(ctx, req)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Int(1), args.Error(2)
}

func (m *mockOrderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockOrderService) ExportOrders(ctx context.Context, req model.ExportOrdersRequest) (*model.ExportOrdersResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*model.ExportOrdersResponse)
	return resp, args.Error(1)
}

func (m *mockOrderService) AutoProcess(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockOrderService) SweepAutoProcess(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockOrderService) HandleShippingUpdate(ctx context.Context, u model.ShippingUpdate) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockOrderService) HandlePaymentEvent(ctx context.Context, e model.PaymentEvent) error {
	return m.Called(ctx, e).Error(0)
}

var customer = auth.Principal{UserID: uuid.New(), Email: "buyer@example.com", Role: auth.RoleCustomer}

func setupRouter(svc *mockOrderService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("principal", customer)
		c.Next()
	})
	h := NewOrderHandler(svc)
	h.RegisterRoutes(r.Group(""))
	h.RegisterAdminRoutes(r.Group("/admin"))
	r.POST("/webhooks/shipping", NewShippingWebhookHandler(svc).Handle)
	return r
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta *struct {
		Page  int `json:"page"`
		Limit int `json:"limit"`
		Total int `json:"total"`
	} `json:"meta"`
}

func do(t *testing.T, r http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func TestCreateOrder_Created(t *testing.T) {
	svc := new(mockOrderService)
	svc.On("CreateOrder", mock.Anything, customer, model.CreateOrderRequest{PaymentMethod: model.PaymentMethodCOD}).
		Return(&model.CreateOrderResponse{
			OrderID: uuid.New(),
			Status:  model.OrderStatusConfirmed,
			Total:   decimal.NewFromInt(995),
		}, nil)

	w, env := do(t, setupRouter(svc), http.MethodPost, "/order", `{"payment_method":"cod"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp model.CreateOrderResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(995)))
	assert.Equal(t, model.OrderStatusConfirmed, resp.Status)
}

func TestCreateOrder_MalformedBody(t *testing.T) {
	svc := new(mockOrderService)

	w, env := do(t, setupRouter(svc), http.MethodPost, "/order", `{"payment_method":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	svc.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateOrder_ErrorMapping(t *testing.T) {
	stockErr := &invenModel.InsufficientStockError{ProductName: "Fountain Pen", Requested: 3, Available: 2}

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"insufficient stock", model.NewOrderError(model.ErrCodeInsufficientStock, stockErr.Error(), stockErr), http.StatusBadRequest, "ORD004"},
		{"empty cart", model.NewOrderError(model.ErrCodeCartEmpty, "Cart is empty", model.ErrCartEmpty), http.StatusBadRequest, "ORD005"},
		{"product gone", model.NewOrderError(model.ErrCodeProductNotFound, "gone", invenModel.ErrProductNotFound), http.StatusNotFound, "ORD012"},
		{"unexpected", assert.AnError, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockOrderService)
			svc.On("CreateOrder", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			w, env := do(t, setupRouter(svc), http.MethodPost, "/order", `{"payment_method":"online"}`)

			assert.Equal(t, tt.status, w.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
		})
	}
}

func TestCreateOrder_InsufficientStockNamesProduct(t *testing.T) {
	stockErr := &invenModel.InsufficientStockError{ProductName: "Fountain Pen", Requested: 3, Available: 2}
	svc := new(mockOrderService)
	svc.On("CreateOrder", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, model.NewOrderError(model.ErrCodeInsufficientStock, stockErr.Error(), stockErr))

	_, env := do(t, setupRouter(svc), http.MethodPost, "/order", `{"payment_method":"cod"}`)

	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Message, "Fountain Pen")
}

func TestUpdateStatus_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", model.ErrOrderNotFound, http.StatusNotFound, "ORD001"},
		{"forbidden", model.NewOrderError(model.ErrCodeForbidden, "no", model.ErrForbidden), http.StatusForbidden, "ORD007"},
		{"stale version", model.NewOrderError(model.ErrCodeVersionMismatch, "stale", model.ErrVersionMismatch), http.StatusConflict, "ORD003"},
		{"cannot cancel", model.NewOrderError(model.ErrCodeOrderCannotCancel, "shipped", model.ErrOrderCannotCancel), http.StatusBadRequest, "ORD002"},
		{"bad transition", model.NewOrderError(model.ErrCodeInvalidTransition, "nope", model.ErrInvalidTransition), http.StatusBadRequest, "ORD006"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockOrderService)
			svc.On("UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			w, env := do(t, setupRouter(svc), http.MethodPatch, "/order/byId/"+uuid.NewString(), `{"status":"cancelled"}`)

			assert.Equal(t, tt.status, w.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
		})
	}
}

func TestUpdateStatus_InvalidID(t *testing.T) {
	svc := new(mockOrderService)

	w, _ := do(t, setupRouter(svc), http.MethodPatch, "/order/byId/not-a-uuid", `{"status":"cancelled"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatus_ValidationError(t *testing.T) {
	svc := new(mockOrderService)
	req := model.UpdateStatusRequest{Status: "teleported"}
	svc.On("UpdateStatus", mock.Anything, mock.Anything, mock.Anything, req).Return(nil, req.Validate())

	w, env := do(t, setupRouter(svc), http.MethodPatch, "/order/byId/"+uuid.NewString(), `{"status":"teleported"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
}

func TestListOrders_ReturnsMeta(t *testing.T) {
	svc := new(mockOrderService)
	svc.On("ListOrders", mock.Anything, customer, model.ListOrdersRequest{Status: "shipped", Page: 2, Limit: 20}).
		Return([]model.Order{{ID: uuid.New()}}, 21, nil)

	w, env := do(t, setupRouter(svc), http.MethodGet, "/order?status=Shipped&page=2", "")

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 2, env.Meta.Page)
	assert.Equal(t, 21, env.Meta.Total)
}

func TestDeleteOrder_NotDeletable(t *testing.T) {
	svc := new(mockOrderService)
	svc.On("DeleteOrder", mock.Anything, mock.Anything).
		Return(model.NewOrderError(model.ErrCodeOrderNotDeletable, "open", model.ErrOrderNotDeletable))

	w, env := do(t, setupRouter(svc), http.MethodDelete, "/admin/orders/"+uuid.NewString(), "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ORD010", env.Error.Code)
}

func TestExportOrders_PassesStatusFilter(t *testing.T) {
	svc := new(mockOrderService)
	svc.On("ExportOrders", mock.Anything, model.ExportOrdersRequest{Status: "delivered"}).
		Return(&model.ExportOrdersResponse{Key: "exports/orders/x.xlsx", URL: "https://files/x", Rows: 3}, nil)

	w, env := do(t, setupRouter(svc), http.MethodPost, "/admin/orders/export?status=delivered", "")

	require.Equal(t, http.StatusCreated, w.Code)
	var resp model.ExportOrdersResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, 3, resp.Rows)
}

func TestShippingWebhook_AlwaysAcknowledges(t *testing.T) {
	svc := new(mockOrderService)
	orderID := uuid.New()
	svc.On("HandleShippingUpdate", mock.Anything, model.ShippingUpdate{OrderID: orderID, Status: "IN TRANSIT", AWB: "AWB1"}).
		Return(assert.AnError)

	body := `{"order_id":"` + orderID.String() + `","status":"IN TRANSIT","awb":"AWB1"}`
	w, env := do(t, setupRouter(svc), http.MethodPost, "/webhooks/shipping", body)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	svc.AssertExpectations(t)

	w, _ = do(t, setupRouter(new(mockOrderService)), http.MethodPost, "/webhooks/shipping", `not json`)
	assert.Equal(t, http.StatusOK, w.Code)
}
