package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	orderModel "storefront-backend/internal/domains/order/model"
	"storefront-backend/internal/domains/payment/model"
)

type mockService struct{ mock.Mock }

func (m *mockService) HandleWebhook(ctx context.Context, body []byte, signature string) error {
	return m.Called(ctx, body, signature).Error(0)
}

func (m *mockService) CleanupLogs(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func post(svc *mockService, body, signature string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/webhooks/payment", NewWebhookHandler(svc).PaymentWebhook)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/payment", strings.NewReader(body))
	req.Header.Set("X-Payment-Signature", signature)
	r.ServeHTTP(w, req)
	return w
}

func TestPaymentWebhook_PassesRawBodyAndSignature(t *testing.T) {
	svc := new(mockService)
	body := `{"order_id":"x","status":"success"}`
	svc.On("HandleWebhook", mock.Anything, []byte(body), "abc123").Return(nil)

	w := post(svc, body, "abc123")

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestPaymentWebhook_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"bad signature", model.ErrInvalidSignature, http.StatusUnauthorized, "INVALID_SIGNATURE"},
		{"malformed", model.ErrMalformedPayload, http.StatusBadRequest, "BAD_REQUEST"},
		{"validation", validation.Errors{"status": validation.NewError("x", "must be a valid value")}, http.StatusBadRequest, ""},
		{"unknown order", orderModel.ErrOrderNotFound, http.StatusNotFound, "ORD001"},
		{"db down", assert.AnError, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			svc.On("HandleWebhook", mock.Anything, mock.Anything, mock.Anything).Return(tt.err)

			w := post(svc, `{}`, "sig")

			assert.Equal(t, tt.status, w.Code)
			var body struct {
				Success bool `json:"success"`
				Error   struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.False(t, body.Success)
			if tt.code != "" {
				assert.Equal(t, tt.code, body.Error.Code)
			}
		})
	}
}
