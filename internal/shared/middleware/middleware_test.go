package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"storefront-backend/internal/shared/auth"
	"storefront-backend/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter(tokens *jwt.Manager) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), AuthMiddleware(tokens))
	r.GET("/me", func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, p.UserID.String())
	})
	admin := r.Group("/admin", AdminMiddleware())
	admin.GET("", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func doGet(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	tokens := jwt.NewManager("test-secret", time.Minute)
	r := newAuthRouter(tokens)
	userID := uuid.New()

	customer, err := tokens.GenerateAccessToken(userID.String(), "c@shop.in", "customer")
	require.NoError(t, err)

	t.Run("missing header", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, doGet(r, "/me", "").Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, doGet(r, "/me", "abc.def.ghi").Code)
	})

	t.Run("valid token threads principal", func(t *testing.T) {
		w := doGet(r, "/me", customer)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, userID.String(), w.Body.String())
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("system role cannot be minted", func(t *testing.T) {
		sys, err := tokens.GenerateAccessToken(userID.String(), "", "system")
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, doGet(r, "/me", sys).Code)
	})

	t.Run("customer is not admin", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, doGet(r, "/admin", customer).Code)
	})

	t.Run("admin passes", func(t *testing.T) {
		admin, err := tokens.GenerateAccessToken(uuid.NewString(), "a@shop.in", "admin")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, doGet(r, "/admin", admin).Code)
	})
}

func TestShippingWebhookAuth(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("ship-token"), bcrypt.MinCost)
	require.NoError(t, err)

	r := gin.New()
	r.POST("/hook", ShippingWebhookAuth(string(hash)), func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(token string) int {
		req := httptest.NewRequest(http.MethodPost, "/hook", nil)
		if token != "" {
			req.Header.Set("X-Shipping-Token", token)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("ship-token"))
	assert.Equal(t, http.StatusUnauthorized, send("wrong"))
	assert.Equal(t, http.StatusUnauthorized, send(""))
}

func TestCORSPreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"https://admin.shop.in"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://admin.shop.in")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://admin.shop.in", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestGetPrincipal_ReadsRequestContext(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := GetPrincipal(c)
	assert.False(t, ok)

	want := auth.Principal{UserID: uuid.New(), Role: auth.RoleCustomer}
	c.Request = c.Request.WithContext(auth.WithPrincipal(c.Request.Context(), want))
	got, ok := GetPrincipal(c)
	require.True(t, ok)
	assert.Equal(t, want, got)
}
