package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"storefront-backend/internal/shared/response"
)

// ShippingWebhookAuth so khớp token của shipping aggregator với bcrypt hash trong config.
// Hash rỗng => webhook bị tắt.
func ShippingWebhookAuth(tokenHash string) gin.HandlerFunc {
	hash := []byte(tokenHash)

	return func(c *gin.Context) {
		token := c.GetHeader("X-Shipping-Token")
		if len(hash) == 0 || token == "" {
			response.Unauthorized(c, "missing webhook token")
			c.Abort()
			return
		}

		if err := bcrypt.CompareHashAndPassword(hash, []byte(token)); err != nil {
			response.Unauthorized(c, "invalid webhook token")
			c.Abort()
			return
		}

		c.Next()
	}
}
