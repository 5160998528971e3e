package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront-backend/internal/shared/auth"
	"storefront-backend/internal/shared/response"
	"storefront-backend/pkg/jwt"
)

// AuthMiddleware - xác thực JWT token và gắn auth.Principal vào gin context + request context
func AuthMiddleware(tokens *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Lấy token từ Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		// 2. Extract token từ "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		// 3. Verify và parse JWT
		claims, err := tokens.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			response.Unauthorized(c, "invalid user ID in token")
			c.Abort()
			return
		}

		role := auth.Role(claims.Role)
		if role == "" {
			role = auth.RoleCustomer
		}
		// system role chỉ dành cho webhook/worker, không được cấp qua token
		if role == auth.RoleSystem {
			response.Forbidden(c, "role not allowed")
			c.Abort()
			return
		}

		principal := auth.Principal{UserID: userID, Email: claims.Email, Role: role}

		// 4. Set principal vào request context, service đọc lại qua auth.FromContext
		c.Request = c.Request.WithContext(auth.WithPrincipal(c.Request.Context(), principal))

		c.Next()
	}
}

// GetPrincipal đọc principal đã được AuthMiddleware set
func GetPrincipal(c *gin.Context) (auth.Principal, bool) {
	p, err := auth.FromContext(c.Request.Context())
	return p, err == nil
}
