package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"sudooom.mj.advisor/internal/jwt"
	"sudooom.mj.advisor/pkg/response"
)

const clientIDKey = "client_id"

// JWTAuth JWT 认证中间件
func JWTAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c.GetHeader("Authorization"))
		if token == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				response.Error(c, response.CodeTokenExpired)
			} else {
				response.Error(c, response.CodeTokenInvalid)
			}
			c.Abort()
			return
		}

		c.Set(clientIDKey, claims.ClientID)
		c.Next()
	}
}

// OptionalJWT 可选认证，携带有效 Token 时写入 client_id，否则按匿名请求放行
func OptionalJWT(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := extractToken(c.GetHeader("Authorization")); token != "" {
			if claims, err := jwtService.ValidateToken(token); err == nil {
				c.Set(clientIDKey, claims.ClientID)
			}
		}
		c.Next()
	}
}

// extractToken 从 Authorization header 提取 token
func extractToken(authHeader string) string {
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}

	return parts[1]
}

// GetClientID 从 context 获取 client_id，未认证时为空
func GetClientID(c *gin.Context) string {
	return c.GetString(clientIDKey)
}
