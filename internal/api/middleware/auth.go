package middleware

import (
	"bamboo/internal/pkg/consts"
	"bamboo/internal/pkg/response"
	"bamboo/internal/pkg/security"
	"strings"

	"github.com/gin-gonic/gin"
)

func hasRole(roles []string, required string) bool {
	for _, role := range roles {
		if role == required {
			return true
		}
	}
	return false
}

// AuthMiddleware 负责验证管理员 JWT 并将身份信息注入 Context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			response.Fail(c, response.Unauthorized, "Token 缺失或格式错误")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := security.ValidateToken(tokenString)
		if err != nil {
			response.Fail(c, response.Unauthorized, "Token 无效或已过期")
			c.Abort()
			return
		}

		if !hasRole(claims.Roles, consts.RoleAdmin) {
			response.Fail(c, response.Unauthorized, "权限不足：无权访问该资源")
			c.Abort()
			return
		}

		c.Set("is_admin", true)
		c.Set("admin_name", claims.Name)

		c.Next()
	}
}
