package middleware

import (
	"bamboo/internal/pkg/consts"
	"bamboo/internal/pkg/response"
	"bamboo/internal/pkg/security"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthOptionalMiddleware 可选鉴权：无 Token 以游客身份继续，带了 Token 则必须有效
func AuthOptionalMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		if authHeader == "" {
			c.Set("is_admin", false)
			c.Next()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			response.Fail(c, response.Unauthorized, "Token 缺失或格式错误")
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := security.ValidateToken(token)
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
