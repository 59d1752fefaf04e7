// Package middleware 提供 HTTP 中间件
package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	// AdminTokenHeader 管理令牌头
	AdminTokenHeader = "X-Admin-Token"
)

// AdminAuth 管理端点的静态令牌认证中间件
// 令牌白名单为空时直接拒绝所有管理请求
func AdminAuth(tokens []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(AdminTokenHeader)
		if token == "" {
			abortUnauthorized(c, "missing admin token")
			return
		}

		for _, allowed := range tokens {
			if subtle.ConstantTimeCompare([]byte(token), []byte(allowed)) == 1 {
				c.Next()
				return
			}
		}

		abortUnauthorized(c, "invalid admin token")
	}
}

// abortUnauthorized 终止请求并返回 401
func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"code":     401,
		"message":  msg,
		"trace_id": c.GetString("trace_id"),
	})
}
