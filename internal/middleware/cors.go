package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS reflects the requesting origin back and fixes the allowed method and
// header sets. Preflight OPTIONS requests are answered immediately with 200
// and never reach auth or route handlers.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", c.GetHeader("Origin"))
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}
