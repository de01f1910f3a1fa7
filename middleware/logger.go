package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"space/internal/logger"
)

// AccessLog 请求日志
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		logger.Info("[%s] %s %s %v %d", c.Request.Method, path, c.ClientIP(), time.Since(start), c.Writer.Status())
	}
}
