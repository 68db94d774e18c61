package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/solarwatch/backend/internal/metrics"
	"github.com/solarwatch/backend/internal/utils"
	"go.uber.org/zap"
)

// LoggingMiddleware returns a middleware that logs HTTP requests and records
// request metrics
func LoggingMiddleware(logger *utils.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()
		method := c.Request.Method
		clientIP := c.ClientIP()

		// Use the route template so metrics cardinality stays bounded
		metricsPath := c.FullPath()
		if metricsPath == "" {
			metricsPath = "unmatched"
		}
		metrics.RecordHTTPRequest(method, metricsPath, strconv.Itoa(statusCode), latency)

		userID, exists := c.Get("user_id")

		logFields := []zap.Field{
			zap.Int("status", statusCode),
			zap.String("method", method),
			zap.String("path", path),
			zap.String("query", query),
			zap.String("ip", clientIP),
			zap.Duration("latency", latency),
			zap.String("request_id", c.GetString(RequestIDKey)),
		}

		if exists {
			logFields = append(logFields, zap.Any("user_id", userID))
		}

		switch {
		case statusCode >= 500:
			logger.Error("Server error", logFields...)
		case statusCode >= 400:
			logger.Warn("Client error", logFields...)
		default:
			logger.Info("Request completed", logFields...)
		}
	}
}
