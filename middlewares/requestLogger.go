package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"bitbucket.org/alrahmateam/medaid_backend/appctx"
	"bitbucket.org/alrahmateam/medaid_backend/config"
)

// RequestLogger tags every request with an id and writes one structured
// access line after the handler runs. The id is echoed in X-Request-Id so
// the frontend can quote it in bug reports.
func RequestLogger() gin.HandlerFunc {
	logger := config.GetLogger()
	return func(c *gin.Context) {
		requestId := c.GetHeader("X-Request-Id")
		if requestId == "" {
			requestId = uuid.NewString()
		}
		ctx := appctx.Set(c.Request.Context(), appctx.ContextKeyRequestId, requestId)
		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set("X-Request-Id", requestId)

		started := time.Now()
		c.Next()

		entry := logger.WithFields(logrus.Fields{
			"requestId": requestId,
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"latencyMs": time.Since(started).Milliseconds(),
		})
		if c.Writer.Status() >= 500 {
			entry.Error("request failed")
		} else {
			entry.Info("request handled")
		}
	}
}
