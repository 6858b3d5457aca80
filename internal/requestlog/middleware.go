// Package requestlog stamps every gin request with an id and logs it with zap.
package requestlog

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"elementhub/pkg/logger"
)

const (
	HeaderRequestID = "X-Request-ID"
	ctxRequestID    = "request_id"
)

// Middleware keeps an incoming X-Request-ID or mints a uuid, echoes it in
// the response and logs method, path, status and latency once the handler
// chain finishes.
func Middleware(log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ctxRequestID, id)
		c.Header(HeaderRequestID, id)

		c.Next()

		fields := []any{
			logger.FieldRequestID, id,
			logger.FieldMethod, c.Request.Method,
			logger.FieldPath, c.FullPath(),
			logger.FieldStatus, c.Writer.Status(),
			logger.FieldDurationMS, time.Since(start).Milliseconds(),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, logger.FieldError, c.Errors.String())
			log.Errorw("request failed", fields...)
			return
		}
		log.Infow("request", fields...)
	}
}

// RequestID returns the id Middleware assigned, or "".
func RequestID(c *gin.Context) string {
	return c.GetString(ctxRequestID)
}
