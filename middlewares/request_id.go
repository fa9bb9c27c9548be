package middlewares

import (
	"log"
	"lost-found/constants"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDFromContext returns a request ID or an empty string when unavailable.
func RequestIDFromContext(ctx *gin.Context) string {
	return ctx.GetString(constants.ContextRequestID)
}

// RequestIDMiddleware tags every request with an ID and writes one access log
// line once the handler chain is done.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		startedAt := time.Now()
		requestID := normalizeRequestID(ctx.GetHeader(constants.HeaderRequestID))
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx.Set(constants.ContextRequestID, requestID)
		ctx.Writer.Header().Set(constants.HeaderRequestID, requestID)

		ctx.Next()

		log.Printf(
			"request_id=%s method=%s path=%s status=%d latency_ms=%.2f client_ip=%s",
			requestID,
			ctx.Request.Method,
			ctx.Request.URL.Path,
			ctx.Writer.Status(),
			float64(time.Since(startedAt).Microseconds())/1000.0,
			ctx.ClientIP(),
		)
	}
}

func normalizeRequestID(raw string) string {
	candidate := strings.TrimSpace(raw)
	if len(candidate) > 128 {
		candidate = candidate[:128]
	}
	return candidate
}
