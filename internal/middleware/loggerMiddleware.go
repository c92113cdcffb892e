package middleware

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Trace headers accepted on inbound requests, in precedence order. The
// resolved ID is echoed back on X-Trace-ID so clients can correlate
// detection results with server logs.
const (
	HeaderTraceID       = "X-Trace-ID"
	HeaderRequestID     = "X-Request-ID"
	HeaderCorrelationID = "X-Correlation-ID"

	ginKeyTraceID = "trace_id"
)

type contextKey string

const ctxKeyTraceID contextKey = "trace_id"

// TraceID returns the request's trace ID. It prefers the value stored by
// TraceMiddleware and falls back to the raw headers for handlers mounted
// without it (tests mostly).
func TraceID(c *gin.Context) string {
	if v, ok := c.Get(ginKeyTraceID); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	for _, h := range []string{HeaderTraceID, HeaderRequestID, HeaderCorrelationID} {
		if v := c.GetHeader(h); v != "" {
			return v
		}
	}
	return ""
}

func getTraceID(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyTraceID).(string); ok {
		return v
	}
	return ""
}

// responseWriter records status and body size for the access log.
type responseWriter struct {
	gin.ResponseWriter
	status int
	size   int
}

func (w *responseWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

// LoggerMiddleware emits one structured access-log line per request. The
// level follows the status class so 5xx lines surface in error-filtered
// views.
func LoggerMiddleware(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: c.Writer, status: http.StatusOK}
		c.Writer = rw

		c.Next()

		entry := log.WithFields(logrus.Fields{
			"method":        c.Request.Method,
			"path":          c.Request.URL.Path,
			"status":        c.Writer.Status(),
			"size":          rw.size,
			"duration_ms":   time.Since(start).Milliseconds(),
			"client_ip":     c.ClientIP(),
			"user_agent":    c.Request.UserAgent(),
			"trace_id":      getTraceID(c.Request.Context()),
			"error_message": c.Errors.ByType(gin.ErrorTypePrivate).String(),
		})

		switch {
		case rw.status >= 500:
			entry.Error("server_error")
		case rw.status >= 400:
			entry.Warn("client_error")
		default:
			entry.Info("request_processed")
		}
	}
}

// TraceMiddleware resolves or mints the trace ID and stores it on both the
// request context and the gin context, so repository and detection code see
// it through context while handlers use TraceID.
func TraceMiddleware(_ *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := TraceID(c)
		if traceID == "" {
			traceID = uuid.New().String()
		}

		ctx := context.WithValue(c.Request.Context(), ctxKeyTraceID, traceID)
		c.Request = c.Request.WithContext(ctx)

		c.Header(HeaderTraceID, traceID)
		c.Set(ginKeyTraceID, traceID)

		c.Next()
	}
}

// RecoveryMiddleware converts handler panics into 500 responses carrying
// the trace ID. Broken-pipe panics mean the client already went away, so
// they are logged without a stack and get no response body.
func RecoveryMiddleware(log *logrus.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		traceID := getTraceID(c.Request.Context())
		panicMsg := fmt.Sprint(recovered)

		lower := strings.ToLower(panicMsg)
		isBroken := strings.Contains(lower, "broken pipe") ||
			strings.Contains(lower, "connection reset by peer")

		entry := log.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"client_ip":  c.ClientIP(),
			"user_agent": c.Request.UserAgent(),
			"trace_id":   traceID,
			"panic":      panicMsg,
		})

		if isBroken {
			entry.Warn("client_broken_pipe")
			c.Abort()
			return
		}

		entry.WithField("stack", string(debug.Stack())).Error("panic_recovered")
		c.Header(HeaderTraceID, traceID)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":    "internal_server_error",
			"trace_id": traceID,
		})
	})
}
