package middleware

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Reporter forwards unexpected failures to the error-tracking service.
type Reporter interface {
	Report(ctx context.Context, err error, tags map[string]string)
}

// ZapReporter reports errors to the process log.
type ZapReporter struct {
	Logger *zap.Logger
}

func (r ZapReporter) Report(_ context.Context, err error, tags map[string]string) {
	fields := []zap.Field{zap.Error(err)}
	for k, v := range tags {
		fields = append(fields, zap.String(k, v))
	}
	r.Logger.Error("unhandled error", fields...)
}

// ErrorTemplate is the HTML template rendered by Recovery.
const ErrorTemplate = "error.tmpl"

// Recovery is the top-level error boundary. A panicking handler is reported and the
// visitor gets a generic page whose retry action reloads the same URL. API routes
// get a JSON error instead.
func Recovery(reporter Reporter) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		err, ok := recovered.(error)
		if !ok {
			err = fmt.Errorf("panic: %v", recovered)
		}
		reporter.Report(c.Request.Context(), err, map[string]string{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		})

		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		c.HTML(http.StatusInternalServerError, ErrorTemplate, gin.H{
			"RetryURL": c.Request.URL.RequestURI(),
		})
		c.Abort()
	})
}
