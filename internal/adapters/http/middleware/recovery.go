package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quote-digest/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-digest/internal/platform/logging"
)

// Recovery returns middleware that recovers from panics, logs the stack and
// answers 500 with the standard envelope. When exposeDetail is set (any
// environment but prod) the panic value is included as "error".
//
// Headers set by earlier middleware, CORS included, survive the panic.
func Recovery(logger *slog.Logger, exposeDetail bool) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}

	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			ctx := c.Request.Context()

			var traceID string
			if span := trace.SpanFromContext(ctx); span.SpanContext().HasTraceID() {
				traceID = span.SpanContext().TraceID().String()
			}

			logging.FromContextOr(ctx, logger).ErrorContext(ctx, "panic recovered",
				slog.Any("error", r),
				slog.String("stack", string(debug.Stack())),
				slog.String("path", c.Request.URL.Path),
				slog.String("method", c.Request.Method),
			)

			if c.Writer.Written() {
				c.Abort()
				return
			}

			resp := dto.NewErrorResponse(dto.MessageInternal).WithTraceID(traceID)
			if exposeDetail {
				resp.Error = fmt.Sprint(r)
			}

			c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
		}()

		c.Next()
	}
}
