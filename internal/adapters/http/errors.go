package http

import (
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quote-digest/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-digest/internal/domain"
	"github.com/jsamuelsen/quote-digest/internal/platform/logging"
)

// MapDomainError maps a domain error to an HTTP status code and error response.
// Unknown errors are mapped to 500 with a generic message. The underlying
// error text is attached to 5xx responses only when exposeDetail is set.
func MapDomainError(err error, exposeDetail bool) (int, *dto.ErrorResponse) {
	if err == nil {
		return http.StatusOK, nil
	}

	var (
		validationErr *domain.ValidationError
		formatErr     *domain.FormatError
		storageErr    *domain.StorageError
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, dto.NewErrorResponseWithDetails(validationErr.Message, validationErr.Fields)

	case domain.IsInvalidEmail(err):
		return http.StatusBadRequest, dto.NewErrorResponseWithDetails(
			dto.MessageInvalidEmail,
			map[string]string{"email": "must be a valid email address"},
		)

	case errors.As(err, &formatErr):
		return http.StatusBadRequest, dto.NewErrorResponseWithDetails(
			dto.MessageInvalidFile,
			map[string]string{"fileContent": formatErr.Error()},
		)

	case domain.IsRateLimited(err):
		return http.StatusTooManyRequests, dto.NewErrorResponse(dto.MessageRateLimited)

	case errors.As(err, &storageErr):
		resp := dto.NewErrorResponse(failedTo(storageErr.Operation))
		if exposeDetail {
			resp.WithError(err)
		}

		return http.StatusInternalServerError, resp

	default:
		resp := dto.NewErrorResponse(dto.MessageInternal)
		if exposeDetail {
			resp.WithError(err)
		}

		return http.StatusInternalServerError, resp
	}
}

// failedTo turns a storage operation into the caller-facing sentence.
func failedTo(operation string) string {
	if operation == "" {
		return dto.MessageInternal
	}

	return "Failed to " + strings.TrimSpace(operation)
}

// RespondWithError writes an error response to the gin.Context.
// 5xx errors are logged with full detail; 429 responses carry Retry-After.
func RespondWithError(c *gin.Context, err error, exposeDetail bool) {
	status, errResp := MapDomainError(err, exposeDetail)
	errResp.WithTraceID(traceIDFrom(c))

	var limited *domain.RateLimitedError
	if errors.As(err, &limited) && limited.RetryAfter > 0 {
		c.Header("Retry-After", strconv.Itoa(int(math.Ceil(limited.RetryAfter.Seconds()))))
	}

	if status >= http.StatusInternalServerError {
		ctx := c.Request.Context()
		logging.FromContext(ctx).ErrorContext(ctx, "request failed",
			slog.String("error", err.Error()),
			slog.String("path", c.Request.URL.Path),
			slog.String("trace_id", errResp.TraceID),
		)
	}

	c.AbortWithStatusJSON(status, errResp)
}

// ErrorHandler returns middleware that renders the last error a handler
// attached with c.Error. Handlers stay free of status-code decisions and
// every error leaves through the same envelope.
func ErrorHandler(exposeDetail bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		RespondWithError(c, c.Errors.Last().Err, exposeDetail)
	}
}

// NoRoute answers unknown paths with the JSON envelope instead of gin's
// plain-text default.
func NoRoute(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusNotFound, dto.NewErrorResponse(dto.MessageNotFound).WithTraceID(traceIDFrom(c)))
}

// NoMethod answers a known path requested with the wrong method.
func NoMethod(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusMethodNotAllowed,
		dto.NewErrorResponse(dto.MessageMethodNotAllowed).WithTraceID(traceIDFrom(c)))
}

func traceIDFrom(c *gin.Context) string {
	if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
		return sc.TraceID().String()
	}

	return ""
}
