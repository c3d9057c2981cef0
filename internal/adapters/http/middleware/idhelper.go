package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxIDLength bounds caller-supplied IDs so a hostile header cannot bloat
// every log line of the request.
const maxIDLength = 128

// enricher stores an ID somewhere in a context.
type enricher func(ctx context.Context, id string) context.Context

// idMiddlewareConfig configures the ID middleware behavior.
type idMiddlewareConfig struct {
	headerName string
	contextKey string
	enrichers  []enricher
}

// createIDMiddleware creates middleware that extracts or generates an ID.
// The ID ends up in the gin context, the response header, and every
// enricher (the request logger and the context key read by outbound clients).
func createIDMiddleware(cfg idMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(cfg.headerName)
		if id == "" || len(id) > maxIDLength {
			id = uuid.NewString()
		}

		c.Set(cfg.contextKey, id)
		c.Header(cfg.headerName, id)

		ctx := c.Request.Context()
		for _, enrich := range cfg.enrichers {
			ctx = enrich(ctx, id)
		}

		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// getIDFromContext extracts an ID from the gin context by key.
func getIDFromContext(c *gin.Context, key string) string {
	return c.GetString(key)
}
