package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-digest/internal/platform/config"
)

// CORS returns middleware that sets the CORS headers on every response and
// answers OPTIONS preflights with 200 and an empty body.
//
// It must run before anything that can end the request (recovery, 404, 405)
// so that error responses carry the headers too. A wildcard origin answers
// "*"; otherwise a listed Origin is echoed back and others get no
// Access-Control-Allow-Origin at all.
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	wildcard := slices.Contains(cfg.AllowOrigins, "*")
	methods := strings.Join(cfg.AllowMethods, ", ")
	headers := strings.Join(cfg.AllowHeaders, ", ")
	exposed := strings.Join([]string{HeaderRequestID, HeaderCorrelationID}, ", ")

	var maxAge string
	if cfg.MaxAge > 0 {
		maxAge = strconv.Itoa(int(cfg.MaxAge.Seconds()))
	}

	return func(c *gin.Context) {
		h := c.Writer.Header()

		switch origin := c.GetHeader("Origin"); {
		case wildcard:
			h.Set("Access-Control-Allow-Origin", "*")
		case origin != "" && slices.Contains(cfg.AllowOrigins, origin):
			h.Set("Access-Control-Allow-Origin", origin)
			h.Add("Vary", "Origin")
		}

		h.Set("Access-Control-Allow-Methods", methods)

		if headers != "" {
			h.Set("Access-Control-Allow-Headers", headers)
		}

		h.Set("Access-Control-Expose-Headers", exposed)

		if c.Request.Method != http.MethodOptions {
			c.Next()
			return
		}

		if maxAge != "" {
			h.Set("Access-Control-Max-Age", maxAge)
		}

		c.AbortWithStatus(http.StatusOK)
	}
}
