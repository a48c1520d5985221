package middleware

import (
	"strings"
	"time"

	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"

	"github.com/Rajesh001100/cultural/internal/auth"
	"github.com/Rajesh001100/cultural/internal/dto"
)

func LoggingMiddleware() func(*ginext.Context) {
	return func(c *ginext.Context) {
		start := time.Now()
		c.Next()
		zlog.Logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

// AdminAuth guards the admin panel with a bearer token issued by the
// login endpoint.
func AdminAuth(jwtSecret string) func(*ginext.Context) {
	return func(c *ginext.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			dto.UnauthorizedError(c, "No token provided")
			c.Abort()
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		username, err := auth.ParseAdminToken(token, jwtSecret)
		if err != nil {
			dto.ForbiddenError(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("admin_username", username)
		c.Next()
	}
}
