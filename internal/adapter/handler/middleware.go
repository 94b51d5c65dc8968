package handler

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/srgjo27/captainbook/internal/core/domain"
)

const (
	tokenCookie     = "token"
	principalCtxKey = "principal"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string, role domain.Role) (domain.Principal, error)
}

// tokenFromRequest reads the session token from the cookie first, then the
// Authorization header.
func tokenFromRequest(c *gin.Context) string {
	if tok, err := c.Cookie(tokenCookie); err == nil && tok != "" {
		return tok
	}
	h := c.GetHeader("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

func RequireRole(auth Authenticator, role domain.Role, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := auth.Authenticate(c.Request.Context(), tokenFromRequest(c), role)
		if err != nil {
			writeError(c, log, err)
			return
		}
		c.Set(principalCtxKey, p)
		c.Next()
	}
}

func principalFrom(c *gin.Context) domain.Principal {
	v, _ := c.Get(principalCtxKey)
	p, _ := v.(domain.Principal)
	return p
}

func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		ev := log.Info()
		if c.Writer.Status() >= 500 {
			ev = log.Error()
		}
		ev.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("handled request")
	}
}
