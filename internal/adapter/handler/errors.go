package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/srgjo27/captainbook/internal/core/domain"
)

var statusByKind = map[domain.ErrorKind]int{
	domain.KindValidation:   http.StatusBadRequest,
	domain.KindUnauthorized: http.StatusUnauthorized,
	domain.KindForbidden:    http.StatusForbidden,
	domain.KindNotFound:     http.StatusNotFound,
	domain.KindConflict:     http.StatusConflict,
	domain.KindDependency:   http.StatusInternalServerError,
}

// writeError renders err with a stable kind and a caller-safe message.
// Dependency failures are logged with their cause and never leak it.
func writeError(c *gin.Context, log zerolog.Logger, err error) {
	kind := domain.KindOf(err)
	status, ok := statusByKind[kind]
	if !ok {
		status = http.StatusInternalServerError
	}

	if kind == domain.KindDependency {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}

	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"kind":    kind,
		"error":   domain.MessageOf(err),
	})
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"success": false,
		"kind":    domain.KindValidation,
		"error":   msg,
	})
}
