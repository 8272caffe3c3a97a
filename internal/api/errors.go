package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newswire-api/internal/service"
	"github.com/rs/zerolog"
)

// respondError maps service errors to HTTP responses. Anything not in the
// taxonomy is logged and answered with a generic 500 so internals never
// leak to clients.
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	var valErr *service.ValidationError
	switch {
	case errors.As(err, &valErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": valErr.Message, "field": valErr.Field})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
