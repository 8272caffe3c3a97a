package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/newswire-api/internal/service"
	"github.com/rs/zerolog"
)

// AdminHandler handles the admin dashboard endpoints
type AdminHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(services *service.Services, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		services: services,
		log:      log.With().Str("handler", "admin").Logger(),
	}
}

// Stats handles GET /v1/admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	counts, err := h.services.Stats.Overview(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"database":  counts,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
