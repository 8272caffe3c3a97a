package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newswire-api/internal/models"
	"github.com/newswire-api/internal/service"
	"github.com/rs/zerolog"
)

// AdHandler handles ad endpoints
type AdHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewAdHandler creates a new AdHandler
func NewAdHandler(services *service.Services, log zerolog.Logger) *AdHandler {
	return &AdHandler{
		services: services,
		log:      log.With().Str("handler", "ad").Logger(),
	}
}

// ListActive handles GET /v1/ads
func (h *AdHandler) ListActive(c *gin.Context) {
	ads, err := h.services.Ad.ListActive(c.Request.Context(), c.Query("placement"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if ads == nil {
		ads = []*models.Ad{}
	}
	c.JSON(http.StatusOK, gin.H{"ads": ads})
}

// ListAll handles GET /v1/admin/ads
func (h *AdHandler) ListAll(c *gin.Context) {
	ads, err := h.services.Ad.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if ads == nil {
		ads = []*models.Ad{}
	}
	c.JSON(http.StatusOK, gin.H{"ads": ads})
}

// Create handles POST /v1/admin/ads
func (h *AdHandler) Create(c *gin.Context) {
	var req models.CreateAdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ad, err := h.services.Ad.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, ad)
}

// Update handles PUT /v1/admin/ads/:id
func (h *AdHandler) Update(c *gin.Context) {
	var req models.CreateAdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ad, err := h.services.Ad.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, ad)
}

// Delete handles DELETE /v1/admin/ads/:id
func (h *AdHandler) Delete(c *gin.Context) {
	if err := h.services.Ad.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
