package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newswire-api/internal/models"
	"github.com/newswire-api/internal/service"
	"github.com/rs/zerolog"
)

// BookmarkHandler handles bookmark endpoints
type BookmarkHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewBookmarkHandler creates a new BookmarkHandler
func NewBookmarkHandler(services *service.Services, log zerolog.Logger) *BookmarkHandler {
	return &BookmarkHandler{
		services: services,
		log:      log.With().Str("handler", "bookmark").Logger(),
	}
}

// List handles GET /v1/bookmarks
func (h *BookmarkHandler) List(c *gin.Context) {
	bookmarks, err := h.services.Bookmark.List(c.Request.Context(), c.GetString(ctxUserID))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if bookmarks == nil {
		bookmarks = []*models.Bookmark{}
	}
	c.JSON(http.StatusOK, gin.H{"bookmarks": bookmarks})
}

// Create handles POST /v1/bookmarks
func (h *BookmarkHandler) Create(c *gin.Context) {
	var req models.CreateBookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "article_id is required"})
		return
	}

	bookmark, err := h.services.Bookmark.Create(c.Request.Context(), c.GetString(ctxUserID), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, bookmark)
}

// Delete handles DELETE /v1/bookmarks/:id
func (h *BookmarkHandler) Delete(c *gin.Context) {
	if err := h.services.Bookmark.Delete(c.Request.Context(), c.GetString(ctxUserID), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
