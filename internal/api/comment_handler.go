package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newswire-api/internal/models"
	"github.com/newswire-api/internal/service"
	"github.com/rs/zerolog"
)

// CommentHandler handles comment endpoints
type CommentHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(services *service.Services, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		services: services,
		log:      log.With().Str("handler", "comment").Logger(),
	}
}

// Tree handles GET /v1/articles/:id/comments, returning the assembled reply
// forest as nested JSON
func (h *CommentHandler) Tree(c *gin.Context) {
	tree, err := h.services.Comment.TreeForArticle(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": tree})
}

// Create handles POST /v1/articles/:id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	var body struct {
		Body     string  `json:"body" binding:"required"`
		ParentID *string `json:"parent_id,omitempty"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body is required"})
		return
	}

	req := &models.CreateCommentRequest{
		ArticleID: c.Param("id"),
		Body:      body.Body,
		ParentID:  body.ParentID,
	}

	node, err := h.services.Comment.Create(c.Request.Context(), c.GetString(ctxUserID), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, node)
}

// Delete handles DELETE /v1/comments/:id (admin moderation)
func (h *CommentHandler) Delete(c *gin.Context) {
	if err := h.services.Comment.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
