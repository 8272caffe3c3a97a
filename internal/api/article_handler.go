package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/newswire-api/internal/ai"
	"github.com/newswire-api/internal/models"
	"github.com/newswire-api/internal/service"
	"github.com/rs/zerolog"
)

// ArticleHandler handles article and AI content-tool endpoints
type ArticleHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(services *service.Services, log zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{
		services: services,
		log:      log.With().Str("handler", "article").Logger(),
	}
}

// List handles GET /v1/articles
func (h *ArticleHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	// Drafts are only visible to staff
	includeDrafts := false
	if role := c.GetString(ctxRole); role == "admin" || role == "editor" {
		includeDrafts = c.Query("include_drafts") == "true"
	}

	articles, err := h.services.Article.List(c.Request.Context(), includeDrafts, limit, offset)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if articles == nil {
		articles = []*models.Article{}
	}
	c.JSON(http.StatusOK, gin.H{"articles": articles})
}

// Get handles GET /v1/articles/:id, accepting either an article id or slug.
// The id column is a uuid, so anything that does not parse as one goes
// straight to the slug lookup instead of tripping a cast error in the store.
func (h *ArticleHandler) Get(c *gin.Context) {
	idOrSlug := c.Param("id")

	var article *models.Article
	var err error
	if _, uuidErr := uuid.Parse(idOrSlug); uuidErr == nil {
		article, err = h.services.Article.GetByID(c.Request.Context(), idOrSlug)
		if err == service.ErrNotFound {
			article, err = h.services.Article.GetBySlug(c.Request.Context(), idOrSlug)
		}
	} else {
		article, err = h.services.Article.GetBySlug(c.Request.Context(), idOrSlug)
	}
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// Create handles POST /v1/articles
func (h *ArticleHandler) Create(c *gin.Context) {
	var req models.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	article, err := h.services.Article.Create(c.Request.Context(), c.GetString(ctxUserID), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, article)
}

// Update handles PUT /v1/articles/:id
func (h *ArticleHandler) Update(c *gin.Context) {
	var req models.UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	article, err := h.services.Article.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// Delete handles DELETE /v1/articles/:id
func (h *ArticleHandler) Delete(c *gin.Context) {
	if err := h.services.Article.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Summarize handles POST /v1/articles/:id/ai/summary
func (h *ArticleHandler) Summarize(c *gin.Context) {
	summary, err := h.services.AI.SummarizeArticle(c.Request.Context(), c.Param("id"))
	if err == ai.ErrNotConfigured {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "content tools not configured"})
		return
	}
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// SuggestTags handles POST /v1/articles/:id/ai/tags
func (h *ArticleHandler) SuggestTags(c *gin.Context) {
	tags, err := h.services.AI.SuggestTags(c.Request.Context(), c.Param("id"))
	if err == ai.ErrNotConfigured {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "content tools not configured"})
		return
	}
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}
