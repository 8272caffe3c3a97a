package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/newswire-api/internal/models"
	"github.com/newswire-api/internal/repository"
	"github.com/rs/zerolog"
)

// commentService is the concrete implementation of CommentService
type commentService struct {
	comments repository.CommentRepository
	articles repository.ArticleRepository
	log      zerolog.Logger
}

// newCommentService creates a new CommentService
func newCommentService(comments repository.CommentRepository, articles repository.ArticleRepository, log zerolog.Logger) CommentService {
	return &commentService{
		comments: comments,
		articles: articles,
		log:      log.With().Str("service", "comment").Logger(),
	}
}

// Create persists a new comment and returns it as a node with no replies
func (s *commentService) Create(ctx context.Context, userID string, req *models.CreateCommentRequest) (*models.CommentNode, error) {
	if strings.TrimSpace(req.Body) == "" {
		return nil, &ValidationError{Field: "body", Message: "must not be empty"}
	}

	exists, err := s.articles.Exists(ctx, req.ArticleID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}

	if req.ParentID != nil {
		parent, err := s.comments.GetByID(ctx, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, &ValidationError{Field: "parent_id", Message: "parent comment does not exist"}
		}
		if parent.ArticleID != req.ArticleID {
			return nil, &ValidationError{Field: "parent_id", Message: "parent comment belongs to a different article"}
		}
	}

	comment := &models.Comment{
		ID:        uuid.New().String(),
		ArticleID: req.ArticleID,
		UserID:    userID,
		ParentID:  req.ParentID,
		Body:      req.Body,
		CreatedAt: time.Now(),
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("comment_id", comment.ID).
		Str("article_id", comment.ArticleID).
		Bool("reply", comment.ParentID != nil).
		Msg("Comment created")

	return &models.CommentNode{Comment: *comment, Replies: []*models.CommentNode{}}, nil
}

// TreeForArticle returns the article's comments assembled as a forest of
// reply threads
func (s *commentService) TreeForArticle(ctx context.Context, articleID string) ([]*models.CommentNode, error) {
	exists, err := s.articles.Exists(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}

	comments, err := s.comments.ListByArticle(ctx, articleID)
	if err != nil {
		return nil, err
	}

	return BuildCommentTree(comments), nil
}

// Delete removes a comment (admin moderation); replies to it survive and
// surface as top-level on the next read
func (s *commentService) Delete(ctx context.Context, id string) error {
	err := s.comments.Delete(ctx, id)
	if err == repository.ErrNotFound {
		return ErrNotFound
	}
	return err
}

// BuildCommentTree reconstructs the reply forest from a flat list of
// comments sorted by creation time ascending.
//
// A comment whose parent id is not present in the input (parent deleted, or
// pointed at another article) is promoted to top-level rather than dropped:
// every input comment appears in the output exactly once. Sibling order
// follows input order. The construction is iterative, so reply chains of
// arbitrary depth cost O(n) and no recursion.
func BuildCommentTree(comments []*models.Comment) []*models.CommentNode {
	nodes := make(map[string]*models.CommentNode, len(comments))
	for _, c := range comments {
		nodes[c.ID] = &models.CommentNode{Comment: *c, Replies: []*models.CommentNode{}}
	}

	roots := make([]*models.CommentNode, 0, len(comments))
	for _, c := range comments {
		node := nodes[c.ID]
		if c.ParentID != nil {
			if parent, ok := nodes[*c.ParentID]; ok && parent != node {
				parent.Replies = append(parent.Replies, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	return roots
}
