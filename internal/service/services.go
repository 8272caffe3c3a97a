package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/newswire-api/internal/ai"
	"github.com/newswire-api/internal/billing"
	"github.com/newswire-api/internal/config"
	"github.com/newswire-api/internal/models"
	"github.com/newswire-api/internal/notify"
	"github.com/newswire-api/internal/repository"
	"github.com/rs/zerolog"
)

// Sentinel errors the handlers map to HTTP statuses
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
)

// ValidationError describes a client input error on a specific field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// AuthService defines account creation and authentication
type AuthService interface {
	Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	BootstrapAdmin(ctx context.Context) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, req *models.UpdateProfileRequest) (*models.User, error)
}

// ArticleService defines article operations
type ArticleService interface {
	Create(ctx context.Context, authorID string, req *models.CreateArticleRequest) (*models.Article, error)
	Update(ctx context.Context, id string, req *models.UpdateArticleRequest) (*models.Article, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Article, error)
	GetBySlug(ctx context.Context, slug string) (*models.Article, error)
	List(ctx context.Context, includeDrafts bool, limit, offset int) ([]*models.Article, error)
}

// CommentService defines comment operations including tree assembly
type CommentService interface {
	Create(ctx context.Context, userID string, req *models.CreateCommentRequest) (*models.CommentNode, error)
	TreeForArticle(ctx context.Context, articleID string) ([]*models.CommentNode, error)
	Delete(ctx context.Context, id string) error
}

// BillingService defines checkout creation and webhook reconciliation
type BillingService interface {
	CreateCheckoutSession(ctx context.Context, userID string, req *models.CheckoutRequest) (*models.CheckoutResponse, error)
	HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error
	ListPayments(ctx context.Context, userID string) ([]*models.PaymentRecord, error)
}

// SettingsService defines user preference operations
type SettingsService interface {
	Get(ctx context.Context, userID string) (*models.UserSettings, error)
	Put(ctx context.Context, userID string, settings *models.UserSettings) error
}

// BookmarkService defines bookmark operations
type BookmarkService interface {
	Create(ctx context.Context, userID string, req *models.CreateBookmarkRequest) (*models.Bookmark, error)
	Delete(ctx context.Context, userID, id string) error
	List(ctx context.Context, userID string) ([]*models.Bookmark, error)
}

// AdService defines ad operations
type AdService interface {
	Create(ctx context.Context, req *models.CreateAdRequest) (*models.Ad, error)
	Update(ctx context.Context, id string, req *models.CreateAdRequest) (*models.Ad, error)
	Delete(ctx context.Context, id string) error
	ListActive(ctx context.Context, placement string) ([]*models.Ad, error)
	ListAll(ctx context.Context) ([]*models.Ad, error)
}

// AIService defines AI-assisted editorial tools
type AIService interface {
	SummarizeArticle(ctx context.Context, articleID string) (string, error)
	SuggestTags(ctx context.Context, articleID string) ([]string, error)
}

// StatsService provides counts for the admin dashboard
type StatsService interface {
	Overview(ctx context.Context) (map[string]int, error)
}

// Services holds all service interfaces
type Services struct {
	Auth     AuthService
	Article  ArticleService
	Comment  CommentService
	Billing  BillingService
	Settings SettingsService
	Bookmark BookmarkService
	Ad       AdService
	AI       AIService
	Stats    StatsService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *Services {
	mailer := notify.NewMailer(&cfg.Mail, log)
	catalog := billing.NewPlanCatalog(&cfg.Billing)
	checkout := billing.NewCheckoutClient(&cfg.Billing, log)
	generator := ai.NewGenerator(&cfg.AI, log)

	return &Services{
		Auth:     newAuthService(repos.User, &cfg.Auth, mailer, log),
		Article:  newArticleService(repos.Article, log),
		Comment:  newCommentService(repos.Comment, repos.Article, log),
		Billing:  newBillingService(repos.Billing, repos.User, catalog, checkout, mailer, &cfg.Billing, log),
		Settings: newSettingsService(repos.Settings, log),
		Bookmark: newBookmarkService(repos.Bookmark, repos.Article, log),
		Ad:       newAdService(repos.Ad, log),
		AI:       newAIService(repos.Article, generator, log),
		Stats:    newStatsService(repos, log),
	}
}
