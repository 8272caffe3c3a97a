package repository

import (
	"context"
	"errors"

	"github.com/newswire-api/internal/database"
	"github.com/newswire-api/internal/models"
)

// ErrNotFound is returned by transactional operations whose target row does
// not exist. Read methods return (nil, nil) for missing rows instead.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a uniqueness constraint is violated
var ErrDuplicate = errors.New("already exists")

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// ArticleRepository defines the interface for article data operations
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	Update(ctx context.Context, article *models.Article) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Article, error)
	GetBySlug(ctx context.Context, slug string) (*models.Article, error)
	List(ctx context.Context, publishedOnly bool, limit, offset int) ([]*models.Article, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Exists(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	// ListByArticle returns all comments for one article ordered by
	// creation time ascending, the order the tree assembler requires.
	ListByArticle(ctx context.Context, articleID string) ([]*models.Comment, error)
	Count(ctx context.Context) (int, error)
}

// BookmarkRepository defines the interface for bookmark data operations
type BookmarkRepository interface {
	Create(ctx context.Context, bookmark *models.Bookmark) error
	Delete(ctx context.Context, userID, id string) error
	ListByUser(ctx context.Context, userID string) ([]*models.Bookmark, error)
}

// AdRepository defines the interface for ad data operations
type AdRepository interface {
	Create(ctx context.Context, ad *models.Ad) error
	Update(ctx context.Context, ad *models.Ad) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Ad, error)
	ListActive(ctx context.Context, placement string) ([]*models.Ad, error)
	ListAll(ctx context.Context) ([]*models.Ad, error)
}

// SettingsRepository defines the interface for user settings storage.
// Values cross this boundary in flat column form.
type SettingsRepository interface {
	Get(ctx context.Context, userID string) (map[string]interface{}, error)
	Put(ctx context.Context, userID string, flat map[string]interface{}) error
}

// BillingRepository owns the transactional primitives of the webhook
// reconciler. Every mutation runs in one transaction with the target user
// row locked for update, so concurrent deliveries serialize.
type BillingRepository interface {
	SetCustomerRef(ctx context.Context, userID, customerRef string) error
	// CompleteCheckout applies the whole checkout transition in one
	// transaction; customerRef is only written when non-empty.
	CompleteCheckout(ctx context.Context, userID, customerRef, subscriptionRef, status string) error
	// RecordInvoicePaid sets tier and billing status and appends the
	// payment record. The returned bool is false when a record with the
	// same provider transaction id already exists (redelivery).
	RecordInvoicePaid(ctx context.Context, customerRef, tier, status string, rec *models.PaymentRecord) (bool, error)
	UpdateSubscription(ctx context.Context, subscriptionRef, tier, status string) error
	GetUserByCustomerRef(ctx context.Context, customerRef string) (*models.User, error)
	ListPayments(ctx context.Context, userID string) ([]*models.PaymentRecord, error)
	PaymentCount(ctx context.Context) (int, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	User     UserRepository
	Article  ArticleRepository
	Comment  CommentRepository
	Bookmark BookmarkRepository
	Ad       AdRepository
	Settings SettingsRepository
	Billing  BillingRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		User:     NewUserRepo(db),
		Article:  NewArticleRepo(db),
		Comment:  NewCommentRepo(db),
		Bookmark: NewBookmarkRepo(db),
		Ad:       NewAdRepo(db),
		Settings: NewSettingsRepo(db),
		Billing:  NewBillingRepo(db),
	}
}
