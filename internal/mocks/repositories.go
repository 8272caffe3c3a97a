package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/newswire-api/internal/models"
	"github.com/newswire-api/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mu          sync.Mutex
	Users       map[string]*models.User
	EmailToUser map[string]*models.User
	CreateError error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:       make(map[string]*models.User),
		EmailToUser: make(map[string]*models.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateError != nil {
		return m.CreateError
	}
	if _, ok := m.EmailToUser[user.Email]; ok {
		return repository.ErrDuplicate
	}
	m.Users[user.ID] = user
	m.EmailToUser[user.Email] = user
	return nil
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	m.Users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Users[id], nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.EmailToUser[email], nil
}

func (m *MockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.EmailToUser[email]
	return ok, nil
}

func (m *MockUserRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Users), nil
}

// MockArticleRepository is a mock implementation of ArticleRepository.
// GetByIDCalls records lookup arguments; the id column is a uuid in the real
// store, so tests assert nothing else ever reaches the id path.
type MockArticleRepository struct {
	Articles     map[string]*models.Article
	Slugs        map[string]*models.Article
	GetByIDCalls []string
}

func NewMockArticleRepository() *MockArticleRepository {
	return &MockArticleRepository{
		Articles: make(map[string]*models.Article),
		Slugs:    make(map[string]*models.Article),
	}
}

func (m *MockArticleRepository) Create(ctx context.Context, article *models.Article) error {
	if _, ok := m.Slugs[article.Slug]; ok {
		return repository.ErrDuplicate
	}
	m.Articles[article.ID] = article
	m.Slugs[article.Slug] = article
	return nil
}

func (m *MockArticleRepository) Update(ctx context.Context, article *models.Article) error {
	if _, ok := m.Articles[article.ID]; !ok {
		return repository.ErrNotFound
	}
	m.Articles[article.ID] = article
	return nil
}

func (m *MockArticleRepository) Delete(ctx context.Context, id string) error {
	article, ok := m.Articles[id]
	if !ok {
		return repository.ErrNotFound
	}
	delete(m.Slugs, article.Slug)
	delete(m.Articles, id)
	return nil
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id string) (*models.Article, error) {
	m.GetByIDCalls = append(m.GetByIDCalls, id)
	return m.Articles[id], nil
}

func (m *MockArticleRepository) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	return m.Slugs[slug], nil
}

func (m *MockArticleRepository) List(ctx context.Context, publishedOnly bool, limit, offset int) ([]*models.Article, error) {
	var articles []*models.Article
	for _, a := range m.Articles {
		if publishedOnly && a.Status != "published" {
			continue
		}
		articles = append(articles, a)
	}
	sort.Slice(articles, func(i, j int) bool {
		return articles[i].CreatedAt.After(articles[j].CreatedAt)
	})
	if offset >= len(articles) {
		return nil, nil
	}
	articles = articles[offset:]
	if limit < len(articles) {
		articles = articles[:limit]
	}
	return articles, nil
}

func (m *MockArticleRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	_, ok := m.Slugs[slug]
	return ok, nil
}

func (m *MockArticleRepository) Exists(ctx context.Context, id string) (bool, error) {
	_, ok := m.Articles[id]
	return ok, nil
}

func (m *MockArticleRepository) Count(ctx context.Context) (int, error) {
	return len(m.Articles), nil
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	Comments []*models.Comment
}

func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{}
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	m.Comments = append(m.Comments, comment)
	return nil
}

func (m *MockCommentRepository) Delete(ctx context.Context, id string) error {
	for i, c := range m.Comments {
		if c.ID == id {
			m.Comments = append(m.Comments[:i], m.Comments[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	for _, c := range m.Comments {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (m *MockCommentRepository) ListByArticle(ctx context.Context, articleID string) ([]*models.Comment, error) {
	var comments []*models.Comment
	for _, c := range m.Comments {
		if c.ArticleID == articleID {
			comments = append(comments, c)
		}
	}
	// Insertion order stands in for created_at ASC
	return comments, nil
}

func (m *MockCommentRepository) Count(ctx context.Context) (int, error) {
	return len(m.Comments), nil
}

// MockBookmarkRepository is a mock implementation of BookmarkRepository
type MockBookmarkRepository struct {
	Bookmarks map[string]*models.Bookmark
}

func NewMockBookmarkRepository() *MockBookmarkRepository {
	return &MockBookmarkRepository{Bookmarks: make(map[string]*models.Bookmark)}
}

func (m *MockBookmarkRepository) Create(ctx context.Context, bookmark *models.Bookmark) error {
	for _, b := range m.Bookmarks {
		if b.UserID == bookmark.UserID && b.ArticleID == bookmark.ArticleID {
			return repository.ErrDuplicate
		}
	}
	m.Bookmarks[bookmark.ID] = bookmark
	return nil
}

func (m *MockBookmarkRepository) Delete(ctx context.Context, userID, id string) error {
	b, ok := m.Bookmarks[id]
	if !ok || b.UserID != userID {
		return repository.ErrNotFound
	}
	delete(m.Bookmarks, id)
	return nil
}

func (m *MockBookmarkRepository) ListByUser(ctx context.Context, userID string) ([]*models.Bookmark, error) {
	var bookmarks []*models.Bookmark
	for _, b := range m.Bookmarks {
		if b.UserID == userID {
			bookmarks = append(bookmarks, b)
		}
	}
	return bookmarks, nil
}

// MockAdRepository is a mock implementation of AdRepository
type MockAdRepository struct {
	Ads map[string]*models.Ad
}

func NewMockAdRepository() *MockAdRepository {
	return &MockAdRepository{Ads: make(map[string]*models.Ad)}
}

func (m *MockAdRepository) Create(ctx context.Context, ad *models.Ad) error {
	m.Ads[ad.ID] = ad
	return nil
}

func (m *MockAdRepository) Update(ctx context.Context, ad *models.Ad) error {
	if _, ok := m.Ads[ad.ID]; !ok {
		return repository.ErrNotFound
	}
	m.Ads[ad.ID] = ad
	return nil
}

func (m *MockAdRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.Ads[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.Ads, id)
	return nil
}

func (m *MockAdRepository) GetByID(ctx context.Context, id string) (*models.Ad, error) {
	return m.Ads[id], nil
}

func (m *MockAdRepository) ListActive(ctx context.Context, placement string) ([]*models.Ad, error) {
	var ads []*models.Ad
	for _, ad := range m.Ads {
		if !ad.Active {
			continue
		}
		if placement != "" && ad.Placement != placement {
			continue
		}
		ads = append(ads, ad)
	}
	return ads, nil
}

func (m *MockAdRepository) ListAll(ctx context.Context) ([]*models.Ad, error) {
	var ads []*models.Ad
	for _, ad := range m.Ads {
		ads = append(ads, ad)
	}
	return ads, nil
}

// MockSettingsRepository is a mock implementation of SettingsRepository
type MockSettingsRepository struct {
	Flat map[string]map[string]interface{}
}

func NewMockSettingsRepository() *MockSettingsRepository {
	return &MockSettingsRepository{Flat: make(map[string]map[string]interface{})}
}

func (m *MockSettingsRepository) Get(ctx context.Context, userID string) (map[string]interface{}, error) {
	return m.Flat[userID], nil
}

func (m *MockSettingsRepository) Put(ctx context.Context, userID string, flat map[string]interface{}) error {
	stored := make(map[string]interface{}, len(flat))
	for k, v := range flat {
		stored[k] = v
	}
	m.Flat[userID] = stored
	return nil
}
