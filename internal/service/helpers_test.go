package service_test

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/newswire-api/internal/billing"
	"github.com/newswire-api/internal/config"
	"github.com/newswire-api/internal/mocks"
	"github.com/newswire-api/internal/models"
	"github.com/newswire-api/internal/repository"
	"github.com/newswire-api/internal/service"
	"github.com/rs/zerolog"
)

const testWebhookSecret = "whsec_test_secret"

// testEnv wires the full service layer against in-memory repositories
type testEnv struct {
	users     *mocks.MockUserRepository
	articles  *mocks.MockArticleRepository
	comments  *mocks.MockCommentRepository
	bookmarks *mocks.MockBookmarkRepository
	ads       *mocks.MockAdRepository
	settings  *mocks.MockSettingsRepository
	billing   *mocks.MockBillingRepository
	cfg       *config.Config
	services  *service.Services
}

func newTestEnv() *testEnv {
	users := mocks.NewMockUserRepository()
	env := &testEnv{
		users:     users,
		articles:  mocks.NewMockArticleRepository(),
		comments:  mocks.NewMockCommentRepository(),
		bookmarks: mocks.NewMockBookmarkRepository(),
		ads:       mocks.NewMockAdRepository(),
		settings:  mocks.NewMockSettingsRepository(),
		billing:   mocks.NewMockBillingRepository(users),
	}

	env.cfg = &config.Config{
		Auth: config.AuthConfig{
			JWTSecret: "test-jwt-secret",
			TokenTTL:  time.Hour,
		},
		Billing: config.BillingConfig{
			WebhookSecret: testWebhookSecret,
			StandardPrice: "price_standard",
			PremiumPrice:  "price_premium",
			ProPrice:      "price_pro",
			SigTolerance:  5 * time.Minute,
		},
	}

	repos := &repository.Repositories{
		User:     env.users,
		Article:  env.articles,
		Comment:  env.comments,
		Bookmark: env.bookmarks,
		Ad:       env.ads,
		Settings: env.settings,
		Billing:  env.billing,
	}
	env.services = service.NewServices(repos, env.cfg, zerolog.Nop())
	return env
}

func (env *testEnv) addUser(email string) *models.User {
	user := &models.User{
		ID:        uuid.New().String(),
		Email:     email,
		Name:      "Test User",
		Role:      "reader",
		Tier:      models.TierFree,
		Active:    true,
		CreatedAt: time.Now(),
	}
	env.users.Users[user.ID] = user
	env.users.EmailToUser[user.Email] = user
	return user
}

func (env *testEnv) addArticle(slug string) *models.Article {
	article := &models.Article{
		ID:        uuid.New().String(),
		Slug:      slug,
		Title:     "Test Article",
		Body:      "Body",
		Status:    "published",
		CreatedAt: time.Now(),
	}
	env.articles.Articles[article.ID] = article
	env.articles.Slugs[article.Slug] = article
	return article
}

func asValidation(err error, target **service.ValidationError) bool {
	return errors.As(err, target)
}

// signedHeader produces a provider signature header valid for payload
func signedHeader(payload []byte) string {
	ts := time.Now().Unix()
	return fmt.Sprintf("t=%d,v1=%s", ts, billing.ComputeSignature(payload, testWebhookSecret, ts))
}
