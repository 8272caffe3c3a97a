package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/newswire-api/internal/api"
	"github.com/newswire-api/internal/billing"
	"github.com/newswire-api/internal/config"
	"github.com/newswire-api/internal/mocks"
	"github.com/newswire-api/internal/models"
	"github.com/newswire-api/internal/ratelimit"
	"github.com/newswire-api/internal/repository"
	"github.com/newswire-api/internal/service"
	"github.com/rs/zerolog"
)

const webhookSecret = "whsec_router_test"

type apiEnv struct {
	users    *mocks.MockUserRepository
	articles *mocks.MockArticleRepository
	billing  *mocks.MockBillingRepository
	cfg      *config.Config
	services *service.Services
	router   *gin.Engine
}

func newAPIEnv(limiter ratelimit.Limiter) *apiEnv {
	users := mocks.NewMockUserRepository()
	env := &apiEnv{
		users:    users,
		articles: mocks.NewMockArticleRepository(),
		billing:  mocks.NewMockBillingRepository(users),
	}

	env.cfg = &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:     "router-test-secret",
			TokenTTL:      time.Hour,
			AdminEmail:    "admin@example.com",
			AdminPassword: "admin-password",
			AdminName:     "Administrator",
		},
		Billing: config.BillingConfig{
			WebhookSecret: webhookSecret,
			StandardPrice: "price_standard",
			PremiumPrice:  "price_premium",
			SigTolerance:  5 * time.Minute,
		},
	}

	repos := &repository.Repositories{
		User:     env.users,
		Article:  env.articles,
		Comment:  mocks.NewMockCommentRepository(),
		Bookmark: mocks.NewMockBookmarkRepository(),
		Ad:       mocks.NewMockAdRepository(),
		Settings: mocks.NewMockSettingsRepository(),
		Billing:  env.billing,
	}
	env.services = service.NewServices(repos, env.cfg, zerolog.Nop())
	if limiter == nil {
		limiter = ratelimit.NewWindowLimiter(1000, time.Minute, 1000)
	}
	env.router = api.NewRouter(env.services, env.cfg, limiter, zerolog.Nop())
	return env
}

func (env *apiEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env *apiEnv) signup(t *testing.T, email, password string) (string, *models.User) {
	t.Helper()
	w := env.do(t, http.MethodPost, "/v1/auth/signup", "", map[string]string{
		"email":    email,
		"name":     "Test User",
		"password": password,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("signup returned %d: %s", w.Code, w.Body.String())
	}
	var resp models.AuthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode signup response: %v", err)
	}
	return resp.Token, resp.User
}

func (env *apiEnv) loginAdmin(t *testing.T) string {
	t.Helper()
	if err := env.services.Auth.BootstrapAdmin(context.Background()); err != nil {
		t.Fatalf("bootstrap admin: %v", err)
	}
	w := env.do(t, http.MethodPost, "/v1/auth/login", "", map[string]string{
		"email":    env.cfg.Auth.AdminEmail,
		"password": env.cfg.Auth.AdminPassword,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("admin login returned %d: %s", w.Code, w.Body.String())
	}
	var resp models.AuthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	return resp.Token
}

func (env *apiEnv) addArticle(slug string) *models.Article {
	article := &models.Article{
		ID:        uuid.New().String(),
		Slug:      slug,
		Title:     "Article " + slug,
		Body:      "Body",
		Status:    "published",
		CreatedAt: time.Now(),
	}
	env.articles.Articles[article.ID] = article
	env.articles.Slugs[article.Slug] = article
	return article
}

func signWebhook(payload []byte) string {
	ts := time.Now().Unix()
	return fmt.Sprintf("t=%d,v1=%s", ts, billing.ComputeSignature(payload, webhookSecret, ts))
}

func TestHealthEndpoint(t *testing.T) {
	env := newAPIEnv(nil)
	w := env.do(t, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("expected healthy, got %q", body["status"])
	}
}

func TestSignupLoginMe(t *testing.T) {
	env := newAPIEnv(nil)
	token, user := env.signup(t, "reader@example.com", "correct-horse")

	w := env.do(t, http.MethodGet, "/v1/me", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("me returned %d: %s", w.Code, w.Body.String())
	}
	var me models.User
	if err := json.Unmarshal(w.Body.Bytes(), &me); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if me.ID != user.ID || me.Email != "reader@example.com" {
		t.Errorf("unexpected profile: %+v", me)
	}

	if w := env.do(t, http.MethodGet, "/v1/me", "", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", w.Code)
	}
	if w := env.do(t, http.MethodGet, "/v1/me", "not-a-jwt", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 with garbage token, got %d", w.Code)
	}

	w = env.do(t, http.MethodPost, "/v1/auth/login", "", map[string]string{
		"email":    "reader@example.com",
		"password": "wrong",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for bad password, got %d", w.Code)
	}

	w = env.do(t, http.MethodPost, "/v1/auth/signup", "", map[string]string{
		"email":    "reader@example.com",
		"name":     "Impostor",
		"password": "another-pass",
	})
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 for duplicate email, got %d", w.Code)
	}
}

func TestRoleEnforcement(t *testing.T) {
	env := newAPIEnv(nil)
	readerToken, _ := env.signup(t, "reader@example.com", "correct-horse")
	adminToken := env.loginAdmin(t)

	articleReq := map[string]interface{}{
		"slug":   "breaking-news",
		"title":  "Breaking News",
		"body":   "Something happened.",
		"status": "published",
	}

	if w := env.do(t, http.MethodPost, "/v1/articles", readerToken, articleReq); w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for reader, got %d", w.Code)
	}
	if w := env.do(t, http.MethodPost, "/v1/articles", "", articleReq); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", w.Code)
	}
	if w := env.do(t, http.MethodPost, "/v1/articles", adminToken, articleReq); w.Code != http.StatusCreated {
		t.Errorf("expected 201 for admin, got %d", w.Code)
	}

	if w := env.do(t, http.MethodGet, "/v1/admin/stats", readerToken, nil); w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for reader on admin stats, got %d", w.Code)
	}
	if w := env.do(t, http.MethodGet, "/v1/admin/stats", adminToken, nil); w.Code != http.StatusOK {
		t.Errorf("expected 200 for admin on admin stats, got %d", w.Code)
	}
}

func TestArticleGetByIDOrSlug(t *testing.T) {
	env := newAPIEnv(nil)
	article := env.addArticle("deep-dive")

	w := env.do(t, http.MethodGet, "/v1/articles/"+article.ID, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get by id returned %d", w.Code)
	}

	w = env.do(t, http.MethodGet, "/v1/articles/deep-dive", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get by slug returned %d: %s", w.Code, w.Body.String())
	}
	var got models.Article
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != article.ID {
		t.Errorf("slug lookup resolved article %s, want %s", got.ID, article.ID)
	}

	if w := env.do(t, http.MethodGet, "/v1/articles/no-such-slug", "", nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown slug, got %d", w.Code)
	}

	// The id column is a uuid; slugs must never reach the id lookup
	for _, id := range env.articles.GetByIDCalls {
		if _, err := uuid.Parse(id); err != nil {
			t.Errorf("non-uuid %q reached the id lookup", id)
		}
	}
}

func TestDraftListingVisibleToStaffOnly(t *testing.T) {
	env := newAPIEnv(nil)
	readerToken, _ := env.signup(t, "reader@example.com", "correct-horse")
	adminToken := env.loginAdmin(t)

	if w := env.do(t, http.MethodPost, "/v1/articles", adminToken, map[string]interface{}{
		"slug":  "unfinished",
		"title": "Unfinished",
		"body":  "Still writing.",
	}); w.Code != http.StatusCreated {
		t.Fatalf("create draft returned %d: %s", w.Code, w.Body.String())
	}
	if w := env.do(t, http.MethodPost, "/v1/articles", adminToken, map[string]interface{}{
		"slug":   "shipped",
		"title":  "Shipped",
		"body":   "Done.",
		"status": "published",
	}); w.Code != http.StatusCreated {
		t.Fatalf("create published returned %d: %s", w.Code, w.Body.String())
	}

	listSlugs := func(token, path string) []string {
		t.Helper()
		w := env.do(t, http.MethodGet, path, token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("list returned %d: %s", w.Code, w.Body.String())
		}
		var body struct {
			Articles []*models.Article `json:"articles"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode list: %v", err)
		}
		slugs := make([]string, 0, len(body.Articles))
		for _, a := range body.Articles {
			slugs = append(slugs, a.Slug)
		}
		return slugs
	}

	contains := func(slugs []string, want string) bool {
		for _, s := range slugs {
			if s == want {
				return true
			}
		}
		return false
	}

	// Staff with the flag see the draft
	staff := listSlugs(adminToken, "/v1/articles?include_drafts=true")
	if !contains(staff, "unfinished") || !contains(staff, "shipped") {
		t.Errorf("expected staff listing to include the draft, got %v", staff)
	}

	// Anonymous and reader callers never do, flag or not
	if slugs := listSlugs("", "/v1/articles?include_drafts=true"); contains(slugs, "unfinished") {
		t.Errorf("draft leaked to anonymous listing: %v", slugs)
	}
	if slugs := listSlugs(readerToken, "/v1/articles?include_drafts=true"); contains(slugs, "unfinished") {
		t.Errorf("draft leaked to reader listing: %v", slugs)
	}

	// A token that is present but invalid is rejected, not anonymous
	if w := env.do(t, http.MethodGet, "/v1/articles", "not-a-jwt", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for invalid token on listing, got %d", w.Code)
	}
}

func TestUpdateProfileEndpoint(t *testing.T) {
	env := newAPIEnv(nil)
	token, user := env.signup(t, "reader@example.com", "correct-horse")

	w := env.do(t, http.MethodPut, "/v1/me", token, map[string]string{"name": "Renamed Reader"})
	if w.Code != http.StatusOK {
		t.Fatalf("update profile returned %d: %s", w.Code, w.Body.String())
	}
	var updated models.User
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if updated.Name != "Renamed Reader" || updated.ID != user.ID {
		t.Errorf("unexpected profile after update: %+v", updated)
	}
	if env.users.Users[user.ID].Name != "Renamed Reader" {
		t.Error("expected name persisted")
	}

	if w := env.do(t, http.MethodPut, "/v1/me", token, map[string]string{}); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing name, got %d", w.Code)
	}
	if w := env.do(t, http.MethodPut, "/v1/me", "", map[string]string{"name": "X"}); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", w.Code)
	}
}

func TestCommentEndpoints(t *testing.T) {
	env := newAPIEnv(nil)
	token, _ := env.signup(t, "reader@example.com", "correct-horse")
	article := env.addArticle("threaded")
	base := "/v1/articles/" + article.ID + "/comments"

	if w := env.do(t, http.MethodPost, base, "", map[string]string{"body": "hi"}); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", w.Code)
	}
	if w := env.do(t, http.MethodPost, base, token, map[string]string{}); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing body, got %d", w.Code)
	}

	w := env.do(t, http.MethodPost, base, token, map[string]string{"body": "first!"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create comment returned %d: %s", w.Code, w.Body.String())
	}
	var parent models.CommentNode
	if err := json.Unmarshal(w.Body.Bytes(), &parent); err != nil {
		t.Fatalf("decode comment: %v", err)
	}

	w = env.do(t, http.MethodPost, base, token, map[string]interface{}{
		"body":      "replying",
		"parent_id": parent.ID,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create reply returned %d: %s", w.Code, w.Body.String())
	}

	// The tree endpoint is public and returns the nested shape
	w = env.do(t, http.MethodGet, base, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("tree returned %d", w.Code)
	}
	var tree struct {
		Comments []*models.CommentNode `json:"comments"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &tree); err != nil {
		t.Fatalf("decode tree: %v", err)
	}
	if len(tree.Comments) != 1 {
		t.Fatalf("expected 1 top-level comment, got %d", len(tree.Comments))
	}
	if len(tree.Comments[0].Replies) != 1 || tree.Comments[0].Replies[0].Body != "replying" {
		t.Errorf("expected reply nested under parent")
	}

	if w := env.do(t, http.MethodGet, "/v1/articles/no-such-article/comments", "", nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown article, got %d", w.Code)
	}
}

func TestWebhookEndpoint(t *testing.T) {
	env := newAPIEnv(nil)
	_, user := env.signup(t, "payer@example.com", "correct-horse")
	env.users.Users[user.ID].BillingCustomerRef = "cus_1"
	ctx := context.Background()

	payload := []byte(`{
		"id": "evt_1",
		"type": "invoice.payment_succeeded",
		"data": {"object": {
			"id": "in_1",
			"customer": "cus_1",
			"amount_paid": 1500,
			"currency": "usd",
			"lines": {"data": [{"price": {"id": "price_premium"}}]}
		}}
	}`)

	// Bad signature: 400 and nothing written
	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/billing", bytes.NewReader(payload))
	req.Header.Set("Webhook-Signature", "t=1,v1=bogus")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad signature, got %d", w.Code)
	}
	if n, _ := env.billing.PaymentCount(ctx); n != 0 {
		t.Errorf("expected no payment records after rejected delivery, got %d", n)
	}

	// Valid signature: 200 and the payment lands
	req = httptest.NewRequest(http.MethodPost, "/v1/webhooks/billing", bytes.NewReader(payload))
	req.Header.Set("Webhook-Signature", signWebhook(payload))
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if n, _ := env.billing.PaymentCount(ctx); n != 1 {
		t.Errorf("expected 1 payment record, got %d", n)
	}
	if env.users.Users[user.ID].Tier != models.TierPremium {
		t.Errorf("expected tier premium, got %s", env.users.Users[user.ID].Tier)
	}

	// Malformed but correctly signed payload: 400
	bad := []byte(`{"id": "evt_2"}`)
	req = httptest.NewRequest(http.MethodPost, "/v1/webhooks/billing", bytes.NewReader(bad))
	req.Header.Set("Webhook-Signature", signWebhook(bad))
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed event, got %d", w.Code)
	}
}

func TestSettingsEndpoints(t *testing.T) {
	env := newAPIEnv(nil)
	token, _ := env.signup(t, "reader@example.com", "correct-horse")

	w := env.do(t, http.MethodGet, "/v1/settings", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get settings returned %d", w.Code)
	}
	var defaults models.UserSettings
	if err := json.Unmarshal(w.Body.Bytes(), &defaults); err != nil {
		t.Fatalf("decode defaults: %v", err)
	}
	if defaults.Theme.Mode != "system" {
		t.Errorf("expected default theme mode system, got %q", defaults.Theme.Mode)
	}

	updated := defaults
	updated.Theme.Mode = "dark"
	updated.Font.Size = 20
	if w := env.do(t, http.MethodPut, "/v1/settings", token, updated); w.Code != http.StatusOK {
		t.Fatalf("put settings returned %d: %s", w.Code, w.Body.String())
	}

	w = env.do(t, http.MethodGet, "/v1/settings", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get settings returned %d", w.Code)
	}
	var got models.UserSettings
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Theme.Mode != "dark" || got.Font.Size != 20 {
		t.Errorf("expected saved settings back, got %+v", got)
	}
}

func TestRateLimitOnAuthEndpoints(t *testing.T) {
	env := newAPIEnv(ratelimit.NewWindowLimiter(2, time.Minute, 100))

	for i := 0; i < 2; i++ {
		w := env.do(t, http.MethodPost, "/v1/auth/login", "", map[string]string{
			"email":    "nobody@example.com",
			"password": "guess",
		})
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected 401, got %d", i+1, w.Code)
		}
	}

	w := env.do(t, http.MethodPost, "/v1/auth/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "guess",
	})
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429 after limit, got %d", w.Code)
	}
}
