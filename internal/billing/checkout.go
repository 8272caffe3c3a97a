package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/newswire-api/internal/config"
	"github.com/rs/zerolog"
)

// CheckoutSessionInfo is what the provider returns when a hosted checkout
// session is created
type CheckoutSessionInfo struct {
	SessionID   string
	URL         string
	CustomerRef string
}

// CheckoutClient creates hosted checkout sessions with the payment
// provider. The hosted UI itself is the provider's concern.
type CheckoutClient interface {
	CreateSession(ctx context.Context, userID, email, priceID string) (*CheckoutSessionInfo, error)
}

// httpCheckoutClient talks to the provider's REST API
type httpCheckoutClient struct {
	baseURL    string
	apiKey     string
	successURL string
	cancelURL  string
	client     *http.Client
	log        zerolog.Logger
}

// NewCheckoutClient creates a provider-backed checkout client
func NewCheckoutClient(cfg *config.BillingConfig, log zerolog.Logger) CheckoutClient {
	return &httpCheckoutClient{
		baseURL:    strings.TrimRight(cfg.APIBaseURL, "/"),
		apiKey:     cfg.APIKey,
		successURL: cfg.SuccessURL,
		cancelURL:  cfg.CancelURL,
		client:     &http.Client{Timeout: 15 * time.Second},
		log:        log.With().Str("component", "checkout").Logger(),
	}
}

// CreateSession creates a subscription checkout session. The user id rides
// along in session metadata so the checkout.session.completed webhook can
// resolve it back to an account.
func (c *httpCheckoutClient) CreateSession(ctx context.Context, userID, email, priceID string) (*CheckoutSessionInfo, error) {
	form := url.Values{}
	form.Set("mode", "subscription")
	form.Set("customer_email", email)
	form.Set("line_items[0][price]", priceID)
	form.Set("line_items[0][quantity]", "1")
	form.Set("success_url", c.successURL)
	form.Set("cancel_url", c.cancelURL)
	form.Set("metadata[user_id]", userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build checkout request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("checkout request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		c.log.Error().Int("status", resp.StatusCode).Msg("Provider rejected checkout session")
		return nil, fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	var session struct {
		ID       string `json:"id"`
		URL      string `json:"url"`
		Customer string `json:"customer"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("failed to decode checkout session: %w", err)
	}

	return &CheckoutSessionInfo{
		SessionID:   session.ID,
		URL:         session.URL,
		CustomerRef: session.Customer,
	}, nil
}
