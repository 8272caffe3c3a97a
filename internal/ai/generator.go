package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/newswire-api/internal/config"
	"github.com/rs/zerolog"
)

// ErrNotConfigured is returned when no generation endpoint is configured
var ErrNotConfigured = errors.New("ai generation not configured")

// Generator produces AI-assisted editorial content. The model call itself
// is an external collaborator behind this interface.
type Generator interface {
	Summarize(ctx context.Context, body string) (string, error)
	SuggestTags(ctx context.Context, title, body string) ([]string, error)
}

// httpGenerator posts generation tasks to a configured endpoint
type httpGenerator struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     zerolog.Logger
}

// NewGenerator creates an HTTP-backed generator, or a disabled one when no
// endpoint is configured
func NewGenerator(cfg *config.AIConfig, log zerolog.Logger) Generator {
	l := log.With().Str("component", "ai").Logger()
	if cfg.BaseURL == "" {
		l.Info().Msg("AI_API_URL not set, content tools disabled")
		return &disabledGenerator{}
	}
	return &httpGenerator{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: cfg.Timeout},
		log:     l,
	}
}

type generateRequest struct {
	Task  string `json:"task"`
	Title string `json:"title,omitempty"`
	Text  string `json:"text"`
}

type generateResponse struct {
	Text string   `json:"text"`
	Tags []string `json:"tags"`
}

// Summarize produces a short summary of an article body
func (g *httpGenerator) Summarize(ctx context.Context, body string) (string, error) {
	resp, err := g.generate(ctx, &generateRequest{Task: "summarize", Text: body})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// SuggestTags proposes tags for an article
func (g *httpGenerator) SuggestTags(ctx context.Context, title, body string) ([]string, error) {
	resp, err := g.generate(ctx, &generateRequest{Task: "tags", Title: title, Text: body})
	if err != nil {
		return nil, err
	}
	return resp.Tags, nil
}

func (g *httpGenerator) generate(ctx context.Context, req *generateRequest) (*generateResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode generation request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/generate", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build generation request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		g.log.Error().Int("status", resp.StatusCode).Str("task", req.Task).Msg("Generation endpoint returned error")
		return nil, fmt.Errorf("generation endpoint returned status %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode generation response: %w", err)
	}
	return &out, nil
}

type disabledGenerator struct{}

func (*disabledGenerator) Summarize(ctx context.Context, body string) (string, error) {
	return "", ErrNotConfigured
}

func (*disabledGenerator) SuggestTags(ctx context.Context, title, body string) ([]string, error) {
	return nil, ErrNotConfigured
}
