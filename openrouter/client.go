// Package openrouter calls the OpenRouter chat-completions API to generate
// scoring guidelines. Model responses are untrusted text: the JSON payload is
// recovered with a chain of extraction fallbacks before being decoded.
package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Mattiasalardi/VDP/models"
)

const (
	defaultBaseURL = "https://openrouter.ai/api/v1"
	DefaultModel   = "claude-3.5-sonnet"

	maxTokens      = 2000
	temperature    = 0.1
	requestTimeout = 30 * time.Second
)

// SupportedModels maps short model names to OpenRouter model identifiers
var SupportedModels = map[string]string{
	"claude-3.5-sonnet": "anthropic/claude-3.5-sonnet",
	"claude-3-opus":     "anthropic/claude-3-opus",
	"claude-3-haiku":    "anthropic/claude-3-haiku",
	"gpt-4o":            "openai/gpt-4o",
	"gpt-4o-mini":       "openai/gpt-4o-mini",
}

var (
	// ErrMalformedResponse means no JSON document could be recovered from the
	// model output
	ErrMalformedResponse = errors.New("model response contains no parsable JSON")
	// ErrInvalidStructure means the JSON parsed but is not a guidelines object
	ErrInvalidStructure = errors.New("model response missing categories list")
	// ErrUnsupportedModel means the requested short model name is unknown
	ErrUnsupportedModel = errors.New("unsupported model")
	// ErrNoAPIKey means the client was built without credentials
	ErrNoAPIKey = errors.New("OpenRouter API key not configured")
)

// UpstreamError reports a failed API call: non-200 status, timeout or
// transport failure
type UpstreamError struct {
	StatusCode int
	Detail     string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("openrouter: status %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("openrouter: %s", e.Detail)
}

// Message is one chat message
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

// Client generates structured guidelines from a prompt
type Client interface {
	Generate(ctx context.Context, prompt, model string) (*models.GeneratedGuidelines, error)
}

// Option configures the client
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	apiKey    string
	appDomain string
	baseURL   string
	http      *http.Client
}

// NewClient creates an OpenRouter API client. appDomain is sent as the
// HTTP-Referer attribution header.
func NewClient(apiKey, appDomain string, opts ...Option) Client {
	c := &httpClient{
		apiKey:    apiKey,
		appDomain: appDomain,
		baseURL:   defaultBaseURL,
		http:      &http.Client{Timeout: requestTimeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Generate sends one chat completion request and decodes the guidelines JSON
// out of the assistant message
func (c *httpClient) Generate(ctx context.Context, prompt, model string) (*models.GeneratedGuidelines, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}
	if model == "" {
		model = DefaultModel
	}
	routed, ok := SupportedModels[model]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedModel, model)
	}

	body, err := json.Marshal(chatRequest{
		Model:       routed,
		Messages:    []Message{{Role: "user", Content: prompt}},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("HTTP-Referer", c.appDomain)
	req.Header.Set("X-Title", "VDP Application Platform")

	zap.L().Info("generating guidelines", zap.String("model", routed))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &UpstreamError{Detail: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{Detail: err.Error()}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Detail: string(respBody)}
	}

	var chat chatResponse
	if err := json.Unmarshal(respBody, &chat); err != nil {
		return nil, &UpstreamError{Detail: fmt.Sprintf("undecodable response body: %v", err)}
	}
	if len(chat.Choices) == 0 || chat.Choices[0].Message.Content == "" {
		return nil, &UpstreamError{Detail: "empty completion"}
	}

	guidelines, err := ExtractGuidelines(chat.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	zap.L().Info("guidelines generated",
		zap.Int("categories", len(guidelines.Categories)),
		zap.Int("prompt_tokens", chat.Usage.PromptTokens),
		zap.Int("completion_tokens", chat.Usage.CompletionTokens))
	return guidelines, nil
}
