package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	defaultAnthropicBaseURL = "https://api.anthropic.com"
	anthropicVersion        = "2023-06-01"
	claudeMaxTokens         = 2000
)

// ClaudeClient calls the Anthropic Messages API directly over HTTPS.
type ClaudeClient struct {
	apiKey  string
	model   string
	baseURL string
	timeout time.Duration
	client  *http.Client
	log     *slog.Logger
}

// NewClaudeClient creates a Claude client. An empty apiKey is allowed: the
// client reports ErrNotConfigured at call time, before any network I/O, so
// the misconfiguration surfaces per request rather than at startup.
func NewClaudeClient(apiKey, model string, timeout time.Duration, log *slog.Logger) *ClaudeClient {
	return &ClaudeClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultAnthropicBaseURL,
		timeout: timeout,
		// No client-level timeout: cancellation is context-driven so a
		// timeout is distinguishable from other transport errors.
		client: &http.Client{},
		log:    log.With("component", "claude_client"),
	}
}

type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Messages  []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// Generate sends the prompt as a single user message and parses the excuse
// pair out of the completion text.
func (c *ClaudeClient) Generate(ctx context.Context, prompt string) (*Excuses, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(claudeRequest{
		Model:     c.model,
		MaxTokens: claudeMaxTokens,
		Messages:  []claudeMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: marshal request: %v", ErrUpstream, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			c.log.ErrorContext(ctx, "claude request timed out", "timeout", c.timeout)
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		preview, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		c.log.ErrorContext(ctx, "claude API error", "status", resp.StatusCode, "error_preview", string(preview))
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var parsed claudeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrUpstream, err)
	}
	if len(parsed.Content) == 0 {
		return nil, fmt.Errorf("%w: empty completion", ErrUpstream)
	}

	return ParseExcuses(parsed.Content[0].Text)
}
