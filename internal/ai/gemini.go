package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/genai"
)

const geminiMaxOutputTokens = 4096

// GeminiClient generates excuses through Google's Gemini API using the
// genai SDK.
type GeminiClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	log     *slog.Logger
}

// NewGeminiClient creates a Gemini client, or an error if the SDK client
// cannot be constructed. Callers should only construct one when an API key
// is configured; a nil GeminiClient in the Gateway means "not configured".
func NewGeminiClient(ctx context.Context, apiKey, model string, timeout time.Duration, log *slog.Logger) (*GeminiClient, error) {
	gi, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &GeminiClient{
		client:  gi,
		model:   model,
		timeout: timeout,
		log:     log.With("component", "gemini_client"),
	}, nil
}

// Generate sends the prompt as user content and parses the excuse pair out
// of the response text.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (*Excuses, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cfg := &genai.GenerateContentConfig{
		MaxOutputTokens: geminiMaxOutputTokens,
	}
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			c.log.ErrorContext(ctx, "gemini request timed out", "timeout", c.timeout)
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("%w: empty completion", ErrUpstream)
	}

	return ParseExcuses(text)
}
