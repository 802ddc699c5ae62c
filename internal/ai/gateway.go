package ai

import (
	"context"
	"fmt"
)

// Gateway routes a generation request to the provider selected by the
// request's aiModel field. Either provider may be nil when its API key is
// not configured; selecting it then fails with ErrNotConfigured before any
// network call.
type Gateway struct {
	claude *ClaudeClient
	gemini *GeminiClient
}

// NewGateway wires the provider clients into a routing Client.
func NewGateway(claude *ClaudeClient, gemini *GeminiClient) *Gateway {
	return &Gateway{claude: claude, gemini: gemini}
}

// Generate implements Client. An empty model defaults to Claude.
func (g *Gateway) Generate(ctx context.Context, model, prompt string) (*Excuses, error) {
	switch model {
	case ModelGemini:
		if g.gemini == nil {
			return nil, ErrNotConfigured
		}
		return g.gemini.Generate(ctx, prompt)
	case ModelClaude, "":
		if g.claude == nil {
			return nil, ErrNotConfigured
		}
		return g.claude.Generate(ctx, prompt)
	default:
		return nil, fmt.Errorf("%w: unknown model %q", ErrNotConfigured, model)
	}
}
