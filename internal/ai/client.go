// Package ai integrates the external generative-text providers used for
// excuse generation. It provides a Client interface with Claude and Gemini
// implementations behind a Gateway that routes per request.
package ai

import (
	"context"
	"errors"
)

// Model identifiers accepted on requests.
const (
	ModelClaude = "claude"
	ModelGemini = "gemini"
)

// Sentinel errors for the failure modes the HTTP layer maps to statuses.
// None are retried; each maps 1:1 to a response status.
var (
	ErrNotConfigured = errors.New("ai provider is not configured")
	ErrUpstream      = errors.New("ai provider request failed")
	ErrTimeout       = errors.New("ai provider request timed out")
	ErrUnparseable   = errors.New("ai response is not valid JSON")
	ErrInvalidFormat = errors.New("ai response is missing excuse fields")
)

// Excuse is one generated excuse.
type Excuse struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Excuses is the parsed pair the model must return: excuse1 mundane,
// excuse2 comedic. Pointers so a missing key is distinguishable from an
// empty object.
type Excuses struct {
	Excuse1 *Excuse `json:"excuse1"`
	Excuse2 *Excuse `json:"excuse2"`
}

// Client generates an excuse pair from an assembled prompt using the
// selected model. An empty model defaults to Claude.
type Client interface {
	Generate(ctx context.Context, model, prompt string) (*Excuses, error)
}
