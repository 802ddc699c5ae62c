// Package server implements the HTTP API: excuse generation, pro-mode
// unlock, and Slack sharing. Handlers hold their dependencies and map each
// failure mode to a fixed status and user-facing message; detailed causes
// are logged server-side only.
package server

import (
	"errors"
	"log/slog"
	"math/rand"
	"net/http"
	"time"

	"github.com/journeyfurther/excuseme/internal/ai"
	"github.com/journeyfurther/excuseme/internal/prompt"
	"github.com/journeyfurther/excuseme/internal/ratelimit"
)

type customOptions struct {
	Style             string   `json:"style,omitempty"`
	NarrativeElements []string `json:"narrativeElements,omitempty"`
	ExcuseFocus       string   `json:"excuseFocus,omitempty"`
	AIModel           string   `json:"aiModel,omitempty"`
}

type generateRequest struct {
	Scenario      string         `json:"scenario"`
	Audience      string         `json:"audience"`
	CustomOptions *customOptions `json:"customOptions,omitempty"`
}

type generateResponse struct {
	Excuse1      *ai.Excuse `json:"excuse1"`
	Excuse2      *ai.Excuse `json:"excuse2"`
	ComedicStyle string     `json:"comedicStyle"`
	ExcuseFocus  string     `json:"excuseFocus,omitempty"`
}

// GenerateHandler serves POST /api/generate-excuses.
type GenerateHandler struct {
	client  ai.Client
	limiter ratelimit.Limiter
	log     *slog.Logger

	// rng and now are swapped in tests; nil rng uses the shared source.
	rng *rand.Rand
	now func() time.Time
}

// NewGenerateHandler creates the excuse generation handler.
func NewGenerateHandler(client ai.Client, limiter ratelimit.Limiter, log *slog.Logger) *GenerateHandler {
	return &GenerateHandler{
		client:  client,
		limiter: limiter,
		log:     log.With("component", "generate_handler"),
		now:     time.Now,
	}
}

// Generate validates the request, checks the rate limit, assembles the
// prompt, and calls the selected provider.
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed. Please use POST.")
		return
	}

	var req generateRequest
	if err := ParseJSONBody(r, &req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "Missing required fields. Please provide scenario and audience.")
		return
	}

	now := h.now()
	if msg := validateGenerate(&req, now); msg != "" {
		ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	clientIP := ClientIP(r)
	result, err := h.limiter.Allow(ctx, "generate:"+clientIP)
	if err != nil {
		h.log.ErrorContext(ctx, "rate limit check failed", "error", err)
	}
	if !result.Allowed {
		h.log.InfoContext(ctx, "request rate limited", "client_ip", clientIP)
		ErrorResponse(w, http.StatusTooManyRequests, "Too many requests. Please try again in a few moments.")
		return
	}

	var requestedStyle, focusID, model string
	var elementIDs []string
	if req.CustomOptions != nil {
		requestedStyle = req.CustomOptions.Style
		focusID = req.CustomOptions.ExcuseFocus
		elementIDs = req.CustomOptions.NarrativeElements
		model = req.CustomOptions.AIModel
	}

	style := prompt.ResolveStyle(requestedStyle, h.rng)
	promptText := prompt.Build(prompt.Input{
		Scenario:   req.Scenario,
		Audience:   req.Audience,
		Style:      style,
		ElementIDs: elementIDs,
		FocusID:    focusID,
		Now:        now,
	})

	h.log.InfoContext(ctx, "generating excuses",
		"client_ip", clientIP,
		"audience", req.Audience,
		"style", style,
		"focus", focusID,
		"elements", len(elementIDs),
		"model", model,
	)

	excuses, err := h.client.Generate(ctx, model, promptText)
	if err != nil {
		h.writeGenerateError(w, r, model, err)
		return
	}

	JSONResponse(w, http.StatusOK, generateResponse{
		Excuse1:      excuses.Excuse1,
		Excuse2:      excuses.Excuse2,
		ComedicStyle: style,
		ExcuseFocus:  focusID,
	})
}

func (h *GenerateHandler) writeGenerateError(w http.ResponseWriter, r *http.Request, model string, err error) {
	h.log.ErrorContext(r.Context(), "excuse generation failed", "model", model, "error", err)

	switch {
	case errors.Is(err, ai.ErrNotConfigured):
		if model == ai.ModelGemini {
			ErrorResponse(w, http.StatusInternalServerError, "Gemini API is not configured. Please try with Claude model.")
			return
		}
		ErrorResponse(w, http.StatusInternalServerError, "Server configuration error. Please contact support.")
	case errors.Is(err, ai.ErrTimeout):
		ErrorResponse(w, http.StatusGatewayTimeout, "Request timed out. Please try again.")
	case errors.Is(err, ai.ErrUpstream):
		ErrorResponse(w, http.StatusInternalServerError, "Failed to generate excuses. Please try again.")
	case errors.Is(err, ai.ErrUnparseable):
		ErrorResponse(w, http.StatusInternalServerError, "Failed to process excuses. Please try again.")
	case errors.Is(err, ai.ErrInvalidFormat):
		ErrorResponse(w, http.StatusInternalServerError, "Received invalid response format. Please try again.")
	default:
		ErrorResponse(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
	}
}
