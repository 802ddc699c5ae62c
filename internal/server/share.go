package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/journeyfurther/excuseme/internal/ratelimit"
	"github.com/journeyfurther/excuseme/internal/slack"
)

type shareRequest struct {
	Scenario    string `json:"scenario"`
	ExcuseText  string `json:"excuseText"`
	ExcuseType  string `json:"excuseType"`
	ImageBase64 string `json:"imageBase64"`
}

type shareResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Remaining int    `json:"remaining"`
}

// ShareHandler serves POST /api/share-to-slack.
type ShareHandler struct {
	slack   *slack.Client
	limiter ratelimit.Limiter
	log     *slog.Logger
}

// NewShareHandler creates the Slack share handler.
func NewShareHandler(client *slack.Client, limiter ratelimit.Limiter, log *slog.Logger) *ShareHandler {
	return &ShareHandler{
		slack:   client,
		limiter: limiter,
		log:     log.With("component", "share_handler"),
	}
}

// Share posts an excuse to the configured Slack webhook.
func (h *ShareHandler) Share(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		FailResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	clientIP := ClientIP(r)
	result, err := h.limiter.Allow(ctx, "slack-share:"+clientIP)
	if err != nil {
		h.log.ErrorContext(ctx, "rate limit check failed", "error", err)
	}
	if !result.Allowed {
		h.log.InfoContext(ctx, "share rate limited", "client_ip", clientIP)
		FailResponse(w, http.StatusTooManyRequests, "Share limit reached. Please try again in an hour.")
		return
	}

	var req shareRequest
	if err := ParseJSONBody(r, &req); err != nil {
		FailResponse(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if req.Scenario == "" || req.ExcuseText == "" || req.ExcuseType == "" || req.ImageBase64 == "" {
		FailResponse(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	err = h.slack.Post(ctx, slack.Share{
		Scenario:    req.Scenario,
		ExcuseText:  req.ExcuseText,
		ExcuseType:  req.ExcuseType,
		ImageBase64: req.ImageBase64,
	})
	if err != nil {
		h.writeShareError(w, r, err)
		return
	}

	h.log.InfoContext(ctx, "excuse shared to slack", "client_ip", clientIP, "remaining", result.Remaining)
	JSONResponse(w, http.StatusOK, shareResponse{
		Success:   true,
		Message:   "Shared to Slack successfully",
		Remaining: result.Remaining,
	})
}

func (h *ShareHandler) writeShareError(w http.ResponseWriter, r *http.Request, err error) {
	h.log.ErrorContext(r.Context(), "slack share failed", "error", err)

	switch {
	case errors.Is(err, slack.ErrNotConfigured):
		FailResponse(w, http.StatusInternalServerError, "Slack integration not configured")
	case errors.Is(err, slack.ErrInvalidImage):
		FailResponse(w, http.StatusBadRequest, "Invalid image format")
	default:
		FailResponse(w, http.StatusInternalServerError, "Failed to post to Slack")
	}
}
