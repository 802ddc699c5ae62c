package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/journeyfurther/excuseme/internal/auth"
	"github.com/journeyfurther/excuseme/internal/ratelimit"
)

type unlockRequest struct {
	Password string `json:"password"`
}

type unlockResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	Message string `json:"message"`
}

// UnlockHandler serves POST /api/admin-unlock, the pro-mode password check.
type UnlockHandler struct {
	passwordHash string
	limiter      ratelimit.Limiter
	log          *slog.Logger
}

// NewUnlockHandler creates the unlock handler. An empty passwordHash is
// allowed and reported as a configuration error at request time.
func NewUnlockHandler(passwordHash string, limiter ratelimit.Limiter, log *slog.Logger) *UnlockHandler {
	return &UnlockHandler{
		passwordHash: passwordHash,
		limiter:      limiter,
		log:          log.With("component", "unlock_handler"),
	}
}

// Unlock verifies the shared admin password and issues a session token.
// The attempt is counted against the window before the password is
// checked, so repeated wrong guesses exhaust the limit.
func (h *UnlockHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		FailResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	clientIP := ClientIP(r)
	result, err := h.limiter.Allow(ctx, "admin-unlock:"+clientIP)
	if err != nil {
		h.log.ErrorContext(ctx, "rate limit check failed", "error", err)
	}
	if !result.Allowed {
		h.log.InfoContext(ctx, "unlock attempt rate limited", "client_ip", clientIP)
		FailResponse(w, http.StatusTooManyRequests, "Too many attempts. Please try again in 5 minutes.")
		return
	}

	var req unlockRequest
	if err := ParseJSONBody(r, &req); err != nil || req.Password == "" {
		FailResponse(w, http.StatusBadRequest, "Password is required")
		return
	}

	if h.passwordHash == "" {
		h.log.ErrorContext(ctx, "admin password hash not configured")
		FailResponse(w, http.StatusInternalServerError, "Server configuration error")
		return
	}

	if !auth.VerifyPassword(req.Password, h.passwordHash) {
		plural := "s"
		if result.Remaining == 1 {
			plural = ""
		}
		FailResponse(w, http.StatusUnauthorized,
			fmt.Sprintf("Incorrect password. %d attempt%s remaining.", result.Remaining, plural))
		return
	}

	token, err := auth.NewSessionToken()
	if err != nil {
		h.log.ErrorContext(ctx, "session token generation failed", "error", err)
		FailResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.log.InfoContext(ctx, "pro mode unlocked", "client_ip", clientIP)
	JSONResponse(w, http.StatusOK, unlockResponse{
		Success: true,
		Token:   token,
		Message: "Pro mode unlocked successfully",
	})
}
