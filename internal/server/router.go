package server

import (
	"log/slog"
	"net/http"

	"github.com/journeyfurther/excuseme/internal/ai"
	"github.com/journeyfurther/excuseme/internal/ratelimit"
	"github.com/journeyfurther/excuseme/internal/slack"
)

// Limiters groups the three independent rate-limit windows the API uses.
type Limiters struct {
	Generate ratelimit.Limiter
	Unlock   ratelimit.Limiter
	Share    ratelimit.Limiter
}

// NewRouter wires the handlers onto a ServeMux. Paths are registered
// without a method pattern: each handler performs its own method check so
// non-POST requests get the API's JSON 405 body instead of the mux default.
func NewRouter(client ai.Client, slackClient *slack.Client, passwordHash string, limiters Limiters, log *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	generateHandler := NewGenerateHandler(client, limiters.Generate, log)
	unlockHandler := NewUnlockHandler(passwordHash, limiters.Unlock, log)
	shareHandler := NewShareHandler(slackClient, limiters.Share, log)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("/api/generate-excuses", WithLogging(log, generateHandler.Generate))
	mux.HandleFunc("/api/admin-unlock", WithLogging(log, unlockHandler.Unlock))
	mux.HandleFunc("/api/share-to-slack", WithLogging(log, shareHandler.Share))

	return mux
}
