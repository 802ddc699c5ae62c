package server

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// WithLogging wraps a handler with request logging. Each request gets a
// generated id so its log lines can be correlated.
func WithLogging(log *slog.Logger, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()

		log.Info("request started",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"client_ip", ClientIP(r),
		)

		next(w, r)

		log.Info("request completed",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

// JSONResponse writes a JSON response
func JSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// errorBody is the generate endpoint's failure shape.
type errorBody struct {
	Error string `json:"error"`
}

// statusBody is the unlock and share endpoints' response shape.
type statusBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorResponse writes a {"error": ...} failure body.
func ErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	JSONResponse(w, statusCode, errorBody{Error: message})
}

// FailResponse writes a {"success": false, "message": ...} failure body.
func FailResponse(w http.ResponseWriter, statusCode int, message string) {
	JSONResponse(w, statusCode, statusBody{Success: false, Message: message})
}

// ParseJSONBody parses the request body into the given struct
func ParseJSONBody(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// ClientIP extracts the client IP address for rate-limit keying.
// Checks X-Forwarded-For, X-Real-IP, then falls back to RemoteAddr.
// Forwarded headers are trusted as-is; the deployment sits behind a
// reverse proxy that sets them.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// Take first IP in chain
		if i := strings.IndexAny(xff, ", "); i >= 0 {
			return xff[:i]
		}
		return xff
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		if r.RemoteAddr != "" {
			return r.RemoteAddr
		}
		return "unknown"
	}
	return host
}
