package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/journeyfurther/excuseme/internal/ai"
	"github.com/journeyfurther/excuseme/internal/ratelimit"
	"github.com/journeyfurther/excuseme/internal/slack"
)

// stubAI is an ai.Client that records what it was called with.
type stubAI struct {
	excuses *ai.Excuses
	err     error

	calls     int
	gotModel  string
	gotPrompt string
}

func (s *stubAI) Generate(_ context.Context, model, prompt string) (*ai.Excuses, error) {
	s.calls++
	s.gotModel = model
	s.gotPrompt = prompt
	if s.err != nil {
		return nil, s.err
	}
	return s.excuses, nil
}

func validExcuses() *ai.Excuses {
	return &ai.Excuses{
		Excuse1: &ai.Excuse{Title: "Traffic Delay", Text: "I got stuck in traffic."},
		Excuse2: &ai.Excuse{Title: "Fox Incident", Text: "A fox took my laptop."},
	}
}

func postJSON(t *testing.T, handler http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v (%s)", err, rec.Body.String())
	}
	return body
}

func newGenerateHandler(client ai.Client, max int) *GenerateHandler {
	return NewGenerateHandler(client, ratelimit.NewMemoryLimiter(max, time.Minute), slog.Default())
}

func TestGenerateValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{
			name:    "missing scenario",
			body:    `{"audience":"Your Manager"}`,
			wantMsg: "Missing required fields. Please provide scenario and audience.",
		},
		{
			name:    "missing audience",
			body:    `{"scenario":"I missed the deadline"}`,
			wantMsg: "Missing required fields. Please provide scenario and audience.",
		},
		{
			name:    "malformed json",
			body:    `{"scenario":`,
			wantMsg: "Missing required fields. Please provide scenario and audience.",
		},
		{
			name:    "whitespace scenario",
			body:    `{"scenario":"   ","audience":"Your Manager"}`,
			wantMsg: "Scenario must be a non-empty string.",
		},
		{
			name:    "whitespace audience",
			body:    `{"scenario":"I missed the deadline","audience":"  "}`,
			wantMsg: "Audience must be a non-empty string.",
		},
		{
			name:    "unknown audience",
			body:    `{"scenario":"I missed the deadline","audience":"Your Cat"}`,
			wantMsg: "Invalid audience option.",
		},
		{
			name:    "scenario too long",
			body:    fmt.Sprintf(`{"scenario":%q,"audience":"Your Manager"}`, strings.Repeat("a", 1001)),
			wantMsg: "Scenario is too long. Please limit to 1000 characters.",
		},
		{
			name:    "invalid style",
			body:    `{"scenario":"I missed the deadline","audience":"Your Manager","customOptions":{"style":"slapstick"}}`,
			wantMsg: "Invalid comedy style: slapstick",
		},
		{
			name:    "too many narrative elements",
			body:    `{"scenario":"I missed the deadline","audience":"Your Manager","customOptions":{"narrativeElements":["injured-fox","office-dog","duck-clipboard","yorkshire-pudding"]}}`,
			wantMsg: "Maximum 3 narrative elements allowed",
		},
		{
			name:    "unknown narrative element",
			body:    `{"scenario":"I missed the deadline","audience":"Your Manager","customOptions":{"narrativeElements":["sentient-stapler"]}}`,
			wantMsg: "Invalid narrative element ID: sentient-stapler",
		},
		{
			name:    "unknown excuse focus",
			body:    `{"scenario":"I missed the deadline","audience":"Your Manager","customOptions":{"excuseFocus":"blame-the-intern"}}`,
			wantMsg: "Invalid excuse focus: blame-the-intern",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			client := &stubAI{excuses: validExcuses()}
			h := newGenerateHandler(client, 100)
			rec := postJSON(t, h.Generate, "/api/generate-excuses", tc.body)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (%s)", rec.Code, rec.Body.String())
			}
			if got := decodeBody(t, rec)["error"]; got != tc.wantMsg {
				t.Errorf("error = %q, want %q", got, tc.wantMsg)
			}
			if client.calls != 0 {
				t.Errorf("AI client called %d times for an invalid request", client.calls)
			}
		})
	}
}

func TestGenerateSeasonalElementOutOfWindow(t *testing.T) {
	t.Parallel()

	client := &stubAI{excuses: validExcuses()}
	h := newGenerateHandler(client, 100)
	h.now = func() time.Time { return time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC) }

	rec := postJSON(t, h.Generate, "/api/generate-excuses",
		`{"scenario":"I missed the deadline","audience":"Your Manager","customOptions":{"narrativeElements":["halloween"]}}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if got := decodeBody(t, rec)["error"]; got != "Invalid narrative element ID: halloween" {
		t.Errorf("error = %q", got)
	}
}

func TestGenerateMethodNotAllowed(t *testing.T) {
	t.Parallel()

	h := newGenerateHandler(&stubAI{excuses: validExcuses()}, 100)
	req := httptest.NewRequest(http.MethodGet, "/api/generate-excuses", nil)
	rec := httptest.NewRecorder()
	h.Generate(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
	if got := decodeBody(t, rec)["error"]; got != "Method not allowed. Please use POST." {
		t.Errorf("error = %q", got)
	}
}

func TestGenerateSuccess(t *testing.T) {
	t.Parallel()

	client := &stubAI{excuses: validExcuses()}
	h := newGenerateHandler(client, 100)

	rec := postJSON(t, h.Generate, "/api/generate-excuses",
		`{"scenario":"I missed the deadline","audience":"Your Manager","customOptions":{"style":"Deadpan","excuseFocus":"blame-technology","aiModel":"claude"}}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if body["comedicStyle"] != "Deadpan" {
		t.Errorf("comedicStyle = %v, want Deadpan", body["comedicStyle"])
	}
	if body["excuseFocus"] != "blame-technology" {
		t.Errorf("excuseFocus = %v", body["excuseFocus"])
	}
	excuse1, ok := body["excuse1"].(map[string]any)
	if !ok || excuse1["title"] != "Traffic Delay" {
		t.Errorf("excuse1 = %v", body["excuse1"])
	}
	if _, ok := body["excuse2"]; !ok {
		t.Error("response missing excuse2")
	}

	if client.gotModel != "claude" {
		t.Errorf("model = %q, want claude", client.gotModel)
	}
	if !strings.Contains(client.gotPrompt, "SCENARIO: I missed the deadline") {
		t.Error("prompt missing scenario")
	}
	if !strings.Contains(client.gotPrompt, "(Deadpan Comedy Style)") {
		t.Error("prompt missing resolved style")
	}
}

func TestGenerateOmitsEmptyFocus(t *testing.T) {
	t.Parallel()

	h := newGenerateHandler(&stubAI{excuses: validExcuses()}, 100)
	rec := postJSON(t, h.Generate, "/api/generate-excuses",
		`{"scenario":"I missed the deadline","audience":"Your Manager"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if _, present := decodeBody(t, rec)["excuseFocus"]; present {
		t.Error("excuseFocus present in response with no focus selected")
	}
}

func TestGeneratePersonaFocusPrompt(t *testing.T) {
	t.Parallel()

	client := &stubAI{excuses: validExcuses()}
	h := newGenerateHandler(client, 100)

	rec := postJSON(t, h.Generate, "/api/generate-excuses",
		`{"scenario":"I missed the deadline","audience":"Robin Skidmore","customOptions":{"excuseFocus":"blame-robin-skidmore"}}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if strings.Contains(client.gotPrompt, "ROBIN_SKIDMORE_PERSONA_PLACEHOLDER") {
		t.Error("prompt contains the raw placeholder token")
	}
	if !strings.Contains(client.gotPrompt, "Robin Skidmore, CEO & Founder of Journey Further") {
		t.Error("prompt missing the persona biography")
	}
}

func TestGenerateRateLimited(t *testing.T) {
	t.Parallel()

	client := &stubAI{excuses: validExcuses()}
	h := newGenerateHandler(client, 1)
	body := `{"scenario":"I missed the deadline","audience":"Your Manager"}`

	if rec := postJSON(t, h.Generate, "/api/generate-excuses", body); rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", rec.Code)
	}

	rec := postJSON(t, h.Generate, "/api/generate-excuses", body)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", rec.Code)
	}
	if got := decodeBody(t, rec)["error"]; got != "Too many requests. Please try again in a few moments." {
		t.Errorf("error = %q", got)
	}
	if client.calls != 1 {
		t.Errorf("AI client called %d times, want 1", client.calls)
	}
}

func TestGenerateErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		model      string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "gemini not configured",
			model:      "gemini",
			err:        ai.ErrNotConfigured,
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Gemini API is not configured. Please try with Claude model.",
		},
		{
			name:       "claude not configured",
			model:      "claude",
			err:        ai.ErrNotConfigured,
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Server configuration error. Please contact support.",
		},
		{
			name:       "timeout",
			model:      "claude",
			err:        ai.ErrTimeout,
			wantStatus: http.StatusGatewayTimeout,
			wantMsg:    "Request timed out. Please try again.",
		},
		{
			name:       "upstream failure",
			model:      "claude",
			err:        ai.ErrUpstream,
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Failed to generate excuses. Please try again.",
		},
		{
			name:       "unparseable output",
			model:      "claude",
			err:        ai.ErrUnparseable,
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Failed to process excuses. Please try again.",
		},
		{
			name:       "invalid format",
			model:      "claude",
			err:        ai.ErrInvalidFormat,
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Received invalid response format. Please try again.",
		},
		{
			name:       "unexpected error",
			model:      "claude",
			err:        fmt.Errorf("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "An unexpected error occurred. Please try again.",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			h := newGenerateHandler(&stubAI{err: tc.err}, 100)
			body := fmt.Sprintf(`{"scenario":"I missed the deadline","audience":"Your Manager","customOptions":{"aiModel":%q}}`, tc.model)
			rec := postJSON(t, h.Generate, "/api/generate-excuses", body)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
			if got := decodeBody(t, rec)["error"]; got != tc.wantMsg {
				t.Errorf("error = %q, want %q", got, tc.wantMsg)
			}
		})
	}
}

func TestGenerateGeminiUnconfiguredGateway(t *testing.T) {
	t.Parallel()

	// A real gateway with no Gemini provider: the failure must surface
	// without any network call being attempted.
	gateway := ai.NewGateway(nil, nil)
	h := newGenerateHandler(gateway, 100)

	rec := postJSON(t, h.Generate, "/api/generate-excuses",
		`{"scenario":"I missed the deadline","audience":"Your Manager","customOptions":{"aiModel":"gemini"}}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if got := decodeBody(t, rec)["error"]; got != "Gemini API is not configured. Please try with Claude model." {
		t.Errorf("error = %q", got)
	}
}

func testPasswordHash(t *testing.T) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("open-sesame"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return string(hash)
}

func TestUnlockSuccess(t *testing.T) {
	t.Parallel()

	h := NewUnlockHandler(testPasswordHash(t), ratelimit.NewMemoryLimiter(3, 5*time.Minute), slog.Default())
	rec := postJSON(t, h.Unlock, "/api/admin-unlock", `{"password":"open-sesame"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Error("success = false")
	}
	if body["message"] != "Pro mode unlocked successfully" {
		t.Errorf("message = %q", body["message"])
	}
	token, _ := body["token"].(string)
	if len(token) != 64 {
		t.Errorf("token length = %d, want 64 hex chars", len(token))
	}
}

func TestUnlockWrongPasswordAttempts(t *testing.T) {
	t.Parallel()

	h := NewUnlockHandler(testPasswordHash(t), ratelimit.NewMemoryLimiter(3, 5*time.Minute), slog.Default())
	body := `{"password":"wrong"}`

	wantMessages := []string{
		"Incorrect password. 2 attempts remaining.",
		"Incorrect password. 1 attempt remaining.",
		"Incorrect password. 0 attempts remaining.",
	}
	for i, want := range wantMessages {
		rec := postJSON(t, h.Unlock, "/api/admin-unlock", body)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d status = %d, want 401", i+1, rec.Code)
		}
		if got := decodeBody(t, rec)["message"]; got != want {
			t.Errorf("attempt %d message = %q, want %q", i+1, got, want)
		}
	}

	// Fourth attempt inside the window hits the limit instead of the
	// password check.
	rec := postJSON(t, h.Unlock, "/api/admin-unlock", body)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("fourth attempt status = %d, want 429", rec.Code)
	}
	if got := decodeBody(t, rec)["message"]; got != "Too many attempts. Please try again in 5 minutes." {
		t.Errorf("message = %q", got)
	}
}

func TestUnlockMissingPassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "empty object", body: `{}`},
		{name: "empty password", body: `{"password":""}`},
		{name: "malformed json", body: `{`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			h := NewUnlockHandler(testPasswordHash(t), ratelimit.NewMemoryLimiter(3, 5*time.Minute), slog.Default())
			rec := postJSON(t, h.Unlock, "/api/admin-unlock", tc.body)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if got := decodeBody(t, rec)["message"]; got != "Password is required" {
				t.Errorf("message = %q", got)
			}
		})
	}
}

func TestUnlockHashNotConfigured(t *testing.T) {
	t.Parallel()

	h := NewUnlockHandler("", ratelimit.NewMemoryLimiter(3, 5*time.Minute), slog.Default())
	rec := postJSON(t, h.Unlock, "/api/admin-unlock", `{"password":"anything"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if got := decodeBody(t, rec)["message"]; got != "Server configuration error" {
		t.Errorf("message = %q", got)
	}
}

func TestUnlockMethodNotAllowed(t *testing.T) {
	t.Parallel()

	h := NewUnlockHandler(testPasswordHash(t), ratelimit.NewMemoryLimiter(3, 5*time.Minute), slog.Default())
	req := httptest.NewRequest(http.MethodGet, "/api/admin-unlock", nil)
	rec := httptest.NewRecorder()
	h.Unlock(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func newShareHandler(t *testing.T, webhookStatus int, max int) *ShareHandler {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(webhookStatus)
	}))
	t.Cleanup(srv.Close)

	client := slack.NewClient(srv.URL, slack.PlaceholderUploader{}, 5*time.Second, slog.Default())
	return NewShareHandler(client, ratelimit.NewMemoryLimiter(max, time.Hour), slog.Default())
}

const shareBody = `{"scenario":"I missed the deadline","excuseText":"A fox took my laptop.","excuseType":"excuse2","imageBase64":"data:image/png;base64,aGVsbG8="}`

func TestShareSuccess(t *testing.T) {
	t.Parallel()

	h := newShareHandler(t, http.StatusOK, 10)
	rec := postJSON(t, h.Share, "/api/share-to-slack", shareBody)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Error("success = false")
	}
	if body["message"] != "Shared to Slack successfully" {
		t.Errorf("message = %q", body["message"])
	}
	if body["remaining"] != float64(9) {
		t.Errorf("remaining = %v, want 9", body["remaining"])
	}
}

func TestShareMissingFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "empty object", body: `{}`},
		{name: "missing excuse text", body: `{"scenario":"s","excuseType":"excuse1","imageBase64":"data:image/png;base64,aGk="}`},
		{name: "missing image", body: `{"scenario":"s","excuseText":"t","excuseType":"excuse1"}`},
		{name: "malformed json", body: `{`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			h := newShareHandler(t, http.StatusOK, 10)
			rec := postJSON(t, h.Share, "/api/share-to-slack", tc.body)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if got := decodeBody(t, rec)["message"]; got != "Missing required fields" {
				t.Errorf("message = %q", got)
			}
		})
	}
}

func TestShareInvalidImage(t *testing.T) {
	t.Parallel()

	h := newShareHandler(t, http.StatusOK, 10)
	rec := postJSON(t, h.Share, "/api/share-to-slack",
		`{"scenario":"s","excuseText":"t","excuseType":"excuse1","imageBase64":"https://example.com/cat.png"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if got := decodeBody(t, rec)["message"]; got != "Invalid image format" {
		t.Errorf("message = %q", got)
	}
}

func TestShareWebhookFailure(t *testing.T) {
	t.Parallel()

	h := newShareHandler(t, http.StatusBadRequest, 10)
	rec := postJSON(t, h.Share, "/api/share-to-slack", shareBody)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if got := decodeBody(t, rec)["message"]; got != "Failed to post to Slack" {
		t.Errorf("message = %q", got)
	}
}

func TestShareNotConfigured(t *testing.T) {
	t.Parallel()

	client := slack.NewClient("", slack.PlaceholderUploader{}, time.Second, slog.Default())
	h := NewShareHandler(client, ratelimit.NewMemoryLimiter(10, time.Hour), slog.Default())

	rec := postJSON(t, h.Share, "/api/share-to-slack", shareBody)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if got := decodeBody(t, rec)["message"]; got != "Slack integration not configured" {
		t.Errorf("message = %q", got)
	}
}

func TestShareRateLimited(t *testing.T) {
	t.Parallel()

	h := newShareHandler(t, http.StatusOK, 1)

	if rec := postJSON(t, h.Share, "/api/share-to-slack", shareBody); rec.Code != http.StatusOK {
		t.Fatalf("first share status = %d, want 200", rec.Code)
	}

	rec := postJSON(t, h.Share, "/api/share-to-slack", shareBody)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second share status = %d, want 429", rec.Code)
	}
	if got := decodeBody(t, rec)["message"]; got != "Share limit reached. Please try again in an hour." {
		t.Errorf("message = %q", got)
	}
}
