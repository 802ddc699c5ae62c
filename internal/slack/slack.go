// Package slack posts shared excuses to a Slack incoming webhook. Messages
// use the legacy attachments format rather than Block Kit: webhooks reject
// Block Kit payloads with invalid_blocks far too often, and attachments
// render reliably. Emoji must be Slack codes (":fox_face:"), never Unicode.
package slack

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Failure modes the HTTP layer maps to statuses.
var (
	ErrNotConfigured = errors.New("slack webhook is not configured")
	ErrInvalidImage  = errors.New("invalid image format")
	ErrWebhook       = errors.New("slack webhook request failed")
)

const (
	maxScenarioChars = 500
	maxExcuseChars   = 2900
)

var dataURLPattern = regexp.MustCompile(`^data:image/(png|jpeg|jpg);base64,(.+)$`)

// Client posts share messages to a single configured webhook.
type Client struct {
	webhookURL string
	uploader   Uploader
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a share client. An empty webhookURL is allowed and
// reported as ErrNotConfigured at share time.
func NewClient(webhookURL string, uploader Uploader, timeout time.Duration, log *slog.Logger) *Client {
	return &Client{
		webhookURL: webhookURL,
		uploader:   uploader,
		httpClient: &http.Client{Timeout: timeout},
		log:        log.With("component", "slack_client"),
	}
}

// Share is one excuse being posted to the channel.
type Share struct {
	Scenario    string
	ExcuseText  string
	ExcuseType  string // "excuse1" (safe) or "excuse2" (risky)
	ImageBase64 string // data URL: data:image/png;base64,...
}

type attachment struct {
	Color    string  `json:"color"`
	Fields   []field `json:"fields"`
	ImageURL string  `json:"image_url"`
	Footer   string  `json:"footer"`
	TS       int64   `json:"ts"`
}

type field struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

type message struct {
	Text        string       `json:"text"`
	Attachments []attachment `json:"attachments"`
}

// Post validates the share's image, uploads it, and posts the message to
// the webhook.
func (c *Client) Post(ctx context.Context, share Share) error {
	if c.webhookURL == "" {
		return ErrNotConfigured
	}

	imageURL := c.uploadImage(ctx, share.ImageBase64)
	if imageURL == "" {
		return ErrInvalidImage
	}

	payload, err := json.Marshal(message{
		Text: ":excuseme: *New excuse incoming...*",
		Attachments: []attachment{{
			Color: colorFor(share.ExcuseType),
			Fields: []field{
				{Title: "Situation", Value: truncate(share.Scenario, maxScenarioChars)},
				{Title: "Excuse", Value: truncate(share.ExcuseText, maxExcuseChars)},
			},
			ImageURL: imageURL,
			Footer:   "Anonymously shared via the Excuse Generator",
			TS:       time.Now().Unix(),
		}},
	})
	if err != nil {
		return fmt.Errorf("%w: marshal message: %v", ErrWebhook, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWebhook, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWebhook, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.ErrorContext(ctx, "slack webhook failed", "status", resp.StatusCode)
		return fmt.Errorf("%w: status %d", ErrWebhook, resp.StatusCode)
	}

	return nil
}

// uploadImage decodes the data URL and uploads it, falling back to the
// placeholder URL if the upload fails. Returns "" for a malformed image.
func (c *Client) uploadImage(ctx context.Context, imageBase64 string) string {
	m := dataURLPattern.FindStringSubmatch(imageBase64)
	if m == nil {
		return ""
	}

	mimeType := m[1]
	if mimeType == "jpg" {
		mimeType = "jpeg"
	}

	data, err := base64.StdEncoding.DecodeString(m[2])
	if err != nil {
		return ""
	}

	filename := fmt.Sprintf("excuse-%s.%s", uuid.NewString(), mimeType)
	url, err := c.uploader.Upload(ctx, filename, data, "image/"+mimeType)
	if err != nil {
		c.log.ErrorContext(ctx, "image upload failed, using placeholder", "error", err)
		return placeholderURL
	}
	return url
}

func colorFor(excuseType string) string {
	switch excuseType {
	case "excuse1":
		return "#00a651"
	case "excuse2":
		return "#e01e5a"
	default:
		return "#9b59b6"
	}
}

func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	return text[:max] + "... (truncated)"
}
