package slack

import "context"

// Uploader stores a shared image somewhere publicly reachable and returns
// its URL. Blob storage itself is an external collaborator; this interface
// is the seam for it.
type Uploader interface {
	Upload(ctx context.Context, filename string, data []byte, contentType string) (string, error)
}

// placeholderURL stands in when no real blob store is wired up or an
// upload fails. Slack renders it like any other image URL.
const placeholderURL = "https://via.placeholder.com/800x450.png?text=Image+Upload+Skipped"

// PlaceholderUploader is the Uploader used outside production: it discards
// the image and returns a static placeholder URL.
type PlaceholderUploader struct{}

// Upload implements Uploader.
func (PlaceholderUploader) Upload(context.Context, string, []byte, string) (string, error) {
	return placeholderURL, nil
}
