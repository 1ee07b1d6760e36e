package storage

import (
	"context"
	"io"
)

// Placeholder never contacts a network service. It drains the body and
// returns a deterministic URL under its base.
type Placeholder struct {
	baseURL string
}

// NewPlaceholder creates a Placeholder. An empty base uses MockBaseURL.
func NewPlaceholder(baseURL string) *Placeholder {
	if baseURL == "" {
		baseURL = MockBaseURL
	}
	return &Placeholder{baseURL: baseURL}
}

// Upload implements applicant.Uploader.
func (p *Placeholder) Upload(ctx context.Context, path, _ string, body io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if body != nil {
		if _, err := io.Copy(io.Discard, body); err != nil {
			return "", err
		}
	}
	return PublicURL(p.baseURL, path), nil
}
