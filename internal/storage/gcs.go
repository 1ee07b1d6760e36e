package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSConfig configures the Google Cloud Storage uploader.
type GCSConfig struct {
	Bucket string
	// BaseURL overrides the public URL prefix, e.g. a CDN in front of the bucket.
	BaseURL string
	// CredentialsJSON is a service account key. Empty uses application default credentials.
	CredentialsJSON string
}

// GCS uploads documents to a Google Cloud Storage bucket.
type GCS struct {
	client  *gcs.Client
	bucket  string
	baseURL string
}

// NewGCS creates a GCS uploader and checks that the bucket is reachable.
func NewGCS(ctx context.Context, cfg GCSConfig) (*GCS, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, errors.New("gcs bucket is required")
	}
	var opts []option.ClientOption
	if strings.TrimSpace(cfg.CredentialsJSON) != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	}
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gcs client: %w", err)
	}
	if _, err := client.Bucket(cfg.Bucket).Attrs(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("gcs bucket %q not found or not accessible: %w", cfg.Bucket, err)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://storage.googleapis.com/" + cfg.Bucket
	}
	return &GCS{client: client, bucket: cfg.Bucket, baseURL: baseURL}, nil
}

// Upload implements applicant.Uploader.
func (g *GCS) Upload(ctx context.Context, path, contentType string, body io.Reader) (string, error) {
	wc := g.client.Bucket(g.bucket).Object(path).NewWriter(ctx)
	wc.ContentType = contentType
	if _, err := io.Copy(wc, body); err != nil {
		_ = wc.Close()
		return "", fmt.Errorf("failed to upload %s: %w", path, err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize %s: %w", path, err)
	}
	return PublicURL(g.baseURL, path), nil
}

// Close releases the underlying client.
func (g *GCS) Close() error {
	return g.client.Close()
}
