package applicant

import (
	"context"
	"io"

	"github.com/vikoShak/ATS/internal/domain/activity"
)

// Repository provides persistence operations for applicants.
// List returns applicants in insertion order.
type Repository interface {
	Create(ctx context.Context, a *Applicant) error
	Get(ctx context.Context, id string) (*Applicant, error)
	FindByEmail(ctx context.Context, email string) (*Applicant, error)
	Update(ctx context.Context, a *Applicant) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Applicant, error)
}

// Uploader stores a document and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, path, contentType string, body io.Reader) (string, error)
}

// ActivityLogger appends to the audit trail.
type ActivityLogger interface {
	Record(ctx context.Context, action string, entityType activity.EntityType, entityID string, details map[string]any)
}
