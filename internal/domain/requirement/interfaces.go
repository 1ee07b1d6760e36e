package requirement

import (
	"context"

	"github.com/vikoShak/ATS/internal/domain/activity"
)

// Repository provides persistence operations for requirements.
// List returns requirements in insertion order.
type Repository interface {
	Create(ctx context.Context, r *Requirement) error
	Get(ctx context.Context, id string) (*Requirement, error)
	Update(ctx context.Context, r *Requirement) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Requirement, error)
}

// DepartmentLookup resolves a department ID to its name.
type DepartmentLookup interface {
	Name(id string) (string, bool)
}

// ActivityLogger appends to the audit trail.
type ActivityLogger interface {
	Record(ctx context.Context, action string, entityType activity.EntityType, entityID string, details map[string]any)
}
