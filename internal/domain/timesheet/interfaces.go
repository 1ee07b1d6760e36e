package timesheet

import (
	"context"

	"github.com/vikoShak/ATS/internal/domain/activity"
	"github.com/vikoShak/ATS/internal/domain/applicant"
)

// ApplicantStore is the subset of the applicant repository timesheets need.
type ApplicantStore interface {
	Get(ctx context.Context, id string) (*applicant.Applicant, error)
	Update(ctx context.Context, a *applicant.Applicant) error
	List(ctx context.Context) ([]*applicant.Applicant, error)
}

// ActivityLogger appends to the audit trail.
type ActivityLogger interface {
	Record(ctx context.Context, action string, entityType activity.EntityType, entityID string, details map[string]any)
}
