package report

import (
	"context"

	"github.com/vikoShak/ATS/internal/domain/activity"
	"github.com/vikoShak/ATS/internal/domain/applicant"
	"github.com/vikoShak/ATS/internal/domain/requirement"
	"github.com/vikoShak/ATS/internal/domain/timesheet"
)

// ApplicantLister lists applicants.
type ApplicantLister interface {
	List(ctx context.Context, opts applicant.ListOptions) ([]*applicant.Applicant, error)
}

// RequirementLister lists requirements.
type RequirementLister interface {
	List(ctx context.Context) ([]*requirement.Requirement, error)
}

// TimesheetLister lists derived timesheets.
type TimesheetLister interface {
	List(ctx context.Context) ([]timesheet.Timesheet, error)
}

// ActivityReader reads the newest activities.
type ActivityReader interface {
	Recent(ctx context.Context, limit int) ([]activity.Activity, error)
}
