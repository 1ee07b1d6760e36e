package timesheet

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/vikoShak/ATS/internal/domain/activity"
	"github.com/vikoShak/ATS/internal/domain/applicant"
	"github.com/vikoShak/ATS/internal/repository"
)

const dateLayout = "2006-01-02"

// Service derives timesheets from joined applicants and records monthly hours.
type Service struct {
	applicants ApplicantStore
	activities ActivityLogger
	logger     *slog.Logger
	now        func() time.Time
}

// NewService creates a new timesheet service.
func NewService(applicants ApplicantStore, activities ActivityLogger, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{applicants: applicants, activities: activities, logger: logger, now: time.Now}
}

// SetClock overrides the time source.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// List returns one timesheet per joined applicant. Missing months of the
// current year are filled in the result only; nothing is written back.
func (s *Service) List(ctx context.Context) ([]Timesheet, error) {
	all, err := s.applicants.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing applicants: %w", err)
	}
	now := s.now().UTC()
	out := make([]Timesheet, 0)
	for _, a := range all {
		if a.Status != applicant.StatusJoined {
			continue
		}
		out = append(out, project(a, now))
	}
	return out, nil
}

// UpdateStatus sets the approval status of one month. Hours are left unchanged.
func (s *Service) UpdateStatus(ctx context.Context, applicantID, month string, status applicant.TimesheetStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	a, entry, err := s.loadMonth(ctx, applicantID, month)
	if err != nil {
		return err
	}
	entry.Status = status
	if err := s.saveMonth(ctx, a, month, entry); err != nil {
		return err
	}

	s.activities.Record(ctx, "Timesheet "+strings.ToLower(string(status)), activity.EntityTimesheet, applicantID, map[string]any{
		"month":          month,
		"status":         string(status),
		"applicant_name": a.FullName,
	})
	return nil
}

// UpdateHours sets the hours of one month. Positive hours move the month to
// Pending and zero hours reset it to Not Started.
func (s *Service) UpdateHours(ctx context.Context, applicantID, month string, hours float64) error {
	if hours < 0 {
		return fmt.Errorf("%w: hours must not be negative", ErrInvalidInput)
	}
	a, entry, err := s.loadMonth(ctx, applicantID, month)
	if err != nil {
		return err
	}
	entry.Hours = hours
	if hours > 0 {
		entry.Status = applicant.TimesheetPending
	} else {
		entry.Status = applicant.TimesheetNotStarted
	}
	if err := s.saveMonth(ctx, a, month, entry); err != nil {
		return err
	}

	s.activities.Record(ctx, activity.ActionTimesheetHours, activity.EntityTimesheet, applicantID, map[string]any{
		"month":          month,
		"hours":          hours,
		"applicant_name": a.FullName,
	})
	return nil
}

func (s *Service) loadMonth(ctx context.Context, applicantID, month string) (*applicant.Applicant, applicant.TimesheetEntry, error) {
	a, err := s.applicants.Get(ctx, applicantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, applicant.TimesheetEntry{}, ErrTimesheetNotFound
		}
		return nil, applicant.TimesheetEntry{}, fmt.Errorf("getting applicant: %w", err)
	}
	a.MonthlyTimesheets = yearOf(a.MonthlyTimesheets, s.now().UTC().Year())
	entry, ok := a.MonthlyTimesheets[month]
	if !ok {
		return nil, applicant.TimesheetEntry{}, ErrTimesheetNotFound
	}
	return a, entry, nil
}

func (s *Service) saveMonth(ctx context.Context, a *applicant.Applicant, month string, entry applicant.TimesheetEntry) error {
	a.MonthlyTimesheets[month] = entry
	a.UpdatedAt = s.now().UTC()
	if err := s.applicants.Update(ctx, a); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTimesheetNotFound
		}
		return fmt.Errorf("saving timesheet: %w", err)
	}
	s.logger.Debug("timesheet updated", "applicant_id", a.ID, "month", month, "status", entry.Status, "hours", entry.Hours)
	return nil
}

func project(a *applicant.Applicant, now time.Time) Timesheet {
	months := yearOf(a.MonthlyTimesheets, now.Year())

	start := now
	if a.JoinedDate != nil {
		if t, err := time.Parse(dateLayout, *a.JoinedDate); err == nil {
			start = t
		}
	}

	payRate := a.PayRate
	if payRate == 0 {
		payRate = defaultPayRate
	}
	submissionRate := a.SubmissionRate
	if submissionRate == 0 {
		submissionRate = defaultSubmissionRate
	}

	requirementLabel := defaultRequirement
	if len(a.Applications) > 0 && a.Applications[0].Requirement != nil && a.Applications[0].Requirement.Title != "" {
		requirementLabel = a.Applications[0].Requirement.Title
	}

	return Timesheet{
		ID:           a.ID,
		EmployeeName: a.FullName,
		ApplicantID:  a.ID,
		Vendor: Vendor{
			Name:             a.FullName + " Consulting LLC",
			Email:            a.Email,
			Phone:            a.Phone,
			Address:          "123 Business St, " + a.Location,
			Location:         a.Location,
			SigningAuthority: a.FullName,
			AltNumber:        a.Phone,
		},
		Requirement:       requirementLabel,
		Customer:          defaultCustomer,
		JoinedDate:        start.Format(dateLayout),
		ProjectStartDate:  start.Format(dateLayout),
		ProjectDuration:   projectMonths,
		ProjectEndDate:    start.AddDate(0, projectMonths, 0).Format(dateLayout),
		PayRate:           payRate,
		SubmissionRate:    submissionRate,
		MonthlyTimesheets: months,
	}
}
