package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vikoShak/ATS/internal/domain/applicant"
	"github.com/vikoShak/ATS/internal/domain/requirement"
	"github.com/vikoShak/ATS/internal/domain/timesheet"
)

const dashboardActivityLimit = 5

// Service computes reporting views over the data store.
type Service struct {
	applicants   ApplicantLister
	requirements RequirementLister
	timesheets   TimesheetLister
	activities   ActivityReader
	logger       *slog.Logger
	now          func() time.Time
}

// NewService creates a new report service.
func NewService(applicants ApplicantLister, requirements RequirementLister, timesheets TimesheetLister, activities ActivityReader, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		applicants:   applicants,
		requirements: requirements,
		timesheets:   timesheets,
		activities:   activities,
		logger:       logger,
		now:          time.Now,
	}
}

// SetClock overrides the time source.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Candidates returns every applicant with margin and aging.
func (s *Service) Candidates(ctx context.Context) ([]CandidateRow, error) {
	list, err := s.applicants.List(ctx, applicant.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("listing applicants: %w", err)
	}
	now := s.now().UTC()
	rows := make([]CandidateRow, 0, len(list))
	for _, a := range list {
		rows = append(rows, CandidateRow{
			ID:             a.ID,
			FullName:       a.FullName,
			Email:          a.Email,
			Phone:          a.Phone,
			Location:       a.Location,
			VisaStatus:     a.VisaStatus,
			Skills:         a.Skills,
			Status:         a.Status,
			Source:         a.Source,
			AppliedDate:    a.AppliedDate,
			PayRate:        a.PayRate,
			SubmissionRate: a.SubmissionRate,
			Margin:         a.Margin(),
			AgingDays:      AgingDays(a, now),
		})
	}
	return rows, nil
}

// AgingAlerts returns candidates older than threshold days, oldest first.
func (s *Service) AgingAlerts(ctx context.Context, threshold int) ([]CandidateRow, error) {
	if threshold <= 0 {
		threshold = DefaultAgingThreshold
	}
	rows, err := s.Candidates(ctx)
	if err != nil {
		return nil, err
	}
	alerts := make([]CandidateRow, 0)
	for _, row := range rows {
		if row.AgingDays > threshold {
			alerts = append(alerts, row)
		}
	}
	sort.SliceStable(alerts, func(i, j int) bool { return alerts[i].AgingDays > alerts[j].AgingDays })
	return alerts, nil
}

// SourceDistribution counts candidates per source. Sources with no
// candidates are omitted and the largest source comes first.
func (s *Service) SourceDistribution(ctx context.Context) ([]SourceShare, error) {
	list, err := s.applicants.List(ctx, applicant.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("listing applicants: %w", err)
	}
	if len(list) == 0 {
		return []SourceShare{}, nil
	}
	counts := map[string]int{}
	for _, a := range list {
		source := a.Source
		if source == "" {
			source = "Unknown"
		}
		counts[source]++
	}
	shares := make([]SourceShare, 0, len(counts))
	for source, count := range counts {
		shares = append(shares, SourceShare{
			Source:     source,
			Count:      count,
			Percentage: int(math.Round(float64(count) * 100 / float64(len(list)))),
		})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Count != shares[j].Count {
			return shares[i].Count > shares[j].Count
		}
		return shares[i].Source < shares[j].Source
	})
	return shares, nil
}

// Dashboard summarizes applicants, requirements, timesheets and recent activity.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	applicants, err := s.applicants.List(ctx, applicant.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("listing applicants: %w", err)
	}
	requirements, err := s.requirements.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing requirements: %w", err)
	}
	timesheets, err := s.timesheets.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing timesheets: %w", err)
	}
	recent, err := s.activities.Recent(ctx, dashboardActivityLimit)
	if err != nil {
		return nil, fmt.Errorf("listing activity: %w", err)
	}

	d := &Dashboard{
		TotalApplicants:    len(applicants),
		ApplicantsByStatus: map[applicant.Status]int{},
		TotalRequirements:  len(requirements),
		RequirementsByType: map[string]int{},
		RecentActivities:   recent,
	}
	for _, a := range applicants {
		d.ApplicantsByStatus[a.Status]++
	}
	for _, r := range requirements {
		if r.Status == requirement.StatusOpen {
			d.OpenRequirements++
		}
		d.RequirementsByType[string(r.Type)]++
	}
	d.Timesheets = summarizeTimesheets(timesheets, s.now().UTC())
	return d, nil
}

func summarizeTimesheets(list []timesheet.Timesheet, now time.Time) TimesheetSummary {
	sum := TimesheetSummary{
		Employees:          len(list),
		CurrentMonth:       now.Format("2006-01"),
		CurrentMonthPayout: decimal.Zero,
	}
	prefix := now.Format("2006") + "-"
	for _, ts := range list {
		for month, entry := range ts.MonthlyTimesheets {
			if len(month) < len(prefix) || month[:len(prefix)] != prefix {
				continue
			}
			switch entry.Status {
			case applicant.TimesheetNotStarted:
				sum.NotStarted++
			case applicant.TimesheetPending:
				sum.Pending++
			case applicant.TimesheetApproved:
				sum.Approved++
			case applicant.TimesheetRejected:
				sum.Rejected++
			}
		}
		if entry, ok := ts.MonthlyTimesheets[sum.CurrentMonth]; ok {
			sum.CurrentMonthHours += entry.Hours
			sum.CurrentMonthPayout = sum.CurrentMonthPayout.Add(ts.Payable(sum.CurrentMonth))
		}
	}
	return sum
}

// AgingDays is the number of whole days since the applicant applied, falling
// back to the creation time when the applied date is missing or malformed.
func AgingDays(a *applicant.Applicant, now time.Time) int {
	since := a.CreatedAt
	if a.AppliedDate != "" {
		if t, err := time.Parse("2006-01-02", a.AppliedDate); err == nil {
			since = t
		} else if t, err := time.Parse(time.RFC3339, a.AppliedDate); err == nil {
			since = t
		}
	}
	if since.IsZero() || now.Before(since) {
		return 0
	}
	return int(now.Sub(since).Hours() / 24)
}
