package report

import (
	"github.com/shopspring/decimal"
	"github.com/vikoShak/ATS/internal/domain/activity"
	"github.com/vikoShak/ATS/internal/domain/applicant"
)

// DefaultAgingThreshold is the number of days after which a candidate is flagged.
const DefaultAgingThreshold = 7

// CandidateRow is an applicant with its derived reporting metrics.
type CandidateRow struct {
	ID             string           `json:"id"`
	FullName       string           `json:"full_name"`
	Email          string           `json:"email"`
	Phone          string           `json:"phone"`
	Location       string           `json:"location"`
	VisaStatus     string           `json:"visa_status"`
	Skills         string           `json:"skills"`
	Status         applicant.Status `json:"status"`
	Source         string           `json:"source"`
	AppliedDate    string           `json:"applied_date"`
	PayRate        float64          `json:"payRate"`
	SubmissionRate float64          `json:"submissionRate"`
	Margin         decimal.Decimal  `json:"margin"`
	AgingDays      int              `json:"aging_days"`
}

// SourceShare is the count and rounded percentage of candidates from one source.
type SourceShare struct {
	Source     string `json:"source"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// TimesheetSummary counts month entries by status for the current year.
type TimesheetSummary struct {
	Employees          int             `json:"employees"`
	NotStarted         int             `json:"not_started"`
	Pending            int             `json:"pending"`
	Approved           int             `json:"approved"`
	Rejected           int             `json:"rejected"`
	CurrentMonth       string          `json:"current_month"`
	CurrentMonthHours  float64         `json:"current_month_hours"`
	CurrentMonthPayout decimal.Decimal `json:"current_month_payable"`
}

// Dashboard is the overview of the whole pipeline.
type Dashboard struct {
	TotalApplicants    int                      `json:"total_applicants"`
	ApplicantsByStatus map[applicant.Status]int `json:"applicants_by_status"`
	TotalRequirements  int                      `json:"total_requirements"`
	OpenRequirements   int                      `json:"open_requirements"`
	RequirementsByType map[string]int           `json:"requirements_by_type"`
	Timesheets         TimesheetSummary         `json:"timesheets"`
	RecentActivities   []activity.Activity      `json:"recent_activities"`
}
