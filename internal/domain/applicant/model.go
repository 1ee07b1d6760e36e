package applicant

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the pipeline stage of an applicant. Any status may follow any other.
type Status string

const (
	StatusApplied          Status = "Applied"
	StatusScreening        Status = "Screening"
	StatusInterview        Status = "Interview"
	StatusHired            Status = "Hired"
	StatusRejected         Status = "Rejected"
	StatusJoined           Status = "Joined"
	StatusProjectCompleted Status = "Project Completed"
	StatusTerminated       Status = "Terminated"
)

// Statuses lists every applicant status in pipeline order.
var Statuses = []Status{
	StatusApplied,
	StatusScreening,
	StatusInterview,
	StatusHired,
	StatusRejected,
	StatusJoined,
	StatusProjectCompleted,
	StatusTerminated,
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// SourceBulkUpload marks applicants created from a bulk resume upload.
const SourceBulkUpload = "Bulk Upload"

// TimesheetStatus is the approval state of one month of hours.
type TimesheetStatus string

const (
	TimesheetNotStarted TimesheetStatus = "Not Started"
	TimesheetPending    TimesheetStatus = "Pending"
	TimesheetApproved   TimesheetStatus = "Approved"
	TimesheetRejected   TimesheetStatus = "Rejected"
)

// Valid reports whether s is a known timesheet status.
func (s TimesheetStatus) Valid() bool {
	switch s {
	case TimesheetNotStarted, TimesheetPending, TimesheetApproved, TimesheetRejected:
		return true
	}
	return false
}

// TimesheetEntry holds the hours and approval state for one month.
type TimesheetEntry struct {
	Hours  float64         `json:"hours"`
	Status TimesheetStatus `json:"status"`
}

// RequirementRef is the denormalized requirement carried on an application.
type RequirementRef struct {
	Title        string  `json:"title"`
	DepartmentID *string `json:"department_id"`
	Department   string  `json:"department,omitempty"`
}

// Application links an applicant to a requirement. It is only stored on the applicant.
type Application struct {
	ID            string          `json:"id"`
	ApplicantID   string          `json:"applicant_id"`
	RequirementID string          `json:"requirement_id"`
	Status        Status          `json:"status"`
	AppliedDate   string          `json:"applied_date"`
	Notes         *string         `json:"notes"`
	Requirement   *RequirementRef `json:"requirements,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TaggedRequirement identifies a requirement selected while creating an applicant.
type TaggedRequirement struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	DepartmentID *string `json:"department_id,omitempty"`
	Department   string  `json:"department,omitempty"`
}

// Applicant is a candidate record.
type Applicant struct {
	ID                      string                    `json:"id"`
	FullName                string                    `json:"full_name"`
	CNNumber                *string                   `json:"cn_number"`
	Email                   string                    `json:"email"`
	Phone                   string                    `json:"phone"`
	PhoneE164               *string                   `json:"phone_e164,omitempty"`
	Location                string                    `json:"location"`
	VisaStatus              string                    `json:"visa_status"`
	VisaValidity            *string                   `json:"visa_validity"`
	Skills                  string                    `json:"skills"`
	Comments                *string                   `json:"comments"`
	Status                  Status                    `json:"status"`
	AppliedDate             string                    `json:"applied_date"`
	JoinedDate              *string                   `json:"joined_date,omitempty"`
	Source                  string                    `json:"source"`
	TaxTerm                 string                    `json:"taxTerm"`
	PayRate                 float64                   `json:"payRate"`
	SubmissionRate          float64                   `json:"submissionRate"`
	ResumeURL               *string                   `json:"resume_url"`
	SupportingDocumentsURLs []string                  `json:"supporting_documents_urls"`
	MonthlyTimesheets       map[string]TimesheetEntry `json:"monthly_timesheets,omitempty"`
	Applications            []Application             `json:"applications"`
	CreatedAt               time.Time                 `json:"created_at"`
	UpdatedAt               time.Time                 `json:"updated_at"`
}

// Margin is submissionRate minus payRate. It is never stored.
func (a *Applicant) Margin() decimal.Decimal {
	return decimal.NewFromFloat(a.SubmissionRate).Sub(decimal.NewFromFloat(a.PayRate))
}

// Clone returns a deep copy so callers never share state with the store.
func (a *Applicant) Clone() *Applicant {
	if a == nil {
		return nil
	}
	out := *a
	out.CNNumber = cloneString(a.CNNumber)
	out.PhoneE164 = cloneString(a.PhoneE164)
	out.VisaValidity = cloneString(a.VisaValidity)
	out.Comments = cloneString(a.Comments)
	out.JoinedDate = cloneString(a.JoinedDate)
	out.ResumeURL = cloneString(a.ResumeURL)
	out.SupportingDocumentsURLs = append([]string{}, a.SupportingDocumentsURLs...)
	if a.MonthlyTimesheets != nil {
		out.MonthlyTimesheets = make(map[string]TimesheetEntry, len(a.MonthlyTimesheets))
		for k, v := range a.MonthlyTimesheets {
			out.MonthlyTimesheets[k] = v
		}
	}
	out.Applications = make([]Application, len(a.Applications))
	for i, app := range a.Applications {
		app.Notes = cloneString(app.Notes)
		if app.Requirement != nil {
			ref := *app.Requirement
			ref.DepartmentID = cloneString(ref.DepartmentID)
			app.Requirement = &ref
		}
		out.Applications[i] = app
	}
	return &out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// File is an uploaded document.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}
