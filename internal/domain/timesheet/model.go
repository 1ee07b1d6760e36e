package timesheet

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/vikoShak/ATS/internal/domain/applicant"
)

const (
	defaultPayRate        = 65
	defaultSubmissionRate = 75
	defaultRequirement    = "Software Developer"
	defaultCustomer       = "TechCorp Inc"
	projectMonths         = 12
)

// Vendor is the contracting party a joined applicant bills through.
type Vendor struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Address          string `json:"address"`
	Location         string `json:"location"`
	SigningAuthority string `json:"signing_authority"`
	AltNumber        string `json:"alt_number"`
}

// Timesheet is computed on read from a joined applicant and never stored.
type Timesheet struct {
	ID                string                              `json:"id"`
	EmployeeName      string                              `json:"employee_name"`
	ApplicantID       string                              `json:"applicant_id"`
	Vendor            Vendor                              `json:"vendor"`
	Requirement       string                              `json:"requirement"`
	Customer          string                              `json:"customer"`
	JoinedDate        string                              `json:"joined_date"`
	ProjectStartDate  string                              `json:"project_start_date"`
	ProjectDuration   int                                 `json:"project_duration"`
	ProjectEndDate    string                              `json:"project_end_date"`
	PayRate           float64                             `json:"pay_rate"`
	SubmissionRate    float64                             `json:"submission_rate"`
	MonthlyTimesheets map[string]applicant.TimesheetEntry `json:"monthly_timesheets"`
}

// Payable is hours times pay rate for the given month, or zero when the month is absent.
func (t *Timesheet) Payable(month string) decimal.Decimal {
	entry, ok := t.MonthlyTimesheets[month]
	if !ok {
		return decimal.Zero
	}
	return PayableAmount(entry.Hours, t.PayRate)
}

// PayableAmount multiplies hours by rate.
func PayableAmount(hours, rate float64) decimal.Decimal {
	return decimal.NewFromFloat(hours).Mul(decimal.NewFromFloat(rate)).Round(2)
}

// MonthKeys returns the twelve "YYYY-MM" keys of year.
func MonthKeys(year int) []string {
	keys := make([]string, 0, 12)
	for m := 1; m <= 12; m++ {
		keys = append(keys, fmt.Sprintf("%04d-%02d", year, m))
	}
	return keys
}

// NewMonthlyTimesheets returns a fresh year of Not Started entries.
func NewMonthlyTimesheets(year int) map[string]applicant.TimesheetEntry {
	return yearOf(nil, year)
}

// yearOf returns exactly the twelve months of year, taking entries from
// stored where present. Months of other years are dropped.
func yearOf(stored map[string]applicant.TimesheetEntry, year int) map[string]applicant.TimesheetEntry {
	out := make(map[string]applicant.TimesheetEntry, 12)
	for _, key := range MonthKeys(year) {
		entry, ok := stored[key]
		if !ok {
			entry = applicant.TimesheetEntry{Hours: 0, Status: applicant.TimesheetNotStarted}
		}
		out[key] = entry
	}
	return out
}
