package requirement

import "time"

// Type is the employment type of a requirement.
type Type string

const (
	TypeFullTime Type = "Full-time"
	TypePartTime Type = "Part-time"
	TypeContract Type = "Contract"
)

// Status is the lifecycle state of a requirement.
type Status string

const (
	StatusOpen   Status = "Open"
	StatusClosed Status = "Closed"
	StatusOnHold Status = "On Hold"
	StatusActive Status = "Active"
)

// DepartmentRef is the denormalized department joined onto a requirement.
type DepartmentRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Requirement is a job posting.
type Requirement struct {
	ID                string         `json:"id"`
	Title             string         `json:"title"`
	RequirementNumber *string        `json:"requirement_number,omitempty"`
	DepartmentID      *string        `json:"department_id"`
	Department        string         `json:"department,omitempty"`
	Location          string         `json:"location"`
	Type              Type           `json:"type"`
	Status            Status         `json:"status"`
	CustomerName      *string        `json:"customer_name,omitempty"`
	KeySkills         *string        `json:"key_skills,omitempty"`
	VisaRequested     *string        `json:"visa_requested,omitempty"`
	PostedDate        *string        `json:"posted_date"`
	Deadline          *string        `json:"deadline"`
	Description       string         `json:"description"`
	Departments       *DepartmentRef `json:"departments"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

// Clone returns a deep copy.
func (r *Requirement) Clone() *Requirement {
	if r == nil {
		return nil
	}
	out := *r
	out.RequirementNumber = cloneString(r.RequirementNumber)
	out.DepartmentID = cloneString(r.DepartmentID)
	out.CustomerName = cloneString(r.CustomerName)
	out.KeySkills = cloneString(r.KeySkills)
	out.VisaRequested = cloneString(r.VisaRequested)
	out.PostedDate = cloneString(r.PostedDate)
	out.Deadline = cloneString(r.Deadline)
	if r.Departments != nil {
		dep := *r.Departments
		out.Departments = &dep
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
