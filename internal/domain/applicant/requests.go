package applicant

// CreateRequest defines applicant creation inputs.
type CreateRequest struct {
	FullName       string  `json:"full_name" validate:"required"`
	CNNumber       *string `json:"cn_number,omitempty"`
	Email          string  `json:"email" validate:"required,email"`
	Phone          string  `json:"phone"`
	Location       string  `json:"location"`
	VisaStatus     string  `json:"visa_status"`
	VisaValidity   *string `json:"visa_validity,omitempty"`
	Skills         string  `json:"skills"`
	Comments       *string `json:"comments,omitempty"`
	Status         Status  `json:"status" validate:"omitempty,applicant_status"`
	AppliedDate    string  `json:"applied_date"`
	JoinedDate     *string `json:"joined_date,omitempty"`
	Source         string  `json:"source"`
	TaxTerm        string  `json:"taxTerm"`
	PayRate        float64 `json:"payRate" validate:"gte=0"`
	SubmissionRate float64 `json:"submissionRate" validate:"gte=0"`
}

// UpdateRequest holds the fields to merge into an applicant. Nil fields are left unchanged.
type UpdateRequest struct {
	FullName       *string  `json:"full_name,omitempty" validate:"omitempty,min=1"`
	CNNumber       *string  `json:"cn_number,omitempty"`
	Email          *string  `json:"email,omitempty" validate:"omitempty,email"`
	Phone          *string  `json:"phone,omitempty"`
	Location       *string  `json:"location,omitempty"`
	VisaStatus     *string  `json:"visa_status,omitempty"`
	VisaValidity   *string  `json:"visa_validity,omitempty"`
	Skills         *string  `json:"skills,omitempty"`
	Comments       *string  `json:"comments,omitempty"`
	Status         *Status  `json:"status,omitempty" validate:"omitempty,applicant_status"`
	AppliedDate    *string  `json:"applied_date,omitempty"`
	JoinedDate     *string  `json:"joined_date,omitempty"`
	Source         *string  `json:"source,omitempty"`
	TaxTerm        *string  `json:"taxTerm,omitempty"`
	PayRate        *float64 `json:"payRate,omitempty" validate:"omitempty,gte=0"`
	SubmissionRate *float64 `json:"submissionRate,omitempty" validate:"omitempty,gte=0"`
	ResumeURL      *string  `json:"resume_url,omitempty"`
}

// ApplicationRequest defines the inputs of a standalone application.
type ApplicationRequest struct {
	ApplicantID   string  `json:"applicant_id"`
	RequirementID string  `json:"requirement_id"`
	Status        Status  `json:"status"`
	AppliedDate   string  `json:"applied_date"`
	Notes         *string `json:"notes"`
}

// BulkFailure records a file that could not be turned into an applicant.
type BulkFailure struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// BulkResult lists created applicants followed by replaced ones.
type BulkResult struct {
	Applicants []*Applicant  `json:"applicants"`
	Failures   []BulkFailure `json:"failures,omitempty"`
}
