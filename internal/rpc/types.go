package rpc

import (
	"github.com/vikoShak/ATS/internal/domain/applicant"
	"github.com/vikoShak/ATS/internal/domain/requirement"
)

type GetApplicantsParams struct {
	ExcludeBulk bool             `json:"exclude_bulk,omitempty"`
	Status      applicant.Status `json:"status,omitempty"`
	Search      string           `json:"search,omitempty"`
}

type GetApplicantParams struct {
	ID string `json:"id"`
}

// FileParam carries an uploaded document. Data is base64 in JSON.
type FileParam struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type,omitempty"`
	Data        []byte `json:"data"`
}

func (f FileParam) file() applicant.File {
	return applicant.File{Name: f.Name, ContentType: f.ContentType, Data: f.Data}
}

type CreateApplicantParams struct {
	Applicant           applicant.CreateRequest       `json:"applicant"`
	Resume              *FileParam                    `json:"resume,omitempty"`
	SupportingDocuments []FileParam                   `json:"supporting_documents,omitempty"`
	TaggedRequirements  []applicant.TaggedRequirement `json:"tagged_requirements,omitempty"`
}

type BulkCreateApplicantsParams struct {
	Files []FileParam `json:"files"`
}

type UpdateApplicantParams struct {
	ID      string                  `json:"id"`
	Updates applicant.UpdateRequest `json:"updates"`
}

type DeleteParams struct {
	ID string `json:"id"`
}

type CreateRequirementParams = requirement.CreateRequest

type UpdateRequirementParams struct {
	ID      string                    `json:"id"`
	Updates requirement.UpdateRequest `json:"updates"`
}

type CreateApplicationParams = applicant.ApplicationRequest

type UpdateTimesheetStatusParams struct {
	ApplicantID string                    `json:"applicant_id"`
	Month       string                    `json:"month"`
	Status      applicant.TimesheetStatus `json:"status"`
}

type UpdateTimesheetHoursParams struct {
	ApplicantID string   `json:"applicant_id"`
	Month       string   `json:"month"`
	Hours       *float64 `json:"hours"`
}

type GetActivitiesParams struct {
	Limit int `json:"limit,omitempty"`
}

type GetAgingAlertsParams struct {
	Threshold int `json:"threshold,omitempty"`
}

// StatusResponse is the shared loading/error state.
type StatusResponse struct {
	Loading bool    `json:"loading"`
	Error   *string `json:"error"`
}

type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}

type UpdatedResponse struct {
	Updated bool `json:"updated"`
}
