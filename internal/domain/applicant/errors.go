package applicant

import "errors"

var (
	// ErrApplicantNotFound indicates the applicant doesn't exist.
	ErrApplicantNotFound = errors.New("applicant not found")
	// ErrInvalidInput indicates invalid applicant input.
	ErrInvalidInput = errors.New("invalid applicant input")
	// ErrUploadFailed indicates a document could not be stored.
	ErrUploadFailed = errors.New("document upload failed")
)
