package rpc

import (
	"errors"
	"fmt"

	"github.com/vikoShak/ATS/internal/auth"
	"github.com/vikoShak/ATS/internal/domain/applicant"
	"github.com/vikoShak/ATS/internal/domain/requirement"
	"github.com/vikoShak/ATS/internal/domain/timesheet"
)

// FallbackMessage is reported when an error carries no message of its own.
const FallbackMessage = "An error occurred"

// APIError represents an error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ErrUnknownMethod is returned for methods the handler does not serve.
var ErrUnknownMethod = errors.New("unknown method")

// ErrInvalidParams is returned when params cannot be decoded.
var ErrInvalidParams = errors.New("invalid params")

// MapError maps domain errors to API error codes. It returns nil for errors
// that have no code of their own.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	switch {
	case errors.Is(err, applicant.ErrApplicantNotFound):
		return &APIError{Code: "APPLICANT_NOT_FOUND", Message: "applicant not found", RecoveryHint: "Check the applicant ID"}
	case errors.Is(err, requirement.ErrRequirementNotFound):
		return &APIError{Code: "REQUIREMENT_NOT_FOUND", Message: "requirement not found", RecoveryHint: "Check the requirement ID"}
	case errors.Is(err, timesheet.ErrTimesheetNotFound):
		return &APIError{Code: "TIMESHEET_NOT_FOUND", Message: "timesheet not found", RecoveryHint: "Check the applicant ID and month key (YYYY-MM of the current year)"}
	case errors.Is(err, requirement.ErrFeatureDisabled):
		return &APIError{Code: "FEATURE_DISABLED", Message: requirement.ErrFeatureDisabled.Error(), RecoveryHint: "Enable features.requirements"}
	case errors.Is(err, applicant.ErrUploadFailed):
		return &APIError{Code: "UPLOAD_FAILED", Message: err.Error(), RecoveryHint: "Retry the upload"}
	case errors.Is(err, applicant.ErrInvalidInput),
		errors.Is(err, requirement.ErrInvalidInput),
		errors.Is(err, timesheet.ErrInvalidInput),
		errors.Is(err, ErrInvalidParams):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error(), RecoveryHint: "Fix the listed fields"}
	case errors.Is(err, ErrUnknownMethod):
		return &APIError{Code: "UNKNOWN_METHOD", Message: err.Error()}
	case errors.Is(err, auth.ErrUnauthorized), errors.Is(err, auth.ErrInvalidCredentials):
		return &APIError{Code: "UNAUTHORIZED", Message: err.Error(), RecoveryHint: "Log in again"}
	default:
		return nil
	}
}

func mapError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}

// Message reduces err to a display string.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if apiErr := MapError(err); apiErr != nil && apiErr.Message != "" {
		return apiErr.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return FallbackMessage
}
