package timesheet

import "errors"

var (
	// ErrTimesheetNotFound indicates the applicant or month doesn't exist.
	ErrTimesheetNotFound = errors.New("timesheet not found")
	// ErrInvalidInput indicates an invalid status or hour count.
	ErrInvalidInput = errors.New("invalid timesheet input")
)
