package requirement

import "errors"

var (
	// ErrRequirementNotFound indicates the requirement doesn't exist.
	ErrRequirementNotFound = errors.New("requirement not found")
	// ErrFeatureDisabled is returned by every mutation while requirements are switched off.
	ErrFeatureDisabled = errors.New("requirements functionality is not available")
	// ErrInvalidInput indicates invalid requirement input.
	ErrInvalidInput = errors.New("invalid requirement input")
)
