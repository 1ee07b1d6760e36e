package activity

import "time"

// EntityType identifies what kind of entity an activity refers to.
type EntityType string

const (
	EntityApplicant   EntityType = "applicant"
	EntityRequirement EntityType = "requirement"
	EntityTimesheet   EntityType = "timesheet"
)

// Action labels written by the domain services.
const (
	ActionApplicantCreated   = "New application received"
	ActionApplicantUpdated   = "Applicant updated"
	ActionApplicantDeleted   = "Applicant deleted"
	ActionRequirementCreated = "New requirement posted"
	ActionRequirementUpdated = "Requirement updated"
	ActionRequirementDeleted = "Requirement deleted"
	ActionTimesheetHours     = "Timesheet hours updated"
)

// DefaultLimit is the number of entries returned when no limit is given.
const DefaultLimit = 10

// Activity represents an event in the audit log.
type Activity struct {
	ID         string         `json:"id"`
	Action     string         `json:"action"`
	EntityType EntityType     `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	Details    map[string]any `json:"details"`
	CreatedAt  time.Time      `json:"created_at"`
}
