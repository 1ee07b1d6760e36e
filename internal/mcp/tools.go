package mcp

// ToolDefinition describes a callable tool.
type ToolDefinition struct {
	Name        string
	Description string
	InputSchema map[string]any
}

var applicantStatuses = []string{"Applied", "Screening", "Interview", "Hired", "Rejected", "Joined", "Project Completed", "Terminated"}

func str(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

func object(properties map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func fileSchema(description string) map[string]any {
	return map[string]any{
		"type":        "object",
		"description": description,
		"properties": map[string]any{
			"name":         str("File name, e.g. John_Smith_Resume.pdf"),
			"content_type": str("MIME type"),
			"data":         str("Base64 file contents"),
		},
		"required": []string{"name", "data"},
	}
}

// buildToolCatalog returns all available MCP tools. Names match the RPC
// methods one to one.
func buildToolCatalog() []ToolDefinition {
	applicantFields := map[string]any{
		"full_name":      str("Full name"),
		"email":          str("Email address"),
		"phone":          str("Phone number"),
		"location":       str("Location"),
		"visa_status":    str("Visa status"),
		"visa_validity":  str("Visa validity date"),
		"skills":         str("Comma separated skills"),
		"comments":       str("Free text comments"),
		"status":         map[string]any{"type": "string", "enum": applicantStatuses},
		"applied_date":   str("Applied date (YYYY-MM-DD)"),
		"joined_date":    str("Joined date (YYYY-MM-DD)"),
		"source":         str("Candidate source"),
		"taxTerm":        str("Tax term"),
		"payRate":        map[string]any{"type": "number"},
		"submissionRate": map[string]any{"type": "number"},
	}
	requirementFields := map[string]any{
		"title":              str("Requirement title"),
		"requirement_number": str("Requirement number"),
		"department_id":      str("Department ID"),
		"location":           str("Location"),
		"type":               map[string]any{"type": "string", "enum": []string{"Full-time", "Part-time", "Contract"}},
		"status":             map[string]any{"type": "string", "enum": []string{"Open", "Closed", "On Hold", "Active"}},
		"customer_name":      str("Customer name"),
		"key_skills":         str("Key skills"),
		"visa_requested":     str("Requested visa"),
		"posted_date":        str("Posted date (YYYY-MM-DD)"),
		"deadline":           str("Deadline (YYYY-MM-DD)"),
		"description":        str("Description"),
	}
	idOnly := object(map[string]any{"id": str("Record ID")}, "id")
	empty := object(map[string]any{})

	return []ToolDefinition{
		// Applicants
		{
			Name:        "get_applicants",
			Description: "List applicants in insertion order, optionally filtered",
			InputSchema: object(map[string]any{
				"exclude_bulk": map[string]any{"type": "boolean", "description": "Hide applicants created by bulk upload"},
				"status":       map[string]any{"type": "string", "enum": applicantStatuses},
				"search":       str("Case-insensitive match on name, email, skills or location"),
			}),
		},
		{
			Name:        "get_all_applicants",
			Description: "List every applicant, bulk uploads included, in insertion order",
			InputSchema: empty,
		},
		{
			Name:        "get_applicant",
			Description: "Get one applicant",
			InputSchema: idOnly,
		},
		{
			Name:        "create_applicant",
			Description: "Create an applicant, uploading the resume and supporting documents",
			InputSchema: object(map[string]any{
				"applicant": object(applicantFields, "full_name", "email"),
				"resume":    fileSchema("Resume file"),
				"supporting_documents": map[string]any{
					"type":  "array",
					"items": fileSchema("Supporting document"),
				},
				"tagged_requirements": map[string]any{
					"type": "array",
					"items": object(map[string]any{
						"id":    str("Requirement ID"),
						"title": str("Requirement title"),
					}),
				},
			}, "applicant"),
		},
		{
			Name:        "bulk_create_applicants",
			Description: "Create one applicant per resume file, deriving name and email from the file name",
			InputSchema: object(map[string]any{
				"files": map[string]any{"type": "array", "items": fileSchema("Resume file")},
			}, "files"),
		},
		{
			Name:        "update_applicant",
			Description: "Merge fields into an applicant",
			InputSchema: object(map[string]any{
				"id":      str("Applicant ID"),
				"updates": object(applicantFields),
			}, "id", "updates"),
		},
		{
			Name:        "delete_applicant",
			Description: "Delete an applicant",
			InputSchema: idOnly,
		},

		// Requirements
		{
			Name:        "get_requirements",
			Description: "List job requirements; empty when requirements are disabled",
			InputSchema: empty,
		},
		{
			Name:        "create_requirement",
			Description: "Post a job requirement",
			InputSchema: object(requirementFields, "title"),
		},
		{
			Name:        "update_requirement",
			Description: "Merge fields into a requirement",
			InputSchema: object(map[string]any{
				"id":      str("Requirement ID"),
				"updates": object(requirementFields),
			}, "id", "updates"),
		},
		{
			Name:        "delete_requirement",
			Description: "Delete a requirement",
			InputSchema: idOnly,
		},
		{
			Name:        "create_application",
			Description: "Build an application linking an applicant to a requirement (not persisted)",
			InputSchema: object(map[string]any{
				"applicant_id":   str("Applicant ID"),
				"requirement_id": str("Requirement ID"),
				"status":         map[string]any{"type": "string", "enum": applicantStatuses},
				"applied_date":   str("Applied date (YYYY-MM-DD)"),
				"notes":          str("Notes"),
			}, "applicant_id", "requirement_id"),
		},

		// Timesheets
		{
			Name:        "get_timesheets",
			Description: "List timesheets for every joined applicant",
			InputSchema: empty,
		},
		{
			Name:        "update_timesheet_status",
			Description: "Set the approval status of one month",
			InputSchema: object(map[string]any{
				"applicant_id": str("Applicant ID"),
				"month":        str("Month key (YYYY-MM)"),
				"status":       map[string]any{"type": "string", "enum": []string{"Not Started", "Pending", "Approved", "Rejected"}},
			}, "applicant_id", "month", "status"),
		},
		{
			Name:        "update_timesheet_hours",
			Description: "Set the hours of one month",
			InputSchema: object(map[string]any{
				"applicant_id": str("Applicant ID"),
				"month":        str("Month key (YYYY-MM)"),
				"hours":        map[string]any{"type": "number", "minimum": 0},
			}, "applicant_id", "month", "hours"),
		},

		// Activity and lookups
		{
			Name:        "get_activities",
			Description: "List recent activity, newest first",
			InputSchema: object(map[string]any{
				"limit": map[string]any{"type": "integer", "description": "Maximum entries (default 10)"},
			}),
		},
		{
			Name:        "get_departments",
			Description: "List departments",
			InputSchema: empty,
		},

		// Reports
		{
			Name:        "get_candidate_report",
			Description: "Candidates with aging days and margin",
			InputSchema: empty,
		},
		{
			Name:        "get_aging_alerts",
			Description: "Candidates of any status older than a threshold, oldest first",
			InputSchema: object(map[string]any{
				"threshold": map[string]any{"type": "integer", "description": "Age in days (default 7)"},
			}),
		},
		{
			Name:        "get_source_distribution",
			Description: "Share of applicants per source",
			InputSchema: empty,
		},
		{
			Name:        "get_dashboard",
			Description: "Counts, timesheet totals and recent activity",
			InputSchema: empty,
		},
		{
			Name:        "get_status",
			Description: "Whether a call is in flight and the last error message",
			InputSchema: empty,
		},
	}
}
