package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `recruitiq is the data store behind a recruitment tracker: Applicants, Requirements, Timesheets and an Activity log.

Core concepts:
- Applicant: a candidate record. Email is the identity used by bulk upload when replace-by-email is on.
- Requirement: a job opening. Requirement tools fail with FEATURE_DISABLED when requirements are switched off.
- Timesheet: derived from every applicant in status Joined; one entry per month (YYYY-MM).
- Activity: newest-first log of every successful mutation.

Workflow:
1) Orient with get_dashboard or get_applicants.
2) Create candidates with create_applicant (one resume) or bulk_create_applicants (file names like John_Smith_Resume.pdf).
3) Move a candidate to Joined with update_applicant to start timesheets.
4) Record hours with update_timesheet_hours, then approve with update_timesheet_status.
5) After a failure, get_status returns the last error message.

Docs:
- recruitiq://docs/index
- recruitiq://docs/bulk-upload
- recruitiq://docs/timesheets
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "recruitiq://docs/index",
		Name:        "docs_index",
		Title:       "recruitiq docs index",
		Description: "Entry point: tools by area and error codes.",
		Content: `# recruitiq

## Tools

- Applicants: ` + "`get_applicants`, `get_all_applicants`, `get_applicant`, `create_applicant`, `bulk_create_applicants`, `update_applicant`, `delete_applicant`" + `
- Requirements: ` + "`get_requirements`, `create_requirement`, `update_requirement`, `delete_requirement`, `create_application`" + `
- Timesheets: ` + "`get_timesheets`, `update_timesheet_status`, `update_timesheet_hours`" + `
- Lookups and reports: ` + "`get_activities`, `get_departments`, `get_candidate_report`, `get_aging_alerts`, `get_source_distribution`, `get_dashboard`, `get_status`" + `

## Errors

Failed tools return isError with a JSON body ` + "`{code, message, recovery_hint}`" + `.

| code | meaning |
|------|---------|
| APPLICANT_NOT_FOUND | unknown applicant id |
| REQUIREMENT_NOT_FOUND | unknown requirement id |
| TIMESHEET_NOT_FOUND | applicant or month has no timesheet |
| FEATURE_DISABLED | requirements are switched off |
| UPLOAD_FAILED | document storage rejected the file |
| INVALID_INPUT | arguments failed validation |
`,
	},
	{
		URI:         "recruitiq://docs/bulk-upload",
		Name:        "docs_bulk_upload",
		Title:       "Bulk resume upload",
		Description: "How names and emails are derived from resume file names.",
		Content: `# Bulk upload

Each file becomes one applicant with source "Bulk Upload" and status Applied.
The identity is guessed from the file name, not from the document:

- ` + "`john_doe_resume.pdf`" + ` gives John Doe, john.doe@example.com and a +1-555 phone.
- Other names split on dashes, underscores and spaces; the last word is dropped.
- A file name with no usable words yields "Unknown Applicant", unknown@example.com.

When replace-by-email is on, an existing applicant with the same email is
updated in place instead of creating a duplicate.

Files that fail are listed under ` + "`failures`" + `; the rest still import.
`,
	},
	{
		URI:         "recruitiq://docs/timesheets",
		Name:        "docs_timesheets",
		Title:       "Timesheets",
		Description: "Month keys, statuses and how hours drive status.",
		Content: `# Timesheets

Every applicant in status Joined has a timesheet with twelve months of the
current year, keyed YYYY-MM.

- Statuses: Not Started, Pending, Approved, Rejected.
- Setting hours above zero moves a month to Pending; zero resets it to Not Started.
- Payable amount is hours times pay rate.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
