package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/vikoShak/ATS/internal/domain/activity"
	"github.com/vikoShak/ATS/internal/domain/applicant"
	"github.com/vikoShak/ATS/internal/domain/department"
	"github.com/vikoShak/ATS/internal/domain/report"
	"github.com/vikoShak/ATS/internal/domain/requirement"
	"github.com/vikoShak/ATS/internal/domain/timesheet"
)

// ApplicantService defines applicant operations.
type ApplicantService interface {
	List(ctx context.Context, opts applicant.ListOptions) ([]*applicant.Applicant, error)
	ListAll(ctx context.Context) ([]*applicant.Applicant, error)
	Get(ctx context.Context, id string) (*applicant.Applicant, error)
	Create(ctx context.Context, req applicant.CreateRequest, resume *applicant.File, supporting []applicant.File, tagged []applicant.TaggedRequirement) (*applicant.Applicant, error)
	BulkCreate(ctx context.Context, files []applicant.File) (*applicant.BulkResult, error)
	Update(ctx context.Context, id string, req applicant.UpdateRequest) (*applicant.Applicant, error)
	Delete(ctx context.Context, id string) error
	CreateApplication(ctx context.Context, req applicant.ApplicationRequest) (*applicant.Application, error)
}

// RequirementService defines requirement operations.
type RequirementService interface {
	List(ctx context.Context) ([]*requirement.Requirement, error)
	Create(ctx context.Context, req requirement.CreateRequest) (*requirement.Requirement, error)
	Update(ctx context.Context, id string, req requirement.UpdateRequest) (*requirement.Requirement, error)
	Delete(ctx context.Context, id string) error
}

// TimesheetService defines timesheet operations.
type TimesheetService interface {
	List(ctx context.Context) ([]timesheet.Timesheet, error)
	UpdateStatus(ctx context.Context, applicantID, month string, status applicant.TimesheetStatus) error
	UpdateHours(ctx context.Context, applicantID, month string, hours float64) error
}

// ActivityService defines activity operations.
type ActivityService interface {
	Recent(ctx context.Context, limit int) ([]activity.Activity, error)
}

// DepartmentService lists departments.
type DepartmentService interface {
	List() []department.Department
}

// ReportService defines reporting operations.
type ReportService interface {
	Candidates(ctx context.Context) ([]report.CandidateRow, error)
	AgingAlerts(ctx context.Context, threshold int) ([]report.CandidateRow, error)
	SourceDistribution(ctx context.Context) ([]report.SourceShare, error)
	Dashboard(ctx context.Context) (*report.Dashboard, error)
}

// Services contains all domain services the handler dispatches to.
type Services struct {
	Applicants   ApplicantService
	Requirements RequirementService
	Timesheets   TimesheetService
	Activity     ActivityService
	Departments  DepartmentService
	Reports      ReportService
}

// Handler dispatches method calls to the domain services and keeps the
// shared loading/error state callers poll after each call.
type Handler struct {
	svc    Services
	logger *slog.Logger

	mu       sync.Mutex
	inFlight int
	lastErr  *string
}

// NewHandler creates a new handler.
func NewHandler(svc Services, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Handler{svc: svc, logger: logger}
}

type methodFunc func(h *Handler, ctx context.Context, params json.RawMessage) (any, error)

var methods = map[string]methodFunc{
	"get_applicants":          (*Handler).getApplicants,
	"get_all_applicants":      (*Handler).getAllApplicants,
	"get_applicant":           (*Handler).getApplicant,
	"create_applicant":        (*Handler).createApplicant,
	"bulk_create_applicants":  (*Handler).bulkCreateApplicants,
	"update_applicant":        (*Handler).updateApplicant,
	"delete_applicant":        (*Handler).deleteApplicant,
	"get_requirements":        (*Handler).getRequirements,
	"create_requirement":      (*Handler).createRequirement,
	"update_requirement":      (*Handler).updateRequirement,
	"delete_requirement":      (*Handler).deleteRequirement,
	"create_application":      (*Handler).createApplication,
	"get_timesheets":          (*Handler).getTimesheets,
	"update_timesheet_status": (*Handler).updateTimesheetStatus,
	"update_timesheet_hours":  (*Handler).updateTimesheetHours,
	"get_activities":          (*Handler).getActivities,
	"get_departments":         (*Handler).getDepartments,
	"get_candidate_report":    (*Handler).getCandidateReport,
	"get_aging_alerts":        (*Handler).getAgingAlerts,
	"get_source_distribution": (*Handler).getSourceDistribution,
	"get_dashboard":           (*Handler).getDashboard,
}

// Methods lists every method name served by Handle, including get_status.
func Methods() []string {
	names := make([]string, 0, len(methods)+1)
	for name := range methods {
		names = append(names, name)
	}
	names = append(names, "get_status")
	sort.Strings(names)
	return names
}

// Handle dispatches a request. A failed call returns a nil result, and its
// message becomes the error reported by get_status until the next call starts.
func (h *Handler) Handle(ctx context.Context, method string, params json.RawMessage) (any, error) {
	if method == "get_status" {
		return h.Status(), nil
	}
	fn, ok := methods[method]
	if !ok {
		return nil, mapError(fmt.Errorf("%w: %s", ErrUnknownMethod, method))
	}

	h.begin()
	result, err := fn(h, ctx, params)
	h.end(err)
	if err != nil {
		h.logger.Warn("method failed", "method", method, "error", err)
		return nil, mapError(err)
	}
	h.logger.Debug("method handled", "method", method)
	return result, nil
}

// Status reports whether any call is in flight and the last error message.
func (h *Handler) Status() StatusResponse {
	h.mu.Lock()
	defer h.mu.Unlock()
	return StatusResponse{Loading: h.inFlight > 0, Error: h.lastErr}
}

func (h *Handler) begin() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.inFlight++
	h.lastErr = nil
}

func (h *Handler) end(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.inFlight--
	if err != nil {
		msg := Message(err)
		h.lastErr = &msg
	}
}

func (h *Handler) getApplicants(ctx context.Context, params json.RawMessage) (any, error) {
	var req GetApplicantsParams
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	return h.svc.Applicants.List(ctx, applicant.ListOptions{
		ExcludeBulk: req.ExcludeBulk,
		Status:      req.Status,
		Search:      req.Search,
	})
}

func (h *Handler) getAllApplicants(ctx context.Context, _ json.RawMessage) (any, error) {
	return h.svc.Applicants.ListAll(ctx)
}

func (h *Handler) getApplicant(ctx context.Context, params json.RawMessage) (any, error) {
	var req GetApplicantParams
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	return h.svc.Applicants.Get(ctx, req.ID)
}

func (h *Handler) createApplicant(ctx context.Context, params json.RawMessage) (any, error) {
	var req CreateApplicantParams
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	var resume *applicant.File
	if req.Resume != nil {
		f := req.Resume.file()
		resume = &f
	}
	supporting := make([]applicant.File, 0, len(req.SupportingDocuments))
	for _, doc := range req.SupportingDocuments {
		supporting = append(supporting, doc.file())
	}
	return h.svc.Applicants.Create(ctx, req.Applicant, resume, supporting, req.TaggedRequirements)
}

func (h *Handler) bulkCreateApplicants(ctx context.Context, params json.RawMessage) (any, error) {
	var req BulkCreateApplicantsParams
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	files := make([]applicant.File, 0, len(req.Files))
	for _, f := range req.Files {
		files = append(files, f.file())
	}
	return h.svc.Applicants.BulkCreate(ctx, files)
}

func (h *Handler) updateApplicant(ctx context.Context, params json.RawMessage) (any, error) {
	var req UpdateApplicantParams
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	return h.svc.Applicants.Update(ctx, req.ID, req.Updates)
}

func (h *Handler) deleteApplicant(ctx context.Context, params json.RawMessage) (any, error) {
	var req DeleteParams
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	if err := h.svc.Applicants.Delete(ctx, req.ID); err != nil {
		return nil, err
	}
	return DeleteResponse{Deleted: true}, nil
}

func (h *Handler) getRequirements(ctx context.Context, _ json.RawMessage) (any, error) {
	return h.svc.Requirements.List(ctx)
}

func (h *Handler) createRequirement(ctx context.Context, params json.RawMessage) (any, error) {
	var req CreateRequirementParams
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	return h.svc.Requirements.Create(ctx, req)
}

func (h *Handler) updateRequirement(ctx context.Context, params json.RawMessage) (any, error) {
	var req UpdateRequirementParams
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	return h.svc.Requirements.Update(ctx, req.ID, req.Updates)
}

func (h *Handler) deleteRequirement(ctx context.Context, params json.RawMessage) (any, error) {
	var req DeleteParams
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	if err := h.svc.Requirements.Delete(ctx, req.ID); err != nil {
		return nil, err
	}
	return DeleteResponse{Deleted: true}, nil
}

func (h *Handler) createApplication(ctx context.Context, params json.RawMessage) (any, error) {
	var req CreateApplicationParams
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	return h.svc.Applicants.CreateApplication(ctx, req)
}

func (h *Handler) getTimesheets(ctx context.Context, _ json.RawMessage) (any, error) {
	return h.svc.Timesheets.List(ctx)
}

func (h *Handler) updateTimesheetStatus(ctx context.Context, params json.RawMessage) (any, error) {
	var req UpdateTimesheetStatusParams
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	if err := h.svc.Timesheets.UpdateStatus(ctx, req.ApplicantID, req.Month, req.Status); err != nil {
		return nil, err
	}
	return UpdatedResponse{Updated: true}, nil
}

func (h *Handler) updateTimesheetHours(ctx context.Context, params json.RawMessage) (any, error) {
	var req UpdateTimesheetHoursParams
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	if req.Hours == nil {
		return nil, fmt.Errorf("%w: hours is required", ErrInvalidParams)
	}
	if err := h.svc.Timesheets.UpdateHours(ctx, req.ApplicantID, req.Month, *req.Hours); err != nil {
		return nil, err
	}
	return UpdatedResponse{Updated: true}, nil
}

func (h *Handler) getActivities(ctx context.Context, params json.RawMessage) (any, error) {
	var req GetActivitiesParams
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	return h.svc.Activity.Recent(ctx, req.Limit)
}

func (h *Handler) getDepartments(_ context.Context, _ json.RawMessage) (any, error) {
	return h.svc.Departments.List(), nil
}

func (h *Handler) getCandidateReport(ctx context.Context, _ json.RawMessage) (any, error) {
	return h.svc.Reports.Candidates(ctx)
}

func (h *Handler) getAgingAlerts(ctx context.Context, params json.RawMessage) (any, error) {
	var req GetAgingAlertsParams
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	return h.svc.Reports.AgingAlerts(ctx, req.Threshold)
}

func (h *Handler) getSourceDistribution(ctx context.Context, _ json.RawMessage) (any, error) {
	return h.svc.Reports.SourceDistribution(ctx)
}

func (h *Handler) getDashboard(ctx context.Context, _ json.RawMessage) (any, error) {
	return h.svc.Reports.Dashboard(ctx)
}

func decodeParams(params json.RawMessage, out any) error {
	if len(params) == 0 || string(params) == "null" {
		return nil
	}
	if err := json.Unmarshal(params, out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return nil
}
