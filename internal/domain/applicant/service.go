package applicant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vikoShak/ATS/internal/domain/activity"
	"github.com/vikoShak/ATS/internal/repository"
)

const dateLayout = "2006-01-02"

// Service handles applicant operations.
type Service struct {
	repo       Repository
	uploader   Uploader
	activities ActivityLogger
	logger     *slog.Logger
	opts       Options
	now        func() time.Time
}

// NewService creates a new applicant service.
func NewService(repo Repository, uploader Uploader, activities ActivityLogger, opts Options, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.PhoneRegion == "" {
		opts.PhoneRegion = DefaultOptions().PhoneRegion
	}
	return &Service{
		repo:       repo,
		uploader:   uploader,
		activities: activities,
		logger:     logger,
		opts:       opts,
		now:        time.Now,
	}
}

// SetClock overrides the time source.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// List returns applicants in insertion order.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]*Applicant, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing applicants: %w", err)
	}
	search := strings.ToLower(strings.TrimSpace(opts.Search))
	out := make([]*Applicant, 0, len(all))
	for _, a := range all {
		if opts.ExcludeBulk && a.Source == SourceBulkUpload {
			continue
		}
		if opts.Status != "" && a.Status != opts.Status {
			continue
		}
		if search != "" && !matchesSearch(a, search) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

// ListAll returns every applicant including bulk uploads.
func (s *Service) ListAll(ctx context.Context) ([]*Applicant, error) {
	return s.List(ctx, ListOptions{})
}

// Get fetches an applicant by ID.
func (s *Service) Get(ctx context.Context, id string) (*Applicant, error) {
	a, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrApplicantNotFound
		}
		return nil, fmt.Errorf("getting applicant: %w", err)
	}
	return a, nil
}

// Create stores a new applicant, uploading its documents and tagging it to requirements.
func (s *Service) Create(ctx context.Context, req CreateRequest, resume *File, supporting []File, tagged []TaggedRequirement) (*Applicant, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	a := &Applicant{
		ID:                      uuid.NewString(),
		FullName:                strings.TrimSpace(req.FullName),
		CNNumber:                req.CNNumber,
		Email:                   strings.TrimSpace(req.Email),
		Phone:                   req.Phone,
		Location:                req.Location,
		VisaStatus:              req.VisaStatus,
		VisaValidity:            req.VisaValidity,
		Skills:                  req.Skills,
		Comments:                req.Comments,
		Status:                  req.Status,
		AppliedDate:             req.AppliedDate,
		JoinedDate:              req.JoinedDate,
		Source:                  req.Source,
		TaxTerm:                 req.TaxTerm,
		PayRate:                 req.PayRate,
		SubmissionRate:          req.SubmissionRate,
		SupportingDocumentsURLs: []string{},
		Applications:            []Application{},
		CreatedAt:               now,
		UpdatedAt:               now,
	}
	if a.Status == "" {
		a.Status = StatusApplied
	}
	if a.AppliedDate == "" {
		a.AppliedDate = now.Format(dateLayout)
	}
	if a.Status == StatusJoined && a.JoinedDate == nil {
		joined := now.Format(dateLayout)
		a.JoinedDate = &joined
	}
	s.normalizePhone(a)

	if resume != nil {
		url, err := s.upload(ctx, "resumes", *resume, now)
		if err != nil {
			return nil, err
		}
		a.ResumeURL = &url
	}
	for _, f := range supporting {
		url, err := s.upload(ctx, "supporting", f, now)
		if err != nil {
			return nil, err
		}
		a.SupportingDocumentsURLs = append(a.SupportingDocumentsURLs, url)
	}

	titles := make([]string, 0, len(tagged))
	for _, req := range tagged {
		a.Applications = append(a.Applications, Application{
			ID:            uuid.NewString(),
			ApplicantID:   a.ID,
			RequirementID: req.ID,
			Status:        StatusApplied,
			AppliedDate:   a.AppliedDate,
			Requirement: &RequirementRef{
				Title:        req.Title,
				DepartmentID: req.DepartmentID,
				Department:   req.Department,
			},
			CreatedAt: now,
			UpdatedAt: now,
		})
		titles = append(titles, req.Title)
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("creating applicant: %w", err)
	}

	s.activities.Record(ctx, activity.ActionApplicantCreated, activity.EntityApplicant, a.ID, map[string]any{
		"name":               a.FullName,
		"taggedRequirements": titles,
	})
	s.logger.Debug("applicant created", "id", a.ID, "source", a.Source, "tagged", len(titles))
	return a, nil
}

// BulkCreate turns each resume file into an applicant. Files are processed in
// order; a failing file is reported and the rest are still processed.
func (s *Service) BulkCreate(ctx context.Context, files []File) (*BulkResult, error) {
	var created, replaced []*Applicant
	var failures []BulkFailure

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		a, wasReplaced, err := s.bulkOne(ctx, f)
		if err != nil {
			s.logger.Warn("bulk upload file failed", "file", f.Name, "error", err)
			failures = append(failures, BulkFailure{File: f.Name, Error: err.Error()})
			continue
		}
		if wasReplaced {
			replaced = append(replaced, a)
		} else {
			created = append(created, a)
		}
	}

	result := &BulkResult{Applicants: append(created, replaced...), Failures: failures}
	if result.Applicants == nil {
		result.Applicants = []*Applicant{}
	}
	s.logger.Info("bulk upload processed", "files", len(files), "created", len(created), "replaced", len(replaced), "failed", len(failures))
	return result, nil
}

func (s *Service) bulkOne(ctx context.Context, f File) (*Applicant, bool, error) {
	id := IdentityFromFilename(f.Name)
	today := s.now().UTC().Format(dateLayout)
	na := "N/A"

	if s.opts.ReplaceByEmail {
		existing, err := s.repo.FindByEmail(ctx, id.Email)
		switch {
		case err == nil:
			comment := "Bulk uploaded resume (replaced): " + f.Name
			status := StatusApplied
			source := SourceBulkUpload
			zero := 0.0
			upd := UpdateRequest{
				FullName:       &id.FullName,
				Email:          &id.Email,
				Phone:          &id.Phone,
				Location:       &na,
				VisaStatus:     &na,
				Skills:         &na,
				Comments:       &comment,
				Status:         &status,
				AppliedDate:    &today,
				Source:         &source,
				TaxTerm:        &na,
				PayRate:        &zero,
				SubmissionRate: &zero,
			}
			url, err := s.upload(ctx, "resumes", f, s.now().UTC())
			if err != nil {
				return nil, false, err
			}
			upd.ResumeURL = &url
			a, err := s.Update(ctx, existing.ID, upd)
			return a, true, err
		case !errors.Is(err, repository.ErrNotFound):
			return nil, false, fmt.Errorf("finding applicant by email: %w", err)
		}
	}

	comment := "Bulk uploaded resume: " + f.Name
	a, err := s.Create(ctx, CreateRequest{
		FullName:    id.FullName,
		Email:       id.Email,
		Phone:       id.Phone,
		Location:    na,
		VisaStatus:  na,
		Skills:      na,
		Comments:    &comment,
		Status:      StatusApplied,
		AppliedDate: today,
		Source:      SourceBulkUpload,
		TaxTerm:     na,
	}, &f, nil, nil)
	return a, false, err
}

// Update merges the non-nil fields of req into the applicant.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Applicant, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	applyUpdate(a, req)
	if req.Phone != nil {
		a.PhoneE164 = nil
		s.normalizePhone(a)
	}
	now := s.now().UTC()
	if a.Status == StatusJoined && a.JoinedDate == nil {
		joined := now.Format(dateLayout)
		a.JoinedDate = &joined
	}
	a.UpdatedAt = now

	if err := s.repo.Update(ctx, a); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrApplicantNotFound
		}
		return nil, fmt.Errorf("updating applicant: %w", err)
	}

	s.activities.Record(ctx, activity.ActionApplicantUpdated, activity.EntityApplicant, a.ID, map[string]any{
		"updates": updateDetails(req),
	})
	return a, nil
}

// Delete removes an applicant. Applications stored on it go with it.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrApplicantNotFound
		}
		return fmt.Errorf("deleting applicant: %w", err)
	}
	s.activities.Record(ctx, activity.ActionApplicantDeleted, activity.EntityApplicant, id, map[string]any{})
	return nil
}

// CreateApplication builds an application record. It is returned, not stored.
func (s *Service) CreateApplication(_ context.Context, req ApplicationRequest) (*Application, error) {
	if strings.TrimSpace(req.ApplicantID) == "" || strings.TrimSpace(req.RequirementID) == "" {
		return nil, fmt.Errorf("%w: applicant_id and requirement_id are required", ErrInvalidInput)
	}
	if req.Status != "" && !req.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}
	now := s.now().UTC()
	app := &Application{
		ID:            uuid.NewString(),
		ApplicantID:   req.ApplicantID,
		RequirementID: req.RequirementID,
		Status:        req.Status,
		AppliedDate:   req.AppliedDate,
		Notes:         req.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if app.Status == "" {
		app.Status = StatusApplied
	}
	if app.AppliedDate == "" {
		app.AppliedDate = now.Format(dateLayout)
	}
	return app, nil
}

func (s *Service) upload(ctx context.Context, folder string, f File, at time.Time) (string, error) {
	path := fmt.Sprintf("%s/%d-%s", folder, at.UnixMilli(), f.Name)
	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	url, err := s.uploader.Upload(ctx, path, contentType, bytes.NewReader(f.Data))
	if err != nil {
		s.logger.Error("document upload failed", "path", path, "error", err)
		return "", fmt.Errorf("%w: %s: %v", ErrUploadFailed, f.Name, err)
	}
	return url, nil
}

func (s *Service) normalizePhone(a *Applicant) {
	if e164, ok := NormalizePhone(a.Phone, s.opts.PhoneRegion); ok {
		a.PhoneE164 = &e164
	}
}

func applyUpdate(a *Applicant, req UpdateRequest) {
	setString(&a.FullName, req.FullName)
	setString(&a.Email, req.Email)
	setString(&a.Phone, req.Phone)
	setString(&a.Location, req.Location)
	setString(&a.VisaStatus, req.VisaStatus)
	setString(&a.Skills, req.Skills)
	setString(&a.AppliedDate, req.AppliedDate)
	setString(&a.Source, req.Source)
	setString(&a.TaxTerm, req.TaxTerm)
	if req.CNNumber != nil {
		a.CNNumber = cloneString(req.CNNumber)
	}
	if req.VisaValidity != nil {
		a.VisaValidity = cloneString(req.VisaValidity)
	}
	if req.Comments != nil {
		a.Comments = cloneString(req.Comments)
	}
	if req.JoinedDate != nil {
		a.JoinedDate = cloneString(req.JoinedDate)
	}
	if req.ResumeURL != nil {
		a.ResumeURL = cloneString(req.ResumeURL)
	}
	if req.Status != nil {
		a.Status = *req.Status
	}
	if req.PayRate != nil {
		a.PayRate = *req.PayRate
	}
	if req.SubmissionRate != nil {
		a.SubmissionRate = *req.SubmissionRate
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func updateDetails(req UpdateRequest) map[string]any {
	out := map[string]any{}
	data, err := json.Marshal(req)
	if err != nil {
		return out
	}
	_ = json.Unmarshal(data, &out)
	return out
}

func matchesSearch(a *Applicant, search string) bool {
	for _, field := range []string{a.FullName, a.Email, a.Skills, a.Location} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}
