package requirement

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/vikoShak/ATS/internal/domain/activity"
	"github.com/vikoShak/ATS/internal/repository"
)

var validate = func() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("requirement_status", func(fl validator.FieldLevel) bool {
		switch Status(fl.Field().String()) {
		case StatusOpen, StatusClosed, StatusOnHold, StatusActive:
			return true
		}
		return false
	})
	return v
}()

// CreateRequest defines requirement creation inputs.
type CreateRequest struct {
	Title             string  `json:"title" validate:"required"`
	RequirementNumber *string `json:"requirement_number,omitempty"`
	DepartmentID      *string `json:"department_id,omitempty"`
	Department        string  `json:"department,omitempty"`
	Location          string  `json:"location"`
	Type              Type    `json:"type" validate:"omitempty,oneof=Full-time Part-time Contract"`
	Status            Status  `json:"status" validate:"omitempty,requirement_status"`
	CustomerName      *string `json:"customer_name,omitempty"`
	KeySkills         *string `json:"key_skills,omitempty"`
	VisaRequested     *string `json:"visa_requested,omitempty"`
	PostedDate        *string `json:"posted_date,omitempty"`
	Deadline          *string `json:"deadline,omitempty"`
	Description       string  `json:"description"`
}

// UpdateRequest holds the fields to merge into a requirement. Nil fields are left unchanged.
type UpdateRequest struct {
	Title             *string `json:"title,omitempty" validate:"omitempty,min=1"`
	RequirementNumber *string `json:"requirement_number,omitempty"`
	DepartmentID      *string `json:"department_id,omitempty"`
	Location          *string `json:"location,omitempty"`
	Type              *Type   `json:"type,omitempty" validate:"omitempty,oneof=Full-time Part-time Contract"`
	Status            *Status `json:"status,omitempty" validate:"omitempty,requirement_status"`
	CustomerName      *string `json:"customer_name,omitempty"`
	KeySkills         *string `json:"key_skills,omitempty"`
	VisaRequested     *string `json:"visa_requested,omitempty"`
	PostedDate        *string `json:"posted_date,omitempty"`
	Deadline          *string `json:"deadline,omitempty"`
	Description       *string `json:"description,omitempty"`
}

// Service handles requirement operations. When disabled, List returns an
// empty slice and every other operation fails with ErrFeatureDisabled.
type Service struct {
	repo        Repository
	departments DepartmentLookup
	activities  ActivityLogger
	enabled     bool
	logger      *slog.Logger
	now         func() time.Time
}

// NewService creates a new requirement service.
func NewService(repo Repository, departments DepartmentLookup, activities ActivityLogger, enabled bool, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		repo:        repo,
		departments: departments,
		activities:  activities,
		enabled:     enabled,
		logger:      logger,
		now:         time.Now,
	}
}

// Enabled reports whether requirements are switched on.
func (s *Service) Enabled() bool {
	return s.enabled
}

// List returns all requirements in insertion order.
func (s *Service) List(ctx context.Context) ([]*Requirement, error) {
	if !s.enabled {
		return []*Requirement{}, nil
	}
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing requirements: %w", err)
	}
	return list, nil
}

// Get fetches a requirement by ID.
func (s *Service) Get(ctx context.Context, id string) (*Requirement, error) {
	if !s.enabled {
		return nil, ErrFeatureDisabled
	}
	req, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRequirementNotFound
		}
		return nil, fmt.Errorf("getting requirement: %w", err)
	}
	return req, nil
}

// Create posts a new requirement.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Requirement, error) {
	if !s.enabled {
		return nil, ErrFeatureDisabled
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	r := &Requirement{
		ID:                uuid.NewString(),
		Title:             strings.TrimSpace(req.Title),
		RequirementNumber: req.RequirementNumber,
		DepartmentID:      req.DepartmentID,
		Department:        req.Department,
		Location:          req.Location,
		Type:              req.Type,
		Status:            req.Status,
		CustomerName:      req.CustomerName,
		KeySkills:         req.KeySkills,
		VisaRequested:     req.VisaRequested,
		PostedDate:        req.PostedDate,
		Deadline:          req.Deadline,
		Description:       req.Description,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if r.Type == "" {
		r.Type = TypeFullTime
	}
	if r.Status == "" {
		r.Status = StatusOpen
	}
	if r.PostedDate == nil {
		posted := now.Format("2006-01-02")
		r.PostedDate = &posted
	}
	s.joinDepartment(r)

	if err := s.repo.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("creating requirement: %w", err)
	}
	s.activities.Record(ctx, activity.ActionRequirementCreated, activity.EntityRequirement, r.ID, map[string]any{
		"title": r.Title,
	})
	return r, nil
}

// Update merges the non-nil fields of req into the requirement.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Requirement, error) {
	if !s.enabled {
		return nil, ErrFeatureDisabled
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		r.Title = strings.TrimSpace(*req.Title)
	}
	if req.RequirementNumber != nil {
		r.RequirementNumber = cloneString(req.RequirementNumber)
	}
	if req.DepartmentID != nil {
		r.DepartmentID = cloneString(req.DepartmentID)
	}
	if req.Location != nil {
		r.Location = *req.Location
	}
	if req.Type != nil {
		r.Type = *req.Type
	}
	if req.Status != nil {
		r.Status = *req.Status
	}
	if req.CustomerName != nil {
		r.CustomerName = cloneString(req.CustomerName)
	}
	if req.KeySkills != nil {
		r.KeySkills = cloneString(req.KeySkills)
	}
	if req.VisaRequested != nil {
		r.VisaRequested = cloneString(req.VisaRequested)
	}
	if req.PostedDate != nil {
		r.PostedDate = cloneString(req.PostedDate)
	}
	if req.Deadline != nil {
		r.Deadline = cloneString(req.Deadline)
	}
	if req.Description != nil {
		r.Description = *req.Description
	}
	s.joinDepartment(r)
	r.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, r); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRequirementNotFound
		}
		return nil, fmt.Errorf("updating requirement: %w", err)
	}
	s.activities.Record(ctx, activity.ActionRequirementUpdated, activity.EntityRequirement, r.ID, map[string]any{
		"title": r.Title,
	})
	return r, nil
}

// Delete removes a requirement.
func (s *Service) Delete(ctx context.Context, id string) error {
	if !s.enabled {
		return ErrFeatureDisabled
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRequirementNotFound
		}
		return fmt.Errorf("deleting requirement: %w", err)
	}
	s.activities.Record(ctx, activity.ActionRequirementDeleted, activity.EntityRequirement, id, map[string]any{})
	return nil
}

// joinDepartment fills the denormalized department fields from DepartmentID.
// An unknown ID clears them.
func (s *Service) joinDepartment(r *Requirement) {
	if r.DepartmentID == nil || s.departments == nil {
		if r.Department != "" && r.Departments == nil {
			r.Departments = &DepartmentRef{Name: r.Department}
		}
		return
	}
	name, ok := s.departments.Name(*r.DepartmentID)
	if !ok {
		r.Department = ""
		r.Departments = nil
		return
	}
	r.Department = name
	r.Departments = &DepartmentRef{ID: *r.DepartmentID, Name: name}
}

func validateStruct(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field()+" ("+fe.Tag()+")")
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(fields, ", "))
}
