package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
	"github.com/vikoShak/ATS/internal/domain/activity"
	"github.com/vikoShak/ATS/internal/domain/applicant"
	"github.com/vikoShak/ATS/internal/domain/requirement"
)

// ApplicantRepository is a mock for applicant.Repository.
type ApplicantRepository struct {
	mock.Mock
}

func (m *ApplicantRepository) Create(ctx context.Context, a *applicant.Applicant) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *ApplicantRepository) Get(ctx context.Context, id string) (*applicant.Applicant, error) {
	args := m.Called(ctx, id)
	if a, ok := args.Get(0).(*applicant.Applicant); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ApplicantRepository) FindByEmail(ctx context.Context, email string) (*applicant.Applicant, error) {
	args := m.Called(ctx, email)
	if a, ok := args.Get(0).(*applicant.Applicant); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ApplicantRepository) Update(ctx context.Context, a *applicant.Applicant) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *ApplicantRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ApplicantRepository) List(ctx context.Context) ([]*applicant.Applicant, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]*applicant.Applicant); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// RequirementRepository is a mock for requirement.Repository.
type RequirementRepository struct {
	mock.Mock
}

func (m *RequirementRepository) Create(ctx context.Context, r *requirement.Requirement) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *RequirementRepository) Get(ctx context.Context, id string) (*requirement.Requirement, error) {
	args := m.Called(ctx, id)
	if r, ok := args.Get(0).(*requirement.Requirement); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RequirementRepository) Update(ctx context.Context, r *requirement.Requirement) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *RequirementRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *RequirementRepository) List(ctx context.Context) ([]*requirement.Requirement, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]*requirement.Requirement); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Prepend(ctx context.Context, entry *activity.Activity) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ActivityRepository) Recent(ctx context.Context, limit int) ([]activity.Activity, error) {
	args := m.Called(ctx, limit)
	if list, ok := args.Get(0).([]activity.Activity); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ActivityLogger is a mock for the services' best-effort audit trail.
type ActivityLogger struct {
	mock.Mock
}

func (m *ActivityLogger) Record(ctx context.Context, action string, entityType activity.EntityType, entityID string, details map[string]any) {
	m.Called(ctx, action, entityType, entityID, details)
}

// Uploader is a mock for applicant.Uploader.
type Uploader struct {
	mock.Mock
}

func (m *Uploader) Upload(ctx context.Context, path, contentType string, body io.Reader) (string, error) {
	args := m.Called(ctx, path, contentType, body)
	return args.String(0), args.Error(1)
}
