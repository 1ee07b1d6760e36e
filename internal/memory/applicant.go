package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/vikoShak/ATS/internal/domain/applicant"
	"github.com/vikoShak/ATS/internal/repository"
)

// ApplicantRepository keeps applicants in insertion order.
type ApplicantRepository struct {
	mu    sync.RWMutex
	items []*applicant.Applicant
}

// NewApplicantRepository creates an empty ApplicantRepository.
func NewApplicantRepository() *ApplicantRepository {
	return &ApplicantRepository{}
}

func (r *ApplicantRepository) Create(_ context.Context, a *applicant.Applicant) error {
	if a == nil || a.ID == "" {
		return repository.ErrInvalidInput
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.indexOf(a.ID) >= 0 {
		return repository.ErrConflict
	}
	r.items = append(r.items, a.Clone())
	return nil
}

func (r *ApplicantRepository) Get(_ context.Context, id string) (*applicant.Applicant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.indexOf(id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	return r.items[i].Clone(), nil
}

// FindByEmail returns the first applicant whose email matches, ignoring case.
func (r *ApplicantRepository) FindByEmail(_ context.Context, email string) (*applicant.Applicant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.items {
		if strings.EqualFold(a.Email, email) {
			return a.Clone(), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *ApplicantRepository) Update(_ context.Context, a *applicant.Applicant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(a.ID)
	if i < 0 {
		return repository.ErrNotFound
	}
	r.items[i] = a.Clone()
	return nil
}

func (r *ApplicantRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return repository.ErrNotFound
	}
	r.items = append(r.items[:i], r.items[i+1:]...)
	return nil
}

func (r *ApplicantRepository) List(_ context.Context) ([]*applicant.Applicant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*applicant.Applicant, len(r.items))
	for i, a := range r.items {
		out[i] = a.Clone()
	}
	return out, nil
}

func (r *ApplicantRepository) indexOf(id string) int {
	for i, a := range r.items {
		if a.ID == id {
			return i
		}
	}
	return -1
}
