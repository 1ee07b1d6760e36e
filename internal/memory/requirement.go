package memory

import (
	"context"
	"sync"

	"github.com/vikoShak/ATS/internal/domain/requirement"
	"github.com/vikoShak/ATS/internal/repository"
)

// RequirementRepository keeps requirements in insertion order.
type RequirementRepository struct {
	mu    sync.RWMutex
	items []*requirement.Requirement
}

// NewRequirementRepository creates an empty RequirementRepository.
func NewRequirementRepository() *RequirementRepository {
	return &RequirementRepository{}
}

func (r *RequirementRepository) Create(_ context.Context, req *requirement.Requirement) error {
	if req == nil || req.ID == "" {
		return repository.ErrInvalidInput
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.indexOf(req.ID) >= 0 {
		return repository.ErrConflict
	}
	r.items = append(r.items, req.Clone())
	return nil
}

func (r *RequirementRepository) Get(_ context.Context, id string) (*requirement.Requirement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.indexOf(id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	return r.items[i].Clone(), nil
}

func (r *RequirementRepository) Update(_ context.Context, req *requirement.Requirement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(req.ID)
	if i < 0 {
		return repository.ErrNotFound
	}
	r.items[i] = req.Clone()
	return nil
}

func (r *RequirementRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return repository.ErrNotFound
	}
	r.items = append(r.items[:i], r.items[i+1:]...)
	return nil
}

func (r *RequirementRepository) List(_ context.Context) ([]*requirement.Requirement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*requirement.Requirement, len(r.items))
	for i, req := range r.items {
		out[i] = req.Clone()
	}
	return out, nil
}

func (r *RequirementRepository) indexOf(id string) int {
	for i, req := range r.items {
		if req.ID == id {
			return i
		}
	}
	return -1
}
