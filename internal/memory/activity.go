package memory

import (
	"context"
	"sync"

	"github.com/vikoShak/ATS/internal/domain/activity"
)

// ActivityRepository keeps the activity log newest first.
type ActivityRepository struct {
	mu      sync.RWMutex
	entries []activity.Activity
}

// NewActivityRepository creates an empty ActivityRepository.
func NewActivityRepository() *ActivityRepository {
	return &ActivityRepository{}
}

// Prepend inserts entry at the head of the log.
func (r *ActivityRepository) Prepend(_ context.Context, entry *activity.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append([]activity.Activity{copyActivity(*entry)}, r.entries...)
	return nil
}

// Recent returns up to limit entries from the head of the log.
func (r *ActivityRepository) Recent(_ context.Context, limit int) ([]activity.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if limit <= 0 || limit > len(r.entries) {
		limit = len(r.entries)
	}
	out := make([]activity.Activity, limit)
	for i := range out {
		out[i] = copyActivity(r.entries[i])
	}
	return out, nil
}

func copyActivity(a activity.Activity) activity.Activity {
	details := make(map[string]any, len(a.Details))
	for k, v := range a.Details {
		details[k] = v
	}
	a.Details = details
	return a
}
