package activity

import "context"

// Repository provides persistence operations for activity entries.
// Recent must return entries newest first.
type Repository interface {
	Prepend(ctx context.Context, entry *Activity) error
	Recent(ctx context.Context, limit int) ([]Activity, error)
}
