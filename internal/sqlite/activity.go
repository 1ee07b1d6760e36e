package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vikoShak/ATS/internal/domain/activity"
)

// ActivityRepository implements activity.Repository for SQLite
type ActivityRepository struct {
	db *DB
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Prepend inserts a new activity entry at the head of the log
func (r *ActivityRepository) Prepend(ctx context.Context, entry *activity.Activity) error {
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	details := entry.Details
	if details == nil {
		details = map[string]any{}
	}
	encoded, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("failed to encode activity details: %w", err)
	}

	query := `
		INSERT INTO activity_log (id, action, entity_type, entity_id, details, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		entry.ID,
		entry.Action,
		string(entry.EntityType),
		entry.EntityID,
		string(encoded),
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to log activity: %w", err)
	}

	entry.CreatedAt = createdAt
	return nil
}

// Recent returns up to limit entries, newest first. A limit of zero or less returns all.
func (r *ActivityRepository) Recent(ctx context.Context, limit int) ([]activity.Activity, error) {
	query := `
		SELECT id, action, entity_type, entity_id, details, created_at
		FROM activity_log
		ORDER BY seq DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	defer rows.Close()

	entries := []activity.Activity{}
	for rows.Next() {
		var entry activity.Activity
		var entityType, details string
		if err := rows.Scan(
			&entry.ID,
			&entry.Action,
			&entityType,
			&entry.EntityID,
			&details,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan activity entry: %w", err)
		}
		entry.EntityType = activity.EntityType(entityType)
		if err := json.Unmarshal([]byte(details), &entry.Details); err != nil {
			return nil, fmt.Errorf("failed to decode activity details: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity rows: %w", err)
	}

	return entries, nil
}
