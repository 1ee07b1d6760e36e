package activity

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service handles activity log operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new activity service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// Log records an activity at the head of the log, filling ID and timestamp if missing.
func (s *Service) Log(ctx context.Context, entry *Activity) error {
	if entry == nil || strings.TrimSpace(entry.Action) == "" || entry.EntityType == "" {
		return ErrInvalidInput
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now().UTC()
	}
	if entry.Details == nil {
		entry.Details = map[string]any{}
	}
	if err := s.repo.Prepend(ctx, entry); err != nil {
		return fmt.Errorf("logging activity: %w", err)
	}
	s.logger.Debug("activity logged", "action", entry.Action, "entity_type", entry.EntityType, "entity_id", entry.EntityID)
	return nil
}

// Record is Log for callers that treat the audit trail as best effort.
func (s *Service) Record(ctx context.Context, action string, entityType EntityType, entityID string, details map[string]any) {
	entry := &Activity{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
	}
	if err := s.Log(ctx, entry); err != nil {
		s.logger.Warn("failed to log activity", "action", action, "entity_id", entityID, "error", err)
	}
}

// Recent returns the most recent entries, newest first.
func (s *Service) Recent(ctx context.Context, limit int) ([]Activity, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	entries, err := s.repo.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing activity: %w", err)
	}
	if entries == nil {
		entries = []Activity{}
	}
	return entries, nil
}
