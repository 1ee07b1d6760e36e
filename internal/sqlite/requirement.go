package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vikoShak/ATS/internal/domain/requirement"
	"github.com/vikoShak/ATS/internal/repository"
)

// RequirementRepository implements requirement.Repository for SQLite
type RequirementRepository struct {
	db *DB
}

// NewRequirementRepository creates a new RequirementRepository
func NewRequirementRepository(db *DB) *RequirementRepository {
	return &RequirementRepository{db: db}
}

// Create inserts a new requirement
func (r *RequirementRepository) Create(ctx context.Context, req *requirement.Requirement) error {
	if req == nil || req.ID == "" {
		return repository.ErrInvalidInput
	}
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to encode requirement: %w", err)
	}

	query := `
		INSERT INTO requirements (id, title, type, status, department_id, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		req.ID,
		req.Title,
		string(req.Type),
		string(req.Status),
		req.DepartmentID,
		string(data),
		req.CreatedAt,
		req.UpdatedAt,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return repository.ErrConflict
		case isCheckViolation(err):
			return repository.ErrInvalidInput
		}
		return fmt.Errorf("failed to create requirement: %w", err)
	}
	return nil
}

// Get retrieves a requirement by ID
func (r *RequirementRepository) Get(ctx context.Context, id string) (*requirement.Requirement, error) {
	req, err := scanRequirement(r.db.QueryRowContext(ctx, `SELECT data FROM requirements WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get requirement: %w", err)
	}
	return req, nil
}

// Update replaces the stored requirement
func (r *RequirementRepository) Update(ctx context.Context, req *requirement.Requirement) error {
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to encode requirement: %w", err)
	}

	query := `
		UPDATE requirements
		SET title = ?, type = ?, status = ?, department_id = ?, data = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		req.Title,
		string(req.Type),
		string(req.Status),
		req.DepartmentID,
		string(data),
		req.UpdatedAt,
		req.ID,
	)
	if err != nil {
		if isCheckViolation(err) {
			return repository.ErrInvalidInput
		}
		return fmt.Errorf("failed to update requirement: %w", err)
	}
	return requireAffected(result)
}

// Delete removes a requirement
func (r *RequirementRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM requirements WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete requirement: %w", err)
	}
	return requireAffected(result)
}

// List returns all requirements in insertion order
func (r *RequirementRepository) List(ctx context.Context) ([]*requirement.Requirement, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT data FROM requirements ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list requirements: %w", err)
	}
	defer rows.Close()

	out := []*requirement.Requirement{}
	for rows.Next() {
		req, err := scanRequirement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan requirement: %w", err)
		}
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating requirement rows: %w", err)
	}
	return out, nil
}

func scanRequirement(row rowScanner) (*requirement.Requirement, error) {
	var data string
	if err := row.Scan(&data); err != nil {
		return nil, err
	}
	var req requirement.Requirement
	if err := json.Unmarshal([]byte(data), &req); err != nil {
		return nil, fmt.Errorf("failed to decode requirement: %w", err)
	}
	return &req, nil
}
