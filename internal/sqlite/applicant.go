package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vikoShak/ATS/internal/domain/applicant"
	"github.com/vikoShak/ATS/internal/repository"
)

// ApplicantRepository implements applicant.Repository for SQLite
type ApplicantRepository struct {
	db *DB
}

// NewApplicantRepository creates a new ApplicantRepository
func NewApplicantRepository(db *DB) *ApplicantRepository {
	return &ApplicantRepository{db: db}
}

// Create inserts a new applicant
func (r *ApplicantRepository) Create(ctx context.Context, a *applicant.Applicant) error {
	if a == nil || a.ID == "" {
		return repository.ErrInvalidInput
	}
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to encode applicant: %w", err)
	}

	query := `
		INSERT INTO applicants (id, full_name, email, status, source, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		a.ID,
		a.FullName,
		a.Email,
		string(a.Status),
		a.Source,
		string(data),
		a.CreatedAt,
		a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to create applicant: %w", err)
	}
	return nil
}

// Get retrieves an applicant by ID
func (r *ApplicantRepository) Get(ctx context.Context, id string) (*applicant.Applicant, error) {
	row := r.db.QueryRowContext(ctx, `SELECT data FROM applicants WHERE id = ?`, id)
	a, err := scanApplicant(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get applicant: %w", err)
	}
	return a, nil
}

// FindByEmail returns the earliest applicant with the given email, ignoring case
func (r *ApplicantRepository) FindByEmail(ctx context.Context, email string) (*applicant.Applicant, error) {
	query := `
		SELECT data
		FROM applicants
		WHERE email = ? COLLATE NOCASE
		ORDER BY seq ASC
		LIMIT 1
	`
	a, err := scanApplicant(r.db.QueryRowContext(ctx, query, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find applicant by email: %w", err)
	}
	return a, nil
}

// Update replaces the stored applicant
func (r *ApplicantRepository) Update(ctx context.Context, a *applicant.Applicant) error {
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to encode applicant: %w", err)
	}

	query := `
		UPDATE applicants
		SET full_name = ?, email = ?, status = ?, source = ?, data = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		a.FullName,
		a.Email,
		string(a.Status),
		a.Source,
		string(data),
		a.UpdatedAt,
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update applicant: %w", err)
	}
	return requireAffected(result)
}

// Delete removes an applicant
func (r *ApplicantRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM applicants WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete applicant: %w", err)
	}
	return requireAffected(result)
}

// List returns all applicants in insertion order
func (r *ApplicantRepository) List(ctx context.Context) ([]*applicant.Applicant, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT data FROM applicants ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list applicants: %w", err)
	}
	defer rows.Close()

	out := []*applicant.Applicant{}
	for rows.Next() {
		a, err := scanApplicant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan applicant: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating applicant rows: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplicant(row rowScanner) (*applicant.Applicant, error) {
	var data string
	if err := row.Scan(&data); err != nil {
		return nil, err
	}
	var a applicant.Applicant
	if err := json.Unmarshal([]byte(data), &a); err != nil {
		return nil, fmt.Errorf("failed to decode applicant: %w", err)
	}
	return &a, nil
}

func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
