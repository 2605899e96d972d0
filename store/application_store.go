package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"recruitfunnel/site/models"
)

type ApplicationStore struct {
	db *sql.DB
}

func NewApplicationStore(db *sql.DB) *ApplicationStore {
	return &ApplicationStore{db: db}
}

// CreateApplication stores a submission. A second application for the same role and
// email returns ErrDuplicate.
func (s *ApplicationStore) CreateApplication(ctx context.Context, app *models.Application) error {
	query := `
		INSERT INTO applications (
			id, first_name, last_name, email, phone, role, experience_years, has_license,
			available_from, consent, score, priority, outcome, reason, attribution
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING created_at;
	`
	err := s.db.QueryRowContext(ctx, query,
		app.ID,
		app.FirstName,
		app.LastName,
		app.Email,
		app.Phone,
		app.Role,
		app.ExperienceYears,
		app.HasLicense,
		app.AvailableFrom,
		app.Consent,
		app.Score,
		app.Priority,
		app.Outcome,
		app.Reason,
		app.Attribution,
	).Scan(&app.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("application for '%s' (%s): %w", app.Email, app.Role, ErrDuplicate)
		}
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

// CountByOutcome groups applications created in [start, end] by outcome.
func (s *ApplicationStore) CountByOutcome(ctx context.Context, start, end time.Time) ([]models.OutcomeCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT outcome, count(*)
		FROM applications
		WHERE created_at >= $1 AND created_at <= $2
		GROUP BY outcome
		ORDER BY outcome;
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to count applications: %w", err)
	}
	defer rows.Close()

	var results []models.OutcomeCount
	for rows.Next() {
		var oc models.OutcomeCount
		if err := rows.Scan(&oc.Outcome, &oc.Count); err != nil {
			return nil, fmt.Errorf("scan application counts: %w", err)
		}
		results = append(results, oc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating application counts: %w", err)
	}
	return results, nil
}
