package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"recruitfunnel/site/models"
)

type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// CreateUser inserts a new user with the given role.
func (s *UserStore) CreateUser(ctx context.Context, email string, hashedPassword []byte, role string) (*models.User, error) {
	user := &models.User{}
	query := `
		INSERT INTO users (email, hashed_password, role)
		VALUES ($1, $2, $3)
		RETURNING id, email, role, created_at, updated_at;
	`
	err := s.db.QueryRowContext(ctx, query, email, hashedPassword, role).Scan(
		&user.ID,
		&user.Email,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("user with email '%s': %w", email, ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *UserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, email, hashed_password, role, created_at, updated_at
		FROM users
		WHERE lower(email) = lower($1);
	`
	err := s.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.HashedPassword,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with email '%s': %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// SetRole changes the role of an existing user.
func (s *UserStore) SetRole(ctx context.Context, email, role string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET role = $2, updated_at = now() WHERE lower(email) = lower($1)`,
		email, role)
	if err != nil {
		return fmt.Errorf("failed to set role: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to set role: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("user with email '%s': %w", email, ErrNotFound)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
