package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"careerpath/internal/domain"
	"careerpath/internal/repository/models"
)

// UserDatabaseAdapter implements domain.UserRepository using sqlx.
type UserDatabaseAdapter struct {
	db *sqlx.DB
}

// NewUserDatabaseAdapter creates a new user repository.
func NewUserDatabaseAdapter(db *sqlx.DB) domain.UserRepository {
	return &UserDatabaseAdapter{db: db}
}

// GetByID returns one user, or nil when absent.
func (a *UserDatabaseAdapter) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT
		id "id",
		name "name",
		email "email",
		user_role "user_role",
		created_at "created_at",
		updated_at "updated_at"
	FROM users WHERE id = :1`

	var row models.User
	err := GetExecutor(ctx, a.db).GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, err)
	}

	return &domain.User{
		ID:        row.ID,
		Name:      row.Name,
		Email:     row.Email,
		Role:      row.UserRole,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}
