package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"careerpath/internal/domain"
)

// AssignmentDatabaseAdapter implements domain.AssignmentRepository. The
// unique constraint on (attempt_id, question_id) is what makes racing
// assignment writers converge instead of duplicating rows.
type AssignmentDatabaseAdapter struct {
	db *sqlx.DB
}

// NewAssignmentDatabaseAdapter creates a new assignment repository.
func NewAssignmentDatabaseAdapter(db *sqlx.DB) domain.AssignmentRepository {
	return &AssignmentDatabaseAdapter{db: db}
}

// GetQuestionIDs returns the assigned question ids for (attempt, section)
// in ascending id order. Empty slice means no assignment exists yet.
func (a *AssignmentDatabaseAdapter) GetQuestionIDs(ctx context.Context, attemptID, sectionID string) ([]string, error) {
	query := `SELECT aq.question_id "question_id"
		FROM attempt_questions aq
		JOIN questions q ON aq.question_id = q.id
		WHERE aq.attempt_id = :1 AND q.section_id = :2
		ORDER BY aq.question_id ASC`

	var ids []string
	err := GetExecutor(ctx, a.db).SelectContext(ctx, &ids, query, attemptID, sectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assigned question IDs: %w", err)
	}
	return ids, nil
}

// CreateAssignments inserts the (attempt, question) pairs one by one,
// swallowing unique-constraint violations so concurrent retries are
// idempotent.
func (a *AssignmentDatabaseAdapter) CreateAssignments(ctx context.Context, attemptID string, questionIDs []string) error {
	query := `INSERT INTO attempt_questions (attempt_id, question_id, created_at) VALUES (:1, :2, :3)`

	executor := GetExecutor(ctx, a.db)
	now := time.Now()
	for _, questionID := range questionIDs {
		_, err := executor.ExecContext(ctx, query, attemptID, questionID, now)
		if err != nil {
			if isUniqueViolation(err) {
				continue
			}
			return fmt.Errorf("failed to create assignment (%s, %s): %w", attemptID, questionID, err)
		}
	}
	return nil
}

// CountByAttempt counts all assigned questions across sections.
func (a *AssignmentDatabaseAdapter) CountByAttempt(ctx context.Context, attemptID string) (int, error) {
	var count int
	err := GetExecutor(ctx, a.db).GetContext(ctx, &count,
		`SELECT COUNT(*) FROM attempt_questions WHERE attempt_id = :1`, attemptID)
	if err != nil {
		return 0, fmt.Errorf("failed to count assignments for attempt %s: %w", attemptID, err)
	}
	return count, nil
}

// DeleteByAttempt removes all assignment rows for an attempt.
func (a *AssignmentDatabaseAdapter) DeleteByAttempt(ctx context.Context, attemptID string) error {
	_, err := GetExecutor(ctx, a.db).ExecContext(ctx,
		`DELETE FROM attempt_questions WHERE attempt_id = :1`, attemptID)
	if err != nil {
		return fmt.Errorf("failed to delete assignments for attempt %s: %w", attemptID, err)
	}
	return nil
}
