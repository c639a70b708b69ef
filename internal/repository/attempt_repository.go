package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"careerpath/internal/domain"
	"careerpath/internal/repository/models"
	"careerpath/internal/util"
)

const attemptColumns = `
	id "id",
	student_id "student_id",
	status "status",
	started_at "started_at",
	completed_at "completed_at",
	current_section_id "current_section_id",
	current_question_index "current_question_index",
	remaining_time_seconds "remaining_time_seconds",
	created_at "created_at",
	updated_at "updated_at"`

// AttemptDatabaseAdapter implements domain.AttemptRepository using sqlx.
type AttemptDatabaseAdapter struct {
	db *sqlx.DB
}

// NewAttemptDatabaseAdapter creates a new attempt repository.
func NewAttemptDatabaseAdapter(db *sqlx.DB) domain.AttemptRepository {
	return &AttemptDatabaseAdapter{db: db}
}

func toDomainAttempt(m *models.TestAttempt) *domain.TestAttempt {
	if m == nil {
		return nil
	}
	return &domain.TestAttempt{
		ID:                   m.ID,
		StudentID:            m.StudentID,
		Status:               m.Status,
		StartedAt:            m.StartedAt,
		CompletedAt:          util.NullTimeToPtr(m.CompletedAt),
		CurrentSectionID:     m.CurrentSectionID.String,
		CurrentQuestionIndex: m.CurrentQuestionIndex,
		RemainingTimeSeconds: m.RemainingTimeSeconds,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

// Create inserts a new attempt row.
func (a *AttemptDatabaseAdapter) Create(ctx context.Context, attempt *domain.TestAttempt) error {
	if attempt.ID == "" {
		attempt.ID = util.NewULID()
	}
	now := time.Now()
	attempt.CreatedAt = now
	attempt.UpdatedAt = now

	query := `INSERT INTO test_attempts (
		id, student_id, status, started_at, completed_at,
		current_section_id, current_question_index, remaining_time_seconds,
		created_at, updated_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7, :8, :9, :10
	)`

	_, err := GetExecutor(ctx, a.db).ExecContext(ctx, query,
		attempt.ID,
		attempt.StudentID,
		attempt.Status,
		attempt.StartedAt,
		util.TimePtrToNullTime(attempt.CompletedAt),
		util.StringToNullString(attempt.CurrentSectionID),
		attempt.CurrentQuestionIndex,
		attempt.RemainingTimeSeconds,
		attempt.CreatedAt,
		attempt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create test attempt: %w", err)
	}
	return nil
}

// GetByID returns one attempt, or nil when absent.
func (a *AttemptDatabaseAdapter) GetByID(ctx context.Context, id string) (*domain.TestAttempt, error) {
	query := fmt.Sprintf(`SELECT %s FROM test_attempts WHERE id = :1`, attemptColumns)

	var row models.TestAttempt
	err := GetExecutor(ctx, a.db).GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attempt by ID %s: %w", id, err)
	}
	return toDomainAttempt(&row), nil
}

func (a *AttemptDatabaseAdapter) getByStudentAndStatus(ctx context.Context, studentID, status string) (*domain.TestAttempt, error) {
	query := fmt.Sprintf(`SELECT %s FROM test_attempts
		WHERE student_id = :1 AND status = :2
		ORDER BY started_at DESC
		FETCH FIRST 1 ROWS ONLY`, attemptColumns)

	var row models.TestAttempt
	err := GetExecutor(ctx, a.db).GetContext(ctx, &row, query, studentID, status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get %s attempt for student %s: %w", status, studentID, err)
	}
	return toDomainAttempt(&row), nil
}

// GetInProgressByStudent returns the student's open attempt, or nil.
func (a *AttemptDatabaseAdapter) GetInProgressByStudent(ctx context.Context, studentID string) (*domain.TestAttempt, error) {
	return a.getByStudentAndStatus(ctx, studentID, domain.AttemptInProgress)
}

// GetCompletedByStudent returns the student's completed attempt, or nil.
func (a *AttemptDatabaseAdapter) GetCompletedByStudent(ctx context.Context, studentID string) (*domain.TestAttempt, error) {
	return a.getByStudentAndStatus(ctx, studentID, domain.AttemptCompleted)
}

// GetLatestFinishedByStudent returns the most recent COMPLETED or ABANDONED
// attempt. After an allowed retake the prior attempt is ABANDONED, and its
// assignments still drive repeat avoidance.
func (a *AttemptDatabaseAdapter) GetLatestFinishedByStudent(ctx context.Context, studentID string) (*domain.TestAttempt, error) {
	query := fmt.Sprintf(`SELECT %s FROM test_attempts
		WHERE student_id = :1 AND status IN (:2, :3)
		ORDER BY started_at DESC
		FETCH FIRST 1 ROWS ONLY`, attemptColumns)

	var row models.TestAttempt
	err := GetExecutor(ctx, a.db).GetContext(ctx, &row, query,
		studentID, domain.AttemptCompleted, domain.AttemptAbandoned)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest finished attempt for student %s: %w", studentID, err)
	}
	return toDomainAttempt(&row), nil
}

// GetAllByStudent returns every attempt of a student, newest first.
func (a *AttemptDatabaseAdapter) GetAllByStudent(ctx context.Context, studentID string) ([]*domain.TestAttempt, error) {
	query := fmt.Sprintf(`SELECT %s FROM test_attempts
		WHERE student_id = :1 ORDER BY started_at DESC`, attemptColumns)

	var rows []models.TestAttempt
	if err := GetExecutor(ctx, a.db).SelectContext(ctx, &rows, query, studentID); err != nil {
		return nil, fmt.Errorf("failed to get attempts for student %s: %w", studentID, err)
	}

	attempts := make([]*domain.TestAttempt, 0, len(rows))
	for i := range rows {
		attempts = append(attempts, toDomainAttempt(&rows[i]))
	}
	return attempts, nil
}

// UpdateSectionPointer moves the attempt's current-section cursor.
func (a *AttemptDatabaseAdapter) UpdateSectionPointer(ctx context.Context, attemptID, sectionID string, questionIndex, remainingSeconds int) error {
	query := `UPDATE test_attempts SET
		current_section_id = :1,
		current_question_index = :2,
		remaining_time_seconds = :3,
		updated_at = :4
	WHERE id = :5`

	_, err := GetExecutor(ctx, a.db).ExecContext(ctx, query,
		util.StringToNullString(sectionID), questionIndex, remainingSeconds, time.Now(), attemptID)
	if err != nil {
		return fmt.Errorf("failed to update section pointer for attempt %s: %w", attemptID, err)
	}
	return nil
}

// UpdateRemainingTime persists the remaining-time snapshot used for resume.
func (a *AttemptDatabaseAdapter) UpdateRemainingTime(ctx context.Context, attemptID string, remainingSeconds int) error {
	query := `UPDATE test_attempts SET remaining_time_seconds = :1, updated_at = :2 WHERE id = :3`

	_, err := GetExecutor(ctx, a.db).ExecContext(ctx, query, remainingSeconds, time.Now(), attemptID)
	if err != nil {
		return fmt.Errorf("failed to update remaining time for attempt %s: %w", attemptID, err)
	}
	return nil
}

// MarkCompleted flips the attempt to COMPLETED. Only IN_PROGRESS rows
// transition; a repeat call is a no-op at the SQL level.
func (a *AttemptDatabaseAdapter) MarkCompleted(ctx context.Context, attemptID string) error {
	now := time.Now()
	query := `UPDATE test_attempts SET status = :1, completed_at = :2, updated_at = :3
		WHERE id = :4 AND status = :5`

	_, err := GetExecutor(ctx, a.db).ExecContext(ctx, query,
		domain.AttemptCompleted, now, now, attemptID, domain.AttemptInProgress)
	if err != nil {
		return fmt.Errorf("failed to mark attempt %s completed: %w", attemptID, err)
	}
	return nil
}

// MarkAbandoned flips the attempt to the ABANDONED terminal state.
func (a *AttemptDatabaseAdapter) MarkAbandoned(ctx context.Context, attemptID string) error {
	query := `UPDATE test_attempts SET status = :1, updated_at = :2 WHERE id = :3`

	_, err := GetExecutor(ctx, a.db).ExecContext(ctx, query, domain.AttemptAbandoned, time.Now(), attemptID)
	if err != nil {
		return fmt.Errorf("failed to mark attempt %s abandoned: %w", attemptID, err)
	}
	return nil
}

// Delete removes an attempt row. Dependent rows are removed by their own
// repositories inside the same transaction.
func (a *AttemptDatabaseAdapter) Delete(ctx context.Context, attemptID string) error {
	_, err := GetExecutor(ctx, a.db).ExecContext(ctx, `DELETE FROM test_attempts WHERE id = :1`, attemptID)
	if err != nil {
		return fmt.Errorf("failed to delete attempt %s: %w", attemptID, err)
	}
	return nil
}
