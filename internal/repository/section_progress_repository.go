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

const progressColumns = `
	id "id",
	attempt_id "attempt_id",
	section_id "section_id",
	status "status",
	section_start_time "section_start_time",
	total_time_spent "total_time_spent",
	paused_at "paused_at",
	created_at "created_at",
	updated_at "updated_at"`

// SectionProgressDatabaseAdapter implements domain.SectionProgressRepository.
type SectionProgressDatabaseAdapter struct {
	db *sqlx.DB
}

// NewSectionProgressDatabaseAdapter creates a new section progress repository.
func NewSectionProgressDatabaseAdapter(db *sqlx.DB) domain.SectionProgressRepository {
	return &SectionProgressDatabaseAdapter{db: db}
}

func toDomainProgress(m *models.SectionProgress) *domain.SectionProgress {
	if m == nil {
		return nil
	}
	return &domain.SectionProgress{
		ID:               m.ID,
		AttemptID:        m.AttemptID,
		SectionID:        m.SectionID,
		Status:           m.Status,
		SectionStartTime: util.NullTimeToPtr(m.SectionStartTime),
		TotalTimeSpent:   m.TotalTimeSpent,
		PausedAt:         util.NullTimeToPtr(m.PausedAt),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// Get returns the progress row for (attempt, section), or nil when absent.
func (a *SectionProgressDatabaseAdapter) Get(ctx context.Context, attemptID, sectionID string) (*domain.SectionProgress, error) {
	query := fmt.Sprintf(`SELECT %s FROM section_progress
		WHERE attempt_id = :1 AND section_id = :2`, progressColumns)

	var row models.SectionProgress
	err := GetExecutor(ctx, a.db).GetContext(ctx, &row, query, attemptID, sectionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get section progress (%s, %s): %w", attemptID, sectionID, err)
	}
	return toDomainProgress(&row), nil
}

// GetByAttempt returns all progress rows for an attempt.
func (a *SectionProgressDatabaseAdapter) GetByAttempt(ctx context.Context, attemptID string) ([]*domain.SectionProgress, error) {
	query := fmt.Sprintf(`SELECT %s FROM section_progress WHERE attempt_id = :1`, progressColumns)

	var rows []models.SectionProgress
	if err := GetExecutor(ctx, a.db).SelectContext(ctx, &rows, query, attemptID); err != nil {
		return nil, fmt.Errorf("failed to get section progress for attempt %s: %w", attemptID, err)
	}

	progress := make([]*domain.SectionProgress, 0, len(rows))
	for i := range rows {
		progress = append(progress, toDomainProgress(&rows[i]))
	}
	return progress, nil
}

// Create inserts a new progress row for a first section start.
func (a *SectionProgressDatabaseAdapter) Create(ctx context.Context, progress *domain.SectionProgress) error {
	if progress.ID == "" {
		progress.ID = util.NewULID()
	}
	now := time.Now()
	progress.CreatedAt = now
	progress.UpdatedAt = now

	query := `INSERT INTO section_progress (
		id, attempt_id, section_id, status, section_start_time,
		total_time_spent, paused_at, created_at, updated_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7, :8, :9
	)`

	_, err := GetExecutor(ctx, a.db).ExecContext(ctx, query,
		progress.ID,
		progress.AttemptID,
		progress.SectionID,
		progress.Status,
		util.TimePtrToNullTime(progress.SectionStartTime),
		progress.TotalTimeSpent,
		util.TimePtrToNullTime(progress.PausedAt),
		progress.CreatedAt,
		progress.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateRow
		}
		return fmt.Errorf("failed to create section progress: %w", err)
	}
	return nil
}

// Update persists a timer state transition.
func (a *SectionProgressDatabaseAdapter) Update(ctx context.Context, progress *domain.SectionProgress) error {
	progress.UpdatedAt = time.Now()

	query := `UPDATE section_progress SET
		status = :1,
		section_start_time = :2,
		total_time_spent = :3,
		paused_at = :4,
		updated_at = :5
	WHERE id = :6`

	result, err := GetExecutor(ctx, a.db).ExecContext(ctx, query,
		progress.Status,
		util.TimePtrToNullTime(progress.SectionStartTime),
		progress.TotalTimeSpent,
		util.TimePtrToNullTime(progress.PausedAt),
		progress.UpdatedAt,
		progress.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update section progress %s: %w", progress.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("section progress %s not found", progress.ID)
	}
	return nil
}

// DeleteByAttempt removes all progress rows for an attempt.
func (a *SectionProgressDatabaseAdapter) DeleteByAttempt(ctx context.Context, attemptID string) error {
	_, err := GetExecutor(ctx, a.db).ExecContext(ctx,
		`DELETE FROM section_progress WHERE attempt_id = :1`, attemptID)
	if err != nil {
		return fmt.Errorf("failed to delete section progress for attempt %s: %w", attemptID, err)
	}
	return nil
}
