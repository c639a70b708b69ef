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

const interpretationColumns = `
	id "id",
	attempt_id "attempt_id",
	narrative "narrative",
	readiness_status "readiness_status",
	risk_level "risk_level",
	overall_score "overall_score",
	created_at "created_at"`

// InterpretationDatabaseAdapter implements domain.InterpretationRepository.
type InterpretationDatabaseAdapter struct {
	db *sqlx.DB
}

// NewInterpretationDatabaseAdapter creates a new interpretation repository.
func NewInterpretationDatabaseAdapter(db *sqlx.DB) domain.InterpretationRepository {
	return &InterpretationDatabaseAdapter{db: db}
}

func toDomainInterpretation(m *models.InterpretedResult) *domain.InterpretedResult {
	if m == nil {
		return nil
	}
	return &domain.InterpretedResult{
		ID:              m.ID,
		AttemptID:       m.AttemptID,
		Narrative:       m.Narrative,
		ReadinessStatus: m.ReadinessStatus,
		RiskLevel:       m.RiskLevel,
		OverallScore:    m.OverallScore,
		CreatedAt:       m.CreatedAt,
	}
}

// GetByAttempt returns the one result for an attempt, or nil when absent.
func (a *InterpretationDatabaseAdapter) GetByAttempt(ctx context.Context, attemptID string) (*domain.InterpretedResult, error) {
	query := fmt.Sprintf(`SELECT %s FROM interpreted_results WHERE attempt_id = :1`, interpretationColumns)

	var row models.InterpretedResult
	err := GetExecutor(ctx, a.db).GetContext(ctx, &row, query, attemptID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get interpretation for attempt %s: %w", attemptID, err)
	}
	return toDomainInterpretation(&row), nil
}

// Create inserts the result. The unique constraint on attempt_id makes a
// concurrent duplicate write surface as ErrDuplicateRow.
func (a *InterpretationDatabaseAdapter) Create(ctx context.Context, result *domain.InterpretedResult) error {
	if result.ID == "" {
		result.ID = util.NewULID()
	}
	result.CreatedAt = time.Now()

	query := `INSERT INTO interpreted_results (
		id, attempt_id, narrative, readiness_status, risk_level, overall_score, created_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7
	)`

	_, err := GetExecutor(ctx, a.db).ExecContext(ctx, query,
		result.ID, result.AttemptID, result.Narrative,
		result.ReadinessStatus, result.RiskLevel, result.OverallScore, result.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateRow
		}
		return fmt.Errorf("failed to create interpretation for attempt %s: %w", result.AttemptID, err)
	}
	return nil
}

// DeleteByAttempt removes the result row for an attempt.
func (a *InterpretationDatabaseAdapter) DeleteByAttempt(ctx context.Context, attemptID string) error {
	_, err := GetExecutor(ctx, a.db).ExecContext(ctx,
		`DELETE FROM interpreted_results WHERE attempt_id = :1`, attemptID)
	if err != nil {
		return fmt.Errorf("failed to delete interpretation for attempt %s: %w", attemptID, err)
	}
	return nil
}
