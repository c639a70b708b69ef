package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"careerpath/internal/domain"
	"careerpath/internal/repository/models"
	"careerpath/internal/util"
)

const scoreColumns = `
	id "id",
	attempt_id "attempt_id",
	dimension "dimension",
	score_value "score_value",
	percentile "percentile",
	created_at "created_at"`

// ScoreDatabaseAdapter implements domain.ScoreRepository.
type ScoreDatabaseAdapter struct {
	db *sqlx.DB
}

// NewScoreDatabaseAdapter creates a new score repository.
func NewScoreDatabaseAdapter(db *sqlx.DB) domain.ScoreRepository {
	return &ScoreDatabaseAdapter{db: db}
}

func toDomainScore(m *models.Score) *domain.Score {
	if m == nil {
		return nil
	}
	var percentile *float64
	if m.Percentile.Valid {
		v := m.Percentile.Float64
		percentile = &v
	}
	return &domain.Score{
		ID:         m.ID,
		AttemptID:  m.AttemptID,
		Dimension:  m.Dimension,
		ScoreValue: m.ScoreValue,
		Percentile: percentile,
		CreatedAt:  m.CreatedAt,
	}
}

// GetByAttempt returns all score rows for an attempt, overall first then
// dimensions in name order.
func (a *ScoreDatabaseAdapter) GetByAttempt(ctx context.Context, attemptID string) ([]*domain.Score, error) {
	query := fmt.Sprintf(`SELECT %s FROM scores WHERE attempt_id = :1 ORDER BY dimension ASC`, scoreColumns)

	var rows []models.Score
	if err := GetExecutor(ctx, a.db).SelectContext(ctx, &rows, query, attemptID); err != nil {
		return nil, fmt.Errorf("failed to get scores for attempt %s: %w", attemptID, err)
	}

	scores := make([]*domain.Score, 0, len(rows))
	for i := range rows {
		scores = append(scores, toDomainScore(&rows[i]))
	}
	return scores, nil
}

// ReplaceForAttempt deletes every prior score row for the attempt and
// inserts the new set. Run inside a transaction so scores are never a mix
// of stale and fresh dimensions.
func (a *ScoreDatabaseAdapter) ReplaceForAttempt(ctx context.Context, attemptID string, scores []*domain.Score) error {
	executor := GetExecutor(ctx, a.db)

	if _, err := executor.ExecContext(ctx, `DELETE FROM scores WHERE attempt_id = :1`, attemptID); err != nil {
		return fmt.Errorf("failed to delete prior scores for attempt %s: %w", attemptID, err)
	}

	insertQuery := `INSERT INTO scores (id, attempt_id, dimension, score_value, percentile, created_at)
		VALUES (:1, :2, :3, :4, :5, :6)`

	now := time.Now()
	for _, score := range scores {
		if score.ID == "" {
			score.ID = util.NewULID()
		}
		score.AttemptID = attemptID
		score.CreatedAt = now

		var percentile sql.NullFloat64
		if score.Percentile != nil {
			percentile = sql.NullFloat64{Float64: *score.Percentile, Valid: true}
		}

		_, err := executor.ExecContext(ctx, insertQuery,
			score.ID, score.AttemptID, score.Dimension, score.ScoreValue, percentile, score.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert score %s for attempt %s: %w", score.Dimension, attemptID, err)
		}
	}
	return nil
}

// DeleteByAttempt removes all score rows for an attempt.
func (a *ScoreDatabaseAdapter) DeleteByAttempt(ctx context.Context, attemptID string) error {
	_, err := GetExecutor(ctx, a.db).ExecContext(ctx, `DELETE FROM scores WHERE attempt_id = :1`, attemptID)
	if err != nil {
		return fmt.Errorf("failed to delete scores for attempt %s: %w", attemptID, err)
	}
	return nil
}
