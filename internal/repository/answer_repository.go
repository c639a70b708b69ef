package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"careerpath/internal/domain"
	"careerpath/internal/repository/models"
	"careerpath/internal/util"
)

const answerColumns = `
	id "id",
	attempt_id "attempt_id",
	question_id "question_id",
	answer_text "answer_text",
	created_at "created_at",
	updated_at "updated_at"`

// AnswerDatabaseAdapter implements domain.AnswerRepository. The unique
// constraint on (attempt_id, question_id) guards against duplicate rows
// under racing writers.
type AnswerDatabaseAdapter struct {
	db *sqlx.DB
}

// NewAnswerDatabaseAdapter creates a new answer repository.
func NewAnswerDatabaseAdapter(db *sqlx.DB) domain.AnswerRepository {
	return &AnswerDatabaseAdapter{db: db}
}

func toDomainAnswer(m *models.Answer) *domain.Answer {
	if m == nil {
		return nil
	}
	return &domain.Answer{
		ID:         m.ID,
		AttemptID:  m.AttemptID,
		QuestionID: m.QuestionID,
		AnswerText: m.AnswerText,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// GetByAttempt returns all answers of an attempt.
func (a *AnswerDatabaseAdapter) GetByAttempt(ctx context.Context, attemptID string) ([]*domain.Answer, error) {
	query := fmt.Sprintf(`SELECT %s FROM answers WHERE attempt_id = :1 ORDER BY question_id ASC`, answerColumns)

	var rows []models.Answer
	if err := GetExecutor(ctx, a.db).SelectContext(ctx, &rows, query, attemptID); err != nil {
		return nil, fmt.Errorf("failed to get answers for attempt %s: %w", attemptID, err)
	}

	answers := make([]*domain.Answer, 0, len(rows))
	for i := range rows {
		answers = append(answers, toDomainAnswer(&rows[i]))
	}
	return answers, nil
}

// GetByAttemptAndQuestions returns stored answers for the given question ids.
func (a *AnswerDatabaseAdapter) GetByAttemptAndQuestions(ctx context.Context, attemptID string, questionIDs []string) ([]*domain.Answer, error) {
	if len(questionIDs) == 0 {
		return []*domain.Answer{}, nil
	}

	placeholders := make([]string, len(questionIDs))
	args := make([]interface{}, 0, len(questionIDs)+1)
	args = append(args, attemptID)
	for i, id := range questionIDs {
		placeholders[i] = fmt.Sprintf(":%d", i+2)
		args = append(args, id)
	}

	query := fmt.Sprintf(`SELECT %s FROM answers
		WHERE attempt_id = :1 AND question_id IN (%s)
		ORDER BY question_id ASC`, answerColumns, strings.Join(placeholders, ", "))

	var rows []models.Answer
	if err := GetExecutor(ctx, a.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get answers by questions for attempt %s: %w", attemptID, err)
	}

	answers := make([]*domain.Answer, 0, len(rows))
	for i := range rows {
		answers = append(answers, toDomainAnswer(&rows[i]))
	}
	return answers, nil
}

// CountByAttempt counts stored answers for an attempt.
func (a *AnswerDatabaseAdapter) CountByAttempt(ctx context.Context, attemptID string) (int, error) {
	var count int
	err := GetExecutor(ctx, a.db).GetContext(ctx, &count,
		`SELECT COUNT(*) FROM answers WHERE attempt_id = :1`, attemptID)
	if err != nil {
		return 0, fmt.Errorf("failed to count answers for attempt %s: %w", attemptID, err)
	}
	return count, nil
}

// Insert appends one answer row. A unique-constraint hit surfaces as
// domain.ErrDuplicateRow; submit treats that as already-stored.
func (a *AnswerDatabaseAdapter) Insert(ctx context.Context, answer *domain.Answer) error {
	if answer.ID == "" {
		answer.ID = util.NewULID()
	}
	now := time.Now()
	answer.CreatedAt = now
	answer.UpdatedAt = now

	query := `INSERT INTO answers (id, attempt_id, question_id, answer_text, created_at, updated_at)
		VALUES (:1, :2, :3, :4, :5, :6)`

	_, err := GetExecutor(ctx, a.db).ExecContext(ctx, query,
		answer.ID, answer.AttemptID, answer.QuestionID, answer.AnswerText,
		answer.CreatedAt, answer.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateRow
		}
		return fmt.Errorf("failed to insert answer: %w", err)
	}
	return nil
}

// Upsert overwrites an existing answer or inserts a new one. Only the
// save-individual-answer path uses this; section submit never overwrites.
func (a *AnswerDatabaseAdapter) Upsert(ctx context.Context, answer *domain.Answer) error {
	now := time.Now()
	executor := GetExecutor(ctx, a.db)

	updateQuery := `UPDATE answers SET answer_text = :1, updated_at = :2
		WHERE attempt_id = :3 AND question_id = :4`

	result, err := executor.ExecContext(ctx, updateQuery,
		answer.AnswerText, now, answer.AttemptID, answer.QuestionID)
	if err != nil {
		return fmt.Errorf("failed to update answer: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected > 0 {
		return nil
	}

	if err := a.Insert(ctx, answer); err != nil {
		// A concurrent writer inserted between our update and insert;
		// retry the overwrite once.
		if err == domain.ErrDuplicateRow {
			_, retryErr := executor.ExecContext(ctx, updateQuery,
				answer.AnswerText, time.Now(), answer.AttemptID, answer.QuestionID)
			if retryErr != nil {
				return fmt.Errorf("failed to update answer after duplicate insert: %w", retryErr)
			}
			return nil
		}
		return err
	}
	return nil
}

// DeleteByAttempt removes all answers of an attempt.
func (a *AnswerDatabaseAdapter) DeleteByAttempt(ctx context.Context, attemptID string) error {
	_, err := GetExecutor(ctx, a.db).ExecContext(ctx,
		`DELETE FROM answers WHERE attempt_id = :1`, attemptID)
	if err != nil {
		return fmt.Errorf("failed to delete answers for attempt %s: %w", attemptID, err)
	}
	return nil
}
