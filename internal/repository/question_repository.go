package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"careerpath/internal/domain"
	"careerpath/internal/repository/models"
	"careerpath/internal/util"
)

const questionColumns = `
	id "id",
	question_text "question_text",
	question_type "question_type",
	options "options",
	correct_answer "correct_answer",
	section_id "section_id",
	category "category",
	status "status",
	is_active "is_active",
	order_index "order_index",
	created_at "created_at",
	updated_at "updated_at"`

// QuestionDatabaseAdapter implements domain.QuestionRepository using sqlx.
type QuestionDatabaseAdapter struct {
	db *sqlx.DB
}

// NewQuestionDatabaseAdapter creates a new question repository.
func NewQuestionDatabaseAdapter(db *sqlx.DB) domain.QuestionRepository {
	return &QuestionDatabaseAdapter{db: db}
}

func toDomainQuestion(m *models.Question) *domain.Question {
	if m == nil {
		return nil
	}
	return &domain.Question{
		ID:            m.ID,
		Text:          m.QuestionText,
		Type:          m.QuestionType,
		Options:       []domain.Option(m.Options),
		CorrectAnswer: m.CorrectAnswer.String,
		SectionID:     m.SectionID,
		Category:      m.Category.String,
		Status:        m.Status,
		IsActive:      util.IntToBool(m.IsActive),
		OrderIndex:    m.OrderIndex,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// GetByID returns one question, or nil when absent.
func (a *QuestionDatabaseAdapter) GetByID(ctx context.Context, id string) (*domain.Question, error) {
	query := fmt.Sprintf(`SELECT %s FROM questions WHERE id = :1`, questionColumns)

	var row models.Question
	err := GetExecutor(ctx, a.db).GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question by ID %s: %w", id, err)
	}
	return toDomainQuestion(&row), nil
}

// GetByIDs returns the questions for the given ids in ascending id order.
// Assignment re-reads rely on this ordering being stable.
func (a *QuestionDatabaseAdapter) GetByIDs(ctx context.Context, ids []string) ([]*domain.Question, error) {
	if len(ids) == 0 {
		return []*domain.Question{}, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf(":%d", i+1)
		args[i] = id
	}

	query := fmt.Sprintf(`SELECT %s FROM questions WHERE id IN (%s) ORDER BY id ASC`,
		questionColumns, strings.Join(placeholders, ", "))

	var rows []models.Question
	if err := GetExecutor(ctx, a.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get questions by IDs: %w", err)
	}

	questions := make([]*domain.Question, 0, len(rows))
	for i := range rows {
		questions = append(questions, toDomainQuestion(&rows[i]))
	}
	return questions, nil
}

// GetEligibleIDsBySection returns ids of approved, active questions.
func (a *QuestionDatabaseAdapter) GetEligibleIDsBySection(ctx context.Context, sectionID string) ([]string, error) {
	query := `SELECT id "id" FROM questions
		WHERE section_id = :1 AND status = :2 AND is_active = 1
		ORDER BY id ASC`

	var ids []string
	err := GetExecutor(ctx, a.db).SelectContext(ctx, &ids, query, sectionID, domain.QuestionApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to get eligible question IDs for section %s: %w", sectionID, err)
	}
	return ids, nil
}

// CountEligibleBySection counts approved, active questions in a section.
func (a *QuestionDatabaseAdapter) CountEligibleBySection(ctx context.Context, sectionID string) (int, error) {
	query := `SELECT COUNT(*) FROM questions
		WHERE section_id = :1 AND status = :2 AND is_active = 1`

	var count int
	err := GetExecutor(ctx, a.db).GetContext(ctx, &count, query, sectionID, domain.QuestionApproved)
	if err != nil {
		return 0, fmt.Errorf("failed to count eligible questions for section %s: %w", sectionID, err)
	}
	return count, nil
}

// CreateQuestion inserts a new bank entry with status pending unless set.
func (a *QuestionDatabaseAdapter) CreateQuestion(ctx context.Context, question *domain.Question) error {
	if question.ID == "" {
		question.ID = util.NewULID()
	}
	if question.Status == "" {
		question.Status = domain.QuestionPending
	}
	now := time.Now()
	question.CreatedAt = now
	question.UpdatedAt = now

	optionsValue, err := models.OptionList(question.Options).Value()
	if err != nil {
		return fmt.Errorf("failed to serialize question options: %w", err)
	}

	query := `INSERT INTO questions (
		id, question_text, question_type, options, correct_answer,
		section_id, category, status, is_active, order_index, created_at, updated_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7, :8, :9, :10, :11, :12
	)`

	_, err = GetExecutor(ctx, a.db).ExecContext(ctx, query,
		question.ID,
		question.Text,
		question.Type,
		optionsValue,
		util.StringToNullString(question.CorrectAnswer),
		question.SectionID,
		util.StringToNullString(question.Category),
		question.Status,
		util.BoolToInt(question.IsActive),
		question.OrderIndex,
		question.CreatedAt,
		question.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}
	return nil
}

// UpdateStatus sets a question's approval status. Runs inside an ambient
// transaction when one is open, so bulk approvals are all-or-nothing.
func (a *QuestionDatabaseAdapter) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE questions SET status = :1, updated_at = :2 WHERE id = :3`

	result, err := GetExecutor(ctx, a.db).ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update question status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.NewError(domain.CodeQuestionNotFound, fmt.Sprintf("Question not found: %s", id), nil)
	}
	return nil
}
