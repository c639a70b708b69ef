package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"

	"careerpath/internal/domain"
)

func setupTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func TestAnswerAdapter_Insert_GeneratesIDAndStores(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewAnswerDatabaseAdapter(db)

	answer := &domain.Answer{
		AttemptID:  "attempt-1",
		QuestionID: "question-1",
		AnswerText: "C",
	}

	mock.ExpectExec(`INSERT INTO answers`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Insert(context.Background(), answer)
	assert.NoError(t, err)
	assert.NotEmpty(t, answer.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnswerAdapter_Insert_DuplicateMapsToSentinel(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewAnswerDatabaseAdapter(db)

	mock.ExpectExec(`INSERT INTO answers`).
		WillReturnError(errors.New("ORA-00001: unique constraint (CAREERPATH.UQ_ANSWERS_ATTEMPT_QUESTION) violated"))

	err := repo.Insert(context.Background(), &domain.Answer{
		AttemptID:  "attempt-1",
		QuestionID: "question-1",
		AnswerText: "C",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateRow)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnswerAdapter_Upsert_UpdatesExistingRow(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewAnswerDatabaseAdapter(db)

	mock.ExpectExec(`UPDATE answers SET answer_text`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Upsert(context.Background(), &domain.Answer{
		AttemptID:  "attempt-1",
		QuestionID: "question-1",
		AnswerText: "D",
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnswerAdapter_Upsert_InsertsWhenAbsent(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewAnswerDatabaseAdapter(db)

	mock.ExpectExec(`UPDATE answers SET answer_text`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO answers`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Upsert(context.Background(), &domain.Answer{
		AttemptID:  "attempt-1",
		QuestionID: "question-1",
		AnswerText: "B",
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnswerAdapter_Upsert_RetriesAfterRacingInsert(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewAnswerDatabaseAdapter(db)

	mock.ExpectExec(`UPDATE answers SET answer_text`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO answers`).
		WillReturnError(errors.New("ORA-00001: unique constraint violated"))
	mock.ExpectExec(`UPDATE answers SET answer_text`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Upsert(context.Background(), &domain.Answer{
		AttemptID:  "attempt-1",
		QuestionID: "question-1",
		AnswerText: "A",
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnswerAdapter_CountByAttempt(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewAnswerDatabaseAdapter(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM answers WHERE attempt_id = :1`)).
		WithArgs("attempt-1").
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(35))

	count, err := repo.CountByAttempt(context.Background(), "attempt-1")
	assert.NoError(t, err)
	assert.Equal(t, 35, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnswerAdapter_GetByAttempt(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewAnswerDatabaseAdapter(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "attempt_id", "question_id", "answer_text", "created_at", "updated_at"}).
		AddRow("a1", "attempt-1", "q1", "C", now, now).
		AddRow("a2", "attempt-1", "q2", "E", now, now)

	mock.ExpectQuery(`SELECT (.+) FROM answers WHERE attempt_id = :1 ORDER BY question_id ASC`).
		WithArgs("attempt-1").
		WillReturnRows(rows)

	answers, err := repo.GetByAttempt(context.Background(), "attempt-1")
	assert.NoError(t, err)
	assert.Len(t, answers, 2)
	assert.Equal(t, "q1", answers[0].QuestionID)
	assert.Equal(t, "E", answers[1].AnswerText)
	assert.NoError(t, mock.ExpectationsWereMet())
}
