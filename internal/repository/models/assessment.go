package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"careerpath/internal/domain"
)

// OptionList stores a question's options as a JSON array in a CLOB column.
// This is the single (de)serialization point for option content; nothing
// else parses option strings.
type OptionList []domain.Option

// Value implements driver.Valuer.
func (o OptionList) Value() (driver.Value, error) {
	if o == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(o)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements sql.Scanner.
func (o *OptionList) Scan(value interface{}) error {
	if value == nil {
		*o = OptionList{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("OptionList Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*o = OptionList{}
		return nil
	}
	return json.Unmarshal(bytesToParse, o)
}

// Section row in SECTIONS.
type Section struct {
	ID                   string    `db:"id"`
	OrderIndex           int       `db:"order_index"`
	Name                 string    `db:"name"`
	IsActive             int       `db:"is_active"`
	MinQuestionsRequired int       `db:"min_questions_required"`
	CreatedAt            time.Time `db:"created_at"`
	UpdatedAt            time.Time `db:"updated_at"`
}

// Question row in QUESTIONS.
type Question struct {
	ID            string         `db:"id"`
	QuestionText  string         `db:"question_text"`
	QuestionType  string         `db:"question_type"`
	Options       OptionList     `db:"options"`
	CorrectAnswer sql.NullString `db:"correct_answer"`
	SectionID     string         `db:"section_id"`
	Category      sql.NullString `db:"category"`
	Status        string         `db:"status"`
	IsActive      int            `db:"is_active"`
	OrderIndex    int            `db:"order_index"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

// TestAttempt row in TEST_ATTEMPTS.
type TestAttempt struct {
	ID                   string         `db:"id"`
	StudentID            string         `db:"student_id"`
	Status               string         `db:"status"`
	StartedAt            time.Time      `db:"started_at"`
	CompletedAt          sql.NullTime   `db:"completed_at"`
	CurrentSectionID     sql.NullString `db:"current_section_id"`
	CurrentQuestionIndex int            `db:"current_question_index"`
	RemainingTimeSeconds int            `db:"remaining_time_seconds"`
	CreatedAt            time.Time      `db:"created_at"`
	UpdatedAt            time.Time      `db:"updated_at"`
}

// SectionProgress row in SECTION_PROGRESS.
type SectionProgress struct {
	ID               string       `db:"id"`
	AttemptID        string       `db:"attempt_id"`
	SectionID        string       `db:"section_id"`
	Status           string       `db:"status"`
	SectionStartTime sql.NullTime `db:"section_start_time"`
	TotalTimeSpent   int          `db:"total_time_spent"`
	PausedAt         sql.NullTime `db:"paused_at"`
	CreatedAt        time.Time    `db:"created_at"`
	UpdatedAt        time.Time    `db:"updated_at"`
}

// AttemptQuestion row in ATTEMPT_QUESTIONS, unique on (attempt_id, question_id).
type AttemptQuestion struct {
	AttemptID  string    `db:"attempt_id"`
	QuestionID string    `db:"question_id"`
	CreatedAt  time.Time `db:"created_at"`
}

// Answer row in ANSWERS, unique on (attempt_id, question_id).
type Answer struct {
	ID         string    `db:"id"`
	AttemptID  string    `db:"attempt_id"`
	QuestionID string    `db:"question_id"`
	AnswerText string    `db:"answer_text"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// Score row in SCORES.
type Score struct {
	ID         string          `db:"id"`
	AttemptID  string          `db:"attempt_id"`
	Dimension  string          `db:"dimension"`
	ScoreValue float64         `db:"score_value"`
	Percentile sql.NullFloat64 `db:"percentile"`
	CreatedAt  time.Time       `db:"created_at"`
}

// InterpretedResult row in INTERPRETED_RESULTS.
type InterpretedResult struct {
	ID              string    `db:"id"`
	AttemptID       string    `db:"attempt_id"`
	Narrative       string    `db:"narrative"`
	ReadinessStatus string    `db:"readiness_status"`
	RiskLevel       string    `db:"risk_level"`
	OverallScore    float64   `db:"overall_score"`
	CreatedAt       time.Time `db:"created_at"`
}

// User row in USERS.
type User struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	UserRole  string    `db:"user_role"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
