package dto

import "time"

// Section availability values surfaced by the section list endpoint.
const (
	SectionAvailable  = "available"
	SectionLocked     = "locked"
	SectionCompleted  = "completed"
	SectionInProgress = "IN_PROGRESS"
)

// StartTestResponse is returned by POST /test/start.
type StartTestResponse struct {
	TestAttemptID  string    `json:"test_attempt_id"`
	Status         string    `json:"status"`
	StartedAt      time.Time `json:"started_at"`
	TotalQuestions int       `json:"total_questions"`
}

// SectionStatusItem is one row of the section list.
type SectionStatusItem struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Status        string `json:"status"`
	QuestionCount int    `json:"question_count"`
	TimeLimit     int    `json:"time_limit"`
	OrderIndex    int    `json:"order_index"`
}

// SectionListResponse is returned by GET /test/sections.
type SectionListResponse struct {
	Sections       []SectionStatusItem `json:"sections"`
	CurrentSection string              `json:"current_section,omitempty"`
	CanAttemptTest bool                `json:"can_attempt_test"`
}

// OptionItem is one selectable choice of a served question.
type OptionItem struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// QuestionItem is one served question. Correct answers are never exposed.
type QuestionItem struct {
	QuestionID   string       `json:"question_id"`
	QuestionText string       `json:"question_text"`
	Options      []OptionItem `json:"options"`
}

// SectionQuestionsResponse is returned by GET /test/sections/:id/questions.
type SectionQuestionsResponse struct {
	SectionID string         `json:"section_id"`
	Questions []QuestionItem `json:"questions"`
	TimeLimit int            `json:"time_limit"`
}

// TimerResponse is returned by GET /test/sections/:id/timer.
type TimerResponse struct {
	Status         string    `json:"status"`
	TotalTimeSpent int       `json:"total_time_spent"`
	IsPaused       bool      `json:"is_paused"`
	CurrentTime    time.Time `json:"current_time"`
}

// AnswerSubmission is one answer inside a section submit body.
type AnswerSubmission struct {
	QuestionID     string `json:"question_id"`
	SelectedOption string `json:"selected_option"`
}

// SubmitSectionRequest is the body of POST /test/sections/:id/submit.
type SubmitSectionRequest struct {
	AttemptID string             `json:"attempt_id"`
	SectionID string             `json:"section_id"`
	Answers   []AnswerSubmission `json:"answers"`
}

// SubmitSectionResponse is returned by section submit.
type SubmitSectionResponse struct {
	Status           string `json:"status"`
	CompletedSection string `json:"completed_section"`
	CurrentSection   string `json:"current_section,omitempty"`
	TestCompleted    bool   `json:"test_completed"`
}

// SaveAnswerRequest is the body of POST /test/save-answer.
type SaveAnswerRequest struct {
	AttemptID      string `json:"attempt_id"`
	QuestionID     string `json:"question_id"`
	SelectedOption string `json:"selected_option"`
}

// CompleteTestResponse is returned by POST /test/:id/complete.
type CompleteTestResponse struct {
	Status      string     `json:"status"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// AttemptStateResponse is the UI-resume snapshot of an attempt.
type AttemptStateResponse struct {
	TestAttemptID        string     `json:"test_attempt_id"`
	Status               string     `json:"status"`
	CurrentSectionID     string     `json:"current_section_id,omitempty"`
	CurrentQuestionIndex int        `json:"current_question_index"`
	RemainingTimeSeconds int        `json:"remaining_time_seconds"`
	StartedAt            time.Time  `json:"started_at"`
	CompletedAt          *time.Time `json:"completed_at,omitempty"`
}

// SectionProgressItem is one row of the progress snapshot.
type SectionProgressItem struct {
	SectionID      string `json:"section_id"`
	SectionName    string `json:"section_name"`
	OrderIndex     int    `json:"order_index"`
	Status         string `json:"status"`
	TotalTimeSpent int    `json:"total_time_spent"`
	AnsweredCount  int    `json:"answered_count"`
	AssignedCount  int    `json:"assigned_count"`
}

// AttemptProgressResponse is returned by GET /test/:id/progress.
type AttemptProgressResponse struct {
	TestAttemptID     string                `json:"test_attempt_id"`
	Status            string                `json:"status"`
	Sections          []SectionProgressItem `json:"sections"`
	AnsweredQuestions int                   `json:"answered_questions"`
	TotalQuestions    int                   `json:"total_questions"`
}

// AttemptStatusResponse is returned by GET /test/:id/status.
type AttemptStatusResponse struct {
	TestAttemptID string     `json:"test_attempt_id"`
	Status        string     `json:"status"`
	StartedAt     time.Time  `json:"started_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

// InterpretationResponse is returned by GET /test/interpretation/:id.
// Status is "READY" when the narrative exists and "PROCESSING" while the
// generator has not produced one yet.
type InterpretationResponse struct {
	TestAttemptID   string             `json:"test_attempt_id"`
	Status          string             `json:"status"`
	OverallScore    float64            `json:"overall_score,omitempty"`
	DimensionScores map[string]float64 `json:"dimension_scores,omitempty"`
	ReadinessStatus string             `json:"readiness_status,omitempty"`
	RiskLevel       string             `json:"risk_level,omitempty"`
	Narrative       string             `json:"narrative,omitempty"`
}

// ErrorResponse is the legacy single-field error body used by handlers
// that bypass the central error middleware.
type ErrorResponse struct {
	Error string `json:"error"`
}
