package domain

import "time"

// Attempt lifecycle statuses.
const (
	AttemptInProgress = "IN_PROGRESS"
	AttemptCompleted  = "COMPLETED"
	AttemptAbandoned  = "ABANDONED"
)

// Section progress statuses.
const (
	ProgressNotStarted = "NOT_STARTED"
	ProgressInProgress = "IN_PROGRESS"
	ProgressCompleted  = "COMPLETED"
)

// Question types and approval statuses.
const (
	QuestionMultipleChoice = "MULTIPLE_CHOICE"
	QuestionLikertScale    = "LIKERT_SCALE"

	QuestionPending  = "pending"
	QuestionApproved = "approved"
	QuestionRejected = "rejected"
	QuestionInactive = "inactive"
)

// Fixed test parameters. Every section carries the same time limit
// regardless of question count.
const (
	SectionCount            = 5
	QuestionsPerSection     = 7
	SectionTimeLimitSeconds = 420
)

// User roles recognized by the role-gated endpoints.
const (
	RoleStudent    = "STUDENT"
	RoleCounsellor = "COUNSELLOR"
	RoleAdmin      = "ADMIN"
)

// Section is one of the five fixed, ordered test blocks. OrderIndex (1..5)
// is the sole gating key and never changes after seeding.
type Section struct {
	ID                   string
	OrderIndex           int
	Name                 string
	IsActive             bool
	MinQuestionsRequired int
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Option is one selectable choice of a question. Key is the option letter
// ("A".."E"); Text is the display label.
type Option struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// Question is a bank entry. Only status=approved questions with IsActive set
// are eligible for assignment. CorrectAnswer is empty for Likert items.
type Question struct {
	ID            string
	Text          string
	Type          string
	Options       []Option
	CorrectAnswer string
	SectionID     string
	Category      string
	Status        string
	IsActive      bool
	OrderIndex    int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Eligible reports whether the question may be assigned to an attempt.
func (q *Question) Eligible() bool {
	return q.Status == QuestionApproved && q.IsActive
}

// HasOptionKey reports whether key is one of the question's option keys.
func (q *Question) HasOptionKey(key string) bool {
	for _, o := range q.Options {
		if o.Key == key {
			return true
		}
	}
	return false
}

// Validate checks invariants before a question enters the bank.
func (q *Question) Validate() error {
	if q.Text == "" {
		return NewValidationError("question text is required")
	}
	if q.Type != QuestionMultipleChoice && q.Type != QuestionLikertScale {
		return NewValidationError("question type must be MULTIPLE_CHOICE or LIKERT_SCALE")
	}
	if len(q.Options) == 0 {
		return NewValidationError("at least one option is required")
	}
	if q.SectionID == "" {
		return NewValidationError("section_id is required")
	}
	if q.Type == QuestionMultipleChoice && q.CorrectAnswer != "" && !q.HasOptionKey(q.CorrectAnswer) {
		return NewValidationError("correct_answer must match an option key")
	}
	return nil
}

// TestAttempt is one student's single run through the five-section test.
// A student has at most one IN_PROGRESS attempt and at most one COMPLETED
// attempt ever; both rules are enforced at the start operation.
type TestAttempt struct {
	ID                   string
	StudentID            string
	Status               string
	StartedAt            time.Time
	CompletedAt          *time.Time
	CurrentSectionID     string
	CurrentQuestionIndex int
	RemainingTimeSeconds int
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// NewTestAttempt creates a fresh IN_PROGRESS attempt with a full timer.
func NewTestAttempt(studentID string) *TestAttempt {
	now := time.Now()
	return &TestAttempt{
		StudentID:            studentID,
		Status:               AttemptInProgress,
		StartedAt:            now,
		RemainingTimeSeconds: SectionTimeLimitSeconds,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

// SectionProgress is the per-(attempt, section) timer state machine.
// While IN_PROGRESS exactly one of SectionStartTime and PausedAt is set;
// once COMPLETED both are nil.
type SectionProgress struct {
	ID               string
	AttemptID        string
	SectionID        string
	Status           string
	SectionStartTime *time.Time
	TotalTimeSpent   int
	PausedAt         *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Running reports whether the section timer is actively counting down.
func (p *SectionProgress) Running() bool {
	return p.Status == ProgressInProgress && p.SectionStartTime != nil && p.PausedAt == nil
}

// Answer is one submitted option for one assigned question, unique per
// (attempt, question). Overwrites happen only through the save-answer path.
type Answer struct {
	ID         string
	AttemptID  string
	QuestionID string
	AnswerText string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Score is one computed dimension value for an attempt. Dimension is either
// "overall" or "section_<order_index>" (or a free-form question category).
type Score struct {
	ID         string
	AttemptID  string
	Dimension  string
	ScoreValue float64
	Percentile *float64
	CreatedAt  time.Time
}

// OverallDimension is the dimension key for the attempt-wide score.
const OverallDimension = "overall"

// InterpretedResult is the cached narrative output for a completed attempt,
// created once and regenerated only if absent.
type InterpretedResult struct {
	ID              string
	AttemptID       string
	Narrative       string
	ReadinessStatus string
	RiskLevel       string
	OverallScore    float64
	CreatedAt       time.Time
}

// User is the minimal identity the core needs: ownership checks and role
// gating. Registration and credential handling live outside this service.
type User struct {
	ID        string
	Name      string
	Email     string
	Role      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
