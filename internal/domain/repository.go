package domain

import "context"

// SectionRepository provides access to the fixed section catalog.
type SectionRepository interface {
	GetActiveSections(ctx context.Context) ([]*Section, error)
	GetByID(ctx context.Context, id string) (*Section, error)
	GetByOrderIndex(ctx context.Context, orderIndex int) (*Section, error)
	CountSections(ctx context.Context) (int, error)
	CreateSection(ctx context.Context, section *Section) error
}

// QuestionRepository provides access to the question bank.
type QuestionRepository interface {
	GetByID(ctx context.Context, id string) (*Question, error)
	// GetByIDs returns questions ordered by ascending id.
	GetByIDs(ctx context.Context, ids []string) ([]*Question, error)
	// GetEligibleIDsBySection returns ids of approved, active questions.
	GetEligibleIDsBySection(ctx context.Context, sectionID string) ([]string, error)
	CountEligibleBySection(ctx context.Context, sectionID string) (int, error)
	CreateQuestion(ctx context.Context, question *Question) error
	// UpdateStatus sets the approval status; honors an ambient transaction.
	UpdateStatus(ctx context.Context, id, status string) error
}

// AttemptRepository persists test attempts.
type AttemptRepository interface {
	Create(ctx context.Context, attempt *TestAttempt) error
	GetByID(ctx context.Context, id string) (*TestAttempt, error)
	GetInProgressByStudent(ctx context.Context, studentID string) (*TestAttempt, error)
	GetCompletedByStudent(ctx context.Context, studentID string) (*TestAttempt, error)
	// GetLatestFinishedByStudent returns the most recent COMPLETED or
	// ABANDONED attempt, or nil when the student has none. An admin-granted
	// retake abandons the completed attempt, so the abandoned row is what
	// carries the questions the student already saw.
	GetLatestFinishedByStudent(ctx context.Context, studentID string) (*TestAttempt, error)
	GetAllByStudent(ctx context.Context, studentID string) ([]*TestAttempt, error)
	// UpdateSectionPointer moves the attempt to a section and resets the
	// question index and remaining-time snapshot.
	UpdateSectionPointer(ctx context.Context, attemptID, sectionID string, questionIndex, remainingSeconds int) error
	UpdateRemainingTime(ctx context.Context, attemptID string, remainingSeconds int) error
	MarkCompleted(ctx context.Context, attemptID string) error
	MarkAbandoned(ctx context.Context, attemptID string) error
	Delete(ctx context.Context, attemptID string) error
}

// AssignmentRepository persists the fixed question set bound to one
// (attempt, section) pair. The unique constraint on (attempt_id, question_id)
// is the concurrency primitive for racing writers.
type AssignmentRepository interface {
	// GetQuestionIDs returns assigned question ids for the attempt and
	// section in ascending id order; empty when no assignment exists.
	GetQuestionIDs(ctx context.Context, attemptID, sectionID string) ([]string, error)
	// CreateAssignments inserts the pairs, tolerating duplicate rows so
	// concurrent retries converge on the same set.
	CreateAssignments(ctx context.Context, attemptID string, questionIDs []string) error
	CountByAttempt(ctx context.Context, attemptID string) (int, error)
	DeleteByAttempt(ctx context.Context, attemptID string) error
}

// SectionProgressRepository persists per-(attempt, section) timer state.
type SectionProgressRepository interface {
	Get(ctx context.Context, attemptID, sectionID string) (*SectionProgress, error)
	GetByAttempt(ctx context.Context, attemptID string) ([]*SectionProgress, error)
	Create(ctx context.Context, progress *SectionProgress) error
	Update(ctx context.Context, progress *SectionProgress) error
	DeleteByAttempt(ctx context.Context, attemptID string) error
}

// AnswerRepository is the append-only ledger of submitted options.
type AnswerRepository interface {
	GetByAttempt(ctx context.Context, attemptID string) ([]*Answer, error)
	GetByAttemptAndQuestions(ctx context.Context, attemptID string, questionIDs []string) ([]*Answer, error)
	CountByAttempt(ctx context.Context, attemptID string) (int, error)
	// Insert adds a new answer row; returns ErrDuplicateRow when the
	// (attempt_id, question_id) pair already exists.
	Insert(ctx context.Context, answer *Answer) error
	// Upsert inserts or overwrites; only the save-answer path may call it.
	Upsert(ctx context.Context, answer *Answer) error
	DeleteByAttempt(ctx context.Context, attemptID string) error
}

// ScoreRepository persists computed dimension scores. Scores are always
// replaced wholesale, never patched.
type ScoreRepository interface {
	GetByAttempt(ctx context.Context, attemptID string) ([]*Score, error)
	// ReplaceForAttempt deletes all prior rows for the attempt and inserts
	// the given set; honors an ambient transaction.
	ReplaceForAttempt(ctx context.Context, attemptID string, scores []*Score) error
	DeleteByAttempt(ctx context.Context, attemptID string) error
}

// InterpretationRepository persists the one narrative result per attempt.
type InterpretationRepository interface {
	GetByAttempt(ctx context.Context, attemptID string) (*InterpretedResult, error)
	Create(ctx context.Context, result *InterpretedResult) error
	DeleteByAttempt(ctx context.Context, attemptID string) error
}

// UserRepository resolves identities for ownership checks.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*User, error)
}

// TransactionManager runs fn inside a single database transaction. Any error
// from fn rolls back every row change.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
