package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode identifies a specific failure category across the API surface.
type ErrorCode string

const (
	// Common errors
	CodeInternal      ErrorCode = "INTERNAL_ERROR"
	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeNotFound      ErrorCode = "NOT_FOUND"
	CodeUnauthorized  ErrorCode = "UNAUTHORIZED"
	CodeForbidden     ErrorCode = "FORBIDDEN"

	// Attempt lifecycle errors
	CodeAttemptNotFound  ErrorCode = "ATTEMPT_NOT_FOUND"
	CodeAlreadyCompleted ErrorCode = "ALREADY_COMPLETED"
	CodeNotInProgress    ErrorCode = "NOT_IN_PROGRESS"

	// Section gating and timer errors
	CodeSectionNotFound         ErrorCode = "SECTION_NOT_FOUND"
	CodeSectionLocked           ErrorCode = "SECTION_LOCKED"
	CodeSectionAlreadyCompleted ErrorCode = "SECTION_ALREADY_COMPLETED"
	CodeSectionNotStarted       ErrorCode = "SECTION_NOT_STARTED"
	CodeSectionNotPaused        ErrorCode = "SECTION_NOT_PAUSED"
	CodeSectionAlreadyPaused    ErrorCode = "SECTION_ALREADY_PAUSED"
	CodeSectionsIncomplete      ErrorCode = "SECTIONS_INCOMPLETE"

	// Question and answer errors
	CodeQuestionNotFound      ErrorCode = "QUESTION_NOT_FOUND"
	CodeInsufficientQuestions ErrorCode = "INSUFFICIENT_QUESTIONS"
	CodeAnswerCountMismatch   ErrorCode = "ANSWER_COUNT_MISMATCH"
	CodeForeignQuestion       ErrorCode = "FOREIGN_QUESTION"
	CodeIncompleteAnswers     ErrorCode = "INCOMPLETE_ANSWERS"

	// Dependency failures
	CodeScoringFailed         ErrorCode = "SCORING_FAILED"
	CodeInterpretationPending ErrorCode = "INTERPRETATION_PENDING"
	CodeLLMServiceError       ErrorCode = "LLM_SERVICE_ERROR"
)

// DomainError carries a machine-readable code alongside the message.
// Context holds supplementary fields surfaced in the error response body,
// e.g. the list of incomplete sections on a failed completion.
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"details,omitempty"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// NewError creates a new DomainError.
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{Code: code, Message: message, Cause: cause}
}

// WithContext attaches a supplementary field and returns the same error.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// IsCode reports whether err is a DomainError with the given code.
func IsCode(err error, code ErrorCode) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// Helper constructors for common errors

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewValidationError(message string) *DomainError {
	return NewError(CodeValidation, message, nil)
}

func NewMissingFieldError(field string) *DomainError {
	return NewError(CodeMissingField, fmt.Sprintf("Missing required field: %s", field), nil).
		WithContext("field", field)
}

func NewInvalidFormatError(field, value string) *DomainError {
	return NewError(CodeInvalidFormat, fmt.Sprintf("Invalid format for field %s: %s", field, value), nil).
		WithContext("field", field)
}

func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(CodeUnauthorized, message, nil)
}

func NewForbiddenError(message string) *DomainError {
	return NewError(CodeForbidden, message, nil)
}

func NewAttemptNotFoundError(attemptID string) *DomainError {
	return NewError(CodeAttemptNotFound, fmt.Sprintf("Test attempt not found: %s", attemptID), nil)
}

func NewSectionNotFoundError(sectionID string) *DomainError {
	return NewError(CodeSectionNotFound, fmt.Sprintf("Section not found: %s", sectionID), nil)
}

func NewSectionLockedError(sectionID string) *DomainError {
	return NewError(CodeSectionLocked, "Previous sections must be completed first", nil).
		WithContext("section_id", sectionID)
}

func NewInsufficientQuestionsError(sectionID string, available, required int) *DomainError {
	return NewError(CodeInsufficientQuestions,
		fmt.Sprintf("Section has %d eligible questions, %d required", available, required), nil).
		WithContext("section_id", sectionID)
}

func NewScoringFailedError(cause error) *DomainError {
	return NewError(CodeScoringFailed, "Failed to compute scores for attempt", cause)
}

func NewLLMServiceError(cause error) *DomainError {
	return NewError(CodeLLMServiceError, "Interpretation service request failed", cause)
}

// ValidationErrors aggregates per-field failures so a request with several
// bad fields reports all of them at once.
type ValidationErrors []*DomainError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Message)
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(msgs, "; "))
}

// ErrCacheMiss is returned by Cache implementations when a key is absent.
var ErrCacheMiss = errors.New("cache: key not found")

// ErrDuplicateRow is returned by repositories when an insert hits a unique
// constraint. Callers relying on idempotent writes treat it as success.
var ErrDuplicateRow = errors.New("repository: duplicate row")
