package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"careerpath/internal/domain"
	"careerpath/internal/dto"
	"careerpath/internal/logger"
)

// SubmissionService records answers. Submit closes a section with its full
// answer set; SaveAnswer stores a single in-flight answer and is the only
// path allowed to overwrite one.
type SubmissionService interface {
	Submit(ctx context.Context, studentID, sectionID string, req *dto.SubmitSectionRequest) (*dto.SubmitSectionResponse, error)
	SaveAnswer(ctx context.Context, studentID string, req *dto.SaveAnswerRequest) error
}

type submissionService struct {
	sectionRepo    domain.SectionRepository
	questionRepo   domain.QuestionRepository
	assignmentRepo domain.AssignmentRepository
	progressRepo   domain.SectionProgressRepository
	answerRepo     domain.AnswerRepository
	attemptRepo    domain.AttemptRepository
	txManager      domain.TransactionManager
}

// NewSubmissionService creates a new submission service.
func NewSubmissionService(
	sectionRepo domain.SectionRepository,
	questionRepo domain.QuestionRepository,
	assignmentRepo domain.AssignmentRepository,
	progressRepo domain.SectionProgressRepository,
	answerRepo domain.AnswerRepository,
	attemptRepo domain.AttemptRepository,
	txManager domain.TransactionManager,
) SubmissionService {
	return &submissionService{
		sectionRepo:    sectionRepo,
		questionRepo:   questionRepo,
		assignmentRepo: assignmentRepo,
		progressRepo:   progressRepo,
		answerRepo:     answerRepo,
		attemptRepo:    attemptRepo,
		txManager:      txManager,
	}
}

// Submit implements SubmissionService. The operation is idempotent: answers
// are insert-only, a duplicate row counts as already stored, and resubmitting
// a completed section with its full answer set succeeds without changing
// anything.
func (s *submissionService) Submit(ctx context.Context, studentID, sectionID string, req *dto.SubmitSectionRequest) (*dto.SubmitSectionResponse, error) {
	attempt, err := s.attemptRepo.GetInProgressByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if attempt == nil {
		return nil, domain.NewError(domain.CodeNotInProgress, "No test attempt in progress", nil)
	}
	section, err := s.sectionRepo.GetByID(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	if section == nil {
		return nil, domain.NewSectionNotFoundError(sectionID)
	}

	assigned, err := s.assignmentRepo.GetQuestionIDs(ctx, attempt.ID, sectionID)
	if err != nil {
		return nil, err
	}
	if len(assigned) == 0 {
		return nil, domain.NewError(domain.CodeSectionNotStarted, "Section has no assigned questions", nil).
			WithContext("section_id", sectionID)
	}
	if len(req.Answers) != len(assigned) {
		return nil, domain.NewError(domain.CodeAnswerCountMismatch,
			fmt.Sprintf("Expected %d answers, got %d", len(assigned), len(req.Answers)), nil).
			WithContext("expected", len(assigned)).
			WithContext("received", len(req.Answers))
	}

	assignedSet := make(map[string]struct{}, len(assigned))
	for _, id := range assigned {
		assignedSet[id] = struct{}{}
	}
	for _, a := range req.Answers {
		if _, ok := assignedSet[a.QuestionID]; !ok {
			return nil, domain.NewError(domain.CodeForeignQuestion,
				"Answer references a question outside this section's assignment", nil).
				WithContext("question_id", a.QuestionID)
		}
	}

	questions, err := s.questionRepo.GetByIDs(ctx, assigned)
	if err != nil {
		return nil, err
	}
	questionsByID := make(map[string]*domain.Question, len(questions))
	for _, q := range questions {
		questionsByID[q.ID] = q
	}
	for _, a := range req.Answers {
		q := questionsByID[a.QuestionID]
		if q == nil || !q.HasOptionKey(a.SelectedOption) {
			return nil, domain.NewValidationError(
				fmt.Sprintf("Option %q is not valid for question %s", a.SelectedOption, a.QuestionID))
		}
	}

	progress, err := s.progressRepo.Get(ctx, attempt.ID, sectionID)
	if err != nil {
		return nil, err
	}
	// A section already closed by an earlier submit or a timer expiry
	// advances without re-touching its answers.
	if progress == nil || progress.Status != domain.ProgressCompleted {
		now := time.Now()
		err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
			for _, a := range req.Answers {
				insertErr := s.answerRepo.Insert(txCtx, &domain.Answer{
					AttemptID:  attempt.ID,
					QuestionID: a.QuestionID,
					AnswerText: a.SelectedOption,
				})
				// An existing row means this answer was already stored by a
				// prior submit or save; it is never overwritten here.
				if insertErr != nil && !errors.Is(insertErr, domain.ErrDuplicateRow) {
					return insertErr
				}
			}
			return s.completeProgress(txCtx, attempt.ID, sectionID, now)
		})
		if err != nil {
			return nil, err
		}
	}

	resp := &dto.SubmitSectionResponse{
		Status:           "success",
		CompletedSection: sectionID,
	}
	next, allDone, err := s.advance(ctx, attempt, section)
	if err != nil {
		return nil, err
	}
	resp.TestCompleted = allDone
	if next != nil {
		resp.CurrentSection = next.ID
	}

	logger.Get().Info("Section submitted",
		zap.String("attempt_id", attempt.ID),
		zap.String("section_id", sectionID),
		zap.Bool("all_sections_completed", allDone))
	return resp, nil
}

// completeProgress closes the section's timer row, folding any running
// stretch into the total. A missing row (submit without an explicit start)
// is created directly in the completed state; a row already completed is
// left untouched so resubmits are no-ops.
func (s *submissionService) completeProgress(ctx context.Context, attemptID, sectionID string, now time.Time) error {
	progress, err := s.progressRepo.Get(ctx, attemptID, sectionID)
	if err != nil {
		return err
	}
	if progress == nil {
		return s.progressRepo.Create(ctx, &domain.SectionProgress{
			AttemptID: attemptID,
			SectionID: sectionID,
			Status:    domain.ProgressCompleted,
		})
	}
	if progress.Status == domain.ProgressCompleted {
		return nil
	}
	if progress.Running() {
		progress.TotalTimeSpent += int(now.Sub(*progress.SectionStartTime).Seconds())
	}
	if progress.TotalTimeSpent > domain.SectionTimeLimitSeconds {
		progress.TotalTimeSpent = domain.SectionTimeLimitSeconds
	}
	progress.Status = domain.ProgressCompleted
	progress.SectionStartTime = nil
	progress.PausedAt = nil
	return s.progressRepo.Update(ctx, progress)
}

// advance moves the attempt pointer to the next incomplete section and
// reports whether every section is now completed.
func (s *submissionService) advance(ctx context.Context, attempt *domain.TestAttempt, completed *domain.Section) (*domain.Section, bool, error) {
	sections, err := s.sectionRepo.GetActiveSections(ctx)
	if err != nil {
		return nil, false, err
	}
	rows, err := s.progressRepo.GetByAttempt(ctx, attempt.ID)
	if err != nil {
		return nil, false, err
	}
	completedByID := make(map[string]bool, len(rows))
	for _, p := range rows {
		completedByID[p.SectionID] = p.Status == domain.ProgressCompleted
	}

	var next *domain.Section
	allDone := true
	for _, section := range sections {
		if completedByID[section.ID] {
			continue
		}
		allDone = false
		if next == nil {
			next = section
		}
	}
	if next != nil && next.ID != attempt.CurrentSectionID {
		err := s.attemptRepo.UpdateSectionPointer(ctx, attempt.ID, next.ID, 0, domain.SectionTimeLimitSeconds)
		if err != nil {
			return nil, false, err
		}
	}
	return next, allDone, nil
}

// SaveAnswer implements SubmissionService. This is the single overwrite
// path; it upserts one answer for a question assigned to the attempt.
func (s *submissionService) SaveAnswer(ctx context.Context, studentID string, req *dto.SaveAnswerRequest) error {
	attempt, err := s.attemptRepo.GetInProgressByStudent(ctx, studentID)
	if err != nil {
		return err
	}
	if attempt == nil {
		return domain.NewError(domain.CodeNotInProgress, "No test attempt in progress", nil)
	}
	if req.AttemptID != "" && req.AttemptID != attempt.ID {
		return domain.NewForbiddenError("Attempt does not belong to the caller")
	}

	question, err := s.questionRepo.GetByID(ctx, req.QuestionID)
	if err != nil {
		return err
	}
	if question == nil {
		return domain.NewError(domain.CodeQuestionNotFound,
			fmt.Sprintf("Question not found: %s", req.QuestionID), nil)
	}

	assigned, err := s.assignmentRepo.GetQuestionIDs(ctx, attempt.ID, question.SectionID)
	if err != nil {
		return err
	}
	found := false
	for _, id := range assigned {
		if id == req.QuestionID {
			found = true
			break
		}
	}
	if !found {
		return domain.NewError(domain.CodeForeignQuestion,
			"Question is not assigned to this attempt", nil).
			WithContext("question_id", req.QuestionID)
	}
	if !question.HasOptionKey(req.SelectedOption) {
		return domain.NewValidationError(
			fmt.Sprintf("Option %q is not valid for question %s", req.SelectedOption, req.QuestionID))
	}

	return s.answerRepo.Upsert(ctx, &domain.Answer{
		AttemptID:  attempt.ID,
		QuestionID: req.QuestionID,
		AnswerText: req.SelectedOption,
	})
}
