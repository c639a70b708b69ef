package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"careerpath/internal/domain"
	"careerpath/internal/dto"
	"careerpath/internal/logger"
)

// interpretationTimeout bounds the post-completion narrative generation,
// which runs detached from the request.
const interpretationTimeout = 2 * time.Minute

// AttemptService owns the attempt lifecycle and its read snapshots.
type AttemptService interface {
	// Start opens a new attempt, or returns the existing open one.
	Start(ctx context.Context, studentID string) (*dto.StartTestResponse, error)
	// Complete finalizes the attempt: all sections must be completed and
	// every assigned question answered. Scoring failures fail the call;
	// narrative generation runs detached and never blocks it.
	Complete(ctx context.Context, studentID, attemptID string) (*dto.CompleteTestResponse, error)
	GetState(ctx context.Context, studentID, attemptID string) (*dto.AttemptStateResponse, error)
	GetProgress(ctx context.Context, studentID, attemptID string) (*dto.AttemptProgressResponse, error)
	GetStatus(ctx context.Context, studentID, attemptID string) (*dto.AttemptStatusResponse, error)
}

type attemptService struct {
	attemptRepo    domain.AttemptRepository
	sectionRepo    domain.SectionRepository
	questionRepo   domain.QuestionRepository
	assignmentRepo domain.AssignmentRepository
	progressRepo   domain.SectionProgressRepository
	answerRepo     domain.AnswerRepository
	scoringSvc     ScoringService
	interpSvc      InterpretationService
}

// NewAttemptService creates a new attempt service.
func NewAttemptService(
	attemptRepo domain.AttemptRepository,
	sectionRepo domain.SectionRepository,
	questionRepo domain.QuestionRepository,
	assignmentRepo domain.AssignmentRepository,
	progressRepo domain.SectionProgressRepository,
	answerRepo domain.AnswerRepository,
	scoringSvc ScoringService,
	interpSvc InterpretationService,
) AttemptService {
	return &attemptService{
		attemptRepo:    attemptRepo,
		sectionRepo:    sectionRepo,
		questionRepo:   questionRepo,
		assignmentRepo: assignmentRepo,
		progressRepo:   progressRepo,
		answerRepo:     answerRepo,
		scoringSvc:     scoringSvc,
		interpSvc:      interpSvc,
	}
}

// Start implements AttemptService. A student gets exactly one completed
// attempt ever; a retake requires an admin to abandon the completed one
// first. Calling start with an attempt already open returns that attempt.
func (s *attemptService) Start(ctx context.Context, studentID string) (*dto.StartTestResponse, error) {
	completed, err := s.attemptRepo.GetCompletedByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if completed != nil {
		return nil, domain.NewError(domain.CodeAlreadyCompleted,
			"Student has already completed the test", nil).
			WithContext("completed_attempt_id", completed.ID)
	}

	existing, err := s.attemptRepo.GetInProgressByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &dto.StartTestResponse{
			TestAttemptID:  existing.ID,
			Status:         existing.Status,
			StartedAt:      existing.StartedAt,
			TotalQuestions: domain.SectionCount * domain.QuestionsPerSection,
		}, nil
	}

	sections, err := s.sectionRepo.GetActiveSections(ctx)
	if err != nil {
		return nil, err
	}
	if len(sections) != domain.SectionCount {
		return nil, domain.NewInternalError("Section catalog is not fully seeded", nil)
	}
	// The test is startable as long as some section can serve a full
	// question set; sections that cannot fail later, at assignment.
	startable := false
	for _, section := range sections {
		count, err := s.questionRepo.CountEligibleBySection(ctx, section.ID)
		if err != nil {
			return nil, err
		}
		if count >= domain.QuestionsPerSection {
			startable = true
			break
		}
	}
	if !startable {
		return nil, domain.NewError(domain.CodeInsufficientQuestions,
			"No section has enough eligible questions to start the test", nil)
	}

	// The current-section pointer stays unset until the student enters a
	// section.
	attempt := domain.NewTestAttempt(studentID)
	if err := s.attemptRepo.Create(ctx, attempt); err != nil {
		return nil, err
	}

	logger.Get().Info("Test attempt started",
		zap.String("attempt_id", attempt.ID),
		zap.String("student_id", studentID))
	return &dto.StartTestResponse{
		TestAttemptID:  attempt.ID,
		Status:         attempt.Status,
		StartedAt:      attempt.StartedAt,
		TotalQuestions: domain.SectionCount * domain.QuestionsPerSection,
	}, nil
}

// Complete implements AttemptService.
func (s *attemptService) Complete(ctx context.Context, studentID, attemptID string) (*dto.CompleteTestResponse, error) {
	attempt, err := s.ownedAttempt(ctx, studentID, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.Status == domain.AttemptCompleted {
		return &dto.CompleteTestResponse{
			Status:      attempt.Status,
			CompletedAt: attempt.CompletedAt,
		}, nil
	}
	if attempt.Status != domain.AttemptInProgress {
		return nil, domain.NewError(domain.CodeNotInProgress, "Test attempt is not in progress", nil)
	}

	if err := s.requireSectionsComplete(ctx, attemptID); err != nil {
		return nil, err
	}

	assignedCount, err := s.assignmentRepo.CountByAttempt(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	answeredCount, err := s.answerRepo.CountByAttempt(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if answeredCount < assignedCount {
		return nil, domain.NewError(domain.CodeIncompleteAnswers,
			"Not every assigned question has an answer", nil).
			WithContext("assigned", assignedCount).
			WithContext("answered", answeredCount)
	}

	// Scoring runs before the status transition: a scoring failure aborts
	// the completion and leaves the attempt IN_PROGRESS so the client can
	// retry the whole operation. A COMPLETED attempt always has its scores.
	if _, err := s.scoringSvc.ScoreAttempt(ctx, attemptID); err != nil {
		return nil, err
	}

	if err := s.attemptRepo.MarkCompleted(ctx, attemptID); err != nil {
		return nil, err
	}

	go func() {
		genCtx, cancel := context.WithTimeout(context.Background(), interpretationTimeout)
		defer cancel()
		if err := s.interpSvc.GenerateForAttempt(genCtx, attemptID); err != nil {
			logger.Get().Warn("Detached narrative generation failed",
				zap.String("attempt_id", attemptID), zap.Error(err))
		}
	}()

	updated, err := s.attemptRepo.GetByID(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	logger.Get().Info("Test attempt completed",
		zap.String("attempt_id", attemptID),
		zap.String("student_id", studentID))
	return &dto.CompleteTestResponse{
		Status:      updated.Status,
		CompletedAt: updated.CompletedAt,
	}, nil
}

// GetState implements AttemptService.
func (s *attemptService) GetState(ctx context.Context, studentID, attemptID string) (*dto.AttemptStateResponse, error) {
	attempt, err := s.ownedAttempt(ctx, studentID, attemptID)
	if err != nil {
		return nil, err
	}
	return &dto.AttemptStateResponse{
		TestAttemptID:        attempt.ID,
		Status:               attempt.Status,
		CurrentSectionID:     attempt.CurrentSectionID,
		CurrentQuestionIndex: attempt.CurrentQuestionIndex,
		RemainingTimeSeconds: attempt.RemainingTimeSeconds,
		StartedAt:            attempt.StartedAt,
		CompletedAt:          attempt.CompletedAt,
	}, nil
}

// GetProgress implements AttemptService.
func (s *attemptService) GetProgress(ctx context.Context, studentID, attemptID string) (*dto.AttemptProgressResponse, error) {
	attempt, err := s.ownedAttempt(ctx, studentID, attemptID)
	if err != nil {
		return nil, err
	}
	sections, err := s.sectionRepo.GetActiveSections(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := s.progressRepo.GetByAttempt(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	progressByID := make(map[string]*domain.SectionProgress, len(rows))
	for _, p := range rows {
		progressByID[p.SectionID] = p
	}
	answers, err := s.answerRepo.GetByAttempt(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	answeredSet := make(map[string]struct{}, len(answers))
	for _, a := range answers {
		answeredSet[a.QuestionID] = struct{}{}
	}

	resp := &dto.AttemptProgressResponse{
		TestAttemptID:     attempt.ID,
		Status:            attempt.Status,
		Sections:          make([]dto.SectionProgressItem, 0, len(sections)),
		AnsweredQuestions: len(answers),
		TotalQuestions:    domain.SectionCount * domain.QuestionsPerSection,
	}
	for _, section := range sections {
		item := dto.SectionProgressItem{
			SectionID:   section.ID,
			SectionName: section.Name,
			OrderIndex:  section.OrderIndex,
			Status:      domain.ProgressNotStarted,
		}
		if p := progressByID[section.ID]; p != nil {
			item.Status = p.Status
			item.TotalTimeSpent = p.TotalTimeSpent
		}
		assigned, err := s.assignmentRepo.GetQuestionIDs(ctx, attemptID, section.ID)
		if err != nil {
			return nil, err
		}
		item.AssignedCount = len(assigned)
		for _, id := range assigned {
			if _, ok := answeredSet[id]; ok {
				item.AnsweredCount++
			}
		}
		resp.Sections = append(resp.Sections, item)
	}
	return resp, nil
}

// GetStatus implements AttemptService.
func (s *attemptService) GetStatus(ctx context.Context, studentID, attemptID string) (*dto.AttemptStatusResponse, error) {
	attempt, err := s.ownedAttempt(ctx, studentID, attemptID)
	if err != nil {
		return nil, err
	}
	return &dto.AttemptStatusResponse{
		TestAttemptID: attempt.ID,
		Status:        attempt.Status,
		StartedAt:     attempt.StartedAt,
		CompletedAt:   attempt.CompletedAt,
	}, nil
}

// ownedAttempt loads an attempt and enforces ownership. An empty studentID
// skips the check for role-gated internal callers.
func (s *attemptService) ownedAttempt(ctx context.Context, studentID, attemptID string) (*domain.TestAttempt, error) {
	attempt, err := s.attemptRepo.GetByID(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt == nil {
		return nil, domain.NewAttemptNotFoundError(attemptID)
	}
	if studentID != "" && attempt.StudentID != studentID {
		return nil, domain.NewForbiddenError("Attempt does not belong to the caller")
	}
	return attempt, nil
}

// requireSectionsComplete fails with the list of incomplete sections.
func (s *attemptService) requireSectionsComplete(ctx context.Context, attemptID string) error {
	sections, err := s.sectionRepo.GetActiveSections(ctx)
	if err != nil {
		return err
	}
	rows, err := s.progressRepo.GetByAttempt(ctx, attemptID)
	if err != nil {
		return err
	}
	completedByID := make(map[string]bool, len(rows))
	for _, p := range rows {
		completedByID[p.SectionID] = p.Status == domain.ProgressCompleted
	}
	var incomplete []string
	for _, section := range sections {
		if !completedByID[section.ID] {
			incomplete = append(incomplete, section.ID)
		}
	}
	if len(incomplete) > 0 {
		return domain.NewError(domain.CodeSectionsIncomplete,
			"Every section must be completed before finishing the test", nil).
			WithContext("incomplete_sections", incomplete)
	}
	return nil
}
