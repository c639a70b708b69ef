package service

import (
	"context"
	"fmt"
	"math/rand"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"careerpath/internal/domain"
	"careerpath/internal/logger"
)

// AssignmentService binds a fixed question set to an (attempt, section) pair.
type AssignmentService interface {
	// GetOrAssignQuestions returns the questions assigned to the attempt for
	// the section, creating the assignment on first call. Every later call
	// returns the identical set in the same order.
	GetOrAssignQuestions(ctx context.Context, attempt *domain.TestAttempt, sectionID string) ([]*domain.Question, error)
}

type assignmentService struct {
	questionRepo   domain.QuestionRepository
	assignmentRepo domain.AssignmentRepository
	attemptRepo    domain.AttemptRepository
	group          singleflight.Group
}

// NewAssignmentService creates a new assignment service.
func NewAssignmentService(
	questionRepo domain.QuestionRepository,
	assignmentRepo domain.AssignmentRepository,
	attemptRepo domain.AttemptRepository,
) AssignmentService {
	return &assignmentService{
		questionRepo:   questionRepo,
		assignmentRepo: assignmentRepo,
		attemptRepo:    attemptRepo,
	}
}

// GetOrAssignQuestions implements AssignmentService. Concurrent callers for
// the same pair are collapsed in-process via singleflight; across processes
// the unique constraint on (attempt_id, question_id) makes the first insert
// win and every writer re-read the stored set.
func (s *assignmentService) GetOrAssignQuestions(ctx context.Context, attempt *domain.TestAttempt, sectionID string) ([]*domain.Question, error) {
	existing, err := s.assignmentRepo.GetQuestionIDs(ctx, attempt.ID, sectionID)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return s.questionRepo.GetByIDs(ctx, existing)
	}

	key := attempt.ID + ":" + sectionID
	result, err, _ := s.group.Do(key, func() (interface{}, error) {
		return s.assign(ctx, attempt, sectionID)
	})
	if err != nil {
		return nil, err
	}
	return result.([]*domain.Question), nil
}

func (s *assignmentService) assign(ctx context.Context, attempt *domain.TestAttempt, sectionID string) ([]*domain.Question, error) {
	// Another request may have finished the insert while we waited.
	existing, err := s.assignmentRepo.GetQuestionIDs(ctx, attempt.ID, sectionID)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return s.questionRepo.GetByIDs(ctx, existing)
	}

	eligible, err := s.questionRepo.GetEligibleIDsBySection(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	if len(eligible) < domain.QuestionsPerSection {
		return nil, domain.NewInsufficientQuestionsError(sectionID, len(eligible), domain.QuestionsPerSection)
	}

	pool, err := s.excludePriorAttempt(ctx, attempt.StudentID, sectionID, eligible)
	if err != nil {
		return nil, err
	}

	chosen := make([]string, len(pool))
	copy(chosen, pool)
	rand.Shuffle(len(chosen), func(i, j int) {
		chosen[i], chosen[j] = chosen[j], chosen[i]
	})
	chosen = chosen[:domain.QuestionsPerSection]

	if err := s.assignmentRepo.CreateAssignments(ctx, attempt.ID, chosen); err != nil {
		return nil, err
	}

	// The stored rows are canonical; a racing writer from another process
	// may have inserted a different set first.
	stored, err := s.assignmentRepo.GetQuestionIDs(ctx, attempt.ID, sectionID)
	if err != nil {
		return nil, err
	}
	if len(stored) == 0 {
		return nil, domain.NewInternalError(
			fmt.Sprintf("assignment for attempt %s section %s vanished after insert", attempt.ID, sectionID), nil)
	}

	logger.Get().Info("Assigned section questions",
		zap.String("attempt_id", attempt.ID),
		zap.String("section_id", sectionID),
		zap.Int("count", len(stored)))
	return s.questionRepo.GetByIDs(ctx, stored)
}

// excludePriorAttempt drops questions the student already saw in their most
// recent finished attempt, but only when enough fresh questions remain for
// a full section. An allowed retake after an exhausted bank repeats items
// rather than failing.
func (s *assignmentService) excludePriorAttempt(ctx context.Context, studentID, sectionID string, eligible []string) ([]string, error) {
	prior, err := s.attemptRepo.GetLatestFinishedByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if prior == nil {
		return eligible, nil
	}

	seen, err := s.assignmentRepo.GetQuestionIDs(ctx, prior.ID, sectionID)
	if err != nil {
		return nil, err
	}
	if len(seen) == 0 {
		return eligible, nil
	}

	seenSet := make(map[string]struct{}, len(seen))
	for _, id := range seen {
		seenSet[id] = struct{}{}
	}
	fresh := make([]string, 0, len(eligible))
	for _, id := range eligible {
		if _, ok := seenSet[id]; !ok {
			fresh = append(fresh, id)
		}
	}
	if len(fresh) >= domain.QuestionsPerSection {
		return fresh, nil
	}
	return eligible, nil
}
