package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"careerpath/internal/domain"
)

func assignmentFixture(t *testing.T) (*MockQuestionRepository, *MockAssignmentRepository, *MockAttemptRepository, AssignmentService) {
	t.Helper()
	questionRepo := new(MockQuestionRepository)
	assignmentRepo := new(MockAssignmentRepository)
	attemptRepo := new(MockAttemptRepository)
	svc := NewAssignmentService(questionRepo, assignmentRepo, attemptRepo)
	return questionRepo, assignmentRepo, attemptRepo, svc
}

func sevenIDs(prefix string) []string {
	ids := make([]string, 7)
	for i := range ids {
		ids[i] = prefix + string(rune('1'+i))
	}
	return ids
}

func questionsFor(ids []string, sectionID string) []*domain.Question {
	questions := make([]*domain.Question, 0, len(ids))
	for _, id := range ids {
		questions = append(questions, &domain.Question{
			ID:        id,
			SectionID: sectionID,
			Status:    domain.QuestionApproved,
			IsActive:  true,
		})
	}
	return questions
}

func TestGetOrAssignQuestions_ReturnsExistingAssignment(t *testing.T) {
	questionRepo, assignmentRepo, _, svc := assignmentFixture(t)
	attempt := &domain.TestAttempt{ID: "attempt-1", StudentID: "student-1"}
	sectionID := "section-1"
	existing := sevenIDs("q")

	assignmentRepo.On("GetQuestionIDs", mock.Anything, attempt.ID, sectionID).Return(existing, nil)
	questionRepo.On("GetByIDs", mock.Anything, existing).Return(questionsFor(existing, sectionID), nil)

	questions, err := svc.GetOrAssignQuestions(context.Background(), attempt, sectionID)
	assert.NoError(t, err)
	assert.Len(t, questions, 7)
	// No new assignment was created.
	assignmentRepo.AssertNotCalled(t, "CreateAssignments", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetOrAssignQuestions_AssignsOnFirstCall(t *testing.T) {
	questionRepo, assignmentRepo, attemptRepo, svc := assignmentFixture(t)
	attempt := &domain.TestAttempt{ID: "attempt-1", StudentID: "student-1"}
	sectionID := "section-1"
	eligible := sevenIDs("q")

	assignmentRepo.On("GetQuestionIDs", mock.Anything, attempt.ID, sectionID).Return([]string{}, nil).Twice()
	questionRepo.On("GetEligibleIDsBySection", mock.Anything, sectionID).Return(eligible, nil)
	attemptRepo.On("GetLatestFinishedByStudent", mock.Anything, attempt.StudentID).Return(nil, nil)
	assignmentRepo.On("CreateAssignments", mock.Anything, attempt.ID, mock.Anything).Return(nil)
	// The stored rows after insert are canonical.
	assignmentRepo.On("GetQuestionIDs", mock.Anything, attempt.ID, sectionID).Return(eligible, nil)
	questionRepo.On("GetByIDs", mock.Anything, eligible).Return(questionsFor(eligible, sectionID), nil)

	questions, err := svc.GetOrAssignQuestions(context.Background(), attempt, sectionID)
	assert.NoError(t, err)
	assert.Len(t, questions, 7)
	assignmentRepo.AssertCalled(t, "CreateAssignments", mock.Anything, attempt.ID, mock.Anything)
}

func TestGetOrAssignQuestions_InsufficientQuestions(t *testing.T) {
	questionRepo, assignmentRepo, _, svc := assignmentFixture(t)
	attempt := &domain.TestAttempt{ID: "attempt-1", StudentID: "student-1"}
	sectionID := "section-1"

	assignmentRepo.On("GetQuestionIDs", mock.Anything, attempt.ID, sectionID).Return([]string{}, nil)
	questionRepo.On("GetEligibleIDsBySection", mock.Anything, sectionID).Return([]string{"q1", "q2"}, nil)

	_, err := svc.GetOrAssignQuestions(context.Background(), attempt, sectionID)
	assert.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.CodeInsufficientQuestions))
}

func TestGetOrAssignQuestions_ExcludesPriorAttemptQuestions(t *testing.T) {
	questionRepo, assignmentRepo, attemptRepo, svc := assignmentFixture(t)
	attempt := &domain.TestAttempt{ID: "attempt-2", StudentID: "student-1"}
	prior := &domain.TestAttempt{ID: "attempt-1", StudentID: "student-1", Status: domain.AttemptCompleted}
	sectionID := "section-1"

	seen := sevenIDs("old")
	fresh := sevenIDs("new")
	eligible := append(append([]string{}, seen...), fresh...)

	assignmentRepo.On("GetQuestionIDs", mock.Anything, attempt.ID, sectionID).Return([]string{}, nil).Twice()
	questionRepo.On("GetEligibleIDsBySection", mock.Anything, sectionID).Return(eligible, nil)
	attemptRepo.On("GetLatestFinishedByStudent", mock.Anything, attempt.StudentID).Return(prior, nil)
	assignmentRepo.On("GetQuestionIDs", mock.Anything, prior.ID, sectionID).Return(seen, nil)
	assignmentRepo.On("CreateAssignments", mock.Anything, attempt.ID, mock.MatchedBy(func(ids []string) bool {
		for _, id := range ids {
			for _, old := range seen {
				if id == old {
					return false
				}
			}
		}
		return len(ids) == 7
	})).Return(nil)
	assignmentRepo.On("GetQuestionIDs", mock.Anything, attempt.ID, sectionID).Return(fresh, nil)
	questionRepo.On("GetByIDs", mock.Anything, fresh).Return(questionsFor(fresh, sectionID), nil)

	questions, err := svc.GetOrAssignQuestions(context.Background(), attempt, sectionID)
	assert.NoError(t, err)
	assert.Len(t, questions, 7)
}

func TestGetOrAssignQuestions_ExcludesAbandonedAttemptAfterRetake(t *testing.T) {
	questionRepo, assignmentRepo, attemptRepo, svc := assignmentFixture(t)
	attempt := &domain.TestAttempt{ID: "attempt-2", StudentID: "student-1"}
	// An allowed retake abandons the finished attempt; its assignments must
	// still keep already-seen questions out of the new set.
	prior := &domain.TestAttempt{ID: "attempt-1", StudentID: "student-1", Status: domain.AttemptAbandoned}
	sectionID := "section-1"

	seen := sevenIDs("old")
	fresh := sevenIDs("new")
	eligible := append(append([]string{}, seen...), fresh...)

	assignmentRepo.On("GetQuestionIDs", mock.Anything, attempt.ID, sectionID).Return([]string{}, nil).Twice()
	questionRepo.On("GetEligibleIDsBySection", mock.Anything, sectionID).Return(eligible, nil)
	attemptRepo.On("GetLatestFinishedByStudent", mock.Anything, attempt.StudentID).Return(prior, nil)
	assignmentRepo.On("GetQuestionIDs", mock.Anything, prior.ID, sectionID).Return(seen, nil)
	assignmentRepo.On("CreateAssignments", mock.Anything, attempt.ID, mock.MatchedBy(func(ids []string) bool {
		for _, id := range ids {
			for _, old := range seen {
				if id == old {
					return false
				}
			}
		}
		return len(ids) == 7
	})).Return(nil)
	assignmentRepo.On("GetQuestionIDs", mock.Anything, attempt.ID, sectionID).Return(fresh, nil)
	questionRepo.On("GetByIDs", mock.Anything, fresh).Return(questionsFor(fresh, sectionID), nil)

	questions, err := svc.GetOrAssignQuestions(context.Background(), attempt, sectionID)
	assert.NoError(t, err)
	assert.Len(t, questions, 7)
}

func TestGetOrAssignQuestions_RepeatsWhenBankExhausted(t *testing.T) {
	questionRepo, assignmentRepo, attemptRepo, svc := assignmentFixture(t)
	attempt := &domain.TestAttempt{ID: "attempt-2", StudentID: "student-1"}
	prior := &domain.TestAttempt{ID: "attempt-1", StudentID: "student-1", Status: domain.AttemptCompleted}
	sectionID := "section-1"

	// Every eligible question was already seen: the full pool is reused
	// rather than failing the retake.
	seen := sevenIDs("q")

	assignmentRepo.On("GetQuestionIDs", mock.Anything, attempt.ID, sectionID).Return([]string{}, nil).Twice()
	questionRepo.On("GetEligibleIDsBySection", mock.Anything, sectionID).Return(seen, nil)
	attemptRepo.On("GetLatestFinishedByStudent", mock.Anything, attempt.StudentID).Return(prior, nil)
	assignmentRepo.On("GetQuestionIDs", mock.Anything, prior.ID, sectionID).Return(seen, nil)
	assignmentRepo.On("CreateAssignments", mock.Anything, attempt.ID, mock.Anything).Return(nil)
	assignmentRepo.On("GetQuestionIDs", mock.Anything, attempt.ID, sectionID).Return(seen, nil)
	questionRepo.On("GetByIDs", mock.Anything, seen).Return(questionsFor(seen, sectionID), nil)

	questions, err := svc.GetOrAssignQuestions(context.Background(), attempt, sectionID)
	assert.NoError(t, err)
	assert.Len(t, questions, 7)
}
