package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"careerpath/internal/domain"
	"careerpath/internal/dto"
)

type adminFixtureMocks struct {
	questionRepo   *MockQuestionRepository
	attemptRepo    *MockAttemptRepository
	assignmentRepo *MockAssignmentRepository
	progressRepo   *MockSectionProgressRepository
	answerRepo     *MockAnswerRepository
	scoreRepo      *MockScoreRepository
	interpRepo     *MockInterpretationRepository
}

func adminFixture(t *testing.T) (*adminFixtureMocks, AdminService) {
	t.Helper()
	m := &adminFixtureMocks{
		questionRepo:   new(MockQuestionRepository),
		attemptRepo:    new(MockAttemptRepository),
		assignmentRepo: new(MockAssignmentRepository),
		progressRepo:   new(MockSectionProgressRepository),
		answerRepo:     new(MockAnswerRepository),
		scoreRepo:      new(MockScoreRepository),
		interpRepo:     new(MockInterpretationRepository),
	}
	svc := NewAdminService(m.questionRepo, m.attemptRepo, m.assignmentRepo,
		m.progressRepo, m.answerRepo, m.scoreRepo, m.interpRepo, &fakeTxManager{})
	return m, svc
}

func TestBulkApprove_ApprovesEveryQuestion(t *testing.T) {
	m, svc := adminFixture(t)
	ids := []string{"q1", "q2", "q3"}

	for _, id := range ids {
		m.questionRepo.On("UpdateStatus", mock.Anything, id, domain.QuestionApproved).Return(nil)
	}

	resp, err := svc.BulkApprove(context.Background(), &dto.BulkApproveRequest{QuestionIDs: ids})
	assert.NoError(t, err)
	assert.Equal(t, 3, resp.ApprovedCount)
	m.questionRepo.AssertExpectations(t)
}

func TestBulkApprove_UnknownIDFailsBatch(t *testing.T) {
	m, svc := adminFixture(t)

	m.questionRepo.On("UpdateStatus", mock.Anything, "q1", domain.QuestionApproved).Return(nil)
	m.questionRepo.On("UpdateStatus", mock.Anything, "missing", domain.QuestionApproved).
		Return(domain.NewError(domain.CodeQuestionNotFound, "Question not found: missing", nil))

	_, err := svc.BulkApprove(context.Background(), &dto.BulkApproveRequest{
		QuestionIDs: []string{"q1", "missing"},
	})
	assert.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.CodeQuestionNotFound))
}

func TestBulkApprove_EmptyListRejected(t *testing.T) {
	m, svc := adminFixture(t)

	_, err := svc.BulkApprove(context.Background(), &dto.BulkApproveRequest{})
	assert.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.CodeValidation))
	m.questionRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateQuestion_EntersBankAsPending(t *testing.T) {
	m, svc := adminFixture(t)

	m.questionRepo.On("CreateQuestion", mock.Anything, mock.MatchedBy(func(q *domain.Question) bool {
		return q.Status == domain.QuestionPending && q.IsActive && len(q.Options) == 5
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Question).ID = "new-question"
	}).Return(nil)

	resp, err := svc.CreateQuestion(context.Background(), &dto.CreateQuestionRequest{
		Text:      "I can describe my own strengths.",
		Type:      domain.QuestionLikertScale,
		SectionID: "section-1",
		Options: []dto.CreateQuestionOption{
			{Key: "A", Text: "Strongly disagree"},
			{Key: "B", Text: "Disagree"},
			{Key: "C", Text: "Neutral"},
			{Key: "D", Text: "Agree"},
			{Key: "E", Text: "Strongly agree"},
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, "new-question", resp.QuestionID)
	assert.Equal(t, domain.QuestionPending, resp.Status)
}

func TestCreateQuestion_InvalidQuestionRejected(t *testing.T) {
	m, svc := adminFixture(t)

	_, err := svc.CreateQuestion(context.Background(), &dto.CreateQuestionRequest{
		Type:      domain.QuestionLikertScale,
		SectionID: "section-1",
	})
	assert.Error(t, err)
	m.questionRepo.AssertNotCalled(t, "CreateQuestion", mock.Anything, mock.Anything)
}

func TestAllowRetake_AbandonsCompletedAndClearsOpen(t *testing.T) {
	m, svc := adminFixture(t)
	completed := &domain.TestAttempt{ID: "done", StudentID: "student-1", Status: domain.AttemptCompleted}
	open := &domain.TestAttempt{ID: "open", StudentID: "student-1", Status: domain.AttemptInProgress}

	m.attemptRepo.On("GetCompletedByStudent", mock.Anything, "student-1").Return(completed, nil)
	m.attemptRepo.On("MarkAbandoned", mock.Anything, "done").Return(nil)
	m.attemptRepo.On("GetInProgressByStudent", mock.Anything, "student-1").Return(open, nil)
	m.answerRepo.On("DeleteByAttempt", mock.Anything, "open").Return(nil)
	m.assignmentRepo.On("DeleteByAttempt", mock.Anything, "open").Return(nil)
	m.progressRepo.On("DeleteByAttempt", mock.Anything, "open").Return(nil)
	m.scoreRepo.On("DeleteByAttempt", mock.Anything, "open").Return(nil)
	m.interpRepo.On("DeleteByAttempt", mock.Anything, "open").Return(nil)
	m.attemptRepo.On("Delete", mock.Anything, "open").Return(nil)

	resp, err := svc.AllowRetake(context.Background(), "student-1")
	assert.NoError(t, err)
	assert.Equal(t, 1, resp.AbandonedAttempts)
	assert.Equal(t, 1, resp.DeletedAttempts)
	m.attemptRepo.AssertExpectations(t)
}

func TestAllowRetake_NothingToClear(t *testing.T) {
	m, svc := adminFixture(t)

	m.attemptRepo.On("GetCompletedByStudent", mock.Anything, "student-1").Return(nil, nil)
	m.attemptRepo.On("GetInProgressByStudent", mock.Anything, "student-1").Return(nil, nil)

	resp, err := svc.AllowRetake(context.Background(), "student-1")
	assert.NoError(t, err)
	assert.Equal(t, 0, resp.AbandonedAttempts)
	assert.Equal(t, 0, resp.DeletedAttempts)
	m.attemptRepo.AssertNotCalled(t, "MarkAbandoned", mock.Anything, mock.Anything)
	m.attemptRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
