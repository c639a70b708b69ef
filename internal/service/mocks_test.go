package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"careerpath/internal/domain"
	"careerpath/internal/dto"
)

// --- MockSectionRepository ---

type MockSectionRepository struct {
	mock.Mock
}

func (m *MockSectionRepository) GetActiveSections(ctx context.Context) ([]*domain.Section, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Section), args.Error(1)
}

func (m *MockSectionRepository) GetByID(ctx context.Context, id string) (*domain.Section, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Section), args.Error(1)
}

func (m *MockSectionRepository) GetByOrderIndex(ctx context.Context, orderIndex int) (*domain.Section, error) {
	args := m.Called(ctx, orderIndex)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Section), args.Error(1)
}

func (m *MockSectionRepository) CountSections(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockSectionRepository) CreateSection(ctx context.Context, section *domain.Section) error {
	args := m.Called(ctx, section)
	return args.Error(0)
}

// --- MockQuestionRepository ---

type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) GetByID(ctx context.Context, id string) (*domain.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Question), args.Error(1)
}

func (m *MockQuestionRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.Question, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Question), args.Error(1)
}

func (m *MockQuestionRepository) GetEligibleIDsBySection(ctx context.Context, sectionID string) ([]string, error) {
	args := m.Called(ctx, sectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockQuestionRepository) CountEligibleBySection(ctx context.Context, sectionID string) (int, error) {
	args := m.Called(ctx, sectionID)
	return args.Int(0), args.Error(1)
}

func (m *MockQuestionRepository) CreateQuestion(ctx context.Context, question *domain.Question) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockQuestionRepository) UpdateStatus(ctx context.Context, id, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// --- MockAttemptRepository ---

type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) Create(ctx context.Context, attempt *domain.TestAttempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockAttemptRepository) GetByID(ctx context.Context, id string) (*domain.TestAttempt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TestAttempt), args.Error(1)
}

func (m *MockAttemptRepository) GetInProgressByStudent(ctx context.Context, studentID string) (*domain.TestAttempt, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TestAttempt), args.Error(1)
}

func (m *MockAttemptRepository) GetCompletedByStudent(ctx context.Context, studentID string) (*domain.TestAttempt, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TestAttempt), args.Error(1)
}

func (m *MockAttemptRepository) GetLatestFinishedByStudent(ctx context.Context, studentID string) (*domain.TestAttempt, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TestAttempt), args.Error(1)
}

func (m *MockAttemptRepository) GetAllByStudent(ctx context.Context, studentID string) ([]*domain.TestAttempt, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.TestAttempt), args.Error(1)
}

func (m *MockAttemptRepository) UpdateSectionPointer(ctx context.Context, attemptID, sectionID string, questionIndex, remainingSeconds int) error {
	args := m.Called(ctx, attemptID, sectionID, questionIndex, remainingSeconds)
	return args.Error(0)
}

func (m *MockAttemptRepository) UpdateRemainingTime(ctx context.Context, attemptID string, remainingSeconds int) error {
	args := m.Called(ctx, attemptID, remainingSeconds)
	return args.Error(0)
}

func (m *MockAttemptRepository) MarkCompleted(ctx context.Context, attemptID string) error {
	args := m.Called(ctx, attemptID)
	return args.Error(0)
}

func (m *MockAttemptRepository) MarkAbandoned(ctx context.Context, attemptID string) error {
	args := m.Called(ctx, attemptID)
	return args.Error(0)
}

func (m *MockAttemptRepository) Delete(ctx context.Context, attemptID string) error {
	args := m.Called(ctx, attemptID)
	return args.Error(0)
}

// --- MockAssignmentRepository ---

type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) GetQuestionIDs(ctx context.Context, attemptID, sectionID string) ([]string, error) {
	args := m.Called(ctx, attemptID, sectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAssignmentRepository) CreateAssignments(ctx context.Context, attemptID string, questionIDs []string) error {
	args := m.Called(ctx, attemptID, questionIDs)
	return args.Error(0)
}

func (m *MockAssignmentRepository) CountByAttempt(ctx context.Context, attemptID string) (int, error) {
	args := m.Called(ctx, attemptID)
	return args.Int(0), args.Error(1)
}

func (m *MockAssignmentRepository) DeleteByAttempt(ctx context.Context, attemptID string) error {
	args := m.Called(ctx, attemptID)
	return args.Error(0)
}

// --- MockSectionProgressRepository ---

type MockSectionProgressRepository struct {
	mock.Mock
}

func (m *MockSectionProgressRepository) Get(ctx context.Context, attemptID, sectionID string) (*domain.SectionProgress, error) {
	args := m.Called(ctx, attemptID, sectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SectionProgress), args.Error(1)
}

func (m *MockSectionProgressRepository) GetByAttempt(ctx context.Context, attemptID string) ([]*domain.SectionProgress, error) {
	args := m.Called(ctx, attemptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.SectionProgress), args.Error(1)
}

func (m *MockSectionProgressRepository) Create(ctx context.Context, progress *domain.SectionProgress) error {
	args := m.Called(ctx, progress)
	return args.Error(0)
}

func (m *MockSectionProgressRepository) Update(ctx context.Context, progress *domain.SectionProgress) error {
	args := m.Called(ctx, progress)
	return args.Error(0)
}

func (m *MockSectionProgressRepository) DeleteByAttempt(ctx context.Context, attemptID string) error {
	args := m.Called(ctx, attemptID)
	return args.Error(0)
}

// --- MockAnswerRepository ---

type MockAnswerRepository struct {
	mock.Mock
}

func (m *MockAnswerRepository) GetByAttempt(ctx context.Context, attemptID string) ([]*domain.Answer, error) {
	args := m.Called(ctx, attemptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Answer), args.Error(1)
}

func (m *MockAnswerRepository) GetByAttemptAndQuestions(ctx context.Context, attemptID string, questionIDs []string) ([]*domain.Answer, error) {
	args := m.Called(ctx, attemptID, questionIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Answer), args.Error(1)
}

func (m *MockAnswerRepository) CountByAttempt(ctx context.Context, attemptID string) (int, error) {
	args := m.Called(ctx, attemptID)
	return args.Int(0), args.Error(1)
}

func (m *MockAnswerRepository) Insert(ctx context.Context, answer *domain.Answer) error {
	args := m.Called(ctx, answer)
	return args.Error(0)
}

func (m *MockAnswerRepository) Upsert(ctx context.Context, answer *domain.Answer) error {
	args := m.Called(ctx, answer)
	return args.Error(0)
}

func (m *MockAnswerRepository) DeleteByAttempt(ctx context.Context, attemptID string) error {
	args := m.Called(ctx, attemptID)
	return args.Error(0)
}

// --- MockScoreRepository ---

type MockScoreRepository struct {
	mock.Mock
}

func (m *MockScoreRepository) GetByAttempt(ctx context.Context, attemptID string) ([]*domain.Score, error) {
	args := m.Called(ctx, attemptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Score), args.Error(1)
}

func (m *MockScoreRepository) ReplaceForAttempt(ctx context.Context, attemptID string, scores []*domain.Score) error {
	args := m.Called(ctx, attemptID, scores)
	return args.Error(0)
}

func (m *MockScoreRepository) DeleteByAttempt(ctx context.Context, attemptID string) error {
	args := m.Called(ctx, attemptID)
	return args.Error(0)
}

// --- MockInterpretationRepository ---

type MockInterpretationRepository struct {
	mock.Mock
}

func (m *MockInterpretationRepository) GetByAttempt(ctx context.Context, attemptID string) (*domain.InterpretedResult, error) {
	args := m.Called(ctx, attemptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InterpretedResult), args.Error(1)
}

func (m *MockInterpretationRepository) Create(ctx context.Context, result *domain.InterpretedResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *MockInterpretationRepository) DeleteByAttempt(ctx context.Context, attemptID string) error {
	args := m.Called(ctx, attemptID)
	return args.Error(0)
}

// --- MockUserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// --- MockCache ---

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- MockInterpretationGenerator ---

type MockInterpretationGenerator struct {
	mock.Mock
}

func (m *MockInterpretationGenerator) GenerateNarrative(ctx context.Context, input domain.InterpretationInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

// --- MockScoringService ---

type MockScoringService struct {
	mock.Mock
}

func (m *MockScoringService) ScoreAttempt(ctx context.Context, attemptID string) ([]*domain.Score, error) {
	args := m.Called(ctx, attemptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Score), args.Error(1)
}

// --- MockInterpretationService ---

type MockInterpretationService struct {
	mock.Mock
}

func (m *MockInterpretationService) GetInterpretation(ctx context.Context, studentID, attemptID string) (*dto.InterpretationResponse, error) {
	args := m.Called(ctx, studentID, attemptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.InterpretationResponse), args.Error(1)
}

func (m *MockInterpretationService) GenerateForAttempt(ctx context.Context, attemptID string) error {
	args := m.Called(ctx, attemptID)
	return args.Error(0)
}

// --- fakeTxManager runs the function directly, without a database. ---

type fakeTxManager struct{}

func (fakeTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
