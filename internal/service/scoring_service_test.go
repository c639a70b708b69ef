package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"careerpath/internal/domain"
)

func fiveSections() []*domain.Section {
	return []*domain.Section{
		{ID: "01SECTION000000000000000A1", OrderIndex: 1, Name: "Self Awareness", IsActive: true},
		{ID: "01SECTION000000000000000A2", OrderIndex: 2, Name: "Career Knowledge", IsActive: true},
		{ID: "01SECTION000000000000000A3", OrderIndex: 3, Name: "Decision Making", IsActive: true},
		{ID: "01SECTION000000000000000A4", OrderIndex: 4, Name: "Planning Skills", IsActive: true},
		{ID: "01SECTION000000000000000A5", OrderIndex: 5, Name: "Work Readiness", IsActive: true},
	}
}

func scoringFixture(t *testing.T) (*MockAnswerRepository, *MockQuestionRepository, *MockSectionRepository, *MockScoreRepository, ScoringService) {
	t.Helper()
	answerRepo := new(MockAnswerRepository)
	questionRepo := new(MockQuestionRepository)
	sectionRepo := new(MockSectionRepository)
	scoreRepo := new(MockScoreRepository)
	svc := NewScoringService(answerRepo, questionRepo, sectionRepo, scoreRepo, fakeTxManager{})
	return answerRepo, questionRepo, sectionRepo, scoreRepo, svc
}

func TestScoreAttempt_AllMiddleOptions(t *testing.T) {
	answerRepo, questionRepo, sectionRepo, scoreRepo, svc := scoringFixture(t)
	sections := fiveSections()
	attemptID := "01ATTEMPT00000000000000001"

	var answers []*domain.Answer
	var questions []*domain.Question
	var questionIDs []string
	for si, section := range sections {
		for qi := 0; qi < 7; qi++ {
			id := section.ID[:20] + "Q" + string(rune('A'+si)) + string(rune('0'+qi)) + "000"
			questionIDs = append(questionIDs, id)
			questions = append(questions, &domain.Question{ID: id, SectionID: section.ID})
			answers = append(answers, &domain.Answer{AttemptID: attemptID, QuestionID: id, AnswerText: "C"})
		}
	}

	answerRepo.On("GetByAttempt", mock.Anything, attemptID).Return(answers, nil)
	questionRepo.On("GetByIDs", mock.Anything, questionIDs).Return(questions, nil)
	sectionRepo.On("GetActiveSections", mock.Anything).Return(sections, nil)
	scoreRepo.On("ReplaceForAttempt", mock.Anything, attemptID, mock.Anything).Return(nil)

	scores, err := svc.ScoreAttempt(context.Background(), attemptID)
	assert.NoError(t, err)
	// 5 section dimensions plus the overall row.
	assert.Len(t, scores, 6)

	byDimension := make(map[string]float64)
	for _, s := range scores {
		byDimension[s.Dimension] = s.ScoreValue
	}
	for i := 1; i <= 5; i++ {
		assert.InDelta(t, 3.0, byDimension["section_"+string(rune('0'+i))], 0.0001)
	}
	// A grand mean of 3 on the 1-5 scale remaps to exactly 50 percent.
	assert.InDelta(t, 50.0, byDimension[domain.OverallDimension], 0.0001)

	scoreRepo.AssertCalled(t, "ReplaceForAttempt", mock.Anything, attemptID, mock.Anything)
}

func TestScoreAttempt_CategoryFallbackDimension(t *testing.T) {
	answerRepo, questionRepo, sectionRepo, scoreRepo, svc := scoringFixture(t)
	attemptID := "01ATTEMPT00000000000000002"

	answers := []*domain.Answer{
		{AttemptID: attemptID, QuestionID: "q1", AnswerText: "A"},
		{AttemptID: attemptID, QuestionID: "q2", AnswerText: "E"},
	}
	questions := []*domain.Question{
		{ID: "q1", SectionID: "unknown-section", Category: "communication"},
		{ID: "q2", SectionID: "unknown-section", Category: "communication"},
	}

	answerRepo.On("GetByAttempt", mock.Anything, attemptID).Return(answers, nil)
	questionRepo.On("GetByIDs", mock.Anything, []string{"q1", "q2"}).Return(questions, nil)
	sectionRepo.On("GetActiveSections", mock.Anything).Return(fiveSections(), nil)
	scoreRepo.On("ReplaceForAttempt", mock.Anything, attemptID, mock.Anything).Return(nil)

	scores, err := svc.ScoreAttempt(context.Background(), attemptID)
	assert.NoError(t, err)

	byDimension := make(map[string]float64)
	for _, s := range scores {
		byDimension[s.Dimension] = s.ScoreValue
	}
	assert.InDelta(t, 3.0, byDimension["communication"], 0.0001)
	assert.InDelta(t, 50.0, byDimension[domain.OverallDimension], 0.0001)
}

func TestScoreAttempt_SkipsUnmappedOptions(t *testing.T) {
	answerRepo, questionRepo, sectionRepo, scoreRepo, svc := scoringFixture(t)
	attemptID := "01ATTEMPT00000000000000003"
	sections := fiveSections()

	answers := []*domain.Answer{
		{AttemptID: attemptID, QuestionID: "q1", AnswerText: "E"},
		{AttemptID: attemptID, QuestionID: "q2", AnswerText: "X"},
	}
	questions := []*domain.Question{
		{ID: "q1", SectionID: sections[0].ID},
		{ID: "q2", SectionID: sections[0].ID},
	}

	answerRepo.On("GetByAttempt", mock.Anything, attemptID).Return(answers, nil)
	questionRepo.On("GetByIDs", mock.Anything, []string{"q1", "q2"}).Return(questions, nil)
	sectionRepo.On("GetActiveSections", mock.Anything).Return(sections, nil)
	scoreRepo.On("ReplaceForAttempt", mock.Anything, attemptID, mock.Anything).Return(nil)

	scores, err := svc.ScoreAttempt(context.Background(), attemptID)
	assert.NoError(t, err)

	byDimension := make(map[string]float64)
	for _, s := range scores {
		byDimension[s.Dimension] = s.ScoreValue
	}
	// The unmapped option is ignored; only the E answer counts.
	assert.InDelta(t, 5.0, byDimension["section_1"], 0.0001)
	assert.InDelta(t, 100.0, byDimension[domain.OverallDimension], 0.0001)
}

func TestScoreAttempt_NoAnswersFails(t *testing.T) {
	answerRepo, _, _, _, svc := scoringFixture(t)
	attemptID := "01ATTEMPT00000000000000004"

	answerRepo.On("GetByAttempt", mock.Anything, attemptID).Return([]*domain.Answer{}, nil)

	_, err := svc.ScoreAttempt(context.Background(), attemptID)
	assert.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.CodeScoringFailed))
}

func TestOverallPercentage_Clamps(t *testing.T) {
	assert.Equal(t, 0.0, OverallPercentage(1.0))
	assert.Equal(t, 100.0, OverallPercentage(5.0))
	assert.Equal(t, 0.0, OverallPercentage(0.5))
	assert.InDelta(t, 25.0, OverallPercentage(2.0), 0.0001)
}

func TestCalculateReadinessStatus(t *testing.T) {
	assert.Equal(t, ReadinessReady, CalculateReadinessStatus(80))
	assert.Equal(t, ReadinessReady, CalculateReadinessStatus(95.5))
	assert.Equal(t, ReadinessDeveloping, CalculateReadinessStatus(79.9))
	assert.Equal(t, ReadinessDeveloping, CalculateReadinessStatus(60))
	assert.Equal(t, ReadinessNotReady, CalculateReadinessStatus(59.9))
	assert.Equal(t, ReadinessNotReady, CalculateReadinessStatus(0))
}

func TestCalculateRiskLevel(t *testing.T) {
	assert.Equal(t, RiskLow, CalculateRiskLevel(60))
	assert.Equal(t, RiskModerate, CalculateRiskLevel(40))
	assert.Equal(t, RiskModerate, CalculateRiskLevel(59.9))
	assert.Equal(t, RiskHigh, CalculateRiskLevel(39.9))
}
