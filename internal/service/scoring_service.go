package service

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"careerpath/internal/domain"
	"careerpath/internal/logger"
)

// optionOrdinals maps a selected option letter onto the 1-5 scale. Likert
// items use this directly; multiple-choice items go through the same table
// rather than a correctness check (observed behavior of the assessment,
// kept pending product clarification).
var optionOrdinals = map[string]int{
	"A": 1,
	"B": 2,
	"C": 3,
	"D": 4,
	"E": 5,
}

// Readiness and risk classifications derived from the overall percentage.
const (
	ReadinessReady      = "READY"
	ReadinessDeveloping = "DEVELOPING"
	ReadinessNotReady   = "NOT_READY"

	RiskLow      = "LOW"
	RiskModerate = "MODERATE"
	RiskHigh     = "HIGH"
)

// CalculateReadinessStatus maps the overall percentage to a readiness
// label with the 80/60 thresholds the interpretation layer consumes.
func CalculateReadinessStatus(overall float64) string {
	switch {
	case overall >= 80:
		return ReadinessReady
	case overall >= 60:
		return ReadinessDeveloping
	default:
		return ReadinessNotReady
	}
}

// CalculateRiskLevel maps the overall percentage to a risk label.
func CalculateRiskLevel(overall float64) string {
	switch {
	case overall >= 60:
		return RiskLow
	case overall >= 40:
		return RiskModerate
	default:
		return RiskHigh
	}
}

// ScoringService computes and persists dimension scores for an attempt.
type ScoringService interface {
	// ScoreAttempt recomputes every score row for the attempt from its
	// full answer set, replacing prior rows wholesale.
	ScoreAttempt(ctx context.Context, attemptID string) ([]*domain.Score, error)
}

type scoringService struct {
	answerRepo   domain.AnswerRepository
	questionRepo domain.QuestionRepository
	sectionRepo  domain.SectionRepository
	scoreRepo    domain.ScoreRepository
	txManager    domain.TransactionManager
}

// NewScoringService creates a new scoring service.
func NewScoringService(
	answerRepo domain.AnswerRepository,
	questionRepo domain.QuestionRepository,
	sectionRepo domain.SectionRepository,
	scoreRepo domain.ScoreRepository,
	txManager domain.TransactionManager,
) ScoringService {
	return &scoringService{
		answerRepo:   answerRepo,
		questionRepo: questionRepo,
		sectionRepo:  sectionRepo,
		scoreRepo:    scoreRepo,
		txManager:    txManager,
	}
}

// ScoreAttempt implements ScoringService. The computation is a pure
// function of the attempt's answer set; persistence is delete-then-insert
// inside one transaction so scores are never a mix of stale and fresh
// dimensions.
func (s *scoringService) ScoreAttempt(ctx context.Context, attemptID string) ([]*domain.Score, error) {
	answers, err := s.answerRepo.GetByAttempt(ctx, attemptID)
	if err != nil {
		return nil, domain.NewScoringFailedError(err)
	}
	if len(answers) == 0 {
		return nil, domain.NewScoringFailedError(fmt.Errorf("attempt %s has no answers", attemptID))
	}

	questionIDs := make([]string, 0, len(answers))
	for _, a := range answers {
		questionIDs = append(questionIDs, a.QuestionID)
	}
	questions, err := s.questionRepo.GetByIDs(ctx, questionIDs)
	if err != nil {
		return nil, domain.NewScoringFailedError(err)
	}
	questionsByID := make(map[string]*domain.Question, len(questions))
	for _, q := range questions {
		questionsByID[q.ID] = q
	}

	sectionDimensions, err := s.sectionDimensions(ctx)
	if err != nil {
		return nil, domain.NewScoringFailedError(err)
	}

	ordinalsByDimension := make(map[string][]int)
	var allOrdinals []int
	for _, answer := range answers {
		question, ok := questionsByID[answer.QuestionID]
		if !ok {
			continue
		}
		ordinal, ok := optionOrdinals[answer.AnswerText]
		if !ok {
			logger.Get().Warn("Skipping answer with unmapped option",
				zap.String("attempt_id", attemptID),
				zap.String("question_id", answer.QuestionID),
				zap.String("option", answer.AnswerText))
			continue
		}

		dimension := sectionDimensions[question.SectionID]
		if dimension == "" {
			dimension = question.Category
		}
		if dimension == "" {
			continue
		}
		ordinalsByDimension[dimension] = append(ordinalsByDimension[dimension], ordinal)
		allOrdinals = append(allOrdinals, ordinal)
	}

	if len(allOrdinals) == 0 {
		return nil, domain.NewScoringFailedError(fmt.Errorf("attempt %s has no scorable answers", attemptID))
	}

	scores := make([]*domain.Score, 0, len(ordinalsByDimension)+1)
	dimensions := make([]string, 0, len(ordinalsByDimension))
	for dimension := range ordinalsByDimension {
		dimensions = append(dimensions, dimension)
	}
	sort.Strings(dimensions)
	for _, dimension := range dimensions {
		scores = append(scores, &domain.Score{
			AttemptID:  attemptID,
			Dimension:  dimension,
			ScoreValue: mean(ordinalsByDimension[dimension]),
		})
	}

	overall := OverallPercentage(mean(allOrdinals))
	scores = append(scores, &domain.Score{
		AttemptID:  attemptID,
		Dimension:  domain.OverallDimension,
		ScoreValue: overall,
	})

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		return s.scoreRepo.ReplaceForAttempt(txCtx, attemptID, scores)
	})
	if err != nil {
		return nil, domain.NewScoringFailedError(err)
	}

	logger.Get().Info("Scored attempt",
		zap.String("attempt_id", attemptID),
		zap.Float64("overall", overall),
		zap.Int("dimensions", len(dimensions)))
	return scores, nil
}

// sectionDimensions maps section id to its "section_<order_index>" key.
func (s *scoringService) sectionDimensions(ctx context.Context) (map[string]string, error) {
	sections, err := s.sectionRepo.GetActiveSections(ctx)
	if err != nil {
		return nil, err
	}
	dims := make(map[string]string, len(sections))
	for _, section := range sections {
		dims[section.ID] = fmt.Sprintf("section_%d", section.OrderIndex)
	}
	return dims, nil
}

// OverallPercentage remaps a 1-5 grand mean onto a 0-100 readiness
// percentage, clamped to the valid range.
func OverallPercentage(grandMean float64) float64 {
	overall := (grandMean - 1) / 4 * 100
	if overall < 0 {
		return 0
	}
	if overall > 100 {
		return 100
	}
	return overall
}

func mean(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}
