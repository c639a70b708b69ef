package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"careerpath/internal/cache"
	"careerpath/internal/domain"
	"careerpath/internal/dto"
	"careerpath/internal/logger"
)

// Interpretation readiness surfaced by the API.
const (
	InterpretationReady      = "READY"
	InterpretationProcessing = "PROCESSING"
)

// InterpretationService produces and serves the narrative result of a
// completed attempt. The narrative is generated at most once and cached;
// a read that finds neither a stored nor a generatable narrative reports
// PROCESSING so the client retries.
type InterpretationService interface {
	GetInterpretation(ctx context.Context, studentID, attemptID string) (*dto.InterpretationResponse, error)
	// GenerateForAttempt creates and stores the narrative if absent. Safe to
	// call concurrently; the unique constraint on attempt_id deduplicates.
	GenerateForAttempt(ctx context.Context, attemptID string) error
}

type interpretationService struct {
	attemptRepo domain.AttemptRepository
	scoreRepo   domain.ScoreRepository
	interpRepo  domain.InterpretationRepository
	generator   domain.InterpretationGenerator
	cache       domain.Cache
	cacheTTL    time.Duration
}

// NewInterpretationService creates a new interpretation service.
func NewInterpretationService(
	attemptRepo domain.AttemptRepository,
	scoreRepo domain.ScoreRepository,
	interpRepo domain.InterpretationRepository,
	generator domain.InterpretationGenerator,
	cacheClient domain.Cache,
	cacheTTL time.Duration,
) InterpretationService {
	return &interpretationService{
		attemptRepo: attemptRepo,
		scoreRepo:   scoreRepo,
		interpRepo:  interpRepo,
		generator:   generator,
		cache:       cacheClient,
		cacheTTL:    cacheTTL,
	}
}

// GetInterpretation implements InterpretationService.
func (s *interpretationService) GetInterpretation(ctx context.Context, studentID, attemptID string) (*dto.InterpretationResponse, error) {
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
	if attempt.Status != domain.AttemptCompleted {
		return nil, domain.NewValidationError("Test attempt is not completed")
	}

	cacheKey := cache.GenerateCacheKey("interpretation", "result", attemptID)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
			var resp dto.InterpretationResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return &resp, nil
			}
		} else if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Interpretation cache read failed",
				zap.String("attempt_id", attemptID), zap.Error(err))
		}
	}

	overall, dimensions, err := s.loadScores(ctx, attemptID)
	if err != nil {
		return nil, err
	}

	result, err := s.interpRepo.GetByAttempt(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if result == nil {
		result, err = s.generate(ctx, attemptID, overall, dimensions)
		if err != nil {
			logger.Get().Warn("Narrative generation failed, reporting processing",
				zap.String("attempt_id", attemptID), zap.Error(err))
			return &dto.InterpretationResponse{
				TestAttemptID:   attemptID,
				Status:          InterpretationProcessing,
				OverallScore:    overall,
				DimensionScores: dimensions,
			}, nil
		}
	}

	resp := &dto.InterpretationResponse{
		TestAttemptID:   attemptID,
		Status:          InterpretationReady,
		OverallScore:    result.OverallScore,
		DimensionScores: dimensions,
		ReadinessStatus: result.ReadinessStatus,
		RiskLevel:       result.RiskLevel,
		Narrative:       result.Narrative,
	}
	if s.cache != nil {
		if payload, err := json.Marshal(resp); err == nil {
			if err := s.cache.Set(ctx, cacheKey, string(payload), s.cacheTTL); err != nil {
				logger.Get().Warn("Interpretation cache write failed",
					zap.String("attempt_id", attemptID), zap.Error(err))
			}
		}
	}
	return resp, nil
}

// GenerateForAttempt implements InterpretationService.
func (s *interpretationService) GenerateForAttempt(ctx context.Context, attemptID string) error {
	existing, err := s.interpRepo.GetByAttempt(ctx, attemptID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	overall, dimensions, err := s.loadScores(ctx, attemptID)
	if err != nil {
		return err
	}
	_, err = s.generate(ctx, attemptID, overall, dimensions)
	return err
}

func (s *interpretationService) generate(ctx context.Context, attemptID string, overall float64, dimensions map[string]float64) (*domain.InterpretedResult, error) {
	readiness := CalculateReadinessStatus(overall)
	risk := CalculateRiskLevel(overall)

	narrative, err := s.generator.GenerateNarrative(ctx, domain.InterpretationInput{
		AttemptID:       attemptID,
		OverallScore:    overall,
		DimensionScores: dimensions,
		ReadinessStatus: readiness,
		RiskLevel:       risk,
	})
	if err != nil {
		return nil, domain.NewLLMServiceError(err)
	}

	result := &domain.InterpretedResult{
		AttemptID:       attemptID,
		Narrative:       narrative,
		ReadinessStatus: readiness,
		RiskLevel:       risk,
		OverallScore:    overall,
	}
	err = s.interpRepo.Create(ctx, result)
	if errors.Is(err, domain.ErrDuplicateRow) {
		// A concurrent generation stored its narrative first; keep that one.
		return s.interpRepo.GetByAttempt(ctx, attemptID)
	}
	if err != nil {
		return nil, err
	}
	logger.Get().Info("Narrative generated",
		zap.String("attempt_id", attemptID),
		zap.String("readiness", readiness))
	return result, nil
}

// loadScores returns the overall percentage and the per-dimension map. An
// attempt with no overall score has not finished scoring yet.
func (s *interpretationService) loadScores(ctx context.Context, attemptID string) (float64, map[string]float64, error) {
	scores, err := s.scoreRepo.GetByAttempt(ctx, attemptID)
	if err != nil {
		return 0, nil, err
	}
	var overall *float64
	dimensions := make(map[string]float64, len(scores))
	for _, score := range scores {
		if score.Dimension == domain.OverallDimension {
			v := score.ScoreValue
			overall = &v
			continue
		}
		dimensions[score.Dimension] = score.ScoreValue
	}
	if overall == nil {
		return 0, nil, domain.NewError(domain.CodeInterpretationPending,
			"Scores are not available for this attempt yet", nil).
			WithContext("attempt_id", attemptID)
	}
	return *overall, dimensions, nil
}
