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

// SectionService exposes the section list with gating statuses, the served
// question set, and the per-section timer state machine. Every operation is
// scoped to the caller's single in-progress attempt.
type SectionService interface {
	ListSections(ctx context.Context, studentID string) (*dto.SectionListResponse, error)
	GetSectionQuestions(ctx context.Context, studentID, sectionID string) (*dto.SectionQuestionsResponse, error)
	StartSection(ctx context.Context, studentID, sectionID string) (*dto.TimerResponse, error)
	PauseSection(ctx context.Context, studentID, sectionID string) (*dto.TimerResponse, error)
	ResumeSection(ctx context.Context, studentID, sectionID string) (*dto.TimerResponse, error)
	ReadTimer(ctx context.Context, studentID, sectionID string) (*dto.TimerResponse, error)
}

type sectionService struct {
	sectionRepo   domain.SectionRepository
	progressRepo  domain.SectionProgressRepository
	attemptRepo   domain.AttemptRepository
	assignmentSvc AssignmentService
	cache         domain.Cache
	catalogTTL    time.Duration
}

// NewSectionService creates a new section service. The section catalog is
// fixed after seeding, so reads go through the cache with catalogTTL.
func NewSectionService(
	sectionRepo domain.SectionRepository,
	progressRepo domain.SectionProgressRepository,
	attemptRepo domain.AttemptRepository,
	assignmentSvc AssignmentService,
	cacheClient domain.Cache,
	catalogTTL time.Duration,
) SectionService {
	return &sectionService{
		sectionRepo:   sectionRepo,
		progressRepo:  progressRepo,
		attemptRepo:   attemptRepo,
		assignmentSvc: assignmentSvc,
		cache:         cacheClient,
		catalogTTL:    catalogTTL,
	}
}

// activeSections reads the section catalog through the cache.
func (s *sectionService) activeSections(ctx context.Context) ([]*domain.Section, error) {
	cacheKey := cache.GenerateCacheKey("section", "catalog", "all")
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
			var sections []*domain.Section
			if json.Unmarshal([]byte(cached), &sections) == nil {
				return sections, nil
			}
		} else if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Section catalog cache read failed", zap.Error(err))
		}
	}

	sections, err := s.sectionRepo.GetActiveSections(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if payload, err := json.Marshal(sections); err == nil {
			if err := s.cache.Set(ctx, cacheKey, string(payload), s.catalogTTL); err != nil {
				logger.Get().Warn("Section catalog cache write failed", zap.Error(err))
			}
		}
	}
	return sections, nil
}

// ListSections implements SectionService. Section 1 is never locked; every
// later section is available only once all lower-ordered sections are
// completed within the current attempt.
func (s *sectionService) ListSections(ctx context.Context, studentID string) (*dto.SectionListResponse, error) {
	sections, err := s.activeSections(ctx)
	if err != nil {
		return nil, err
	}

	completed, err := s.attemptRepo.GetCompletedByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	attempt, err := s.attemptRepo.GetInProgressByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	progressByID := make(map[string]*domain.SectionProgress)
	if attempt != nil {
		rows, err := s.progressRepo.GetByAttempt(ctx, attempt.ID)
		if err != nil {
			return nil, err
		}
		for _, p := range rows {
			progressByID[p.SectionID] = p
		}
	}

	resp := &dto.SectionListResponse{
		Sections:       make([]dto.SectionStatusItem, 0, len(sections)),
		CanAttemptTest: completed == nil,
	}
	if attempt != nil {
		resp.CurrentSection = attempt.CurrentSectionID
	}

	priorComplete := true
	for _, section := range sections {
		item := dto.SectionStatusItem{
			ID:            section.ID,
			Name:          section.Name,
			QuestionCount: domain.QuestionsPerSection,
			TimeLimit:     domain.SectionTimeLimitSeconds,
			OrderIndex:    section.OrderIndex,
		}
		progress := progressByID[section.ID]
		switch {
		case progress != nil && progress.Status == domain.ProgressCompleted:
			item.Status = dto.SectionCompleted
		case progress != nil && progress.Status == domain.ProgressInProgress:
			item.Status = dto.SectionInProgress
		case priorComplete:
			item.Status = dto.SectionAvailable
		default:
			item.Status = dto.SectionLocked
		}
		priorComplete = priorComplete && progress != nil && progress.Status == domain.ProgressCompleted
		resp.Sections = append(resp.Sections, item)
	}
	return resp, nil
}

// GetSectionQuestions implements SectionService. The first call fixes the
// question set for the (attempt, section) pair; repeats serve the same set.
func (s *sectionService) GetSectionQuestions(ctx context.Context, studentID, sectionID string) (*dto.SectionQuestionsResponse, error) {
	attempt, section, err := s.resolve(ctx, studentID, sectionID)
	if err != nil {
		return nil, err
	}
	if err := s.requireUnlocked(ctx, attempt.ID, section); err != nil {
		return nil, err
	}

	questions, err := s.assignmentSvc.GetOrAssignQuestions(ctx, attempt, sectionID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.QuestionItem, 0, len(questions))
	for _, q := range questions {
		options := make([]dto.OptionItem, 0, len(q.Options))
		for _, o := range q.Options {
			options = append(options, dto.OptionItem{Key: o.Key, Text: o.Text})
		}
		items = append(items, dto.QuestionItem{
			QuestionID:   q.ID,
			QuestionText: q.Text,
			Options:      options,
		})
	}
	return &dto.SectionQuestionsResponse{
		SectionID: sectionID,
		Questions: items,
		TimeLimit: domain.SectionTimeLimitSeconds,
	}, nil
}

// StartSection implements SectionService. Starting a fresh section opens its
// timer with a full budget; starting a paused one counts the pause gap as
// time spent before the clock restarts. Starting a running section is a
// no-op that reports the current timer.
func (s *sectionService) StartSection(ctx context.Context, studentID, sectionID string) (*dto.TimerResponse, error) {
	attempt, section, err := s.resolve(ctx, studentID, sectionID)
	if err != nil {
		return nil, err
	}
	if err := s.requireUnlocked(ctx, attempt.ID, section); err != nil {
		return nil, err
	}

	now := time.Now()
	progress, err := s.progressRepo.Get(ctx, attempt.ID, sectionID)
	if err != nil {
		return nil, err
	}

	if progress == nil {
		progress = &domain.SectionProgress{
			AttemptID:        attempt.ID,
			SectionID:        sectionID,
			Status:           domain.ProgressInProgress,
			SectionStartTime: &now,
		}
		err = s.progressRepo.Create(ctx, progress)
		if errors.Is(err, domain.ErrDuplicateRow) {
			// A concurrent start won the insert; adopt its row.
			progress, err = s.progressRepo.Get(ctx, attempt.ID, sectionID)
			if err != nil {
				return nil, err
			}
		} else if err != nil {
			return nil, err
		} else {
			if err := s.attemptRepo.UpdateSectionPointer(ctx, attempt.ID, sectionID, 0, domain.SectionTimeLimitSeconds); err != nil {
				return nil, err
			}
			logger.Get().Info("Section started",
				zap.String("attempt_id", attempt.ID),
				zap.String("section_id", sectionID))
			return timerResponse(progress, now), nil
		}
	}

	switch {
	case progress.Status == domain.ProgressCompleted:
		return nil, domain.NewError(domain.CodeSectionAlreadyCompleted, "Section is already completed", nil).
			WithContext("section_id", sectionID)
	case progress.PausedAt != nil:
		progress.TotalTimeSpent = capTotal(progress.TotalTimeSpent + int(now.Sub(*progress.PausedAt).Seconds()))
		progress.SectionStartTime = &now
		progress.PausedAt = nil
		if err := s.progressRepo.Update(ctx, progress); err != nil {
			return nil, err
		}
		if err := s.attemptRepo.UpdateRemainingTime(ctx, attempt.ID, remainingOf(progress.TotalTimeSpent)); err != nil {
			return nil, err
		}
	}
	return timerResponse(progress, now), nil
}

// PauseSection implements SectionService. Pausing folds the running stretch
// into total_time_spent and snapshots the remaining budget on the attempt so
// a resume after a restart recovers the same clock.
func (s *sectionService) PauseSection(ctx context.Context, studentID, sectionID string) (*dto.TimerResponse, error) {
	attempt, _, err := s.resolve(ctx, studentID, sectionID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	progress, err := s.progressRepo.Get(ctx, attempt.ID, sectionID)
	if err != nil {
		return nil, err
	}
	switch {
	case progress == nil:
		return nil, domain.NewError(domain.CodeSectionNotStarted, "Section has not been started", nil).
			WithContext("section_id", sectionID)
	case progress.Status == domain.ProgressCompleted:
		return nil, domain.NewError(domain.CodeSectionAlreadyCompleted, "Section is already completed", nil).
			WithContext("section_id", sectionID)
	case progress.PausedAt != nil:
		return nil, domain.NewError(domain.CodeSectionAlreadyPaused, "Section timer is already paused", nil).
			WithContext("section_id", sectionID)
	case progress.SectionStartTime == nil:
		return nil, domain.NewError(domain.CodeSectionNotStarted, "Section timer is not running", nil).
			WithContext("section_id", sectionID)
	}

	progress.TotalTimeSpent = capTotal(progress.TotalTimeSpent + int(now.Sub(*progress.SectionStartTime).Seconds()))
	progress.SectionStartTime = nil
	progress.PausedAt = &now
	if err := s.progressRepo.Update(ctx, progress); err != nil {
		return nil, err
	}
	if err := s.attemptRepo.UpdateRemainingTime(ctx, attempt.ID, remainingOf(progress.TotalTimeSpent)); err != nil {
		return nil, err
	}
	return timerResponse(progress, now), nil
}

// ResumeSection implements SectionService. The total is recomputed from the
// attempt's remaining-time snapshot rather than the progress row, making the
// snapshot authoritative across process restarts.
func (s *sectionService) ResumeSection(ctx context.Context, studentID, sectionID string) (*dto.TimerResponse, error) {
	attempt, _, err := s.resolve(ctx, studentID, sectionID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	progress, err := s.progressRepo.Get(ctx, attempt.ID, sectionID)
	if err != nil {
		return nil, err
	}
	switch {
	case progress == nil:
		return nil, domain.NewError(domain.CodeSectionNotStarted, "Section has not been started", nil).
			WithContext("section_id", sectionID)
	case progress.Status == domain.ProgressCompleted:
		return nil, domain.NewError(domain.CodeSectionAlreadyCompleted, "Section is already completed", nil).
			WithContext("section_id", sectionID)
	case progress.PausedAt == nil:
		return nil, domain.NewError(domain.CodeSectionNotPaused, "Section timer is not paused", nil).
			WithContext("section_id", sectionID)
	}

	progress.TotalTimeSpent = domain.SectionTimeLimitSeconds - attempt.RemainingTimeSeconds
	progress.SectionStartTime = &now
	progress.PausedAt = nil
	if err := s.progressRepo.Update(ctx, progress); err != nil {
		return nil, err
	}
	return timerResponse(progress, now), nil
}

// ReadTimer implements SectionService. Reading past the time limit completes
// the section as a side effect, so an expired timer can never be resumed.
func (s *sectionService) ReadTimer(ctx context.Context, studentID, sectionID string) (*dto.TimerResponse, error) {
	attempt, _, err := s.resolve(ctx, studentID, sectionID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	progress, err := s.progressRepo.Get(ctx, attempt.ID, sectionID)
	if err != nil {
		return nil, err
	}
	if progress == nil {
		return &dto.TimerResponse{
			Status:      domain.ProgressNotStarted,
			CurrentTime: now,
		}, nil
	}

	total := effectiveTotal(progress, now)
	// Only a running clock expires; a paused section holds its total until
	// it is resumed.
	if progress.Status == domain.ProgressInProgress && progress.Running() && total >= domain.SectionTimeLimitSeconds {
		progress.Status = domain.ProgressCompleted
		progress.TotalTimeSpent = domain.SectionTimeLimitSeconds
		progress.SectionStartTime = nil
		progress.PausedAt = nil
		if err := s.progressRepo.Update(ctx, progress); err != nil {
			return nil, err
		}
		if err := s.attemptRepo.UpdateRemainingTime(ctx, attempt.ID, 0); err != nil {
			return nil, err
		}
		logger.Get().Info("Section timer expired",
			zap.String("attempt_id", attempt.ID),
			zap.String("section_id", sectionID))
	}
	return timerResponse(progress, now), nil
}

// resolve loads the caller's in-progress attempt and the target section.
func (s *sectionService) resolve(ctx context.Context, studentID, sectionID string) (*domain.TestAttempt, *domain.Section, error) {
	attempt, err := s.attemptRepo.GetInProgressByStudent(ctx, studentID)
	if err != nil {
		return nil, nil, err
	}
	if attempt == nil {
		return nil, nil, domain.NewError(domain.CodeNotInProgress, "No test attempt in progress", nil)
	}
	section, err := s.sectionRepo.GetByID(ctx, sectionID)
	if err != nil {
		return nil, nil, err
	}
	if section == nil {
		return nil, nil, domain.NewSectionNotFoundError(sectionID)
	}
	return attempt, section, nil
}

// requireUnlocked enforces order gating: every section with a lower order
// index must be completed. The first section has no predecessors and is
// therefore never locked.
func (s *sectionService) requireUnlocked(ctx context.Context, attemptID string, section *domain.Section) error {
	if section.OrderIndex <= 1 {
		return nil
	}
	sections, err := s.activeSections(ctx)
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
	for _, prior := range sections {
		if prior.OrderIndex >= section.OrderIndex {
			continue
		}
		if !completedByID[prior.ID] {
			return domain.NewSectionLockedError(section.ID)
		}
	}
	return nil
}

// effectiveTotal is the total time spent including the running stretch.
func effectiveTotal(progress *domain.SectionProgress, now time.Time) int {
	total := progress.TotalTimeSpent
	if progress.Running() {
		total += int(now.Sub(*progress.SectionStartTime).Seconds())
	}
	return capTotal(total)
}

// capTotal clamps a folded total at the section time limit; stored rows
// never exceed it no matter how long a session was left open.
func capTotal(total int) int {
	if total > domain.SectionTimeLimitSeconds {
		return domain.SectionTimeLimitSeconds
	}
	return total
}

func remainingOf(totalTimeSpent int) int {
	remaining := domain.SectionTimeLimitSeconds - totalTimeSpent
	if remaining < 0 {
		return 0
	}
	return remaining
}

func timerResponse(progress *domain.SectionProgress, now time.Time) *dto.TimerResponse {
	return &dto.TimerResponse{
		Status:         progress.Status,
		TotalTimeSpent: effectiveTotal(progress, now),
		IsPaused:       progress.PausedAt != nil,
		CurrentTime:    now,
	}
}
