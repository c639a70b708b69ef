package service

import (
	"context"

	"go.uber.org/zap"

	"careerpath/internal/domain"
	"careerpath/internal/dto"
	"careerpath/internal/logger"
)

// AdminService covers the question-bank curation and retake operations
// reserved for the ADMIN role.
type AdminService interface {
	// BulkApprove flips every listed question to approved. All-or-nothing:
	// one unknown id rolls back the whole batch.
	BulkApprove(ctx context.Context, req *dto.BulkApproveRequest) (*dto.BulkApproveResponse, error)
	CreateQuestion(ctx context.Context, req *dto.CreateQuestionRequest) (*dto.CreateQuestionResponse, error)
	// AllowRetake abandons the student's completed attempt and clears any
	// open one, letting the one-completed-attempt rule pass again.
	AllowRetake(ctx context.Context, studentID string) (*dto.AllowRetakeResponse, error)
}

type adminService struct {
	questionRepo   domain.QuestionRepository
	attemptRepo    domain.AttemptRepository
	assignmentRepo domain.AssignmentRepository
	progressRepo   domain.SectionProgressRepository
	answerRepo     domain.AnswerRepository
	scoreRepo      domain.ScoreRepository
	interpRepo     domain.InterpretationRepository
	txManager      domain.TransactionManager
}

// NewAdminService creates a new admin service.
func NewAdminService(
	questionRepo domain.QuestionRepository,
	attemptRepo domain.AttemptRepository,
	assignmentRepo domain.AssignmentRepository,
	progressRepo domain.SectionProgressRepository,
	answerRepo domain.AnswerRepository,
	scoreRepo domain.ScoreRepository,
	interpRepo domain.InterpretationRepository,
	txManager domain.TransactionManager,
) AdminService {
	return &adminService{
		questionRepo:   questionRepo,
		attemptRepo:    attemptRepo,
		assignmentRepo: assignmentRepo,
		progressRepo:   progressRepo,
		answerRepo:     answerRepo,
		scoreRepo:      scoreRepo,
		interpRepo:     interpRepo,
		txManager:      txManager,
	}
}

// BulkApprove implements AdminService.
func (s *adminService) BulkApprove(ctx context.Context, req *dto.BulkApproveRequest) (*dto.BulkApproveResponse, error) {
	if len(req.QuestionIDs) == 0 {
		return nil, domain.NewValidationError("question_ids must not be empty")
	}

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		for _, id := range req.QuestionIDs {
			if err := s.questionRepo.UpdateStatus(txCtx, id, domain.QuestionApproved); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Info("Questions bulk approved", zap.Int("count", len(req.QuestionIDs)))
	return &dto.BulkApproveResponse{ApprovedCount: len(req.QuestionIDs)}, nil
}

// CreateQuestion implements AdminService. New questions always enter the
// bank as pending and need a later approval before students can see them.
func (s *adminService) CreateQuestion(ctx context.Context, req *dto.CreateQuestionRequest) (*dto.CreateQuestionResponse, error) {
	options := make([]domain.Option, 0, len(req.Options))
	for _, o := range req.Options {
		options = append(options, domain.Option{Key: o.Key, Text: o.Text})
	}
	question := &domain.Question{
		Text:          req.Text,
		Type:          req.Type,
		Options:       options,
		CorrectAnswer: req.CorrectAnswer,
		SectionID:     req.SectionID,
		Category:      req.Category,
		Status:        domain.QuestionPending,
		IsActive:      true,
		OrderIndex:    req.OrderIndex,
	}
	if err := question.Validate(); err != nil {
		return nil, err
	}
	if err := s.questionRepo.CreateQuestion(ctx, question); err != nil {
		return nil, err
	}
	return &dto.CreateQuestionResponse{
		QuestionID: question.ID,
		Status:     question.Status,
	}, nil
}

// AllowRetake implements AdminService. The completed attempt is kept as
// ABANDONED so its question set still feeds the repeat-avoidance exclusion;
// an open attempt and its child rows are removed outright.
func (s *adminService) AllowRetake(ctx context.Context, studentID string) (*dto.AllowRetakeResponse, error) {
	resp := &dto.AllowRetakeResponse{StudentID: studentID}

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		completed, err := s.attemptRepo.GetCompletedByStudent(txCtx, studentID)
		if err != nil {
			return err
		}
		if completed != nil {
			if err := s.attemptRepo.MarkAbandoned(txCtx, completed.ID); err != nil {
				return err
			}
			resp.AbandonedAttempts++
		}

		open, err := s.attemptRepo.GetInProgressByStudent(txCtx, studentID)
		if err != nil {
			return err
		}
		if open != nil {
			if err := s.deleteAttemptRows(txCtx, open.ID); err != nil {
				return err
			}
			resp.DeletedAttempts++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Info("Retake allowed",
		zap.String("student_id", studentID),
		zap.Int("abandoned", resp.AbandonedAttempts),
		zap.Int("deleted", resp.DeletedAttempts))
	return resp, nil
}

func (s *adminService) deleteAttemptRows(ctx context.Context, attemptID string) error {
	if err := s.answerRepo.DeleteByAttempt(ctx, attemptID); err != nil {
		return err
	}
	if err := s.assignmentRepo.DeleteByAttempt(ctx, attemptID); err != nil {
		return err
	}
	if err := s.progressRepo.DeleteByAttempt(ctx, attemptID); err != nil {
		return err
	}
	if err := s.scoreRepo.DeleteByAttempt(ctx, attemptID); err != nil {
		return err
	}
	if err := s.interpRepo.DeleteByAttempt(ctx, attemptID); err != nil {
		return err
	}
	return s.attemptRepo.Delete(ctx, attemptID)
}
