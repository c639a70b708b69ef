package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"careerpath/internal/domain"
	"careerpath/internal/dto"
	"careerpath/internal/logger"
	"careerpath/internal/middleware"
	"careerpath/internal/service"
	"careerpath/internal/validation"
)

// TestHandler serves the student-facing assessment endpoints.
type TestHandler struct {
	attemptService    service.AttemptService
	sectionService    service.SectionService
	submissionService service.SubmissionService
	interpService     service.InterpretationService
	validator         *validation.Validator
}

// NewTestHandler creates a new test handler.
func NewTestHandler(
	attemptService service.AttemptService,
	sectionService service.SectionService,
	submissionService service.SubmissionService,
	interpService service.InterpretationService,
) *TestHandler {
	return &TestHandler{
		attemptService:    attemptService,
		sectionService:    sectionService,
		submissionService: submissionService,
		interpService:     interpService,
		validator:         validation.NewValidator(),
	}
}

// StartTest opens the caller's test attempt.
// @Summary Start a test attempt
// @Description Opens a new attempt, or returns the caller's open one. Fails once a completed attempt exists.
// @Tags test
// @Security BearerAuth
// @Success 201 {object} dto.StartTestResponse
// @Failure 400 {object} middleware.ErrorResponse "Student already completed the test"
// @Failure 400 {object} middleware.ErrorResponse "A section lacks enough approved questions"
// @Router /test/start [post]
func (h *TestHandler) StartTest(c *fiber.Ctx) error {
	resp, err := h.attemptService.Start(c.Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetSections lists the sections with their gating statuses.
// @Summary List test sections
// @Tags test
// @Security BearerAuth
// @Success 200 {object} dto.SectionListResponse
// @Router /test/sections [get]
func (h *TestHandler) GetSections(c *fiber.Ctx) error {
	resp, err := h.sectionService.ListSections(c.Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetSectionQuestions serves the section's assigned question set.
// @Summary Get section questions
// @Description The first call fixes the question set for the attempt; repeats return the same set.
// @Tags test
// @Security BearerAuth
// @Param sectionId path string true "Section ID"
// @Success 200 {object} dto.SectionQuestionsResponse
// @Failure 403 {object} middleware.ErrorResponse "Section is locked"
// @Failure 400 {object} middleware.ErrorResponse "Not enough eligible questions"
// @Router /test/sections/{sectionId}/questions [get]
func (h *TestHandler) GetSectionQuestions(c *fiber.Ctx) error {
	sectionID := c.Params("sectionId")
	if errs := h.validator.ValidateSectionID(sectionID); len(errs) > 0 {
		return errs
	}
	resp, err := h.sectionService.GetSectionQuestions(c.Context(), middleware.UserID(c), sectionID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// StartSection starts or restarts the section timer.
// @Summary Start a section timer
// @Tags test
// @Security BearerAuth
// @Param sectionId path string true "Section ID"
// @Success 200 {object} dto.TimerResponse
// @Failure 403 {object} middleware.ErrorResponse "Section is locked"
// @Failure 400 {object} middleware.ErrorResponse "Section already completed"
// @Router /test/sections/{sectionId}/start [post]
func (h *TestHandler) StartSection(c *fiber.Ctx) error {
	sectionID := c.Params("sectionId")
	if errs := h.validator.ValidateSectionID(sectionID); len(errs) > 0 {
		return errs
	}
	resp, err := h.sectionService.StartSection(c.Context(), middleware.UserID(c), sectionID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// PauseSection pauses the running section timer.
// @Summary Pause a section timer
// @Tags test
// @Security BearerAuth
// @Param sectionId path string true "Section ID"
// @Success 200 {object} dto.TimerResponse
// @Failure 400 {object} middleware.ErrorResponse "Timer is not running"
// @Router /test/sections/{sectionId}/pause [post]
func (h *TestHandler) PauseSection(c *fiber.Ctx) error {
	sectionID := c.Params("sectionId")
	if errs := h.validator.ValidateSectionID(sectionID); len(errs) > 0 {
		return errs
	}
	resp, err := h.sectionService.PauseSection(c.Context(), middleware.UserID(c), sectionID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ResumeSection resumes a paused section timer.
// @Summary Resume a section timer
// @Tags test
// @Security BearerAuth
// @Param sectionId path string true "Section ID"
// @Success 200 {object} dto.TimerResponse
// @Failure 400 {object} middleware.ErrorResponse "Timer is not paused"
// @Router /test/sections/{sectionId}/resume [post]
func (h *TestHandler) ResumeSection(c *fiber.Ctx) error {
	sectionID := c.Params("sectionId")
	if errs := h.validator.ValidateSectionID(sectionID); len(errs) > 0 {
		return errs
	}
	resp, err := h.sectionService.ResumeSection(c.Context(), middleware.UserID(c), sectionID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetSectionTimer reads the section timer, completing it if expired.
// @Summary Read a section timer
// @Tags test
// @Security BearerAuth
// @Param sectionId path string true "Section ID"
// @Success 200 {object} dto.TimerResponse
// @Router /test/sections/{sectionId}/timer [get]
func (h *TestHandler) GetSectionTimer(c *fiber.Ctx) error {
	sectionID := c.Params("sectionId")
	if errs := h.validator.ValidateSectionID(sectionID); len(errs) > 0 {
		return errs
	}
	resp, err := h.sectionService.ReadTimer(c.Context(), middleware.UserID(c), sectionID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SubmitSection submits the full answer set for a section.
// @Summary Submit a section
// @Description Idempotent: resubmitting a completed section with the same answers succeeds without changes.
// @Tags test
// @Security BearerAuth
// @Param sectionId path string true "Section ID"
// @Param request body dto.SubmitSectionRequest true "Answers for every assigned question"
// @Success 200 {object} dto.SubmitSectionResponse
// @Failure 400 {object} middleware.ErrorResponse "Answer count mismatch or foreign question"
// @Router /test/sections/{sectionId}/submit [post]
func (h *TestHandler) SubmitSection(c *fiber.Ctx) error {
	sectionID := c.Params("sectionId")
	if errs := h.validator.ValidateSectionID(sectionID); len(errs) > 0 {
		return errs
	}
	var req dto.SubmitSectionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("Invalid request body")
	}
	if errs := h.validator.ValidateSubmitSectionRequest(&req); len(errs) > 0 {
		return errs
	}
	resp, err := h.submissionService.Submit(c.Context(), middleware.UserID(c), sectionID, &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SaveAnswer stores a single in-flight answer.
// @Summary Save one answer
// @Description The only path that may overwrite an existing answer.
// @Tags test
// @Security BearerAuth
// @Param request body dto.SaveAnswerRequest true "Answer to save"
// @Success 200 {object} map[string]string
// @Router /test/save-answer [post]
func (h *TestHandler) SaveAnswer(c *fiber.Ctx) error {
	var req dto.SaveAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("Invalid request body")
	}
	if errs := h.validator.ValidateSaveAnswerRequest(&req); len(errs) > 0 {
		return errs
	}
	if err := h.submissionService.SaveAnswer(c.Context(), middleware.UserID(c), &req); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "saved"})
}

// CompleteTest finalizes the attempt and triggers scoring.
// @Summary Complete the test attempt
// @Tags test
// @Security BearerAuth
// @Param attemptId path string true "Attempt ID"
// @Param auto_submit query boolean false "Client-initiated vs timer-driven completion (informational)"
// @Success 200 {object} dto.CompleteTestResponse
// @Failure 400 {object} middleware.ErrorResponse "Sections incomplete"
// @Failure 400 {object} middleware.ErrorResponse "Unanswered assigned questions"
// @Router /test/{attemptId}/complete [post]
func (h *TestHandler) CompleteTest(c *fiber.Ctx) error {
	attemptID := c.Params("attemptId")
	if errs := h.validator.ValidateAttemptID(attemptID); len(errs) > 0 {
		return errs
	}
	// auto_submit only distinguishes client-initiated from timer-driven
	// completion in logs; the completion rules are identical.
	logger.Get().Debug("Complete requested",
		zap.String("attempt_id", attemptID),
		zap.Bool("auto_submit", c.QueryBool("auto_submit")))
	resp, err := h.attemptService.Complete(c.Context(), middleware.UserID(c), attemptID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetState returns the UI-resume snapshot of an attempt.
// @Summary Get attempt state
// @Tags test
// @Security BearerAuth
// @Param attemptId path string true "Attempt ID"
// @Success 200 {object} dto.AttemptStateResponse
// @Router /test/{attemptId}/state [get]
func (h *TestHandler) GetState(c *fiber.Ctx) error {
	attemptID := c.Params("attemptId")
	if errs := h.validator.ValidateAttemptID(attemptID); len(errs) > 0 {
		return errs
	}
	resp, err := h.attemptService.GetState(c.Context(), middleware.UserID(c), attemptID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetProgress returns per-section progress of an attempt.
// @Summary Get attempt progress
// @Tags test
// @Security BearerAuth
// @Param attemptId path string true "Attempt ID"
// @Success 200 {object} dto.AttemptProgressResponse
// @Router /test/{attemptId}/progress [get]
func (h *TestHandler) GetProgress(c *fiber.Ctx) error {
	attemptID := c.Params("attemptId")
	if errs := h.validator.ValidateAttemptID(attemptID); len(errs) > 0 {
		return errs
	}
	resp, err := h.attemptService.GetProgress(c.Context(), middleware.UserID(c), attemptID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetStatus returns the lifecycle status of an attempt.
// @Summary Get attempt status
// @Tags test
// @Security BearerAuth
// @Param attemptId path string true "Attempt ID"
// @Success 200 {object} dto.AttemptStatusResponse
// @Router /test/{attemptId}/status [get]
func (h *TestHandler) GetStatus(c *fiber.Ctx) error {
	attemptID := c.Params("attemptId")
	if errs := h.validator.ValidateAttemptID(attemptID); len(errs) > 0 {
		return errs
	}
	resp, err := h.attemptService.GetStatus(c.Context(), middleware.UserID(c), attemptID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetInterpretation returns the narrative result of a completed attempt.
// Students read their own report; counsellors can read any student's.
// @Summary Get attempt interpretation
// @Description Returns 202 with status PROCESSING while the narrative is not available yet; clients should retry. Counsellors can read any student's report.
// @Tags test
// @Security BearerAuth
// @Param attemptId path string true "Attempt ID"
// @Success 200 {object} dto.InterpretationResponse
// @Success 202 {object} dto.InterpretationResponse "Narrative still processing"
// @Router /test/interpretation/{attemptId} [get]
func (h *TestHandler) GetInterpretation(c *fiber.Ctx) error {
	attemptID := c.Params("attemptId")
	if errs := h.validator.ValidateAttemptID(attemptID); len(errs) > 0 {
		return errs
	}
	studentID := middleware.UserID(c)
	if middleware.Role(c) == domain.RoleCounsellor {
		// A counsellor is not the attempt's owner; skip the ownership check.
		studentID = ""
	}
	resp, err := h.interpService.GetInterpretation(c.Context(), studentID, attemptID)
	if err != nil {
		return err
	}
	if resp.Status == service.InterpretationProcessing {
		return c.Status(fiber.StatusAccepted).JSON(resp)
	}
	return c.JSON(resp)
}
