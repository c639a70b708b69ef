package handler

import (
	"github.com/gofiber/fiber/v2"

	"careerpath/internal/domain"
	"careerpath/internal/dto"
	"careerpath/internal/service"
	"careerpath/internal/validation"
)

// AdminHandler serves the ADMIN-only curation endpoints.
type AdminHandler struct {
	adminService service.AdminService
	validator    *validation.Validator
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		validator:    validation.NewValidator(),
	}
}

// CreateQuestion adds a pending question to the bank.
// @Summary Create a question
// @Tags admin
// @Security BearerAuth
// @Param request body dto.CreateQuestionRequest true "Question to create"
// @Success 201 {object} dto.CreateQuestionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /admin/questions [post]
func (h *AdminHandler) CreateQuestion(c *fiber.Ctx) error {
	var req dto.CreateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("Invalid request body")
	}
	if errs := h.validator.ValidateCreateQuestionRequest(&req); len(errs) > 0 {
		return errs
	}
	resp, err := h.adminService.CreateQuestion(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// BulkApprove approves a batch of questions atomically.
// @Summary Bulk approve questions
// @Description All-or-nothing: one unknown question id rolls back the whole batch.
// @Tags admin
// @Security BearerAuth
// @Param request body dto.BulkApproveRequest true "Question ids to approve"
// @Success 200 {object} dto.BulkApproveResponse
// @Failure 404 {object} middleware.ErrorResponse "A listed question does not exist"
// @Router /admin/questions/bulk-approve [post]
func (h *AdminHandler) BulkApprove(c *fiber.Ctx) error {
	var req dto.BulkApproveRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("Invalid request body")
	}
	if errs := h.validator.ValidateBulkApproveRequest(&req); len(errs) > 0 {
		return errs
	}
	resp, err := h.adminService.BulkApprove(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// AllowRetake clears a student's completed attempt so they may start again.
// @Summary Allow a student to retake the test
// @Tags admin
// @Security BearerAuth
// @Param studentId path string true "Student ID"
// @Success 200 {object} dto.AllowRetakeResponse
// @Router /admin/students/{studentId}/allow-retake [post]
func (h *AdminHandler) AllowRetake(c *fiber.Ctx) error {
	studentID := c.Params("studentId")
	if studentID == "" {
		return domain.NewMissingFieldError("student_id")
	}
	resp, err := h.adminService.AllowRetake(c.Context(), studentID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
