package middleware

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"careerpath/internal/domain"
	"careerpath/internal/logger"
)

// ErrorResponse represents the standard error response structure.
type ErrorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Status  int                    `json:"status"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ValidationErrorResponse carries every failed field of a request.
type ValidationErrorResponse struct {
	Code    string                `json:"code"`
	Message string                `json:"message"`
	Status  int                   `json:"status"`
	Errors  []*domain.DomainError `json:"errors"`
}

// ErrorHandler is the centralized fiber error handler. Every handler and
// middleware returns raw errors; this is the single place that decides
// status codes and response bodies.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		log := logger.Get()

		var validationErrs domain.ValidationErrors
		if errors.As(err, &validationErrs) {
			log.Warn("Request validation failed",
				zap.String("path", c.Path()),
				zap.Int("error_count", len(validationErrs)),
			)
			return c.Status(http.StatusBadRequest).JSON(ValidationErrorResponse{
				Code:    string(domain.CodeValidation),
				Message: "Request validation failed",
				Status:  http.StatusBadRequest,
				Errors:  validationErrs,
			})
		}

		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			statusCode := mapDomainErrorToHTTPStatus(domainErr)

			log.Error("Domain error occurred",
				zap.String("code", string(domainErr.Code)),
				zap.String("message", domainErr.Message),
				zap.Int("status", statusCode),
				zap.Error(domainErr.Cause),
			)

			response := ErrorResponse{
				Code:    string(domainErr.Code),
				Message: domainErr.Message,
				Status:  statusCode,
			}
			if len(domainErr.Context) > 0 {
				response.Details = domainErr.Context
			}
			return c.Status(statusCode).JSON(response)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			log.Warn("Fiber error occurred",
				zap.Int("code", fiberErr.Code),
				zap.String("message", fiberErr.Message),
			)
			return c.Status(fiberErr.Code).JSON(ErrorResponse{
				Code:    "HTTP_ERROR",
				Message: fiberErr.Message,
				Status:  fiberErr.Code,
			})
		}

		log.Error("Unknown error occurred",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Code:    string(domain.CodeInternal),
			Message: "Internal server error",
			Status:  http.StatusInternalServerError,
		})
	}
}

// mapDomainErrorToHTTPStatus maps domain error codes to HTTP status codes.
func mapDomainErrorToHTTPStatus(err *domain.DomainError) int {
	switch err.Code {
	case domain.CodeNotFound, domain.CodeAttemptNotFound,
		domain.CodeSectionNotFound, domain.CodeQuestionNotFound:
		return http.StatusNotFound
	case domain.CodeValidation, domain.CodeMissingField, domain.CodeInvalidFormat,
		domain.CodeInsufficientQuestions, domain.CodeAnswerCountMismatch,
		domain.CodeForeignQuestion, domain.CodeIncompleteAnswers,
		// State conflicts report as 400: the request is well-formed but
		// invalid for the attempt's current state.
		domain.CodeAlreadyCompleted, domain.CodeNotInProgress,
		domain.CodeSectionAlreadyCompleted, domain.CodeSectionNotStarted,
		domain.CodeSectionNotPaused, domain.CodeSectionAlreadyPaused,
		domain.CodeSectionsIncomplete:
		return http.StatusBadRequest
	case domain.CodeUnauthorized:
		return http.StatusUnauthorized
	case domain.CodeForbidden, domain.CodeSectionLocked:
		return http.StatusForbidden
	case domain.CodeInterpretationPending:
		return http.StatusAccepted
	case domain.CodeLLMServiceError, domain.CodeScoringFailed:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
