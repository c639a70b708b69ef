package validation

import (
	"regexp"
	"strings"

	"careerpath/internal/domain"
	"careerpath/internal/dto"
)

// Validator provides request validation functionality.
type Validator struct{}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateAttemptID validates a test attempt id path parameter.
func (v *Validator) ValidateAttemptID(attemptID string) domain.ValidationErrors {
	var errs domain.ValidationErrors
	if strings.TrimSpace(attemptID) == "" {
		errs = append(errs, domain.NewMissingFieldError("attempt_id"))
	} else if !isValidULID(attemptID) {
		errs = append(errs, domain.NewInvalidFormatError("attempt_id", attemptID))
	}
	return errs
}

// ValidateSectionID validates a section id path parameter.
func (v *Validator) ValidateSectionID(sectionID string) domain.ValidationErrors {
	var errs domain.ValidationErrors
	if strings.TrimSpace(sectionID) == "" {
		errs = append(errs, domain.NewMissingFieldError("section_id"))
	} else if !isValidULID(sectionID) {
		errs = append(errs, domain.NewInvalidFormatError("section_id", sectionID))
	}
	return errs
}

// ValidateSubmitSectionRequest validates a section submit body.
func (v *Validator) ValidateSubmitSectionRequest(req *dto.SubmitSectionRequest) domain.ValidationErrors {
	var errs domain.ValidationErrors
	if len(req.Answers) == 0 {
		errs = append(errs, domain.NewMissingFieldError("answers"))
		return errs
	}
	seen := make(map[string]struct{}, len(req.Answers))
	for _, a := range req.Answers {
		if strings.TrimSpace(a.QuestionID) == "" {
			errs = append(errs, domain.NewMissingFieldError("question_id"))
			continue
		}
		if !isValidULID(a.QuestionID) {
			errs = append(errs, domain.NewInvalidFormatError("question_id", a.QuestionID))
		}
		if _, dup := seen[a.QuestionID]; dup {
			errs = append(errs, domain.NewValidationError("duplicate question_id in answers: "+a.QuestionID))
		}
		seen[a.QuestionID] = struct{}{}
		if !isValidOptionKey(a.SelectedOption) {
			errs = append(errs, domain.NewInvalidFormatError("selected_option", a.SelectedOption))
		}
	}
	return errs
}

// ValidateSaveAnswerRequest validates a save-answer body.
func (v *Validator) ValidateSaveAnswerRequest(req *dto.SaveAnswerRequest) domain.ValidationErrors {
	var errs domain.ValidationErrors
	if strings.TrimSpace(req.QuestionID) == "" {
		errs = append(errs, domain.NewMissingFieldError("question_id"))
	} else if !isValidULID(req.QuestionID) {
		errs = append(errs, domain.NewInvalidFormatError("question_id", req.QuestionID))
	}
	if !isValidOptionKey(req.SelectedOption) {
		errs = append(errs, domain.NewInvalidFormatError("selected_option", req.SelectedOption))
	}
	return errs
}

// ValidateBulkApproveRequest validates the bulk approval body.
func (v *Validator) ValidateBulkApproveRequest(req *dto.BulkApproveRequest) domain.ValidationErrors {
	var errs domain.ValidationErrors
	if len(req.QuestionIDs) == 0 {
		errs = append(errs, domain.NewMissingFieldError("question_ids"))
		return errs
	}
	for _, id := range req.QuestionIDs {
		if !isValidULID(id) {
			errs = append(errs, domain.NewInvalidFormatError("question_ids", id))
		}
	}
	return errs
}

// ValidateCreateQuestionRequest validates the admin create-question body.
// Semantic checks beyond field shape live on the domain entity.
func (v *Validator) ValidateCreateQuestionRequest(req *dto.CreateQuestionRequest) domain.ValidationErrors {
	var errs domain.ValidationErrors
	if strings.TrimSpace(req.Text) == "" {
		errs = append(errs, domain.NewMissingFieldError("text"))
	}
	if strings.TrimSpace(req.SectionID) == "" {
		errs = append(errs, domain.NewMissingFieldError("section_id"))
	} else if !isValidULID(req.SectionID) {
		errs = append(errs, domain.NewInvalidFormatError("section_id", req.SectionID))
	}
	if len(req.Options) == 0 {
		errs = append(errs, domain.NewMissingFieldError("options"))
	}
	for _, o := range req.Options {
		if !isValidOptionKey(o.Key) {
			errs = append(errs, domain.NewInvalidFormatError("options.key", o.Key))
		}
		if strings.TrimSpace(o.Text) == "" {
			errs = append(errs, domain.NewMissingFieldError("options.text"))
		}
	}
	return errs
}

// isValidULID checks for a 26-character Crockford base32 ULID.
var ulidPattern = regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)

func isValidULID(s string) bool {
	return len(s) == 26 && ulidPattern.MatchString(s)
}

// isValidOptionKey accepts the single option letters A through E.
func isValidOptionKey(s string) bool {
	return len(s) == 1 && s[0] >= 'A' && s[0] <= 'E'
}
