package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"careerpath/internal/domain"
	"careerpath/internal/dto"
)

const validID = "01HZXW8Q9R7T6M4N2P0S5V3B1C"

func TestValidateAttemptID(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateAttemptID(validID))

	errs := v.ValidateAttemptID("")
	assert.Len(t, errs, 1)
	assert.Equal(t, domain.CodeMissingField, errs[0].Code)

	errs = v.ValidateAttemptID("not-a-ulid")
	assert.Len(t, errs, 1)
	assert.Equal(t, domain.CodeInvalidFormat, errs[0].Code)

	// Crockford base32 excludes I, L, O and U.
	errs = v.ValidateAttemptID("01HZXW8Q9R7T6M4N2P0S5V3BIL")
	assert.Len(t, errs, 1)
}

func TestValidateSubmitSectionRequest(t *testing.T) {
	v := NewValidator()

	t.Run("Valid", func(t *testing.T) {
		errs := v.ValidateSubmitSectionRequest(&dto.SubmitSectionRequest{
			Answers: []dto.AnswerSubmission{
				{QuestionID: validID, SelectedOption: "C"},
			},
		})
		assert.Empty(t, errs)
	})

	t.Run("EmptyAnswers", func(t *testing.T) {
		errs := v.ValidateSubmitSectionRequest(&dto.SubmitSectionRequest{})
		assert.Len(t, errs, 1)
		assert.Equal(t, domain.CodeMissingField, errs[0].Code)
	})

	t.Run("DuplicateQuestion", func(t *testing.T) {
		errs := v.ValidateSubmitSectionRequest(&dto.SubmitSectionRequest{
			Answers: []dto.AnswerSubmission{
				{QuestionID: validID, SelectedOption: "A"},
				{QuestionID: validID, SelectedOption: "B"},
			},
		})
		assert.Len(t, errs, 1)
		assert.Equal(t, domain.CodeValidation, errs[0].Code)
	})

	t.Run("BadOptionKey", func(t *testing.T) {
		errs := v.ValidateSubmitSectionRequest(&dto.SubmitSectionRequest{
			Answers: []dto.AnswerSubmission{
				{QuestionID: validID, SelectedOption: "F"},
			},
		})
		assert.Len(t, errs, 1)
		assert.Equal(t, domain.CodeInvalidFormat, errs[0].Code)
	})

	t.Run("CollectsMultipleErrors", func(t *testing.T) {
		errs := v.ValidateSubmitSectionRequest(&dto.SubmitSectionRequest{
			Answers: []dto.AnswerSubmission{
				{QuestionID: "bad", SelectedOption: "Z"},
				{QuestionID: "", SelectedOption: "A"},
			},
		})
		assert.Len(t, errs, 3)
	})
}

func TestValidateSaveAnswerRequest(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateSaveAnswerRequest(&dto.SaveAnswerRequest{
		QuestionID:     validID,
		SelectedOption: "E",
	}))

	errs := v.ValidateSaveAnswerRequest(&dto.SaveAnswerRequest{
		QuestionID:     "",
		SelectedOption: "AB",
	})
	assert.Len(t, errs, 2)
}

func TestValidateBulkApproveRequest(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateBulkApproveRequest(&dto.BulkApproveRequest{
		QuestionIDs: []string{validID},
	}))

	errs := v.ValidateBulkApproveRequest(&dto.BulkApproveRequest{})
	assert.Len(t, errs, 1)
	assert.Equal(t, domain.CodeMissingField, errs[0].Code)

	errs = v.ValidateBulkApproveRequest(&dto.BulkApproveRequest{
		QuestionIDs: []string{validID, "nope"},
	})
	assert.Len(t, errs, 1)
	assert.Equal(t, domain.CodeInvalidFormat, errs[0].Code)
}

func TestValidateCreateQuestionRequest(t *testing.T) {
	v := NewValidator()

	t.Run("Valid", func(t *testing.T) {
		errs := v.ValidateCreateQuestionRequest(&dto.CreateQuestionRequest{
			Text:      "I know which industries match my interests.",
			Type:      domain.QuestionLikertScale,
			SectionID: validID,
			Options: []dto.CreateQuestionOption{
				{Key: "A", Text: "Strongly disagree"},
				{Key: "E", Text: "Strongly agree"},
			},
		})
		assert.Empty(t, errs)
	})

	t.Run("MissingEverything", func(t *testing.T) {
		errs := v.ValidateCreateQuestionRequest(&dto.CreateQuestionRequest{})
		assert.Len(t, errs, 3)
	})

	t.Run("BadOption", func(t *testing.T) {
		errs := v.ValidateCreateQuestionRequest(&dto.CreateQuestionRequest{
			Text:      "Question text",
			SectionID: validID,
			Options: []dto.CreateQuestionOption{
				{Key: "1", Text: ""},
			},
		})
		assert.Len(t, errs, 2)
	})
}
