package dto

// BulkApproveRequest is the body of POST /admin/questions/bulk-approve.
type BulkApproveRequest struct {
	QuestionIDs []string `json:"question_ids"`
}

// BulkApproveResponse reports the all-or-nothing outcome.
type BulkApproveResponse struct {
	ApprovedCount int `json:"approved_count"`
}

// CreateQuestionOption mirrors a question option in admin create requests.
type CreateQuestionOption struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// CreateQuestionRequest is the body of POST /admin/questions. New questions
// always enter the bank as pending.
type CreateQuestionRequest struct {
	Text          string                 `json:"text"`
	Type          string                 `json:"type"`
	Options       []CreateQuestionOption `json:"options"`
	CorrectAnswer string                 `json:"correct_answer,omitempty"`
	SectionID     string                 `json:"section_id"`
	Category      string                 `json:"category,omitempty"`
	OrderIndex    int                    `json:"order_index"`
}

// CreateQuestionResponse is returned by POST /admin/questions.
type CreateQuestionResponse struct {
	QuestionID string `json:"question_id"`
	Status     string `json:"status"`
}

// AllowRetakeResponse is returned by POST /admin/students/:id/allow-retake.
type AllowRetakeResponse struct {
	StudentID         string `json:"student_id"`
	AbandonedAttempts int    `json:"abandoned_attempts"`
	DeletedAttempts   int    `json:"deleted_attempts"`
}
