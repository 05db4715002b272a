// internal/dtos/submission_dtos.go

package dtos

import (
	"github.com/google/uuid"

	"github.com/poofware/screening-service/internal/models"
)

/*
AnswerInput mirrors models.Answer field-for-field. Only the fields matching
the question variant at the same index should be set; the answer validator
rejects mismatched shapes before anything is scored.
*/
type AnswerInput struct {
	SelectedOption  *string  `json:"selected_option,omitempty"`
	SelectedOptions []string `json:"selected_options,omitempty"`

	Choice        *string `json:"choice,omitempty"`
	Justification string  `json:"justification,omitempty"`

	Verdict     *string `json:"verdict,omitempty"`
	SourceURL   string  `json:"source_url,omitempty"`
	Explanation string  `json:"explanation,omitempty"`

	VulnerabilityTag string `json:"vulnerability_tag,omitempty"`

	Description string `json:"description,omitempty"`
	Rating      *int   `json:"rating,omitempty"`

	Code string `json:"code,omitempty"`
	Text string `json:"text,omitempty"`
}

func (a AnswerInput) ToModel() models.Answer {
	m := models.Answer{
		SelectedOption:   a.SelectedOption,
		SelectedOptions:  a.SelectedOptions,
		Choice:           a.Choice,
		Justification:    a.Justification,
		SourceURL:        a.SourceURL,
		Explanation:      a.Explanation,
		VulnerabilityTag: a.VulnerabilityTag,
		Description:      a.Description,
		Rating:           a.Rating,
		Code:             a.Code,
		Text:             a.Text,
	}
	if a.Verdict != nil {
		v := models.VerdictType(*a.Verdict)
		m.Verdict = &v
	}
	return m
}

type SubmitRequest struct {
	ScreeningID string        `json:"screening_id" validate:"required,uuid4"`
	Answers     []AnswerInput `json:"answers" validate:"required,min=1"`

	// ElapsedMinutes is the caller-measured wall-clock delta for the
	// advisory time-limit rule.
	ElapsedMinutes *int `json:"elapsed_minutes,omitempty" validate:"omitempty,gte=0"`
}

type SubmitResponse struct {
	SubmissionID      uuid.UUID                   `json:"submission_id"`
	Score             *float64                    `json:"score,omitempty"`
	AutoScore         *float64                    `json:"auto_score,omitempty"`
	AutoPass          *bool                       `json:"auto_pass,omitempty"`
	SubmissionStatus  models.SubmissionStatusType `json:"submission_status"`
	AttemptsRemaining int                         `json:"attempts_remaining"`
	NewStatus         models.WorkerStatusType     `json:"new_status"`
	ValidationFlags   []models.ValidationFlag     `json:"validation_flags,omitempty"`
	RubricBreakdown   []models.RubricAward        `json:"rubric_breakdown,omitempty"`
}
