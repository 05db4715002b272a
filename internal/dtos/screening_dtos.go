// internal/dtos/screening_dtos.go

package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/poofware/screening-service/internal/models"
)

type QuestionInput struct {
	Type   string  `json:"type" validate:"required"`
	Prompt string  `json:"prompt" validate:"required"`
	Points float64 `json:"points" validate:"gt=0"`

	Optional bool `json:"optional,omitempty"`

	Options        []string `json:"options,omitempty"`
	CorrectOption  *string  `json:"correct_option,omitempty"`
	CorrectOptions []string `json:"correct_options,omitempty"`

	CandidateA    string  `json:"candidate_a,omitempty"`
	CandidateB    string  `json:"candidate_b,omitempty"`
	CorrectChoice *string `json:"correct_choice,omitempty" validate:"omitempty,oneof=A B"`
	MinWords      *int    `json:"min_words,omitempty" validate:"omitempty,gte=0"`

	ExpectedVerdict       *string `json:"expected_verdict,omitempty"`
	ExpectedVulnerability *string `json:"expected_vulnerability,omitempty"`

	ImageURL string `json:"image_url,omitempty"`
	Language string `json:"language,omitempty"`
}

type RubricCriterionInput struct {
	Criteria string  `json:"criteria" validate:"required"`
	Weight   float64 `json:"weight" validate:"gt=0"`
	MaxScore float64 `json:"max_score" validate:"gt=0"`
}

type CreateScreeningRequest struct {
	Title          string `json:"title" validate:"required"`
	Category       string `json:"category,omitempty"`
	EvaluationMode string `json:"evaluation_mode" validate:"required,oneof=AUTO MANUAL HYBRID"`

	Questions []QuestionInput `json:"questions" validate:"required,min=1,dive"`

	PassingScore          float64                `json:"passing_score" validate:"gte=0,lte=100"`
	Rubric                []RubricCriterionInput `json:"rubric,omitempty" validate:"omitempty,dive"`
	MinJustificationWords int                    `json:"min_justification_words" validate:"gte=0"`
	TimeLimitMinutes      int                    `json:"time_limit_minutes,omitempty" validate:"gte=0"`
}

/*
QuestionDTO is the worker-facing view of a question: the answer key fields
(correct option/options/choice, expected verdict/vulnerability) are
deliberately absent.
*/
type QuestionDTO struct {
	ID       uuid.UUID           `json:"id"`
	Type     models.QuestionType `json:"type"`
	Prompt   string              `json:"prompt"`
	Points   float64             `json:"points"`
	Optional bool                `json:"optional,omitempty"`

	Options    []string `json:"options,omitempty"`
	CandidateA string   `json:"candidate_a,omitempty"`
	CandidateB string   `json:"candidate_b,omitempty"`
	MinWords   *int     `json:"min_words,omitempty"`
	ImageURL   string   `json:"image_url,omitempty"`
	Language   string   `json:"language,omitempty"`
}

type ScreeningDTO struct {
	ID                    uuid.UUID                 `json:"id"`
	Title                 string                    `json:"title"`
	Category              string                    `json:"category,omitempty"`
	EvaluationMode        models.EvaluationModeType `json:"evaluation_mode"`
	Questions             []QuestionDTO             `json:"questions"`
	PassingScore          float64                   `json:"passing_score"`
	MinJustificationWords int                       `json:"min_justification_words"`
	TimeLimitMinutes      int                       `json:"time_limit_minutes,omitempty"`
	CreatedAt             time.Time                 `json:"created_at"`
}

func NewScreeningDTO(s *models.Screening) *ScreeningDTO {
	dto := &ScreeningDTO{
		ID:                    s.ID,
		Title:                 s.Title,
		Category:              s.Category,
		EvaluationMode:        s.EvaluationMode,
		PassingScore:          s.PassingScore,
		MinJustificationWords: s.MinJustificationWords,
		TimeLimitMinutes:      s.TimeLimitMinutes,
		CreatedAt:             s.CreatedAt,
	}
	for i := range s.Questions {
		q := &s.Questions[i]
		dto.Questions = append(dto.Questions, QuestionDTO{
			ID:         q.ID,
			Type:       q.Type,
			Prompt:     q.Prompt,
			Points:     q.Points,
			Optional:   q.Optional,
			Options:    q.Options,
			CandidateA: q.CandidateA,
			CandidateB: q.CandidateB,
			MinWords:   q.MinWords,
			ImageURL:   q.ImageURL,
			Language:   q.Language,
		})
	}
	return dto
}
