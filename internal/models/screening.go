// internal/models/screening.go

package models

import (
	"time"

	"github.com/google/uuid"
)

type EvaluationModeType string

const (
	EvaluationModeAuto   EvaluationModeType = "AUTO"
	EvaluationModeManual EvaluationModeType = "MANUAL"
	EvaluationModeHybrid EvaluationModeType = "HYBRID"
)

// RubricCriterion is one weighted criterion an admin can award points
// against. Weights need not sum to anything particular; the scoring engine
// normalizes.
type RubricCriterion struct {
	Criteria string  `json:"criteria"`
	Weight   float64 `json:"weight"`
	MaxScore float64 `json:"max_score"`
}

type Screening struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	// Category is a free-text hint linking screenings to project categories.
	// It is deliberately not a foreign key; nothing structural depends on it.
	Category string `json:"category,omitempty"`

	Questions      []Question         `json:"questions"`
	EvaluationMode EvaluationModeType `json:"evaluation_mode"`

	// PassingScore is on the 0-100 normalized scale.
	PassingScore float64 `json:"passing_score"`

	Rubric []RubricCriterion `json:"rubric,omitempty"`

	// MinJustificationWords applies to ranking justifications that do not
	// set a per-question MinWords.
	MinJustificationWords int `json:"min_justification_words"`

	// TimeLimitMinutes is advisory. The engine records violations surfaced
	// by the caller but never enforces wall-clock expiry itself.
	TimeLimitMinutes int `json:"time_limit_minutes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasRubric reports whether manual/hybrid reviews award per-criterion points.
func (s *Screening) HasRubric() bool {
	return len(s.Rubric) > 0
}
