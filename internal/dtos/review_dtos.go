// internal/dtos/review_dtos.go

package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/poofware/screening-service/internal/models"
)

const (
	ReviewActionApprove = "approve"
	ReviewActionReject  = "reject"
)

type RubricAwardInput struct {
	Criteria string  `json:"criteria" validate:"required"`
	Awarded  float64 `json:"awarded"`
}

type ReviewRequest struct {
	SubmissionID string `json:"submission_id" validate:"required,uuid4"`
	Action       string `json:"action" validate:"required,oneof=approve reject"`

	// AdminScore overrides any engine-computed score outright.
	AdminScore *float64 `json:"admin_score,omitempty" validate:"omitempty,gte=0,lte=100"`

	// RubricAwards lets the admin score per criterion instead; ignored when
	// AdminScore is set.
	RubricAwards []RubricAwardInput `json:"rubric_awards,omitempty" validate:"omitempty,dive"`
}

type ReviewResponse struct {
	SubmissionID     uuid.UUID                   `json:"submission_id"`
	Action           string                      `json:"action"`
	Score            *float64                    `json:"score,omitempty"`
	SubmissionStatus models.SubmissionStatusType `json:"submission_status"`
	NewStatus        models.WorkerStatusType     `json:"new_status"`
	RubricBreakdown  []models.RubricAward        `json:"rubric_breakdown,omitempty"`
}

// ReviewQueueItemDTO is one pending submission as shown to admins.
type ReviewQueueItemDTO struct {
	SubmissionID    uuid.UUID                 `json:"submission_id"`
	WorkerID        uuid.UUID                 `json:"worker_id"`
	ScreeningID     uuid.UUID                 `json:"screening_id"`
	EvaluationMode  models.EvaluationModeType `json:"evaluation_mode,omitempty"`
	AutoScore       *float64                  `json:"auto_score,omitempty"`
	AutoPass        *bool                     `json:"auto_pass,omitempty"`
	ValidationFlags []models.ValidationFlag   `json:"validation_flags,omitempty"`
	Answers         []models.Answer           `json:"answers"`
	Escalated       bool                      `json:"escalated"`
	SubmittedAt     time.Time                 `json:"submitted_at"`
}
