// internal/dtos/worker_dtos.go

package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/poofware/screening-service/internal/models"
)

type CreateWorkerRequest struct {
	UserID        string `json:"user_id" validate:"required,uuid4"`
	JobPositionID string `json:"job_position_id" validate:"required,uuid4"`
	MaxAttempts   *int   `json:"max_attempts,omitempty" validate:"omitempty,gte=1"`
}

// TransitionRequest is the admin-facing lifecycle operation envelope. The
// action string selects the LifecycleService operation; amount is only read
// by complete_project and settle_earnings.
type TransitionRequest struct {
	Action string   `json:"action" validate:"required,oneof=approve_application mark_training_viewed allow_retry suspend unsuspend assign_project start_work submit_proof complete_project settle_earnings"`
	Amount *float64 `json:"amount,omitempty" validate:"omitempty,gte=0"`
}

type WorkerDTO struct {
	ID                  uuid.UUID                `json:"id"`
	UserID              uuid.UUID                `json:"user_id"`
	JobPositionID       uuid.UUID                `json:"job_position_id"`
	WorkerStatus        models.WorkerStatusType  `json:"worker_status"`
	ApplicationApproved bool                     `json:"application_approved"`
	AttemptCount        int                      `json:"attempt_count"`
	MaxAttempts         int                      `json:"max_attempts"`
	AttemptsRemaining   int                      `json:"attempts_remaining"`
	ScreeningsCompleted []models.ScreeningRecord `json:"screenings_completed"`
	TotalEarnings       float64                  `json:"total_earnings"`
	PendingEarnings     float64                  `json:"pending_earnings"`
	CreatedAt           time.Time                `json:"created_at"`
}

func NewWorkerDTO(w *models.Worker) *WorkerDTO {
	return &WorkerDTO{
		ID:                  w.ID,
		UserID:              w.UserID,
		JobPositionID:       w.JobPositionID,
		WorkerStatus:        w.WorkerStatus,
		ApplicationApproved: w.ApplicationApproved,
		AttemptCount:        w.AttemptCount,
		MaxAttempts:         w.MaxAttempts,
		AttemptsRemaining:   w.AttemptsRemaining(),
		ScreeningsCompleted: w.ScreeningsCompleted,
		TotalEarnings:       w.TotalEarnings,
		PendingEarnings:     w.PendingEarnings,
		CreatedAt:           w.CreatedAt,
	}
}
