// internal/models/worker.go

package models

import (
	"time"

	"github.com/google/uuid"
)

type WorkerStatusType string

const (
	WorkerStatusApplied            WorkerStatusType = "APPLIED"
	WorkerStatusScreeningUnlocked  WorkerStatusType = "SCREENING_UNLOCKED"
	WorkerStatusTrainingViewed     WorkerStatusType = "TRAINING_VIEWED"
	WorkerStatusTestSubmitted      WorkerStatusType = "TEST_SUBMITTED"
	WorkerStatusReadyToWork        WorkerStatusType = "READY_TO_WORK"
	WorkerStatusAssigned           WorkerStatusType = "ASSIGNED"
	WorkerStatusWorking            WorkerStatusType = "WORKING"
	WorkerStatusProofSubmitted     WorkerStatusType = "PROOF_SUBMITTED"
	WorkerStatusCompleted          WorkerStatusType = "COMPLETED"
	WorkerStatusFailed             WorkerStatusType = "FAILED"
	WorkerStatusSuspended          WorkerStatusType = "SUSPENDED"
)

// ScreeningRecord is one entry in a worker's screening history. The list is
// append-only: entries are never edited after insert, even when an admin
// reviews the underlying submission later.
type ScreeningRecord struct {
	ScreeningID      uuid.UUID            `json:"screening_id"`
	SubmissionID     uuid.UUID            `json:"submission_id"`
	CompletedAt      time.Time            `json:"completed_at"`
	Score            *float64             `json:"score,omitempty"`
	Passed           *bool                `json:"passed,omitempty"`
	SubmissionStatus SubmissionStatusType `json:"submission_status"`
}

type Worker struct {
	Versioned

	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	JobPositionID uuid.UUID `json:"job_position_id"`

	WorkerStatus WorkerStatusType `json:"worker_status"`

	// ApplicationApproved gates APPLIED -> SCREENING_UNLOCKED.
	ApplicationApproved bool `json:"application_approved"`

	// AttemptCount is a single quota shared across every screening the
	// worker takes, not a per-screening counter.
	AttemptCount int `json:"attempt_count"`
	MaxAttempts  int `json:"max_attempts"`

	ScreeningsCompleted []ScreeningRecord `json:"screenings_completed"`

	TotalEarnings   float64 `json:"total_earnings"`
	PendingEarnings float64 `json:"pending_earnings"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (w *Worker) GetID() string {
	return w.ID.String()
}

// AttemptsRemaining never goes negative even if MaxAttempts was lowered
// after attempts were recorded.
func (w *Worker) AttemptsRemaining() int {
	remaining := w.MaxAttempts - w.AttemptCount
	if remaining < 0 {
		return 0
	}
	return remaining
}
