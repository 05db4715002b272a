// internal/services/lifecycle.go

package services

import (
	"slices"

	"github.com/poofware/screening-service/internal/models"
	"github.com/poofware/screening-service/internal/utils"
)

/*
allowedTransitions is the single authority for which worker statuses may
move to which. Every status mutation goes through ApplyTransition; nothing
else may write Worker.WorkerStatus.

The main line runs APPLIED through COMPLETED (terminal). FAILED branches off
TEST_SUBMITTED and can only re-enter via the attempt-gated retry.
SUSPENDED is reachable from every non-terminal state and returns only to
READY_TO_WORK.
*/
var allowedTransitions = map[models.WorkerStatusType][]models.WorkerStatusType{
	models.WorkerStatusApplied:           {models.WorkerStatusScreeningUnlocked, models.WorkerStatusSuspended},
	models.WorkerStatusScreeningUnlocked: {models.WorkerStatusTrainingViewed, models.WorkerStatusSuspended},
	models.WorkerStatusTrainingViewed:    {models.WorkerStatusTestSubmitted, models.WorkerStatusSuspended},
	models.WorkerStatusTestSubmitted:     {models.WorkerStatusReadyToWork, models.WorkerStatusFailed, models.WorkerStatusSuspended},
	models.WorkerStatusReadyToWork:       {models.WorkerStatusAssigned, models.WorkerStatusSuspended},
	models.WorkerStatusAssigned:          {models.WorkerStatusWorking, models.WorkerStatusSuspended},
	models.WorkerStatusWorking:           {models.WorkerStatusProofSubmitted, models.WorkerStatusSuspended},
	models.WorkerStatusProofSubmitted:    {models.WorkerStatusCompleted, models.WorkerStatusSuspended},
	models.WorkerStatusCompleted:         {},
	models.WorkerStatusFailed:            {models.WorkerStatusScreeningUnlocked, models.WorkerStatusSuspended},
	models.WorkerStatusSuspended:         {models.WorkerStatusReadyToWork},
}

// AllowedTransitions returns the legal targets from the given status. The
// returned slice is a copy; callers may not grow the graph.
func AllowedTransitions(from models.WorkerStatusType) []models.WorkerStatusType {
	return slices.Clone(allowedTransitions[from])
}

func CanTransition(from, to models.WorkerStatusType) bool {
	return slices.Contains(allowedTransitions[from], to)
}

/*
ApplyTransition moves a worker to the target status, enforcing the
transition table and the per-edge guards:

  - APPLIED → SCREENING_UNLOCKED requires the application approval flag.
  - FAILED → SCREENING_UNLOCKED (retry) is gated on remaining attempts.

An illegal request is a typed rejection and mutates nothing.
*/
func ApplyTransition(w *models.Worker, target models.WorkerStatusType) error {
	if !CanTransition(w.WorkerStatus, target) {
		return &utils.InvalidTransitionError{
			From: string(w.WorkerStatus),
			To:   string(target),
		}
	}

	if target == models.WorkerStatusScreeningUnlocked {
		switch w.WorkerStatus {
		case models.WorkerStatusApplied:
			if !w.ApplicationApproved {
				return utils.ErrApplicationNotApproved
			}
		case models.WorkerStatusFailed:
			if !CanAttempt(w) {
				return &utils.AttemptExceededError{
					AttemptCount: w.AttemptCount,
					MaxAttempts:  w.MaxAttempts,
				}
			}
		}
	}

	w.WorkerStatus = target
	return nil
}
