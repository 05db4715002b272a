// internal/utils/errors.go

package utils

import (
	"errors"
	"fmt"
)

/*
   Sentinel errors for screening-service domain logic.
   Controllers dispatch with: if errors.Is(err, ErrXYZ) { ... }
*/
var (
	ErrWorkerNotFound     = errors.New("worker_not_found")
	ErrScreeningNotFound  = errors.New("screening_not_found")
	ErrSubmissionNotFound = errors.New("submission_not_found")

	ErrApplicationNotApproved = errors.New("application_not_approved")
	ErrScoreRequired          = errors.New("score_required")

	// For concurrency conflicts
	ErrRowVersionConflict = errors.New("row_version_conflict")
)

/*
   InvalidTransitionError is the typed rejection for a status change that is
   not in the allowed set. It never mutates state and is never retried.
*/
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid_transition: %s -> %s", e.From, e.To)
}

// AttemptExceededError is returned once a worker's attempt quota is used up.
type AttemptExceededError struct {
	AttemptCount int
	MaxAttempts  int
}

func (e *AttemptExceededError) Error() string {
	return fmt.Sprintf("attempt_exceeded: %d of %d attempts used", e.AttemptCount, e.MaxAttempts)
}

// AlreadyFinalizedError rejects re-review of a closed submission.
type AlreadyFinalizedError struct {
	SubmissionID string
	Status       string
}

func (e *AlreadyFinalizedError) Error() string {
	return fmt.Sprintf("already_finalized: submission %s is %s", e.SubmissionID, e.Status)
}

// ValidationError reports a malformed answer shape, rejected before scoring.
type ValidationError struct {
	QuestionIndex int
	Reason        string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation_error: question %d: %s", e.QuestionIndex, e.Reason)
}

// ConfigurationError reports a screening that cannot be scored as configured
// (zero questions, non-gradable question in AUTO mode, unknown rubric
// criteria). Rejected before scoring.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration_error: " + e.Reason
}
