// internal/services/lifecycle_service.go

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/poofware/screening-service/internal/models"
	"github.com/poofware/screening-service/internal/repositories"
	"github.com/poofware/screening-service/internal/utils"
)

/*
LifecycleService drives every admin- and pipeline-initiated worker status
change. All writes go through the worker repository's optimistic-retry
update, so two concurrent requests for the same worker cannot both win: the
loser's mutate re-runs against fresh state and gets a typed rejection.
*/
type LifecycleService struct {
	workerRepo repositories.WorkerRepository
}

func NewLifecycleService(workerRepo repositories.WorkerRepository) *LifecycleService {
	return &LifecycleService{workerRepo: workerRepo}
}

// ApproveApplication sets the application approval flag and unlocks the
// screening in one mutation.
func (s *LifecycleService) ApproveApplication(ctx context.Context, workerID uuid.UUID) (*models.Worker, error) {
	return s.mutate(ctx, workerID, func(w *models.Worker) error {
		w.ApplicationApproved = true
		return ApplyTransition(w, models.WorkerStatusScreeningUnlocked)
	})
}

func (s *LifecycleService) MarkTrainingViewed(ctx context.Context, workerID uuid.UUID) (*models.Worker, error) {
	return s.mutate(ctx, workerID, func(w *models.Worker) error {
		return ApplyTransition(w, models.WorkerStatusTrainingViewed)
	})
}

// AllowRetry re-opens the screening for a failed worker. The attempt gate
// inside ApplyTransition rejects it once the quota is used up, leaving the
// worker in FAILED indefinitely.
func (s *LifecycleService) AllowRetry(ctx context.Context, workerID uuid.UUID) (*models.Worker, error) {
	return s.mutate(ctx, workerID, func(w *models.Worker) error {
		if w.WorkerStatus != models.WorkerStatusFailed {
			return &utils.InvalidTransitionError{
				From: string(w.WorkerStatus),
				To:   string(models.WorkerStatusScreeningUnlocked),
			}
		}
		return ApplyTransition(w, models.WorkerStatusScreeningUnlocked)
	})
}

func (s *LifecycleService) Suspend(ctx context.Context, workerID uuid.UUID) (*models.Worker, error) {
	return s.mutate(ctx, workerID, func(w *models.Worker) error {
		return ApplyTransition(w, models.WorkerStatusSuspended)
	})
}

// Unsuspend always lands on READY_TO_WORK regardless of where the worker
// was suspended from; a released assignment is the caller's problem.
func (s *LifecycleService) Unsuspend(ctx context.Context, workerID uuid.UUID) (*models.Worker, error) {
	return s.mutate(ctx, workerID, func(w *models.Worker) error {
		return ApplyTransition(w, models.WorkerStatusReadyToWork)
	})
}

func (s *LifecycleService) AssignProject(ctx context.Context, workerID uuid.UUID) (*models.Worker, error) {
	return s.mutate(ctx, workerID, func(w *models.Worker) error {
		return ApplyTransition(w, models.WorkerStatusAssigned)
	})
}

func (s *LifecycleService) StartWork(ctx context.Context, workerID uuid.UUID) (*models.Worker, error) {
	return s.mutate(ctx, workerID, func(w *models.Worker) error {
		return ApplyTransition(w, models.WorkerStatusWorking)
	})
}

func (s *LifecycleService) SubmitProof(ctx context.Context, workerID uuid.UUID) (*models.Worker, error) {
	return s.mutate(ctx, workerID, func(w *models.Worker) error {
		return ApplyTransition(w, models.WorkerStatusProofSubmitted)
	})
}

/*
CompleteProject performs the PROOF_SUBMITTED → COMPLETED transition and
credits the project payout to PendingEarnings in the same mutation. This is
the only code path that touches the earnings accumulators besides
SettleEarnings.
*/
func (s *LifecycleService) CompleteProject(ctx context.Context, workerID uuid.UUID, payout float64) (*models.Worker, error) {
	if payout < 0 {
		return nil, fmt.Errorf("negative payout %.2f", payout)
	}
	return s.mutate(ctx, workerID, func(w *models.Worker) error {
		if err := ApplyTransition(w, models.WorkerStatusCompleted); err != nil {
			return err
		}
		w.PendingEarnings += payout
		return nil
	})
}

// SettleEarnings moves confirmed pending earnings into the total. Called by
// the surrounding payout flow once money actually moved; not a status
// transition.
func (s *LifecycleService) SettleEarnings(ctx context.Context, workerID uuid.UUID, amount float64) (*models.Worker, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("settlement amount %.2f must be positive", amount)
	}
	return s.mutate(ctx, workerID, func(w *models.Worker) error {
		if amount > w.PendingEarnings {
			return fmt.Errorf("settlement %.2f exceeds pending earnings %.2f", amount, w.PendingEarnings)
		}
		w.PendingEarnings -= amount
		w.TotalEarnings += amount
		return nil
	})
}

// ResolveTest applies the scoring outcome for a worker sitting in
// TEST_SUBMITTED. Used by the review gateway; the submit flow resolves auto
// outcomes inline within its own mutation.
func (s *LifecycleService) ResolveTest(ctx context.Context, workerID uuid.UUID, passed bool) (*models.Worker, error) {
	target := models.WorkerStatusFailed
	if passed {
		target = models.WorkerStatusReadyToWork
	}
	return s.mutate(ctx, workerID, func(w *models.Worker) error {
		return ApplyTransition(w, target)
	})
}

func (s *LifecycleService) mutate(ctx context.Context, workerID uuid.UUID, fn func(*models.Worker) error) (*models.Worker, error) {
	w, err := s.workerRepo.UpdateWithRetry(ctx, workerID, fn)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.ErrWorkerNotFound
		}
		return nil, err
	}
	return w, nil
}
