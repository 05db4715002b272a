// internal/services/submission_service.go

package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/sirupsen/logrus"

	"github.com/poofware/screening-service/internal/dtos"
	"github.com/poofware/screening-service/internal/models"
	"github.com/poofware/screening-service/internal/repositories"
	"github.com/poofware/screening-service/internal/utils"
)

type SubmissionService struct {
	workerRepo    repositories.WorkerRepository
	screeningRepo repositories.ScreeningRepository
	subRepo       repositories.SubmissionRepository
	scoring       *ScoringService
}

func NewSubmissionService(
	workerRepo repositories.WorkerRepository,
	screeningRepo repositories.ScreeningRepository,
	subRepo repositories.SubmissionRepository,
	scoring *ScoringService,
) *SubmissionService {
	return &SubmissionService{
		workerRepo:    workerRepo,
		screeningRepo: screeningRepo,
		subRepo:       subRepo,
		scoring:       scoring,
	}
}

/*
Submit runs the full pipeline for one screening submission:

	shape validation → scoring → rule flags → attempt accounting →
	lifecycle transition (auto) or pending review (manual/hybrid)

The worker mutation (attempt count, history append, status change) happens
under the optimistic-retry update, so a concurrent submission for the same
worker loses with a typed rejection instead of clobbering state.
*/
func (s *SubmissionService) Submit(
	ctx context.Context,
	workerID uuid.UUID,
	req dtos.SubmitRequest,
) (*dtos.SubmitResponse, error) {
	screeningID, err := uuid.Parse(req.ScreeningID)
	if err != nil {
		return nil, err
	}

	screening, err := s.screeningRepo.GetByID(ctx, screeningID)
	if err != nil {
		return nil, err
	}
	if screening == nil {
		return nil, utils.ErrScreeningNotFound
	}

	answers := make([]models.Answer, 0, len(req.Answers))
	for _, in := range req.Answers {
		answers = append(answers, in.ToModel())
	}

	// Pure phases first: nothing is persisted until they all pass.
	if err := ValidateSubmission(screening, answers); err != nil {
		return nil, err
	}
	result, err := s.scoring.Score(screening, answers)
	if err != nil {
		return nil, err
	}
	flags := RunRules(screening, answers, req.ElapsedMinutes)

	sub := &models.Submission{
		ID:              uuid.New(),
		WorkerID:        workerID,
		ScreeningID:     screening.ID,
		Answers:         answers,
		Score:           result.Score,
		AutoScore:       result.AutoScore,
		AutoPass:        result.AutoPass,
		ValidationFlags: flags,
		ElapsedMinutes:  req.ElapsedMinutes,
		SubmittedAt:     time.Now().UTC(),
	}
	if screening.EvaluationMode == models.EvaluationModeAuto {
		sub.SubmissionStatus = models.SubmissionStatusAutoGraded
	} else {
		sub.SubmissionStatus = models.SubmissionStatusPendingReview
	}

	worker, err := s.workerRepo.UpdateWithRetry(ctx, workerID, func(w *models.Worker) error {
		if !CanAttempt(w) {
			return &utils.AttemptExceededError{
				AttemptCount: w.AttemptCount,
				MaxAttempts:  w.MaxAttempts,
			}
		}
		if err := ApplyTransition(w, models.WorkerStatusTestSubmitted); err != nil {
			return err
		}
		RecordAttempt(w)
		w.ScreeningsCompleted = append(w.ScreeningsCompleted, models.ScreeningRecord{
			ScreeningID:      screening.ID,
			SubmissionID:     sub.ID,
			CompletedAt:      sub.SubmittedAt,
			Score:            sub.Score,
			Passed:           sub.AutoPass,
			SubmissionStatus: sub.SubmissionStatus,
		})
		if screening.EvaluationMode == models.EvaluationModeAuto {
			target := models.WorkerStatusFailed
			if sub.AutoPass != nil && *sub.AutoPass {
				target = models.WorkerStatusReadyToWork
			}
			return ApplyTransition(w, target)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.ErrWorkerNotFound
		}
		return nil, err
	}

	if err := s.subRepo.Create(ctx, sub); err != nil {
		// The worker record already moved; the history entry references a
		// submission row that failed to land. Loud log so it gets repaired.
		utils.Logger.WithFields(logrus.Fields{
			"worker_id":     workerID,
			"submission_id": sub.ID,
		}).WithError(err).Error("Worker transitioned but submission insert failed")
		return nil, err
	}

	return &dtos.SubmitResponse{
		SubmissionID:      sub.ID,
		Score:             sub.Score,
		AutoScore:         sub.AutoScore,
		AutoPass:          sub.AutoPass,
		SubmissionStatus:  sub.SubmissionStatus,
		AttemptsRemaining: worker.AttemptsRemaining(),
		NewStatus:         worker.WorkerStatus,
		ValidationFlags:   sub.ValidationFlags,
	}, nil
}
