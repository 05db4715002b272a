// internal/services/review_service.go

package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/poofware/screening-service/internal/dtos"
	"github.com/poofware/screening-service/internal/models"
	"github.com/poofware/screening-service/internal/repositories"
	"github.com/poofware/screening-service/internal/utils"
)

/*
ReviewService is the admin decision gateway: it presents pending
manual/hybrid submissions and applies exactly one approve/reject decision
per submission back into the lifecycle state machine.
*/
type ReviewService struct {
	subRepo       repositories.SubmissionRepository
	screeningRepo repositories.ScreeningRepository
	lifecycle     *LifecycleService
	scoring       *ScoringService
}

func NewReviewService(
	subRepo repositories.SubmissionRepository,
	screeningRepo repositories.ScreeningRepository,
	lifecycle *LifecycleService,
	scoring *ScoringService,
) *ReviewService {
	return &ReviewService{
		subRepo:       subRepo,
		screeningRepo: screeningRepo,
		lifecycle:     lifecycle,
		scoring:       scoring,
	}
}

// ListPending returns the review queue, oldest first, optionally narrowed
// to one screening.
func (s *ReviewService) ListPending(ctx context.Context, screeningID *uuid.UUID) ([]dtos.ReviewQueueItemDTO, error) {
	subs, err := s.subRepo.ListPendingReview(ctx, screeningID)
	if err != nil {
		return nil, err
	}

	// Evaluation modes are looked up once per distinct screening.
	modes := make(map[uuid.UUID]models.EvaluationModeType)
	items := make([]dtos.ReviewQueueItemDTO, 0, len(subs))
	for _, sub := range subs {
		mode, ok := modes[sub.ScreeningID]
		if !ok {
			screening, err := s.screeningRepo.GetByID(ctx, sub.ScreeningID)
			if err != nil {
				return nil, err
			}
			if screening != nil {
				mode = screening.EvaluationMode
			}
			modes[sub.ScreeningID] = mode
		}
		items = append(items, dtos.ReviewQueueItemDTO{
			SubmissionID:    sub.ID,
			WorkerID:        sub.WorkerID,
			ScreeningID:     sub.ScreeningID,
			EvaluationMode:  mode,
			AutoScore:       sub.AutoScore,
			AutoPass:        sub.AutoPass,
			ValidationFlags: sub.ValidationFlags,
			Answers:         sub.Answers,
			Escalated:       sub.Escalated,
			SubmittedAt:     sub.SubmittedAt,
		})
	}
	return items, nil
}

/*
Review finalizes a pending submission. The submission's row-version check is
the idempotency authority: the first decision wins, any concurrent or
repeated review is rejected with AlreadyFinalized and mutates nothing.

Score precedence: AdminScore override > rubric awards > the stored
auto/rubric score as-is. A finalized submission then drives the paired
TEST_SUBMITTED → READY_TO_WORK / FAILED transition.
*/
func (s *ReviewService) Review(
	ctx context.Context,
	adminID uuid.UUID,
	req dtos.ReviewRequest,
) (*dtos.ReviewResponse, error) {
	submissionID, err := uuid.Parse(req.SubmissionID)
	if err != nil {
		return nil, err
	}

	sub, err := s.subRepo.GetByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, utils.ErrSubmissionNotFound
	}
	if sub.SubmissionStatus != models.SubmissionStatusPendingReview {
		return nil, &utils.AlreadyFinalizedError{
			SubmissionID: sub.ID.String(),
			Status:       string(sub.SubmissionStatus),
		}
	}

	screening, err := s.screeningRepo.GetByID(ctx, sub.ScreeningID)
	if err != nil {
		return nil, err
	}
	if screening == nil {
		return nil, utils.ErrScreeningNotFound
	}

	expectedVersion := sub.RowVersion

	switch {
	case req.AdminScore != nil:
		sub.AdminScore = req.AdminScore
		sub.Score = req.AdminScore
	case len(req.RubricAwards) > 0:
		awards := make([]models.RubricAward, 0, len(req.RubricAwards))
		for _, a := range req.RubricAwards {
			awards = append(awards, models.RubricAward{Criteria: a.Criteria, Awarded: a.Awarded})
		}
		score, breakdown, clampFlags, err := s.scoring.RubricScore(screening.Rubric, awards)
		if err != nil {
			return nil, err
		}
		sub.Score = &score
		sub.RubricBreakdown = breakdown
		sub.ValidationFlags = append(sub.ValidationFlags, clampFlags...)
	default:
		// Keep the stored score. For hybrid that is the advisory auto score.
		if sub.Score == nil {
			sub.Score = sub.AutoScore
		}
		// A manual submission has no auto score to fall back on; approving
		// it without any score input would finalize an unscored record.
		if sub.Score == nil && req.Action == dtos.ReviewActionApprove {
			return nil, utils.ErrScoreRequired
		}
	}

	if req.Action == dtos.ReviewActionApprove {
		sub.SubmissionStatus = models.SubmissionStatusApproved
	} else {
		sub.SubmissionStatus = models.SubmissionStatusRejected
	}
	now := time.Now().UTC()
	sub.ReviewedBy = &adminID
	sub.ReviewedAt = &now

	tag, err := s.subRepo.UpdateIfVersion(ctx, sub, expectedVersion)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() != 1 {
		// Lost the race: re-read to report the decision that beat us.
		latest, lerr := s.subRepo.GetByID(ctx, submissionID)
		if lerr == nil && latest != nil && latest.Finalized() {
			return nil, &utils.AlreadyFinalizedError{
				SubmissionID: latest.ID.String(),
				Status:       string(latest.SubmissionStatus),
			}
		}
		return nil, utils.ErrRowVersionConflict
	}

	worker, err := s.lifecycle.ResolveTest(ctx, sub.WorkerID, req.Action == dtos.ReviewActionApprove)
	if err != nil {
		// The decision is recorded but the worker would not move (already
		// suspended, or moved by another operation). Surface it; nothing
		// here is retried automatically.
		utils.Logger.WithFields(logrus.Fields{
			"submission_id": sub.ID,
			"worker_id":     sub.WorkerID,
		}).WithError(err).Error("Review finalized but worker transition failed")
		return nil, err
	}

	return &dtos.ReviewResponse{
		SubmissionID:     sub.ID,
		Action:           req.Action,
		Score:            sub.Score,
		SubmissionStatus: sub.SubmissionStatus,
		NewStatus:        worker.WorkerStatus,
		RubricBreakdown:  sub.RubricBreakdown,
	}, nil
}
