package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/poofware/screening-service/internal/dtos"
	"github.com/poofware/screening-service/internal/models"
	"github.com/poofware/screening-service/internal/utils"
)

type reviewFixture struct {
	workerRepo    *fakeWorkerRepo
	screeningRepo *fakeScreeningRepo
	subRepo       *fakeSubmissionRepo
	svc           *ReviewService
}

func newReviewFixture() *reviewFixture {
	f := &reviewFixture{
		workerRepo:    newFakeWorkerRepo(),
		screeningRepo: newFakeScreeningRepo(),
		subRepo:       newFakeSubmissionRepo(),
	}
	scoring := NewScoringService()
	f.svc = NewReviewService(f.subRepo, f.screeningRepo, NewLifecycleService(f.workerRepo), scoring)
	return f
}

// seedPending stores a hybrid screening with a rubric, a TEST_SUBMITTED
// worker and a pending submission tying them together.
func (f *reviewFixture) seedPending(t *testing.T) (*models.Screening, *models.Worker, *models.Submission) {
	t.Helper()
	ctx := context.Background()

	sc := twoChoiceScreening(models.EvaluationModeHybrid)
	sc.Rubric = []models.RubricCriterion{
		{Criteria: "clarity", Weight: 1, MaxScore: 10},
		{Criteria: "accuracy", Weight: 1, MaxScore: 10},
	}
	require.NoError(t, f.screeningRepo.Create(ctx, sc))

	w := newTestWorker(models.WorkerStatusTestSubmitted)
	w.AttemptCount = 1
	require.NoError(t, f.workerRepo.Create(ctx, w))

	autoScore := 80.0
	autoPass := true
	sub := &models.Submission{
		ID:               uuid.New(),
		WorkerID:         w.ID,
		ScreeningID:      sc.ID,
		Answers:          choiceAnswers("B", "A"),
		AutoScore:        &autoScore,
		AutoPass:         &autoPass,
		SubmissionStatus: models.SubmissionStatusPendingReview,
		SubmittedAt:      time.Now().UTC().Add(-time.Hour),
	}
	require.NoError(t, f.subRepo.Create(ctx, sub))
	return sc, w, sub
}

func TestReview_ApproveWithRubricAwards(t *testing.T) {
	f := newReviewFixture()
	_, w, sub := f.seedPending(t)
	adminID := uuid.New()

	resp, err := f.svc.Review(context.Background(), adminID, dtos.ReviewRequest{
		SubmissionID: sub.ID.String(),
		Action:       dtos.ReviewActionApprove,
		RubricAwards: []dtos.RubricAwardInput{
			{Criteria: "clarity", Awarded: 8},
			{Criteria: "accuracy", Awarded: 10},
		},
	})
	require.NoError(t, err)

	require.Equal(t, 90.0, *resp.Score)
	require.Equal(t, models.SubmissionStatusApproved, resp.SubmissionStatus)
	require.Equal(t, models.WorkerStatusReadyToWork, resp.NewStatus)
	require.Len(t, resp.RubricBreakdown, 2)

	stored, err := f.subRepo.GetByID(context.Background(), sub.ID)
	require.NoError(t, err)
	require.Equal(t, models.SubmissionStatusApproved, stored.SubmissionStatus)
	require.Equal(t, adminID, *stored.ReviewedBy)
	require.NotNil(t, stored.ReviewedAt)

	worker, err := f.workerRepo.GetByID(context.Background(), w.ID)
	require.NoError(t, err)
	require.Equal(t, models.WorkerStatusReadyToWork, worker.WorkerStatus)
}

func TestReview_AdminScoreOverridesRubric(t *testing.T) {
	f := newReviewFixture()
	_, _, sub := f.seedPending(t)

	resp, err := f.svc.Review(context.Background(), uuid.New(), dtos.ReviewRequest{
		SubmissionID: sub.ID.String(),
		Action:       dtos.ReviewActionApprove,
		AdminScore:   ptr(72.0),
		RubricAwards: []dtos.RubricAwardInput{{Criteria: "clarity", Awarded: 10}},
	})
	require.NoError(t, err)
	require.Equal(t, 72.0, *resp.Score)
	require.Empty(t, resp.RubricBreakdown)
}

func TestReview_NoScoreInputKeepsAdvisoryAutoScore(t *testing.T) {
	f := newReviewFixture()
	_, _, sub := f.seedPending(t)

	resp, err := f.svc.Review(context.Background(), uuid.New(), dtos.ReviewRequest{
		SubmissionID: sub.ID.String(),
		Action:       dtos.ReviewActionApprove,
	})
	require.NoError(t, err)
	require.Equal(t, 80.0, *resp.Score)
}

func TestReview_ManualApproveWithoutScoreRejected(t *testing.T) {
	f := newReviewFixture()
	ctx := context.Background()

	sc := twoChoiceScreening(models.EvaluationModeManual)
	require.NoError(t, f.screeningRepo.Create(ctx, sc))
	w := newTestWorker(models.WorkerStatusTestSubmitted)
	require.NoError(t, f.workerRepo.Create(ctx, w))
	sub := &models.Submission{
		ID:               uuid.New(),
		WorkerID:         w.ID,
		ScreeningID:      sc.ID,
		Answers:          choiceAnswers("B", "A"),
		SubmissionStatus: models.SubmissionStatusPendingReview,
		SubmittedAt:      time.Now().UTC(),
	}
	require.NoError(t, f.subRepo.Create(ctx, sub))

	_, err := f.svc.Review(ctx, uuid.New(), dtos.ReviewRequest{
		SubmissionID: sub.ID.String(),
		Action:       dtos.ReviewActionApprove,
	})
	require.ErrorIs(t, err, utils.ErrScoreRequired)

	// Rejecting without a score is fine.
	resp, err := f.svc.Review(ctx, uuid.New(), dtos.ReviewRequest{
		SubmissionID: sub.ID.String(),
		Action:       dtos.ReviewActionReject,
	})
	require.NoError(t, err)
	require.Nil(t, resp.Score)
	require.Equal(t, models.WorkerStatusFailed, resp.NewStatus)
}

func TestReview_RejectMovesWorkerToFailed(t *testing.T) {
	f := newReviewFixture()
	_, w, sub := f.seedPending(t)

	resp, err := f.svc.Review(context.Background(), uuid.New(), dtos.ReviewRequest{
		SubmissionID: sub.ID.String(),
		Action:       dtos.ReviewActionReject,
	})
	require.NoError(t, err)
	require.Equal(t, models.SubmissionStatusRejected, resp.SubmissionStatus)
	require.Equal(t, models.WorkerStatusFailed, resp.NewStatus)

	worker, err := f.workerRepo.GetByID(context.Background(), w.ID)
	require.NoError(t, err)
	require.Equal(t, models.WorkerStatusFailed, worker.WorkerStatus)
}

func TestReview_SecondDecisionIsAlreadyFinalized(t *testing.T) {
	f := newReviewFixture()
	_, _, sub := f.seedPending(t)

	req := dtos.ReviewRequest{
		SubmissionID: sub.ID.String(),
		Action:       dtos.ReviewActionApprove,
	}
	_, err := f.svc.Review(context.Background(), uuid.New(), req)
	require.NoError(t, err)

	_, err = f.svc.Review(context.Background(), uuid.New(), req)

	var finalized *utils.AlreadyFinalizedError
	require.ErrorAs(t, err, &finalized)
	require.Equal(t, string(models.SubmissionStatusApproved), finalized.Status)
}

// racingSubmissionRepo simulates a writer that bumps the row between the
// review's read and its conditional write.
type racingSubmissionRepo struct {
	*fakeSubmissionRepo
}

func (r *racingSubmissionRepo) UpdateIfVersion(ctx context.Context, s *models.Submission, expected int64) (pgconn.CommandTag, error) {
	return r.fakeSubmissionRepo.UpdateIfVersion(ctx, s, expected-1)
}

func TestReview_StaleVersionLosesRace(t *testing.T) {
	f := newReviewFixture()
	_, _, sub := f.seedPending(t)
	ctx := context.Background()

	f.svc = NewReviewService(
		&racingSubmissionRepo{f.subRepo},
		f.screeningRepo,
		NewLifecycleService(f.workerRepo),
		NewScoringService(),
	)

	_, err := f.svc.Review(ctx, uuid.New(), dtos.ReviewRequest{
		SubmissionID: sub.ID.String(),
		Action:       dtos.ReviewActionApprove,
	})
	require.ErrorIs(t, err, utils.ErrRowVersionConflict)
}

func TestReview_UnknownSubmission(t *testing.T) {
	f := newReviewFixture()

	_, err := f.svc.Review(context.Background(), uuid.New(), dtos.ReviewRequest{
		SubmissionID: uuid.New().String(),
		Action:       dtos.ReviewActionApprove,
	})
	require.ErrorIs(t, err, utils.ErrSubmissionNotFound)
}

func TestListPending_FiltersByScreening(t *testing.T) {
	f := newReviewFixture()
	sc, _, sub := f.seedPending(t)
	ctx := context.Background()

	// A second pending submission on a different screening.
	other := twoChoiceScreening(models.EvaluationModeManual)
	require.NoError(t, f.screeningRepo.Create(ctx, other))
	require.NoError(t, f.subRepo.Create(ctx, &models.Submission{
		ID:               uuid.New(),
		WorkerID:         uuid.New(),
		ScreeningID:      other.ID,
		Answers:          choiceAnswers("A", "A"),
		SubmissionStatus: models.SubmissionStatusPendingReview,
		SubmittedAt:      time.Now().UTC(),
	}))

	all, err := f.svc.ListPending(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)

	narrowed, err := f.svc.ListPending(ctx, &sc.ID)
	require.NoError(t, err)
	require.Len(t, narrowed, 1)
	require.Equal(t, sub.ID, narrowed[0].SubmissionID)
	require.Equal(t, models.EvaluationModeHybrid, narrowed[0].EvaluationMode)
}
