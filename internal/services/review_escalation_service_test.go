package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/poofware/screening-service/internal/constants"
	"github.com/poofware/screening-service/internal/models"
)

func pendingSubmissionAgedBy(age time.Duration) *models.Submission {
	return &models.Submission{
		ID:               uuid.New(),
		WorkerID:         uuid.New(),
		ScreeningID:      uuid.New(),
		Answers:          choiceAnswers("A"),
		SubmissionStatus: models.SubmissionStatusPendingReview,
		SubmittedAt:      time.Now().UTC().Add(-age),
	}
}

func TestSweepOnce_FlagsOnlyStalePending(t *testing.T) {
	repo := newFakeSubmissionRepo()
	ctx := context.Background()

	stale := pendingSubmissionAgedBy(72 * time.Hour)
	fresh := pendingSubmissionAgedBy(time.Hour)
	finalized := pendingSubmissionAgedBy(72 * time.Hour)
	finalized.SubmissionStatus = models.SubmissionStatusApproved
	for _, s := range []*models.Submission{stale, fresh, finalized} {
		require.NoError(t, repo.Create(ctx, s))
	}

	svc := NewReviewEscalationService(repo, constants.DefaultMaxPendingReviewAge, constants.ReviewEscalationCronSpec)

	flagged, err := svc.SweepOnce(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, flagged)

	got, err := repo.GetByID(ctx, stale.ID)
	require.NoError(t, err)
	require.True(t, got.Escalated)

	got, err = repo.GetByID(ctx, fresh.ID)
	require.NoError(t, err)
	require.False(t, got.Escalated)
}

func TestSweepOnce_AlreadyEscalatedNotRecounted(t *testing.T) {
	repo := newFakeSubmissionRepo()
	ctx := context.Background()

	stale := pendingSubmissionAgedBy(72 * time.Hour)
	require.NoError(t, repo.Create(ctx, stale))

	svc := NewReviewEscalationService(repo, 48*time.Hour, constants.ReviewEscalationCronSpec)

	flagged, err := svc.SweepOnce(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, flagged)

	flagged, err = svc.SweepOnce(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, flagged)
}

func TestEscalationService_StartRejectsBadSpec(t *testing.T) {
	svc := NewReviewEscalationService(newFakeSubmissionRepo(), time.Hour, "not a cron spec")
	require.Error(t, svc.Start())
}
