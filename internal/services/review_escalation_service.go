// internal/services/review_escalation_service.go

package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/poofware/screening-service/internal/repositories"
	"github.com/poofware/screening-service/internal/utils"
)

/*
ReviewEscalationService periodically flags submissions that sat in
PENDING_REVIEW past the configured age, so stale manual/hybrid reviews
surface to admins instead of rotting at the bottom of the queue. Purely
advisory: it sets the escalated marker and logs queue depth, nothing else.
*/
type ReviewEscalationService struct {
	subRepo       repositories.SubmissionRepository
	maxPendingAge time.Duration
	cronSpec      string
	cron          *cron.Cron
}

func NewReviewEscalationService(
	subRepo repositories.SubmissionRepository,
	maxPendingAge time.Duration,
	cronSpec string,
) *ReviewEscalationService {
	return &ReviewEscalationService{
		subRepo:       subRepo,
		maxPendingAge: maxPendingAge,
		cronSpec:      cronSpec,
	}
}

func (s *ReviewEscalationService) Start() error {
	s.cron = cron.New(cron.WithLocation(time.UTC))
	_, err := s.cron.AddFunc(s.cronSpec, func() {
		if _, err := s.SweepOnce(context.Background()); err != nil {
			utils.Logger.WithError(err).Error("Review escalation sweep failed")
		}
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

func (s *ReviewEscalationService) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// SweepOnce flags every unescalated pending submission older than the
// window and returns how many were flagged.
func (s *ReviewEscalationService) SweepOnce(ctx context.Context) (int, error) {
	cutoff := time.Now().UTC().Add(-s.maxPendingAge)
	stale, err := s.subRepo.ListPendingOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	flagged := 0
	for _, sub := range stale {
		if err := s.subRepo.SetEscalated(ctx, sub.ID); err != nil {
			utils.Logger.WithFields(logrus.Fields{
				"submission_id": sub.ID,
			}).WithError(err).Error("Failed to escalate stale submission")
			continue
		}
		flagged++
	}

	if flagged > 0 {
		utils.Logger.WithFields(logrus.Fields{
			"flagged": flagged,
			"cutoff":  cutoff,
		}).Warn("Escalated stale pending reviews")
	}
	return flagged, nil
}
