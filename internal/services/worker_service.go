// internal/services/worker_service.go

package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/poofware/screening-service/internal/constants"
	"github.com/poofware/screening-service/internal/dtos"
	"github.com/poofware/screening-service/internal/models"
	"github.com/poofware/screening-service/internal/repositories"
	"github.com/poofware/screening-service/internal/utils"
)

type WorkerService struct {
	workerRepo repositories.WorkerRepository
}

func NewWorkerService(workerRepo repositories.WorkerRepository) *WorkerService {
	return &WorkerService{workerRepo: workerRepo}
}

// CreateWorker registers a new applicant. Every worker starts in APPLIED;
// only the state machine moves them from there.
func (s *WorkerService) CreateWorker(ctx context.Context, req dtos.CreateWorkerRequest) (*models.Worker, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, err
	}
	positionID, err := uuid.Parse(req.JobPositionID)
	if err != nil {
		return nil, err
	}

	maxAttempts := constants.DefaultMaxAttempts
	if req.MaxAttempts != nil {
		maxAttempts = *req.MaxAttempts
	}

	w := &models.Worker{
		ID:                  uuid.New(),
		UserID:              userID,
		JobPositionID:       positionID,
		WorkerStatus:        models.WorkerStatusApplied,
		MaxAttempts:         maxAttempts,
		ScreeningsCompleted: []models.ScreeningRecord{},
	}
	if err := s.workerRepo.Create(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *WorkerService) GetWorker(ctx context.Context, id uuid.UUID) (*models.Worker, error) {
	w, err := s.workerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, utils.ErrWorkerNotFound
	}
	return w, nil
}

func (s *WorkerService) GetWorkerByUserID(ctx context.Context, userID uuid.UUID) (*models.Worker, error) {
	w, err := s.workerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, utils.ErrWorkerNotFound
	}
	return w, nil
}
