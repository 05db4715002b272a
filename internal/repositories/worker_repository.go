// internal/repositories/worker_repository.go

package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/poofware/screening-service/internal/models"
)

type WorkerRepository interface {
	Create(ctx context.Context, w *models.Worker) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Worker, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Worker, error)
	UpdateIfVersion(ctx context.Context, w *models.Worker, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Worker) error) (*models.Worker, error)
}

type workerRepo struct {
	*BaseVersionedRepo[*models.Worker]
	db DB
}

func NewWorkerRepository(db DB) WorkerRepository {
	r := &workerRepo{db: db}
	selectStmt := baseSelectWorker() + " WHERE id=$1"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanWorker)
	return r
}

func baseSelectWorker() string {
	return `
        SELECT
            id, user_id, job_position_id,
            worker_status, application_approved,
            attempt_count, max_attempts,
            screenings_completed,
            total_earnings, pending_earnings,
            row_version, created_at, updated_at
        FROM workers
    `
}

func scanWorker(row pgx.Row) (*models.Worker, error) {
	var w models.Worker
	var history []byte
	err := row.Scan(
		&w.ID, &w.UserID, &w.JobPositionID,
		&w.WorkerStatus, &w.ApplicationApproved,
		&w.AttemptCount, &w.MaxAttempts,
		&history,
		&w.TotalEarnings, &w.PendingEarnings,
		&w.RowVersion, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if len(history) > 0 {
		if err := json.Unmarshal(history, &w.ScreeningsCompleted); err != nil {
			return nil, fmt.Errorf("corrupt screenings_completed for worker %s: %w", w.ID, err)
		}
	}
	return &w, nil
}

func (r *workerRepo) Create(ctx context.Context, w *models.Worker) error {
	history, err := json.Marshal(w.ScreeningsCompleted)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
        INSERT INTO workers (
            id, user_id, job_position_id,
            worker_status, application_approved,
            attempt_count, max_attempts,
            screenings_completed,
            total_earnings, pending_earnings
        ) VALUES (
            $1,$2,$3,
            $4,$5,
            $6,$7,
            $8,
            $9,$10
        )
    `,
		w.ID, w.UserID, w.JobPositionID,
		w.WorkerStatus, w.ApplicationApproved,
		w.AttemptCount, w.MaxAttempts,
		history,
		w.TotalEarnings, w.PendingEarnings,
	)
	return err
}

func (r *workerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Worker, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *workerRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Worker, error) {
	row := r.db.QueryRow(ctx, baseSelectWorker()+" WHERE user_id=$1", userID)
	return scanWorker(row)
}

func (r *workerRepo) UpdateIfVersion(ctx context.Context, w *models.Worker, expected int64) (pgconn.CommandTag, error) {
	history, err := json.Marshal(w.ScreeningsCompleted)
	if err != nil {
		return nil, err
	}
	return r.db.Exec(ctx, `
        UPDATE workers SET
            worker_status=$1,
            application_approved=$2,
            attempt_count=$3,
            max_attempts=$4,
            screenings_completed=$5,
            total_earnings=$6,
            pending_earnings=$7,
            row_version=row_version+1,
            updated_at=now()
        WHERE id=$8 AND row_version=$9
    `,
		w.WorkerStatus,
		w.ApplicationApproved,
		w.AttemptCount,
		w.MaxAttempts,
		history,
		w.TotalEarnings,
		w.PendingEarnings,
		w.ID,
		expected,
	)
}

func (r *workerRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Worker) error) (*models.Worker, error) {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}
