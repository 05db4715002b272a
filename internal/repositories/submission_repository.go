// internal/repositories/submission_repository.go

package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/poofware/screening-service/internal/models"
)

type SubmissionRepository interface {
	Create(ctx context.Context, s *models.Submission) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Submission, error)
	UpdateIfVersion(ctx context.Context, s *models.Submission, expected int64) (pgconn.CommandTag, error)
	ListPendingReview(ctx context.Context, screeningID *uuid.UUID) ([]*models.Submission, error)
	ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*models.Submission, error)
	SetEscalated(ctx context.Context, id uuid.UUID) error
}

type submissionRepo struct {
	*BaseVersionedRepo[*models.Submission]
	db DB
}

func NewSubmissionRepository(db DB) SubmissionRepository {
	r := &submissionRepo{db: db}
	selectStmt := baseSelectSubmission() + " WHERE id=$1"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanSubmission)
	return r
}

func baseSelectSubmission() string {
	return `
        SELECT
            id, worker_id, screening_id,
            answers,
            score, auto_score, auto_pass, admin_score,
            validation_flags, rubric_breakdown,
            submission_status, elapsed_minutes, escalated,
            reviewed_by, reviewed_at,
            row_version, submitted_at, updated_at
        FROM submissions
    `
}

func scanSubmission(row pgx.Row) (*models.Submission, error) {
	var s models.Submission
	var answers, flags, breakdown []byte
	err := row.Scan(
		&s.ID, &s.WorkerID, &s.ScreeningID,
		&answers,
		&s.Score, &s.AutoScore, &s.AutoPass, &s.AdminScore,
		&flags, &breakdown,
		&s.SubmissionStatus, &s.ElapsedMinutes, &s.Escalated,
		&s.ReviewedBy, &s.ReviewedAt,
		&s.RowVersion, &s.SubmittedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(answers, &s.Answers); err != nil {
		return nil, fmt.Errorf("corrupt answers for submission %s: %w", s.ID, err)
	}
	if len(flags) > 0 {
		if err := json.Unmarshal(flags, &s.ValidationFlags); err != nil {
			return nil, fmt.Errorf("corrupt validation_flags for submission %s: %w", s.ID, err)
		}
	}
	if len(breakdown) > 0 {
		if err := json.Unmarshal(breakdown, &s.RubricBreakdown); err != nil {
			return nil, fmt.Errorf("corrupt rubric_breakdown for submission %s: %w", s.ID, err)
		}
	}
	return &s, nil
}

func (r *submissionRepo) Create(ctx context.Context, s *models.Submission) error {
	answers, err := json.Marshal(s.Answers)
	if err != nil {
		return err
	}
	flags, err := json.Marshal(s.ValidationFlags)
	if err != nil {
		return err
	}
	breakdown, err := json.Marshal(s.RubricBreakdown)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
        INSERT INTO submissions (
            id, worker_id, screening_id,
            answers,
            score, auto_score, auto_pass, admin_score,
            validation_flags, rubric_breakdown,
            submission_status, elapsed_minutes, escalated
        ) VALUES (
            $1,$2,$3,
            $4,
            $5,$6,$7,$8,
            $9,$10,
            $11,$12,$13
        )
    `,
		s.ID, s.WorkerID, s.ScreeningID,
		answers,
		s.Score, s.AutoScore, s.AutoPass, s.AdminScore,
		flags, breakdown,
		s.SubmissionStatus, s.ElapsedMinutes, s.Escalated,
	)
	return err
}

func (r *submissionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Submission, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

/*
UpdateIfVersion finalizes a review under optimistic locking. Answers are
immutable after insert and deliberately absent from the UPDATE; only the
review-owned columns can change.
*/
func (r *submissionRepo) UpdateIfVersion(ctx context.Context, s *models.Submission, expected int64) (pgconn.CommandTag, error) {
	breakdown, err := json.Marshal(s.RubricBreakdown)
	if err != nil {
		return nil, err
	}
	flags, err := json.Marshal(s.ValidationFlags)
	if err != nil {
		return nil, err
	}
	return r.db.Exec(ctx, `
        UPDATE submissions SET
            score=$1,
            admin_score=$2,
            validation_flags=$3,
            rubric_breakdown=$4,
            submission_status=$5,
            escalated=$6,
            reviewed_by=$7,
            reviewed_at=$8,
            row_version=row_version+1,
            updated_at=now()
        WHERE id=$9 AND row_version=$10
    `,
		s.Score,
		s.AdminScore,
		flags,
		breakdown,
		s.SubmissionStatus,
		s.Escalated,
		s.ReviewedBy,
		s.ReviewedAt,
		s.ID,
		expected,
	)
}

func (r *submissionRepo) ListPendingReview(ctx context.Context, screeningID *uuid.UUID) ([]*models.Submission, error) {
	stmt := baseSelectSubmission() + " WHERE submission_status=$1"
	args := []interface{}{models.SubmissionStatusPendingReview}
	if screeningID != nil {
		stmt += " AND screening_id=$2"
		args = append(args, *screeningID)
	}
	stmt += " ORDER BY submitted_at ASC"
	return r.list(ctx, stmt, args...)
}

func (r *submissionRepo) ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*models.Submission, error) {
	stmt := baseSelectSubmission() + `
        WHERE submission_status=$1 AND escalated=false AND submitted_at < $2
        ORDER BY submitted_at ASC`
	return r.list(ctx, stmt, models.SubmissionStatusPendingReview, cutoff)
}

func (r *submissionRepo) SetEscalated(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `
        UPDATE submissions SET escalated=true, updated_at=now() WHERE id=$1
    `, id)
	return err
}

func (r *submissionRepo) list(ctx context.Context, stmt string, args ...interface{}) ([]*models.Submission, error) {
	rows, err := r.db.Query(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Submission
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
