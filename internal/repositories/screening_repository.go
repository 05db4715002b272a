// internal/repositories/screening_repository.go

package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/poofware/screening-service/internal/models"
)

type ScreeningRepository interface {
	Create(ctx context.Context, s *models.Screening) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Screening, error)
	ListByCategory(ctx context.Context, category string) ([]*models.Screening, error)
}

type screeningRepo struct {
	db DB
}

func NewScreeningRepository(db DB) ScreeningRepository {
	return &screeningRepo{db: db}
}

func baseSelectScreening() string {
	return `
        SELECT
            id, title, category,
            questions, evaluation_mode,
            passing_score, rubric,
            min_justification_words, time_limit_minutes,
            created_at, updated_at
        FROM screenings
    `
}

func scanScreening(row pgx.Row) (*models.Screening, error) {
	var s models.Screening
	var questions, rubric []byte
	err := row.Scan(
		&s.ID, &s.Title, &s.Category,
		&questions, &s.EvaluationMode,
		&s.PassingScore, &rubric,
		&s.MinJustificationWords, &s.TimeLimitMinutes,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(questions, &s.Questions); err != nil {
		return nil, fmt.Errorf("corrupt questions for screening %s: %w", s.ID, err)
	}
	if len(rubric) > 0 {
		if err := json.Unmarshal(rubric, &s.Rubric); err != nil {
			return nil, fmt.Errorf("corrupt rubric for screening %s: %w", s.ID, err)
		}
	}
	return &s, nil
}

func (r *screeningRepo) Create(ctx context.Context, s *models.Screening) error {
	questions, err := json.Marshal(s.Questions)
	if err != nil {
		return err
	}
	rubric, err := json.Marshal(s.Rubric)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
        INSERT INTO screenings (
            id, title, category,
            questions, evaluation_mode,
            passing_score, rubric,
            min_justification_words, time_limit_minutes
        ) VALUES (
            $1,$2,$3,
            $4,$5,
            $6,$7,
            $8,$9
        )
    `,
		s.ID, s.Title, s.Category,
		questions, s.EvaluationMode,
		s.PassingScore, rubric,
		s.MinJustificationWords, s.TimeLimitMinutes,
	)
	return err
}

func (r *screeningRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Screening, error) {
	row := r.db.QueryRow(ctx, baseSelectScreening()+" WHERE id=$1", id)
	return scanScreening(row)
}

// ListByCategory is a soft lookup on the free-text category hint. Callers
// must tolerate empty results; category strings carry no referential
// integrity.
func (r *screeningRepo) ListByCategory(ctx context.Context, category string) ([]*models.Screening, error) {
	rows, err := r.db.Query(ctx, baseSelectScreening()+" WHERE category=$1 ORDER BY created_at DESC", category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Screening
	for rows.Next() {
		s, err := scanScreening(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
