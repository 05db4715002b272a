package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/poofware/screening-service/internal/models"
)

/*
In-memory repository fakes. They mirror the real repositories' semantics:
UpdateWithRetry only commits when mutate succeeds, UpdateIfVersion only
writes on a version match, and a missing row surfaces as pgx.ErrNoRows.
*/

type fakeWorkerRepo struct {
	mu      sync.Mutex
	workers map[uuid.UUID]*models.Worker
}

func newFakeWorkerRepo() *fakeWorkerRepo {
	return &fakeWorkerRepo{workers: make(map[uuid.UUID]*models.Worker)}
}

func cloneWorker(w *models.Worker) *models.Worker {
	cp := *w
	cp.ScreeningsCompleted = append([]models.ScreeningRecord(nil), w.ScreeningsCompleted...)
	return &cp
}

func (r *fakeWorkerRepo) Create(_ context.Context, w *models.Worker) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.workers[w.ID] = cloneWorker(w)
	return nil
}

func (r *fakeWorkerRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Worker, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.workers[id]
	if !ok {
		return nil, nil
	}
	return cloneWorker(w), nil
}

func (r *fakeWorkerRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*models.Worker, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range r.workers {
		if w.UserID == userID {
			return cloneWorker(w), nil
		}
	}
	return nil, nil
}

func (r *fakeWorkerRepo) UpdateIfVersion(_ context.Context, w *models.Worker, expected int64) (pgconn.CommandTag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.workers[w.ID]
	if !ok || stored.RowVersion != expected {
		return pgconn.CommandTag("UPDATE 0"), nil
	}
	cp := cloneWorker(w)
	cp.RowVersion = expected + 1
	r.workers[w.ID] = cp
	return pgconn.CommandTag("UPDATE 1"), nil
}

func (r *fakeWorkerRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Worker) error) (*models.Worker, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.workers[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := cloneWorker(stored)
	if err := mutate(cp); err != nil {
		return nil, err
	}
	cp.RowVersion = stored.RowVersion + 1
	r.workers[id] = cloneWorker(cp)
	return cp, nil
}

type fakeScreeningRepo struct {
	mu         sync.Mutex
	screenings map[uuid.UUID]*models.Screening
}

func newFakeScreeningRepo() *fakeScreeningRepo {
	return &fakeScreeningRepo{screenings: make(map[uuid.UUID]*models.Screening)}
}

func (r *fakeScreeningRepo) Create(_ context.Context, s *models.Screening) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.screenings[s.ID] = s
	return nil
}

func (r *fakeScreeningRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Screening, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.screenings[id], nil
}

func (r *fakeScreeningRepo) ListByCategory(_ context.Context, category string) ([]*models.Screening, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Screening
	for _, s := range r.screenings {
		if s.Category == category {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeSubmissionRepo struct {
	mu          sync.Mutex
	submissions map[uuid.UUID]*models.Submission
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{submissions: make(map[uuid.UUID]*models.Submission)}
}

func cloneSubmission(s *models.Submission) *models.Submission {
	cp := *s
	cp.Answers = append([]models.Answer(nil), s.Answers...)
	cp.ValidationFlags = append([]models.ValidationFlag(nil), s.ValidationFlags...)
	cp.RubricBreakdown = append([]models.RubricAward(nil), s.RubricBreakdown...)
	return &cp
}

func (r *fakeSubmissionRepo) Create(_ context.Context, s *models.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.submissions[s.ID] = cloneSubmission(s)
	return nil
}

func (r *fakeSubmissionRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.submissions[id]
	if !ok {
		return nil, nil
	}
	return cloneSubmission(s), nil
}

func (r *fakeSubmissionRepo) UpdateIfVersion(_ context.Context, s *models.Submission, expected int64) (pgconn.CommandTag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.submissions[s.ID]
	if !ok || stored.RowVersion != expected {
		return pgconn.CommandTag("UPDATE 0"), nil
	}
	cp := cloneSubmission(s)
	cp.RowVersion = expected + 1
	r.submissions[s.ID] = cp
	return pgconn.CommandTag("UPDATE 1"), nil
}

func (r *fakeSubmissionRepo) ListPendingReview(_ context.Context, screeningID *uuid.UUID) ([]*models.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Submission
	for _, s := range r.submissions {
		if s.SubmissionStatus != models.SubmissionStatusPendingReview {
			continue
		}
		if screeningID != nil && s.ScreeningID != *screeningID {
			continue
		}
		out = append(out, cloneSubmission(s))
	}
	return out, nil
}

func (r *fakeSubmissionRepo) ListPendingOlderThan(_ context.Context, cutoff time.Time) ([]*models.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Submission
	for _, s := range r.submissions {
		if s.SubmissionStatus == models.SubmissionStatusPendingReview && !s.Escalated && s.SubmittedAt.Before(cutoff) {
			out = append(out, cloneSubmission(s))
		}
	}
	return out, nil
}

func (r *fakeSubmissionRepo) SetEscalated(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.submissions[id]; ok {
		s.Escalated = true
	}
	return nil
}

// ---- test data builders ----

func ptr[T any](v T) *T { return &v }

func newTestWorker(status models.WorkerStatusType) *models.Worker {
	return &models.Worker{
		ID:                  uuid.New(),
		UserID:              uuid.New(),
		JobPositionID:       uuid.New(),
		WorkerStatus:        status,
		ApplicationApproved: true,
		MaxAttempts:         2,
		ScreeningsCompleted: []models.ScreeningRecord{},
	}
}

// twoChoiceScreening is the canonical two single-choice screening: correct
// answers are "B" then "A", 50 points each.
func twoChoiceScreening(mode models.EvaluationModeType) *models.Screening {
	return &models.Screening{
		ID:             uuid.New(),
		Title:          "Intake Screening",
		EvaluationMode: mode,
		PassingScore:   70,
		Questions: []models.Question{
			{
				ID:            uuid.New(),
				Type:          models.QuestionSingleChoice,
				Prompt:        "Pick one",
				Points:        50,
				Options:       []string{"A", "B", "C"},
				CorrectOption: ptr("B"),
			},
			{
				ID:            uuid.New(),
				Type:          models.QuestionSingleChoice,
				Prompt:        "Pick another",
				Points:        50,
				Options:       []string{"A", "B", "C"},
				CorrectOption: ptr("A"),
			},
		},
	}
}

func choiceAnswers(opts ...string) []models.Answer {
	answers := make([]models.Answer, 0, len(opts))
	for _, o := range opts {
		answers = append(answers, models.Answer{SelectedOption: ptr(o)})
	}
	return answers
}
