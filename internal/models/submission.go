// internal/models/submission.go

package models

import (
	"time"

	"github.com/google/uuid"
)

type SubmissionStatusType string

const (
	SubmissionStatusPendingReview SubmissionStatusType = "PENDING_REVIEW"
	SubmissionStatusApproved      SubmissionStatusType = "APPROVED"
	SubmissionStatusRejected      SubmissionStatusType = "REJECTED"
	SubmissionStatusAutoGraded    SubmissionStatusType = "AUTO_GRADED"
)

// ValidationFlag is advisory metadata attached by the rule runner. Flags
// never block scoring; they inform the human reviewer in manual/hybrid mode.
type ValidationFlag struct {
	Rule   string `json:"rule"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail,omitempty"`
}

// RubricAward is one criterion's awarded points in a rubric breakdown.
type RubricAward struct {
	Criteria string  `json:"criteria"`
	Weight   float64 `json:"weight"`
	MaxScore float64 `json:"max_score"`
	Awarded  float64 `json:"awarded"`
}

type Submission struct {
	Versioned

	ID          uuid.UUID `json:"id"`
	WorkerID    uuid.UUID `json:"worker_id"`
	ScreeningID uuid.UUID `json:"screening_id"`

	// Answers are index-aligned with the screening's question list.
	Answers []Answer `json:"answers"`

	// Score is the authoritative final score (0-100). Unset until an auto
	// grade lands or an admin finalizes a manual/hybrid review.
	Score *float64 `json:"score,omitempty"`

	// AutoScore/AutoPass carry the automatic component. In HYBRID mode they
	// are advisory only and never authoritative.
	AutoScore *float64 `json:"auto_score,omitempty"`
	AutoPass  *bool    `json:"auto_pass,omitempty"`

	// AdminScore is set at most once per review action while the submission
	// is still PENDING_REVIEW.
	AdminScore *float64 `json:"admin_score,omitempty"`

	ValidationFlags []ValidationFlag `json:"validation_flags,omitempty"`
	RubricBreakdown []RubricAward    `json:"rubric_breakdown,omitempty"`

	SubmissionStatus SubmissionStatusType `json:"submission_status"`

	// ElapsedMinutes is the caller-supplied wall-clock delta used by the
	// time-limit rule. Nil when the caller did not measure it.
	ElapsedMinutes *int `json:"elapsed_minutes,omitempty"`

	// Escalated marks submissions that sat in PENDING_REVIEW past the
	// escalation window.
	Escalated bool `json:"escalated"`

	ReviewedBy *uuid.UUID `json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`

	SubmittedAt time.Time `json:"submitted_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (s *Submission) GetID() string {
	return s.ID.String()
}

// Finalized reports whether the review decision is closed. Finalized
// submissions reject any further review.
func (s *Submission) Finalized() bool {
	return s.SubmissionStatus == SubmissionStatusApproved ||
		s.SubmissionStatus == SubmissionStatusRejected
}

// ScoreResult is the scoring engine's output for one submission.
type ScoreResult struct {
	Score     *float64
	AutoScore *float64
	AutoPass  *bool
}
