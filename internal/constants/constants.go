// internal/constants/constants.go

package constants

import "time"

const (
	// DefaultMaxAttempts is the shared per-worker screening quota applied
	// when a worker is created without an explicit override.
	DefaultMaxAttempts = 3

	// ReviewEscalationCronSpec runs the stale-review sweep at the top of
	// every hour.
	ReviewEscalationCronSpec = "0 * * * *"

	// DefaultMaxPendingReviewAge is how long a submission may sit in
	// PENDING_REVIEW before the sweep escalates it.
	DefaultMaxPendingReviewAge = 48 * time.Hour
)
