// internal/services/attempt_tracker.go

package services

import "github.com/poofware/screening-service/internal/models"

// CanAttempt reports whether the worker has quota left for another
// screening attempt. The caller surfaces a false result as a permanent
// failure; this only reports the boolean.
func CanAttempt(w *models.Worker) bool {
	return w.AttemptCount < w.MaxAttempts
}

// RecordAttempt counts one completed submission, pass or fail. The counter
// only ever goes up.
func RecordAttempt(w *models.Worker) {
	w.AttemptCount++
}
