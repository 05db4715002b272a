// internal/controllers/helpers.go

package controllers

import (
	"errors"
	"net/http"

	"github.com/poofware/screening-service/internal/utils"
)

/*
respondServiceError maps domain errors onto stable HTTP error codes. Typed
engine rejections keep their detail so the UI can render a real message;
anything unrecognized is a 500.
*/
func respondServiceError(w http.ResponseWriter, err error) {
	var (
		validationErr *utils.ValidationError
		configErr     *utils.ConfigurationError
		transitionErr *utils.InvalidTransitionError
		attemptErr    *utils.AttemptExceededError
		finalizedErr  *utils.AlreadyFinalizedError
	)

	switch {
	case errors.As(err, &validationErr):
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Answer failed validation",
			map[string]any{"question_index": validationErr.QuestionIndex, "reason": validationErr.Reason},
		)
	case errors.As(err, &configErr):
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeConfiguration, "Screening is misconfigured",
			map[string]any{"reason": configErr.Reason},
		)
	case errors.As(err, &transitionErr):
		utils.RespondErrorWithCode(
			w, http.StatusConflict, utils.ErrCodeInvalidTransition, "Status change not allowed",
			map[string]any{"from": transitionErr.From, "to": transitionErr.To},
		)
	case errors.As(err, &attemptErr):
		utils.RespondErrorWithCode(
			w, http.StatusConflict, utils.ErrCodeAttemptExceeded, "No screening attempts remaining",
			map[string]any{"attempt_count": attemptErr.AttemptCount, "max_attempts": attemptErr.MaxAttempts},
		)
	case errors.As(err, &finalizedErr):
		utils.RespondErrorWithCode(
			w, http.StatusConflict, utils.ErrCodeAlreadyFinalized, "Submission review already finalized",
			map[string]any{"submission_id": finalizedErr.SubmissionID, "status": finalizedErr.Status},
		)
	case errors.Is(err, utils.ErrWorkerNotFound),
		errors.Is(err, utils.ErrScreeningNotFound),
		errors.Is(err, utils.ErrSubmissionNotFound):
		utils.RespondErrorWithCode(
			w, http.StatusNotFound, utils.ErrCodeNotFound, err.Error(), nil,
		)
	case errors.Is(err, utils.ErrScoreRequired):
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "A score is required to approve this submission", nil,
		)
	case errors.Is(err, utils.ErrApplicationNotApproved):
		utils.RespondErrorWithCode(
			w, http.StatusConflict, utils.ErrCodeWrongStatus, "Application has not been approved", nil,
		)
	case errors.Is(err, utils.ErrRowVersionConflict):
		utils.RespondErrorWithCode(
			w, http.StatusConflict, utils.ErrCodeRowVersionConflict, "Concurrent update, please retry", nil,
		)
	default:
		utils.RespondErrorWithCode(
			w, http.StatusInternalServerError, utils.ErrCodeInternal, "An unexpected error occurred", nil, err,
		)
	}
}
