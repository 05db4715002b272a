// internal/controllers/submission_controller.go

package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/poofware/screening-service/internal/dtos"
	"github.com/poofware/screening-service/internal/middleware"
	"github.com/poofware/screening-service/internal/services"
	"github.com/poofware/screening-service/internal/utils"
)

type SubmissionController struct {
	submissionService *services.SubmissionService
	workerService     *services.WorkerService
}

func NewSubmissionController(ss *services.SubmissionService, ws *services.WorkerService) *SubmissionController {
	return &SubmissionController{submissionService: ss, workerService: ws}
}

var submitValidate = validator.New()

// ----------------------------------------------------------------
// POST /api/v1/screenings/submissions
// ----------------------------------------------------------------
func (c *SubmissionController) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ctxUserID := ctx.Value(middleware.ContextKeyUserID)
	if ctxUserID == nil {
		utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "No userID in context", nil, nil)
		return
	}
	userID, err := uuid.Parse(ctxUserID.(string))
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Malformed userID in token", nil, err)
		return
	}

	var req dtos.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if err := submitValidate.StructCtx(ctx, req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Validation failed", validationErrors.Error(), nil)
		} else {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request data", nil, err)
		}
		return
	}

	worker, err := c.workerService.GetWorkerByUserID(ctx, userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	resp, err := c.submissionService.Submit(ctx, worker.ID, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, resp)
}
