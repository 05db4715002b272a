// internal/controllers/worker_controller.go

package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/poofware/screening-service/internal/dtos"
	"github.com/poofware/screening-service/internal/middleware"
	"github.com/poofware/screening-service/internal/models"
	"github.com/poofware/screening-service/internal/services"
	"github.com/poofware/screening-service/internal/utils"
)

type WorkerController struct {
	workerService    *services.WorkerService
	lifecycleService *services.LifecycleService
}

func NewWorkerController(ws *services.WorkerService, ls *services.LifecycleService) *WorkerController {
	return &WorkerController{workerService: ws, lifecycleService: ls}
}

var workerValidate = validator.New()

// ----------------------------------------------------------------
// GET /api/v1/workers/me
// ----------------------------------------------------------------
func (c *WorkerController) GetMeHandler(w http.ResponseWriter, r *http.Request) {
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

	worker, err := c.workerService.GetWorkerByUserID(ctx, userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.NewWorkerDTO(worker))
}

// ----------------------------------------------------------------
// POST /api/v1/admin/workers
// ----------------------------------------------------------------
func (c *WorkerController) CreateWorkerHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dtos.CreateWorkerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if err := workerValidate.StructCtx(ctx, req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Validation failed", validationErrors.Error(), nil)
		} else {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request data", nil, err)
		}
		return
	}

	worker, err := c.workerService.CreateWorker(ctx, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dtos.NewWorkerDTO(worker))
}

// ----------------------------------------------------------------
// GET /api/v1/admin/workers/{id}
// ----------------------------------------------------------------
func (c *WorkerController) GetWorkerHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	workerID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid worker id", nil, err)
		return
	}

	worker, err := c.workerService.GetWorker(ctx, workerID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.NewWorkerDTO(worker))
}

// ----------------------------------------------------------------
// POST /api/v1/admin/workers/{id}/transition
// ----------------------------------------------------------------
func (c *WorkerController) TransitionHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	workerID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid worker id", nil, err)
		return
	}

	var req dtos.TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if err := workerValidate.StructCtx(ctx, req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Validation failed", validationErrors.Error(), nil)
		} else {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request data", nil, err)
		}
		return
	}

	if (req.Action == "complete_project" || req.Action == "settle_earnings") && req.Amount == nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			fmt.Sprintf("%s requires an amount", req.Action), nil,
		)
		return
	}

	worker, err := c.applyAction(ctx, workerID, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.NewWorkerDTO(worker))
}

// applyAction dispatches the action string onto the lifecycle service. The
// amount field is only meaningful for the earnings operations.
func (c *WorkerController) applyAction(ctx context.Context, workerID uuid.UUID, req dtos.TransitionRequest) (*models.Worker, error) {
	switch req.Action {
	case "approve_application":
		return c.lifecycleService.ApproveApplication(ctx, workerID)
	case "mark_training_viewed":
		return c.lifecycleService.MarkTrainingViewed(ctx, workerID)
	case "allow_retry":
		return c.lifecycleService.AllowRetry(ctx, workerID)
	case "suspend":
		return c.lifecycleService.Suspend(ctx, workerID)
	case "unsuspend":
		return c.lifecycleService.Unsuspend(ctx, workerID)
	case "assign_project":
		return c.lifecycleService.AssignProject(ctx, workerID)
	case "start_work":
		return c.lifecycleService.StartWork(ctx, workerID)
	case "submit_proof":
		return c.lifecycleService.SubmitProof(ctx, workerID)
	case "complete_project":
		return c.lifecycleService.CompleteProject(ctx, workerID, *req.Amount)
	case "settle_earnings":
		return c.lifecycleService.SettleEarnings(ctx, workerID, *req.Amount)
	}
	// Unreachable: the validator's oneof gate rejects unknown actions.
	return nil, fmt.Errorf("unknown action %q", req.Action)
}
