// internal/controllers/review_controller.go

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

type ReviewController struct {
	reviewService *services.ReviewService
}

func NewReviewController(rs *services.ReviewService) *ReviewController {
	return &ReviewController{reviewService: rs}
}

var reviewValidate = validator.New()

// ----------------------------------------------------------------
// GET /api/v1/admin/review-queue?screening_id=...
// ----------------------------------------------------------------
func (c *ReviewController) ListQueueHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var screeningID *uuid.UUID
	if raw := r.URL.Query().Get("screening_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid screening_id", nil, err)
			return
		}
		screeningID = &id
	}

	items, err := c.reviewService.ListPending(ctx, screeningID)
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to list review queue")
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to list review queue", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
}

// ----------------------------------------------------------------
// PUT /api/v1/admin/review
// ----------------------------------------------------------------
func (c *ReviewController) ReviewHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ctxUserID := ctx.Value(middleware.ContextKeyUserID)
	if ctxUserID == nil {
		utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "No userID in context", nil, nil)
		return
	}
	adminID, err := uuid.Parse(ctxUserID.(string))
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Malformed userID in token", nil, err)
		return
	}

	var req dtos.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if err := reviewValidate.StructCtx(ctx, req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Validation failed", validationErrors.Error(), nil)
		} else {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request data", nil, err)
		}
		return
	}

	resp, err := c.reviewService.Review(ctx, adminID, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
