// internal/controllers/screening_controller.go

package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/poofware/screening-service/internal/dtos"
	"github.com/poofware/screening-service/internal/services"
	"github.com/poofware/screening-service/internal/utils"
)

type ScreeningController struct {
	screeningService *services.ScreeningService
}

func NewScreeningController(ss *services.ScreeningService) *ScreeningController {
	return &ScreeningController{screeningService: ss}
}

var screeningValidate = validator.New()

// ----------------------------------------------------------------
// GET /api/v1/screenings/{id}
// ----------------------------------------------------------------
// Worker-facing view: answer keys are stripped by the DTO.
func (c *ScreeningController) GetScreeningHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid screening id", nil, err)
		return
	}

	screening, err := c.screeningService.GetScreening(ctx, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.NewScreeningDTO(screening))
}

// ----------------------------------------------------------------
// GET /api/v1/screenings?category=...
// ----------------------------------------------------------------
func (c *ScreeningController) ListScreeningsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	category := r.URL.Query().Get("category")
	if category == "" {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Missing category query parameter", nil)
		return
	}

	screenings, err := c.screeningService.ListScreenings(ctx, category)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	items := make([]*dtos.ScreeningDTO, 0, len(screenings))
	for _, s := range screenings {
		items = append(items, dtos.NewScreeningDTO(s))
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
}

// ----------------------------------------------------------------
// POST /api/v1/admin/screenings
// ----------------------------------------------------------------
func (c *ScreeningController) CreateScreeningHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dtos.CreateScreeningRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if err := screeningValidate.StructCtx(ctx, req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Validation failed", validationErrors.Error(), nil)
		} else {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request data", nil, err)
		}
		return
	}

	screening, err := c.screeningService.CreateScreening(ctx, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{"id": screening.ID})
}
