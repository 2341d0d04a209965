package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/pratik-mahalle/paddock/internal/api/dto"
	"github.com/pratik-mahalle/paddock/internal/api/middleware"
	"github.com/pratik-mahalle/paddock/internal/domain/motorcycle"
	"github.com/pratik-mahalle/paddock/internal/pkg/errors"
	"github.com/pratik-mahalle/paddock/internal/pkg/logger"
	"github.com/pratik-mahalle/paddock/internal/pkg/utils"
	"github.com/pratik-mahalle/paddock/internal/pkg/validator"
)

// MotorcycleHandler handles motorcycle requests
type MotorcycleHandler struct {
	service   motorcycle.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewMotorcycleHandler creates a new motorcycle handler
func NewMotorcycleHandler(service motorcycle.Service, log *logger.Logger, val *validator.Validator) *MotorcycleHandler {
	return &MotorcycleHandler{
		service:   service,
		logger:    log,
		validator: val,
	}
}

// Create creates a motorcycle
// @Summary Create motorcycle
// @Tags Motorcycles
// @Accept json
// @Produce json
// @Param request body dto.CreateMotorcycleRequest true "Motorcycle details"
// @Success 201 {object} motorcycle.Motorcycle
// @Router /motorcycles [post]
func (h *MotorcycleHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	var req dto.CreateMotorcycleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}
	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	m := &motorcycle.Motorcycle{
		TeamID:   req.TeamID,
		Make:     req.Make,
		Model:    req.Model,
		Year:     req.Year,
		Nickname: req.Nickname,
		Notes:    req.Notes,
	}

	created, err := h.service.Create(r.Context(), userID, m)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, created)
}

// List retrieves motorcycles visible to the requester
// @Summary List motorcycles
// @Description Individually owned, team garage, and unowned legacy bikes
// @Tags Motorcycles
// @Produce json
// @Success 200 {array} motorcycle.Motorcycle
// @Router /motorcycles [get]
func (h *MotorcycleHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	motorcycles, err := h.service.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, motorcycles)
}

// Get retrieves one motorcycle
// @Summary Get motorcycle
// @Tags Motorcycles
// @Produce json
// @Param motorcycleID path int true "Motorcycle ID"
// @Success 200 {object} motorcycle.Motorcycle
// @Router /motorcycles/{motorcycleID} [get]
func (h *MotorcycleHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)
	id, err := pathID(r, "motorcycleID")
	if err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid motorcycle ID"))
		return
	}

	m, err := h.service.Get(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, m)
}

// Update updates a motorcycle
// @Summary Update motorcycle
// @Tags Motorcycles
// @Accept json
// @Produce json
// @Param motorcycleID path int true "Motorcycle ID"
// @Param request body dto.UpdateMotorcycleRequest true "Motorcycle details"
// @Success 200 {object} motorcycle.Motorcycle
// @Failure 403 {object} utils.ErrorResponse "Not editable by requester"
// @Router /motorcycles/{motorcycleID} [put]
func (h *MotorcycleHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)
	id, err := pathID(r, "motorcycleID")
	if err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid motorcycle ID"))
		return
	}

	var req dto.UpdateMotorcycleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}
	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	m := &motorcycle.Motorcycle{
		ID:       id,
		Make:     req.Make,
		Model:    req.Model,
		Year:     req.Year,
		Nickname: req.Nickname,
		Notes:    req.Notes,
	}

	if err := h.service.Update(r.Context(), userID, m); err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, m)
}

// Delete deletes a motorcycle
// @Summary Delete motorcycle
// @Tags Motorcycles
// @Param motorcycleID path int true "Motorcycle ID"
// @Success 200 {object} utils.SuccessResponse
// @Router /motorcycles/{motorcycleID} [delete]
func (h *MotorcycleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)
	id, err := pathID(r, "motorcycleID")
	if err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid motorcycle ID"))
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Motorcycle deleted", nil)
}
