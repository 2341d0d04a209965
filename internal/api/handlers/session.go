package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/pratik-mahalle/paddock/internal/api/dto"
	"github.com/pratik-mahalle/paddock/internal/api/middleware"
	"github.com/pratik-mahalle/paddock/internal/domain/session"
	"github.com/pratik-mahalle/paddock/internal/pkg/errors"
	"github.com/pratik-mahalle/paddock/internal/pkg/logger"
	"github.com/pratik-mahalle/paddock/internal/pkg/utils"
	"github.com/pratik-mahalle/paddock/internal/pkg/validator"
)

// SessionHandler handles session requests
type SessionHandler struct {
	service   session.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(service session.Service, log *logger.Logger, val *validator.Validator) *SessionHandler {
	return &SessionHandler{
		service:   service,
		logger:    log,
		validator: val,
	}
}

// Save persists a session. This is the usage-gated action: an inactive
// subscription or an exhausted plan limit is rejected with details the
// client can render.
// @Summary Save session
// @Tags Sessions
// @Accept json
// @Produce json
// @Param request body dto.SaveSessionRequest true "Session details"
// @Success 201 {object} session.Session
// @Failure 403 {object} utils.ErrorResponse "Subscription inactive or usage limit reached"
// @Router /sessions [post]
func (h *SessionHandler) Save(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	var req dto.SaveSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}
	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	saved, err := h.service.Save(r.Context(), userID, req.ToSession())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, saved)
}

// List retrieves the requester's sessions
// @Summary List sessions
// @Tags Sessions
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Items per page"
// @Success 200 {object} utils.PaginatedResponse
// @Router /sessions [get]
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)
	params := utils.ParsePaginationParams(r)

	sessions, total, err := h.service.List(r.Context(), userID, params.PageSize, params.Offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK,
		utils.NewPaginatedResponse(sessions, params.Page, params.PageSize, total))
}

// ListByMotorcycle retrieves sessions for one motorcycle
// @Summary List sessions by motorcycle
// @Tags Sessions
// @Produce json
// @Param motorcycleID path int true "Motorcycle ID"
// @Success 200 {object} utils.PaginatedResponse
// @Router /motorcycles/{motorcycleID}/sessions [get]
func (h *SessionHandler) ListByMotorcycle(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)
	motorcycleID, err := pathID(r, "motorcycleID")
	if err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid motorcycle ID"))
		return
	}
	params := utils.ParsePaginationParams(r)

	sessions, total, err := h.service.ListByMotorcycle(r.Context(), userID, motorcycleID, params.PageSize, params.Offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK,
		utils.NewPaginatedResponse(sessions, params.Page, params.PageSize, total))
}

// Get retrieves one session
// @Summary Get session
// @Tags Sessions
// @Produce json
// @Param sessionID path int true "Session ID"
// @Success 200 {object} session.Session
// @Router /sessions/{sessionID} [get]
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)
	id, err := pathID(r, "sessionID")
	if err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid session ID"))
		return
	}

	sess, err := h.service.Get(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, sess)
}

// Update updates a session
// @Summary Update session
// @Tags Sessions
// @Accept json
// @Produce json
// @Param sessionID path int true "Session ID"
// @Param request body dto.SaveSessionRequest true "Session details"
// @Success 200 {object} session.Session
// @Router /sessions/{sessionID} [put]
func (h *SessionHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)
	id, err := pathID(r, "sessionID")
	if err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid session ID"))
		return
	}

	var req dto.SaveSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}
	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	sess := req.ToSession()
	sess.ID = id

	if err := h.service.Update(r.Context(), userID, sess); err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, sess)
}

// Delete deletes a session
// @Summary Delete session
// @Tags Sessions
// @Param sessionID path int true "Session ID"
// @Success 200 {object} utils.SuccessResponse
// @Router /sessions/{sessionID} [delete]
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)
	id, err := pathID(r, "sessionID")
	if err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid session ID"))
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Session deleted", nil)
}
