package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/pratik-mahalle/paddock/internal/api/dto"
	"github.com/pratik-mahalle/paddock/internal/api/middleware"
	"github.com/pratik-mahalle/paddock/internal/auth"
	"github.com/pratik-mahalle/paddock/internal/config"
	"github.com/pratik-mahalle/paddock/internal/domain/user"
	"github.com/pratik-mahalle/paddock/internal/pkg/errors"
	"github.com/pratik-mahalle/paddock/internal/pkg/logger"
	"github.com/pratik-mahalle/paddock/internal/pkg/utils"
	"github.com/pratik-mahalle/paddock/internal/pkg/validator"
)

// AdminHandler handles admin-only operations
type AdminHandler struct {
	userService user.Service
	config      *config.Config
	logger      *logger.Logger
	validator   *validator.Validator
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(userService user.Service, cfg *config.Config, log *logger.Logger, val *validator.Validator) *AdminHandler {
	return &AdminHandler{
		userService: userService,
		config:      cfg,
		logger:      log,
		validator:   val,
	}
}

// ListUsers retrieves users with pagination
// @Summary List users
// @Tags Admin
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Items per page"
// @Success 200 {object} utils.PaginatedResponse
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	params := utils.ParsePaginationParams(r)

	users, total, err := h.userService.List(r.Context(), params.PageSize, params.Offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	dtos := make([]*dto.UserDTO, 0, len(users))
	for _, u := range users {
		dtos = append(dtos, dto.NewUserDTO(u))
	}

	utils.WriteSuccess(w, http.StatusOK,
		utils.NewPaginatedResponse(dtos, params.Page, params.PageSize, total))
}

// SwitchUser mints an access token for another user, tagged with the
// admin's identity for audit. The token is returned, not set as a cookie,
// so the admin's own session stays intact.
// @Summary Switch user
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.SwitchUserRequest true "Target user"
// @Success 200 {object} dto.AuthResponse
// @Router /admin/switch-user [post]
func (h *AdminHandler) SwitchUser(w http.ResponseWriter, r *http.Request) {
	adminID, _ := middleware.GetUserID(r)

	var req dto.SwitchUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}
	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}
	if req.UserID == adminID {
		utils.WriteError(w, errors.BadRequest("Already signed in as this user"))
		return
	}

	target, err := h.userService.GetByID(r.Context(), req.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	token, err := auth.MintImpersonationToken(target.ID, target.Email, adminID,
		h.config.Auth.JWTSecret, h.config.Auth.AccessTokenExpiry)
	if err != nil {
		utils.WriteError(w, errors.Internal("Failed to mint token", err))
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"admin_id":  adminID,
		"target_id": target.ID,
	}).Info("Admin switched user")

	utils.WriteSuccess(w, http.StatusOK, dto.AuthResponse{
		AccessToken: token,
		User:        dto.NewUserDTO(target),
	})
}
