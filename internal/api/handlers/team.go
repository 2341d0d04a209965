package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pratik-mahalle/paddock/internal/api/dto"
	"github.com/pratik-mahalle/paddock/internal/api/middleware"
	"github.com/pratik-mahalle/paddock/internal/domain/team"
	"github.com/pratik-mahalle/paddock/internal/pkg/errors"
	"github.com/pratik-mahalle/paddock/internal/pkg/logger"
	"github.com/pratik-mahalle/paddock/internal/pkg/utils"
	"github.com/pratik-mahalle/paddock/internal/pkg/validator"
)

// TeamHandler handles team management requests
type TeamHandler struct {
	teamService team.Service
	logger      *logger.Logger
	validator   *validator.Validator
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(teamService team.Service, log *logger.Logger, val *validator.Validator) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
		logger:      log,
		validator:   val,
	}
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

// Create creates a team
// @Summary Create team
// @Description Create a race team. Requires an active Premier subscription.
// @Tags Teams
// @Accept json
// @Produce json
// @Param request body dto.CreateTeamRequest true "Team details"
// @Success 201 {object} team.Team
// @Failure 403 {object} utils.ErrorResponse "Premier subscription required"
// @Failure 409 {object} utils.ErrorResponse "Active team already owned"
// @Router /teams [post]
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	var req dto.CreateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}
	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	t, err := h.teamService.Create(r.Context(), userID, req.Name, req.Description)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, t)
}

// List retrieves the requester's teams
// @Summary List my teams
// @Tags Teams
// @Produce json
// @Success 200 {array} team.Team
// @Router /teams [get]
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	teams, err := h.teamService.ListMine(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, teams)
}

// Get retrieves one team
// @Summary Get team
// @Tags Teams
// @Produce json
// @Param teamID path int true "Team ID"
// @Success 200 {object} team.Team
// @Failure 403 {object} utils.ErrorResponse "Not a member"
// @Router /teams/{teamID} [get]
func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)
	teamID, err := pathID(r, "teamID")
	if err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid team ID"))
		return
	}

	t, err := h.teamService.Get(r.Context(), userID, teamID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, t)
}

// Members retrieves the memberships of a team
// @Summary List team members
// @Tags Teams
// @Produce json
// @Param teamID path int true "Team ID"
// @Success 200 {array} team.Membership
// @Router /teams/{teamID}/members [get]
func (h *TeamHandler) Members(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)
	teamID, err := pathID(r, "teamID")
	if err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid team ID"))
		return
	}

	members, err := h.teamService.ListMembers(r.Context(), userID, teamID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, members)
}

// RemoveMember removes a member from the team
// @Summary Remove team member
// @Tags Teams
// @Param teamID path int true "Team ID"
// @Param userID path int true "User ID to remove"
// @Success 200 {object} utils.SuccessResponse
// @Failure 403 {object} utils.ErrorResponse "Insufficient role or owner removal"
// @Router /teams/{teamID}/members/{userID} [delete]
func (h *TeamHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	requesterID, _ := middleware.GetUserID(r)
	teamID, err := pathID(r, "teamID")
	if err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid team ID"))
		return
	}
	targetID, err := pathID(r, "userID")
	if err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid user ID"))
		return
	}

	if err := h.teamService.RemoveMember(r.Context(), requesterID, teamID, targetID); err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Member removed", nil)
}

// Invite invites a user to the team by email
// @Summary Invite team member
// @Tags Teams
// @Accept json
// @Produce json
// @Param teamID path int true "Team ID"
// @Param request body dto.InviteMemberRequest true "Invitee email"
// @Success 201 {object} team.InviteResult
// @Failure 403 {object} utils.ErrorResponse "Insufficient role"
// @Router /teams/{teamID}/invitations [post]
func (h *TeamHandler) Invite(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)
	teamID, err := pathID(r, "teamID")
	if err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid team ID"))
		return
	}

	var req dto.InviteMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}
	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	result, err := h.teamService.Invite(r.Context(), userID, teamID, req.Email)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, result)
}

// Invitations lists pending invitations of a team
// @Summary List pending invitations
// @Tags Teams
// @Produce json
// @Param teamID path int true "Team ID"
// @Success 200 {array} team.Invitation
// @Router /teams/{teamID}/invitations [get]
func (h *TeamHandler) Invitations(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)
	teamID, err := pathID(r, "teamID")
	if err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid team ID"))
		return
	}

	invitations, err := h.teamService.ListInvitations(r.Context(), userID, teamID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, invitations)
}

// CancelInvitation deletes a pending invitation
// @Summary Cancel invitation
// @Tags Teams
// @Param teamID path int true "Team ID"
// @Param invitationID path int true "Invitation ID"
// @Success 200 {object} utils.SuccessResponse
// @Router /teams/{teamID}/invitations/{invitationID} [delete]
func (h *TeamHandler) CancelInvitation(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)
	teamID, err := pathID(r, "teamID")
	if err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid team ID"))
		return
	}
	invitationID, err := pathID(r, "invitationID")
	if err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid invitation ID"))
		return
	}

	if err := h.teamService.CancelInvitation(r.Context(), userID, teamID, invitationID); err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Invitation cancelled", nil)
}

// ValidateInvitation checks a pending invitation token
// @Summary Validate invitation token
// @Description Public lookup used by the acceptance page before login
// @Tags Teams
// @Produce json
// @Param token query string true "Invitation token"
// @Success 200 {object} team.Invitation
// @Failure 410 {object} utils.ErrorResponse "Expired or team inactive"
// @Router /invitations/validate [get]
func (h *TeamHandler) ValidateInvitation(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		utils.WriteError(w, errors.BadRequest("Missing invitation token"))
		return
	}

	inv, err := h.teamService.ValidateInvitation(r.Context(), token)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, inv)
}

// AcceptInvitation consumes an invitation for the authenticated user
// @Summary Accept invitation
// @Tags Teams
// @Accept json
// @Produce json
// @Param request body dto.AcceptInvitationRequest true "Invitation token"
// @Success 200 {object} team.Membership
// @Failure 403 {object} utils.ErrorResponse "Email mismatch"
// @Failure 409 {object} utils.ErrorResponse "Already a member"
// @Failure 410 {object} utils.ErrorResponse "Expired or team inactive"
// @Router /invitations/accept [post]
func (h *TeamHandler) AcceptInvitation(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)
	userEmail, _ := middleware.GetUserEmail(r)

	var req dto.AcceptInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}
	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	membership, err := h.teamService.Accept(r.Context(), userID, userEmail, req.Token)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, membership)
}
