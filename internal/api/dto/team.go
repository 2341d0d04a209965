package dto

// CreateTeamRequest represents a team creation request
type CreateTeamRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description,omitempty" validate:"omitempty,max=500"`
}

// InviteMemberRequest represents a team invitation request
type InviteMemberRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// AcceptInvitationRequest represents an invitation acceptance
type AcceptInvitationRequest struct {
	Token string `json:"token" validate:"required"`
}
