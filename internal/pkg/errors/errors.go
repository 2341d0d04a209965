package errors

import (
	"fmt"
	"net/http"
)

// AppError represents an application error with additional context
type AppError struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	StatusCode int         `json:"-"`
	Internal   error       `json:"-"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Internal)
	}
	return e.Message
}

// Unwrap returns the internal error for errors.Is and errors.As
func (e *AppError) Unwrap() error {
	return e.Internal
}

// Common error codes
const (
	ErrCodeInternal            = "INTERNAL_ERROR"
	ErrCodeBadRequest          = "BAD_REQUEST"
	ErrCodeUnauthorized        = "UNAUTHORIZED"
	ErrCodeForbidden           = "FORBIDDEN"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeConflict            = "CONFLICT"
	ErrCodeValidation          = "VALIDATION_ERROR"
	ErrCodeDatabase            = "DATABASE_ERROR"
	ErrCodeRateLimited         = "RATE_LIMITED"
	ErrCodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"

	// Entitlement and team authorization codes
	ErrCodeEntitlementRequired = "ENTITLEMENT_REQUIRED"
	ErrCodeUsageLimitReached   = "USAGE_LIMIT_REACHED"
	ErrCodeTeamLimitExceeded   = "TEAM_LIMIT_EXCEEDED"
	ErrCodeInsufficientRole    = "INSUFFICIENT_ROLE"
	ErrCodeCannotRemoveOwner   = "CANNOT_REMOVE_OWNER"
	ErrCodeUseLeaveTeam        = "USE_LEAVE_TEAM"
	ErrCodeEmailMismatch       = "EMAIL_MISMATCH"
	ErrCodeInvitationExpired   = "INVITATION_EXPIRED"
	ErrCodeTeamInactive        = "TEAM_INACTIVE"
	ErrCodeAlreadyMember       = "ALREADY_MEMBER"
)

// New creates a new AppError
func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// Wrap wraps an error with an AppError
func Wrap(err error, code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Internal:   err,
	}
}

// WithDetails adds details to an AppError
func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

// Common error constructors

// Internal creates an internal server error
func Internal(message string, err error) *AppError {
	return Wrap(err, ErrCodeInternal, message, http.StatusInternalServerError)
}

// BadRequest creates a bad request error
func BadRequest(message string) *AppError {
	return New(ErrCodeBadRequest, message, http.StatusBadRequest)
}

// Unauthorized creates an unauthorized error
func Unauthorized(message string) *AppError {
	return New(ErrCodeUnauthorized, message, http.StatusUnauthorized)
}

// Forbidden creates a forbidden error
func Forbidden(message string) *AppError {
	return New(ErrCodeForbidden, message, http.StatusForbidden)
}

// NotFound creates a not found error
func NotFound(resource string) *AppError {
	return New(ErrCodeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

// Conflict creates a conflict error
func Conflict(message string) *AppError {
	return New(ErrCodeConflict, message, http.StatusConflict)
}

// ValidationError creates a validation error
func ValidationError(message string, details interface{}) *AppError {
	return New(ErrCodeValidation, message, http.StatusBadRequest).WithDetails(details)
}

// DatabaseError creates a database error
func DatabaseError(message string, err error) *AppError {
	return Wrap(err, ErrCodeDatabase, message, http.StatusInternalServerError)
}

// RateLimited creates a rate limited error
func RateLimited(message string) *AppError {
	return New(ErrCodeRateLimited, message, http.StatusTooManyRequests)
}

// UpstreamUnavailable creates an error for a failed billing or email provider call
func UpstreamUnavailable(provider string, err error) *AppError {
	return Wrap(err, ErrCodeUpstreamUnavailable,
		fmt.Sprintf("Failed to communicate with %s", provider),
		http.StatusBadGateway)
}

// IsNotFound reports whether err is an AppError with the not-found code
func IsNotFound(err error) bool {
	return HasCode(err, ErrCodeNotFound)
}

// HasCode reports whether err is an AppError carrying the given code
func HasCode(err error, code string) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Code == code
}

// Entitlement and team authorization constructors

// EntitlementRequired is returned when the user's subscription does not
// permit the requested action
func EntitlementRequired(message string) *AppError {
	return New(ErrCodeEntitlementRequired, message, http.StatusForbidden)
}

// UsageLimitReached is returned when the user's usage counter has hit the plan limit
func UsageLimitReached(message string) *AppError {
	return New(ErrCodeUsageLimitReached, message, http.StatusForbidden)
}

// TeamLimitExceeded is returned when a non-admin already owns an active team
func TeamLimitExceeded(message string) *AppError {
	return New(ErrCodeTeamLimitExceeded, message, http.StatusConflict)
}

// InsufficientRole is returned when the requester's team role does not
// permit the team-management action
func InsufficientRole(message string) *AppError {
	return New(ErrCodeInsufficientRole, message, http.StatusForbidden)
}

// CannotRemoveOwner is returned when a removal targets the team owner
func CannotRemoveOwner() *AppError {
	return New(ErrCodeCannotRemoveOwner, "The team owner cannot be removed", http.StatusForbidden)
}

// UseLeaveTeam is returned when a member tries to remove themselves
func UseLeaveTeam() *AppError {
	return New(ErrCodeUseLeaveTeam, "Use the leave-team operation to remove yourself", http.StatusBadRequest)
}

// EmailMismatch is returned when an invitation is accepted by a user whose
// email does not match the invited address
func EmailMismatch() *AppError {
	return New(ErrCodeEmailMismatch, "This invitation was sent to a different email address", http.StatusForbidden)
}

// InvitationExpired is returned for expired invitations
func InvitationExpired() *AppError {
	return New(ErrCodeInvitationExpired, "This invitation has expired", http.StatusGone)
}

// TeamInactive is returned when the invitation's team has been deactivated
func TeamInactive() *AppError {
	return New(ErrCodeTeamInactive, "This team is no longer active", http.StatusGone)
}

// AlreadyMember is returned when the accepting user already holds a
// membership row for the team
func AlreadyMember() *AppError {
	return New(ErrCodeAlreadyMember, "You are already a member of this team", http.StatusConflict)
}
