package dto

import "github.com/pratik-mahalle/paddock/internal/domain/user"

// UserDTO represents a user in API responses
type UserDTO struct {
	ID                 int64  `json:"id"`
	Email              string `json:"email"`
	Name               string `json:"name,omitempty"`
	IsAdmin            bool   `json:"isAdmin"`
	SubscriptionStatus string `json:"subscriptionStatus"`
	SubscriptionPlan   string `json:"subscriptionPlan"`
	UsageCount         int    `json:"usageCount"`
	UsageLimit         *int   `json:"usageLimit"`
}

// NewUserDTO maps a domain user onto the API shape
func NewUserDTO(u *user.User) *UserDTO {
	return &UserDTO{
		ID:                 u.ID,
		Email:              u.Email,
		Name:               u.Name,
		IsAdmin:            u.IsAdmin,
		SubscriptionStatus: u.SubscriptionStatus,
		SubscriptionPlan:   u.SubscriptionPlan,
		UsageCount:         u.UsageCount,
		UsageLimit:         u.UsageLimit,
	}
}
