package dto

// CheckoutRequest represents a plan purchase request
type CheckoutRequest struct {
	PlanID string `json:"planId" validate:"required"`
}
