package dto

// CreateMotorcycleRequest represents a motorcycle creation request
type CreateMotorcycleRequest struct {
	TeamID   *int64 `json:"teamId,omitempty"`
	Make     string `json:"make" validate:"required,max=100"`
	Model    string `json:"model" validate:"required,max=100"`
	Year     int    `json:"year,omitempty" validate:"omitempty,min=1900,max=2100"`
	Nickname string `json:"nickname,omitempty" validate:"omitempty,max=100"`
	Notes    string `json:"notes,omitempty"`
}

// UpdateMotorcycleRequest represents a motorcycle update request
type UpdateMotorcycleRequest struct {
	Make     string `json:"make" validate:"required,max=100"`
	Model    string `json:"model" validate:"required,max=100"`
	Year     int    `json:"year,omitempty" validate:"omitempty,min=1900,max=2100"`
	Nickname string `json:"nickname,omitempty" validate:"omitempty,max=100"`
	Notes    string `json:"notes,omitempty"`
}
