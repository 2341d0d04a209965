package session

import "time"

// Session is one on-track outing with the suspension and geometry setup
// that was run. Saving a session is the billable action counted against the
// plan's usage limit.
type Session struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	MotorcycleID int64     `json:"motorcycle_id"`
	EventName    string    `json:"event_name"`
	Track        string    `json:"track"`
	SessionType  string    `json:"session_type"`
	SessionDate  time.Time `json:"session_date"`

	Setup Setup `json:"setup"`

	Notes       string    `json:"notes,omitempty"`
	LapTimeBest *string   `json:"lap_time_best,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Setup holds the clicker, sag and chassis values for a session
type Setup struct {
	ForkPreload      *int     `json:"fork_preload,omitempty"`
	ForkCompression  *int     `json:"fork_compression,omitempty"`
	ForkRebound      *int     `json:"fork_rebound,omitempty"`
	ShockPreload     *int     `json:"shock_preload,omitempty"`
	ShockCompression *int     `json:"shock_compression,omitempty"`
	ShockRebound     *int     `json:"shock_rebound,omitempty"`
	SagFront         *float64 `json:"sag_front,omitempty"`
	SagRear          *float64 `json:"sag_rear,omitempty"`
	TirePressureF    *float64 `json:"tire_pressure_front,omitempty"`
	TirePressureR    *float64 `json:"tire_pressure_rear,omitempty"`
	FrontSprocket    *int     `json:"front_sprocket,omitempty"`
	RearSprocket     *int     `json:"rear_sprocket,omitempty"`
}

// Session types
const (
	TypePractice   = "practice"
	TypeQualifying = "qualifying"
	TypeRace       = "race"
	TypeTrackday   = "trackday"
	TypeTest       = "test"
)

// ValidTypes lists the accepted session types for validation tags
const ValidTypes = "practice qualifying race trackday test"
