package dto

import (
	"time"

	"github.com/pratik-mahalle/paddock/internal/domain/session"
)

// SaveSessionRequest represents a session save request
type SaveSessionRequest struct {
	MotorcycleID int64         `json:"motorcycleId" validate:"required"`
	EventName    string        `json:"eventName" validate:"required,max=255"`
	Track        string        `json:"track" validate:"required,max=255"`
	SessionType  string        `json:"sessionType" validate:"required,oneof=practice qualifying race trackday test"`
	SessionDate  time.Time     `json:"sessionDate" validate:"required"`
	Setup        session.Setup `json:"setup"`
	Notes        string        `json:"notes,omitempty"`
	LapTimeBest  *string       `json:"lapTimeBest,omitempty" validate:"omitempty,max=20"`
}

// ToSession maps the request onto a domain session
func (r *SaveSessionRequest) ToSession() *session.Session {
	return &session.Session{
		MotorcycleID: r.MotorcycleID,
		EventName:    r.EventName,
		Track:        r.Track,
		SessionType:  r.SessionType,
		SessionDate:  r.SessionDate,
		Setup:        r.Setup,
		Notes:        r.Notes,
		LapTimeBest:  r.LapTimeBest,
	}
}
