package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// SessionService handles session-related API calls
type SessionService struct {
	client *Client
}

// SaveSessionRequest represents a request to record a session
type SaveSessionRequest struct {
	MotorcycleID int64     `json:"motorcycle_id"`
	EventName    string    `json:"event_name"`
	Track        string    `json:"track"`
	SessionType  string    `json:"session_type"`
	SessionDate  time.Time `json:"session_date"`
	Setup        Setup     `json:"setup"`
	Notes        string    `json:"notes,omitempty"`
	LapTimeBest  *string   `json:"lap_time_best,omitempty"`
}

// ListOptions contains pagination options for list calls
type ListOptions struct {
	Page     int
	PageSize int
}

func (o *ListOptions) query() string {
	if o == nil {
		return ""
	}
	q := url.Values{}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(o.PageSize))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// Save records a session. This call is subject to the caller's
// subscription and usage limits.
func (s *SessionService) Save(ctx context.Context, req SaveSessionRequest) (*Session, error) {
	var sess Session
	if err := s.client.doRequest(ctx, http.MethodPost, "/api/v1/sessions", req, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// List retrieves the caller's sessions
func (s *SessionService) List(ctx context.Context, opts *ListOptions) (*Page[Session], error) {
	var page Page[Session]
	path := "/api/v1/sessions" + opts.query()
	if err := s.client.doRequest(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Get retrieves a session by ID
func (s *SessionService) Get(ctx context.Context, id int64) (*Session, error) {
	var sess Session
	path := fmt.Sprintf("/api/v1/sessions/%d", id)
	if err := s.client.doRequest(ctx, http.MethodGet, path, nil, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Update updates a session
func (s *SessionService) Update(ctx context.Context, id int64, req SaveSessionRequest) (*Session, error) {
	var sess Session
	path := fmt.Sprintf("/api/v1/sessions/%d", id)
	if err := s.client.doRequest(ctx, http.MethodPut, path, req, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Delete removes a session
func (s *SessionService) Delete(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/v1/sessions/%d", id)
	return s.client.doRequest(ctx, http.MethodDelete, path, nil, nil)
}
