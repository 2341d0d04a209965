package client

import (
	"context"
	"fmt"
	"net/http"
)

// MotorcycleService handles motorcycle-related API calls
type MotorcycleService struct {
	client *Client
}

// SaveMotorcycleRequest represents a request to create or update a motorcycle
type SaveMotorcycleRequest struct {
	Make     string `json:"make"`
	Model    string `json:"model"`
	Year     int    `json:"year,omitempty"`
	Nickname string `json:"nickname,omitempty"`
	Notes    string `json:"notes,omitempty"`
	TeamID   *int64 `json:"team_id,omitempty"`
}

// List retrieves the motorcycles visible to the caller
func (s *MotorcycleService) List(ctx context.Context) ([]Motorcycle, error) {
	var motorcycles []Motorcycle
	if err := s.client.doRequest(ctx, http.MethodGet, "/api/v1/motorcycles", nil, &motorcycles); err != nil {
		return nil, err
	}
	return motorcycles, nil
}

// Create registers a motorcycle, personal or team-shared
func (s *MotorcycleService) Create(ctx context.Context, req SaveMotorcycleRequest) (*Motorcycle, error) {
	var m Motorcycle
	if err := s.client.doRequest(ctx, http.MethodPost, "/api/v1/motorcycles", req, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Get retrieves a motorcycle by ID
func (s *MotorcycleService) Get(ctx context.Context, id int64) (*Motorcycle, error) {
	var m Motorcycle
	path := fmt.Sprintf("/api/v1/motorcycles/%d", id)
	if err := s.client.doRequest(ctx, http.MethodGet, path, nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Update updates a motorcycle
func (s *MotorcycleService) Update(ctx context.Context, id int64, req SaveMotorcycleRequest) (*Motorcycle, error) {
	var m Motorcycle
	path := fmt.Sprintf("/api/v1/motorcycles/%d", id)
	if err := s.client.doRequest(ctx, http.MethodPut, path, req, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Delete removes a motorcycle
func (s *MotorcycleService) Delete(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/v1/motorcycles/%d", id)
	return s.client.doRequest(ctx, http.MethodDelete, path, nil, nil)
}

// Sessions retrieves the sessions recorded on a motorcycle
func (s *MotorcycleService) Sessions(ctx context.Context, id int64, opts *ListOptions) (*Page[Session], error) {
	var page Page[Session]
	path := fmt.Sprintf("/api/v1/motorcycles/%d/sessions%s", id, opts.query())
	if err := s.client.doRequest(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
