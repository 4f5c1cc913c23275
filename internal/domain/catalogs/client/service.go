package client

import (
	"context"
	"fmt"

	"almacen/internal/core/id"
)

// Service provides business logic for the client catalog.
type Service struct {
	repo Repository
}

// NewService creates a new client service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and persists a new client.
func (s *Service) Create(ctx context.Context, c *Client) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	return nil
}

// GetByID retrieves a client by id.
func (s *Service) GetByID(ctx context.Context, clientID id.ID) (*Client, error) {
	return s.repo.GetByID(ctx, clientID)
}

// Update validates and persists changes to an existing client.
func (s *Service) Update(ctx context.Context, c *Client) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	return nil
}

// List retrieves clients, optionally filtered by a search term.
func (s *Service) List(ctx context.Context, search string, limit, offset int) ([]*Client, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.repo.List(ctx, search, limit, offset)
}
