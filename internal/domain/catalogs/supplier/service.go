package supplier

import (
	"context"
	"fmt"

	"almacen/internal/core/id"
)

// Service provides business logic for the supplier catalog.
type Service struct {
	repo Repository
}

// NewService creates a new supplier service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and persists a new supplier.
func (s *Service) Create(ctx context.Context, sup *Supplier) error {
	if err := sup.Validate(ctx); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, sup); err != nil {
		return fmt.Errorf("create supplier: %w", err)
	}
	return nil
}

// GetByID retrieves a supplier by id.
func (s *Service) GetByID(ctx context.Context, supplierID id.ID) (*Supplier, error) {
	return s.repo.GetByID(ctx, supplierID)
}

// Update validates and persists changes to an existing supplier.
func (s *Service) Update(ctx context.Context, sup *Supplier) error {
	if err := sup.Validate(ctx); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, sup); err != nil {
		return fmt.Errorf("update supplier: %w", err)
	}
	return nil
}

// List retrieves suppliers, optionally filtered by a search term.
func (s *Service) List(ctx context.Context, search string, limit, offset int) ([]*Supplier, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.repo.List(ctx, search, limit, offset)
}
