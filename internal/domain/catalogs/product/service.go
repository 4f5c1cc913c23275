package product

import (
	"context"
	"fmt"

	"almacen/internal/core/apperror"
	"almacen/internal/core/id"
)

// Service provides business logic for the product catalog.
type Service struct {
	repo Repository
}

// NewService creates a new product service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and persists a new product.
func (s *Service) Create(ctx context.Context, p *Product) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}

	if p.Code != "" {
		if existing, err := s.repo.GetByCode(ctx, p.Code); err == nil && existing.ID != p.ID {
			return apperror.NewDuplicate("product", "code", p.Code)
		}
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// GetByID retrieves a product by id.
func (s *Service) GetByID(ctx context.Context, productID id.ID) (*Product, error) {
	return s.repo.GetByID(ctx, productID)
}

// Update validates and persists changes to an existing product.
func (s *Service) Update(ctx context.Context, p *Product) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// List retrieves products, optionally filtered by a search term.
func (s *Service) List(ctx context.Context, search string, limit, offset int) ([]*Product, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.repo.List(ctx, search, limit, offset)
}
