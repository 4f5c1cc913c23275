package orders

import (
	"context"
	"fmt"
	"time"

	"almacen/pkg/numerator"
)

// Service provides business logic for orders.
type Service struct {
	repo    Repository
	numbers *numerator.Service
}

// NewService creates a new orders service. numbers may be nil, in which
// case callers must supply order numbers themselves.
func NewService(repo Repository, numbers *numerator.Service) *Service {
	return &Service{repo: repo, numbers: numbers}
}

// Create validates and persists a new order, assigning a number when the
// caller left it empty.
func (s *Service) Create(ctx context.Context, order *Order) error {
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}

	if order.Number == "" && s.numbers != nil {
		number, err := s.numbers.GetNextNumber(ctx, numerator.DefaultConfig("ORD"), nil, order.CreatedAt)
		if err != nil {
			return fmt.Errorf("assign order number: %w", err)
		}
		order.Number = number
	}

	if err := order.Validate(ctx); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

// GetByID retrieves an order by id.
func (s *Service) GetByID(ctx context.Context, orderID int64) (*Order, error) {
	return s.repo.GetByID(ctx, orderID)
}

// List retrieves orders matching the filter.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Order, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 500 {
		filter.Limit = 500
	}
	return s.repo.List(ctx, filter)
}
