package orders

import (
	"context"
	"time"
)

// ListFilter contains filtering options for order listing.
type ListFilter struct {
	// FromDate/ToDate filter by order timestamp (half-open, [from, to))
	FromDate *time.Time
	ToDate   *time.Time

	// Pagination
	Limit  int
	Offset int
}

// Repository defines the interface for order persistence.
type Repository interface {
	// Create inserts a new order with its lines and assigns the id.
	Create(ctx context.Context, order *Order) error

	// GetByID retrieves an order with lines by id.
	GetByID(ctx context.Context, orderID int64) (*Order, error)

	// List retrieves orders with lines, newest first.
	List(ctx context.Context, filter ListFilter) ([]Order, error)

	// ListAll retrieves every order with lines, for report generation.
	ListAll(ctx context.Context) ([]Order, error)
}
