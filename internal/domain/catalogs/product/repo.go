package product

import (
	"context"

	"almacen/internal/core/id"
)

// Repository defines the interface for product persistence.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, productID id.ID) (*Product, error)
	GetByCode(ctx context.Context, code string) (*Product, error)
	List(ctx context.Context, search string, limit, offset int) ([]*Product, error)
	Update(ctx context.Context, p *Product) error
}
