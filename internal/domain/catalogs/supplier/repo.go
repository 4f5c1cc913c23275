package supplier

import (
	"context"

	"almacen/internal/core/id"
)

// Repository defines the interface for supplier persistence.
type Repository interface {
	Create(ctx context.Context, s *Supplier) error
	GetByID(ctx context.Context, supplierID id.ID) (*Supplier, error)
	GetByCode(ctx context.Context, code string) (*Supplier, error)
	List(ctx context.Context, search string, limit, offset int) ([]*Supplier, error)
	Update(ctx context.Context, s *Supplier) error
}
