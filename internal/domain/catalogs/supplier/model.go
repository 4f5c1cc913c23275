// Package supplier provides the supplier catalog.
package supplier

import (
	"context"

	"almacen/internal/core/entity"
)

// Supplier represents a product supplier.
type Supplier struct {
	entity.Catalog

	// ContactEmail is the purchasing contact (optional)
	ContactEmail *string `db:"contact_email" json:"contactEmail,omitempty"`

	// Phone is the purchasing phone (optional)
	Phone *string `db:"phone" json:"phone,omitempty"`
}

// NewSupplier creates a new Supplier with required fields.
func NewSupplier(code, name string) *Supplier {
	return &Supplier{Catalog: entity.NewCatalog(code, name)}
}

// Validate implements entity.Validatable.
func (s *Supplier) Validate(ctx context.Context) error {
	return s.Catalog.Validate(ctx)
}
