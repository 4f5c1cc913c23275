// Package product provides the product catalog.
package product

import (
	"context"

	"almacen/internal/core/apperror"
	"almacen/internal/core/entity"
	"almacen/internal/core/id"
)

// Product represents a sellable item. Name doubles as the report-friendly
// description; Unit is the unit of measure label shown on reports.
type Product struct {
	entity.Catalog

	// Unit is the unit of measure label (e.g. "kg", "ud", "caja")
	Unit string `db:"unit" json:"unit"`

	// SupplierID references the supplying counterparty. Optional: a
	// product without a supplier is skipped by the by-supplier report
	// grouping, not errored.
	SupplierID *id.ID `db:"supplier_id" json:"supplierId,omitempty"`
}

// NewProduct creates a new Product with required fields.
func NewProduct(code, name, unit string) *Product {
	return &Product{
		Catalog: entity.NewCatalog(code, name),
		Unit:    unit,
	}
}

// Validate implements entity.Validatable.
func (p *Product) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}
	if p.Unit == "" {
		return apperror.NewValidation("unit is required").
			WithDetail("field", "unit")
	}
	return nil
}
