// Package orders provides the customer order document and its line items.
// Orders are the input the reporting core folds into weekly reports; the
// core never mutates an order, it only marks it as reported.
package orders

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"almacen/internal/core/apperror"
	"almacen/internal/core/id"
)

// Line is a single order position. Product, supplier and client names are
// denormalized at read time (repository joins) so the aggregators can stay
// pure and never reach back into the catalogs.
type Line struct {
	ProductID    id.ID           `db:"product_id" json:"productId"`
	ProductCode  string          `db:"product_code" json:"productCode"`
	Description  string          `db:"description" json:"description"`
	Unit         string          `db:"unit" json:"unit"`
	SupplierID   *id.ID          `db:"supplier_id" json:"supplierId,omitempty"`
	SupplierName string          `db:"supplier_name" json:"supplierName,omitempty"`
	Quantity     decimal.Decimal `db:"quantity" json:"quantity"`
}

// Order is a customer order. Immutable from the reporting core's
// perspective once created.
type Order struct {
	ID         int64     `db:"id" json:"id"`
	Number     string    `db:"number" json:"number"`
	ClientID   id.ID     `db:"client_id" json:"clientId"`
	ClientName string    `db:"client_name" json:"clientName"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	Lines      []Line    `db:"-" json:"lines"`
}

// Validate checks invariants before persistence.
func (o *Order) Validate(ctx context.Context) error {
	if id.IsNil(o.ClientID) {
		return apperror.NewValidation("client is required").
			WithDetail("field", "clientId")
	}
	if len(o.Lines) == 0 {
		return apperror.NewValidation("order must have at least one line").
			WithDetail("field", "lines")
	}
	for i, line := range o.Lines {
		if id.IsNil(line.ProductID) {
			return apperror.NewValidation("line product is required").
				WithDetail("field", "lines").
				WithDetail("index", i)
		}
		if line.Quantity.IsNegative() {
			return apperror.NewValidation("line quantity cannot be negative").
				WithDetail("field", "lines").
				WithDetail("index", i)
		}
	}
	return nil
}

// TotalQuantity sums quantities across all lines.
func (o *Order) TotalQuantity() decimal.Decimal {
	total := decimal.Zero
	for _, line := range o.Lines {
		total = total.Add(line.Quantity)
	}
	return total
}
