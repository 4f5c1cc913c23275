package reporting

import (
	"context"
	"time"

	"almacen/internal/domain/orders"
)

// Repository is the persistence collaborator the reporting core consumes.
// Report generation is a read-unreported, compute, persist, mark-reported
// sequence; SaveReport must perform the persist and mark steps in one
// transaction with a conditional marker claim, so the at-most-once
// invariant holds even if two generation paths race.
type Repository interface {
	// ListOrders returns every order with lines, read-only.
	ListOrders(ctx context.Context) ([]orders.Order, error)

	// ListReports returns all generated reports, newest first.
	ListReports(ctx context.Context) ([]*GeneratedReport, error)

	// GetReport returns a single report by id.
	GetReport(ctx context.Context, reportID string) (*GeneratedReport, error)

	// ReportedOrderIDs returns the full marker set: order id -> report id.
	ReportedOrderIDs(ctx context.Context) (map[int64]string, error)

	// SaveReport persists the report and claims markers for its orders in
	// a single transaction. If any order is already claimed by another
	// report, nothing is persisted and an apperror with code
	// ORDER_ALREADY_REPORTED is returned carrying the conflicting ids.
	SaveReport(ctx context.Context, report *GeneratedReport) error

	// HasAutomaticReportEndingAt reports whether an automatic report whose
	// period ends exactly at the given anchor already exists. This is the
	// duplicate-fire guard: it survives process restarts because it is
	// derived from the persisted report set.
	HasAutomaticReportEndingAt(ctx context.Context, anchor time.Time) (bool, error)
}
