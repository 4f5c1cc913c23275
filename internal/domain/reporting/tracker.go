package reporting

import (
	"context"
	"fmt"

	"almacen/internal/domain/orders"
)

// Tracker answers "which orders have been reported" by set-difference
// against the full persisted marker set. Date heuristics are deliberately
// not used: an order from any period stays unreported until explicitly
// included in a report.
type Tracker struct {
	repo Repository
}

// NewTracker creates a new reported-set tracker.
func NewTracker(repo Repository) *Tracker {
	return &Tracker{repo: repo}
}

// ReportedSet returns the full marker mapping order id -> report id.
func (t *Tracker) ReportedSet(ctx context.Context) (map[int64]string, error) {
	set, err := t.repo.ReportedOrderIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("load reported set: %w", err)
	}
	return set, nil
}

// UnreportedOrders returns all orders not yet covered by any report.
func (t *Tracker) UnreportedOrders(ctx context.Context) ([]orders.Order, error) {
	all, err := t.repo.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	reported, err := t.ReportedSet(ctx)
	if err != nil {
		return nil, err
	}

	return Unreported(all, reported), nil
}

// Unreported is the pure set-difference: orders whose id has no marker.
func Unreported(all []orders.Order, reported map[int64]string) []orders.Order {
	result := make([]orders.Order, 0, len(all))
	for _, o := range all {
		if _, ok := reported[o.ID]; ok {
			continue
		}
		result = append(result, o)
	}
	return result
}
