package reporting

import (
	"context"
	"sort"
	"sync"
	"time"

	"almacen/internal/core/apperror"
	"almacen/internal/domain/orders"
)

// memoryRepo is an in-memory Repository for tests. It mirrors the
// transactional semantics of the Postgres implementation: SaveReport
// persists nothing when any marker claim would conflict.
type memoryRepo struct {
	mu      sync.Mutex
	orders  []orders.Order
	reports map[string]*GeneratedReport
	markers map[int64]string

	// saveErr, when set, makes SaveReport fail for matching reports.
	saveErr func(*GeneratedReport) error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		reports: make(map[string]*GeneratedReport),
		markers: make(map[int64]string),
	}
}

// orderAt builds a minimal order for window placement tests.
func orderAt(orderID int64, stamp string) orders.Order {
	return orders.Order{
		ID:        orderID,
		ClientID:  clientA,
		CreatedAt: ts(stamp),
		Lines: []orders.Line{
			line(productFlour, "FL-01", "Harina 25kg", &supplier1, "Molinos SA", 1),
		},
	}
}

func (r *memoryRepo) addOrders(list ...orders.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = append(r.orders, list...)
}

func (r *memoryRepo) reportCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reports)
}

func (r *memoryRepo) ListOrders(_ context.Context) ([]orders.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]orders.Order, len(r.orders))
	copy(out, r.orders)
	return out, nil
}

func (r *memoryRepo) ListReports(_ context.Context) ([]*GeneratedReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*GeneratedReport, 0, len(r.reports))
	for _, rep := range r.reports {
		out = append(out, rep)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].GeneratedAt.After(out[j].GeneratedAt)
	})
	return out, nil
}

func (r *memoryRepo) GetReport(_ context.Context, reportID string) (*GeneratedReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rep, ok := r.reports[reportID]
	if !ok {
		return nil, apperror.NewNotFound("report", reportID)
	}
	return rep, nil
}

func (r *memoryRepo) ReportedOrderIDs(_ context.Context) (map[int64]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[int64]string, len(r.markers))
	for orderID, reportID := range r.markers {
		out[orderID] = reportID
	}
	return out, nil
}

func (r *memoryRepo) SaveReport(_ context.Context, report *GeneratedReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.saveErr != nil {
		if err := r.saveErr(report); err != nil {
			return err
		}
	}

	var conflicting []int64
	for _, orderID := range report.OrderIDs {
		if _, ok := r.markers[orderID]; ok {
			conflicting = append(conflicting, orderID)
		}
	}
	if len(conflicting) > 0 {
		return apperror.NewAlreadyReported(conflicting)
	}

	r.reports[report.ID] = report
	for _, orderID := range report.OrderIDs {
		r.markers[orderID] = report.ID
	}
	return nil
}

func (r *memoryRepo) HasAutomaticReportEndingAt(_ context.Context, anchor time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rep := range r.reports {
		if rep.Kind == KindAutomatic && rep.PeriodEnd.Equal(anchor) {
			return true, nil
		}
	}
	return false, nil
}
