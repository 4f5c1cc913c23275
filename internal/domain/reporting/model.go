// Package reporting implements the weekly automatic reporting scheduler:
// anchored week windows, order aggregation into report views, the
// reported-order tracker that guarantees at-most-once inclusion, the
// recurring poller, the historical backfill and the manual trigger.
package reporting

import (
	"time"

	"github.com/shopspring/decimal"

	"almacen/internal/core/id"
	"almacen/internal/domain/orders"
)

// ReportKind distinguishes how a report was triggered.
type ReportKind string

const (
	KindAutomatic ReportKind = "automatic"
	KindManual    ReportKind = "manual"
)

// GeneralSummary is the top-level aggregate view of a report.
type GeneralSummary struct {
	TotalOrders     int       `json:"totalOrders"`
	TotalProducts   int       `json:"totalProducts"`
	DistinctClients int       `json:"distinctClients"`
	FirstOrderAt    time.Time `json:"firstOrderAt"`
	LastOrderAt     time.Time `json:"lastOrderAt"`
}

// ProductTotal is a product row within a supplier group, with quantities
// summed across every order in the report.
type ProductTotal struct {
	ProductID   id.ID           `json:"productId"`
	Code        string          `json:"code"`
	Description string          `json:"description"`
	Unit        string          `json:"unit"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// SupplierGroup groups product totals by the supplying counterparty.
type SupplierGroup struct {
	SupplierID   id.ID          `json:"supplierId"`
	SupplierName string         `json:"supplierName"`
	Products     []ProductTotal `json:"products"`
}

// DetailItem is a (description, quantity) pair within an order detail row.
type DetailItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// OrderDetail is the per-order projection, report-friendly and flat.
type OrderDetail struct {
	OrderID    int64        `json:"orderId"`
	Number     string       `json:"number"`
	CreatedAt  time.Time    `json:"createdAt"`
	ClientName string       `json:"clientName"`
	Items      []DetailItem `json:"items"`
}

// GeneratedReport is an immutable, append-only weekly (or manual) report.
// A report covering zero orders is never created.
type GeneratedReport struct {
	ID          string     `json:"id"`
	Kind        ReportKind `json:"kind"`
	GeneratedAt time.Time  `json:"generatedAt"`
	PeriodStart time.Time  `json:"periodStart"`
	PeriodEnd   time.Time  `json:"periodEnd"`

	// OrderIDs is the set of orders this report includes. Each order id
	// appears in at most one persisted report, ever.
	OrderIDs []int64 `json:"orderIds"`

	General    GeneralSummary  `json:"general"`
	BySupplier []SupplierGroup `json:"bySupplier"`
	PerOrder   []OrderDetail   `json:"perOrder"`
}

// ReportedMarker records that an order has been included in a report.
// Created only as a side effect of successful report generation, never
// deleted in normal operation.
type ReportedMarker struct {
	OrderID  int64     `db:"order_id" json:"orderId"`
	ReportID string    `db:"report_id" json:"reportId"`
	MarkedAt time.Time `db:"marked_at" json:"markedAt"`
}

// SchedulerStatus is the transient, in-memory poller state. Recomputed on
// every tick; not persisted.
type SchedulerStatus struct {
	Active        bool          `json:"active"`
	LastCheck     time.Time     `json:"lastCheck"`
	NextAnchor    time.Time     `json:"nextAnchor"`
	PendingOrders int           `json:"pendingOrders"`
	TimeUntilNext time.Duration `json:"timeUntilNextSeconds"`
}

// BackfillResult aggregates the outcome of a historical backfill run.
type BackfillResult struct {
	Success          bool     `json:"success"`
	ReportsGenerated int      `json:"reportsGenerated"`
	Errors           []string `json:"errors,omitempty"`
}

// buildReport assembles an immutable report from a non-empty candidate set.
func buildReport(list []orders.Order, kind ReportKind, prefix string, start, end, now time.Time) *GeneratedReport {
	ids := make([]int64, 0, len(list))
	for _, o := range list {
		ids = append(ids, o.ID)
	}

	return &GeneratedReport{
		ID:          id.NewReportID(prefix, now),
		Kind:        kind,
		GeneratedAt: now,
		PeriodStart: start,
		PeriodEnd:   end,
		OrderIDs:    ids,
		General:     BuildGeneralSummary(list, now),
		BySupplier:  BuildSupplierGroups(list),
		PerOrder:    BuildOrderDetails(list),
	}
}
