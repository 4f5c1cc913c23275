package dto

import (
	"time"

	"almacen/internal/domain/reporting"
)

// ReportSummary is the list-view projection of a generated report. The
// full body (aggregate views) is only returned when fetching one report.
type ReportSummary struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	GeneratedAt time.Time `json:"generatedAt"`
	PeriodStart time.Time `json:"periodStart"`
	PeriodEnd   time.Time `json:"periodEnd"`
	OrderCount  int       `json:"orderCount"`
}

// FromReport creates a summary from a generated report.
func FromReport(report *reporting.GeneratedReport) ReportSummary {
	return ReportSummary{
		ID:          report.ID,
		Kind:        string(report.Kind),
		GeneratedAt: report.GeneratedAt,
		PeriodStart: report.PeriodStart,
		PeriodEnd:   report.PeriodEnd,
		OrderCount:  len(report.OrderIDs),
	}
}

// SchedulerStatusResponse is the poller state projection.
type SchedulerStatusResponse struct {
	Active           bool      `json:"active"`
	LastCheck        time.Time `json:"lastCheck"`
	NextAnchor       time.Time `json:"nextAnchor"`
	PendingOrders    int       `json:"pendingOrders"`
	TimeUntilNextSec int64     `json:"timeUntilNextSeconds"`
}

// FromSchedulerStatus converts domain status to the response shape.
func FromSchedulerStatus(status reporting.SchedulerStatus) SchedulerStatusResponse {
	return SchedulerStatusResponse{
		Active:           status.Active,
		LastCheck:        status.LastCheck,
		NextAnchor:       status.NextAnchor,
		PendingOrders:    status.PendingOrders,
		TimeUntilNextSec: int64(status.TimeUntilNext.Seconds()),
	}
}

// ManualReportResponse is returned by the manual trigger. Report is nil
// when there was nothing to report.
type ManualReportResponse struct {
	Generated bool           `json:"generated"`
	Report    *ReportSummary `json:"report,omitempty"`
}

// BackfillResponse mirrors reporting.BackfillResult.
type BackfillResponse struct {
	Success          bool     `json:"success"`
	ReportsGenerated int      `json:"reportsGenerated"`
	Errors           []string `json:"errors,omitempty"`
}
