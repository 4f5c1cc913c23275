package reporting

import (
	"context"
	"fmt"
	"sort"

	"almacen/internal/core/id"
)

// RunHistoricalBackfill partitions every unreported order into consecutive
// weekly windows and generates one report per non-empty window, oldest
// first. Orders are marked reported as each window's report is persisted,
// so a later window or a concurrent manual trigger cannot double-count
// them. Safe to re-run: anything covered by a prior run is excluded by
// the reported-set difference, so re-invocation only fills gaps.
func (s *Scheduler) RunHistoricalBackfill(ctx context.Context) BackfillResult {
	s.genMu.Lock()
	defer s.genMu.Unlock()

	result := BackfillResult{Success: true}

	unreported, err := s.tracker.UnreportedOrders(ctx)
	if err != nil {
		result.Success = false
		result.Errors = append(result.Errors, fmt.Sprintf("load unreported orders: %v", err))
		return result
	}
	if len(unreported) == 0 {
		s.log.Infow("backfill: nothing unreported")
		return result
	}

	sort.Slice(unreported, func(i, j int) bool {
		return unreported[i].CreatedAt.Before(unreported[j].CreatedAt)
	})

	lastTimestamp := unreported[len(unreported)-1].CreatedAt
	window := s.anchor.WindowContaining(unreported[0].CreatedAt)
	remaining := unreported

	for !window.Start.After(lastTimestamp) {
		candidates := ordersInWindow(remaining, window)
		if len(candidates) > 0 {
			report, err := s.generate(ctx, candidates, KindAutomatic, id.PrefixHistorical, window.Start, window.End)
			if err != nil {
				// A failed window is recorded and skipped; the remaining
				// windows still get their chance. A re-run fills the gap.
				msg := fmt.Sprintf("window %s – %s: %v",
					window.Start.Format("2006-01-02 15:04"),
					window.End.Format("2006-01-02 15:04"),
					err,
				)
				result.Errors = append(result.Errors, msg)
				s.log.Errorw("backfill: window report failed",
					"window_start", window.Start, "window_end", window.End, "error", err)
			} else if report != nil {
				result.ReportsGenerated++
				remaining = excludeOrders(remaining, report.OrderIDs)
				s.log.Infow("backfill: report generated",
					"report_id", report.ID,
					"orders", len(report.OrderIDs),
					"window_start", window.Start,
					"window_end", window.End,
				)
			}
		}
		window = window.Next()
	}

	result.Success = len(result.Errors) == 0
	s.log.Infow("backfill finished",
		"reports_generated", result.ReportsGenerated,
		"errors", len(result.Errors),
	)
	return result
}
