package reporting

import (
	"context"
	"sync"
	"time"

	"almacen/internal/core/apperror"
	"almacen/internal/core/id"
	"almacen/internal/domain/orders"
	"almacen/pkg/logger"
)

// DefaultPollInterval is the wall-clock spacing between poller evaluations.
const DefaultPollInterval = 60 * time.Second

// SchedulerConfig configures the weekly report scheduler.
type SchedulerConfig struct {
	// Anchor is the weekly window boundary. Zero value means DefaultAnchor.
	Anchor Anchor

	// PollInterval is the tick spacing. Zero means DefaultPollInterval.
	PollInterval time.Duration

	// Now is the clock source, replaceable in tests. Nil means time.Now.
	Now func() time.Time
}

// Scheduler owns the recurring automatic report generation plus the
// manual and historical one-shot triggers. Construct one per process and
// pass it to whatever needs to start/stop/query it; there is no hidden
// global instance.
//
// All three generation paths (tick, manual, backfill) serialize on genMu,
// and SaveReport additionally claims markers conditionally, so an order
// can never end up in two reports.
type Scheduler struct {
	repo    Repository
	tracker *Tracker
	anchor  Anchor
	poll    time.Duration
	now     func() time.Time
	log     *logger.Logger
	bus     *broadcaster

	genMu sync.Mutex // serializes report generation

	mu         sync.Mutex // guards run state and status fields
	running    bool
	cancel     context.CancelFunc
	lastCheck  time.Time
	nextAnchor time.Time
	pending    int
}

// NewScheduler creates a scheduler in the stopped state.
func NewScheduler(repo Repository, cfg SchedulerConfig, log *logger.Logger) *Scheduler {
	anchor := cfg.Anchor
	if anchor == (Anchor{}) {
		anchor = DefaultAnchor
	}
	poll := cfg.PollInterval
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Scheduler{
		repo:    repo,
		tracker: NewTracker(repo),
		anchor:  anchor,
		poll:    poll,
		now:     now,
		log:     log.WithComponent("report-scheduler"),
		bus:     newBroadcaster(),
	}
}

// Subscribe registers a notification listener.
func (s *Scheduler) Subscribe() *Subscription {
	return s.bus.subscribe()
}

// Start transitions stopped -> running and performs one evaluation
// immediately, then every poll interval. Calling Start while already
// running is a logged no-op.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		s.log.Infow("scheduler already running, start ignored")
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	s.running = true
	s.cancel = cancel
	s.nextAnchor = s.anchor.NextAfter(s.now())
	s.mu.Unlock()

	s.log.Infow("scheduler started",
		"anchor_weekday", s.anchor.Weekday.String(),
		"anchor_hour", s.anchor.Hour,
		"poll_interval", s.poll,
	)

	go s.run(runCtx)
}

// Stop cancels the timer. Idempotent. An in-flight evaluation runs to
// completion; Stop does not wait for it.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false
	s.cancel()
	s.log.Infow("scheduler stopped")
}

// Status returns the current transient scheduler state.
func (s *Scheduler) Status() SchedulerStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	remaining := time.Duration(0)
	if !s.nextAnchor.IsZero() {
		if d := s.nextAnchor.Sub(s.now()); d > 0 {
			remaining = d
		}
	}

	return SchedulerStatus{
		Active:        s.running,
		LastCheck:     s.lastCheck,
		NextAnchor:    s.nextAnchor,
		PendingOrders: s.pending,
		TimeUntilNext: remaining,
	}
}

func (s *Scheduler) run(ctx context.Context) {
	ticker := time.NewTicker(s.poll)
	defer ticker.Stop()

	// First evaluation fires right away, not after the first interval.
	s.Tick(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick performs one evaluation. Any failure is logged and terminal to
// this tick only: the next tick is the retry.
func (s *Scheduler) Tick(ctx context.Context) {
	now := s.now()

	s.mu.Lock()
	s.lastCheck = now
	nextAnchor := s.nextAnchor
	if nextAnchor.IsZero() {
		nextAnchor = s.anchor.NextAfter(now)
		s.nextAnchor = nextAnchor
	}
	s.mu.Unlock()

	if unreported, err := s.tracker.UnreportedOrders(ctx); err != nil {
		s.log.Errorw("tick: refresh pending orders failed", "error", err)
	} else {
		s.mu.Lock()
		s.pending = len(unreported)
		s.mu.Unlock()
	}

	// Generate when the anchor has passed, not on exact-minute equality:
	// a tick that fires late or after a process suspend still catches the
	// crossing.
	if !now.Before(nextAnchor) {
		if err := s.generateAutomatic(ctx, now); err != nil {
			s.log.Errorw("tick: automatic report generation failed", "error", err)
		}
	}

	s.bus.publishStatus(s.Status())
}

// generateAutomatic produces the report for the window that just closed
// at the most recent anchor.
func (s *Scheduler) generateAutomatic(ctx context.Context, now time.Time) error {
	s.genMu.Lock()
	defer s.genMu.Unlock()

	anchor := s.anchor.OnOrBefore(now)
	window := Window{Start: anchor.Add(-WindowLength), End: anchor}

	advance := func() {
		s.mu.Lock()
		s.nextAnchor = anchor.Add(WindowLength)
		s.mu.Unlock()
	}

	// Restart-safe duplicate guard: the persisted report set is the source
	// of truth for "already generated for this window".
	exists, err := s.repo.HasAutomaticReportEndingAt(ctx, anchor)
	if err != nil {
		return err
	}
	if exists {
		s.log.Debugw("automatic report already generated for window",
			"window_start", window.Start, "window_end", window.End)
		advance()
		return nil
	}

	unreported, err := s.tracker.UnreportedOrders(ctx)
	if err != nil {
		return err
	}

	candidates := ordersInWindow(unreported, window)
	if len(candidates) == 0 {
		s.log.Infow("no unreported orders in closed window, skipping report",
			"window_start", window.Start, "window_end", window.End)
		advance()
		return nil
	}

	report, err := s.generate(ctx, candidates, KindAutomatic, id.PrefixAutomatic, window.Start, window.End)
	if err != nil {
		return err
	}
	advance()

	if report != nil {
		s.log.Infow("automatic report generated",
			"report_id", report.ID,
			"orders", len(report.OrderIDs),
			"window_start", window.Start,
			"window_end", window.End,
		)
	}
	return nil
}

// GenerateManualReport reports all currently-unreported orders up to now
// as a single window. Returns (nil, nil) when there is nothing to report.
func (s *Scheduler) GenerateManualReport(ctx context.Context) (*GeneratedReport, error) {
	s.genMu.Lock()
	defer s.genMu.Unlock()

	now := s.now()

	unreported, err := s.tracker.UnreportedOrders(ctx)
	if err != nil {
		return nil, err
	}

	// Defensive: skip clock-skewed future timestamps.
	candidates := make([]orders.Order, 0, len(unreported))
	for _, o := range unreported {
		if !o.CreatedAt.After(now) {
			candidates = append(candidates, o)
		}
	}
	if len(candidates) == 0 {
		s.log.Infow("manual report requested with no unreported orders")
		return nil, nil
	}

	start := candidates[0].CreatedAt
	for _, o := range candidates {
		if o.CreatedAt.Before(start) {
			start = o.CreatedAt
		}
	}

	report, err := s.generate(ctx, candidates, KindManual, id.PrefixManual, start, now)
	if err != nil {
		return nil, err
	}
	if report != nil {
		s.log.Infow("manual report generated", "report_id", report.ID, "orders", len(report.OrderIDs))
	}
	return report, nil
}

// generate persists a report for the candidate set. Caller holds genMu.
// If the conditional marker claim loses some orders to a concurrent
// report, those orders are dropped and the report is rebuilt from the
// survivors instead of double-including them.
func (s *Scheduler) generate(ctx context.Context, candidates []orders.Order, kind ReportKind, prefix string, start, end time.Time) (*GeneratedReport, error) {
	list := candidates

	for len(list) > 0 {
		report := buildReport(list, kind, prefix, start, end, s.now())

		err := s.repo.SaveReport(ctx, report)
		if err == nil {
			s.bus.publishReport(report)
			return report, nil
		}

		appErr, ok := apperror.AsAppError(err)
		if !ok || appErr.Code != apperror.CodeAlreadyReported {
			return nil, err
		}

		conflicting, _ := appErr.Details["order_ids"].([]int64)
		if len(conflicting) == 0 {
			return nil, err
		}
		s.log.Warnw("orders claimed by another report, dropping from candidate set",
			"order_ids", conflicting)

		list = excludeOrders(list, conflicting)
	}

	return nil, nil
}

func ordersInWindow(list []orders.Order, w Window) []orders.Order {
	result := make([]orders.Order, 0, len(list))
	for _, o := range list {
		if w.Contains(o.CreatedAt) {
			result = append(result, o)
		}
	}
	return result
}

func excludeOrders(list []orders.Order, ids []int64) []orders.Order {
	drop := make(map[int64]struct{}, len(ids))
	for _, orderID := range ids {
		drop[orderID] = struct{}{}
	}
	result := make([]orders.Order, 0, len(list))
	for _, o := range list {
		if _, ok := drop[o.ID]; ok {
			continue
		}
		result = append(result, o)
	}
	return result
}
