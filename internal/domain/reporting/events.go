package reporting

import "sync"

// Notifications are fire-and-forget: a subscriber that is not draining
// its channels simply misses updates, and the next tick's status event
// supersedes anything dropped. Nothing is persisted or redelivered.

const subscriptionBuffer = 8

// Subscription delivers scheduler notifications to one listener.
type Subscription struct {
	// ReportGenerated receives every newly persisted report.
	ReportGenerated <-chan *GeneratedReport

	// StatusUpdated receives the refreshed status after every tick.
	StatusUpdated <-chan SchedulerStatus

	reports chan *GeneratedReport
	status  chan SchedulerStatus
	cancel  func(*Subscription)
	once    sync.Once
}

// Close detaches the subscription. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() { s.cancel(s) })
}

// broadcaster fans scheduler events out to registered subscriptions.
type broadcaster struct {
	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

func newBroadcaster() *broadcaster {
	return &broadcaster{subs: make(map[*Subscription]struct{})}
}

func (b *broadcaster) subscribe() *Subscription {
	reports := make(chan *GeneratedReport, subscriptionBuffer)
	status := make(chan SchedulerStatus, subscriptionBuffer)

	sub := &Subscription{
		ReportGenerated: reports,
		StatusUpdated:   status,
		reports:         reports,
		status:          status,
		cancel:          b.unsubscribe,
	}

	b.mu.Lock()
	b.subs[sub] = struct{}{}
	b.mu.Unlock()

	return sub
}

func (b *broadcaster) unsubscribe(sub *Subscription) {
	b.mu.Lock()
	delete(b.subs, sub)
	b.mu.Unlock()
}

func (b *broadcaster) publishReport(report *GeneratedReport) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for sub := range b.subs {
		select {
		case sub.reports <- report:
		default: // slow subscriber, drop
		}
	}
}

func (b *broadcaster) publishStatus(status SchedulerStatus) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for sub := range b.subs {
		select {
		case sub.status <- status:
		default:
		}
	}
}
