package reporting

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"almacen/pkg/logger"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

func newTestScheduler(repo Repository, clock *fakeClock) *Scheduler {
	return NewScheduler(repo, SchedulerConfig{
		Anchor: Anchor{Weekday: time.Wednesday, Hour: 18},
		Now:    clock.Now,
	}, logger.Default())
}

func TestManualReport_NothingUnreported(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	clock := &fakeClock{t: ts("2024-01-10T12:00:00Z")}
	s := newTestScheduler(repo, clock)

	report, err := s.GenerateManualReport(ctx)
	require.NoError(t, err)
	assert.Nil(t, report)
	assert.Equal(t, 0, repo.reportCount())
}

func TestManualReport_SpansMinToNow(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	repo.addOrders(sampleOrders()...)
	clock := &fakeClock{t: ts("2024-01-10T12:00:00Z")}
	s := newTestScheduler(repo, clock)

	report, err := s.GenerateManualReport(ctx)
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.Equal(t, KindManual, report.Kind)
	assert.Equal(t, ts("2024-01-08T10:00:00Z"), report.PeriodStart)
	assert.Equal(t, ts("2024-01-10T12:00:00Z"), report.PeriodEnd)
	assert.Len(t, report.OrderIDs, 3)
	assert.Contains(t, report.ID, "MAN-")

	// Second manual trigger has nothing left.
	report, err = s.GenerateManualReport(ctx)
	require.NoError(t, err)
	assert.Nil(t, report)
	assert.Equal(t, 1, repo.reportCount())
}

func TestManualReport_SkipsFutureTimestamps(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	list := sampleOrders()
	list[2].CreatedAt = ts("2024-01-15T09:00:00Z") // clock-skewed future order
	repo.addOrders(list...)

	clock := &fakeClock{t: ts("2024-01-10T12:00:00Z")}
	s := newTestScheduler(repo, clock)

	report, err := s.GenerateManualReport(ctx)
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Len(t, report.OrderIDs, 2)
	assert.NotContains(t, report.OrderIDs, int64(3))
}

func TestTick_NoFireBeforeAnchor(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	repo.addOrders(sampleOrders()...)
	clock := &fakeClock{t: ts("2024-01-10T12:00:00Z")} // Wednesday noon, anchor is 18:00
	s := newTestScheduler(repo, clock)

	s.Tick(ctx)
	assert.Equal(t, 0, repo.reportCount())

	status := s.Status()
	assert.Equal(t, ts("2024-01-10T12:00:00Z"), status.LastCheck)
	assert.Equal(t, ts("2024-01-10T18:00:00Z"), status.NextAnchor)
	assert.Equal(t, 3, status.PendingOrders)
}

func TestTick_FiresOncePerCrossedAnchor(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	repo.addOrders(sampleOrders()...)
	clock := &fakeClock{t: ts("2024-01-10T12:00:00Z")}
	s := newTestScheduler(repo, clock)

	s.Tick(ctx) // establishes nextAnchor = Wed 18:00

	// Poll drift: the tick lands well past the anchor minute and still fires.
	clock.Set(ts("2024-01-10T18:03:27Z"))
	s.Tick(ctx)
	require.Equal(t, 1, repo.reportCount())

	reports, err := repo.ListReports(ctx)
	require.NoError(t, err)
	report := reports[0]
	assert.Equal(t, KindAutomatic, report.Kind)
	assert.Equal(t, ts("2024-01-03T18:00:00Z"), report.PeriodStart)
	assert.Equal(t, ts("2024-01-10T18:00:00Z"), report.PeriodEnd)
	assert.Len(t, report.OrderIDs, 3)
	assert.Contains(t, report.ID, "AUTO-")

	// Subsequent ticks in the same window generate nothing.
	clock.Set(ts("2024-01-10T18:04:27Z"))
	s.Tick(ctx)
	clock.Set(ts("2024-01-11T10:00:00Z"))
	s.Tick(ctx)
	assert.Equal(t, 1, repo.reportCount())

	status := s.Status()
	assert.Equal(t, ts("2024-01-17T18:00:00Z"), status.NextAnchor)
}

func TestTick_WindowGuardSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	repo.addOrders(sampleOrders()...)

	clock := &fakeClock{t: ts("2024-01-10T18:01:00Z")}
	s1 := newTestScheduler(repo, clock)
	s1.Tick(ctx)
	require.Equal(t, 1, repo.reportCount())

	// A fresh scheduler (simulated restart) sees the persisted report and
	// does not fire again for the same window.
	s2 := newTestScheduler(repo, clock)
	clock.Set(ts("2024-01-10T18:02:00Z"))
	s2.Tick(ctx)
	assert.Equal(t, 1, repo.reportCount())
}

func TestTick_EmptyWindowGeneratesNothing(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	// All orders predate the closed window.
	repo.addOrders(orderAt(1, "2023-11-01T10:00:00Z"))

	clock := &fakeClock{t: ts("2024-01-10T18:01:00Z")}
	s := newTestScheduler(repo, clock)
	s.Tick(ctx)

	assert.Equal(t, 0, repo.reportCount())
	// The anchor is still consumed.
	assert.Equal(t, ts("2024-01-17T18:00:00Z"), s.Status().NextAnchor)
}

func TestTick_SaveFailureRetriedNextTick(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	repo.addOrders(sampleOrders()...)

	unavailable := errors.New("connection refused")
	repo.saveErr = func(*GeneratedReport) error { return unavailable }

	clock := &fakeClock{t: ts("2024-01-10T18:01:00Z")}
	s := newTestScheduler(repo, clock)

	s.Tick(ctx) // persistence down: logged, tick survives
	assert.Equal(t, 0, repo.reportCount())

	// Next tick is the retry.
	repo.saveErr = nil
	clock.Set(ts("2024-01-10T18:02:00Z"))
	s.Tick(ctx)
	assert.Equal(t, 1, repo.reportCount())
}

func TestStartStop_Idempotent(t *testing.T) {
	repo := newMemoryRepo()
	clock := &fakeClock{t: ts("2024-01-10T12:00:00Z")}
	s := NewScheduler(repo, SchedulerConfig{
		Anchor:       Anchor{Weekday: time.Wednesday, Hour: 18},
		PollInterval: time.Hour,
		Now:          clock.Now,
	}, logger.Default())

	ctx := context.Background()
	s.Start(ctx)
	s.Start(ctx) // no-op
	assert.True(t, s.Status().Active)

	s.Stop()
	s.Stop() // idempotent
	assert.False(t, s.Status().Active)
}

func TestSubscribe_ReceivesStatusAndReports(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	repo.addOrders(sampleOrders()...)
	clock := &fakeClock{t: ts("2024-01-10T18:01:00Z")}
	s := newTestScheduler(repo, clock)

	sub := s.Subscribe()
	defer sub.Close()

	s.Tick(ctx)

	select {
	case report := <-sub.ReportGenerated:
		assert.Equal(t, KindAutomatic, report.Kind)
	default:
		t.Fatal("expected a report notification")
	}

	select {
	case status := <-sub.StatusUpdated:
		assert.Equal(t, ts("2024-01-10T18:01:00Z"), status.LastCheck)
	default:
		t.Fatal("expected a status notification")
	}
}
