package numerator

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
)

type mockRow struct {
	val int64
	err error
}

func (m *mockRow) Scan(dest ...any) error {
	if m.err != nil {
		return m.err
	}
	if len(dest) > 0 {
		if ptr, ok := dest[0].(*int64); ok {
			*ptr = m.val
		}
	}
	return nil
}

// mockQuerier simulates the sys_sequences UPSERT.
type mockQuerier struct {
	mu           sync.Mutex
	currentValue int64
}

func (m *mockQuerier) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	m.mu.Lock()
	defer m.mu.Unlock()

	var increment int64 = 1
	if len(args) == 2 {
		if val, ok := args[1].(int64); ok {
			increment = val
		}
	}

	m.currentValue += increment
	return &mockRow{val: m.currentValue}
}

func TestGetNextNumber_Strict(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()
	cfg := DefaultConfig("ORD")
	period := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	num, err := svc.GetNextNumber(ctx, cfg, nil, period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "ORD-2026-00001" {
		t.Errorf("expected ORD-2026-00001, got %s", num)
	}

	num, err = svc.GetNextNumber(ctx, cfg, nil, period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "ORD-2026-00002" {
		t.Errorf("expected ORD-2026-00002, got %s", num)
	}
}

func TestGetNextNumber_Cached(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()
	cfg := DefaultConfig("ORD")
	period := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	opts := &Options{Strategy: StrategyCached, RangeSize: 10}

	// First call reserves 1..10 in one round trip.
	num, err := svc.GetNextNumber(ctx, cfg, opts, period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "ORD-2026-00001" {
		t.Errorf("expected ORD-2026-00001, got %s", num)
	}
	if q.currentValue != 10 {
		t.Errorf("expected reserved max 10, got %d", q.currentValue)
	}

	// Subsequent calls are served from memory.
	for i := 2; i <= 10; i++ {
		num, err = svc.GetNextNumber(ctx, cfg, opts, period)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if num != "ORD-2026-00010" {
		t.Errorf("expected ORD-2026-00010, got %s", num)
	}
	if q.currentValue != 10 {
		t.Errorf("expected no extra round trips, max still 10, got %d", q.currentValue)
	}

	// Range exhausted: next call reserves 11..20.
	num, err = svc.GetNextNumber(ctx, cfg, opts, period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "ORD-2026-00011" {
		t.Errorf("expected ORD-2026-00011, got %s", num)
	}
	if q.currentValue != 20 {
		t.Errorf("expected reserved max 20, got %d", q.currentValue)
	}
}

func TestBuildKey_ResetPeriods(t *testing.T) {
	svc := New(&mockQuerier{})
	period := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		reset string
		want  string
	}{
		{"year", "ORD_2026"},
		{"month", "ORD_2026_03"},
		{"never", "ORD"},
	}
	for _, tt := range tests {
		cfg := DefaultConfig("ORD")
		cfg.ResetPeriod = tt.reset
		if got := svc.buildKey(cfg, period); got != tt.want {
			t.Errorf("reset %q: expected key %s, got %s", tt.reset, tt.want, got)
		}
	}
}
