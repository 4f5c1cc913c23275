package reporting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

func TestAnchorOnOrBefore(t *testing.T) {
	anchor := Anchor{Weekday: time.Wednesday, Hour: 18}

	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "exactly on anchor belongs to window starting there",
			in:   ts("2024-01-10T18:00:00Z"), // Wednesday
			want: ts("2024-01-10T18:00:00Z"),
		},
		{
			name: "one second before anchor",
			in:   ts("2024-01-10T17:59:59Z"),
			want: ts("2024-01-03T18:00:00Z"),
		},
		{
			name: "one second after anchor",
			in:   ts("2024-01-10T18:00:01Z"),
			want: ts("2024-01-10T18:00:00Z"),
		},
		{
			name: "mid-week",
			in:   ts("2024-01-13T09:30:00Z"), // Saturday
			want: ts("2024-01-10T18:00:00Z"),
		},
		{
			name: "wednesday morning falls in previous window",
			in:   ts("2024-01-10T09:00:00Z"),
			want: ts("2024-01-03T18:00:00Z"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, anchor.OnOrBefore(tt.in))
		})
	}
}

func TestAnchorNextAfter(t *testing.T) {
	anchor := Anchor{Weekday: time.Wednesday, Hour: 18}

	// Strictly after: an instant exactly on the anchor yields the next one.
	got := anchor.NextAfter(ts("2024-01-10T18:00:00Z"))
	assert.Equal(t, ts("2024-01-17T18:00:00Z"), got)

	got = anchor.NextAfter(ts("2024-01-10T17:59:59Z"))
	assert.Equal(t, ts("2024-01-10T18:00:00Z"), got)
}

func TestWindowContaining_Scenario(t *testing.T) {
	// 2024-01-10 is a Wednesday. Orders at 09:00 and 15:00 on the 10th
	// both precede the 18:00 anchor, so both fall in the window ending
	// that evening.
	anchor := Anchor{Weekday: time.Wednesday, Hour: 18}

	w := anchor.WindowContaining(ts("2024-01-10T09:00:00Z"))
	require.Equal(t, ts("2024-01-03T18:00:00Z"), w.Start)
	require.Equal(t, ts("2024-01-10T18:00:00Z"), w.End)

	assert.True(t, w.Contains(ts("2024-01-10T09:00:00Z")))
	assert.True(t, w.Contains(ts("2024-01-10T15:00:00Z")))
	assert.False(t, w.Contains(ts("2024-01-10T18:00:00Z")))
	assert.False(t, w.Contains(ts("2024-01-03T17:59:59Z")))
}

func TestWindowLength_ExactSevenDays(t *testing.T) {
	anchor := Anchor{Weekday: time.Wednesday, Hour: 18}

	// Walk a year of windows: every one spans exactly 7×24h, including
	// across DST transitions in civil timezones (windows are UTC).
	w := anchor.WindowContaining(ts("2024-01-01T00:00:00Z"))
	for i := 0; i < 53; i++ {
		assert.Equal(t, WindowLength, w.End.Sub(w.Start))
		next := w.Next()
		assert.True(t, next.Start.Equal(w.End), "windows must be contiguous")
		w = next
	}
}

func TestWindowPartition_Completeness(t *testing.T) {
	anchor := Anchor{Weekday: time.Wednesday, Hour: 11}

	stamps := []time.Time{
		ts("2024-01-01T00:00:00Z"),
		ts("2024-01-03T10:59:59Z"),
		ts("2024-01-03T11:00:00Z"),
		ts("2024-02-14T23:15:00Z"),
		ts("2024-03-31T02:30:00Z"), // EU DST switch day
		ts("2024-06-09T12:00:00Z"),
	}

	earliest, latest := stamps[0], stamps[0]
	for _, s := range stamps {
		if s.Before(earliest) {
			earliest = s
		}
		if s.After(latest) {
			latest = s
		}
	}

	var windows []Window
	for w := anchor.WindowContaining(earliest); !w.Start.After(latest); w = w.Next() {
		windows = append(windows, w)
	}

	// Contiguous, no gaps, fixed length.
	for i := 1; i < len(windows); i++ {
		require.True(t, windows[i].Start.Equal(windows[i-1].End))
	}

	// Every timestamp falls in exactly one window.
	for _, s := range stamps {
		count := 0
		for _, w := range windows {
			if w.Contains(s) {
				count++
			}
		}
		assert.Equal(t, 1, count, "timestamp %s must belong to exactly one window", s)
	}
}

func TestDefaultAnchor(t *testing.T) {
	assert.Equal(t, time.Wednesday, DefaultAnchor.Weekday)
	assert.Equal(t, 18, DefaultAnchor.Hour)
}
