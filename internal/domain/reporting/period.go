package reporting

import "time"

// WindowLength is the exact span of a report window. Windows are pure
// elapsed-time intervals in UTC: a window is always 7×24h regardless of
// daylight-saving transitions in any civil timezone.
const WindowLength = 7 * 24 * time.Hour

// Anchor is the fixed weekday+hour instant that starts and ends every
// weekly window. Hours are on the full hour (minute zero), in UTC.
type Anchor struct {
	Weekday time.Weekday
	Hour    int
}

// DefaultAnchor matches the live scheduler boundary: Wednesday 18:00 UTC.
var DefaultAnchor = Anchor{Weekday: time.Wednesday, Hour: 18}

// OnOrBefore returns the most recent anchor instant at or before t.
// An instant exactly on an anchor belongs to the window starting there,
// so OnOrBefore of an anchor instant is that instant itself.
func (a Anchor) OnOrBefore(t time.Time) time.Time {
	t = t.UTC()

	days := (int(t.Weekday()) - int(a.Weekday) + 7) % 7
	anchor := time.Date(t.Year(), t.Month(), t.Day(), a.Hour, 0, 0, 0, time.UTC)
	anchor = anchor.AddDate(0, 0, -days)

	if anchor.After(t) {
		anchor = anchor.Add(-WindowLength)
	}
	return anchor
}

// NextAfter returns the soonest anchor instant strictly after t.
func (a Anchor) NextAfter(t time.Time) time.Time {
	return a.OnOrBefore(t).Add(WindowLength)
}

// Window is the half-open interval [Start, End) with End-Start == WindowLength.
type Window struct {
	Start time.Time
	End   time.Time
}

// WindowContaining returns the unique window holding t.
func (a Anchor) WindowContaining(t time.Time) Window {
	start := a.OnOrBefore(t)
	return Window{Start: start, End: start.Add(WindowLength)}
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Next returns the immediately following window.
func (w Window) Next() Window {
	return Window{Start: w.End, End: w.End.Add(WindowLength)}
}
