package hisab

import "fmt"

// Range represents an inclusive range of dates.
//
// A zero From means the range is open towards the past, a zero To that it is
// open towards the future. The zero Range contains every date.
type Range struct{ From, To Date }

// NewRange creates a new date range. If 'from' is after 'to', they are swapped.
func NewRange(from, to Date) Range {
	if from.After(to) {
		from, to = to, from
	}
	return Range{From: from, To: to}
}

// Unbounded reports whether the range has no boundary at all.
func (r Range) Unbounded() bool { return r.From.IsZero() && r.To.IsZero() }

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool {
	afterStart := r.From.IsZero() || !date.Before(r.From)
	beforeEnd := r.To.IsZero() || !date.After(r.To)
	return afterStart && beforeEnd
}

// Title formats the range the way statements print it, e.g.
// "(01 Oct 2026 to 18 Oct 2026)" or "(18 Oct 2026)" for a single day.
func (r Range) Title() string {
	switch {
	case r.Unbounded():
		return "All Transactions"
	case r.From == r.To:
		return fmt.Sprintf("(%s)", r.From.Format(DisplayDateFormat))
	default:
		return fmt.Sprintf("(%s to %s)", r.From.Format(DisplayDateFormat), r.To.Format(DisplayDateFormat))
	}
}

// String returns the range in ISO-8601 form.
func (r Range) String() string {
	if r.Unbounded() {
		return "all"
	}
	return fmt.Sprintf("%s_%s", r.From, r.To)
}
