package hisab

import (
	"fmt"
	"strings"
)

// FilterRange is one of the named date ranges a ledger can be viewed through.
type FilterRange int

const (
	FilterToday FilterRange = iota
	FilterThisWeek
	FilterLastWeek
	FilterThisMonth
	FilterLastMonth
	FilterAll
)

// FilterRanges lists every filter in display order.
var FilterRanges = []FilterRange{FilterToday, FilterThisWeek, FilterLastWeek, FilterThisMonth, FilterLastMonth, FilterAll}

type filterInfo struct {
	keyword, display, description, label string
}

var filterInfos = map[FilterRange]filterInfo{
	FilterToday:     {"today", "Today", "Only today's transactions", "Today"},
	FilterThisWeek:  {"this-week", "This Week", "Current Week (incl. today)", "This Week"},
	FilterLastWeek:  {"last-week", "Last week", "Last Week (incl. today)", "Last Week"},
	FilterThisMonth: {"this-month", "This Month", "Current Month (incl. today)", "This Month"},
	FilterLastMonth: {"last-month", "Last Month", "Last Month (incl. today)", "Last Month"},
	FilterAll:       {"all", "All Transaction", "All transactions", "All Time"},
}

// String returns the command line keyword of the filter, e.g. "this-week".
func (f FilterRange) String() string {
	if i, ok := filterInfos[f]; ok {
		return i.keyword
	}
	return fmt.Sprintf("filter(%d)", int(f))
}

// DisplayName is the name shown in filter pickers.
func (f FilterRange) DisplayName() string { return filterInfos[f].display }

// Description is the one line help shown under the display name.
func (f FilterRange) Description() string { return filterInfos[f].description }

// Label is the name printed in statement headers.
func (f FilterRange) Label() string { return filterInfos[f].label }

// ParseFilterRange parses a filter keyword. Display names are accepted too,
// case insensitively.
func ParseFilterRange(s string) (FilterRange, error) {
	s = strings.TrimSpace(s)
	for _, f := range FilterRanges {
		i := filterInfos[f]
		if strings.EqualFold(s, i.keyword) || strings.EqualFold(s, i.display) || strings.EqualFold(s, i.label) {
			return f, nil
		}
	}
	return FilterAll, fmt.Errorf("unknown filter %q, want one of today, this-week, last-week, this-month, last-month, all", s)
}

// Resolve returns the inclusive calendar range the filter selects when today
// is the given date. FilterAll resolves to the zero, unbounded Range.
//
// Weeks start on Monday.
func (f FilterRange) Resolve(today Date) Range {
	switch f {
	case FilterToday:
		return Daily.Range(today)
	case FilterThisWeek:
		return NewRange(today.StartOf(Weekly), today)
	case FilterLastWeek:
		return Weekly.Range(today.StartOf(Weekly).Add(-7))
	case FilterThisMonth:
		return NewRange(today.StartOf(Monthly), today)
	case FilterLastMonth:
		return Monthly.Range(today.StartOf(Monthly).Add(-1))
	default:
		return Range{}
	}
}

// Title is the statement header line for the filter, e.g.
// "This Month (01 Oct 2026 to 18 Oct 2026)".
func (f FilterRange) Title(today Date) string {
	r := f.Resolve(today)
	if r.Unbounded() {
		return r.Title()
	}
	return f.Label() + " " + r.Title()
}
