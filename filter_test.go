package hisab

import "testing"

func TestFilterRange_Resolve(t *testing.T) {
	today := NewDate(2026, 10, 18) // a Sunday
	tests := []struct {
		f    FilterRange
		want Range
	}{
		{FilterToday, NewRange(today, today)},
		{FilterThisWeek, NewRange(NewDate(2026, 10, 12), today)},
		{FilterLastWeek, NewRange(NewDate(2026, 10, 5), NewDate(2026, 10, 11))},
		{FilterThisMonth, NewRange(NewDate(2026, 10, 1), today)},
		{FilterLastMonth, NewRange(NewDate(2026, 9, 1), NewDate(2026, 9, 30))},
		{FilterAll, Range{}},
	}
	for _, tt := range tests {
		t.Run(tt.f.String(), func(t *testing.T) {
			if got := tt.f.Resolve(today); got != tt.want {
				t.Errorf("Resolve() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterRange_ResolveYearBoundary(t *testing.T) {
	got := FilterLastMonth.Resolve(NewDate(2027, 1, 31))
	if want := NewRange(NewDate(2026, 12, 1), NewDate(2026, 12, 31)); got != want {
		t.Errorf("Resolve() = %v, want %v", got, want)
	}
	// On a Monday this week is a single day.
	got = FilterThisWeek.Resolve(NewDate(2026, 10, 12))
	if want := NewRange(NewDate(2026, 10, 12), NewDate(2026, 10, 12)); got != want {
		t.Errorf("Resolve() = %v, want %v", got, want)
	}
}

func TestParseFilterRange(t *testing.T) {
	tests := []struct {
		in      string
		want    FilterRange
		wantErr bool
	}{
		{"today", FilterToday, false},
		{"this-week", FilterThisWeek, false},
		{"Last week", FilterLastWeek, false},
		{"THIS-MONTH", FilterThisMonth, false},
		{"last-month", FilterLastMonth, false},
		{"all", FilterAll, false},
		{"All Time", FilterAll, false},
		{"yesterday", FilterAll, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFilterRange(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFilterRange(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseFilterRange(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFilterRange_Names(t *testing.T) {
	for _, f := range FilterRanges {
		if f.DisplayName() == "" || f.Description() == "" || f.Label() == "" {
			t.Errorf("filter %v has an empty name", f)
		}
		back, err := ParseFilterRange(f.String())
		if err != nil || back != f {
			t.Errorf("ParseFilterRange(%q) = %v, %v; want %v", f.String(), back, err, f)
		}
	}
	if got, want := FilterAll.DisplayName(), "All Transaction"; got != want {
		t.Errorf("DisplayName() = %q, want %q", got, want)
	}
	if got, want := FilterThisWeek.Description(), "Current Week (incl. today)"; got != want {
		t.Errorf("Description() = %q, want %q", got, want)
	}
}

func TestFilterRange_Title(t *testing.T) {
	today := NewDate(2026, 10, 18)
	tests := []struct {
		f    FilterRange
		want string
	}{
		{FilterToday, "Today (18 Oct 2026)"},
		{FilterThisMonth, "This Month (01 Oct 2026 to 18 Oct 2026)"},
		{FilterAll, "All Transactions"},
	}
	for _, tt := range tests {
		if got := tt.f.Title(today); got != tt.want {
			t.Errorf("%v.Title() = %q, want %q", tt.f, got, tt.want)
		}
	}
}
