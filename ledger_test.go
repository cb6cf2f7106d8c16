package hisab

import (
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// now is Sunday 18 Oct 2026, 15:00 in India.
var now = time.Date(2026, 10, 18, 15, 0, 0, 0, ist)

// october is a ledger spread around the boundaries of every filter as seen
// from now.
var october = []Transaction{
	credit(1, 100, at(2026, 9, 1, 0, 0)),   // first day of last month
	debit(2, 30, at(2026, 9, 30, 23, 59)),  // last minute of last month
	credit(3, 50, at(2026, 10, 1, 0, 0)),   // first instant of this month
	debit(4, 20, at(2026, 10, 5, 10, 0)),   // last week's Monday
	credit(5, 10, at(2026, 10, 11, 23, 0)), // last week's Sunday
	debit(6, 5, at(2026, 10, 12, 0, 0)),    // this Monday
	credit(7, 7, at(2026, 10, 17, 12, 0)),  // yesterday
	debit(8, 3, at(2026, 10, 18, 9, 0)),    // today
}

var moneyEqual = cmp.Comparer(func(a, b Money) bool { return a.Equal(b) })

func TestRunningBalance_TwoTransactions(t *testing.T) {
	txs := []Transaction{
		credit(1, 100, at(2026, 10, 1, 10, 0)),
		debit(2, 40, at(2026, 10, 2, 10, 0)),
	}
	got := RunningBalance(txs)
	want := []AnnotatedTransaction{
		{Transaction: txs[1], Balance: INR(60)},
		{Transaction: txs[0], Balance: INR(100)},
	}
	if diff := cmp.Diff(want, got, moneyEqual); diff != "" {
		t.Errorf("RunningBalance() mismatch (-want +got):\n%s", diff)
	}
}

func TestRunningBalance_Empty(t *testing.T) {
	if got := RunningBalance(nil); len(got) != 0 {
		t.Errorf("RunningBalance(nil) = %v, want empty", got)
	}
}

func TestRunningBalance_Recurrence(t *testing.T) {
	shuffled := slices.Clone(october)
	// a deterministic shuffle is enough, the order must not matter.
	slices.Reverse(shuffled)
	shuffled[0], shuffled[3] = shuffled[3], shuffled[0]
	input := slices.Clone(shuffled)

	got := RunningBalance(shuffled)
	if len(got) != len(october) {
		t.Fatalf("RunningBalance() returned %d transactions, want %d", len(got), len(october))
	}
	asc := slices.Clone(got)
	slices.Reverse(asc)
	for i, a := range asc {
		if a.ID != october[i].ID {
			t.Fatalf("ascending position %d holds transaction %d, want %d", i, a.ID, october[i].ID)
		}
		want := a.Signed()
		if i > 0 {
			want = asc[i-1].Balance.Add(a.Signed())
		}
		if !a.Balance.Equal(want) {
			t.Errorf("balance[%d] = %v, want %v", i, a.Balance, want)
		}
	}
	if diff := cmp.Diff(input, shuffled, moneyEqual); diff != "" {
		t.Errorf("RunningBalance() modified its input (-want +got):\n%s", diff)
	}
}

func TestRunningBalance_SameTimestamp(t *testing.T) {
	when := at(2026, 10, 18, 9, 0)
	txs := []Transaction{debit(7, 40, when), credit(3, 100, when)}

	got := RunningBalance(txs)
	// ascending id: credit 3 first, then debit 7.
	if got[0].ID != 7 || !got[0].Balance.Equal(INR(60)) {
		t.Errorf("most recent = #%d %v, want #7 ₹60", got[0].ID, got[0].Balance)
	}
	if got[1].ID != 3 || !got[1].Balance.Equal(INR(100)) {
		t.Errorf("oldest = #%d %v, want #3 ₹100", got[1].ID, got[1].Balance)
	}
}

func TestRunningBalanceFrom(t *testing.T) {
	got := RunningBalanceFrom(INR(-25), []Transaction{credit(1, 100, at(2026, 10, 1, 10, 0))})
	if !got[0].Balance.Equal(INR(75)) {
		t.Errorf("RunningBalanceFrom() balance = %v, want ₹75", got[0].Balance)
	}
}

func TestFilterByRange(t *testing.T) {
	tests := []struct {
		f    FilterRange
		want []int64
	}{
		{FilterToday, []int64{8}},
		{FilterThisWeek, []int64{8, 7, 6}},
		{FilterLastWeek, []int64{5, 4}},
		{FilterThisMonth, []int64{8, 7, 6, 5, 4, 3}},
		{FilterLastMonth, []int64{2, 1}},
		{FilterAll, []int64{8, 7, 6, 5, 4, 3, 2, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.f.String(), func(t *testing.T) {
			got := ids(FilterByRange(october, tt.f, now))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FilterByRange(%v) mismatch (-want +got):\n%s", tt.f, diff)
			}
		})
	}
}

func TestFilterByRange_TodayExcludesYesterday(t *testing.T) {
	yesterday := credit(1, 10, at(2026, 10, 17, 23, 59))
	today := credit(2, 10, at(2026, 10, 18, 0, 0))
	got := ids(FilterByRange([]Transaction{yesterday, today}, FilterToday, now))
	if diff := cmp.Diff([]int64{2}, got); diff != "" {
		t.Errorf("FilterByRange(today) mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterByRange_AllKeepsEverything(t *testing.T) {
	txs := slices.Clone(october)
	txs = append(txs, credit(9, 1, 0), debit(10, 1, at(2030, 1, 1, 0, 0)))

	got := FilterByRange(txs, FilterAll, now)
	want := slices.Clone(txs)
	slices.SortFunc(want, func(a, b Transaction) int { return compareTxn(b, a) })
	if diff := cmp.Diff(want, got, moneyEqual); diff != "" {
		t.Errorf("FilterByRange(all) mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterByRange_MonthBoundary(t *testing.T) {
	first := credit(1, 10, at(2026, 10, 1, 0, 0))
	for _, when := range []Timestamp{at(2026, 10, 1, 0, 0), at(2026, 10, 1, 23, 59)} {
		first.Date = when
		txs := []Transaction{first}
		if n := len(FilterByRange(txs, FilterThisMonth, now)); n != 1 {
			t.Errorf("this month holds %d transactions dated %v, want 1", n, when.Time(ist))
		}
		if n := len(FilterByRange(txs, FilterLastMonth, now)); n != 0 {
			t.Errorf("last month holds %d transactions dated %v, want 0", n, when.Time(ist))
		}
	}
}

func TestFilterByRange_UsesLocalDay(t *testing.T) {
	// 20:00 UTC on the 17th is 01:30 on the 18th in India.
	tx := credit(1, 10, TimestampOf(time.Date(2026, 10, 17, 20, 0, 0, 0, time.UTC)))
	if n := len(FilterByRange([]Transaction{tx}, FilterToday, now)); n != 1 {
		t.Errorf("today in IST holds %d transactions, want 1", n)
	}
	if n := len(FilterByRange([]Transaction{tx}, FilterToday, now.In(time.UTC))); n != 0 {
		t.Errorf("today in UTC holds %d transactions, want 0", n)
	}
}

func TestPreviousPeriodNet(t *testing.T) {
	tests := []struct {
		f    FilterRange
		want Money
	}{
		{FilterToday, INR(112)},
		{FilterThisWeek, INR(110)},
		{FilterLastWeek, INR(120)},
		{FilterThisMonth, INR(70)},
		{FilterLastMonth, INR(0)},
		{FilterAll, INR(0)},
	}
	for _, tt := range tests {
		t.Run(tt.f.String(), func(t *testing.T) {
			if got := PreviousPeriodNet(october, tt.f, now); !got.Equal(tt.want) {
				t.Errorf("PreviousPeriodNet(%v) = %v, want %v", tt.f, got, tt.want)
			}
		})
	}
}

func TestPreviousPeriodNet_AllIsZero(t *testing.T) {
	for _, txs := range [][]Transaction{nil, october, {debit(1, 1e6, 0)}} {
		if got := PreviousPeriodNet(txs, FilterAll, now); !got.IsZero() {
			t.Errorf("PreviousPeriodNet(all) = %v, want 0", got)
		}
	}
}

func TestRecentPeriodNet(t *testing.T) {
	tests := []struct {
		f    FilterRange
		want Money
	}{
		{FilterToday, INR(-3)},
		{FilterThisWeek, INR(-1)},
		{FilterLastWeek, INR(-10)},
		{FilterThisMonth, INR(39)},
		{FilterLastMonth, INR(70)},
		{FilterAll, INR(109)},
	}
	for _, tt := range tests {
		t.Run(tt.f.String(), func(t *testing.T) {
			if got := RecentPeriodNet(october, tt.f, now); !got.Equal(tt.want) {
				t.Errorf("RecentPeriodNet(%v) = %v, want %v", tt.f, got, tt.want)
			}
		})
	}
}

// The recent window of a current period runs to its natural end, while the
// filter stops at today.
func TestRecentPeriodNet_WindowExtendsPastToday(t *testing.T) {
	later := credit(9, 1000, at(2026, 10, 25, 10, 0))
	txs := append(slices.Clone(october), later)

	if got := RecentPeriodNet(txs, FilterThisMonth, now); !got.Equal(INR(1039)) {
		t.Errorf("RecentPeriodNet(this month) = %v, want ₹1,039.00", got)
	}
	if slices.Contains(ids(FilterByRange(txs, FilterThisMonth, now)), 9) {
		t.Errorf("FilterByRange(this month) holds a transaction dated after today")
	}
	// next Monday is outside this week's window.
	if got := RecentPeriodNet(txs, FilterThisWeek, now); !got.Equal(INR(-1)) {
		t.Errorf("RecentPeriodNet(this week) = %v, want -₹1.00", got)
	}
}

func TestTotalsOf(t *testing.T) {
	got := TotalsOf(october)
	if !got.Credit.Equal(INR(167)) || !got.Debit.Equal(INR(58)) {
		t.Errorf("TotalsOf() = %v/%v, want ₹167/₹58", got.Credit, got.Debit)
	}
	if !got.Net().Equal(INR(109)) {
		t.Errorf("Net() = %v, want ₹109", got.Net())
	}
	if zero := TotalsOf(nil); !zero.Credit.IsZero() || !zero.Debit.IsZero() {
		t.Errorf("TotalsOf(nil) = %v, want zero", zero)
	}
}

func TestLedger(t *testing.T) {
	txs := slices.Clone(october)
	l := NewLedger(txs)
	txs[0].Amount = INR(1e6) // the snapshot must not see this

	if l.Len() != len(october) {
		t.Errorf("Len() = %d, want %d", l.Len(), len(october))
	}
	if latest := l.Latest(); latest == nil || latest.ID != 8 {
		t.Errorf("Latest() = %v, want #8", latest)
	}
	if got := l.Totals().Net(); !got.Equal(INR(109)) {
		t.Errorf("Totals().Net() = %v, want ₹109", got)
	}
	if diff := cmp.Diff([]int64{8, 7, 6, 5, 4, 3, 2, 1}, ids(l.Transactions())); diff != "" {
		t.Errorf("Transactions() mismatch (-want +got):\n%s", diff)
	}
	if NewLedger(nil).Latest() != nil {
		t.Errorf("Latest() of an empty ledger is not nil")
	}

	var wg sync.WaitGroup
	for _, f := range FilterRanges {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = l.Filter(f, now)
			_ = l.RunningBalance()
			_ = l.PreviousPeriodNet(f, now)
			_ = l.RecentPeriodNet(f, now)
		}()
	}
	wg.Wait()
}
