package hisab

import (
	"cmp"
	"math"
	"slices"
	"time"
)

// compareTxn orders transactions chronologically, ties broken by ascending ID.
func compareTxn(a, b Transaction) int {
	if c := cmp.Compare(a.Date, b.Date); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// sortedCopy returns a copy of txs in ascending chronological order.
func sortedCopy(txs []Transaction) []Transaction {
	s := slices.Clone(txs)
	slices.SortStableFunc(s, compareTxn)
	return s
}

// RunningBalance annotates each transaction with the balance right after it,
// accumulated in ascending chronological order from zero. The result is in
// descending order, most recent first.
func RunningBalance(txs []Transaction) []AnnotatedTransaction {
	return RunningBalanceFrom(Money{}, txs)
}

// RunningBalanceFrom is like RunningBalance but starts from an opening balance.
func RunningBalanceFrom(opening Money, txs []Transaction) []AnnotatedTransaction {
	asc := sortedCopy(txs)
	res := make([]AnnotatedTransaction, len(asc))
	balance := opening
	for i, tx := range asc {
		balance = balance.Add(tx.Signed())
		res[len(asc)-1-i] = AnnotatedTransaction{Transaction: tx, Balance: balance}
	}
	return res
}

// FilterByRange keeps the transactions whose calendar date, in now's
// location, falls inside the range f resolves to today. The result is in
// descending chronological order.
func FilterByRange(txs []Transaction, f FilterRange, now time.Time) []Transaction {
	loc := now.Location()
	r := f.Resolve(DateOf(now))
	res := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if r.Contains(tx.Date.Date(loc)) {
			res = append(res, tx)
		}
	}
	slices.SortStableFunc(res, func(a, b Transaction) int { return compareTxn(b, a) })
	return res
}

// PreviousPeriodNet returns credit - debit over the transactions strictly
// before the start of the period f names: start of today, of this week, of
// last week, of this month or of last month. It is always zero for FilterAll.
func PreviousPeriodNet(txs []Transaction, f FilterRange, now time.Time) Money {
	if f == FilterAll {
		return Money{}
	}
	loc := now.Location()
	today := DateOf(now)
	var start Date
	switch f {
	case FilterToday:
		start = today
	case FilterThisWeek:
		start = today.StartOf(Weekly)
	case FilterLastWeek:
		start = today.StartOf(Weekly).Add(-7)
	case FilterThisMonth:
		start = today.StartOf(Monthly)
	case FilterLastMonth:
		start = today.StartOf(Monthly).AddMonth(-1)
	}
	cutoff := TimestampOf(start.Start(loc))
	return netBetween(txs, math.MinInt64, cutoff)
}

// RecentPeriodNet returns credit - debit over the half-open window [start, end)
// of the period f names. Unlike FilterByRange, the current periods extend to
// their natural end (tomorrow, next Monday, first of next month).
func RecentPeriodNet(txs []Transaction, f FilterRange, now time.Time) Money {
	start, end := recentWindow(f, now)
	return netBetween(txs, start, end)
}

// recentWindow returns the epoch millisecond bounds RecentPeriodNet uses.
func recentWindow(f FilterRange, now time.Time) (start, end Timestamp) {
	loc := now.Location()
	today := DateOf(now)
	var from, to Date
	switch f {
	case FilterToday:
		from, to = today, today.Add(1)
	case FilterThisWeek:
		from = today.StartOf(Weekly)
		to = from.Add(7)
	case FilterLastWeek:
		to = today.StartOf(Weekly)
		from = to.Add(-7)
	case FilterThisMonth:
		from = today.StartOf(Monthly)
		to = from.AddMonth(1)
	case FilterLastMonth:
		to = today.StartOf(Monthly)
		from = to.AddMonth(-1)
	default:
		return math.MinInt64, math.MaxInt64
	}
	return TimestampOf(from.Start(loc)), TimestampOf(to.Start(loc))
}

// netBetween returns credit - debit over transactions dated in [start, end).
func netBetween(txs []Transaction, start, end Timestamp) Money {
	var net Money
	for _, tx := range txs {
		if tx.Date >= start && tx.Date < end {
			net = net.Add(tx.Signed())
		}
	}
	return net
}

// Ledger is an immutable, chronologically sorted snapshot of the
// transactions of one scope, usually one customer. It is safe for concurrent
// use.
type Ledger struct {
	txs []Transaction // ascending
}

// NewLedger takes a snapshot of txs. Later changes to txs do not affect it.
func NewLedger(txs []Transaction) *Ledger {
	return &Ledger{txs: sortedCopy(txs)}
}

// Len returns the number of transactions in the ledger.
func (l *Ledger) Len() int { return len(l.txs) }

// Transactions returns a copy of the transactions, most recent first.
func (l *Ledger) Transactions() []Transaction {
	res := slices.Clone(l.txs)
	slices.Reverse(res)
	return res
}

// RunningBalance returns the annotated transactions, most recent first.
func (l *Ledger) RunningBalance() []AnnotatedTransaction { return RunningBalance(l.txs) }

// Filter returns the transactions within f, most recent first.
func (l *Ledger) Filter(f FilterRange, now time.Time) []Transaction {
	return FilterByRange(l.txs, f, now)
}

// Totals returns the credit and debit sums over the whole ledger.
func (l *Ledger) Totals() Totals { return TotalsOf(l.txs) }

// Latest returns the most recent transaction, or nil for an empty ledger.
func (l *Ledger) Latest() *Transaction {
	if len(l.txs) == 0 {
		return nil
	}
	tx := l.txs[len(l.txs)-1]
	return &tx
}

// PreviousPeriodNet is the ledger's [PreviousPeriodNet].
func (l *Ledger) PreviousPeriodNet(f FilterRange, now time.Time) Money {
	return PreviousPeriodNet(l.txs, f, now)
}

// RecentPeriodNet is the ledger's [RecentPeriodNet].
func (l *Ledger) RecentPeriodNet(f FilterRange, now time.Time) Money {
	return RecentPeriodNet(l.txs, f, now)
}
