// Package statement turns a customer's ledger into a printable statement:
// a display model, its pagination, and PDF and spreadsheet renderings.
package statement

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/etnz/hisab"
)

// Formats used on statements.
const (
	DateFormat      = hisab.DisplayDateFormat // row dates
	GeneratedFormat = "02 Jan 2006, 03:04 PM"
)

// Statement is the display model of one customer's statement.
type Statement struct {
	Customer  hisab.Customer
	Filter    hisab.FilterRange
	Generated time.Time // the zone of Generated is the zone of every date shown

	Totals   hisab.Totals // over all of the customer's transactions
	Previous *hisab.Money // net before the period, nil when there is none
	Recent   hisab.Money  // net over the period's full window

	Rows []Row // ascending
}

// Row is one transaction line.
type Row struct {
	No      int
	TxnID   int64
	Date    hisab.Date
	Note    string
	Type    hisab.TxnType
	Amount  hisab.Money
	Balance hisab.Money // running, seeded from Previous
}

// Received returns the amount when the row is a credit.
func (r Row) Received() (hisab.Money, bool) { return r.Amount, r.Type == hisab.Credit }

// Paid returns the amount when the row is a debit.
func (r Row) Paid() (hisab.Money, bool) { return r.Amount, r.Type == hisab.Debit }

// New builds a statement from the customer's transactions already filtered
// to f, in any order.
func New(customer hisab.Customer, txs []hisab.Transaction, f hisab.FilterRange, totals hisab.Totals, previous *hisab.Money, now time.Time) *Statement {
	s := &Statement{
		Customer:  customer,
		Filter:    f,
		Generated: now,
		Totals:    totals,
		Previous:  previous,
	}
	var opening hisab.Money
	if previous != nil {
		opening = *previous
	}
	annotated := hisab.RunningBalanceFrom(opening, txs)
	slices.Reverse(annotated)
	s.Rows = make([]Row, len(annotated))
	for i, a := range annotated {
		s.Rows[i] = Row{
			No:      i + 1,
			TxnID:   a.ID,
			Date:    a.Date.Date(now.Location()),
			Note:    a.Note,
			Type:    a.Type,
			Amount:  a.Amount,
			Balance: a.Balance,
		}
	}
	return s
}

// Source is where Build reads customers and transactions from.
type Source interface {
	Customer(ctx context.Context, id int64) (*hisab.Customer, error)
	Transactions(ctx context.Context, customerID int64) ([]hisab.Transaction, error)
}

// Build loads a customer and builds its statement for filter f. It returns
// nil without error when the customer does not exist.
func Build(ctx context.Context, src Source, customerID int64, f hisab.FilterRange, now time.Time) (*Statement, error) {
	c, err := src.Customer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("load customer %d: %w", customerID, err)
	}
	if c == nil {
		return nil, nil
	}
	txs, err := src.Transactions(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("load transactions of %q: %w", c.Name, err)
	}

	var previous *hisab.Money
	if p := hisab.PreviousPeriodNet(txs, f, now); !p.IsZero() {
		previous = &p
	}
	s := New(*c, hisab.FilterByRange(txs, f, now), f, hisab.TotalsOf(txs), previous, now)
	s.Recent = hisab.RecentPeriodNet(txs, f, now)
	return s, nil
}

// Title is the statement's main heading.
func (s *Statement) Title() string { return s.Customer.Name + " Statement" }

// RangeTitle names the period, e.g. "This Month (01 Oct 2026 to 18 Oct 2026)".
func (s *Statement) RangeTitle() string { return s.Filter.Title(hisab.DateOf(s.Generated)) }

// Phone returns the customer's phone or "-".
func (s *Statement) Phone() string {
	if s.Customer.Phone == "" {
		return "-"
	}
	return s.Customer.Phone
}

// GeneratedText is the generation stamp printed in the header.
func (s *Statement) GeneratedText() string {
	return "Report Generated: " + s.Generated.Format(GeneratedFormat)
}

// Remaining returns what is left to settle over all of the customer's
// transactions, see hisab.Totals.Remaining.
func (s *Statement) Remaining() (amount hisab.Money, label string, owed bool) {
	return s.Totals.Remaining()
}
