package renderer

import (
	"github.com/etnz/hisab"
	"github.com/etnz/hisab/statement"
)

// Ledger is a customer's ledger over a period, as shown by the log command.
type Ledger struct {
	// Name of the customer.
	Name  string `json:"name"`
	Phone string `json:"phone"`
	// Range is the period title, e.g. "This Month (01 Oct 2026 to 18 Oct 2026)".
	Range string `json:"range"`

	// Received, Paid and Remaining are over all of the customer's transactions.
	Received       hisab.Money `json:"received"`
	Paid           hisab.Money `json:"paid"`
	Remaining      hisab.Money `json:"remaining"`
	RemainingLabel string      `json:"remainingLabel"`

	// Previous is the net before the period, if any.
	Previous *hisab.Money `json:"previous,omitempty"`
	Rows     []LedgerRow  `json:"rows"`
}

// LedgerRow is a single transaction, with the balance right after it.
type LedgerRow struct {
	No      int           `json:"no"`
	ID      int64         `json:"id"`
	Date    hisab.Date    `json:"date"`
	Note    string        `json:"note,omitempty"`
	Type    hisab.TxnType `json:"type"`
	Amount  hisab.Money   `json:"amount"`
	Balance hisab.Money   `json:"balance"`
}

// Received returns the amount of a credit, or "".
func (r LedgerRow) Received() string {
	if r.Type != hisab.Credit {
		return ""
	}
	return r.Amount.String()
}

// Paid returns the amount of a debit, or "".
func (r LedgerRow) Paid() string {
	if r.Type != hisab.Debit {
		return ""
	}
	return r.Amount.String()
}

// NewLedger creates a Ledger from a statement.
func NewLedger(s *statement.Statement) *Ledger {
	amount, label, _ := s.Remaining()
	l := &Ledger{
		Name:           s.Customer.Name,
		Phone:          s.Phone(),
		Range:          s.RangeTitle(),
		Received:       s.Totals.Credit,
		Paid:           s.Totals.Debit,
		Remaining:      amount,
		RemainingLabel: label,
		Previous:       s.Previous,
		Rows:           make([]LedgerRow, 0, len(s.Rows)),
	}
	for _, r := range s.Rows {
		l.Rows = append(l.Rows, LedgerRow{
			No:      r.No,
			ID:      r.TxnID,
			Date:    r.Date,
			Note:    r.Note,
			Type:    r.Type,
			Amount:  r.Amount,
			Balance: r.Balance,
		})
	}
	return l
}
