package renderer

import "github.com/etnz/hisab"

// Totals are the received and paid sums of a scope: one customer or the
// whole book.
type Totals struct {
	Title          string      `json:"title"`
	Customers      int         `json:"customers"`
	Transactions   int         `json:"transactions"`
	Received       hisab.Money `json:"received"`
	Paid           hisab.Money `json:"paid"`
	Remaining      hisab.Money `json:"remaining"`
	RemainingLabel string      `json:"remainingLabel"`
}

// NewTotals creates Totals from sums.
func NewTotals(title string, customers, transactions int, t hisab.Totals) *Totals {
	amount, label, _ := t.Remaining()
	return &Totals{
		Title:          title,
		Customers:      customers,
		Transactions:   transactions,
		Received:       t.Credit,
		Paid:           t.Debit,
		Remaining:      amount,
		RemainingLabel: label,
	}
}
