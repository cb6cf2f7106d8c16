package hisab

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// TxnType tells in which direction money moved.
type TxnType string

// Transaction types.
const (
	Credit TxnType = "CREDIT" // money received by the ledger owner
	Debit  TxnType = "DEBIT"  // money paid by the ledger owner
)

// ParseTxnType parses a transaction type. It accepts the stored names as well
// as the friendlier "received" and "paid".
func ParseTxnType(s string) (TxnType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "credit", "received", "got":
		return Credit, nil
	case "debit", "paid", "gave":
		return Debit, nil
	default:
		return "", fmt.Errorf("%w: unknown transaction type %q", ErrInvalid, s)
	}
}

// UnmarshalJSON rejects unknown transaction types.
func (t *TxnType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseTxnType(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Transaction is a single movement of money with one customer.
//
// Amount is always stored non-negative; the direction is given by Type.
type Transaction struct {
	ID         int64
	CustomerID int64
	Amount     Money
	Type       TxnType
	Note       string    // optional
	Date       Timestamp // when it happened, user editable
}

// Signed returns the amount with its sign: positive for a credit, negative
// for a debit.
func (tx Transaction) Signed() Money {
	if tx.Type == Debit {
		return tx.Amount.Neg()
	}
	return tx.Amount
}

// Validate checks the transaction and applies quick fixes where applicable:
// the note is trimmed and a date in the future is capped at now. It returns
// all validation failures at once.
func (tx *Transaction) Validate(now time.Time) error {
	var errs []error
	if tx.CustomerID == 0 {
		errs = append(errs, errors.New("customer is missing"))
	}
	switch tx.Type {
	case Credit, Debit:
	default:
		errs = append(errs, fmt.Errorf("unknown transaction type %q", tx.Type))
	}
	if tx.Amount.IsNegative() {
		errs = append(errs, fmt.Errorf("amount %s must not be negative", tx.Amount))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w transaction: %w", ErrInvalid, errors.Join(errs...))
	}

	tx.Note = strings.TrimSpace(tx.Note)
	if max := TimestampOf(now); tx.Date == 0 || tx.Date > max {
		tx.Date = max
	}
	return nil
}

// AnnotatedTransaction is a transaction together with the running balance
// of its scope right after it.
type AnnotatedTransaction struct {
	Transaction
	Balance Money
}

// Totals are the credit and debit sums over a set of transactions.
type Totals struct {
	Credit Money // total received
	Debit  Money // total paid
}

// Net returns Credit - Debit.
func (t Totals) Net() Money { return t.Credit.Sub(t.Debit) }

// Remaining returns what is left to settle: the absolute net amount and who
// owes it. Owed is true when the net is not negative, that is, when the
// ledger owner will pay.
func (t Totals) Remaining() (amount Money, label string, owed bool) {
	net := t.Net()
	if net.IsNegative() {
		return net.Abs(), "You will Receive", false
	}
	return net.Abs(), "You will Pay", true
}

// TotalsOf sums the transactions by type.
func TotalsOf(txs []Transaction) Totals {
	var t Totals
	for _, tx := range txs {
		switch tx.Type {
		case Credit:
			t.Credit = t.Credit.Add(tx.Amount)
		case Debit:
			t.Debit = t.Debit.Add(tx.Amount)
		}
	}
	return t
}

// Change describes a committed write, for live update subscribers.
type Change struct {
	Kind       ChangeKind
	CustomerID int64
	TxnID      int64 // zero for customer changes
}

// ChangeKind enumerates the kinds of writes.
type ChangeKind int

const (
	CustomerAdded ChangeKind = iota
	CustomerUpdated
	CustomerDeleted
	TransactionAdded
	TransactionUpdated
	TransactionDeleted
)

func (k ChangeKind) String() string {
	switch k {
	case CustomerAdded:
		return "customer-added"
	case CustomerUpdated:
		return "customer-updated"
	case CustomerDeleted:
		return "customer-deleted"
	case TransactionAdded:
		return "txn-added"
	case TransactionUpdated:
		return "txn-updated"
	case TransactionDeleted:
		return "txn-deleted"
	default:
		return "unknown"
	}
}
