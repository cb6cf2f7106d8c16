package hisab

import (
	"bufio"
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/shopspring/decimal"
)

// Line kinds of the JSONL book format.
const (
	kindCustomer = "customer"
	kindTxn      = "txn"
)

// customerLine is the decoding form of a customer line.
type customerLine struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Note      string    `json:"note"`
	CreatedAt Timestamp `json:"created"`
	UpdatedAt Timestamp `json:"updated"`
}

// txnLine is the decoding form of a transaction line. Amount and currency are
// read in two fields.
type txnLine struct {
	ID         int64           `json:"id"`
	CustomerID int64           `json:"customer"`
	Type       TxnType         `json:"type"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	Date       Timestamp       `json:"date"`
	Note       string          `json:"note"`
}

// DecodeBook reads a book from a stream of JSONL data. Customers must appear
// before their transactions. Lines are validated as they are read, and the
// first error is reported with its line number.
func DecodeBook(r io.Reader) (*Book, error) {
	book := &Book{}
	known := make(map[int64]bool)
	currency := "" // of the first transaction, shared by all others
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for n := 1; scanner.Scan(); n++ {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var identifier struct {
			Kind string `json:"kind"`
		}
		if err := json.Unmarshal(lineBytes, &identifier); err != nil {
			return nil, fmt.Errorf("line %d: could not identify kind: %w", n, err)
		}

		switch identifier.Kind {
		case kindCustomer:
			var l customerLine
			if err := json.Unmarshal(lineBytes, &l); err != nil {
				return nil, fmt.Errorf("line %d: %w", n, err)
			}
			c := Customer{ID: l.ID, Name: l.Name, Phone: l.Phone, Note: l.Note, CreatedAt: l.CreatedAt, UpdatedAt: l.UpdatedAt}
			if err := c.Validate(); err != nil {
				return nil, fmt.Errorf("line %d: %w", n, err)
			}
			if known[c.ID] {
				return nil, fmt.Errorf("line %d: %w: duplicate customer id %d", n, ErrInvalid, c.ID)
			}
			known[c.ID] = true
			book.Customers = append(book.Customers, c)

		case kindTxn:
			var l txnLine
			if err := json.Unmarshal(lineBytes, &l); err != nil {
				return nil, fmt.Errorf("line %d: %w", n, err)
			}
			if !known[l.CustomerID] {
				return nil, fmt.Errorf("line %d: %w: transaction for unknown customer %d", n, ErrInvalid, l.CustomerID)
			}
			cur := l.Currency
			if cur == "" {
				cur = DefaultCurrency
			}
			if currency == "" {
				currency = cur
			}
			if cur != currency {
				return nil, fmt.Errorf("line %d: %w: currency %s, the book is in %s", n, ErrInvalid, cur, currency)
			}
			tx := Transaction{ID: l.ID, CustomerID: l.CustomerID, Type: l.Type, Amount: M(l.Amount, cur), Date: l.Date, Note: l.Note}
			if tx.Amount.IsNegative() {
				return nil, fmt.Errorf("line %d: %w: negative amount %s", n, ErrInvalid, tx.Amount)
			}
			book.Transactions = append(book.Transactions, tx)

		default:
			return nil, fmt.Errorf("line %d: unknown kind %q", n, identifier.Kind)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading book: %w", err)
	}
	return book, nil
}

// EncodeCustomer writes a single customer as one JSON line.
func EncodeCustomer(w io.Writer, c Customer) error {
	var jw jsonObjectWriter
	jw.Append("kind", kindCustomer)
	jw.Append("id", c.ID)
	jw.Append("name", c.Name)
	jw.Optional("phone", c.Phone)
	jw.Optional("note", c.Note)
	jw.Optional("created", c.CreatedAt)
	jw.Optional("updated", c.UpdatedAt)
	return writeLine(w, &jw)
}

// EncodeTransaction writes a single transaction as one JSON line.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	var jw jsonObjectWriter
	jw.Append("kind", kindTxn)
	jw.Append("id", tx.ID)
	jw.Append("customer", tx.CustomerID)
	jw.Append("type", tx.Type)
	jw.Append("amount", tx.Amount)
	jw.Optional("currency", tx.Amount.Currency())
	jw.Append("date", tx.Date)
	jw.Optional("note", tx.Note)
	return writeLine(w, &jw)
}

func writeLine(w io.Writer, jw *jsonObjectWriter) error {
	b, err := jw.MarshalJSON()
	if err != nil {
		return err
	}
	if _, err := w.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("failed to write line: %w", err)
	}
	return nil
}

// EncodeBook writes the book in JSONL format: customers ordered by id, then
// transactions in chronological order. The book itself is not modified.
func EncodeBook(w io.Writer, book *Book) error {
	customers := slices.Clone(book.Customers)
	slices.SortFunc(customers, func(a, b Customer) int { return cmp.Compare(a.ID, b.ID) })
	for _, c := range customers {
		if err := EncodeCustomer(w, c); err != nil {
			return err
		}
	}
	for _, tx := range sortedCopy(book.Transactions) {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}
