package hisab

import (
	"fmt"
	"strings"
)

// Customer is a person or business the ledger owner trades with.
type Customer struct {
	ID        int64
	Name      string
	Phone     string    // optional
	Note      string    // optional
	CreatedAt Timestamp // set once, on creation
	UpdatedAt Timestamp // bumped whenever one of the customer's transactions changes
}

// Validate trims the customer fields and checks that a name is present.
func (c *Customer) Validate() error {
	c.Name = strings.TrimSpace(c.Name)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Note = strings.TrimSpace(c.Note)
	if c.Name == "" {
		return fmt.Errorf("%w: customer name is missing", ErrInvalid)
	}
	return nil
}

// Book is a complete set of customers and their transactions, the unit of
// import and export.
type Book struct {
	Customers    []Customer
	Transactions []Transaction
}

// Customer returns the customer with that id, or nil if the book has none.
func (b *Book) Customer(id int64) *Customer {
	for i := range b.Customers {
		if b.Customers[i].ID == id {
			return &b.Customers[i]
		}
	}
	return nil
}

// TransactionsOf returns the transactions of one customer, in book order.
func (b *Book) TransactionsOf(customerID int64) []Transaction {
	var txs []Transaction
	for _, tx := range b.Transactions {
		if tx.CustomerID == customerID {
			txs = append(txs, tx)
		}
	}
	return txs
}
