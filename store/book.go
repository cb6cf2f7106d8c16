package store

import (
	"context"
	"fmt"

	"github.com/etnz/hisab"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Export reads the whole database into a book.
func (s *Store) Export(ctx context.Context) (*hisab.Book, error) {
	book := &hisab.Book{}
	err := s.read(ctx, func(db *gorm.DB) error {
		var customers []customerRecord
		if err := db.Order("id").Find(&customers).Error; err != nil {
			return fmt.Errorf("list customers: %w", err)
		}
		var txns []txnRecord
		if err := db.Order("date").Order("id").Find(&txns).Error; err != nil {
			return fmt.Errorf("list transactions: %w", err)
		}
		for _, c := range customers {
			book.Customers = append(book.Customers, c.customer())
		}
		book.Transactions = transactions(txns)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return book, nil
}

// Import adds every customer and transaction of the book in a single
// database transaction. Records get fresh ids, so a book can be imported
// into a non empty database. It returns the number of customers and
// transactions added.
func (s *Store) Import(ctx context.Context, book *hisab.Book) (customers, txns int, err error) {
	now := s.now()
	err = s.write(ctx, func(tx *gorm.DB) ([]hisab.Change, error) {
		var changes []hisab.Change
		ids := make(map[int64]int64, len(book.Customers))
		for _, c := range book.Customers {
			if err := c.Validate(); err != nil {
				return nil, fmt.Errorf("customer %d: %w", c.ID, err)
			}
			if c.CreatedAt == 0 {
				c.CreatedAt = hisab.TimestampOf(now)
			}
			if c.UpdatedAt == 0 {
				c.UpdatedAt = c.CreatedAt
			}
			rec := fromCustomer(c)
			rec.ID = 0
			if err := tx.Omit(clause.Associations).Create(&rec).Error; err != nil {
				return nil, fmt.Errorf("insert customer %q: %w", c.Name, err)
			}
			ids[c.ID] = rec.ID
			changes = append(changes, hisab.Change{Kind: hisab.CustomerAdded, CustomerID: rec.ID})
		}

		for _, t := range book.Transactions {
			id, ok := ids[t.CustomerID]
			if !ok {
				return nil, fmt.Errorf("%w: transaction %d for unknown customer %d", hisab.ErrInvalid, t.ID, t.CustomerID)
			}
			t.CustomerID = id
			if err := s.prepare(&t); err != nil {
				return nil, fmt.Errorf("transaction %d: %w", t.ID, err)
			}
			rec := fromTransaction(t)
			rec.ID = 0
			if err := tx.Create(&rec).Error; err != nil {
				return nil, fmt.Errorf("insert transaction %d: %w", t.ID, err)
			}
			changes = append(changes, hisab.Change{Kind: hisab.TransactionAdded, CustomerID: id, TxnID: rec.ID})
		}
		return changes, nil
	})
	if err != nil {
		return 0, 0, err
	}
	return len(book.Customers), len(book.Transactions), nil
}
