package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/hisab"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// prepare validates tx against the store clock and currency. Amounts in
// another currency are rejected: a ledger only sums one currency.
func (s *Store) prepare(tx *hisab.Transaction) error {
	switch cur := tx.Amount.Currency(); cur {
	case "":
		tx.Amount = hisab.M(tx.Amount.Decimal(), s.currency)
	case s.currency:
	default:
		return fmt.Errorf("%w transaction: currency %s, want %s", hisab.ErrInvalid, cur, s.currency)
	}
	return tx.Validate(s.now())
}

// mustExist fails with ErrInvalid when the customer does not exist.
func mustExist(db *gorm.DB, customerID int64) error {
	var n int64
	if err := db.Model(&customerRecord{}).Where("id = ?", customerID).Count(&n).Error; err != nil {
		return fmt.Errorf("load customer %d: %w", customerID, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: no customer %d", hisab.ErrInvalid, customerID)
	}
	return nil
}

// AddTransaction validates and inserts a transaction, bumps its customer's
// update time, and returns it with its id set.
func (s *Store) AddTransaction(ctx context.Context, t hisab.Transaction) (hisab.Transaction, error) {
	if err := s.prepare(&t); err != nil {
		return t, err
	}
	t.ID = 0
	rec := fromTransaction(t)
	now := hisab.TimestampOf(s.now())
	err := s.write(ctx, func(tx *gorm.DB) ([]hisab.Change, error) {
		if err := mustExist(tx, t.CustomerID); err != nil {
			return nil, err
		}
		if err := tx.Omit(clause.Associations).Create(&rec).Error; err != nil {
			return nil, fmt.Errorf("insert transaction: %w", err)
		}
		if err := touch(tx, now, t.CustomerID); err != nil {
			return nil, fmt.Errorf("touch customer %d: %w", t.CustomerID, err)
		}
		return []hisab.Change{{Kind: hisab.TransactionAdded, CustomerID: t.CustomerID, TxnID: rec.ID}}, nil
	})
	if err != nil {
		return t, err
	}
	return rec.transaction(), nil
}

// UpdateTransaction replaces an existing transaction. When it moves to
// another customer both customers are bumped.
func (s *Store) UpdateTransaction(ctx context.Context, t hisab.Transaction) error {
	if err := s.prepare(&t); err != nil {
		return err
	}
	rec := fromTransaction(t)
	now := hisab.TimestampOf(s.now())
	return s.write(ctx, func(tx *gorm.DB) ([]hisab.Change, error) {
		var old txnRecord
		found, err := first(tx, &old, t.ID)
		if err != nil {
			return nil, fmt.Errorf("load transaction %d: %w", t.ID, err)
		}
		if !found {
			return nil, fmt.Errorf("%w: no transaction %d", hisab.ErrInvalid, t.ID)
		}
		if err := mustExist(tx, t.CustomerID); err != nil {
			return nil, err
		}
		if err := tx.Omit(clause.Associations).Save(&rec).Error; err != nil {
			return nil, fmt.Errorf("update transaction %d: %w", t.ID, err)
		}
		if err := touch(tx, now, old.CustomerID, t.CustomerID); err != nil {
			return nil, fmt.Errorf("touch customers: %w", err)
		}
		return []hisab.Change{{Kind: hisab.TransactionUpdated, CustomerID: t.CustomerID, TxnID: t.ID}}, nil
	})
}

// DeleteTransaction deletes a transaction. Deleting an unknown transaction
// does nothing.
func (s *Store) DeleteTransaction(ctx context.Context, id int64) error {
	now := hisab.TimestampOf(s.now())
	return s.write(ctx, func(tx *gorm.DB) ([]hisab.Change, error) {
		var old txnRecord
		found, err := first(tx, &old, id)
		if err != nil || !found {
			return nil, err
		}
		if err := tx.Delete(&txnRecord{}, id).Error; err != nil {
			return nil, fmt.Errorf("delete transaction %d: %w", id, err)
		}
		if err := touch(tx, now, old.CustomerID); err != nil {
			return nil, fmt.Errorf("touch customer %d: %w", old.CustomerID, err)
		}
		return []hisab.Change{{Kind: hisab.TransactionDeleted, CustomerID: old.CustomerID, TxnID: id}}, nil
	})
}

// Transaction returns the transaction with that id, or nil if there is none.
func (s *Store) Transaction(ctx context.Context, id int64) (*hisab.Transaction, error) {
	var t *hisab.Transaction
	err := s.read(ctx, func(db *gorm.DB) error {
		var rec txnRecord
		found, err := first(db, &rec, id)
		if err != nil {
			return fmt.Errorf("load transaction %d: %w", id, err)
		}
		if found {
			v := rec.transaction()
			t = &v
		}
		return nil
	})
	return t, err
}

// Transactions returns the transactions of one customer, most recent first.
func (s *Store) Transactions(ctx context.Context, customerID int64) ([]hisab.Transaction, error) {
	return s.list(ctx, func(db *gorm.DB) *gorm.DB { return db.Where("customer_id = ?", customerID) })
}

// AllTransactions returns every transaction, most recent first.
func (s *Store) AllTransactions(ctx context.Context) ([]hisab.Transaction, error) {
	return s.list(ctx, func(db *gorm.DB) *gorm.DB { return db })
}

func (s *Store) list(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]hisab.Transaction, error) {
	var recs []txnRecord
	err := s.read(ctx, func(db *gorm.DB) error {
		q := scope(db.Model(&txnRecord{})).Order("date DESC").Order("id DESC")
		if err := q.Find(&recs).Error; err != nil {
			return fmt.Errorf("list transactions: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return transactions(recs), nil
}

// Ledger returns a snapshot of one customer's transactions.
func (s *Store) Ledger(ctx context.Context, customerID int64) (*hisab.Ledger, error) {
	txs, err := s.Transactions(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return hisab.NewLedger(txs), nil
}

// Totals returns the credit and debit sums of one customer.
func (s *Store) Totals(ctx context.Context, customerID int64) (hisab.Totals, error) {
	txs, err := s.Transactions(ctx, customerID)
	if err != nil {
		return hisab.Totals{}, err
	}
	return hisab.TotalsOf(txs), nil
}

// GlobalTotals returns the credit and debit sums over all customers.
func (s *Store) GlobalTotals(ctx context.Context) (hisab.Totals, error) {
	txs, err := s.AllTransactions(ctx)
	if err != nil {
		return hisab.Totals{}, err
	}
	return hisab.TotalsOf(txs), nil
}

// LatestTransaction returns the most recent transaction of a customer, or
// nil if it has none.
func (s *Store) LatestTransaction(ctx context.Context, customerID int64) (*hisab.Transaction, error) {
	var t *hisab.Transaction
	err := s.read(ctx, func(db *gorm.DB) error {
		var rec txnRecord
		err := db.Where("customer_id = ?", customerID).Order("date DESC").Order("id DESC").First(&rec).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("load latest transaction: %w", err)
		}
		v := rec.transaction()
		t = &v
		return nil
	})
	return t, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// NoteSuggestions returns up to limit distinct notes starting with prefix,
// in alphabetical order.
func (s *Store) NoteSuggestions(ctx context.Context, prefix string, limit int) ([]string, error) {
	var notes []string
	err := s.read(ctx, func(db *gorm.DB) error {
		q := db.Model(&txnRecord{}).
			Distinct("note").
			Where(`note <> '' AND note LIKE ? ESCAPE '\'`, likeEscaper.Replace(prefix)+"%").
			Order("note")
		if limit > 0 {
			q = q.Limit(limit)
		}
		if err := q.Pluck("note", &notes).Error; err != nil {
			return fmt.Errorf("note suggestions: %w", err)
		}
		return nil
	})
	return notes, err
}
