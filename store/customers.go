package store

import (
	"context"
	"fmt"

	"github.com/etnz/hisab"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Order is a customer list ordering.
type Order int

const (
	ByName   Order = iota // case-insensitive name, then id
	ByRecent              // most recently updated first
)

// ParseOrder parses "name" or "recent".
func ParseOrder(s string) (Order, error) {
	switch s {
	case "name", "":
		return ByName, nil
	case "recent":
		return ByRecent, nil
	default:
		return ByName, fmt.Errorf("unknown order %q, want name or recent", s)
	}
}

// AddCustomer validates and inserts a new customer and returns it with its
// id and timestamps set.
func (s *Store) AddCustomer(ctx context.Context, c hisab.Customer) (hisab.Customer, error) {
	if err := c.Validate(); err != nil {
		return c, err
	}
	now := hisab.TimestampOf(s.now())
	c.ID, c.CreatedAt, c.UpdatedAt = 0, now, now
	rec := fromCustomer(c)
	err := s.write(ctx, func(tx *gorm.DB) ([]hisab.Change, error) {
		if err := tx.Omit(clause.Associations).Create(&rec).Error; err != nil {
			return nil, fmt.Errorf("insert customer: %w", err)
		}
		return []hisab.Change{{Kind: hisab.CustomerAdded, CustomerID: rec.ID}}, nil
	})
	if err != nil {
		return c, err
	}
	return rec.customer(), nil
}

// UpdateCustomer replaces the name, phone and note of an existing customer.
func (s *Store) UpdateCustomer(ctx context.Context, c hisab.Customer) error {
	if err := c.Validate(); err != nil {
		return err
	}
	now := hisab.TimestampOf(s.now())
	return s.write(ctx, func(tx *gorm.DB) ([]hisab.Change, error) {
		res := tx.Model(&customerRecord{}).Where("id = ?", c.ID).Updates(map[string]any{
			"name":       c.Name,
			"phone":      c.Phone,
			"note":       c.Note,
			"updated_at": int64(now),
		})
		if res.Error != nil {
			return nil, fmt.Errorf("update customer %d: %w", c.ID, res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, fmt.Errorf("%w: no customer %d", hisab.ErrInvalid, c.ID)
		}
		return []hisab.Change{{Kind: hisab.CustomerUpdated, CustomerID: c.ID}}, nil
	})
}

// DeleteCustomer deletes a customer, and the ON DELETE CASCADE foreign key
// all its transactions. Deleting an unknown customer does nothing.
func (s *Store) DeleteCustomer(ctx context.Context, id int64) error {
	return s.write(ctx, func(tx *gorm.DB) ([]hisab.Change, error) {
		res := tx.Where("id = ?", id).Delete(&customerRecord{})
		if res.Error != nil {
			return nil, fmt.Errorf("delete customer %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, nil
		}
		return []hisab.Change{{Kind: hisab.CustomerDeleted, CustomerID: id}}, nil
	})
}

// Customer returns the customer with that id, or nil if there is none.
func (s *Store) Customer(ctx context.Context, id int64) (*hisab.Customer, error) {
	var c *hisab.Customer
	err := s.read(ctx, func(db *gorm.DB) error {
		var rec customerRecord
		found, err := first(db, &rec, id)
		if err != nil {
			return fmt.Errorf("load customer %d: %w", id, err)
		}
		if found {
			v := rec.customer()
			c = &v
		}
		return nil
	})
	return c, err
}

// Customers lists every customer in the given order.
func (s *Store) Customers(ctx context.Context, order Order) ([]hisab.Customer, error) {
	var recs []customerRecord
	err := s.read(ctx, func(db *gorm.DB) error {
		q := db.Model(&customerRecord{})
		switch order {
		case ByRecent:
			q = q.Order("updated_at DESC").Order("id DESC")
		default:
			q = q.Order("name COLLATE NOCASE").Order("id")
		}
		if err := q.Find(&recs).Error; err != nil {
			return fmt.Errorf("list customers: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	res := make([]hisab.Customer, len(recs))
	for i, r := range recs {
		res[i] = r.customer()
	}
	return res, nil
}
