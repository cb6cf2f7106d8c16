package store

import (
	"github.com/etnz/hisab"
	"github.com/shopspring/decimal"
)

// customerRecord is the customers table.
//
// Timestamps are epoch milliseconds. The fields are not named CreatedAt and
// UpdatedAt so that gorm leaves them alone.
type customerRecord struct {
	ID        int64  `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	Phone     string
	Note      string
	CreatedMs int64 `gorm:"column:created_at;not null"`
	UpdatedMs int64 `gorm:"column:updated_at;not null;index"`

	Txns []txnRecord `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
}

func (customerRecord) TableName() string { return "customers" }

// txnRecord is the txns table. Amounts are stored as exact decimal text.
type txnRecord struct {
	ID         int64           `gorm:"primaryKey"`
	CustomerID int64           `gorm:"not null;index"`
	Amount     decimal.Decimal `gorm:"type:text;not null"`
	Currency   string          `gorm:"size:3"`
	Type       string          `gorm:"size:8;not null"`
	Note       string          `gorm:"index"`
	Date       int64           `gorm:"not null;index"`
}

func (txnRecord) TableName() string { return "txns" }

func fromCustomer(c hisab.Customer) customerRecord {
	return customerRecord{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Note:      c.Note,
		CreatedMs: int64(c.CreatedAt),
		UpdatedMs: int64(c.UpdatedAt),
	}
}

func (r customerRecord) customer() hisab.Customer {
	return hisab.Customer{
		ID:        r.ID,
		Name:      r.Name,
		Phone:     r.Phone,
		Note:      r.Note,
		CreatedAt: hisab.Timestamp(r.CreatedMs),
		UpdatedAt: hisab.Timestamp(r.UpdatedMs),
	}
}

func fromTransaction(tx hisab.Transaction) txnRecord {
	return txnRecord{
		ID:         tx.ID,
		CustomerID: tx.CustomerID,
		Amount:     tx.Amount.Decimal(),
		Currency:   tx.Amount.Currency(),
		Type:       string(tx.Type),
		Note:       tx.Note,
		Date:       int64(tx.Date),
	}
}

func (r txnRecord) transaction() hisab.Transaction {
	cur := r.Currency
	if cur == "" {
		cur = hisab.DefaultCurrency
	}
	return hisab.Transaction{
		ID:         r.ID,
		CustomerID: r.CustomerID,
		Amount:     hisab.M(r.Amount, cur),
		Type:       hisab.TxnType(r.Type),
		Note:       r.Note,
		Date:       hisab.Timestamp(r.Date),
	}
}

func transactions(records []txnRecord) []hisab.Transaction {
	txs := make([]hisab.Transaction, len(records))
	for i, r := range records {
		txs[i] = r.transaction()
	}
	return txs
}
