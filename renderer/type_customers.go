package renderer

import (
	"time"

	"github.com/etnz/hisab"
)

// Customers is the customer list with each customer's balance.
type Customers struct {
	Rows []CustomerRow `json:"rows"`
}

// CustomerRow is one customer in the list.
type CustomerRow struct {
	ID      int64       `json:"id"`
	Name    string      `json:"name"`
	Phone   string      `json:"phone,omitempty"`
	Balance hisab.Money `json:"balance"` // received - paid
	Latest  hisab.Date  `json:"latest"`  // date of the latest transaction, zero if none
}

// NewCustomers creates the list, in the order of customers. Totals and
// latest transactions are looked up by customer id; missing ones are zero.
func NewCustomers(customers []hisab.Customer, totals map[int64]hisab.Totals, latest map[int64]hisab.Timestamp, loc *time.Location) *Customers {
	c := &Customers{Rows: make([]CustomerRow, 0, len(customers))}
	for _, cu := range customers {
		row := CustomerRow{
			ID:      cu.ID,
			Name:    cu.Name,
			Phone:   cu.Phone,
			Balance: totals[cu.ID].Net(),
		}
		if ts, ok := latest[cu.ID]; ok {
			row.Latest = ts.Date(loc)
		}
		c.Rows = append(c.Rows, row)
	}
	return c
}
