package hisab

import "time"

// INR is a helper for test to create rupee money from const
func INR(v float64) Money { return M(v, "INR") }

// NO is a helper for test to create money from const with no currency set
func NO(v float64) Money { return M(v, "") }

// ist is the zone most tests run the ledger in.
var ist = time.FixedZone("IST", 5*3600+1800)

// at returns the instant of a local wall clock time in ist.
func at(y int, m time.Month, d, hh, mm int) Timestamp {
	return TimestampOf(time.Date(y, m, d, hh, mm, 0, 0, ist))
}

// credit and debit build transactions for customer 1.
func credit(id int64, v float64, when Timestamp) Transaction {
	return Transaction{ID: id, CustomerID: 1, Amount: INR(v), Type: Credit, Date: when}
}

func debit(id int64, v float64, when Timestamp) Transaction {
	return Transaction{ID: id, CustomerID: 1, Amount: INR(v), Type: Debit, Date: when}
}

// ids returns the ids of txs, in order.
func ids(txs []Transaction) []int64 {
	res := make([]int64, len(txs))
	for i, tx := range txs {
		res[i] = tx.ID
	}
	return res
}
