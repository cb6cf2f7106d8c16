// Package hisab provides the types and functions for keeping a personal
// customer ledger: who owes what, and how the balance evolved over time.
//
// The core functionalities include:
//   - Ledger Management: customers and the CREDIT (money received) and DEBIT
//     (money paid) transactions recorded against each of them.
//   - Balance Computation: a stateless aggregator that orders transactions
//     chronologically and annotates each one with the running balance right
//     after it.
//   - Date Filters: named ranges (today, this week, last month, ...) resolved
//     against the local calendar, and the net amounts before or within them.
//   - Data Persistence: encoding and decoding of customers and transactions to
//     and from a human-readable JSONL book.
//
// This package serves as the foundational logic for the `hisab` command-line
// tool. Persistence lives in the store package and PDF statements in the
// statement package.
package hisab
