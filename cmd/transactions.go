package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/hisab"
	"github.com/etnz/hisab/store"
	"github.com/google/subcommands"
)

// txnCmd records a transaction of a fixed type: "received" records a
// CREDIT, "paid" a DEBIT.
type txnCmd struct {
	typ  hisab.TxnType
	date string
	note string
}

func (c *txnCmd) Name() string {
	if c.typ == hisab.Debit {
		return "paid"
	}
	return "received"
}

func (c *txnCmd) Synopsis() string {
	if c.typ == hisab.Debit {
		return "record money paid to a customer"
	}
	return "record money received from a customer"
}

func (c *txnCmd) Usage() string {
	return fmt.Sprintf(`hisab %s [-d <date>] [-note <note>] <customer id> <amount>

  Records a %s transaction. The date defaults to today and is capped at
  today. Dates accept 2026-10-18, 18 (day of this month), 10-18, or -2d.
`, c.Name(), c.typ)
}

func (c *txnCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "0d", "Date of the transaction.")
	f.StringVar(&c.note, "note", "", "What the transaction is about.")
}

func (c *txnCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, a *app, s *store.Store) error {
		if f.NArg() != 2 {
			return usagef("expected a customer id and an amount, got %d arguments", f.NArg())
		}
		customerID, err := parseID("customer", f.Arg(0))
		if err != nil {
			return err
		}
		cu, err := mustCustomer(ctx, s, customerID)
		if err != nil {
			return err
		}
		amount, err := hisab.ParseMoney(f.Arg(1), a.cfg.Currency)
		if err != nil {
			return usagef("%v", err)
		}
		now := a.now()
		day, err := hisab.ParseDateAt(c.date, hisab.DateOf(now))
		if err != nil {
			return usagef("%v", err)
		}

		tx, err := s.AddTransaction(ctx, hisab.Transaction{
			CustomerID: customerID,
			Amount:     amount,
			Type:       c.typ,
			Note:       c.note,
			Date:       dateAt(day, now),
		})
		if err != nil {
			return err
		}
		totals, err := s.Totals(ctx, customerID)
		if err != nil {
			return err
		}
		remaining, label, _ := totals.Remaining()
		direction := "from"
		if c.typ == hisab.Debit {
			direction = "to"
		}
		fmt.Printf("Recorded #%d: %s %s %s %s. Remaining %s, %s\n", tx.ID, c.Name(), tx.Amount, direction, cu.Name, remaining, strings.ToLower(label))
		return nil
	})
}

type editTxCmd struct {
	customer string
	amount   string
	typ      string
	date     string
	note     string
}

func (*editTxCmd) Name() string     { return "edit-tx" }
func (*editTxCmd) Synopsis() string { return "change a transaction" }
func (*editTxCmd) Usage() string {
	return `hisab edit-tx [-customer <id>] [-amount <amount>] [-type received|paid] [-d <date>] [-note <note>] <transaction id>

  Only the fields given on the command line change.
`
}

func (c *editTxCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.customer, "customer", "", "Move the transaction to another customer.")
	f.StringVar(&c.amount, "amount", "", "New amount.")
	f.StringVar(&c.typ, "type", "", "New type: received or paid.")
	f.StringVar(&c.date, "d", "", "New date.")
	f.StringVar(&c.note, "note", "", "New note.")
}

func (c *editTxCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, a *app, s *store.Store) error {
		id, err := argID(f, "transaction")
		if err != nil {
			return err
		}
		tx, err := s.Transaction(ctx, id)
		if err != nil {
			return err
		}
		if tx == nil {
			return fmt.Errorf("transaction %d does not exist", id)
		}

		var errs []error
		f.Visit(func(fl *flag.Flag) {
			var err error
			switch fl.Name {
			case "customer":
				tx.CustomerID, err = parseID("customer", c.customer)
			case "amount":
				tx.Amount, err = hisab.ParseMoney(c.amount, tx.Amount.Currency())
			case "type":
				tx.Type, err = hisab.ParseTxnType(c.typ)
			case "d":
				var day hisab.Date
				if day, err = hisab.ParseDateAt(c.date, hisab.DateOf(a.now())); err == nil {
					tx.Date = dateAt(day, tx.Date.Time(a.loc))
				}
			case "note":
				tx.Note = c.note
			}
			if err != nil {
				errs = append(errs, err)
			}
		})
		if len(errs) > 0 {
			return usagef("%v", errs[0])
		}

		if err := s.UpdateTransaction(ctx, *tx); err != nil {
			return err
		}
		fmt.Printf("Updated transaction #%d\n", tx.ID)
		return nil
	})
}

type deleteTxCmd struct{}

func (*deleteTxCmd) Name() string     { return "delete-tx" }
func (*deleteTxCmd) Synopsis() string { return "delete a transaction" }
func (*deleteTxCmd) Usage() string {
	return `hisab delete-tx <transaction id>
`
}

func (*deleteTxCmd) SetFlags(*flag.FlagSet) {}

func (*deleteTxCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, a *app, s *store.Store) error {
		id, err := argID(f, "transaction")
		if err != nil {
			return err
		}
		if err := s.DeleteTransaction(ctx, id); err != nil {
			return err
		}
		fmt.Printf("Deleted transaction #%d\n", id)
		return nil
	})
}
