package cmd

import (
	"context"
	"flag"

	"github.com/etnz/hisab/renderer"
	"github.com/etnz/hisab/store"
	"github.com/google/subcommands"
)

type totalsCmd struct{}

func (*totalsCmd) Name() string     { return "totals" }
func (*totalsCmd) Synopsis() string { return "display the received and paid sums" }
func (*totalsCmd) Usage() string {
	return `hisab totals [<customer id>]

  Without argument, sums every transaction of the book. With a customer id,
  sums that customer's transactions only.
`
}

func (*totalsCmd) SetFlags(*flag.FlagSet) {}

func (*totalsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, a *app, s *store.Store) error {
		switch f.NArg() {
		case 0:
			customers, err := s.Customers(ctx, store.ByName)
			if err != nil {
				return err
			}
			txs, err := s.AllTransactions(ctx)
			if err != nil {
				return err
			}
			totals, err := s.GlobalTotals(ctx)
			if err != nil {
				return err
			}
			printMarkdown(renderer.RenderTotals(renderer.NewTotals("All customers", len(customers), len(txs), totals)))
			return nil
		case 1:
			id, err := parseID("customer", f.Arg(0))
			if err != nil {
				return err
			}
			cu, err := mustCustomer(ctx, s, id)
			if err != nil {
				return err
			}
			ledger, err := s.Ledger(ctx, id)
			if err != nil {
				return err
			}
			printMarkdown(renderer.RenderTotals(renderer.NewTotals(cu.Name, 1, ledger.Len(), ledger.Totals())))
			return nil
		default:
			return usagef("expected at most one customer id, got %d arguments", f.NArg())
		}
	})
}
