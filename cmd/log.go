package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/hisab"
	"github.com/etnz/hisab/renderer"
	"github.com/etnz/hisab/statement"
	"github.com/etnz/hisab/store"
	"github.com/google/subcommands"
)

type logCmd struct {
	filter string
}

func (*logCmd) Name() string { return "log" }
func (*logCmd) Synopsis() string {
	return "display a customer's transactions with their running balance"
}
func (*logCmd) Usage() string {
	return `hisab log [-f <filter>] <customer id>

  Lists the customer's transactions in the filter's range, oldest first, each
  with the balance received - paid up to it. Earlier transactions are summed
  up in a "Previous amount" row.

  Filters: today, this-week, last-week, this-month, last-month, all.
`
}

func (c *logCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.filter, "f", "this-month", "Date range of the transactions.")
}

func (c *logCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, a *app, s *store.Store) error {
		id, err := argID(f, "customer")
		if err != nil {
			return err
		}
		filter, err := hisab.ParseFilterRange(c.filter)
		if err != nil {
			return usagef("%v", err)
		}
		st, err := statement.Build(ctx, s, id, filter, a.now())
		if err != nil {
			return err
		}
		if st == nil {
			return fmt.Errorf("customer %d does not exist", id)
		}
		printMarkdown(renderer.RenderLedger(renderer.NewLedger(st)))
		return nil
	})
}
