package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/hisab"
	"github.com/etnz/hisab/statement"
	"github.com/etnz/hisab/store"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

type statementCmd struct {
	filter string
	xlsx   bool
	all    bool
}

func (*statementCmd) Name() string     { return "statement" }
func (*statementCmd) Synopsis() string { return "save a customer's statement as a PDF document" }
func (*statementCmd) Usage() string {
	return `hisab statement [-f <filter>] [-xlsx] (-all | <customer id>)

  Saves the statement under <documents_dir>/Hisab and prints its path. With
  -all, saves one statement per customer, rendering them concurrently. With
  -xlsx, also saves the transactions as a spreadsheet next to each PDF.
`
}

func (c *statementCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.filter, "f", "all", "Date range of the transactions.")
	f.BoolVar(&c.xlsx, "xlsx", false, "Also save a spreadsheet.")
	f.BoolVar(&c.all, "all", false, "Save the statement of every customer.")
}

func (c *statementCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, a *app, s *store.Store) error {
		filter, err := hisab.ParseFilterRange(c.filter)
		if err != nil {
			return usagef("%v", err)
		}

		var ids []int64
		switch {
		case c.all && f.NArg() == 0:
			customers, err := s.Customers(ctx, store.ByName)
			if err != nil {
				return err
			}
			for _, cu := range customers {
				ids = append(ids, cu.ID)
			}
		case !c.all && f.NArg() == 1:
			id, err := parseID("customer", f.Arg(0))
			if err != nil {
				return err
			}
			ids = append(ids, id)
		default:
			return usagef("expected either -all or exactly one customer id")
		}

		now := a.now()
		stmts := make([]*statement.Statement, 0, len(ids))
		for _, id := range ids {
			st, err := statement.Build(ctx, s, id, filter, now)
			if err != nil {
				return err
			}
			if st == nil {
				return fmt.Errorf("customer %d does not exist", id)
			}
			stmts = append(stmts, st)
		}
		if len(stmts) == 0 {
			fmt.Println("No customers yet.")
			return nil
		}

		paths, err := c.save(ctx, a, stmts)
		if err != nil {
			return err
		}
		for i, p := range paths {
			fmt.Println(p)
			if !c.xlsx {
				continue
			}
			xp := strings.TrimSuffix(p, ".pdf") + ".xlsx"
			if err := saveXLSX(xp, stmts[i]); err != nil {
				return err
			}
			a.log.Debug("spreadsheet saved", zap.String("path", xp))
			fmt.Println(xp)
		}
		return nil
	})
}

// save renders one statement in the background, returning on interrupt, and
// several through the worker pool.
func (c *statementCmd) save(ctx context.Context, a *app, stmts []*statement.Statement) ([]string, error) {
	e := a.exporter()
	if len(stmts) > 1 {
		return e.SaveAll(ctx, stmts)
	}
	select {
	case res := <-e.Start(ctx, stmts[0]):
		if res.Err != nil {
			return nil, res.Err
		}
		return []string{res.Path}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func saveXLSX(path string, s *statement.Statement) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create spreadsheet: %w", err)
	}
	if err := statement.WriteXLSX(out, s); err != nil {
		out.Close()
		os.Remove(path)
		return err
	}
	return out.Close()
}
