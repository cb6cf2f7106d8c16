package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/hisab/store"
	"github.com/google/subcommands"
)

type notesCmd struct {
	limit int
}

func (*notesCmd) Name() string     { return "notes" }
func (*notesCmd) Synopsis() string { return "suggest transaction notes already in use" }
func (*notesCmd) Usage() string {
	return `hisab notes [-n <limit>] [<prefix>]

  Prints the distinct notes starting with prefix, one per line, in
  alphabetical order.
`
}

func (c *notesCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.limit, "n", 10, "Maximum number of suggestions, 0 for all.")
}

func (c *notesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, a *app, s *store.Store) error {
		if c.limit < 0 {
			return usagef("invalid limit %d", c.limit)
		}
		notes, err := s.NoteSuggestions(ctx, strings.Join(f.Args(), " "), c.limit)
		if err != nil {
			return err
		}
		for _, n := range notes {
			fmt.Println(n)
		}
		return nil
	})
}
