package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/hisab"
	"github.com/etnz/hisab/store"
	"github.com/google/subcommands"
)

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write the whole ledger as a JSONL book" }
func (*exportCmd) Usage() string {
	return `hisab export [-o <file>]

  Writes every customer and transaction, one JSON object per line. See
  "hisab topic book" for the format.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file, defaults to the standard output.")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, a *app, s *store.Store) error {
		book, err := s.Export(ctx)
		if err != nil {
			return err
		}
		if c.output == "" {
			return hisab.EncodeBook(os.Stdout, book)
		}
		out, err := os.Create(c.output)
		if err != nil {
			return err
		}
		if err := hisab.EncodeBook(out, book); err != nil {
			out.Close()
			return err
		}
		if err := out.Close(); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Exported %d customers and %d transactions to %s\n", len(book.Customers), len(book.Transactions), c.output)
		return nil
	})
}

type importCmd struct{}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "add the content of a JSONL book to the ledger" }
func (*importCmd) Usage() string {
	return `hisab import [<file>]

  Reads a book from file, or from the standard input, and adds its customers
  and transactions with fresh ids. Nothing is imported if any line is
  invalid.
`
}

func (*importCmd) SetFlags(*flag.FlagSet) {}

func (*importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, a *app, s *store.Store) error {
		var r io.Reader = os.Stdin
		switch f.NArg() {
		case 0:
		case 1:
			in, err := os.Open(f.Arg(0))
			if err != nil {
				return err
			}
			defer in.Close()
			r = in
		default:
			return usagef("expected at most one file, got %d arguments", f.NArg())
		}

		book, err := hisab.DecodeBook(r)
		if err != nil {
			return err
		}
		customers, txns, err := s.Import(ctx, book)
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d customers and %d transactions\n", customers, txns)
		return nil
	})
}
