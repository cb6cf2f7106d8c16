package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/hisab"
	"github.com/etnz/hisab/renderer"
	"github.com/etnz/hisab/store"
	"github.com/google/subcommands"
)

type addCustomerCmd struct {
	phone string
	note  string
}

func (*addCustomerCmd) Name() string     { return "add-customer" }
func (*addCustomerCmd) Synopsis() string { return "add a customer" }
func (*addCustomerCmd) Usage() string {
	return `hisab add-customer [-phone <phone>] [-note <note>] <name>

  Adds a customer and prints its id. The name may span several arguments.
`
}

func (c *addCustomerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.phone, "phone", "", "Phone number of the customer.")
	f.StringVar(&c.note, "note", "", "Free text about the customer.")
}

func (c *addCustomerCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, a *app, s *store.Store) error {
		cu, err := s.AddCustomer(ctx, hisab.Customer{
			Name:  strings.Join(f.Args(), " "),
			Phone: c.phone,
			Note:  c.note,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Added customer #%d %s\n", cu.ID, cu.Name)
		return nil
	})
}

type editCustomerCmd struct {
	name  string
	phone string
	note  string
}

func (*editCustomerCmd) Name() string     { return "edit-customer" }
func (*editCustomerCmd) Synopsis() string { return "change a customer's name, phone or note" }
func (*editCustomerCmd) Usage() string {
	return `hisab edit-customer [-name <name>] [-phone <phone>] [-note <note>] <customer id>

  Only the fields given on the command line change. Use -phone "" to clear it.
`
}

func (c *editCustomerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "New name.")
	f.StringVar(&c.phone, "phone", "", "New phone number.")
	f.StringVar(&c.note, "note", "", "New note.")
}

func (c *editCustomerCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, a *app, s *store.Store) error {
		id, err := argID(f, "customer")
		if err != nil {
			return err
		}
		cu, err := mustCustomer(ctx, s, id)
		if err != nil {
			return err
		}
		f.Visit(func(fl *flag.Flag) {
			switch fl.Name {
			case "name":
				cu.Name = c.name
			case "phone":
				cu.Phone = c.phone
			case "note":
				cu.Note = c.note
			}
		})
		if err := s.UpdateCustomer(ctx, *cu); err != nil {
			return err
		}
		fmt.Printf("Updated customer #%d %s\n", cu.ID, cu.Name)
		return nil
	})
}

type deleteCustomerCmd struct {
	yes bool
}

func (*deleteCustomerCmd) Name() string     { return "delete-customer" }
func (*deleteCustomerCmd) Synopsis() string { return "delete a customer and all its transactions" }
func (*deleteCustomerCmd) Usage() string {
	return `hisab delete-customer [-yes] <customer id>

  Deletes the customer. A customer that still has transactions is only
  deleted with -yes, and its transactions go with it.
`
}

func (c *deleteCustomerCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "yes", false, "Also delete the customer's transactions.")
}

func (c *deleteCustomerCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, a *app, s *store.Store) error {
		id, err := argID(f, "customer")
		if err != nil {
			return err
		}
		cu, err := mustCustomer(ctx, s, id)
		if err != nil {
			return err
		}
		txs, err := s.Transactions(ctx, id)
		if err != nil {
			return err
		}
		if len(txs) > 0 && !c.yes {
			return usagef("customer #%d %s has %d transactions, use -yes to delete them too", id, cu.Name, len(txs))
		}
		if err := s.DeleteCustomer(ctx, id); err != nil {
			return err
		}
		fmt.Printf("Deleted customer #%d %s and %d transactions\n", id, cu.Name, len(txs))
		return nil
	})
}

type customersCmd struct {
	sort string
}

func (*customersCmd) Name() string     { return "customers" }
func (*customersCmd) Synopsis() string { return "list customers with their balance" }
func (*customersCmd) Usage() string {
	return `hisab customers [-sort name|recent]

  Lists every customer with the balance received - paid and the date of the
  latest transaction.
`
}

func (c *customersCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.sort, "sort", "name", "Sort order: name (case insensitive) or recent (latest activity first).")
}

func (c *customersCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, a *app, s *store.Store) error {
		order, err := store.ParseOrder(c.sort)
		if err != nil {
			return usagef("%v", err)
		}
		customers, err := s.Customers(ctx, order)
		if err != nil {
			return err
		}
		totals := make(map[int64]hisab.Totals, len(customers))
		latest := make(map[int64]hisab.Timestamp, len(customers))
		for _, cu := range customers {
			if totals[cu.ID], err = s.Totals(ctx, cu.ID); err != nil {
				return err
			}
			tx, err := s.LatestTransaction(ctx, cu.ID)
			if err != nil {
				return err
			}
			if tx != nil {
				latest[cu.ID] = tx.Date
			}
		}
		printMarkdown(renderer.RenderCustomers(renderer.NewCustomers(customers, totals, latest, a.loc)))
		return nil
	})
}
