package cmd

import (
	"github.com/etnz/hisab"
	"github.com/google/subcommands"
)

// Register the subcommands.
func Register(c *subcommands.Commander) {
	for _, g := range groups {
		for _, cmd := range g.commands {
			c.Register(cmd, g.name)
		}
	}
}

type group struct {
	name     string
	commands []subcommands.Command
}

var groups = []group{
	{"customers", []subcommands.Command{
		&addCustomerCmd{},
		&editCustomerCmd{},
		&deleteCustomerCmd{},
		&customersCmd{},
	}},
	{"transactions", []subcommands.Command{
		&txnCmd{typ: hisab.Credit},
		&txnCmd{typ: hisab.Debit},
		&editTxCmd{},
		&deleteTxCmd{},
		&notesCmd{},
	}},
	{"reports", []subcommands.Command{
		&logCmd{},
		&totalsCmd{},
		&statementCmd{},
	}},
	{"book", []subcommands.Command{
		&exportCmd{},
		&importCmd{},
	}},
	{"help", []subcommands.Command{
		&topicCmd{},
	}},
}
