package cmd

import (
	"context"
	"flag"
	"strconv"

	"github.com/etnz/hisab"
	"github.com/etnz/hisab/docs"
	"github.com/etnz/hisab/store"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Complete handles shell completion requests for name and returns when the
// process was not started for completion. Install it with
// COMP_INSTALL=1 hisab.
func Complete(name string) {
	Completion().Complete(name)
}

// Completion describes the command line of every registered subcommand.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: flagPredictors(flag.CommandLine),
	}
	for _, g := range groups {
		for _, c := range g.commands {
			fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
			c.SetFlags(fs)
			root.Sub[c.Name()] = &complete.Command{
				Flags: flagPredictors(fs),
				Args:  argPredictors[c.Name()],
			}
		}
	}
	for _, name := range []string{"help", "flags", "commands"} {
		root.Sub[name] = &complete.Command{Args: predict.Nothing}
	}
	return root
}

var filterKeywords = func() predict.Set {
	var s predict.Set
	for _, f := range hisab.FilterRanges {
		s = append(s, f.String())
	}
	return s
}()

var flagPredictorsByName = map[string]complete.Predictor{
	"f":      filterKeywords,
	"sort":   predict.Set{"name", "recent"},
	"type":   predict.Set{"received", "paid"},
	"o":      predict.Files("*.jsonl"),
	"config": predict.Files("*.yaml"),
	"data":   predict.Files("*.db"),
	"note":   complete.PredictFunc(predictNotes),
}

func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	m := map[string]complete.Predictor{}
	fs.VisitAll(func(fl *flag.Flag) {
		if p, ok := flagPredictorsByName[fl.Name]; ok {
			m[fl.Name] = p
			return
		}
		if b, ok := fl.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			m[fl.Name] = predict.Nothing
			return
		}
		m[fl.Name] = predict.Something
	})
	return m
}

var customerIDs = complete.PredictFunc(predictCustomerIDs)

var argPredictors = map[string]complete.Predictor{
	"edit-customer":   customerIDs,
	"delete-customer": customerIDs,
	"received":        customerIDs,
	"paid":            customerIDs,
	"log":             customerIDs,
	"totals":          customerIDs,
	"statement":       customerIDs,
	"import":          predict.Files("*.jsonl"),
	"topic":           complete.PredictFunc(predictTopics),
	"customers":       predict.Nothing,
	"export":          predict.Nothing,
}

// completionStore runs fn on the configured store, returning nothing when
// the store cannot be opened.
func completionStore(fn func(context.Context, *store.Store) ([]string, error)) []string {
	a, err := loadApp()
	if err != nil {
		return nil
	}
	var out []string
	err = a.withStore(func(s *store.Store) error {
		out, err = fn(context.Background(), s)
		return err
	})
	if err != nil {
		return nil
	}
	return out
}

func predictCustomerIDs(string) []string {
	return completionStore(func(ctx context.Context, s *store.Store) ([]string, error) {
		customers, err := s.Customers(ctx, store.ByRecent)
		if err != nil {
			return nil, err
		}
		ids := make([]string, 0, len(customers))
		for _, c := range customers {
			ids = append(ids, strconv.FormatInt(c.ID, 10))
		}
		return ids, nil
	})
}

func predictNotes(prefix string) []string {
	return completionStore(func(ctx context.Context, s *store.Store) ([]string, error) {
		return s.NoteSuggestions(ctx, prefix, 20)
	})
}

func predictTopics(string) []string {
	topics, err := docs.GetAllTopics()
	if err != nil {
		return nil
	}
	return topics
}
