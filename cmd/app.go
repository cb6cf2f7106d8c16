// Package cmd implements the CLI application to manage a hisab ledger.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/hisab"
	"github.com/etnz/hisab/config"
	"github.com/etnz/hisab/statement"
	"github.com/etnz/hisab/store"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to the configuration file. Defaults to hisab.yaml in the working or user config directory.")
var dataFile = flag.String("data", "", "Path to the SQLite database. Overrides data_file.")
var verbose = flag.Bool("v", false, "Log debug messages, including SQL statements.")

// EnvTestingNow freezes the clock, in the "2006-01-02 15:04:05" format, for
// reproducible documentation examples.
const EnvTestingNow = "HISAB_TESTING_NOW"

// app is what every command needs: configuration, logger and clock.
type app struct {
	cfg *config.Config
	log *zap.Logger
	loc *time.Location
}

var loadOnce = sync.OnceValues(func() (*app, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, err
	}
	if *verbose {
		cfg.LogLevel = "debug"
	}
	log, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, log: log, loc: loc}, nil
})

// loadApp returns the process wide app, loading it on first use.
func loadApp() (*app, error) { return loadOnce() }

// now returns the current time in the configured zone.
func (a *app) now() time.Time {
	if v := os.Getenv(EnvTestingNow); v != "" {
		if t, err := time.ParseInLocation(time.DateTime, v, a.loc); err == nil {
			return t
		}
		a.log.Warn("ignoring invalid testing clock", zap.String(EnvTestingNow, v))
	}
	return time.Now().In(a.loc)
}

// dataPath returns the database path, -data taking precedence over the
// configuration.
func (a *app) dataPath() string {
	if *dataFile != "" {
		return *dataFile
	}
	return a.cfg.DataFile
}

// withStore opens the database for the duration of fn.
func (a *app) withStore(fn func(*store.Store) error) error {
	return store.With(a.dataPath(), fn,
		store.WithLogger(a.log),
		store.WithClock(a.now),
		store.WithCurrency(a.cfg.Currency),
		store.WithSQLLog(*verbose),
	)
}

// exporter returns a statement exporter configured for this app.
func (a *app) exporter() *statement.Exporter {
	return &statement.Exporter{
		Dir:     a.cfg.DocumentsDir,
		Options: statement.Options{FontFile: a.cfg.FontFile},
		Workers: a.cfg.Workers,
		Log:     a.log,
		Now:     a.now,
	}
}

// run loads the app and runs fn with an open store, turning errors into an
// exit status.
func run(ctx context.Context, fn func(ctx context.Context, a *app, s *store.Store) error) subcommands.ExitStatus {
	a, err := loadApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.log.Sync()

	err = a.withStore(func(s *store.Store) error { return fn(ctx, a, s) })
	var usage usageError
	switch {
	case err == nil:
		return subcommands.ExitSuccess
	case errors.As(err, &usage):
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
}

// usageError reports bad command line arguments.
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error { return usageError{fmt.Sprintf(format, args...)} }

// parseID parses a positive record id.
func parseID(what, s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(s, "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, usagef("invalid %s id %q", what, s)
	}
	return id, nil
}

// argID parses the only positional argument as an id.
func argID(f *flag.FlagSet, what string) (int64, error) {
	if f.NArg() != 1 {
		return 0, usagef("expected exactly one %s id, got %d arguments", what, f.NArg())
	}
	return parseID(what, f.Arg(0))
}

// mustCustomer loads a customer, failing when it does not exist.
func mustCustomer(ctx context.Context, s *store.Store, id int64) (*hisab.Customer, error) {
	c, err := s.Customer(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("customer %d does not exist", id)
	}
	return c, nil
}

// dateAt returns the instant of day d at now's wall clock time.
func dateAt(d hisab.Date, now time.Time) hisab.Timestamp {
	t := time.Date(d.Year(), d.Month(), d.Day(), now.Hour(), now.Minute(), now.Second(), 0, now.Location())
	return hisab.TimestampOf(t)
}

// printMarkdown renders markdown for the terminal, or prints it raw when it
// cannot be rendered.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
