package cmd

import (
	"context"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/etnz/hisab"
	"github.com/etnz/hisab/store"
	"github.com/google/subcommands"
)

var documentsDir string

func TestMain(m *testing.M) {
	tmp, err := os.MkdirTemp("", "hisab-cmd-")
	if err != nil {
		panic(err)
	}
	documentsDir = filepath.Join(tmp, "Documents")
	os.Setenv("HOME", tmp)
	os.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, ".config"))
	os.Setenv("HISAB_DOCUMENTS_DIR", documentsDir)
	os.Setenv("HISAB_TIME_ZONE", "UTC")
	os.Setenv("HISAB_LOG_LEVEL", "error")
	os.Setenv(EnvTestingNow, "2026-10-18 15:00:00")

	code := m.Run()
	os.RemoveAll(tmp)
	os.Exit(code)
}

// useDB points the commands to a fresh database for the test duration.
func useDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hisab.db")
	old := *dataFile
	*dataFile = path
	t.Cleanup(func() { *dataFile = old })
	return path
}

// execute runs c with args and returns what it printed on the standard
// output.
func execute(t *testing.T, c subcommands.Command, args ...string) (string, subcommands.ExitStatus) {
	t.Helper()
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("%s %q: %v", c.Name(), args, err)
	}

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe() failed: %v", err)
	}
	stdout := os.Stdout
	os.Stdout = w
	done := make(chan string)
	go func() {
		b, _ := io.ReadAll(r)
		done <- string(b)
	}()

	status := c.Execute(context.Background(), f)

	os.Stdout = stdout
	w.Close()
	return <-done, status
}

func TestParseID(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"7", 7, false},
		{"#12", 12, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"ravi", 0, true},
	}
	for _, tt := range tests {
		got, err := parseID("customer", tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseID(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseID(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDateAt(t *testing.T) {
	now := time.Date(2026, time.October, 18, 15, 4, 5, 0, time.UTC)
	got := dateAt(hisab.NewDate(2026, time.October, 2), now)
	want := hisab.TimestampOf(time.Date(2026, time.October, 2, 15, 4, 5, 0, time.UTC))
	if got != want {
		t.Errorf("dateAt() = %v, want %v", got.Time(time.UTC), want.Time(time.UTC))
	}
}

func TestTxnCmd_Name(t *testing.T) {
	if got := (&txnCmd{typ: hisab.Credit}).Name(); got != "received" {
		t.Errorf("credit command = %q, want received", got)
	}
	if got := (&txnCmd{typ: hisab.Debit}).Name(); got != "paid" {
		t.Errorf("debit command = %q, want paid", got)
	}
}

func TestGroups_UniqueNames(t *testing.T) {
	seen := map[string]bool{}
	for _, g := range groups {
		for _, c := range g.commands {
			if seen[c.Name()] {
				t.Errorf("command %q registered twice", c.Name())
			}
			seen[c.Name()] = true
		}
	}
	for _, name := range []string{"add-customer", "received", "paid", "log", "statement", "export", "import", "topic"} {
		if !seen[name] {
			t.Errorf("command %q is not registered", name)
		}
	}
}

func TestCompletion(t *testing.T) {
	c := Completion()
	for _, g := range groups {
		for _, cmd := range g.commands {
			if _, ok := c.Sub[cmd.Name()]; !ok {
				t.Errorf("no completion for %q", cmd.Name())
			}
		}
	}
	if _, ok := c.Sub["log"].Flags["f"]; !ok {
		t.Error("log -f has no predictor")
	}
	if got := filterKeywords.Predict(""); !strings.Contains(strings.Join(got, " "), "this-month") {
		t.Errorf("filter keywords = %q, want this-month among them", got)
	}
}

func TestWorkflow(t *testing.T) {
	useDB(t)

	out, status := execute(t, &addCustomerCmd{}, "-phone", "+91 98450 00000", "Ravi", "Traders")
	if status != subcommands.ExitSuccess || out != "Added customer #1 Ravi Traders\n" {
		t.Fatalf("add-customer = %q, %v", out, status)
	}

	out, status = execute(t, &txnCmd{typ: hisab.Credit}, "-d", "2026-10-02", "-note", "cement", "1", "100")
	if status != subcommands.ExitSuccess {
		t.Fatalf("received failed: %v", status)
	}
	if want := "Recorded #1: received ₹100.00 from Ravi Traders. Remaining ₹100.00, you will pay\n"; out != want {
		t.Errorf("received printed %q, want %q", out, want)
	}

	out, status = execute(t, &txnCmd{typ: hisab.Debit}, "-d", "2026-10-03", "-note", "cement bags", "1", "130")
	if status != subcommands.ExitSuccess {
		t.Fatalf("paid failed: %v", status)
	}
	if want := "Recorded #2: paid ₹130.00 to Ravi Traders. Remaining ₹30.00, you will receive\n"; out != want {
		t.Errorf("paid printed %q, want %q", out, want)
	}

	if _, status := execute(t, &editTxCmd{}, "-amount", "30", "2"); status != subcommands.ExitSuccess {
		t.Errorf("edit-tx failed: %v", status)
	}

	out, _ = execute(t, &notesCmd{}, "cem")
	if want := "cement\ncement bags\n"; out != want {
		t.Errorf("notes printed %q, want %q", out, want)
	}

	if _, status := execute(t, &deleteCustomerCmd{}, "1"); status != subcommands.ExitUsageError {
		t.Errorf("delete-customer without -yes = %v, want a usage error", status)
	}
	if _, status := execute(t, &logCmd{}, "-f", "all", "1"); status != subcommands.ExitSuccess {
		t.Errorf("log failed: %v", status)
	}
	if _, status := execute(t, &totalsCmd{}); status != subcommands.ExitSuccess {
		t.Errorf("totals failed: %v", status)
	}
	if _, status := execute(t, &logCmd{}, "9"); status != subcommands.ExitFailure {
		t.Errorf("log of a missing customer = %v, want a failure", status)
	}
	if _, status := execute(t, &txnCmd{typ: hisab.Credit}, "1", "ten"); status != subcommands.ExitUsageError {
		t.Errorf("received with a bad amount = %v, want a usage error", status)
	}
}

// inZone makes the commands run in loc for the test duration.
func inZone(t *testing.T, loc *time.Location) {
	t.Helper()
	base, err := loadApp()
	if err != nil {
		t.Fatalf("loadApp() failed: %v", err)
	}
	zoned := *base
	zoned.loc = loc
	old := loadOnce
	loadOnce = func() (*app, error) { return &zoned, nil }
	t.Cleanup(func() { loadOnce = old })
}

func TestTxnCmd_DatesInConfiguredZone(t *testing.T) {
	useDB(t)
	// 05:00 on the 19th at UTC+14 is still the 18th in UTC.
	line := time.FixedZone("LINT", 14*3600)
	inZone(t, line)
	t.Setenv(EnvTestingNow, "2026-10-19 05:00:00")

	execute(t, &addCustomerCmd{}, "Ravi Traders")
	if _, status := execute(t, &txnCmd{typ: hisab.Credit}, "1", "123"); status != subcommands.ExitSuccess {
		t.Fatalf("received failed: %v", status)
	}
	if _, status := execute(t, &txnCmd{typ: hisab.Debit}, "-d", "-1d", "1", "23"); status != subcommands.ExitSuccess {
		t.Fatalf("paid failed: %v", status)
	}

	want := map[int64]hisab.Date{
		1: hisab.NewDate(2026, time.October, 19),
		2: hisab.NewDate(2026, time.October, 18),
	}
	err := store.With(*dataFile, func(s *store.Store) error {
		for id, day := range want {
			tx, err := s.Transaction(context.Background(), id)
			if err != nil {
				return err
			}
			if tx == nil {
				t.Fatalf("transaction #%d missing", id)
			}
			if got := tx.Date.Date(line); got != day {
				t.Errorf("transaction #%d recorded on %v, want %v", id, got, day)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("reading transactions: %v", err)
	}
}

func TestStatementCmd(t *testing.T) {
	useDB(t)
	execute(t, &addCustomerCmd{}, "Ravi Traders")
	execute(t, &txnCmd{typ: hisab.Credit}, "-d", "2026-10-02", "1", "100")

	out, status := execute(t, &statementCmd{}, "-xlsx", "1")
	if status != subcommands.ExitSuccess {
		t.Fatalf("statement failed: %v", status)
	}
	paths := strings.Split(strings.TrimSpace(out), "\n")
	if len(paths) != 2 {
		t.Fatalf("statement printed %q, want a PDF and a spreadsheet path", out)
	}
	if want := filepath.Join(documentsDir, "Hisab", "Hisab_Ravi Traders_1792335600000.pdf"); paths[0] != want {
		t.Errorf("pdf path = %q, want %q", paths[0], want)
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("statement file missing: %v", err)
		}
	}

	if _, status := execute(t, &statementCmd{}, "-all", "1"); status != subcommands.ExitUsageError {
		t.Errorf("statement -all with an id = %v, want a usage error", status)
	}
}

func TestExportImport(t *testing.T) {
	useDB(t)
	execute(t, &addCustomerCmd{}, "Ravi Traders")
	execute(t, &txnCmd{typ: hisab.Credit}, "-d", "2026-10-02", "-note", "cement", "1", "100")
	execute(t, &txnCmd{typ: hisab.Debit}, "-d", "2026-10-03", "1", "30.50")

	book := filepath.Join(t.TempDir(), "book.jsonl")
	if _, status := execute(t, &exportCmd{}, "-o", book); status != subcommands.ExitSuccess {
		t.Fatalf("export failed: %v", status)
	}
	data, err := os.ReadFile(book)
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	if lines := strings.Count(string(data), "\n"); lines != 3 {
		t.Errorf("book has %d lines, want 3:\n%s", lines, data)
	}

	useDB(t)
	out, status := execute(t, &importCmd{}, book)
	if status != subcommands.ExitSuccess {
		t.Fatalf("import failed: %v", status)
	}
	if want := "Imported 1 customers and 2 transactions\n"; out != want {
		t.Errorf("import printed %q, want %q", out, want)
	}
}
