package statement

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/hisab"
)

func TestRender(t *testing.T) {
	prev := inr(250)
	s := statementOf(40, "₹ paid for the cement delivered on site", &prev)
	s.Filter = hisab.FilterThisMonth
	s.Totals = hisab.Totals{Credit: inr(40), Debit: inr(0)}

	var buf bytes.Buffer
	if err := Render(&buf, s, Options{Uncompressed: true}); err != nil {
		t.Fatalf("Render() failed: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "%PDF-") {
		t.Fatalf("Render() output starts with %q, want %%PDF-", out[:min(len(out), 8)])
	}
	for _, want := range []string{"Ravi Traders Statement", "Previous amount", "Page 1", "Page 2", "Rs.250.00", "You will Pay"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() output does not contain %q", want)
		}
	}
}

func TestRender_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, statementOf(0, "", nil), Options{}); err != nil {
		t.Fatalf("Render() failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Error("Render() did not produce a PDF")
	}
}

func TestRender_MissingFont(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, statementOf(1, "", nil), Options{FontFile: filepath.Join(t.TempDir(), "nope.ttf")})
	if err == nil {
		t.Fatal("Render() with a missing font succeeded")
	}
	if !strings.Contains(err.Error(), "pdf build failed") {
		t.Errorf("Render() error = %v, want a pdf build failure", err)
	}
}
