// Package renderer turns ledger views into markdown, for the terminal.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed *.md
var templates embed.FS

// RenderLedger renders a customer's ledger to a markdown string.
func RenderLedger(l *Ledger) string {
	partials := map[string]string{
		"ledger_title":  "ledger_title.md",
		"ledger_totals": "ledger_totals.md",
		"ledger_rows":   "ledger_rows.md",
	}
	return renderTemplate("ledger", "ledger.md", partials, l)
}

// RenderCustomers renders the customer list to a markdown string.
func RenderCustomers(c *Customers) string {
	return renderTemplate("customers", "customers.md", nil, c)
}

// RenderTotals renders received and paid totals to a markdown string.
func RenderTotals(t *Totals) string {
	return renderTemplate("totals", "totals.md", nil, t)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
