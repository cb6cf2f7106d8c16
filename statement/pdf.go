package statement

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/etnz/hisab"
	"github.com/phpdave11/gofpdf"
)

// Options tune the PDF rendering.
type Options struct {
	// FontFile is a UTF-8 TrueType font. Without it the core Helvetica font is
	// used and the rupee sign is written "Rs.".
	FontFile string
	// Uncompressed leaves page streams readable, for debugging and tests.
	Uncompressed bool
}

type rgb struct{ r, g, b int }

var (
	black     = rgb{0, 0, 0}
	darkGray  = rgb{68, 68, 68}
	lightGray = rgb{204, 204, 204}
	green     = rgb{0x2E, 0x7D, 0x32}
	red       = rgb{0xC6, 0x28, 0x28}
)

// balanceColor is green for a non negative amount, red otherwise.
func balanceColor(m hisab.Money) rgb {
	if m.IsNegative() {
		return red
	}
	return green
}

// pdfWriter draws a layout on a gofpdf document.
type pdfWriter struct {
	pdf    *gofpdf.Fpdf
	family string
	utf8   bool
	tr     func(string) string
}

func newPDFWriter(opts Options) *pdfWriter {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: PageWidth, Ht: PageHeight},
	})
	pdf.SetMargins(Margin, Margin, Margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(!opts.Uncompressed)
	pdf.SetLineWidth(0.9)

	w := &pdfWriter{pdf: pdf, family: "Helvetica"}
	if opts.FontFile != "" {
		pdf.AddUTF8Font("body", "", opts.FontFile)
		pdf.AddUTF8Font("body", "B", opts.FontFile)
		w.family, w.utf8 = "body", true
		w.tr = func(s string) string { return s }
	} else {
		cp := pdf.UnicodeTranslatorFromDescriptor("")
		w.tr = func(s string) string { return cp(strings.ReplaceAll(s, "₹", "Rs.")) }
	}
	return w
}

// Width implements Measurer in the note font.
func (w *pdfWriter) Width(text string) float64 {
	w.font("", noteFontSize)
	return w.pdf.GetStringWidth(w.tr(text))
}

// Split implements Measurer in the note font. Lines come back encoded for
// the current font.
func (w *pdfWriter) Split(text string, width float64) []string {
	w.font("", noteFontSize)
	if w.pdf.Err() {
		return []string{text}
	}
	if w.utf8 {
		return w.pdf.SplitText(text, width)
	}
	var lines []string
	for _, l := range w.pdf.SplitLines([]byte(w.tr(text)), width) {
		lines = append(lines, string(l))
	}
	return lines
}

func (w *pdfWriter) font(style string, size float64) { w.pdf.SetFont(w.family, style, size) }

func (w *pdfWriter) color(c rgb) { w.pdf.SetTextColor(c.r, c.g, c.b) }

// text draws s with its baseline at y.
func (w *pdfWriter) text(x, y float64, s string) { w.pdf.Text(x, y, w.tr(s)) }

func (w *pdfWriter) textWidth(s string) float64 { return w.pdf.GetStringWidth(w.tr(s)) }

// centered draws s centered between left and left+width.
func (w *pdfWriter) centered(left, width, y float64, s string) {
	w.text(left+(width-w.textWidth(s))/2, y, s)
}

// right draws s right aligned in a column, with a padding of 4.
func (w *pdfWriter) right(colLeft, colWidth, y float64, s string) {
	w.text(colLeft+colWidth-w.textWidth(s)-4, y, s)
}

func (w *pdfWriter) hline(y float64) {
	w.pdf.SetDrawColor(lightGray.r, lightGray.g, lightGray.b)
	w.pdf.Line(leftX, y, rightX, y)
}

func (w *pdfWriter) vline(x, top, bottom float64) {
	w.pdf.SetDrawColor(lightGray.r, lightGray.g, lightGray.b)
	w.pdf.Line(x, top, x, bottom)
}

// Render writes the statement as a PDF document.
func Render(out io.Writer, s *Statement, opts Options) error {
	w := newPDFWriter(opts)
	if err := w.pdf.Error(); err != nil {
		return fmt.Errorf("pdf build failed: %w", err)
	}
	l := Paginate(s, w)
	w.pdf.SetCreationDate(s.Generated)
	w.pdf.SetModificationDate(s.Generated)
	w.pdf.SetTitle(s.Title(), true)

	for i := range l.Pages {
		w.page(s, &l.Pages[i])
	}
	if err := w.pdf.Output(out); err != nil {
		return fmt.Errorf("pdf build failed: %w", err)
	}
	return nil
}

func (w *pdfWriter) page(s *Statement, p *Page) {
	w.pdf.AddPage()
	w.header(s)
	if p.No == 1 {
		w.totals(s, p.Totals)
	}
	w.hline(p.TableTop)
	w.columnTitles(p.HeaderY)

	if p.PreviousY >= 0 && s.Previous != nil {
		w.previous(*s.Previous, p.PreviousY)
	}
	for _, r := range p.Rows {
		w.row(r)
	}

	// outer lines span the whole table, inner ones only the transactions.
	for _, x := range []float64{snoColLeft, tableRightEdge} {
		w.vline(x, p.TableTop, p.Bottom)
	}
	for _, x := range []float64{dateColLeft, noteColLeft, receivedColLeft, paidColLeft, balanceColLeft} {
		w.vline(x, p.BodyTop-7, p.Bottom)
	}

	w.font("", smallFontSize)
	w.color(darkGray)
	w.centered(leftX, UsableWidth, PageHeight-Margin+8, "Page "+strconv.Itoa(p.No))
}

func (w *pdfWriter) header(s *Statement) {
	y := Margin
	w.font("B", titleFontSize)
	w.color(black)
	w.centered(leftX, UsableWidth, y+titleFontSize, s.Title())
	y += titleFontSize + 4

	w.font("B", headerFontSize)
	w.centered(leftX, UsableWidth, y+headerFontSize, s.RangeTitle())

	w.font("", noteFontSize)
	w.text(leftX, y+headerFontSize+noteFontSize+4, "Phone: "+s.Phone())

	w.font("", smallFontSize)
	w.color(darkGray)
	stamp := s.GeneratedText()
	w.text(rightX-w.textWidth(stamp), Margin, stamp)

	w.hline(Margin + titleFontSize + 40)
}

func (w *pdfWriter) totals(s *Statement, y float64) {
	amount, label, _ := s.Remaining()
	lines := []struct {
		label, value string
		color        rgb
	}{
		{"Total Received:", s.Totals.Credit.String(), black},
		{"Total Paid:", s.Totals.Debit.String(), black},
		{"Remaining:", amount.String() + "  -  " + label, balanceColor(s.Totals.Net())},
	}
	for _, l := range lines {
		w.font("B", totalsLabelFontSize)
		w.color(black)
		w.text(leftX, y+totalsLabelFontSize, l.label)
		w.font("B", totalsValueFontSize)
		w.color(l.color)
		w.right(rightX-colBalanceWidth-4, colBalanceWidth+4, y+totalsValueFontSize, l.value)
		y += totalsValueFontSize + 8
	}
}

func (w *pdfWriter) columnTitles(y float64) {
	w.font("B", headerFontSize)
	w.color(black)
	base := y + headerFontSize
	w.text(snoColLeft+4, base, "S. No")
	w.text(dateColLeft+4, base, "Date")
	w.text(noteColLeft+4, base, "Note")
	w.text(receivedColLeft+colReceivedWidth-w.textWidth("Received"), base, "Received")
	w.text(paidColLeft+colPaidWidth-w.textWidth("Paid"), base, "Paid")
	w.text(balanceColLeft+colBalanceWidth-w.textWidth("Balance"), base, "Balance")
	w.hline(base + 8)
}

func (w *pdfWriter) previous(amount hisab.Money, y float64) {
	w.font("B", headerFontSize)
	w.color(darkGray)
	w.centered(snoColLeft, paidColLeft+colPaidWidth-snoColLeft, y+headerFontSize, "Previous amount")

	w.font("B", totalsValueFontSize)
	w.color(balanceColor(amount))
	w.right(balanceColLeft, colBalanceWidth, y+noteFontSize, amount.String())
	w.hline(y + rowMinHeight)
}

func (w *pdfWriter) row(r PlacedRow) {
	base := r.Y + noteFontSize
	w.font("", noteFontSize)
	w.color(black)
	w.text(snoColLeft+4, base, strconv.Itoa(r.No))

	for i, line := range r.Lines {
		// lines are already encoded for the font.
		w.pdf.Text(noteColLeft+4, base+float64(i)*noteLineHeight, line)
	}
	if v, ok := r.Received(); ok {
		w.right(receivedColLeft, colReceivedWidth, base, v.String())
	}
	if v, ok := r.Paid(); ok {
		w.right(paidColLeft, colPaidWidth, base, v.String())
	}

	w.font("", smallFontSize)
	w.text(dateColLeft+4, r.Y+smallFontSize, r.Date.Format(DateFormat))

	w.font("B", totalsValueFontSize)
	w.color(balanceColor(r.Balance))
	w.right(balanceColLeft, colBalanceWidth, base, r.Balance.String())

	w.hline(r.Y + r.Height)
}
