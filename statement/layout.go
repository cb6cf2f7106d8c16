package statement

import "math"

// Page geometry, in points.
const (
	PageWidth   = 595.0
	PageHeight  = 842.0
	Margin      = 36.0
	UsableWidth = PageWidth - 2*Margin

	headerBlockHeight = 70.0
	rowMinHeight      = 24.0
	noteLineHeight    = noteFontSize + 6

	// a row that would end below this line moves to the next page.
	bodyLimit = PageHeight - Margin - 30
)

// Font sizes, in points.
const (
	titleFontSize       = 22.0
	headerFontSize      = 12.0
	noteFontSize        = 11.0
	smallFontSize       = 9.0
	totalsLabelFontSize = 12.0
	totalsValueFontSize = 14.0
)

// Column widths and positions.
const (
	colSnoWidth      = 36.0
	colDateWidth     = 120.0
	colReceivedWidth = 80.0
	colPaidWidth     = 80.0
	colBalanceWidth  = 100.0
	colGap           = 8.0
	colNoteWidth     = UsableWidth - (colSnoWidth + colDateWidth + colReceivedWidth + colPaidWidth + colBalanceWidth) - colGap*4

	leftX  = Margin
	rightX = PageWidth - Margin + 7

	snoColLeft      = leftX
	dateColLeft     = snoColLeft + colSnoWidth + colGap
	noteColLeft     = dateColLeft + colDateWidth + colGap
	receivedColLeft = noteColLeft + colNoteWidth + colGap
	paidColLeft     = receivedColLeft + colReceivedWidth + colGap
	balanceColLeft  = paidColLeft + colPaidWidth + colGap
	tableRightEdge  = balanceColLeft + colBalanceWidth
)

// Measurer measures note text in the note font.
type Measurer interface {
	// Width returns the width of text.
	Width(text string) float64
	// Split wraps text into lines no wider than width, ready to draw.
	Split(text string, width float64) []string
}

// Layout is a paginated statement.
type Layout struct {
	Pages []Page
}

// Page is one page of a layout. Y values are top-down offsets in points.
type Page struct {
	No int

	// Totals is set on the first page only: the y where the totals block starts.
	Totals float64
	// TableTop is the divider above the column titles.
	TableTop float64
	// HeaderY is the top of the column titles.
	HeaderY float64
	// BodyTop is where inner column lines start, below the previous row if any.
	BodyTop float64
	// Bottom is where column lines end.
	Bottom float64

	// PreviousY is the top of the "Previous amount" row, or -1.
	PreviousY float64
	Rows      []PlacedRow
}

// PlacedRow is a row positioned on its page.
type PlacedRow struct {
	Row
	Y, Height float64
	Lines     []string // wrapped note
}

// RowHeight returns the height of a row whose note wraps into lines lines.
func RowHeight(lines int) float64 {
	return rowMinHeight + float64(max(lines, 1)-1)*noteLineHeight
}

// noteLines returns the wrapped note and how many lines the row must reserve.
func noteLines(note string, m Measurer) ([]string, int) {
	if note == "" {
		return nil, 1
	}
	wrapped := m.Split(note, colNoteWidth)
	approx := int(math.Ceil(m.Width(note) / colNoteWidth))
	return wrapped, max(approx, len(wrapped), 1)
}

// Paginate lays the statement out on pages. It only depends on text
// measurement, so it can be checked without producing a PDF.
func Paginate(s *Statement, m Measurer) *Layout {
	p := &paginator{l: &Layout{}}
	p.newPage()

	// first page: totals block, then the full table header.
	p.page.Totals = p.y + 6
	p.y = p.page.Totals + 2*(totalsValueFontSize+8) + totalsLabelFontSize + totalsValueFontSize + 14
	p.tableHeader(10)

	if s.Previous != nil {
		p.ensure(rowMinHeight)
		p.page.PreviousY = p.y
		p.y += rowMinHeight + 8
		p.page.BodyTop = p.y
	}

	for _, r := range s.Rows {
		lines, n := noteLines(r.Note, m)
		need := RowHeight(n)
		p.ensure(need)
		p.page.Rows = append(p.page.Rows, PlacedRow{Row: r, Y: p.y, Height: need, Lines: lines})
		p.y += need + 8
	}
	p.closePage()
	return p.l
}

type paginator struct {
	l    *Layout
	page *Page
	y    float64
}

func (p *paginator) newPage() {
	p.l.Pages = append(p.l.Pages, Page{No: len(p.l.Pages) + 1, PreviousY: -1})
	p.page = &p.l.Pages[len(p.l.Pages)-1]
	p.y = Margin + headerBlockHeight
}

func (p *paginator) closePage() {
	p.page.Bottom = max(p.y-8, p.page.BodyTop+10)
}

// tableHeader places the divider, the column titles and the divider below
// them, gap being the space above the titles.
func (p *paginator) tableHeader(gap float64) {
	p.page.TableTop = p.y
	p.y += gap
	p.page.HeaderY = p.y
	p.y += headerFontSize + 8
	p.y += 8
	p.page.BodyTop = p.y
}

// ensure moves to a new page, with a compact table header, unless need
// points still fit on the current one.
func (p *paginator) ensure(need float64) {
	if p.y+need <= bodyLimit {
		return
	}
	p.closePage()
	p.newPage()
	p.tableHeader(12)
}
