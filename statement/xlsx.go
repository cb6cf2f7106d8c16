package statement

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// XLSXMIME is the media type of spreadsheet statements.
const XLSXMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// SheetName is the name of the only sheet of a spreadsheet statement.
const SheetName = "Statement"

var xlsxHeaders = []string{"S. No", "Date", "Note", "Received", "Paid", "Balance"}

// WriteXLSX writes the statement as a spreadsheet: a header row, then one
// row per transaction with amounts as numbers.
func WriteXLSX(w io.Writer, s *Statement) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	if err := f.SetDocProps(&excelize.DocProperties{
		Title:   s.Title(),
		Subject: s.RangeTitle(),
		Created: s.Generated.UTC().Format("2006-01-02T15:04:05Z"),
	}); err != nil {
		return fmt.Errorf("set properties: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	amount, err := f.NewStyle(&excelize.Style{NumFmt: 2}) // 0.00
	if err != nil {
		return err
	}

	if err := f.SetSheetRow(SheetName, "A1", &xlsxHeaders); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, "A1", "F1", bold); err != nil {
		return err
	}

	for i, r := range s.Rows {
		row := i + 2
		cell := func(col int) string {
			name, _ := excelize.CoordinatesToCellName(col, row)
			return name
		}
		values := []any{r.No, r.Date.Format(DateFormat), r.Note}
		if err := f.SetSheetRow(SheetName, cell(1), &values); err != nil {
			return err
		}
		if v, ok := r.Received(); ok {
			if err := f.SetCellFloat(SheetName, cell(4), v.AsFloat(), 2, 64); err != nil {
				return err
			}
		}
		if v, ok := r.Paid(); ok {
			if err := f.SetCellFloat(SheetName, cell(5), v.AsFloat(), 2, 64); err != nil {
				return err
			}
		}
		if err := f.SetCellFloat(SheetName, cell(6), r.Balance.AsFloat(), 2, 64); err != nil {
			return err
		}
		if err := f.SetCellStyle(SheetName, cell(4), cell(6), amount); err != nil {
			return err
		}
	}

	for col, width := range map[string]float64{"A": 8, "B": 14, "C": 40, "D": 14, "E": 14, "F": 16} {
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			return err
		}
	}
	if err := f.SetPanes(SheetName, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx build failed: %w", err)
	}
	return nil
}
