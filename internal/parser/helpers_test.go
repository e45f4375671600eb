package parser_test

import (
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"ptoimport/internal/xlsx"
)

const testYear = 2025

var (
	monthStartCols  = [3]int{2, 11, 20}
	monthHeaderRows = [4]int{4, 13, 22, 31}
)

// sheetBuilder assembles a synthetic employee calendar workbook with
// the fixed production layout.
type sheetBuilder struct {
	t     *testing.T
	f     *excelize.File
	sheet string
}

func newSheetBuilder(t *testing.T, sheetName string) *sheetBuilder {
	t.Helper()
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}
	return &sheetBuilder{t: t, f: f, sheet: sheetName}
}

func (b *sheetBuilder) cell(col, row int) string {
	b.t.Helper()
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		b.t.Fatalf("cell name (%d,%d): %v", col, row, err)
	}
	return name
}

func (b *sheetBuilder) set(col, row int, value interface{}) {
	b.t.Helper()
	if err := b.f.SetCellValue(b.sheet, b.cell(col, row), value); err != nil {
		b.t.Fatalf("set cell: %v", err)
	}
}

func (b *sheetBuilder) fill(col, row int, rgb string) {
	b.t.Helper()
	styleID, err := b.f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{rgb}},
	})
	if err != nil {
		b.t.Fatalf("new style: %v", err)
	}
	cell := b.cell(col, row)
	if err := b.f.SetCellStyle(b.sheet, cell, cell, styleID); err != nil {
		b.t.Fatalf("set style: %v", err)
	}
}

func (b *sheetBuilder) note(col, row int, text string) {
	b.t.Helper()
	err := b.f.AddComment(b.sheet, excelize.Comment{
		Cell:      b.cell(col, row),
		Author:    "",
		Paragraph: []excelize.RichTextRun{{Text: text}},
	})
	if err != nil {
		b.t.Fatalf("add comment: %v", err)
	}
}

// header writes the identity block: name B1, hire date B2, year B3.
func (b *sheetBuilder) header(name, hireDate string, year int) {
	if name != "" {
		b.set(2, 1, name)
	}
	if hireDate != "" {
		b.set(2, 2, hireDate)
	}
	if year != 0 {
		b.set(2, 3, year)
	}
}

// legend writes swatch+label rows starting at the legend top row.
func (b *sheetBuilder) legend(entries ...[2]string) {
	for i, e := range entries {
		row := 4 + i
		if e[0] != "" {
			b.fill(28, row, e[0])
		}
		b.set(29, row, e[1])
	}
}

// calc writes one month's PTO Calc used-hours value in column S.
func (b *sheetBuilder) calc(month int, hours float64) {
	b.set(19, 4+month-1, hours)
}

// dayPos returns the spreadsheet position of a day, mirroring the
// calendar walk: weekday picks the column, Saturdays wrap the row.
func dayPos(year int, month time.Month, day, shift int) (col, row int) {
	headerRow := monthHeaderRows[(int(month)-1)/3]
	startCol := monthStartCols[(int(month)-1)%3]

	row = headerRow + 2 + shift
	for d := 1; d <= day; d++ {
		date := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
		col = startCol + int(date.Weekday())
		if d < day && date.Weekday() == time.Saturday {
			row++
		}
	}
	return col, row
}

// months writes the day numbers for all 12 month blocks. shifts moves a
// whole month block down (or up) by the given row count.
func (b *sheetBuilder) months(year int, shifts map[time.Month]int) {
	for m := time.January; m <= time.December; m++ {
		days := time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
		for d := 1; d <= days; d++ {
			col, row := dayPos(year, m, d, shifts[m])
			b.set(col, row, d)
		}
	}
}

// colorDay fills the cell of a calendar day.
func (b *sheetBuilder) colorDay(year int, month time.Month, day int, rgb string) {
	col, row := dayPos(year, month, day, 0)
	b.fill(col, row, rgb)
}

// noteDay attaches a note to the cell of a calendar day.
func (b *sheetBuilder) noteDay(year int, month time.Month, day int, text string) {
	col, row := dayPos(year, month, day, 0)
	b.note(col, row, text)
}

// addSheet starts a second sheet on the same workbook file.
func (b *sheetBuilder) addSheet(name string) *sheetBuilder {
	b.t.Helper()
	if _, err := b.f.NewSheet(name); err != nil {
		b.t.Fatalf("new sheet: %v", err)
	}
	return &sheetBuilder{t: b.t, f: b.f, sheet: name}
}

// open serializes the workbook and reopens it through the import-side
// reader, returning both the workbook and the built sheet.
func (b *sheetBuilder) open() (*xlsx.Workbook, *xlsx.Sheet) {
	b.t.Helper()
	buf, err := b.f.WriteToBuffer()
	if err != nil {
		b.t.Fatalf("serialize workbook: %v", err)
	}
	wb, err := xlsx.OpenBytes(buf.Bytes())
	if err != nil {
		b.t.Fatalf("reopen workbook: %v", err)
	}
	b.t.Cleanup(func() { wb.Close() })

	sheet, err := wb.Sheet(b.sheet)
	if err != nil {
		b.t.Fatalf("open sheet: %v", err)
	}
	return wb, sheet
}

// standardSheet builds a complete, internally consistent sheet: header,
// PTO/Sick legend, all 12 month grids, zeroed PTO Calc column.
func standardSheet(t *testing.T) *sheetBuilder {
	t.Helper()
	b := newSheetBuilder(t, "Alice Smith")
	b.header("Alice Smith", "1/15/2015", testYear)
	b.legend([2]string{"FFFF00", "PTO"}, [2]string{"00B050", "Sick"})
	b.months(testYear, nil)
	return b
}
