// Package xlsx wraps excelize as a read-only cell/fill/note accessor.
// The import pipeline never decodes the container format itself; it sees
// values, pattern-fill color references, cell notes and the raw theme XML.
package xlsx

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Workbook is an open spreadsheet plus the style/theme parts excelize
// does not expose through its public API.
type Workbook struct {
	f        *excelize.File
	styles   *styleIndex
	themeXML string
}

// OpenFile opens a workbook from disk.
func OpenFile(path string) (*Workbook, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read workbook: %w", err)
	}
	return OpenBytes(raw)
}

// OpenReader opens a workbook from a stream (e.g. an HTTP upload).
func OpenReader(r io.Reader) (*Workbook, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read workbook: %w", err)
	}
	return OpenBytes(raw)
}

// OpenBytes opens a workbook held fully in memory.
func OpenBytes(raw []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}

	styles, themeXML := readContainerParts(raw)

	return &Workbook{
		f:        f,
		styles:   styles,
		themeXML: themeXML,
	}, nil
}

// SheetNames lists the worksheets in workbook order.
func (w *Workbook) SheetNames() []string {
	return w.f.GetSheetList()
}

// ThemeXML returns the raw theme part contents, or "" when the workbook
// carries none.
func (w *Workbook) ThemeXML() string {
	return w.themeXML
}

// Close releases the underlying excelize handle.
func (w *Workbook) Close() error {
	return w.f.Close()
}

// Sheet opens one worksheet for cell access. Comments are prefetched so
// note lookups during the grid walk stay O(1).
func (w *Workbook) Sheet(name string) (*Sheet, error) {
	idx, err := w.f.GetSheetIndex(name)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", name, err)
	}
	if idx < 0 {
		return nil, fmt.Errorf("sheet %q not found", name)
	}

	notes := make(map[string]string)
	comments, err := w.f.GetComments(name)
	if err == nil {
		for _, c := range comments {
			notes[c.Cell] = commentText(c)
		}
	}

	return &Sheet{wb: w, name: name, notes: notes}, nil
}

func commentText(c excelize.Comment) string {
	if strings.TrimSpace(c.Text) != "" {
		return strings.TrimSpace(c.Text)
	}
	var sb strings.Builder
	for _, run := range c.Paragraph {
		sb.WriteString(run.Text)
	}
	return strings.TrimSpace(sb.String())
}

// Sheet is a read-only view of one worksheet.
type Sheet struct {
	wb    *Workbook
	name  string
	notes map[string]string
}

// Name returns the worksheet name.
func (s *Sheet) Name() string {
	return s.name
}

// Value returns the trimmed display value at (col, row), 1-based.
// Out-of-range or unreadable cells read as "".
func (s *Sheet) Value(col, row int) string {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return ""
	}
	v, err := s.wb.f.GetCellValue(s.name, cell)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(v)
}

// Note returns the cell note at (col, row), or "".
func (s *Sheet) Note(col, row int) string {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return ""
	}
	return s.notes[cell]
}

// Fill returns the pattern-fill foreground and background color
// references at (col, row). Both are nil for unfilled cells.
func (s *Sheet) Fill(col, row int) (fg, bg *ColorRef) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return nil, nil
	}
	styleID, err := s.wb.f.GetCellStyle(s.name, cell)
	if err != nil {
		return nil, nil
	}
	return s.wb.styles.lookup(styleID)
}
