package parser

import (
	"fmt"
	"strconv"
	"time"

	"ptoimport/internal/model"
	"ptoimport/internal/reconcile"
	"ptoimport/internal/xlsx"
)

// ParseCalendarGrid walks the fixed 12-month grid cell by cell and
// classifies every day into one of four observation streams: legend
// matched entries, noted-but-unmatched cells, worked cells, and
// colored-but-unmatched cells. It never fails a sheet; a month whose
// day-1 cell cannot be located is skipped with a warning.
func ParseCalendarGrid(sheet *xlsx.Sheet, year int, legend Legend, theme ThemeColorMap, partialColors map[string]struct{}) model.CalendarParseResult {
	result := model.CalendarParseResult{
		Entries:               []model.ImportedPtoEntry{},
		UnmatchedNotedCells:   []model.NotedCell{},
		WorkedCells:           []model.NotedCell{},
		UnmatchedColoredCells: []model.ColoredCell{},
		Warnings:              []string{},
		Resolved:              []string{},
	}

	for month := 1; month <= 12; month++ {
		parseMonth(sheet, year, time.Month(month), legend, theme, partialColors, &result)
	}

	return result
}

func parseMonth(sheet *xlsx.Sheet, year int, month time.Month, legend Legend, theme ThemeColorMap, partialColors map[string]struct{}, result *model.CalendarParseResult) {
	headerRow := rowGroupStarts[(int(month)-1)/3]
	startCol := colStarts[(int(month)-1)%3]

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	day1Col := startCol + int(first.Weekday())
	expectedRow := headerRow + 2

	day1Row, ok := verifyDay1(sheet, month, day1Col, expectedRow, result)
	if !ok {
		return
	}

	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	row := day1Row
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		col := startCol + int(date.Weekday())

		classifyDay(sheet, col, row, date, legend, theme, partialColors, result)

		if date.Weekday() == time.Saturday {
			row++
		}
	}
}

// verifyDay1 confirms day 1 sits at its computed position, or recovers
// the real row within day1ScanRange of it. Success after a shift is a
// resolved anomaly; failure skips the month rather than the sheet.
func verifyDay1(sheet *xlsx.Sheet, month time.Month, col, expectedRow int, result *model.CalendarParseResult) (int, bool) {
	if cellIsDayOne(sheet, col, expectedRow) {
		return expectedRow, true
	}

	result.Warnings = append(result.Warnings,
		fmt.Sprintf("%s: day 1 not at expected row %d", month, expectedRow))

	for offset := 1; offset <= day1ScanRange; offset++ {
		for _, dir := range [2]int{-1, 1} {
			row := expectedRow + dir*offset
			if row < 1 || !cellIsDayOne(sheet, col, row) {
				continue
			}
			where := "below"
			if dir < 0 {
				where = "above"
			}
			result.Resolved = append(result.Resolved,
				fmt.Sprintf("%s: day 1 found %d row(s) %s expected position; month rows shifted accordingly", month, offset, where))
			return row, true
		}
	}

	result.Warnings = append(result.Warnings,
		fmt.Sprintf("%s: day 1 not found within %d rows of expected position; skipping month", month, day1ScanRange))
	return 0, false
}

func cellIsDayOne(sheet *xlsx.Sheet, col, row int) bool {
	v, err := strconv.ParseFloat(sheet.Value(col, row), 64)
	return err == nil && v == 1
}

// classifyDay applies the per-day decision ladder: resolve the fill,
// match the legend (exact then nearest), then fall through the note and
// weekend heuristics.
func classifyDay(sheet *xlsx.Sheet, col, row int, date time.Time, legend Legend, theme ThemeColorMap, partialColors map[string]struct{}, result *model.CalendarParseResult) {
	dateStr := date.Format("2006-01-02")
	note := sheet.Note(col, row)

	argb, matched := resolveDayFill(sheet, col, row, theme, legend, result, dateStr)

	if matched.found {
		entry := model.ImportedPtoEntry{
			Date:        dateStr,
			Type:        matched.ptoType,
			Hours:       fullDayHours,
			ApproxColor: !matched.exact,
		}
		if _, ok := partialColors[matched.color]; ok {
			entry.IsPartialPtoColor = true
		}
		if !matched.exact {
			entry.Notes = appendProvenance(entry.Notes,
				fmt.Sprintf("approximate color match %s -> %s", argb, matched.color))
		}
		if note != "" {
			if hours, strict, ok := reconcile.ParseNoteHours(note); ok {
				entry.Hours = hours
				entry.IsNoteDerived = strict
			}
			entry.Notes = appendProvenance(entry.Notes, reconcile.CollapseNote(note))
		}
		result.Entries = append(result.Entries, entry)
		return
	}

	colored := argb != "" && !isNeutralFill(argb)

	if note != "" {
		if reconcile.IsWorkedNote(note) {
			result.WorkedCells = append(result.WorkedCells, model.NotedCell{Date: dateStr, Note: reconcile.CollapseNote(note)})
		} else {
			result.UnmatchedNotedCells = append(result.UnmatchedNotedCells, model.NotedCell{Date: dateStr, Note: reconcile.CollapseNote(note)})
			if colored {
				result.UnmatchedColoredCells = append(result.UnmatchedColoredCells,
					model.ColoredCell{Date: dateStr, Color: argb, Note: reconcile.CollapseNote(note)})
			}
		}
		return
	}

	if !colored {
		return
	}

	if isWeekend(date) {
		result.WorkedCells = append(result.WorkedCells,
			model.NotedCell{Date: dateStr, Note: "(inferred weekend work: colored, no note)"})
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%s: weekend cell colored %s with no note; possible unscheduled work", dateStr, argb))
		return
	}

	result.UnmatchedColoredCells = append(result.UnmatchedColoredCells,
		model.ColoredCell{Date: dateStr, Color: argb})
}

type legendMatch struct {
	found   bool
	exact   bool
	ptoType model.PTOType
	color   string
}

// resolveDayFill resolves the cell fill to an ARGB and matches it
// against the legend. Foreground is preferred; background is the
// fallback. Exact matches beat nearest-color matches on either channel.
func resolveDayFill(sheet *xlsx.Sheet, col, row int, theme ThemeColorMap, legend Legend, result *model.CalendarParseResult, dateStr string) (string, legendMatch) {
	fg, bg := sheet.Fill(col, row)

	fgARGB, fgOK := ResolveColorToARGB(fg, theme)
	bgARGB, bgOK := ResolveColorToARGB(bg, theme)

	if fgOK {
		if t, ok := legend[fgARGB]; ok {
			return fgARGB, legendMatch{found: true, exact: true, ptoType: t, color: fgARGB}
		}
	}
	if bgOK {
		if t, ok := legend[bgARGB]; ok {
			return bgARGB, legendMatch{found: true, exact: true, ptoType: t, color: bgARGB}
		}
	}

	if fgOK && !isNeutralFill(fgARGB) {
		if t, color, ok := nearestColor(fgARGB, legend); ok {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s: approximate color match %s -> %s (%s)", dateStr, fgARGB, color, t))
			return fgARGB, legendMatch{found: true, ptoType: t, color: color}
		}
	}
	if bgOK && !isNeutralFill(bgARGB) {
		if t, color, ok := nearestColor(bgARGB, legend); ok {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s: approximate color match %s -> %s (%s)", dateStr, bgARGB, color, t))
			return bgARGB, legendMatch{found: true, ptoType: t, color: color}
		}
	}

	if fgOK {
		return fgARGB, legendMatch{}
	}
	if bgOK {
		return bgARGB, legendMatch{}
	}
	return "", legendMatch{}
}

func appendProvenance(existing, addition string) string {
	if existing == "" {
		return addition
	}
	return existing + "; " + addition
}

func isWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
