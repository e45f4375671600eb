package reconcile

import (
	"math"
	"time"

	"ptoimport/internal/model"
)

// hoursEpsilon absorbs float drift when comparing hour totals.
const hoursEpsilon = 0.01

// fullDayHours mirrors the calendar parser's default day length.
const fullDayHours = 8.0

// State is the value threaded through the pipeline. Passes treat it as
// immutable: each returns a new State, copying any slice it changes and
// carrying warnings/resolved forward append-only.
type State struct {
	SheetName string
	Year      int

	Entries          []model.ImportedPtoEntry
	UnmatchedNoted   []model.NotedCell
	Worked           []model.NotedCell
	UnmatchedColored []model.ColoredCell

	// HandledWorkedDates lets the weekend-inference pass reserve worked
	// cells so processWorkedCells does not touch them again.
	HandledWorkedDates map[string]struct{}

	Calc []model.PtoCalcRow

	Warnings []string
	Resolved []string
}

// NewState seeds the pipeline from the calendar parser's raw output and
// the PTO Calc oracle.
func NewState(sheetName string, year int, cal model.CalendarParseResult, calc []model.PtoCalcRow) State {
	return State{
		SheetName:          sheetName,
		Year:               year,
		Entries:            cal.Entries,
		UnmatchedNoted:     cal.UnmatchedNotedCells,
		Worked:             cal.WorkedCells,
		UnmatchedColored:   cal.UnmatchedColoredCells,
		HandledWorkedDates: map[string]struct{}{},
		Calc:               calc,
		Warnings:           cal.Warnings,
		Resolved:           cal.Resolved,
	}
}

func (s State) warn(msg string) State {
	s.Warnings = append(append([]string{}, s.Warnings...), msg)
	return s
}

func (s State) resolve(msg string) State {
	s.Resolved = append(append([]string{}, s.Resolved...), msg)
	return s
}

func cloneEntries(entries []model.ImportedPtoEntry) []model.ImportedPtoEntry {
	out := make([]model.ImportedPtoEntry, len(entries))
	copy(out, entries)
	return out
}

// monthOf returns the 1-based month of a YYYY-MM-DD date, or 0.
func monthOf(date string) int {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0
	}
	return int(t.Month())
}

// calcFor returns the oracle's used-hours total for a month.
func (s State) calcFor(month int) float64 {
	for _, row := range s.Calc {
		if row.Month == month {
			return row.UsedHours
		}
	}
	return 0
}

// ptoFamilySum totals the hours of PTO-family entries in a month.
func (s State) ptoFamilySum(month int) float64 {
	sum := 0.0
	for _, e := range s.Entries {
		if e.Type.IsPTOFamily() && monthOf(e.Date) == month {
			sum += e.Hours
		}
	}
	return sum
}

// calcGap returns how many oracle hours the calendar has not yet
// accounted for in a month. Negative means over-colored.
func (s State) calcGap(month int) float64 {
	return s.calcFor(month) - s.ptoFamilySum(month)
}

func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) < hoursEpsilon
}
