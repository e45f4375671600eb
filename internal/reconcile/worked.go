package reconcile

import (
	"fmt"
	"sort"
	"time"

	"ptoimport/internal/model"
)

// inferWeekendPartialHours handles worked cells that fall on a weekend
// and carry an hour figure. When the month's PTO Calc gap can absorb
// the hours, the note is read as additional partial PTO taken around
// the worked weekend rather than an offset, and the date is reserved so
// processWorkedCells leaves it alone.
func inferWeekendPartialHours(s State) State {
	handled := make(map[string]struct{}, len(s.HandledWorkedDates))
	for k := range s.HandledWorkedDates {
		handled[k] = struct{}{}
	}

	cells := append([]model.NotedCell{}, s.Worked...)
	sort.Slice(cells, func(i, j int) bool { return cells[i].Date < cells[j].Date })

	for _, cell := range cells {
		if !isWeekendDate(cell.Date) {
			continue
		}
		hours, _, ok := ParseNoteHours(cell.Note)
		if !ok {
			continue
		}

		month := monthOf(cell.Date)
		if gap := s.calcGap(month); gap+hoursEpsilon >= hours {
			entry := model.ImportedPtoEntry{
				Date:          cell.Date,
				Type:          model.TypePTO,
				Hours:         hours,
				IsNoteDerived: true,
				Notes:         fmt.Sprintf("weekend worked-cell note %q read as partial PTO", cell.Note),
			}
			s.Entries = append(cloneEntries(s.Entries), entry)
			handled[cell.Date] = struct{}{}
			s = s.resolve(fmt.Sprintf("%s: weekend worked-cell note %q produced a %.4g h partial PTO entry", cell.Date, cell.Note, hours))
		} else {
			handled[cell.Date] = struct{}{}
			s = s.warn(fmt.Sprintf("%s: weekend worked-cell note %q mentions %.4g h but %s's PTO calc total cannot absorb it", cell.Date, cell.Note, hours, time.Month(month)))
		}
	}

	s.HandledWorkedDates = handled
	return s
}

// processWorkedCells settles every remaining worked observation. A
// worked note on a date that also produced a time-off entry wins over
// the color: the entry is removed unless its type came from an explicit
// note. Worked days with no competing entry are informational only.
func processWorkedCells(s State) State {
	handled := make(map[string]struct{}, len(s.HandledWorkedDates))
	for k := range s.HandledWorkedDates {
		handled[k] = struct{}{}
	}

	cells := append([]model.NotedCell{}, s.Worked...)
	sort.Slice(cells, func(i, j int) bool { return cells[i].Date < cells[j].Date })

	for _, cell := range cells {
		if _, done := handled[cell.Date]; done {
			continue
		}
		handled[cell.Date] = struct{}{}

		removed := false
		entries := make([]model.ImportedPtoEntry, 0, len(s.Entries))
		for _, e := range s.Entries {
			if e.Date == cell.Date && !e.TypeFromNote {
				s = s.resolve(fmt.Sprintf("%s: worked per note %q; removing the %s entry the fill suggested", cell.Date, cell.Note, e.Type))
				removed = true
				continue
			}
			entries = append(entries, e)
		}

		if removed {
			s.Entries = entries
		} else {
			s = s.resolve(fmt.Sprintf("%s: worked day noted (%q); no time off recorded", cell.Date, cell.Note))
		}
	}

	s.HandledWorkedDates = handled
	return s
}

func isWeekendDate(date string) bool {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return false
	}
	return t.Weekday() == time.Saturday || t.Weekday() == time.Sunday
}
