package reconcile

import (
	"fmt"
	"sort"
	"time"

	"ptoimport/internal/model"
)

// adjustPartialDays trims months where full-day defaults overshoot the
// PTO Calc total. The overshoot is taken off the last PTO-family day(s)
// of the month, the usual hand-editing pattern being a final half day
// colored like a full one. Entries whose hours came from a strict note
// are never touched, and a day is never trimmed to zero here; months
// that stay over-colored fall through to detectOverColoring.
func adjustPartialDays(s State) State {
	entries := cloneEntries(s.Entries)

	for month := 1; month <= 12; month++ {
		calcTotal := s.calcFor(month)
		overshoot := s.ptoFamilySum(month) - calcTotal
		if overshoot <= hoursEpsilon || calcTotal <= 0 {
			continue
		}

		idxs := monthEntryIndexes(entries, month)
		for i := len(idxs) - 1; i >= 0 && overshoot > hoursEpsilon; i-- {
			e := &entries[idxs[i]]
			if e.IsNoteDerived || !e.Type.IsPTOFamily() {
				continue
			}
			if e.Hours <= overshoot+hoursEpsilon {
				// Trimming this day to nothing would amount to deleting it;
				// leave the month for the over-coloring diagnostic instead.
				break
			}
			newHours := e.Hours - overshoot
			s = s.resolve(fmt.Sprintf("%s: reduced %s from %.4g h to %.4g h to match the month's PTO calc total of %.4g h",
				e.Date, e.Type, e.Hours, newHours, calcTotal))
			e.Hours = newHours
			overshoot = 0
			s.Entries = entries
		}
	}

	return s
}

// reconcilePartialPto tries to place noted-but-uncolored cells against
// the remaining gap between the calendar and the PTO Calc totals. A
// note with an hour mention becomes a partial PTO entry when the math
// closes; otherwise the cell stays behind as a warning.
func reconcilePartialPto(s State) State {
	if len(s.UnmatchedNoted) == 0 {
		return s
	}

	remaining := make([]model.NotedCell, 0, len(s.UnmatchedNoted))
	cells := append([]model.NotedCell{}, s.UnmatchedNoted...)
	sort.Slice(cells, func(i, j int) bool { return cells[i].Date < cells[j].Date })

	for _, cell := range cells {
		hours, _, ok := ParseNoteHours(cell.Note)
		if !ok {
			remaining = append(remaining, cell)
			s = s.warn(fmt.Sprintf("%s: cell note %q has no recognized color and no usable hour figure", cell.Date, cell.Note))
			continue
		}

		month := monthOf(cell.Date)
		if gap := s.calcGap(month); gap+hoursEpsilon >= hours {
			entry := model.ImportedPtoEntry{
				Date:          cell.Date,
				Type:          model.TypePTO,
				Hours:         hours,
				IsNoteDerived: true,
				Notes:         fmt.Sprintf("partial PTO from note %q", cell.Note),
			}
			s.Entries = append(cloneEntries(s.Entries), entry)
			s = s.resolve(fmt.Sprintf("%s: note %q converted to a %.4g h partial PTO entry (PTO calc gap absorbed it)", cell.Date, cell.Note, hours))
		} else {
			remaining = append(remaining, cell)
			s = s.warn(fmt.Sprintf("%s: note %q mentions %.4g h but %s's PTO calc total cannot absorb it", cell.Date, cell.Note, hours, time.Month(month)))
		}
	}

	s.UnmatchedNoted = remaining
	return s
}

// monthEntryIndexes returns the indexes of a month's entries in date
// order.
func monthEntryIndexes(entries []model.ImportedPtoEntry, month int) []int {
	idxs := make([]int, 0, 8)
	for i, e := range entries {
		if monthOf(e.Date) == month {
			idxs = append(idxs, i)
		}
	}
	sort.Slice(idxs, func(a, b int) bool { return entries[idxs[a]].Date < entries[idxs[b]].Date })
	return idxs
}
