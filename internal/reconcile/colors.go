package reconcile

import (
	"fmt"
	"sort"
	"time"

	"ptoimport/internal/model"
)

// reconcileUnmatchedColoredCells is the last chance for cells whose
// fill never matched the legend. The only remaining signal is the PTO
// Calc gap: a full-day gap admits a full day, a smaller positive gap
// admits that many hours, and no gap leaves the cell as a permanent
// warning. This pass is the primary source of irreducible warnings.
func reconcileUnmatchedColoredCells(s State) State {
	if len(s.UnmatchedColored) == 0 {
		return s
	}

	cells := append([]model.ColoredCell{}, s.UnmatchedColored...)
	sort.Slice(cells, func(i, j int) bool { return cells[i].Date < cells[j].Date })

	for _, cell := range cells {
		if hasEntryOn(s.Entries, cell.Date) {
			// An earlier pass (typically the partial-PTO note
			// reconciliation) already settled this date.
			continue
		}

		month := monthOf(cell.Date)
		gap := s.calcGap(month)

		var hours float64
		switch {
		case gap+hoursEpsilon >= fullDayHours:
			hours = fullDayHours
		case gap > hoursEpsilon:
			hours = gap
		default:
			s = s.warn(fmt.Sprintf("%s: cell colored %s matches no legend color and %s's PTO calc total cannot absorb it", cell.Date, cell.Color, time.Month(month)))
			continue
		}

		entry := model.ImportedPtoEntry{
			Date:  cell.Date,
			Type:  model.TypePTO,
			Hours: hours,
			Notes: fmt.Sprintf("unmatched fill %s assigned %.4g h from the PTO calc gap", cell.Color, hours),
		}
		if cell.Note != "" {
			entry.Notes += "; " + cell.Note
		}
		s.Entries = append(cloneEntries(s.Entries), entry)
		s = s.resolve(fmt.Sprintf("%s: unmatched fill %s reconciled as %.4g h PTO via the PTO calc gap", cell.Date, cell.Color, hours))
	}

	s.UnmatchedColored = nil
	return s
}

func hasEntryOn(entries []model.ImportedPtoEntry, date string) bool {
	for _, e := range entries {
		if e.Date == date {
			return true
		}
	}
	return false
}
