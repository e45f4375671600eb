package reconcile

import (
	"fmt"
	"time"

	"ptoimport/internal/model"
)

// reclassifySickByColumnS cross-checks Sick entries against the PTO
// Calc totals. Column S only tracks PTO-family hours, so a month whose
// remaining gap exactly equals its Sick hours is a month whose "Sick"
// cells were miscolored PTO: the totals reconcile under no other type
// assignment.
func reclassifySickByColumnS(s State) State {
	return reclassifyByColumnS(s, model.TypeSick)
}

// reclassifyBereavementByColumnS applies the same cross-check to
// Bereavement entries.
func reclassifyBereavementByColumnS(s State) State {
	return reclassifyByColumnS(s, model.TypeBereavement)
}

func reclassifyByColumnS(s State, from model.PTOType) State {
	for month := 1; month <= 12; month++ {
		gap := s.calcGap(month)
		if gap <= hoursEpsilon {
			continue
		}

		idxs := make([]int, 0, 4)
		candidateSum := 0.0
		for i, e := range s.Entries {
			if e.Type == from && !e.TypeFromNote && monthOf(e.Date) == month {
				idxs = append(idxs, i)
				candidateSum += e.Hours
			}
		}
		if len(idxs) == 0 {
			continue
		}

		// Prefer the single entry that closes the gap by itself; fall
		// back to flipping the whole set when only the set total fits.
		var flip []int
		for _, i := range idxs {
			if nearlyEqual(s.Entries[i].Hours, gap) {
				flip = []int{i}
				break
			}
		}
		if flip == nil && nearlyEqual(candidateSum, gap) {
			flip = idxs
		}
		if flip == nil {
			continue
		}

		entries := cloneEntries(s.Entries)
		for _, i := range flip {
			s = s.resolve(fmt.Sprintf("%s: %s entry reclassified to PTO; %s's totals only reconcile under a PTO reading",
				entries[i].Date, from, time.Month(month)))
			entries[i].Type = model.TypePTO
		}
		s.Entries = entries
	}

	return s
}

// detectOverColoring is a read-only diagnostic: it flags months whose
// calendar-derived hours still exceed the sheet's own total after every
// reconciliation attempt, meaning more cells are colored than the
// spreadsheet's math admits. It contributes warnings only.
func detectOverColoring(s State) State {
	for month := 1; month <= 12; month++ {
		sum := s.ptoFamilySum(month)
		calc := s.calcFor(month)
		if sum > calc+hoursEpsilon {
			s = s.warn(fmt.Sprintf("%s: calendar shows %.4g h of PTO but the sheet's PTO calc admits only %.4g h (over-coloring)",
				time.Month(month), sum, calc))
		}
	}
	return s
}
