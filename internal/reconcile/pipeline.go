// Package reconcile cross-validates calendar-derived observations
// against the sheet's own "PTO Calc" totals through an ordered sequence
// of independent, pure passes. Order is significant: note-driven
// classifications are settled before any heuristic runs, so no pass can
// silently revert what a human wrote on a cell.
package reconcile

import "sort"

// Step is one named reconciliation pass. Apply must not mutate its
// input; it returns a new State.
type Step struct {
	Name  string
	Apply func(State) State
}

// Pipeline returns the passes in their required order.
func Pipeline() []Step {
	return []Step{
		{Name: "overrideTypeFromNote", Apply: overrideTypeFromNote},
		{Name: "reclassifySickAsPto", Apply: reclassifySickAsPto},
		{Name: "adjustPartialDays", Apply: adjustPartialDays},
		{Name: "reconcilePartialPto", Apply: reconcilePartialPto},
		{Name: "inferWeekendPartialHours", Apply: inferWeekendPartialHours},
		{Name: "processWorkedCells", Apply: processWorkedCells},
		{Name: "reconcileUnmatchedColoredCells", Apply: reconcileUnmatchedColoredCells},
		{Name: "reclassifySickByColumnS", Apply: reclassifySickByColumnS},
		{Name: "reclassifyBereavementByColumnS", Apply: reclassifyBereavementByColumnS},
		{Name: "detectOverColoring", Apply: detectOverColoring},
	}
}

// Run threads a State through the full pipeline and returns the final
// state with entries in date order.
func Run(s State) State {
	for _, step := range Pipeline() {
		s = step.Apply(s)
	}

	entries := cloneEntries(s.Entries)
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date < entries[j].Date
		}
		return entries[i].Type < entries[j].Type
	})
	s.Entries = entries

	return s
}
