package reconcile

import (
	"fmt"
	"strings"

	"ptoimport/internal/model"
)

// overrideTypeFromNote lets an explicit, strictly-worded cell note win
// over the color-derived classification. It runs first so no later
// heuristic can silently contradict a note a human wrote on the cell.
// Notes reading "worked" pull the day out of the entry list entirely
// and hand it to the worked-cell passes.
func overrideTypeFromNote(s State) State {
	entries := make([]model.ImportedPtoEntry, 0, len(s.Entries))
	worked := append([]model.NotedCell{}, s.Worked...)
	changed := false

	for _, e := range s.Entries {
		segment := firstNoteSegment(e.Notes)
		if segment == "" {
			entries = append(entries, e)
			continue
		}

		if IsWorkedNote(segment) {
			worked = append(worked, model.NotedCell{Date: e.Date, Note: segment})
			s = s.resolve(fmt.Sprintf("%s: note %q marks the day as worked; dropping %s entry", e.Date, segment, e.Type))
			changed = true
			continue
		}

		if t, ok := NoteTypeOverride(segment); ok && t != e.Type {
			s = s.resolve(fmt.Sprintf("%s: note %q overrides color-derived type %s with %s", e.Date, segment, e.Type, t))
			e.Type = t
			e.TypeFromNote = true
			changed = true
		}
		entries = append(entries, e)
	}

	if changed {
		s.Entries = entries
		s.Worked = worked
	}
	return s
}

// firstNoteSegment returns the first provenance segment of an entry's
// notes that came from the cell itself, skipping machine-added
// narrations like the approximate-match record.
func firstNoteSegment(notes string) string {
	for _, seg := range strings.Split(notes, "; ") {
		seg = strings.TrimSpace(seg)
		if seg == "" || strings.HasPrefix(seg, "approximate color match") {
			continue
		}
		return seg
	}
	return ""
}

// reclassifySickAsPto revisits Sick entries whose color only matched
// the legend approximately. When the month still has an unexplained
// PTO Calc gap that the entry would close, and no exactly-matched Sick
// cell backs the Sick reading, the approximate match is taken to be a
// miscolored PTO day. Both outcomes are narrated.
func reclassifySickAsPto(s State) State {
	exactSickMonths := make(map[int]bool)
	for _, e := range s.Entries {
		if e.Type == model.TypeSick && !e.ApproxColor {
			exactSickMonths[monthOf(e.Date)] = true
		}
	}

	entries := cloneEntries(s.Entries)
	for i, e := range entries {
		if e.Type != model.TypeSick || !e.ApproxColor || e.TypeFromNote {
			continue
		}
		month := monthOf(e.Date)
		if exactSickMonths[month] {
			continue
		}

		if gap := s.calcGap(month); gap+hoursEpsilon >= e.Hours {
			entries[i].Type = model.TypePTO
			s.Entries = entries
			s = s.resolve(fmt.Sprintf("%s: approximate Sick match reclassified to PTO (closes %.4g h of the month's PTO calc gap)", e.Date, e.Hours))
		} else {
			s = s.warn(fmt.Sprintf("%s: Sick classification rests on an approximate color match and could not be cross-checked", e.Date))
		}
	}

	return s
}
