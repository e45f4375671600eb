package reconcile

import (
	"regexp"
	"strconv"
	"strings"

	"ptoimport/internal/model"
)

// A strict hours note is nothing but an hour figure ("4", "4h",
// "4.5 hours"). Strict matches are trusted enough to suppress the
// heuristic hour adjustments later in the pipeline; loose mentions
// ("left early, 4 hrs") override the default hours but stay adjustable.
var (
	strictHoursRe = regexp.MustCompile(`(?i)^\s*(\d{1,2}(?:\.\d+)?)\s*(?:h|hr|hrs|hour|hours)?\s*$`)
	looseHoursRe  = regexp.MustCompile(`(?i)(\d{1,2}(?:\.\d+)?)\s*(?:h|hr|hrs|hour|hours)\b`)
	workedRe      = regexp.MustCompile(`(?i)worked`)
)

// ParseNoteHours extracts an hour figure from a cell note. strict is
// true only for hours-only notes.
func ParseNoteHours(note string) (hours float64, strict bool, ok bool) {
	if m := strictHoursRe.FindStringSubmatch(note); m != nil {
		if h, valid := plausibleHours(m[1]); valid {
			return h, true, true
		}
	}
	if m := looseHoursRe.FindStringSubmatch(note); m != nil {
		if h, valid := plausibleHours(m[1]); valid {
			return h, false, true
		}
	}
	return 0, false, false
}

func plausibleHours(s string) (float64, bool) {
	h, err := strconv.ParseFloat(s, 64)
	if err != nil || h <= 0 || h > 24 {
		return 0, false
	}
	return h, true
}

// IsWorkedNote reports whether a note marks the day as worked rather
// than taken off.
func IsWorkedNote(note string) bool {
	return workedRe.MatchString(note)
}

// NoteTypeOverride recognizes an explicit type statement in a note.
// Only strictly-worded notes qualify; a passing mention of "felt sick"
// must not reclassify a day, so the note has to start with the type
// keyword.
func NoteTypeOverride(note string) (model.PTOType, bool) {
	l := strings.ToLower(strings.TrimSpace(note))
	switch {
	case strings.HasPrefix(l, "sick"):
		return model.TypeSick, true
	case strings.HasPrefix(l, "bereavement"):
		return model.TypeBereavement, true
	case strings.HasPrefix(l, "jury"):
		return model.TypeJuryDuty, true
	case strings.HasPrefix(l, "planned pto"):
		return model.TypePlannedPTO, true
	case strings.HasPrefix(l, "pto"), strings.HasPrefix(l, "vacation"):
		return model.TypePTO, true
	default:
		return "", false
	}
}

// CollapseNote flattens a multi-line cell note into one provenance line.
func CollapseNote(note string) string {
	return strings.Join(strings.Fields(note), " ")
}
