package reconcile_test

import (
	"strings"
	"testing"

	"ptoimport/internal/model"
	"ptoimport/internal/reconcile"
)

func runPipeline(t *testing.T, cal model.CalendarParseResult, calc []model.PtoCalcRow) reconcile.State {
	t.Helper()
	return reconcile.Run(reconcile.NewState("Alice 2025", 2025, cal, calc))
}

func calcRows(months map[int]float64) []model.PtoCalcRow {
	rows := make([]model.PtoCalcRow, 0, 12)
	for m := 1; m <= 12; m++ {
		rows = append(rows, model.PtoCalcRow{Month: m, UsedHours: months[m]})
	}
	return rows
}

func hasMention(list []string, substr string) bool {
	for _, s := range list {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}

func TestNoteOverridesColorDerivedType(t *testing.T) {
	cal := model.CalendarParseResult{
		Entries: []model.ImportedPtoEntry{
			{Date: "2025-03-10", Type: model.TypeSick, Hours: 8, Notes: "PTO, approved by Dan"},
		},
	}
	state := runPipeline(t, cal, calcRows(map[int]float64{3: 8}))

	if len(state.Entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(state.Entries))
	}
	e := state.Entries[0]
	if e.Type != model.TypePTO {
		t.Errorf("Type = %q, want PTO", e.Type)
	}
	if !e.TypeFromNote {
		t.Error("TypeFromNote should be set after a note override")
	}
	if !hasMention(state.Resolved, "overrides") {
		t.Errorf("expected an override narration in resolved, got %v", state.Resolved)
	}
}

func TestWorkedNoteDropsEntry(t *testing.T) {
	cal := model.CalendarParseResult{
		Entries: []model.ImportedPtoEntry{
			{Date: "2025-03-10", Type: model.TypePTO, Hours: 8, Notes: "worked after all"},
		},
	}
	state := runPipeline(t, cal, calcRows(nil))

	if len(state.Entries) != 0 {
		t.Fatalf("worked note should remove the entry, got %v", state.Entries)
	}
	if !hasMention(state.Resolved, "worked") {
		t.Errorf("expected a worked narration in resolved, got %v", state.Resolved)
	}
}

func TestAdjustPartialDaysTrimsLastDay(t *testing.T) {
	cal := model.CalendarParseResult{
		Entries: []model.ImportedPtoEntry{
			{Date: "2025-03-03", Type: model.TypePTO, Hours: 8},
			{Date: "2025-03-04", Type: model.TypePTO, Hours: 8},
		},
	}
	state := runPipeline(t, cal, calcRows(map[int]float64{3: 12}))

	if len(state.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(state.Entries))
	}
	if state.Entries[0].Hours != 8 {
		t.Errorf("first day trimmed to %v, want 8", state.Entries[0].Hours)
	}
	if state.Entries[1].Hours != 4 {
		t.Errorf("last day = %v h, want 4", state.Entries[1].Hours)
	}
	if len(state.Warnings) != 0 {
		t.Errorf("month reconciles; unexpected warnings %v", state.Warnings)
	}
}

func TestAdjustPartialDaysSkipsNoteDerivedHours(t *testing.T) {
	cal := model.CalendarParseResult{
		Entries: []model.ImportedPtoEntry{
			{Date: "2025-03-03", Type: model.TypePTO, Hours: 8},
			{Date: "2025-03-04", Type: model.TypePTO, Hours: 4, IsNoteDerived: true},
		},
	}
	state := runPipeline(t, cal, calcRows(map[int]float64{3: 10}))

	if state.Entries[1].Hours != 4 {
		t.Errorf("note-derived hours changed to %v; must stay 4", state.Entries[1].Hours)
	}
	if state.Entries[0].Hours != 6 {
		t.Errorf("adjustable day = %v h, want 6", state.Entries[0].Hours)
	}
}

func TestReconcilePartialPtoFromNote(t *testing.T) {
	cal := model.CalendarParseResult{
		UnmatchedNotedCells: []model.NotedCell{
			{Date: "2025-05-12", Note: "4 hrs"},
		},
	}
	state := runPipeline(t, cal, calcRows(map[int]float64{5: 4}))

	if len(state.Entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(state.Entries))
	}
	e := state.Entries[0]
	if e.Type != model.TypePTO || e.Hours != 4 || !e.IsNoteDerived {
		t.Errorf("entry = %+v, want 4 h note-derived PTO", e)
	}
}

func TestReconcilePartialPtoLeavesUnusableNotes(t *testing.T) {
	cal := model.CalendarParseResult{
		UnmatchedNotedCells: []model.NotedCell{
			{Date: "2025-05-12", Note: "ran errands"},
		},
	}
	state := runPipeline(t, cal, calcRows(map[int]float64{5: 4}))

	if len(state.Entries) != 0 {
		t.Fatalf("no entry should come from a note without hours, got %v", state.Entries)
	}
	if !hasMention(state.Warnings, "2025-05-12") {
		t.Errorf("expected a warning naming the date, got %v", state.Warnings)
	}
}

func TestWeekendWorkedNoteBecomesPartialPto(t *testing.T) {
	// 2025-06-07 is a Saturday.
	cal := model.CalendarParseResult{
		WorkedCells: []model.NotedCell{
			{Date: "2025-06-07", Note: "worked, but took 4 hours"},
		},
	}
	state := runPipeline(t, cal, calcRows(map[int]float64{6: 4}))

	if len(state.Entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(state.Entries))
	}
	e := state.Entries[0]
	if e.Date != "2025-06-07" || e.Hours != 4 || !e.IsNoteDerived {
		t.Errorf("entry = %+v, want a 4 h note-derived entry on the weekend date", e)
	}
}

func TestWorkedNoteRemovesCompetingColorEntry(t *testing.T) {
	cal := model.CalendarParseResult{
		Entries: []model.ImportedPtoEntry{
			{Date: "2025-04-14", Type: model.TypePTO, Hours: 8},
		},
		WorkedCells: []model.NotedCell{
			{Date: "2025-04-14", Note: "worked from home"},
		},
	}
	state := runPipeline(t, cal, calcRows(nil))

	if len(state.Entries) != 0 {
		t.Fatalf("worked note should beat the fill, got %v", state.Entries)
	}
}

func TestWorkedNoteNeverOverridesNoteTypedEntry(t *testing.T) {
	cal := model.CalendarParseResult{
		Entries: []model.ImportedPtoEntry{
			{Date: "2025-04-14", Type: model.TypeSick, Hours: 8, TypeFromNote: true},
		},
		WorkedCells: []model.NotedCell{
			{Date: "2025-04-14", Note: "worked from home"},
		},
	}
	state := runPipeline(t, cal, calcRows(nil))

	if len(state.Entries) != 1 || state.Entries[0].Type != model.TypeSick {
		t.Fatalf("note-typed entry must survive, got %v", state.Entries)
	}
}

func TestUnmatchedColoredCellAbsorbedByGap(t *testing.T) {
	cal := model.CalendarParseResult{
		UnmatchedColoredCells: []model.ColoredCell{
			{Date: "2025-02-11", Color: "FFABCDEF"},
		},
	}
	state := runPipeline(t, cal, calcRows(map[int]float64{2: 8}))

	if len(state.Entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(state.Entries))
	}
	if e := state.Entries[0]; e.Type != model.TypePTO || e.Hours != 8 {
		t.Errorf("entry = %+v, want a full 8 h PTO day", e)
	}
}

func TestUnmatchedColoredCellPartialGap(t *testing.T) {
	cal := model.CalendarParseResult{
		UnmatchedColoredCells: []model.ColoredCell{
			{Date: "2025-02-11", Color: "FFABCDEF"},
		},
	}
	state := runPipeline(t, cal, calcRows(map[int]float64{2: 3}))

	if len(state.Entries) != 1 || state.Entries[0].Hours != 3 {
		t.Fatalf("want a 3 h entry from the partial gap, got %v", state.Entries)
	}
}

func TestUnmatchedColoredCellWithNoGapStaysWarning(t *testing.T) {
	cal := model.CalendarParseResult{
		UnmatchedColoredCells: []model.ColoredCell{
			{Date: "2025-02-11", Color: "FFABCDEF"},
		},
	}
	state := runPipeline(t, cal, calcRows(nil))

	if len(state.Entries) != 0 {
		t.Fatalf("no gap means no entry, got %v", state.Entries)
	}
	if !hasMention(state.Warnings, "FFABCDEF") || !hasMention(state.Warnings, "2025-02-11") {
		t.Errorf("warning must name date and color, got %v", state.Warnings)
	}
}

func TestReclassifySickByColumnS(t *testing.T) {
	// Column S tracks PTO-family hours only, so a gap exactly matching
	// the month's Sick hours means the Sick cells were miscolored PTO.
	cal := model.CalendarParseResult{
		Entries: []model.ImportedPtoEntry{
			{Date: "2025-04-14", Type: model.TypeSick, Hours: 8},
		},
	}
	state := runPipeline(t, cal, calcRows(map[int]float64{4: 8}))

	if len(state.Entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(state.Entries))
	}
	if state.Entries[0].Type != model.TypePTO {
		t.Errorf("Type = %q, want PTO", state.Entries[0].Type)
	}
	if !hasMention(state.Resolved, "reclassified") {
		t.Errorf("expected a reclassification narration, got %v", state.Resolved)
	}
}

func TestReclassifySickApproxColorAgainstGap(t *testing.T) {
	cal := model.CalendarParseResult{
		Entries: []model.ImportedPtoEntry{
			{Date: "2025-07-08", Type: model.TypeSick, Hours: 8, ApproxColor: true},
		},
	}
	state := runPipeline(t, cal, calcRows(map[int]float64{7: 8}))

	if state.Entries[0].Type != model.TypePTO {
		t.Errorf("approximate Sick with an absorbing gap should flip to PTO, got %q", state.Entries[0].Type)
	}
}

func TestDetectOverColoring(t *testing.T) {
	cal := model.CalendarParseResult{
		Entries: []model.ImportedPtoEntry{
			{Date: "2025-03-03", Type: model.TypePTO, Hours: 8},
			{Date: "2025-03-04", Type: model.TypePTO, Hours: 8},
		},
	}
	state := runPipeline(t, cal, calcRows(map[int]float64{3: 8}))

	if !hasMention(state.Warnings, "over-coloring") {
		t.Errorf("expected an over-coloring warning, got %v", state.Warnings)
	}
	if len(state.Entries) != 2 {
		t.Errorf("diagnostic pass must not mutate entries, got %d", len(state.Entries))
	}
}

func TestConservationMeansNoWarnings(t *testing.T) {
	cal := model.CalendarParseResult{
		Entries: []model.ImportedPtoEntry{
			{Date: "2025-01-06", Type: model.TypePTO, Hours: 8},
			{Date: "2025-09-15", Type: model.TypePlannedPTO, Hours: 8},
		},
	}
	state := runPipeline(t, cal, calcRows(map[int]float64{1: 8, 9: 8}))

	if len(state.Warnings) != 0 {
		t.Errorf("fully reconciled sheet must carry no warnings, got %v", state.Warnings)
	}
}

func TestRunSortsEntriesByDate(t *testing.T) {
	cal := model.CalendarParseResult{
		Entries: []model.ImportedPtoEntry{
			{Date: "2025-09-15", Type: model.TypePTO, Hours: 8},
			{Date: "2025-01-06", Type: model.TypePTO, Hours: 8},
		},
	}
	state := runPipeline(t, cal, calcRows(map[int]float64{1: 8, 9: 8}))

	if state.Entries[0].Date != "2025-01-06" || state.Entries[1].Date != "2025-09-15" {
		t.Errorf("entries not in date order: %v", state.Entries)
	}
}

func TestWarningsCarryForwardFromParser(t *testing.T) {
	cal := model.CalendarParseResult{
		Warnings: []string{"March: day 1 not at expected row 6"},
		Resolved: []string{"March: day 1 found 1 row(s) below expected position"},
	}
	state := runPipeline(t, cal, calcRows(nil))

	if !hasMention(state.Warnings, "day 1") || !hasMention(state.Resolved, "day 1") {
		t.Errorf("parser narrations must survive the pipeline: %v / %v", state.Warnings, state.Resolved)
	}
}

func TestPipelineOrderIsFixed(t *testing.T) {
	want := []string{
		"overrideTypeFromNote",
		"reclassifySickAsPto",
		"adjustPartialDays",
		"reconcilePartialPto",
		"inferWeekendPartialHours",
		"processWorkedCells",
		"reconcileUnmatchedColoredCells",
		"reclassifySickByColumnS",
		"reclassifyBereavementByColumnS",
		"detectOverColoring",
	}
	steps := reconcile.Pipeline()
	if len(steps) != len(want) {
		t.Fatalf("got %d steps, want %d", len(steps), len(want))
	}
	for i, step := range steps {
		if step.Name != want[i] {
			t.Errorf("step %d = %q, want %q", i, step.Name, want[i])
		}
	}
}
