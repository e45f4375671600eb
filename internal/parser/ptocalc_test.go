package parser_test

import (
	"testing"

	"ptoimport/internal/parser"
)

func TestParsePtoCalc(t *testing.T) {
	b := newSheetBuilder(t, "Alice Smith")
	b.calc(1, 8)
	b.calc(5, 7.5)
	_, sheet := b.open()

	rows, warnings := parser.ParsePtoCalc(sheet)

	if len(rows) != 12 {
		t.Fatalf("got %d rows, want 12", len(rows))
	}
	for i, row := range rows {
		if row.Month != i+1 {
			t.Fatalf("row %d has month %d", i, row.Month)
		}
	}
	if rows[0].UsedHours != 8 || rows[4].UsedHours != 7.5 {
		t.Errorf("rows = %v", rows)
	}
	if rows[1].UsedHours != 0 {
		t.Errorf("blank month = %v, want 0", rows[1].UsedHours)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
}

func TestParsePtoCalcGarbageValue(t *testing.T) {
	b := newSheetBuilder(t, "Alice Smith")
	b.set(19, 5, "n/a") // February row
	_, sheet := b.open()

	rows, warnings := parser.ParsePtoCalc(sheet)

	if rows[1].UsedHours != 0 {
		t.Errorf("garbage month = %v, want 0", rows[1].UsedHours)
	}
	if len(warnings) != 1 || !hasSubstring(warnings, "February") {
		t.Errorf("want one warning naming February, got %v", warnings)
	}
}

func TestParsePtoCalcNegativeValue(t *testing.T) {
	b := newSheetBuilder(t, "Alice Smith")
	b.calc(3, -4)
	_, sheet := b.open()

	rows, warnings := parser.ParsePtoCalc(sheet)

	if rows[2].UsedHours != 0 {
		t.Errorf("negative month = %v, want 0", rows[2].UsedHours)
	}
	if len(warnings) != 1 {
		t.Errorf("want one warning, got %v", warnings)
	}
}
