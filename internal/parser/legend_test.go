package parser_test

import (
	"strings"
	"testing"

	"ptoimport/internal/model"
	"ptoimport/internal/parser"
)

func TestParseLegend(t *testing.T) {
	b := newSheetBuilder(t, "Legend")
	b.legend(
		[2]string{"FFFF00", "PTO"},
		[2]string{"00B050", "Sick day"},
		[2]string{"7030A0", "Bereavement"},
		[2]string{"00B0F0", "Jury Duty"},
	)
	wb, sheet := b.open()

	theme := parser.ParseTheme(wb.ThemeXML())
	legend, warnings := parser.ParseLegend(sheet, theme)

	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	want := map[string]model.PTOType{
		"FFFFFF00": model.TypePTO,
		"FF00B050": model.TypeSick,
		"FF7030A0": model.TypeBereavement,
		"FF00B0F0": model.TypeJuryDuty,
	}
	if len(legend) != len(want) {
		t.Fatalf("legend has %d entries, want %d: %v", len(legend), len(want), legend)
	}
	for argb, typ := range want {
		if got := legend[argb]; got != typ {
			t.Errorf("legend[%s] = %q, want %q", argb, got, typ)
		}
	}
}

func TestParseLegendWarnsOnUnrecognizedLabel(t *testing.T) {
	b := newSheetBuilder(t, "Legend")
	b.legend(
		[2]string{"FFFF00", "PTO"},
		[2]string{"C0C0C0", "Holiday"},
	)
	wb, sheet := b.open()

	legend, warnings := parser.ParseLegend(sheet, parser.ParseTheme(wb.ThemeXML()))

	if len(legend) != 1 {
		t.Errorf("unrecognized label must not enter the legend: %v", legend)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "Holiday") {
		t.Errorf("want one warning naming the label, got %v", warnings)
	}
}

func TestParseLegendWarnsOnMissingSwatch(t *testing.T) {
	b := newSheetBuilder(t, "Legend")
	b.legend([2]string{"", "Sick"}) // label only, no fill
	wb, sheet := b.open()

	legend, warnings := parser.ParseLegend(sheet, parser.ParseTheme(wb.ThemeXML()))

	if len(legend) != 0 {
		t.Errorf("legend should be empty, got %v", legend)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "no resolvable fill") {
		t.Errorf("want a missing-swatch warning, got %v", warnings)
	}
}

func TestParsePartialPtoColors(t *testing.T) {
	b := newSheetBuilder(t, "Legend")
	b.legend(
		[2]string{"FFFF00", "PTO"},
		[2]string{"BFBFBF", "Partial PTO"},
	)
	wb, sheet := b.open()
	theme := parser.ParseTheme(wb.ThemeXML())

	legend, _ := parser.ParseLegend(sheet, theme)
	if got := legend["FFBFBFBF"]; got != model.TypePTO {
		t.Errorf("partial legend color maps to %q, want PTO", got)
	}

	partial := parser.ParsePartialPtoColors(sheet, theme)
	if _, ok := partial["FFBFBFBF"]; !ok {
		t.Errorf("partial set missing FFBFBFBF: %v", partial)
	}
	if _, ok := partial["FFFFFF00"]; ok {
		t.Error("plain PTO color must not be in the partial set")
	}
}
