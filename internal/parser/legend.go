package parser

import (
	"fmt"
	"strings"

	"ptoimport/internal/model"
	"ptoimport/internal/xlsx"
)

// Legend maps a canonical ARGB fill color to the time-off type it
// denotes on this sheet. Read-only once built; downstream code treats
// it as a pure lookup table.
type Legend map[string]model.PTOType

// ParseLegend reads the fixed legend block and keys each entry by the
// resolved color, so exact lookups during the grid walk are O(1) no
// matter how the source cell expressed its fill. An empty or
// unparseable block yields an empty legend; the orchestrator escalates
// that to a sheet warning but parsing proceeds.
func ParseLegend(sheet *xlsx.Sheet, theme ThemeColorMap) (Legend, []string) {
	legend := make(Legend)
	var warnings []string

	for row := legendTopRow; row <= legendBottomRow; row++ {
		label := sheet.Value(legendLabelCol, row)
		if label == "" {
			continue
		}

		ptoType, ok := labelToType(label)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("legend row %d: unrecognized label %q", row, label))
			continue
		}

		argb, ok := legendSwatchColor(sheet, theme, row)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("legend row %d (%s): swatch has no resolvable fill", row, label))
			continue
		}

		legend[argb] = ptoType
	}

	return legend, warnings
}

// ParsePartialPtoColors returns the legend colors whose labels mark the
// partial-PTO variant. Those colors still map to PTO in the legend; the
// set only flags them for special hour handling.
func ParsePartialPtoColors(sheet *xlsx.Sheet, theme ThemeColorMap) map[string]struct{} {
	partial := make(map[string]struct{})

	for row := legendTopRow; row <= legendBottomRow; row++ {
		label := strings.ToLower(sheet.Value(legendLabelCol, row))
		if !strings.Contains(label, "partial") {
			continue
		}
		if argb, ok := legendSwatchColor(sheet, theme, row); ok {
			partial[argb] = struct{}{}
		}
	}

	return partial
}

func legendSwatchColor(sheet *xlsx.Sheet, theme ThemeColorMap, row int) (string, bool) {
	fg, bg := sheet.Fill(legendSwatchCol, row)
	if argb, ok := ResolveColorToARGB(fg, theme); ok {
		return argb, true
	}
	return ResolveColorToARGB(bg, theme)
}

// labelToType maps a free-text legend label to its type. Matching is
// keyword-based because years of editing left the labels inconsistent
// ("PTO used", "Sick day", "partial PTO (see note)").
func labelToType(label string) (model.PTOType, bool) {
	l := strings.ToLower(label)
	switch {
	case strings.Contains(l, "sick"):
		return model.TypeSick, true
	case strings.Contains(l, "bereave"):
		return model.TypeBereavement, true
	case strings.Contains(l, "jury"):
		return model.TypeJuryDuty, true
	case strings.Contains(l, "planned"):
		return model.TypePlannedPTO, true
	case strings.Contains(l, "partial"):
		// Partial PTO is a PTO sub-variant; ParsePartialPtoColors tracks it.
		return model.TypePTO, true
	case strings.Contains(l, "pto"), strings.Contains(l, "vacation"):
		return model.TypePTO, true
	default:
		return "", false
	}
}
