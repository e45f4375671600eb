package parser

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"ptoimport/internal/model"
	"ptoimport/internal/xlsx"
)

// ParsePtoCalc reads the sheet's own per-month used-hours column. These
// totals are the reconciliation oracle: the calendar is checked against
// them, never the other way around. Blank rows read as zero; garbage
// rows read as zero with a warning.
func ParsePtoCalc(sheet *xlsx.Sheet) ([]model.PtoCalcRow, []string) {
	rows := make([]model.PtoCalcRow, 0, 12)
	var warnings []string

	for month := 1; month <= 12; month++ {
		raw := sheet.Value(ptoCalcCol, calcTopRow+month-1)
		hours := 0.0
		if raw != "" {
			parsed, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
			if err != nil || parsed < 0 {
				warnings = append(warnings,
					fmt.Sprintf("PTO calc %s: unreadable used-hours value %q; treating as 0", time.Month(month), raw))
			} else {
				hours = parsed
			}
		}
		rows = append(rows, model.PtoCalcRow{Month: month, UsedHours: hours})
	}

	return rows, warnings
}
