package parser

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"ptoimport/internal/model"
	"ptoimport/internal/xlsx"
)

// dateLayouts covers the formats seen across years of manual editing.
var dateLayouts = []string{
	"1/2/2006",
	"01/02/2006",
	"1/2/06",
	"2006-01-02",
	"1-2-2006",
	"01-02-06",
	"Jan 2, 2006",
	"January 2, 2006",
	"2-Jan-06",
}

// ParseEmployeeInfo recovers name, hire date and fiscal year from the
// header cells. Hire-date and year recovery use the same anomaly
// philosophy as the calendar walk: a scan of nearby cells that succeeds
// is narrated to resolved, not warnings.
func ParseEmployeeInfo(sheet *xlsx.Sheet) (model.EmployeeInfo, []string, []string) {
	var resolved, warnings []string

	info := model.EmployeeInfo{
		Name: sheet.Value(empHeaderCol, empNameRow),
	}
	if info.Name == "" {
		// The tab name is the next best identity signal.
		info.Name = sheet.Name()
		resolved = append(resolved, fmt.Sprintf("employee name cell empty; using sheet name %q", sheet.Name()))
	}

	if hire, ok := parseDateValue(sheet.Value(empHeaderCol, empHireRow)); ok {
		info.HireDate = hire.Format("2006-01-02")
	} else if hire, col, row, ok := scanHeaderForDate(sheet); ok {
		info.HireDate = hire.Format("2006-01-02")
		resolved = append(resolved, fmt.Sprintf("hire date not at expected cell; found at column %d row %d", col, row))
	} else {
		warnings = append(warnings, "hire date not found in header block")
	}

	if year, ok := parseYearValue(sheet.Value(empHeaderCol, empYearRow)); ok {
		info.Year = year
	} else if year, col, row, ok := scanHeaderForYear(sheet); ok {
		info.Year = year
		resolved = append(resolved, fmt.Sprintf("year not at expected cell; found %d at column %d row %d", year, col, row))
	} else if year, ok := yearFromSheetName(sheet.Name()); ok {
		info.Year = year
		resolved = append(resolved, fmt.Sprintf("year not in header block; taken from sheet name %q", sheet.Name()))
	} else {
		warnings = append(warnings, "fiscal year not found on sheet")
	}

	return info, resolved, warnings
}

func parseDateValue(v string) (time.Time, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseYearValue(v string) (int, bool) {
	year, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || year < 1990 || year > 2100 {
		return 0, false
	}
	return year, true
}

func scanHeaderForDate(sheet *xlsx.Sheet) (time.Time, int, int, bool) {
	for row := 1; row <= headerScanMaxRow; row++ {
		for col := 1; col <= headerScanMaxCol; col++ {
			if col == empHeaderCol && row == empHireRow {
				continue
			}
			if t, ok := parseDateValue(sheet.Value(col, row)); ok {
				return t, col, row, true
			}
		}
	}
	return time.Time{}, 0, 0, false
}

func scanHeaderForYear(sheet *xlsx.Sheet) (int, int, int, bool) {
	for row := 1; row <= headerScanMaxRow; row++ {
		for col := 1; col <= headerScanMaxCol; col++ {
			if col == empHeaderCol && row == empYearRow {
				continue
			}
			if year, ok := parseYearValue(sheet.Value(col, row)); ok {
				return year, col, row, true
			}
		}
	}
	return 0, 0, 0, false
}

func yearFromSheetName(name string) (int, bool) {
	for i := 0; i+4 <= len(name); i++ {
		if year, ok := parseYearValue(name[i : i+4]); ok {
			return year, true
		}
	}
	return 0, false
}

// Accrual tiers by completed years of service, in PTO hours per year.
const (
	rateTier1Hours = 80.0  // under 5 years
	rateTier2Hours = 120.0 // 5 to 9 years
	rateTier3Hours = 160.0 // 10 years and up
)

// ComputePtoRate returns the accrual rate (hours/year) in force for the
// employee at the given date. A warning is returned when the date lands
// exactly on a tier anniversary, since the sheet gives no signal about
// which side of the transition the employer applied; the lower tier is
// used.
func ComputePtoRate(info model.EmployeeInfo, asOf time.Time) (float64, string) {
	hire, ok := parseDateValue(info.HireDate)
	if !ok {
		return rateTier1Hours, fmt.Sprintf("no usable hire date for %s; assuming first-tier accrual", info.Name)
	}

	years := completedYears(hire, asOf)

	warning := ""
	if years == 5 || years == 10 {
		if anniversary(hire, asOf) {
			warning = fmt.Sprintf("accrual tier boundary: %s reaches %d years exactly on %s", info.Name, years, asOf.Format("2006-01-02"))
			years--
		}
	}

	switch {
	case years >= 10:
		return rateTier3Hours, warning
	case years >= 5:
		return rateTier2Hours, warning
	default:
		return rateTier1Hours, warning
	}
}

func completedYears(hire, asOf time.Time) int {
	years := asOf.Year() - hire.Year()
	if asOf.Month() < hire.Month() || (asOf.Month() == hire.Month() && asOf.Day() < hire.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

func anniversary(hire, asOf time.Time) bool {
	return hire.Month() == asOf.Month() && hire.Day() == asOf.Day()
}
