// Package parser recovers normalized time-off records from one
// hand-maintained employee calendar worksheet. Everything data-quality
// related is reported as strings on the result, never as an error;
// only an unusable worksheet handle returns one.
package parser

import (
	"ptoimport/internal/model"
	"ptoimport/internal/reconcile"
	"ptoimport/internal/xlsx"
)

// ParseEmployeeSheet runs the full pipeline for one worksheet: theme,
// legend, employee header, calendar grid, PTO Calc totals,
// reconciliation, then acknowledgements. Warnings and resolved
// narrations accumulate in pipeline order.
func ParseEmployeeSheet(wb *xlsx.Workbook, sheetName string) (model.SheetImportResult, error) {
	sheet, err := wb.Sheet(sheetName)
	if err != nil {
		return model.SheetImportResult{}, err
	}

	result := model.SheetImportResult{
		PtoEntries:       []model.ImportedPtoEntry{},
		Acknowledgements: []model.Acknowledgement{},
		Warnings:         []string{},
		Errors:           []string{},
		Resolved:         []string{},
	}

	theme := ParseTheme(wb.ThemeXML())

	legend, legendWarnings := ParseLegend(sheet, theme)
	result.Warnings = append(result.Warnings, legendWarnings...)
	if len(legend) == 0 {
		result.Warnings = append(result.Warnings,
			"legend block is empty or unreadable; no calendar cell can be color-matched")
	}
	partialColors := ParsePartialPtoColors(sheet, theme)

	employee, empResolved, empWarnings := ParseEmployeeInfo(sheet)
	result.Employee = employee
	result.Resolved = append(result.Resolved, empResolved...)
	result.Warnings = append(result.Warnings, empWarnings...)

	if employee.Year == 0 {
		// Without a year no date can be formed; the sheet is unusable.
		result.Errors = append(result.Errors, "no fiscal year recoverable; calendar cannot be parsed")
		return result, nil
	}

	cal := ParseCalendarGrid(sheet, employee.Year, legend, theme, partialColors)

	calc, calcWarnings := ParsePtoCalc(sheet)
	result.Warnings = append(result.Warnings, calcWarnings...)

	state := reconcile.Run(reconcile.NewState(sheetName, employee.Year, cal, calc))
	result.PtoEntries = state.Entries
	result.Warnings = append(result.Warnings, state.Warnings...)
	result.Resolved = append(result.Resolved, state.Resolved...)

	parsedAcks := ParseAcknowledgements(sheet)
	generatedAcks := GenerateImportAcknowledgements(state.Entries, calc)
	result.Acknowledgements = MergeAcknowledgements(parsedAcks, generatedAcks)

	return result, nil
}

// IsEmployeeSheet is the coordinator's cheap screen for worksheets that
// look like employee calendars: an identity header plus either a legend
// or a recoverable year.
func IsEmployeeSheet(wb *xlsx.Workbook, sheetName string) bool {
	sheet, err := wb.Sheet(sheetName)
	if err != nil {
		return false
	}

	theme := ParseTheme(wb.ThemeXML())
	legend, _ := ParseLegend(sheet, theme)
	if len(legend) > 0 {
		return true
	}

	info, _, _ := ParseEmployeeInfo(sheet)
	return info.Year != 0 && sheet.Value(empHeaderCol, empNameRow) != ""
}
