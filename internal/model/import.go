package model

import "time"

// SheetResult records how a single worksheet fared during an import.
type SheetResult struct {
	SheetName     string        `json:"sheetName"`
	Employee      string        `json:"employee,omitempty"`
	Year          int           `json:"year,omitempty"`
	Status        string        `json:"status"` // imported/skipped/error
	ImportedRows  int           `json:"importedRows"`
	WarningCount  int           `json:"warningCount"`
	ResolvedCount int           `json:"resolvedCount"`
	Errors        []string      `json:"errors,omitempty"`
	Duration      time.Duration `json:"duration"`
}

// ImportReport summarizes a whole workbook import.
type ImportReport struct {
	Filename       string        `json:"filename"`
	TotalSheets    int           `json:"totalSheets"`
	ImportedSheets int           `json:"importedSheets"`
	SkippedSheets  int           `json:"skippedSheets"`
	ImportedRows   int           `json:"importedRows"`
	WarningCount   int           `json:"warningCount"`
	Sheets         []SheetResult `json:"sheets"`
	Duration       time.Duration `json:"duration"`
}
