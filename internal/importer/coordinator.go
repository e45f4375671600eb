// Package importer drives a whole-workbook import: one employee
// calendar sheet at a time, with progress streamed to the caller.
package importer

import (
	"fmt"
	"path/filepath"
	"time"

	"ptoimport/internal/model"
	"ptoimport/internal/parser"
	"ptoimport/internal/store"
	"ptoimport/internal/xlsx"
)

// Coordinator sequences parsing and persistence for a workbook.
type Coordinator struct {
	store *store.Store
}

// NewCoordinator creates a Coordinator writing to the given store. A
// nil store is allowed for dry runs; results are then parsed but not
// persisted.
func NewCoordinator(st *store.Store) *Coordinator {
	return &Coordinator{store: st}
}

// ImportOptions controls a workbook import.
type ImportOptions struct {
	FilePath string
	DryRun   bool // parse and report without writing to the store
}

// ProgressEvent is one import progress update.
type ProgressEvent struct {
	Type      string      `json:"type"` // start/info/sheet_start/sheet_done/warning/error/done
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Import runs the import in the background and returns its progress
// channel. The channel closes when the import finishes; the final
// "done" event carries the ImportReport.
func (c *Coordinator) Import(opts ImportOptions) <-chan ProgressEvent {
	progress := make(chan ProgressEvent, 100)

	go func() {
		defer close(progress)
		c.doImport(opts, progress)
	}()

	return progress
}

func (c *Coordinator) doImport(opts ImportOptions, progress chan ProgressEvent) {
	startTime := time.Now()

	c.send(progress, ProgressEvent{
		Type:      "start",
		Message:   "importing workbook",
		Data:      map[string]string{"filename": filepath.Base(opts.FilePath)},
		Timestamp: time.Now(),
	})

	wb, err := xlsx.OpenFile(opts.FilePath)
	if err != nil {
		c.send(progress, ProgressEvent{
			Type:      "error",
			Message:   fmt.Sprintf("open workbook: %v", err),
			Timestamp: time.Now(),
		})
		return
	}
	defer wb.Close()

	report := &model.ImportReport{
		Filename: filepath.Base(opts.FilePath),
		Sheets:   []model.SheetResult{},
	}

	sheetNames := wb.SheetNames()
	report.TotalSheets = len(sheetNames)

	c.send(progress, ProgressEvent{
		Type:      "info",
		Message:   fmt.Sprintf("found %d sheet(s)", len(sheetNames)),
		Data:      map[string]int{"total_sheets": len(sheetNames)},
		Timestamp: time.Now(),
	})

	for _, sheetName := range sheetNames {
		c.processSheet(wb, sheetName, opts, report, progress)
	}

	report.Duration = time.Since(startTime)

	if c.store != nil && !opts.DryRun {
		if err := c.store.LogImport(*report); err != nil {
			c.send(progress, ProgressEvent{
				Type:      "warning",
				Message:   fmt.Sprintf("record import log: %v", err),
				Timestamp: time.Now(),
			})
		}
	}

	c.send(progress, ProgressEvent{
		Type:      "done",
		Message:   "import finished",
		Data:      report,
		Timestamp: time.Now(),
	})
}

func (c *Coordinator) processSheet(wb *xlsx.Workbook, sheetName string, opts ImportOptions, report *model.ImportReport, progress chan ProgressEvent) {
	sheetStart := time.Now()

	c.send(progress, ProgressEvent{
		Type:      "sheet_start",
		Message:   fmt.Sprintf("parsing sheet %q", sheetName),
		Data:      map[string]string{"sheet_name": sheetName},
		Timestamp: time.Now(),
	})

	if !parser.IsEmployeeSheet(wb, sheetName) {
		c.record(report, model.SheetResult{
			SheetName: sheetName,
			Status:    "skipped",
			Errors:    []string{"sheet does not look like an employee calendar"},
			Duration:  time.Since(sheetStart),
		})
		c.send(progress, ProgressEvent{
			Type:      "info",
			Message:   fmt.Sprintf("skipping sheet %q: not an employee calendar", sheetName),
			Timestamp: time.Now(),
		})
		return
	}

	result, err := parser.ParseEmployeeSheet(wb, sheetName)
	if err != nil {
		c.record(report, model.SheetResult{
			SheetName: sheetName,
			Status:    "error",
			Errors:    []string{err.Error()},
			Duration:  time.Since(sheetStart),
		})
		return
	}

	if len(result.Errors) > 0 {
		c.record(report, model.SheetResult{
			SheetName: sheetName,
			Employee:  result.Employee.Name,
			Status:    "error",
			Errors:    result.Errors,
			Duration:  time.Since(sheetStart),
		})
		c.send(progress, ProgressEvent{
			Type:      "warning",
			Message:   fmt.Sprintf("sheet %q unusable: %v", sheetName, result.Errors),
			Timestamp: time.Now(),
		})
		return
	}

	if c.store != nil && !opts.DryRun {
		if _, err := c.store.SaveSheetResult(sheetName, result); err != nil {
			c.record(report, model.SheetResult{
				SheetName: sheetName,
				Employee:  result.Employee.Name,
				Year:      result.Employee.Year,
				Status:    "error",
				Errors:    []string{fmt.Sprintf("persist: %v", err)},
				Duration:  time.Since(sheetStart),
			})
			return
		}
	}

	c.record(report, model.SheetResult{
		SheetName:     sheetName,
		Employee:      result.Employee.Name,
		Year:          result.Employee.Year,
		Status:        "imported",
		ImportedRows:  len(result.PtoEntries),
		WarningCount:  len(result.Warnings),
		ResolvedCount: len(result.Resolved),
		Duration:      time.Since(sheetStart),
	})

	c.send(progress, ProgressEvent{
		Type:    "sheet_done",
		Message: fmt.Sprintf("sheet %q imported: %d entries, %d warning(s)", sheetName, len(result.PtoEntries), len(result.Warnings)),
		Data: map[string]interface{}{
			"sheet_name": sheetName,
			"employee":   result.Employee.Name,
			"year":       result.Employee.Year,
			"entries":    len(result.PtoEntries),
			"warnings":   result.Warnings,
			"resolved":   result.Resolved,
		},
		Timestamp: time.Now(),
	})
}

func (c *Coordinator) record(report *model.ImportReport, result model.SheetResult) {
	report.Sheets = append(report.Sheets, result)

	switch result.Status {
	case "imported":
		report.ImportedSheets++
		report.ImportedRows += result.ImportedRows
	case "skipped":
		report.SkippedSheets++
	}
	report.WarningCount += result.WarningCount
}

func (c *Coordinator) send(ch chan ProgressEvent, event ProgressEvent) {
	select {
	case ch <- event:
	default:
		// Channel full; drop the event rather than stall the import.
	}
}
