package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ptoimport/internal/model"
)

// Employee is a stored employee-year row.
type Employee struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	HireDate  string `json:"hireDate"`
	Year      int    `json:"year"`
	SheetName string `json:"sheetName"`
}

// SaveSheetResult persists one sheet's import result in a single
// transaction. Re-importing the same employee/year replaces the prior
// rows, so an import is idempotent per sheet.
func (s *Store) SaveSheetResult(sheetName string, result model.SheetImportResult) (string, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var existingID string
	err = tx.QueryRow(`SELECT id FROM employees WHERE name = ? AND year = ?`,
		result.Employee.Name, result.Employee.Year).Scan(&existingID)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return "", fmt.Errorf("lookup employee: %w", err)
	default:
		if _, err := tx.Exec(`DELETE FROM employees WHERE id = ?`, existingID); err != nil {
			return "", fmt.Errorf("clear prior import: %w", err)
		}
		if _, err := tx.Exec(`DELETE FROM pto_entries WHERE employee_id = ?`, existingID); err != nil {
			return "", fmt.Errorf("clear prior entries: %w", err)
		}
		if _, err := tx.Exec(`DELETE FROM acknowledgements WHERE employee_id = ?`, existingID); err != nil {
			return "", fmt.Errorf("clear prior acknowledgements: %w", err)
		}
	}

	employeeID := uuid.New().String()
	if _, err := tx.Exec(
		`INSERT INTO employees (id, name, hire_date, year, sheet_name) VALUES (?, ?, ?, ?, ?)`,
		employeeID, result.Employee.Name, result.Employee.HireDate, result.Employee.Year, sheetName,
	); err != nil {
		return "", fmt.Errorf("insert employee: %w", err)
	}

	for _, e := range result.PtoEntries {
		if _, err := tx.Exec(
			`INSERT INTO pto_entries (id, employee_id, date, type, hours, is_note_derived, is_partial_color, notes)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.New().String(), employeeID, e.Date, string(e.Type), e.Hours,
			boolToInt(e.IsNoteDerived), boolToInt(e.IsPartialPtoColor), e.Notes,
		); err != nil {
			return "", fmt.Errorf("insert entry %s: %w", e.Date, err)
		}
	}

	for _, a := range result.Acknowledgements {
		if _, err := tx.Exec(
			`INSERT INTO acknowledgements (id, employee_id, month, type, status, note) VALUES (?, ?, ?, ?, ?, ?)`,
			uuid.New().String(), employeeID, a.Month, string(a.Type), a.Status, a.Note,
		); err != nil {
			return "", fmt.Errorf("insert acknowledgement month %d: %w", a.Month, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return employeeID, nil
}

// ListEmployees returns all stored employee-years, newest year first.
func (s *Store) ListEmployees() ([]Employee, error) {
	rows, err := s.db.Query(`SELECT id, name, hire_date, year, sheet_name FROM employees ORDER BY year DESC, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Employee{}
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.HireDate, &e.Year, &e.SheetName); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ListEntries returns one employee's entries in date order.
func (s *Store) ListEntries(employeeID string) ([]model.ImportedPtoEntry, error) {
	rows, err := s.db.Query(
		`SELECT date, type, hours, is_note_derived, is_partial_color, notes
		 FROM pto_entries WHERE employee_id = ? ORDER BY date`, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.ImportedPtoEntry{}
	for rows.Next() {
		var e model.ImportedPtoEntry
		var typ string
		var noteDerived, partialColor int
		if err := rows.Scan(&e.Date, &typ, &e.Hours, &noteDerived, &partialColor, &e.Notes); err != nil {
			return nil, err
		}
		e.Type = model.PTOType(typ)
		e.IsNoteDerived = noteDerived != 0
		e.IsPartialPtoColor = partialColor != 0
		out = append(out, e)
	}
	return out, rows.Err()
}

// ListAcknowledgements returns one employee's acknowledgements by month.
func (s *Store) ListAcknowledgements(employeeID string) ([]model.Acknowledgement, error) {
	rows, err := s.db.Query(
		`SELECT month, type, status, note FROM acknowledgements WHERE employee_id = ? ORDER BY month, type`, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Acknowledgement{}
	for rows.Next() {
		var a model.Acknowledgement
		var typ string
		if err := rows.Scan(&a.Month, &typ, &a.Status, &a.Note); err != nil {
			return nil, err
		}
		a.Type = model.AckType(typ)
		out = append(out, a)
	}
	return out, rows.Err()
}

// LogImport records a workbook-level import report.
func (s *Store) LogImport(report model.ImportReport) error {
	_, err := s.db.Exec(
		`INSERT INTO import_log (id, filename, imported_at, total_sheets, imported_sheets, skipped_sheets, imported_rows, warning_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), report.Filename, time.Now().UTC().Format(time.RFC3339),
		report.TotalSheets, report.ImportedSheets, report.SkippedSheets,
		report.ImportedRows, report.WarningCount,
	)
	return err
}

// ImportLogEntry is one row of the import history.
type ImportLogEntry struct {
	ID             string `json:"id"`
	Filename       string `json:"filename"`
	ImportedAt     string `json:"importedAt"`
	TotalSheets    int    `json:"totalSheets"`
	ImportedSheets int    `json:"importedSheets"`
	SkippedSheets  int    `json:"skippedSheets"`
	ImportedRows   int    `json:"importedRows"`
	WarningCount   int    `json:"warningCount"`
}

// ListImports returns the import history, newest first.
func (s *Store) ListImports() ([]ImportLogEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, filename, imported_at, total_sheets, imported_sheets, skipped_sheets, imported_rows, warning_count
		 FROM import_log ORDER BY imported_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ImportLogEntry{}
	for rows.Next() {
		var e ImportLogEntry
		if err := rows.Scan(&e.ID, &e.Filename, &e.ImportedAt, &e.TotalSheets,
			&e.ImportedSheets, &e.SkippedSheets, &e.ImportedRows, &e.WarningCount); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
