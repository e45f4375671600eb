package model

// PTOType classifies a recovered time-off day.
type PTOType string

const (
	TypePTO         PTOType = "PTO"
	TypeSick        PTOType = "Sick"
	TypeBereavement PTOType = "Bereavement"
	TypeJuryDuty    PTOType = "Jury Duty"
	TypePlannedPTO  PTOType = "Planned PTO"
)

// IsPTOFamily reports whether hours of this type count against the
// sheet's own "PTO Calc" monthly totals.
func (t PTOType) IsPTOFamily() bool {
	return t == TypePTO || t == TypePlannedPTO
}

// ImportedPtoEntry is one day's recovered time-off observation.
type ImportedPtoEntry struct {
	Date              string  `json:"date"` // YYYY-MM-DD, within the sheet's year
	Type              PTOType `json:"type"`
	Hours             float64 `json:"hours"`
	IsNoteDerived     bool    `json:"isNoteDerived,omitempty"`
	IsPartialPtoColor bool    `json:"isPartialPtoColor,omitempty"`
	Notes             string  `json:"notes,omitempty"`

	// TypeFromNote marks a classification taken from an explicit cell note.
	// Later reconciliation passes never override it.
	TypeFromNote bool `json:"typeFromNote,omitempty"`
	// ApproxColor marks an entry whose color only matched the legend
	// through nearest-color fallback.
	ApproxColor bool `json:"approxColor,omitempty"`
}

// PtoCalcRow is one month's independently declared used-hours total,
// the oracle the calendar-derived entries are reconciled against.
type PtoCalcRow struct {
	Month     int     `json:"month"` // 1..12
	UsedHours float64 `json:"usedHours"`
}

// NotedCell is a calendar cell that carried a note but no recognized color.
type NotedCell struct {
	Date string `json:"date"`
	Note string `json:"note"`
}

// ColoredCell is a calendar cell with a fill that matched no legend color.
type ColoredCell struct {
	Date  string `json:"date"`
	Color string `json:"color"` // canonical 8-hex ARGB
	Note  string `json:"note,omitempty"`
}

// CalendarParseResult is the raw, pre-reconciliation output of walking
// the 12-month grid. The four observation streams require different
// reconciliation strategies downstream.
type CalendarParseResult struct {
	Entries               []ImportedPtoEntry `json:"entries"`
	UnmatchedNotedCells   []NotedCell        `json:"unmatchedNotedCells"`
	WorkedCells           []NotedCell        `json:"workedCells"`
	UnmatchedColoredCells []ColoredCell      `json:"unmatchedColoredCells"`
	Warnings              []string           `json:"warnings"`
	Resolved              []string           `json:"resolved"`
}

// EmployeeInfo is the sheet's header identity block.
type EmployeeInfo struct {
	Name     string `json:"name"`
	HireDate string `json:"hireDate"` // YYYY-MM-DD, empty if unrecoverable
	Year     int    `json:"year"`
}

// AckType distinguishes who an acknowledgement belongs to.
type AckType string

const (
	AckEmployee AckType = "employee"
	AckAdmin    AckType = "admin"
)

// Acknowledgement is a per-month sign-off, either read from the sheet or
// synthesized from the reconciliation outcome.
type Acknowledgement struct {
	Month  int     `json:"month"`
	Type   AckType `json:"type"`
	Status string  `json:"status"` // "ok" or "warning"
	Note   string  `json:"note,omitempty"`
}

// SheetImportResult is the orchestrator's final output for one employee
// sheet. Warnings and resolved narrations are concatenated in pipeline
// order so the import is auditable end to end.
type SheetImportResult struct {
	Employee         EmployeeInfo       `json:"employee"`
	PtoEntries       []ImportedPtoEntry `json:"ptoEntries"`
	Acknowledgements []Acknowledgement  `json:"acknowledgements"`
	Warnings         []string           `json:"warnings"`
	Errors           []string           `json:"errors"`
	Resolved         []string           `json:"resolved"`
}
