package parser

// The sheet layout is a versioned contract inherited from the original
// hand-maintained workbook template, not discovered structure. All
// offsets are 1-based spreadsheet coordinates.

// Twelve month blocks sit in a 3-column x 4-row macro-grid. colStarts
// holds the first day column of each macro-column (B, K, T);
// rowGroupStarts holds the month header row of each macro-row. Day rows
// begin two rows under the header (header, weekday labels, then up to
// six week rows).
var (
	colStarts      = [3]int{2, 11, 20}
	rowGroupStarts = [4]int{4, 13, 22, 31}
)

const (
	// day1ScanRange bounds the anomaly scan around the expected day-1 row.
	day1ScanRange = 3

	// fullDayHours is the assumed hours of a colored day without a note.
	fullDayHours = 8.0
)

// Legend block: one swatch cell paired with a label per row.
const (
	legendSwatchCol = 28 // AB
	legendLabelCol  = 29 // AC
	legendTopRow    = 4
	legendBottomRow = 9
)

// "PTO Calc" section: the sheet's own used-hours per month, one row per
// month starting at January. Acknowledgement marks sit to the right of
// the whole grid so they never alias calendar day cells.
const (
	ptoCalcCol     = 19 // S
	ackEmployeeCol = 31 // AE
	ackAdminCol    = 32 // AF
	calcTopRow     = 4
)

// Employee header cells, plus the range the anomaly scans cover.
const (
	empHeaderCol = 2 // B
	empNameRow   = 1
	empHireRow   = 2
	empYearRow   = 3

	headerScanMaxCol = 4
	headerScanMaxRow = 5
)
