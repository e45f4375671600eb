package parser

import (
	"fmt"
	"math"
	"sort"
	"time"

	"ptoimport/internal/model"
	"ptoimport/internal/xlsx"
)

// ParseAcknowledgements recovers explicit sign-off marks from the ack
// columns beside the PTO Calc section. Any non-empty cell counts as a
// mark; its text is kept as the note.
func ParseAcknowledgements(sheet *xlsx.Sheet) []model.Acknowledgement {
	var acks []model.Acknowledgement

	for month := 1; month <= 12; month++ {
		row := calcTopRow + month - 1
		if v := sheet.Value(ackEmployeeCol, row); v != "" {
			acks = append(acks, model.Acknowledgement{
				Month: month, Type: model.AckEmployee, Status: "ok", Note: markNote(v),
			})
		}
		if v := sheet.Value(ackAdminCol, row); v != "" {
			acks = append(acks, model.Acknowledgement{
				Month: month, Type: model.AckAdmin, Status: "ok", Note: markNote(v),
			})
		}
	}

	return acks
}

func markNote(v string) string {
	if len(v) == 1 {
		// Bare "x"-style marks carry no information beyond presence.
		return ""
	}
	return v
}

// GenerateImportAcknowledgements synthesizes employee acknowledgements
// from the reconciled entries and the PTO Calc totals: "ok" for months
// that reconcile with usage, "warning" for months the pipeline could
// not close.
func GenerateImportAcknowledgements(entries []model.ImportedPtoEntry, calc []model.PtoCalcRow) []model.Acknowledgement {
	sums := make(map[int]float64)
	for _, e := range entries {
		if !e.Type.IsPTOFamily() {
			continue
		}
		if d, err := time.Parse("2006-01-02", e.Date); err == nil {
			sums[int(d.Month())] += e.Hours
		}
	}

	var acks []model.Acknowledgement
	for _, row := range calc {
		sum := sums[row.Month]
		switch {
		case math.Abs(sum-row.UsedHours) < 0.01 && row.UsedHours > 0:
			acks = append(acks, model.Acknowledgement{
				Month:  row.Month,
				Type:   model.AckEmployee,
				Status: "ok",
				Note:   fmt.Sprintf("calendar reconciles with PTO calc (%.4g h)", row.UsedHours),
			})
		case math.Abs(sum-row.UsedHours) >= 0.01:
			acks = append(acks, model.Acknowledgement{
				Month:  row.Month,
				Type:   model.AckEmployee,
				Status: "warning",
				Note:   fmt.Sprintf("calendar %.4g h vs PTO calc %.4g h", sum, row.UsedHours),
			})
		}
	}
	return acks
}

// MergeAcknowledgements combines parsed and generated records. Generated
// records win for the same (month, type) key, and a parsed admin
// sign-off is suppressed outright when the month carries a generated
// warning: a human sign-off on a month the pipeline knows to be
// unreconciled would be misleading.
func MergeAcknowledgements(parsed, generated []model.Acknowledgement) []model.Acknowledgement {
	type key struct {
		month int
		typ   model.AckType
	}

	warnedMonths := make(map[int]bool)
	merged := make(map[key]model.Acknowledgement)

	for _, a := range parsed {
		merged[key{a.Month, a.Type}] = a
	}
	for _, a := range generated {
		merged[key{a.Month, a.Type}] = a
		if a.Status == "warning" {
			warnedMonths[a.Month] = true
		}
	}

	out := make([]model.Acknowledgement, 0, len(merged))
	for k, a := range merged {
		if k.typ == model.AckAdmin && warnedMonths[k.month] {
			continue
		}
		out = append(out, a)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Month != out[j].Month {
			return out[i].Month < out[j].Month
		}
		return out[i].Type < out[j].Type
	})
	return out
}
