package parser

import (
	"sort"

	"ptoimport/internal/model"
)

// nearestColorMaxDistance caps how far an approximate legend match may
// drift: a budget of 48 per channel, squared and summed.
const nearestColorMaxDistance = 3 * 48 * 48

// colorDistance is the squared Euclidean distance over the R, G, B
// channels of two canonical ARGB strings. Alpha is ignored. The metric
// is deterministic and symmetric.
func colorDistance(a, b string) int {
	if len(a) != 8 || len(b) != 8 {
		return 1 << 30
	}
	total := 0
	for i := 2; i < 8; i += 2 {
		d := hexByte(a[i:i+2]) - hexByte(b[i:i+2])
		total += d * d
	}
	return total
}

func hexByte(s string) int {
	v := 0
	for i := 0; i < len(s); i++ {
		v <<= 4
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			v |= int(c - '0')
		case c >= 'A' && c <= 'F':
			v |= int(c-'A') + 10
		case c >= 'a' && c <= 'f':
			v |= int(c-'a') + 10
		}
	}
	return v
}

// nearestColor finds the closest legend color within the distance cap.
// Legend keys are visited in sorted order so ties resolve the same way
// on every run.
func nearestColor(argb string, legend Legend) (model.PTOType, string, bool) {
	keys := make([]string, 0, len(legend))
	for k := range legend {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	bestKey := ""
	bestDist := nearestColorMaxDistance + 1
	for _, k := range keys {
		if d := colorDistance(argb, k); d < bestDist {
			bestDist = d
			bestKey = k
		}
	}
	if bestKey == "" {
		return "", "", false
	}
	return legend[bestKey], bestKey, true
}

// isNeutralFill reports whether a canonical ARGB is plain white, plain
// black, or fully transparent. Neutral fills never signal time off.
func isNeutralFill(argb string) bool {
	if len(argb) != 8 {
		return true
	}
	if argb[:2] == "00" {
		return true
	}
	rgb := argb[2:]
	return rgb == "FFFFFF" || rgb == "000000"
}
