package parser

import (
	"encoding/xml"
	"fmt"
	"math"
	"strings"

	"ptoimport/internal/xlsx"
)

// ThemeColorMap maps a theme slot index to a 6-hex RGB string. Slots
// follow the clrScheme document order: dk1, lt1, dk2, lt2, accent1-6.
type ThemeColorMap map[int]string

// defaultThemeColors is the stock Office palette, used whenever a
// workbook carries no readable theme part. Read-only.
var defaultThemeColors = ThemeColorMap{
	0: "000000", // dk1
	1: "FFFFFF", // lt1
	2: "44546A", // dk2
	3: "E7E6E6", // lt2
	4: "4472C4", // accent1
	5: "ED7D31", // accent2
	6: "A5A5A5", // accent3
	7: "FFC000", // accent4
	8: "5B9BD5", // accent5
	9: "70AD47", // accent6
}

// DefaultThemeColors returns a copy of the stock Office palette.
func DefaultThemeColors() ThemeColorMap {
	out := make(ThemeColorMap, len(defaultThemeColors))
	for k, v := range defaultThemeColors {
		out[k] = v
	}
	return out
}

type themeClr struct {
	SrgbClr *struct {
		Val string `xml:"val,attr"`
	} `xml:"srgbClr"`
	SysClr *struct {
		LastClr string `xml:"lastClr,attr"`
	} `xml:"sysClr"`
}

func (c themeClr) rgb() string {
	if c.SrgbClr != nil && c.SrgbClr.Val != "" {
		return strings.ToUpper(c.SrgbClr.Val)
	}
	if c.SysClr != nil && c.SysClr.LastClr != "" {
		return strings.ToUpper(c.SysClr.LastClr)
	}
	return ""
}

type themeDoc struct {
	ThemeElements struct {
		ClrScheme struct {
			Dk1     themeClr `xml:"dk1"`
			Lt1     themeClr `xml:"lt1"`
			Dk2     themeClr `xml:"dk2"`
			Lt2     themeClr `xml:"lt2"`
			Accent1 themeClr `xml:"accent1"`
			Accent2 themeClr `xml:"accent2"`
			Accent3 themeClr `xml:"accent3"`
			Accent4 themeClr `xml:"accent4"`
			Accent5 themeClr `xml:"accent5"`
			Accent6 themeClr `xml:"accent6"`
		} `xml:"clrScheme"`
	} `xml:"themeElements"`
}

// ParseTheme builds the workbook's theme palette from the raw theme
// part. A missing or unparseable theme yields the default Office
// palette; an import never fails on theme data alone.
func ParseTheme(themeXML string) ThemeColorMap {
	out := DefaultThemeColors()
	if strings.TrimSpace(themeXML) == "" {
		return out
	}

	var doc themeDoc
	if err := xml.Unmarshal([]byte(themeXML), &doc); err != nil {
		return out
	}

	scheme := doc.ThemeElements.ClrScheme
	slots := []themeClr{
		scheme.Dk1, scheme.Lt1, scheme.Dk2, scheme.Lt2,
		scheme.Accent1, scheme.Accent2, scheme.Accent3,
		scheme.Accent4, scheme.Accent5, scheme.Accent6,
	}
	for i, slot := range slots {
		if rgb := slot.rgb(); len(rgb) == 6 {
			out[i] = rgb
		}
	}
	return out
}

// ResolveColorToARGB resolves a fill color reference (direct ARGB,
// indexed, or theme+tint) to a canonical 8-hex ARGB string. The second
// return is false for unresolvable references, which callers treat as
// "no color". Resolving an already-canonical ARGB returns it unchanged.
func ResolveColorToARGB(ref *xlsx.ColorRef, theme ThemeColorMap) (string, bool) {
	if ref.IsZero() {
		return "", false
	}

	if ref.RGB != "" {
		return canonicalARGB(ref.RGB)
	}

	if ref.Indexed != nil {
		idx := *ref.Indexed
		if idx < 0 || idx >= len(indexedPalette) {
			return "", false
		}
		return "FF" + indexedPalette[idx], true
	}

	if ref.Theme != nil {
		rgb, ok := theme[*ref.Theme]
		if !ok {
			return "", false
		}
		if ref.Tint != 0 {
			rgb = applyTint(rgb, ref.Tint)
		}
		return "FF" + rgb, true
	}

	return "", false
}

func canonicalARGB(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if !isHex(s) {
		return "", false
	}
	switch len(s) {
	case 6:
		return "FF" + s, true
	case 8:
		return s, true
	default:
		return "", false
	}
}

func isHex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// applyTint lightens (tint > 0) or darkens (tint < 0) each RGB channel.
// This is the per-channel approximation of the OOXML tint transform.
func applyTint(rgb string, tint float64) string {
	if len(rgb) != 6 {
		return rgb
	}
	var out strings.Builder
	for i := 0; i < 6; i += 2 {
		var ch int
		fmt.Sscanf(rgb[i:i+2], "%02X", &ch)
		v := float64(ch)
		if tint < 0 {
			v = v * (1 + tint)
		} else {
			v = v*(1-tint) + 255*tint
		}
		out.WriteString(fmt.Sprintf("%02X", int(math.Round(math.Max(0, math.Min(255, v))))))
	}
	return out.String()
}

// indexedPalette is the legacy 64-slot indexed color table.
var indexedPalette = []string{
	"000000", "FFFFFF", "FF0000", "00FF00", "0000FF", "FFFF00", "FF00FF", "00FFFF",
	"000000", "FFFFFF", "FF0000", "00FF00", "0000FF", "FFFF00", "FF00FF", "00FFFF",
	"800000", "008000", "000080", "808000", "800080", "008080", "C0C0C0", "808080",
	"9999FF", "993366", "FFFFCC", "CCFFFF", "660066", "FF8080", "0066CC", "CCCCFF",
	"000080", "FF00FF", "FFFF00", "00FFFF", "800080", "800000", "008080", "0000FF",
	"00CCFF", "CCFFFF", "CCFFCC", "FFFF99", "99CCFF", "FF99CC", "CC99FF", "FFCC99",
	"3366FF", "33CCCC", "99CC00", "FFCC00", "FF9900", "FF6600", "666699", "969696",
	"003366", "339966", "003300", "333300", "993300", "993366", "333399", "333333",
}
